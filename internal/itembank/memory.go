package itembank

import (
	"context"
	"fmt"
	"sync"

	"github.com/mind-engage/mindengage-testlets/internal/testlet"
)

type MemoryBank struct {
	mu    sync.RWMutex
	banks map[string][]testlet.Item
}

func NewMemoryBank() *MemoryBank {
	return &MemoryBank{banks: map[string][]testlet.Item{}}
}

// PutItems replaces the contents of bankID.
func (m *MemoryBank) PutItems(_ context.Context, bankID string, items []testlet.Item) error {
	if err := checkBankID(bankID); err != nil {
		return err
	}
	cp := make([]testlet.Item, len(items))
	copy(cp, items)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.banks[bankID] = cp
	return nil
}

func (m *MemoryBank) Items(_ context.Context, bankID string) ([]testlet.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	items, ok := m.banks[bankID]
	if !ok || len(items) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrBankNotFound, bankID)
	}
	out := make([]testlet.Item, len(items))
	copy(out, items)
	return out, nil
}
