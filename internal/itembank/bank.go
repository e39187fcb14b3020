// Package itembank supplies the items a testlet is built from.
package itembank

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mind-engage/mindengage-testlets/internal/testlet"
)

var (
	ErrBankNotFound = errors.New("item bank not found")
	ErrInvalidBank  = errors.New("invalid item bank id")
)

// Bank returns the items of a bank in a stable order.
type Bank interface {
	Items(ctx context.Context, bankID string) ([]testlet.Item, error)
}

// LoadTestlet fetches the items of bankID and builds a testlet from them.
// An empty testletID defaults to bankID.
func LoadTestlet(ctx context.Context, b Bank, bankID, testletID string, pretestCount int, opts ...testlet.Option) (*testlet.Testlet, error) {
	items, err := b.Items(ctx, bankID)
	if err != nil {
		return nil, fmt.Errorf("load bank %q: %w", bankID, err)
	}
	if testletID == "" {
		testletID = bankID
	}
	t, err := testlet.New(testletID, pretestCount, items, opts...)
	if err != nil {
		return nil, fmt.Errorf("build testlet from bank %q: %w", bankID, err)
	}
	return t, nil
}

func checkBankID(bankID string) error {
	if strings.TrimSpace(bankID) == "" || strings.ContainsAny(bankID, `/\`) || bankID == "." || bankID == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidBank, bankID)
	}
	return nil
}
