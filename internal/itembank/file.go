package itembank

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"

	"github.com/mind-engage/mindengage-testlets/internal/testlet"
)

// FileBank reads banks from <Dir>/<bankID>.json. Comments and trailing
// commas are allowed.
//
//	{
//	  // anchor items first
//	  "items": [
//	    {"id": "q1", "type": "pretest"},
//	    {"id": "q2", "type": "operational"},
//	  ]
//	}
type FileBank struct {
	Dir string
}

type bankFile struct {
	Items []testlet.Item `json:"items"`
}

func (f FileBank) Path(bankID string) string {
	return filepath.Join(f.Dir, bankID+".json")
}

func (f FileBank) Items(_ context.Context, bankID string) ([]testlet.Item, error) {
	if err := checkBankID(bankID); err != nil {
		return nil, err
	}
	items, err := ReadFile(f.Path(bankID))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrBankNotFound, bankID)
	}
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: %s has no items", ErrBankNotFound, bankID)
	}
	return items, nil
}

// ReadFile parses a bank file outside of any FileBank directory.
func ReadFile(path string) ([]testlet.Item, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is intentionally user-controlled
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a JSONC bank document.
func Parse(data []byte) ([]testlet.Item, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("invalid JSONC: %w", err)
	}
	var doc bankFile
	if err := json.Unmarshal(standardized, &doc); err != nil {
		return nil, fmt.Errorf("invalid bank file: %w", err)
	}
	return doc.Items, nil
}
