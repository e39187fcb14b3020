package testlet

import (
	"fmt"
	"strings"
)

// ItemType classifies a testlet item.
type ItemType int

const (
	// Pretest items are not counted towards the candidate's score.
	Pretest ItemType = iota
	// Operational items are scored.
	Operational
)

func (t ItemType) String() string {
	switch t {
	case Pretest:
		return "pretest"
	case Operational:
		return "operational"
	default:
		return fmt.Sprintf("ItemType(%d)", int(t))
	}
}

// Valid reports whether t is one of the declared item types.
func (t ItemType) Valid() bool {
	switch t {
	case Pretest, Operational:
		return true
	default:
		return false
	}
}

// ParseItemType accepts the names produced by String, ignoring case and
// surrounding whitespace.
func ParseItemType(s string) (ItemType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pretest":
		return Pretest, nil
	case "operational":
		return Operational, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownItemType, s)
	}
}

func (t ItemType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownItemType, int(t))
	}
	return []byte(t.String()), nil
}

func (t *ItemType) UnmarshalText(b []byte) error {
	v, err := ParseItemType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Item is a reference to a single question supplied by an item bank.
type Item struct {
	ID   string   `json:"id"`
	Type ItemType `json:"type"`
}

func (it Item) IsPretest() bool { return it.Type == Pretest }
