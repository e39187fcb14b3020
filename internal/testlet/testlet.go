// Package testlet builds testlets: fixed sets of assessment items delivered
// in random order, with a number of pretest items always placed first.
package testlet

import (
	"fmt"
	"strings"
)

// DefaultInitialPretestCount is the number of leading pretest items used by
// Default.
const DefaultInitialPretestCount = 2

// Testlet is immutable once built and safe for concurrent use.
type Testlet struct {
	id                  string
	initialPretestCount int
	items               []Item

	// partitions of items, in input order; never shuffled in place
	pretest []Item
	other   []Item

	shuffle ShuffleFunc
}

type Option func(*Testlet)

// WithShuffle replaces the permutation used by Randomize.
func WithShuffle(fn ShuffleFunc) Option {
	return func(t *Testlet) {
		if fn != nil {
			t.shuffle = fn
		}
	}
}

// New validates its input and returns a testlet whose randomized orderings
// start with initialPretestCount pretest items. items is copied; the caller
// may reuse it afterwards.
func New(id string, initialPretestCount int, items []Item, opts ...Option) (*Testlet, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidIdentifier
	}
	if initialPretestCount <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPretestCount, initialPretestCount)
	}
	if items == nil {
		return nil, ErrMissingItems
	}
	if len(items) == 0 {
		return nil, ErrEmptyItems
	}

	owned := make([]Item, len(items))
	copy(owned, items)

	var pretest, other []Item
	for _, it := range owned {
		if it.IsPretest() {
			pretest = append(pretest, it)
		} else {
			other = append(other, it)
		}
	}
	if len(pretest) < initialPretestCount {
		return nil, fmt.Errorf("%w: testlet %q has %d, needs %d",
			ErrInsufficientPretestItems, id, len(pretest), initialPretestCount)
	}

	seen := make(map[string]struct{}, len(owned))
	for i, it := range owned {
		if strings.TrimSpace(it.ID) == "" {
			return nil, fmt.Errorf("%w: item at index %d", ErrInvalidItem, i)
		}
		if _, dup := seen[it.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateItem, it.ID)
		}
		seen[it.ID] = struct{}{}
	}

	t := &Testlet{
		id:                  id,
		initialPretestCount: initialPretestCount,
		items:               owned,
		pretest:             pretest,
		other:               other,
		shuffle:             ShuffleFullRange,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Default is New with DefaultInitialPretestCount.
func Default(id string, items []Item, opts ...Option) (*Testlet, error) {
	return New(id, DefaultInitialPretestCount, items, opts...)
}

func (t *Testlet) ID() string               { return t.id }
func (t *Testlet) InitialPretestCount() int { return t.initialPretestCount }
func (t *Testlet) Len() int                 { return len(t.items) }
func (t *Testlet) PretestCount() int        { return len(t.pretest) }
func (t *Testlet) OperationalCount() int    { return len(t.other) }

// Items returns the items in the order they were supplied to New.
func (t *Testlet) Items() []Item {
	out := make([]Item, len(t.items))
	copy(out, t.items)
	return out
}

// Randomize returns a new ordering of the testlet's items using a freshly
// seeded generator.
func (t *Testlet) Randomize() []Item {
	return t.RandomizeWith(newSource())
}

// RandomizeWith is Randomize with a caller-supplied source. src must not be
// shared between goroutines unless it is itself safe for concurrent use.
//
// The pretest items are shuffled first and the leading initialPretestCount
// of them become the prefix. The leftover pretest items join the remaining
// items, which are shuffled separately.
func (t *Testlet) RandomizeWith(src Source) []Item {
	pretest := make([]Item, len(t.pretest))
	copy(pretest, t.pretest)
	t.shuffle(src, pretest)

	k := t.initialPretestCount
	rest := make([]Item, 0, len(t.items)-k)
	rest = append(rest, pretest[k:]...)
	rest = append(rest, t.other...)
	t.shuffle(src, rest)

	out := make([]Item, 0, len(t.items))
	out = append(out, pretest[:k]...)
	out = append(out, rest...)
	return out
}
