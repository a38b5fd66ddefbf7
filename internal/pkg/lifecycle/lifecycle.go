// Package lifecycle enforces status transitions for records whose status is
// drawn from a small fixed enumeration.
package lifecycle

import (
	"fmt"

	"github.com/yigit/alumnihub/internal/pkg/apperrors"
)

// Table maps a state to the states it may move to.
type Table[S ~string] map[S][]S

// Known reports whether s appears in the table, either as a source or a target.
func (t Table[S]) Known(s S) bool {
	if _, ok := t[s]; ok {
		return true
	}
	for _, targets := range t {
		for _, to := range targets {
			if to == s {
				return true
			}
		}
	}
	return false
}

// Allowed reports whether from -> to is a legal move. Staying in place is allowed
// for known states.
func (t Table[S]) Allowed(from, to S) bool {
	if !t.Known(from) || !t.Known(to) {
		return false
	}
	if from == to {
		return true
	}
	for _, next := range t[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Advance validates from -> to. A same-state move is a no-op and returns nil.
func (t Table[S]) Advance(from, to S) error {
	if t.Allowed(from, to) {
		return nil
	}
	return fmt.Errorf("%w: %s -> %s", apperrors.ErrIllegalTransition, from, to)
}

// Terminal reports whether no transition leaves s.
func (t Table[S]) Terminal(s S) bool {
	return t.Known(s) && len(t[s]) == 0
}
