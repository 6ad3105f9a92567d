// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package exercisevm

import (
	"errors"
	"fmt"
)

// MaxSymbolLen is the longest accepted symbol.
const MaxSymbolLen = 32

var ErrInvalidSymbol = errors.New("invalid symbol")

// Symbol is a short identifier used for event topics, key tags and small
// textual values.
type Symbol string

// NewSymbol returns [s] as a Symbol if it is 1 to [MaxSymbolLen] characters
// of [a-zA-Z0-9_].
func NewSymbol(s string) (Symbol, error) {
	sym := Symbol(s)
	return sym, sym.Verify()
}

func (s Symbol) Verify() error {
	if len(s) == 0 || len(s) > MaxSymbolLen {
		return fmt.Errorf("%w: length %d", ErrInvalidSymbol, len(s))
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
		default:
			return fmt.Errorf("%w: %q contains %q", ErrInvalidSymbol, string(s), c)
		}
	}
	return nil
}
