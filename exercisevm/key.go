// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package exercisevm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/wrappers"
)

const (
	symbolPart byte = iota
	addressPart
	uint32Part
	uint64Part

	// MaxKeySize bounds the packed size of a key.
	MaxKeySize = 256
)

var (
	ErrEmptyKey   = errors.New("empty key")
	ErrInvalidKey = errors.New("invalid key")
)

// Key is a composite storage key. Every part is prefixed with its kind so
// that keys of different shapes never collide. Keys are immutable: each
// builder method returns a new Key.
//
//	NewKey("Balance").Address(addr)
//	NewKey("Donation").Uint32(id)
type Key struct {
	bytes []byte
	parts []string
	err   error
}

// NewKey starts a key with the tag [tag].
func NewKey(tag Symbol) Key {
	return Key{}.Symbol(tag)
}

// Symbol appends a symbol part.
func (k Key) Symbol(s Symbol) Key {
	if err := s.Verify(); err != nil {
		return k.fail(err)
	}
	return k.append(symbolPart, string(s), func(p *wrappers.Packer) {
		p.PackStr(string(s))
	})
}

// Address appends an account part.
func (k Key) Address(addr ids.ShortID) Key {
	return k.append(addressPart, addr.String(), func(p *wrappers.Packer) {
		p.PackFixedBytes(addr[:])
	})
}

// Uint32 appends a numeric part.
func (k Key) Uint32(v uint32) Key {
	return k.append(uint32Part, fmt.Sprint(v), func(p *wrappers.Packer) {
		p.PackInt(v)
	})
}

// Uint64 appends a numeric part.
func (k Key) Uint64(v uint64) Key {
	return k.append(uint64Part, fmt.Sprint(v), func(p *wrappers.Packer) {
		p.PackLong(v)
	})
}

// Bytes returns the packed representation of the key.
func (k Key) Bytes() []byte { return k.bytes }

// Err reports the first error hit while building the key.
func (k Key) Err() error {
	switch {
	case k.err != nil:
		return k.err
	case len(k.bytes) == 0:
		return ErrEmptyKey
	default:
		return nil
	}
}

func (k Key) String() string {
	return strings.Join(k.parts, "/")
}

func (k Key) append(kind byte, desc string, pack func(*wrappers.Packer)) Key {
	if k.err != nil {
		return k
	}
	p := wrappers.Packer{
		Bytes:   make([]byte, len(k.bytes), len(k.bytes)+1+wrappers.LongLen),
		Offset:  len(k.bytes),
		MaxSize: MaxKeySize,
	}
	copy(p.Bytes, k.bytes)
	p.PackByte(kind)
	pack(&p)
	if p.Err != nil {
		return k.fail(p.Err)
	}

	parts := make([]string, len(k.parts), len(k.parts)+1)
	copy(parts, k.parts)
	return Key{
		bytes: p.Bytes,
		parts: append(parts, desc),
	}
}

func (k Key) fail(err error) Key {
	return Key{
		bytes: k.bytes,
		parts: k.parts,
		err:   fmt.Errorf("%w: %v", ErrInvalidKey, err),
	}
}
