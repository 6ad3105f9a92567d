// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package exercisevm

import (
	"errors"
	"fmt"
)

// Tier is the storage class of a key. The tier decides how long an entry
// lives and what happens to it once its TTL runs out.
type Tier byte

const (
	// Temporary entries are cheap and disappear once expired.
	Temporary Tier = iota
	// Instance entries share one TTL with the contract instance.
	Instance
	// Persistent entries carry their own TTL and are archived on expiry.
	Persistent
)

var errUnknownTier = errors.New("unknown tier")

func (t Tier) String() string {
	switch t {
	case Temporary:
		return "temporary"
	case Instance:
		return "instance"
	case Persistent:
		return "persistent"
	default:
		return fmt.Sprintf("tier(%d)", byte(t))
	}
}

// ParseTier is the inverse of Tier.String.
func ParseTier(s string) (Tier, error) {
	for _, t := range []Tier{Temporary, Instance, Persistent} {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", errUnknownTier, s)
}

func (t Tier) prefix() []byte {
	return []byte(t.String())
}
