// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package exercisevm

import (
	"strings"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyBytes(t *testing.T) {
	require := require.New(t)

	addr := ids.ShortID{1, 2, 3}
	base := NewKey("Balance")
	k := base.Address(addr)
	require.NoError(k.Err())
	require.Equal("Balance/"+addr.String(), k.String())

	// Builders never modify the receiver.
	require.Equal("Balance", base.String())

	// Numeric parts of different widths never collide.
	require.NotEqual(NewKey("N").Uint32(1).Bytes(), NewKey("N").Uint64(1).Bytes())
	// Neither do symbols and numbers with the same rendering.
	require.NotEqual(NewKey("N").Symbol("A").Bytes(), NewKey("N").Uint32(1).Bytes())
	require.Equal(NewKey("Vote").Uint32(4).Bytes(), NewKey("Vote").Uint32(4).Bytes())
}

func TestKeyErrors(t *testing.T) {
	assert := assert.New(t)

	assert.ErrorIs(Key{}.Err(), ErrEmptyKey)
	assert.ErrorIs(NewKey("").Err(), ErrInvalidKey)
	assert.ErrorIs(NewKey("a-b").Err(), ErrInvalidKey)
	assert.ErrorIs(NewKey("Ok").Symbol("not ok").Uint32(1).Err(), ErrInvalidKey)

	k := NewKey("Long")
	for i := 0; i < MaxKeySize; i++ {
		k = k.Uint64(uint64(i))
	}
	assert.ErrorIs(k.Err(), ErrInvalidKey)
}

func TestSymbol(t *testing.T) {
	tests := []struct {
		s     string
		valid bool
	}{
		{s: "Counter", valid: true},
		{s: "user_1", valid: true},
		{s: strings.Repeat("a", MaxSymbolLen), valid: true},
		{s: strings.Repeat("a", MaxSymbolLen+1), valid: false},
		{s: "", valid: false},
		{s: "with space", valid: false},
		{s: "ñ", valid: false},
	}
	for _, test := range tests {
		t.Run(test.s, func(t *testing.T) {
			_, err := NewSymbol(test.s)
			if test.valid {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, ErrInvalidSymbol)
			}
		})
	}
}

func TestParseTier(t *testing.T) {
	require := require.New(t)

	for _, tier := range []Tier{Temporary, Instance, Persistent} {
		parsed, err := ParseTier(tier.String())
		require.NoError(err)
		require.Equal(tier, parsed)
	}
	_, err := ParseTier("archive")
	require.ErrorIs(err, errUnknownTier)
}
