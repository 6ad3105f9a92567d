// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package exercisevm

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"
)

func deployStore(t *testing.T) (*testHost, ids.ID) {
	h := newTestHost(t)
	contractID, err := h.Deploy(context.Background(), "store")
	require.NoError(t, err)
	return h, contractID
}

func (h *testHost) exec(t *testing.T, contractID ids.ID, fn func(*Env) error) {
	require.NoError(t, Exec(context.Background(), h.Host, contractID, fn))
}

func (h *testHost) ttl(t *testing.T, contractID ids.ID, kv func(*Storage) *EntryStore, key Key) uint32 {
	ttl, err := Call(context.Background(), h.Host, contractID, func(env *Env) (uint32, error) {
		return kv(env.Storage()).TTL(key)
	}, Simulate())
	require.NoError(t, err)
	return ttl
}

func persistent(s *Storage) *EntryStore { return s.Persistent() }
func temporary(s *Storage) *EntryStore  { return s.Temporary() }

func TestEntryCreationTTL(t *testing.T) {
	require := require.New(t)
	h, contractID := deployStore(t)

	key := NewKey("Value")
	h.exec(t, contractID, func(env *Env) error {
		if err := env.Storage().Persistent().Set(key, uint32(1)); err != nil {
			return err
		}
		return env.Storage().Temporary().Set(key, uint32(2))
	})

	// Minimum TTLs count the current ledger.
	require.Equal(uint32(49), h.ttl(t, contractID, persistent, key))
	require.Equal(uint32(15), h.ttl(t, contractID, temporary, key))

	instanceTTL, err := Call(context.Background(), h.Host, contractID, func(env *Env) (uint32, error) {
		return env.Storage().Instance().TTL()
	})
	require.NoError(err)
	require.Equal(uint32(49), instanceTTL)
}

func TestExtendTTL(t *testing.T) {
	require := require.New(t)
	h, contractID := deployStore(t)

	key := NewKey("Value")
	h.exec(t, contractID, func(env *Env) error {
		return env.Storage().Persistent().Set(key, uint64(10))
	})
	h.advance(10)
	require.Equal(uint32(39), h.ttl(t, contractID, persistent, key))

	// Above the threshold nothing changes.
	h.exec(t, contractID, func(env *Env) error {
		return env.Storage().Persistent().ExtendTTL(key, 30, 100)
	})
	require.Equal(uint32(39), h.ttl(t, contractID, persistent, key))

	h.exec(t, contractID, func(env *Env) error {
		return env.Storage().Persistent().ExtendTTL(key, 50, 100)
	})
	require.Equal(uint32(100), h.ttl(t, contractID, persistent, key))

	// Reads leave the TTL alone.
	h.advance(5)
	h.exec(t, contractID, func(env *Env) error {
		v, err := GetOr(env.Storage().Persistent(), key, uint64(0))
		if err != nil {
			return err
		}
		require.Equal(uint64(10), v)
		return nil
	})
	require.Equal(uint32(95), h.ttl(t, contractID, persistent, key))

	// So do updates.
	h.exec(t, contractID, func(env *Env) error {
		return env.Storage().Persistent().Set(key, uint64(11))
	})
	require.Equal(uint32(95), h.ttl(t, contractID, persistent, key))
}

func TestExtendTTLErrors(t *testing.T) {
	require := require.New(t)
	h, contractID := deployStore(t)
	ctx := context.Background()

	key := NewKey("Value")
	h.exec(t, contractID, func(env *Env) error {
		return env.Storage().Persistent().Set(key, uint32(1))
	})

	tests := []struct {
		name      string
		fn        func(*Env) error
		expectErr error
	}{
		{
			name:      "threshold above extend_to",
			fn:        func(env *Env) error { return env.Storage().Persistent().ExtendTTL(key, 200, 100) },
			expectErr: ErrInvalidTTL,
		},
		{
			name:      "extend_to above max",
			fn:        func(env *Env) error { return env.Storage().Persistent().ExtendTTL(key, 100, 10_001) },
			expectErr: ErrInvalidTTL,
		},
		{
			name:      "instance extend_to above max",
			fn:        func(env *Env) error { return env.Storage().Instance().ExtendTTL(100, 10_001) },
			expectErr: ErrInvalidTTL,
		},
		{
			name:      "missing key",
			fn:        func(env *Env) error { return env.Storage().Persistent().ExtendTTL(NewKey("Other"), 10, 100) },
			expectErr: ErrMissingEntry,
		},
		{
			name: "ttl of missing key",
			fn: func(env *Env) error {
				_, err := env.Storage().Temporary().TTL(key)
				return err
			},
			expectErr: ErrMissingEntry,
		},
		{
			name:      "invalid key",
			fn:        func(env *Env) error { return env.Storage().Persistent().Set(NewKey("bad key"), uint32(1)) },
			expectErr: ErrInvalidKey,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := Exec(ctx, h.Host, contractID, test.fn)
			require.ErrorIs(err, test.expectErr)
		})
	}

	// A failed extension leaves the TTL untouched.
	require.Equal(uint32(49), h.ttl(t, contractID, persistent, key))
}

func TestTemporaryExpiry(t *testing.T) {
	require := require.New(t)
	h, contractID := deployStore(t)

	key := NewKey("Nonce").Uint32(7)
	h.exec(t, contractID, func(env *Env) error {
		return env.Storage().Temporary().Set(key, true)
	})

	h.advance(15)
	require.Zero(h.ttl(t, contractID, temporary, key))

	h.advance(1)
	h.exec(t, contractID, func(env *Env) error {
		has, err := env.Storage().Temporary().Has(key)
		require.NoError(err)
		require.False(has)

		// Writing again starts a fresh entry.
		return env.Storage().Temporary().Set(key, false)
	})
	require.Equal(uint32(15), h.ttl(t, contractID, temporary, key))
}

func TestPersistentArchive(t *testing.T) {
	require := require.New(t)
	h, contractID := deployStore(t)
	ctx := context.Background()

	key := NewKey("Balance").Address(ids.GenerateTestShortID())
	h.exec(t, contractID, func(env *Env) error {
		if err := env.Storage().Instance().ExtendTTL(1000, 1000); err != nil {
			return err
		}
		return env.Storage().Persistent().Set(key, uint64(500))
	})

	h.advance(50)
	for _, fn := range []func(*Env) error{
		func(env *Env) error {
			_, err := env.Storage().Persistent().Has(key)
			return err
		},
		func(env *Env) error { return env.Storage().Persistent().Set(key, uint64(1)) },
		func(env *Env) error { return env.Storage().Persistent().Remove(key) },
		func(env *Env) error { return env.Storage().Persistent().ExtendTTL(key, 10, 100) },
	} {
		require.ErrorIs(Exec(ctx, h.Host, contractID, fn), ErrArchived)
	}

	require.ErrorIs(h.RestoreEntry(ctx, contractID, NewKey("Missing")), ErrMissingEntry)
	require.NoError(h.RestoreEntry(ctx, contractID, key))
	require.Equal(uint32(49), h.ttl(t, contractID, persistent, key))

	v, err := Call(ctx, h.Host, contractID, func(env *Env) (uint64, error) {
		return GetOr(env.Storage().Persistent(), key, uint64(0))
	})
	require.NoError(err)
	require.Equal(uint64(500), v)
}

func TestInstanceArchive(t *testing.T) {
	require := require.New(t)
	h, contractID := deployStore(t)
	ctx := context.Background()

	key := NewKey("Admin")
	admin := ids.GenerateTestShortID()
	h.exec(t, contractID, func(env *Env) error {
		return env.Storage().Instance().Set(key, admin)
	})

	h.advance(49)
	h.exec(t, contractID, func(env *Env) error { return nil })

	h.advance(1)
	require.ErrorIs(Exec(ctx, h.Host, contractID, func(env *Env) error { return nil }), ErrArchived)

	require.NoError(h.RestoreInstance(ctx, contractID))
	got, err := Call(ctx, h.Host, contractID, func(env *Env) (ids.ShortID, error) {
		v, _, err := Get[ids.ShortID](env.Storage().Instance(), key)
		return v, err
	})
	require.NoError(err)
	require.Equal(admin, got)

	require.ErrorIs(h.RestoreInstance(ctx, ids.GenerateTestID()), ErrContractNotFound)
}

func TestInstanceExtendTTL(t *testing.T) {
	require := require.New(t)
	h, contractID := deployStore(t)
	ctx := context.Background()

	h.advance(20)
	ttl, err := Call(ctx, h.Host, contractID, func(env *Env) (uint32, error) {
		if err := env.Storage().Instance().ExtendTTL(100, 200); err != nil {
			return 0, err
		}
		return env.Storage().Instance().TTL()
	})
	require.NoError(err)
	require.Equal(uint32(200), ttl)

	// Instance values share the instance TTL and survive past their own
	// creation ledger plus the minimum.
	h.exec(t, contractID, func(env *Env) error {
		return env.Storage().Instance().Set(NewKey("Count"), uint32(3))
	})
	h.advance(150)
	n, err := Call(ctx, h.Host, contractID, func(env *Env) (uint32, error) {
		return GetOr(env.Storage().Instance(), NewKey("Count"), uint32(0))
	})
	require.NoError(err)
	require.Equal(uint32(3), n)
}

func TestRemove(t *testing.T) {
	require := require.New(t)
	h, contractID := deployStore(t)

	key := NewKey("Name")
	h.exec(t, contractID, func(env *Env) error {
		for _, kv := range []KV{env.Storage().Instance(), env.Storage().Persistent(), env.Storage().Temporary()} {
			if err := kv.Set(key, "value"); err != nil {
				return err
			}
		}
		return nil
	})
	h.exec(t, contractID, func(env *Env) error {
		for _, kv := range []KV{env.Storage().Instance(), env.Storage().Persistent(), env.Storage().Temporary()} {
			if err := kv.Remove(key); err != nil {
				return err
			}
			has, err := kv.Has(key)
			require.NoError(err)
			require.False(has)
		}
		return nil
	})
}

func TestTiersAreIsolated(t *testing.T) {
	require := require.New(t)
	h, first := deployStore(t)
	second, err := h.Deploy(context.Background(), "store")
	require.NoError(err)

	key := NewKey("Shared")
	h.exec(t, first, func(env *Env) error {
		return env.Storage().Persistent().Set(key, uint32(1))
	})
	h.exec(t, first, func(env *Env) error {
		for _, kv := range []KV{env.Storage().Instance(), env.Storage().Temporary()} {
			has, err := kv.Has(key)
			require.NoError(err)
			require.False(has)
		}
		return nil
	})
	h.exec(t, second, func(env *Env) error {
		has, err := env.Storage().Persistent().Has(key)
		require.NoError(err)
		require.False(has)
		return nil
	})
}
