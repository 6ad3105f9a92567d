// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package hosttest spins up in-memory hosts for contract tests.
package hosttest

import (
	"context"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/timer/mockable"
	"github.com/stretchr/testify/require"

	log "github.com/inconshreveable/log15"

	"github.com/ava-labs/exercisevm/exercisevm"
)

// Genesis is the clock value every harness starts at.
var Genesis = time.Unix(1_700_000_000, 0)

// Config keeps TTLs short enough for tests to watch them move.
func Config() exercisevm.Config {
	cfg := exercisevm.DefaultConfig()
	cfg.MinTemporaryTTL = 16
	cfg.MinPersistentTTL = 50
	cfg.MaxEntryTTL = 10_000
	return cfg
}

type Harness struct {
	T     testing.TB
	Ctx   context.Context
	Host  *exercisevm.Host
	Clock *mockable.Clock

	cfg exercisevm.Config
}

// New returns a harness whose registry holds [contracts].
func New(t testing.TB, contracts ...*exercisevm.Contract) *Harness {
	return NewWithConfig(t, Config(), contracts...)
}

func NewWithConfig(t testing.TB, cfg exercisevm.Config, contracts ...*exercisevm.Contract) *Harness {
	require := require.New(t)

	registry, err := exercisevm.NewRegistry(contracts...)
	require.NoError(err)

	clock := &mockable.Clock{}
	clock.Set(Genesis)

	logger := log.New()
	logger.SetHandler(log.DiscardHandler())

	host, err := exercisevm.New(memdb.New(), registry, cfg,
		exercisevm.WithClock(clock),
		exercisevm.WithLogger(logger),
	)
	require.NoError(err)
	t.Cleanup(func() { _ = host.Close() })

	return &Harness{
		T:     t,
		Ctx:   context.Background(),
		Host:  host,
		Clock: clock,
		cfg:   cfg,
	}
}

// Deploy deploys [name] and fails the test on error.
func (h *Harness) Deploy(name string) ids.ID {
	contractID, err := h.Host.Deploy(h.Ctx, name)
	require.NoError(h.T, err)
	return contractID
}

// Advance moves the clock forward by [ledgers] ledgers.
func (h *Harness) Advance(ledgers uint32) {
	h.Clock.Set(h.Clock.Time().Add(time.Duration(ledgers) * h.cfg.LedgerInterval))
}

// Events returns every committed event.
func (h *Harness) Events() []exercisevm.Event {
	return h.Host.Events(0, 0)
}

// LastEvent returns the most recent committed event.
func (h *Harness) LastEvent() exercisevm.Event {
	events := h.Events()
	require.NotEmpty(h.T, events)
	return events[len(events)-1]
}

// View runs [fn] without committing anything, for inspecting storage.
func (h *Harness) View(contractID ids.ID, fn func(*exercisevm.Env) error) {
	require.NoError(h.T, exercisevm.Exec(h.Ctx, h.Host, contractID, fn, exercisevm.Simulate()))
}

// Addr returns a fresh account.
func Addr() ids.ShortID {
	return ids.GenerateTestShortID()
}
