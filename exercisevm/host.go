// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package exercisevm

import (
	"context"
	"fmt"
	"runtime/debug"
	"sort"
	"sync"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/ava-labs/avalanchego/cache"
	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"
	"github.com/ava-labs/avalanchego/utils/set"
	"github.com/ava-labs/avalanchego/utils/timer/mockable"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/ava-labs/avalanchego/version"
	"github.com/prometheus/client_golang/prometheus"

	log "github.com/inconshreveable/log15"
)

const Name = "exercisevm"

var Version = &version.Semantic{
	Major: 1,
	Minor: 0,
	Patch: 0,
}

// Host runs contract invocations against a tiered key-value store. Every
// invocation runs alone and either commits all of its writes or none.
type Host struct {
	cfg        Config
	log        log.Logger
	clock      *mockable.Clock
	registry   *Registry
	registerer prometheus.Registerer
	metrics    *metrics
	bus        EventBus.Bus

	lock      sync.Mutex
	db        database.Database
	contracts *cache.LRU[ids.ID, *ContractRecord]
	genesis   time.Time
	events    *eventLog
	closed    bool
}

type Option func(*Host)

func WithLogger(l log.Logger) Option {
	return func(h *Host) { h.log = l }
}

// WithClock sets the clock ledgers are derived from.
func WithClock(c *mockable.Clock) Option {
	return func(h *Host) { h.clock = c }
}

func WithRegisterer(r prometheus.Registerer) Option {
	return func(h *Host) { h.registerer = r }
}

// New returns a host over [db]. The first host started on a database records
// the genesis time that ledger sequences count from.
func New(db database.Database, registry *Registry, cfg Config, opts ...Option) (*Host, error) {
	if err := cfg.Verify(); err != nil {
		return nil, err
	}
	h := &Host{
		cfg:        cfg,
		log:        log.New("module", Name),
		clock:      &mockable.Clock{},
		registry:   registry,
		registerer: prometheus.NewRegistry(),
		bus:        EventBus.New(),
		db:         db,
		contracts:  &cache.LRU[ids.ID, *ContractRecord]{Size: cfg.ContractCacheSize},
		events:     newEventLog(cfg.EventLogSize),
	}
	for _, opt := range opts {
		opt(h)
	}

	m, err := newMetrics(h.registerer)
	if err != nil {
		return nil, fmt.Errorf("couldn't register metrics: %w", err)
	}
	h.metrics = m

	if err := h.initGenesis(); err != nil {
		return nil, err
	}
	h.log.Info("initialized host",
		"version", Version,
		"genesis", h.genesis,
		"ledger", h.ledger().Sequence,
	)
	return h, nil
}

func (h *Host) initGenesis() error {
	s := newState(h.db, h.contracts)
	initialized, err := s.IsInitialized()
	if err != nil {
		return err
	}
	if initialized {
		h.genesis, err = s.GetGenesis()
		return err
	}

	h.genesis = h.clock.Time().Truncate(time.Second)
	if err := s.SetGenesis(h.genesis); err != nil {
		return fmt.Errorf("error while setting genesis: %w", err)
	}
	return s.Commit()
}

// Ledger returns the ledger open right now.
func (h *Host) Ledger() Ledger {
	return h.ledger()
}

func (h *Host) ledger() Ledger {
	return ledgerAt(h.genesis, h.clock.Time(), h.cfg.LedgerInterval)
}

// Registry returns the contracts this host can deploy.
func (h *Host) Registry() *Registry {
	return h.registry
}

// Deploy creates a new instance of the registered contract [name].
func (h *Host) Deploy(ctx context.Context, name string) (ids.ID, error) {
	if err := ctx.Err(); err != nil {
		return ids.Empty, err
	}
	if _, ok := h.registry.Lookup(name); !ok {
		return ids.Empty, fmt.Errorf("%w: %s", ErrUnknownContract, name)
	}

	h.lock.Lock()
	defer h.lock.Unlock()

	if h.closed {
		return ids.Empty, ErrClosed
	}

	s := newState(h.db, h.contracts)
	nonce, err := s.NextDeployNonce()
	if err != nil {
		s.Abort()
		return ids.Empty, err
	}
	contractID := contractIDFor(name, nonce)
	ledger := h.ledger()

	errs := wrappers.Errs{}
	errs.Add(
		s.PutContract(contractID, &ContractRecord{Name: name, Deployed: ledger.Sequence}),
		newInstanceStore(s.tierDB(contractID, Instance), ledger.Sequence, &h.cfg).create(),
	)
	if errs.Errored() {
		s.Abort()
		return ids.Empty, errs.Err
	}
	if err := s.Commit(); err != nil {
		return ids.Empty, fmt.Errorf("error while committing deployment: %w", err)
	}

	h.metrics.deployments.Inc()
	h.log.Info("deployed contract", "name", name, "contractID", contractID, "ledger", ledger.Sequence)
	return contractID, nil
}

func contractIDFor(name string, nonce uint64) ids.ID {
	p := wrappers.Packer{MaxSize: wrappers.ShortLen + len(name) + wrappers.LongLen}
	p.PackStr(name)
	p.PackLong(nonce)
	return ids.ID(hashing.ComputeHash256Array(p.Bytes))
}

// DeployedContract describes a deployed instance.
type DeployedContract struct {
	ContractID ids.ID `json:"contractID"`
	ContractRecord
}

// Contracts lists every deployed instance ordered by deployment ledger.
func (h *Host) Contracts() ([]DeployedContract, error) {
	h.lock.Lock()
	defer h.lock.Unlock()

	s := newState(h.db, h.contracts)
	contractIDs, err := s.ContractIDs()
	if err != nil {
		return nil, err
	}
	out := make([]DeployedContract, 0, len(contractIDs))
	for _, contractID := range contractIDs {
		rec, err := s.GetContract(contractID)
		if err != nil {
			return nil, err
		}
		out = append(out, DeployedContract{ContractID: contractID, ContractRecord: *rec})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Deployed < out[j].Deployed })
	return out, nil
}

// Result is the outcome of a committed (or simulated) invocation.
type Result struct {
	Value  interface{} `json:"value"`
	Events []Event     `json:"events"`
	Ledger Ledger      `json:"ledger"`
}

type invokeConfig struct {
	auths    set.Set[ids.ShortID]
	allAuths bool
	simulate bool
}

type CallOption func(*invokeConfig)

// WithAuths marks [addrs] as having signed the invocation.
func WithAuths(addrs ...ids.ShortID) CallOption {
	return func(c *invokeConfig) { c.auths.Add(addrs...) }
}

// WithAllAuths makes every RequireAuth succeed.
func WithAllAuths() CallOption {
	return func(c *invokeConfig) { c.allAuths = true }
}

// Simulate runs the invocation and discards its writes and events.
func Simulate() CallOption {
	return func(c *invokeConfig) { c.simulate = true }
}

// Invoke calls [method] on the deployed contract [contractID] with JSON
// arguments.
func (h *Host) Invoke(ctx context.Context, contractID ids.ID, method string, args Args, opts ...CallOption) (*Result, error) {
	c, err := h.lookup(contractID)
	if err != nil {
		return nil, err
	}
	m, ok := c.Method(method)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownMethod, c.Name, method)
	}
	if m.ReadOnly {
		opts = append(opts, Simulate())
	}
	return h.run(ctx, contractID, c.Name+"."+method, opts, func(env *Env) (interface{}, error) {
		return m.Call(env, args)
	})
}

func (h *Host) lookup(contractID ids.ID) (*Contract, error) {
	h.lock.Lock()
	rec, err := newState(h.db, h.contracts).GetContract(contractID)
	h.lock.Unlock()
	if err != nil {
		return nil, err
	}
	c, ok := h.registry.Lookup(rec.Name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownContract, rec.Name)
	}
	return c, nil
}

// Call runs [fn] as an invocation of [contractID] and returns its value.
func Call[T any](ctx context.Context, h *Host, contractID ids.ID, fn func(*Env) (T, error), opts ...CallOption) (T, error) {
	res, err := h.run(ctx, contractID, "", opts, func(env *Env) (interface{}, error) {
		return fn(env)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return resultAs[T](res.Value)
}

// resultAs converts an invocation value back to [T]. A nil value is the
// zero [T].
func resultAs[T any](value interface{}) (T, error) {
	v, ok := value.(T)
	if !ok && value != nil {
		return v, Abortf("result is %T, not %T", value, v)
	}
	return v, nil
}

// Exec runs [fn] as an invocation of [contractID].
func Exec(ctx context.Context, h *Host, contractID ids.ID, fn func(*Env) error, opts ...CallOption) error {
	_, err := h.run(ctx, contractID, "", opts, func(env *Env) (interface{}, error) {
		return nil, fn(env)
	})
	return err
}

func (h *Host) run(
	ctx context.Context,
	contractID ids.ID,
	method string,
	opts []CallOption,
	fn func(*Env) (interface{}, error),
) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := invokeConfig{auths: set.NewSet[ids.ShortID](1)}
	for _, opt := range opts {
		opt(&cfg)
	}

	start := time.Now()
	res, err := h.runLocked(contractID, &cfg, fn)
	h.metrics.duration.Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		h.metrics.invocations.WithLabelValues(resultCommitted).Inc()
	case IsAbort(err):
		h.metrics.invocations.WithLabelValues(resultAborted).Inc()
		h.log.Debug("invocation aborted", "contractID", contractID, "method", method, "err", err)
		return nil, err
	default:
		h.metrics.invocations.WithLabelValues(resultFailed).Inc()
		h.log.Debug("invocation failed", "contractID", contractID, "method", method, "err", err)
		return nil, err
	}

	if !cfg.simulate {
		h.metrics.events.Add(float64(len(res.Events)))
		for _, e := range res.Events {
			h.bus.Publish(EventTopic, e)
		}
	}
	return res, nil
}

// runLocked executes [fn] over a fresh versiondb. Any error or panic drops
// every write; success commits them and indexes the buffered events.
func (h *Host) runLocked(contractID ids.ID, cfg *invokeConfig, fn func(*Env) (interface{}, error)) (*Result, error) {
	h.lock.Lock()
	defer h.lock.Unlock()

	if h.closed {
		return nil, ErrClosed
	}

	ledger := h.ledger()
	s := newState(h.db, h.contracts)
	env, err := h.newEnv(s, contractID, ledger, cfg)
	if err != nil {
		s.Abort()
		return nil, err
	}

	value, err := h.execute(env, fn)
	if err == nil {
		err = env.events.Err()
	}
	if err != nil || cfg.simulate {
		s.Abort()
		if err != nil {
			return nil, err
		}
		return &Result{Value: value, Events: env.events.Pending(), Ledger: ledger}, nil
	}

	if err := s.Commit(); err != nil {
		return nil, fmt.Errorf("error while committing invocation: %w", err)
	}
	return &Result{
		Value:  value,
		Events: h.events.append(env.events.Pending()),
		Ledger: ledger,
	}, nil
}

func (h *Host) newEnv(s *state, contractID ids.ID, ledger Ledger, cfg *invokeConfig) (*Env, error) {
	if _, err := s.GetContract(contractID); err != nil {
		return nil, err
	}
	instance := newInstanceStore(s.tierDB(contractID, Instance), ledger.Sequence, &h.cfg)
	if err := instance.verifyLive(); err != nil {
		return nil, err
	}
	return &Env{
		contractID: contractID,
		storage: &Storage{
			instance:   instance,
			persistent: newEntryStore(Persistent, s.tierDB(contractID, Persistent), ledger.Sequence, &h.cfg),
			temporary:  newEntryStore(Temporary, s.tierDB(contractID, Temporary), ledger.Sequence, &h.cfg),
		},
		events: &Events{
			contractID: contractID,
			ledger:     ledger.Sequence,
		},
		ledger:   ledger,
		auths:    cfg.auths,
		allAuths: cfg.allAuths,
		log:      h.log.New("contractID", contractID),
	}, nil
}

// execute turns a panic in [fn] into an abort.
func (h *Host) execute(env *Env, fn func(*Env) (interface{}, error)) (value interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			h.log.Debug("recovered from panic", "panic", r, "stack", string(debug.Stack()))
			value = nil
			err = Abortf("%v", r)
		}
	}()
	return fn(env)
}

// RestoreInstance revives the archived instance of [contractID].
func (h *Host) RestoreInstance(ctx context.Context, contractID ids.ID) error {
	return h.restore(ctx, contractID, func(s *state, seq uint32) error {
		return newInstanceStore(s.tierDB(contractID, Instance), seq, &h.cfg).restore()
	})
}

// RestoreEntry revives the archived persistent entry [key] of [contractID].
func (h *Host) RestoreEntry(ctx context.Context, contractID ids.ID, key Key) error {
	return h.restore(ctx, contractID, func(s *state, seq uint32) error {
		return newEntryStore(Persistent, s.tierDB(contractID, Persistent), seq, &h.cfg).restore(key)
	})
}

func (h *Host) restore(ctx context.Context, contractID ids.ID, fn func(*state, uint32) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	h.lock.Lock()
	defer h.lock.Unlock()

	if h.closed {
		return ErrClosed
	}
	s := newState(h.db, h.contracts)
	if _, err := s.GetContract(contractID); err != nil {
		return err
	}
	if err := fn(s, h.ledger().Sequence); err != nil {
		s.Abort()
		return err
	}
	return s.Commit()
}

// Events returns up to [limit] committed events starting at [index].
func (h *Host) Events(index uint64, limit int) []Event {
	h.lock.Lock()
	defer h.lock.Unlock()

	return h.events.since(index, limit)
}

// Subscribe calls [fn] with every committed event. The returned function
// removes the subscription.
func (h *Host) Subscribe(fn func(Event)) (func() error, error) {
	if err := h.bus.Subscribe(EventTopic, fn); err != nil {
		return nil, err
	}
	return func() error {
		return h.bus.Unsubscribe(EventTopic, fn)
	}, nil
}

// HealthCheck reports whether the host can still serve invocations.
func (h *Host) HealthCheck(ctx context.Context) (interface{}, error) {
	h.lock.Lock()
	defer h.lock.Unlock()

	if h.closed {
		return nil, ErrClosed
	}
	return h.db.HealthCheck(ctx)
}

// Close closes the underlying database
func (h *Host) Close() error {
	h.lock.Lock()
	defer h.lock.Unlock()

	if h.closed {
		return nil
	}
	h.closed = true
	h.log.Info("closing host")
	return h.db.Close()
}
