// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package exercisevm

import (
	"errors"
	"fmt"
	"math"

	"github.com/ava-labs/avalanchego/database"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

var (
	// instanceMetaKey holds the instance TTL. Packed keys always start with a
	// part kind, so it cannot collide with contract keys.
	instanceMetaKey = []byte{0xff}

	_ KV = (*EntryStore)(nil)
	_ KV = (*InstanceStore)(nil)
)

// KV is the read/write surface every tier offers.
type KV interface {
	Has(key Key) (bool, error)
	// Get decodes the value at [key] into [dst] and reports whether the key
	// was present.
	Get(key Key, dst interface{}) (bool, error)
	Set(key Key, value interface{}) error
	Remove(key Key) error
}

// Get returns the value at [key] and whether it was present.
func Get[T any](kv KV, key Key) (T, bool, error) {
	var v T
	ok, err := kv.Get(key, &v)
	if err != nil || !ok {
		var zero T
		return zero, false, err
	}
	return v, true, nil
}

// GetOr returns the value at [key], or [def] if the key is absent.
func GetOr[T any](kv KV, key Key, def T) (T, error) {
	v, ok, err := Get[T](kv, key)
	switch {
	case err != nil:
		var zero T
		return zero, err
	case !ok:
		return def, nil
	default:
		return v, nil
	}
}

// entry is the stored envelope of temporary and persistent values.
type entry struct {
	LiveUntil uint32 `serialize:"true"`
	Value     []byte `serialize:"true"`
}

func (e *entry) live(seq uint32) bool { return e.LiveUntil >= seq }

func (e *entry) ttl(seq uint32) uint32 {
	if !e.live(seq) {
		return 0
	}
	return e.LiveUntil - seq
}

// liveUntil returns the last live ledger of an entry that lives [ttl]
// ledgers after [seq].
func liveUntil(seq, ttl uint32) uint32 {
	v, err := smath.Add(seq, ttl)
	if err != nil {
		return math.MaxUint32
	}
	return v
}

// Storage gives a contract access to its three tiers.
type Storage struct {
	instance   *InstanceStore
	persistent *EntryStore
	temporary  *EntryStore
}

func (s *Storage) Instance() *InstanceStore { return s.instance }
func (s *Storage) Persistent() *EntryStore  { return s.persistent }
func (s *Storage) Temporary() *EntryStore   { return s.temporary }

// EntryStore is a tier whose entries carry their own TTL.
type EntryStore struct {
	tier Tier
	db   database.Database
	seq  uint32
	cfg  *Config
}

func newEntryStore(t Tier, db database.Database, seq uint32, cfg *Config) *EntryStore {
	return &EntryStore{
		tier: t,
		db:   db,
		seq:  seq,
		cfg:  cfg,
	}
}

// load returns the live entry at [key], or nil if there is none. Expired
// persistent entries are archived and cannot be touched until restored.
func (s *EntryStore) load(key Key) (*entry, error) {
	if err := key.Err(); err != nil {
		return nil, err
	}
	e, err := s.loadRaw(key)
	if err != nil || e == nil {
		return nil, err
	}
	if e.live(s.seq) {
		return e, nil
	}
	if s.tier == Temporary {
		return nil, nil
	}
	return nil, fmt.Errorf("%w: %s %s expired at ledger %d", ErrArchived, s.tier, key, e.LiveUntil)
}

func (s *EntryStore) loadRaw(key Key) (*entry, error) {
	b, err := s.db.Get(key.Bytes())
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	e := &entry{}
	return e, unmarshal(b, e)
}

func (s *EntryStore) put(key Key, e *entry) error {
	b, err := marshal(e)
	if err != nil {
		return err
	}
	return s.db.Put(key.Bytes(), b)
}

func (s *EntryStore) Has(key Key) (bool, error) {
	e, err := s.load(key)
	return e != nil, err
}

func (s *EntryStore) Get(key Key, dst interface{}) (bool, error) {
	e, err := s.load(key)
	if err != nil || e == nil {
		return false, err
	}
	if err := unmarshal(e.Value, dst); err != nil {
		return false, fmt.Errorf("couldn't decode %s: %w", key, err)
	}
	return true, nil
}

// Set writes [value] at [key]. A new entry starts with the tier's minimum
// TTL; overwriting a live entry keeps its TTL.
func (s *EntryStore) Set(key Key, value interface{}) error {
	e, err := s.load(key)
	if err != nil {
		return err
	}
	b, err := marshal(value)
	if err != nil {
		return fmt.Errorf("couldn't encode %s: %w", key, err)
	}
	if e == nil {
		e = &entry{LiveUntil: liveUntil(s.seq, s.cfg.minTTL(s.tier)-1)}
	}
	e.Value = b
	return s.put(key, e)
}

func (s *EntryStore) Remove(key Key) error {
	if _, err := s.load(key); err != nil {
		return err
	}
	return s.db.Delete(key.Bytes())
}

// ExtendTTL sets the TTL of [key] to [extendTo] if it is below [threshold].
func (s *EntryStore) ExtendTTL(key Key, threshold, extendTo uint32) error {
	if err := s.cfg.verifyExtension(threshold, extendTo); err != nil {
		return err
	}
	e, err := s.load(key)
	if err != nil {
		return err
	}
	if e == nil {
		return fmt.Errorf("%w: %s %s", ErrMissingEntry, s.tier, key)
	}
	if e.ttl(s.seq) >= threshold {
		return nil
	}
	e.LiveUntil = liveUntil(s.seq, extendTo)
	return s.put(key, e)
}

// TTL returns how many ledgers [key] stays live after the current one.
func (s *EntryStore) TTL(key Key) (uint32, error) {
	e, err := s.load(key)
	if err != nil {
		return 0, err
	}
	if e == nil {
		return 0, fmt.Errorf("%w: %s %s", ErrMissingEntry, s.tier, key)
	}
	return e.ttl(s.seq), nil
}

// restore revives an archived entry with a fresh minimum TTL.
func (s *EntryStore) restore(key Key) error {
	if err := key.Err(); err != nil {
		return err
	}
	e, err := s.loadRaw(key)
	if err != nil {
		return err
	}
	if e == nil {
		return fmt.Errorf("%w: %s %s", ErrMissingEntry, s.tier, key)
	}
	if e.live(s.seq) {
		return nil
	}
	e.LiveUntil = liveUntil(s.seq, s.cfg.minTTL(s.tier)-1)
	return s.put(key, e)
}

// InstanceStore is the contract-wide tier. All of its entries live and
// expire together with the contract instance.
type InstanceStore struct {
	db  database.Database
	seq uint32
	cfg *Config
}

func newInstanceStore(db database.Database, seq uint32, cfg *Config) *InstanceStore {
	return &InstanceStore{
		db:  db,
		seq: seq,
		cfg: cfg,
	}
}

func (s *InstanceStore) meta() (*entry, error) {
	b, err := s.db.Get(instanceMetaKey)
	if err != nil {
		return nil, err
	}
	e := &entry{}
	return e, unmarshal(b, e)
}

func (s *InstanceStore) putMeta(e *entry) error {
	b, err := marshal(e)
	if err != nil {
		return err
	}
	return s.db.Put(instanceMetaKey, b)
}

// create starts the instance with the persistent minimum TTL.
func (s *InstanceStore) create() error {
	return s.putMeta(&entry{LiveUntil: liveUntil(s.seq, s.cfg.MinPersistentTTL-1)})
}

// verifyLive fails with ErrArchived once the instance has expired.
func (s *InstanceStore) verifyLive() error {
	e, err := s.meta()
	if err != nil {
		return err
	}
	if !e.live(s.seq) {
		return fmt.Errorf("%w: instance expired at ledger %d", ErrArchived, e.LiveUntil)
	}
	return nil
}

func (s *InstanceStore) restore() error {
	e, err := s.meta()
	if err != nil {
		return err
	}
	if e.live(s.seq) {
		return nil
	}
	e.LiveUntil = liveUntil(s.seq, s.cfg.MinPersistentTTL-1)
	return s.putMeta(e)
}

func (s *InstanceStore) Has(key Key) (bool, error) {
	if err := key.Err(); err != nil {
		return false, err
	}
	return s.db.Has(key.Bytes())
}

func (s *InstanceStore) Get(key Key, dst interface{}) (bool, error) {
	if err := key.Err(); err != nil {
		return false, err
	}
	b, err := s.db.Get(key.Bytes())
	if errors.Is(err, database.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := unmarshal(b, dst); err != nil {
		return false, fmt.Errorf("couldn't decode %s: %w", key, err)
	}
	return true, nil
}

func (s *InstanceStore) Set(key Key, value interface{}) error {
	if err := key.Err(); err != nil {
		return err
	}
	b, err := marshal(value)
	if err != nil {
		return fmt.Errorf("couldn't encode %s: %w", key, err)
	}
	return s.db.Put(key.Bytes(), b)
}

func (s *InstanceStore) Remove(key Key) error {
	if err := key.Err(); err != nil {
		return err
	}
	return s.db.Delete(key.Bytes())
}

// ExtendTTL sets the instance TTL to [extendTo] if it is below [threshold].
func (s *InstanceStore) ExtendTTL(threshold, extendTo uint32) error {
	if err := s.cfg.verifyExtension(threshold, extendTo); err != nil {
		return err
	}
	e, err := s.meta()
	if err != nil {
		return err
	}
	if e.ttl(s.seq) >= threshold {
		return nil
	}
	e.LiveUntil = liveUntil(s.seq, extendTo)
	return s.putMeta(e)
}

// TTL returns how many ledgers the instance stays live after the current one.
func (s *InstanceStore) TTL() (uint32, error) {
	e, err := s.meta()
	if err != nil {
		return 0, err
	}
	return e.ttl(s.seq), nil
}
