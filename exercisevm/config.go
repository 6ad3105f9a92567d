// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package exercisevm

import (
	"errors"
	"fmt"
	"time"
)

const (
	defaultLedgerInterval    = 5 * time.Second
	defaultMinTemporaryTTL   = 16
	defaultMinPersistentTTL  = 4096
	defaultMaxEntryTTL       = 535_680 // 31 days of 5s ledgers
	defaultEventLogSize      = 1024
	defaultContractCacheSize = 256
)

var errInvalidConfig = errors.New("invalid config")

// Config holds the ledger and TTL parameters of a Host.
type Config struct {
	LedgerInterval    time.Duration `json:"ledgerInterval"`
	MinTemporaryTTL   uint32        `json:"minTemporaryTTL"`
	MinPersistentTTL  uint32        `json:"minPersistentTTL"`
	MaxEntryTTL       uint32        `json:"maxEntryTTL"`
	EventLogSize      int           `json:"eventLogSize"`
	ContractCacheSize int           `json:"contractCacheSize"`
}

func DefaultConfig() Config {
	return Config{
		LedgerInterval:    defaultLedgerInterval,
		MinTemporaryTTL:   defaultMinTemporaryTTL,
		MinPersistentTTL:  defaultMinPersistentTTL,
		MaxEntryTTL:       defaultMaxEntryTTL,
		EventLogSize:      defaultEventLogSize,
		ContractCacheSize: defaultContractCacheSize,
	}
}

func (c Config) Verify() error {
	switch {
	case c.LedgerInterval <= 0:
		return fmt.Errorf("%w: ledger interval must be positive", errInvalidConfig)
	case c.MinTemporaryTTL == 0 || c.MinPersistentTTL == 0:
		return fmt.Errorf("%w: minimum TTLs must be positive", errInvalidConfig)
	case c.MinTemporaryTTL > c.MaxEntryTTL || c.MinPersistentTTL > c.MaxEntryTTL:
		return fmt.Errorf("%w: minimum TTL exceeds max entry TTL %d", errInvalidConfig, c.MaxEntryTTL)
	case c.EventLogSize < 0 || c.ContractCacheSize < 0:
		return fmt.Errorf("%w: negative size", errInvalidConfig)
	}
	return nil
}

func (c *Config) minTTL(t Tier) uint32 {
	if t == Temporary {
		return c.MinTemporaryTTL
	}
	return c.MinPersistentTTL
}

func (c *Config) verifyExtension(threshold, extendTo uint32) error {
	if threshold > extendTo {
		return fmt.Errorf("%w: threshold %d above extend_to %d", ErrInvalidTTL, threshold, extendTo)
	}
	if extendTo > c.MaxEntryTTL {
		return fmt.Errorf("%w: extend_to %d above max %d", ErrInvalidTTL, extendTo, c.MaxEntryTTL)
	}
	return nil
}
