// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package exercisevm

import (
	"math"
	"time"
)

// Ledger is the host's view of the chain at the time of an invocation.
// Sequence numbers drive every TTL computation.
type Ledger struct {
	Sequence  uint32 `json:"sequence"`
	Timestamp uint64 `json:"timestamp"`
}

// ledgerAt returns the ledger that is open at [now] for a chain that started
// at [genesis]. The first ledger has sequence 1.
func ledgerAt(genesis, now time.Time, interval time.Duration) Ledger {
	// A clock that runs behind genesis stays on the first ledger.
	if now.Before(genesis) {
		now = genesis
	}
	seq := uint64(now.Sub(genesis)/interval) + 1
	if seq > math.MaxUint32 {
		seq = math.MaxUint32
	}
	return Ledger{
		Sequence:  uint32(seq),
		Timestamp: uint64(now.Unix()),
	}
}
