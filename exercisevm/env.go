// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package exercisevm

import (
	"fmt"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/set"

	log "github.com/inconshreveable/log15"
)

// Env is everything a contract entry point may touch: its storage, its
// event stream, the ledger and the authorizations of the invocation.
type Env struct {
	contractID ids.ID
	storage    *Storage
	events     *Events
	ledger     Ledger
	auths      set.Set[ids.ShortID]
	allAuths   bool
	log        log.Logger
}

func (e *Env) ContractID() ids.ID { return e.contractID }
func (e *Env) Storage() *Storage  { return e.storage }
func (e *Env) Events() *Events    { return e.events }
func (e *Env) Ledger() Ledger     { return e.ledger }
func (e *Env) Logger() log.Logger { return e.log }

// RequireAuth traps unless [addr] signed the invocation.
func (e *Env) RequireAuth(addr ids.ShortID) error {
	if e.allAuths || e.auths.Contains(addr) {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrNotAuthorized, addr)
}
