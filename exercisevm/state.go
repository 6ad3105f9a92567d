// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package exercisevm

import (
	"github.com/ava-labs/avalanchego/cache"
	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/prefixdb"
	"github.com/ava-labs/avalanchego/database/versiondb"
	"github.com/ava-labs/avalanchego/ids"
)

var (
	// These are prefixes for db keys.
	// It's important to set different prefixes for each separate database objects.
	singletonStatePrefix = []byte("singleton")
	contractStatePrefix  = []byte("contract")
	storagePrefix        = []byte("storage")
)

// state is the database view of a single invocation. Writes are buffered in
// a versiondb until Commit; Abort drops all of them.
type state struct {
	SingletonState
	ContractState

	storageDB database.Database
	baseDB    *versiondb.Database
}

func newState(db database.Database, contracts *cache.LRU[ids.ID, *ContractRecord]) *state {
	// create a new baseDB
	baseDB := versiondb.New(db)

	return &state{
		SingletonState: NewSingletonState(prefixdb.New(singletonStatePrefix, baseDB)),
		ContractState:  NewContractState(prefixdb.New(contractStatePrefix, baseDB), contracts),
		storageDB:      prefixdb.New(storagePrefix, baseDB),
		baseDB:         baseDB,
	}
}

// tierDB returns the key space of [contractID] in tier [t].
func (s *state) tierDB(contractID ids.ID, t Tier) database.Database {
	return prefixdb.New(t.prefix(), prefixdb.New(contractID[:], s.storageDB))
}

// Commit writes pending operations to the underlying database
func (s *state) Commit() error {
	return s.baseDB.Commit()
}

// Abort drops pending operations
func (s *state) Abort() {
	s.baseDB.Abort()
}
