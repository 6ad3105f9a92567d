// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package exercisevm

import (
	"errors"
	"time"

	"github.com/ava-labs/avalanchego/database"
)

const (
	genesisKey byte = iota
	deployNonceKey
)

var (
	genesisDBKey     = []byte{genesisKey}
	deployNonceDBKey = []byte{deployNonceKey}

	_ SingletonState = (*singletonState)(nil)
)

// SingletonState is a thin wrapper around a database holding the host-wide
// values: when the chain started and how many contracts were deployed.
type SingletonState interface {
	IsInitialized() (bool, error)
	GetGenesis() (time.Time, error)
	SetGenesis(time.Time) error

	// NextDeployNonce returns the current nonce and bumps the stored one.
	NextDeployNonce() (uint64, error)
}

type singletonState struct {
	singletonDB database.Database
}

func NewSingletonState(db database.Database) SingletonState {
	return &singletonState{
		singletonDB: db,
	}
}

func (s *singletonState) IsInitialized() (bool, error) {
	return s.singletonDB.Has(genesisDBKey)
}

func (s *singletonState) GetGenesis() (time.Time, error) {
	return database.GetTimestamp(s.singletonDB, genesisDBKey)
}

func (s *singletonState) SetGenesis(genesis time.Time) error {
	return database.PutTimestamp(s.singletonDB, genesisDBKey, genesis)
}

func (s *singletonState) NextDeployNonce() (uint64, error) {
	nonce, err := database.GetUInt64(s.singletonDB, deployNonceDBKey)
	switch {
	case errors.Is(err, database.ErrNotFound):
		nonce = 0
	case err != nil:
		return 0, err
	}
	return nonce, database.PutUInt64(s.singletonDB, deployNonceDBKey, nonce+1)
}
