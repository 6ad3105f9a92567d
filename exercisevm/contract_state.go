// (c) 2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package exercisevm

import (
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/cache"
	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
)

var _ ContractState = (*contractState)(nil)

// ContractRecord is what the host remembers about a deployed contract.
type ContractRecord struct {
	Name     string `serialize:"true" json:"name"`
	Deployed uint32 `serialize:"true" json:"deployed"`
}

// ContractState stores deployed contract records. Records never change after
// deployment, so reads are served from a shared LRU.
type ContractState interface {
	GetContract(contractID ids.ID) (*ContractRecord, error)
	PutContract(contractID ids.ID, rec *ContractRecord) error
	ContractIDs() ([]ids.ID, error)
}

type contractState struct {
	cache      *cache.LRU[ids.ID, *ContractRecord]
	contractDB database.Database
}

func NewContractState(db database.Database, c *cache.LRU[ids.ID, *ContractRecord]) ContractState {
	return &contractState{
		cache:      c,
		contractDB: db,
	}
}

func (s *contractState) GetContract(contractID ids.ID) (*ContractRecord, error) {
	if rec, ok := s.cache.Get(contractID); ok {
		return rec, nil
	}

	recBytes, err := s.contractDB.Get(contractID[:])
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrContractNotFound, contractID)
	}
	if err != nil {
		return nil, err
	}

	rec := &ContractRecord{}
	if err := unmarshal(recBytes, rec); err != nil {
		return nil, err
	}
	s.cache.Put(contractID, rec)
	return rec, nil
}

// PutContract writes through to the database only. The cache fills on the
// first read, once the deployment has been committed.
func (s *contractState) PutContract(contractID ids.ID, rec *ContractRecord) error {
	bytes, err := marshal(rec)
	if err != nil {
		return err
	}
	return s.contractDB.Put(contractID[:], bytes)
}

func (s *contractState) ContractIDs() ([]ids.ID, error) {
	it := s.contractDB.NewIterator()
	defer it.Release()

	var contractIDs []ids.ID
	for it.Next() {
		contractID, err := ids.ToID(it.Key())
		if err != nil {
			return nil, err
		}
		contractIDs = append(contractIDs, contractID)
	}
	return contractIDs, it.Error()
}
