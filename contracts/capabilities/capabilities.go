// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package capabilities shows shared behavior across unrelated contracts:
// donations, tokens, votable proposals and owned contracts each satisfy a
// small interface that generic helpers work against.
package capabilities

import (
	"fmt"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/exercisevm/exercisevm"
)

const (
	ttlThreshold = 100
	ttlExtendTo  = 100
)

// Error is the tagged failure of the contracts in this package.
type Error uint32

const (
	ErrNotInitialized Error = iota + 1
	ErrInvalidAmount
	ErrNotOwner
	ErrAlreadyInitialized
	ErrInsufficientBalance
	ErrUnknownBill
)

var _ exercisevm.ContractError = ErrNotInitialized

func (e Error) Code() uint32 { return uint32(e) }

func (e Error) Error() string {
	switch e {
	case ErrNotInitialized:
		return "not initialized"
	case ErrInvalidAmount:
		return "invalid amount"
	case ErrNotOwner:
		return "caller is not the owner"
	case ErrAlreadyInitialized:
		return "already initialized"
	case ErrInsufficientBalance:
		return "insufficient balance"
	case ErrUnknownBill:
		return "unknown bill"
	default:
		return fmt.Sprintf("error(%d)", uint32(e))
	}
}

// Donation is a donation with a fixed beneficiary and amount.
type Donation interface {
	Beneficiary(env *exercisevm.Env) (ids.ShortID, error)
	Amount(env *exercisevm.Env) (uint64, error)
	Process(env *exercisevm.Env, donor ids.ShortID) error
}

type Token interface {
	BalanceOf(env *exercisevm.Env, owner ids.ShortID) (uint64, error)
	Transfer(env *exercisevm.Env, from, to ids.ShortID, amount uint64) error
	TotalSupply(env *exercisevm.Env) (uint64, error)
}

// Votable is anything that collects votes for and against.
type Votable interface {
	VotesFor(env *exercisevm.Env) (uint32, error)
	VotesAgainst(env *exercisevm.Env) (uint32, error)
}

type Ownable interface {
	Owner(env *exercisevm.Env) (ids.ShortID, error)
	TransferOwnership(env *exercisevm.Env, caller, newOwner ids.ShortID) error
	RequireOwner(env *exercisevm.Env, caller ids.ShortID) error
}

var registryKey = exercisevm.NewKey("Registry")

// RegisterDonation appends the beneficiary of [d] to the contract's donation
// registry.
func RegisterDonation(env *exercisevm.Env, d Donation) error {
	beneficiary, err := d.Beneficiary(env)
	if err != nil {
		return err
	}
	amount, err := d.Amount(env)
	if err != nil {
		return err
	}
	registry, err := Registry(env)
	if err != nil {
		return err
	}
	if err := setInstance(env, registryKey, append(registry, beneficiary)); err != nil {
		return err
	}
	env.Events().Publish("donation_reg", beneficiary, amount)
	return nil
}

// Registry lists the registered beneficiaries in registration order.
func Registry(env *exercisevm.Env) ([]ids.ShortID, error) {
	return exercisevm.GetOr(env.Storage().Instance(), registryKey, []ids.ShortID{})
}

// Passed reports whether [v] has more votes for than against.
func Passed(env *exercisevm.Env, v Votable) (bool, error) {
	votesFor, err := v.VotesFor(env)
	if err != nil {
		return false, err
	}
	votesAgainst, err := v.VotesAgainst(env)
	if err != nil {
		return false, err
	}
	return votesFor > votesAgainst, nil
}

func CountPassed(env *exercisevm.Env, vs []Votable) (uint32, error) {
	var n uint32
	for _, v := range vs {
		passed, err := Passed(env, v)
		if err != nil {
			return 0, err
		}
		if passed {
			n++
		}
	}
	return n, nil
}

func setInstance(env *exercisevm.Env, key exercisevm.Key, value interface{}) error {
	instance := env.Storage().Instance()
	if err := instance.Set(key, value); err != nil {
		return err
	}
	return instance.ExtendTTL(ttlThreshold, ttlExtendTo)
}

func setPersistent(env *exercisevm.Env, key exercisevm.Key, value interface{}) error {
	persistent := env.Storage().Persistent()
	if err := persistent.Set(key, value); err != nil {
		return err
	}
	return persistent.ExtendTTL(key, ttlThreshold, ttlExtendTo)
}

// mustGet reads a value that initialize is expected to have written.
func mustGet[T any](kv exercisevm.KV, key exercisevm.Key) (T, error) {
	v, ok, err := exercisevm.Get[T](kv, key)
	if err == nil && !ok {
		err = ErrNotInitialized
	}
	return v, err
}
