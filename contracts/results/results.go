// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package results contains contracts that report validation failures as
// tagged errors and model missing values explicitly.
package results

import (
	"fmt"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/exercisevm/exercisevm"
)

const (
	ttlThreshold = 100
	ttlExtendTo  = 100
)

type Error uint32

const (
	ErrInsufficientBalance Error = iota + 1
	ErrInvalidAmount
	ErrNotAuthorized
	ErrLimitExceeded
	ErrInvalidApplicant
	ErrNotInitialized
)

var _ exercisevm.ContractError = ErrInsufficientBalance

func (e Error) Code() uint32 { return uint32(e) }

func (e Error) Error() string {
	switch e {
	case ErrInsufficientBalance:
		return "insufficient balance"
	case ErrInvalidAmount:
		return "invalid amount"
	case ErrNotAuthorized:
		return "not authorized"
	case ErrLimitExceeded:
		return "limit exceeded"
	case ErrInvalidApplicant:
		return "invalid applicant"
	case ErrNotInitialized:
		return "not initialized"
	default:
		return fmt.Sprintf("error(%d)", uint32(e))
	}
}

// ValidateAmount accepts amounts in [1, max].
func ValidateAmount(amount, max uint64) error {
	switch {
	case amount == 0:
		return ErrInvalidAmount
	case amount > max:
		return ErrLimitExceeded
	default:
		return nil
	}
}

func ValidateBalance(balance, amount uint64) error {
	if balance < amount {
		return ErrInsufficientBalance
	}
	return nil
}

var adminKey = exercisevm.NewKey("Admin")

func balanceKey(account ids.ShortID) exercisevm.Key {
	return exercisevm.NewKey("Balance").Address(account)
}

// Initialize sets the admin that may seed balances and limits. The admin can
// only be set once.
func Initialize(env *exercisevm.Env, admin ids.ShortID) error {
	has, err := env.Storage().Instance().Has(adminKey)
	if err != nil {
		return err
	}
	if has {
		return ErrNotAuthorized
	}
	return setInstance(env, adminKey, admin)
}

// GetAdmin fails with ErrNotInitialized until an admin is set.
func GetAdmin(env *exercisevm.Env) (ids.ShortID, error) {
	admin, ok, err := exercisevm.Get[ids.ShortID](env.Storage().Instance(), adminKey)
	switch {
	case err != nil:
		return ids.ShortEmpty, err
	case !ok:
		return ids.ShortEmpty, ErrNotInitialized
	default:
		return admin, nil
	}
}

func requireAdmin(env *exercisevm.Env) error {
	admin, err := GetAdmin(env)
	if err != nil {
		return err
	}
	if env.RequireAuth(admin) != nil {
		return ErrNotAuthorized
	}
	return nil
}

// SetBalance seeds [account] with [amount]. Admin only.
func SetBalance(env *exercisevm.Env, account ids.ShortID, amount uint64) error {
	if err := requireAdmin(env); err != nil {
		return err
	}
	return setInstance(env, balanceKey(account), amount)
}

func Balance(env *exercisevm.Env, account ids.ShortID) (uint64, error) {
	return exercisevm.GetOr(env.Storage().Instance(), balanceKey(account), uint64(0))
}

func setInstance(env *exercisevm.Env, key exercisevm.Key, value interface{}) error {
	instance := env.Storage().Instance()
	if err := instance.Set(key, value); err != nil {
		return err
	}
	return instance.ExtendTTL(ttlThreshold, ttlExtendTo)
}
