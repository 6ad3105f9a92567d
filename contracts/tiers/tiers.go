// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package tiers demonstrates picking a storage tier per key: contract-wide
// configuration in the instance tier, per-user data in the persistent tier
// and throwaway values in the temporary tier.
package tiers

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
	ErrAlreadyInitialized
	ErrNotInitialized
	ErrUserNotFound
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
	case ErrAlreadyInitialized:
		return "already initialized"
	case ErrNotInitialized:
		return "not initialized"
	case ErrUserNotFound:
		return "user not found"
	default:
		return fmt.Sprintf("error(%d)", uint32(e))
	}
}

// requireAuth reports a missing signature as a tagged error.
func requireAuth(env *exercisevm.Env, addr ids.ShortID) error {
	if env.RequireAuth(addr) != nil {
		return ErrNotAuthorized
	}
	return nil
}

func setInstance(env *exercisevm.Env, key exercisevm.Key, value interface{}) error {
	instance := env.Storage().Instance()
	if err := instance.Set(key, value); err != nil {
		return err
	}
	return instance.ExtendTTL(ttlThreshold, ttlExtendTo)
}

func setPersistent(env *exercisevm.Env, key exercisevm.Key, value interface{}) error {
	return setPersistentTTL(env, key, value, ttlThreshold, ttlExtendTo)
}

func setPersistentTTL(env *exercisevm.Env, key exercisevm.Key, value interface{}, threshold, extendTo uint32) error {
	persistent := env.Storage().Persistent()
	if err := persistent.Set(key, value); err != nil {
		return err
	}
	if err := persistent.ExtendTTL(key, threshold, extendTo); err != nil {
		return err
	}
	// The contract has to outlive the entries it writes.
	return env.Storage().Instance().ExtendTTL(ttlThreshold, ttlExtendTo)
}

// optional returns nil when [key] is absent from [kv].
func optional[T any](kv exercisevm.KV, key exercisevm.Key) (*T, error) {
	v, ok, err := exercisevm.Get[T](kv, key)
	if err != nil || !ok {
		return nil, err
	}
	return &v, nil
}

// required fails with ErrNotInitialized when [key] is absent from [kv].
func required[T any](kv exercisevm.KV, key exercisevm.Key) (T, error) {
	v, ok, err := exercisevm.Get[T](kv, key)
	if err == nil && !ok {
		err = ErrNotInitialized
	}
	return v, err
}
