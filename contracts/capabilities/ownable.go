// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package capabilities

import (
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/exercisevm/exercisevm"
)

var ownerKey = exercisevm.NewKey("Owner")

// ownable keeps a single owner in the instance tier.
type ownable struct{}

func (ownable) Owner(env *exercisevm.Env) (ids.ShortID, error) {
	return mustGet[ids.ShortID](env.Storage().Instance(), ownerKey)
}

// RequireOwner fails unless [caller] signed the invocation and owns the
// contract.
func (o ownable) RequireOwner(env *exercisevm.Env, caller ids.ShortID) error {
	if err := env.RequireAuth(caller); err != nil {
		return err
	}
	owner, err := o.Owner(env)
	if err != nil {
		return err
	}
	if caller != owner {
		return ErrNotOwner
	}
	return nil
}

func (o ownable) TransferOwnership(env *exercisevm.Env, caller, newOwner ids.ShortID) error {
	if err := o.RequireOwner(env, caller); err != nil {
		return err
	}
	if err := setInstance(env, ownerKey, newOwner); err != nil {
		return err
	}
	env.Events().Publish("owner_trans", caller, newOwner)
	return nil
}

// claim sets the first owner.
func (ownable) claim(env *exercisevm.Env, owner ids.ShortID) error {
	has, err := env.Storage().Instance().Has(ownerKey)
	if err != nil {
		return err
	}
	if has {
		return ErrAlreadyInitialized
	}
	return env.Storage().Instance().Set(ownerKey, owner)
}
