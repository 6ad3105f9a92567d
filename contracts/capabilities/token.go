// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package capabilities

import (
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/exercisevm/exercisevm"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

var (
	totalSupplyKey = exercisevm.NewKey("TotalSupply")

	_ Token   = BasicToken{}
	_ Ownable = BasicToken{}
)

var BasicTokenContract = &exercisevm.Contract{
	Name:        "basic_token",
	Description: "owner-minted token with transfers",
	Methods: []exercisevm.Method{
		{Name: "initialize", Call: exercisevm.Action1(BasicToken{}.Initialize)},
		{Name: "mint", Call: exercisevm.Action2(BasicToken{}.Mint)},
		{Name: "balance_of", ReadOnly: true, Call: exercisevm.Func1(BasicToken{}.BalanceOf)},
		{Name: "transfer", Call: exercisevm.Action3(BasicToken{}.Transfer)},
		{Name: "total_supply", ReadOnly: true, Call: exercisevm.NoArgs(BasicToken{}.TotalSupply)},
		{Name: "get_owner", ReadOnly: true, Call: exercisevm.NoArgs(BasicToken{}.Owner)},
		{Name: "transfer_ownership", Call: exercisevm.Action2(BasicToken{}.TransferOwnership)},
	},
}

// BasicToken is a token only its owner can mint.
type BasicToken struct {
	ownable
}

func balanceKey(owner ids.ShortID) exercisevm.Key {
	return exercisevm.NewKey("Balance").Address(owner)
}

func (t BasicToken) Initialize(env *exercisevm.Env, owner ids.ShortID) error {
	if err := t.claim(env, owner); err != nil {
		return err
	}
	return setInstance(env, totalSupplyKey, uint64(0))
}

// Mint creates [amount] new tokens for [to]. Only the owner may mint.
func (t BasicToken) Mint(env *exercisevm.Env, to ids.ShortID, amount uint64) error {
	owner, err := t.Owner(env)
	if err != nil {
		return err
	}
	if err := env.RequireAuth(owner); err != nil {
		return err
	}
	if amount == 0 {
		return ErrInvalidAmount
	}
	supply, err := t.TotalSupply(env)
	if err != nil {
		return err
	}
	supply, err = smath.Add(supply, amount)
	if err != nil {
		return exercisevm.Abortf("total supply overflow")
	}
	balance, err := t.BalanceOf(env, to)
	if err != nil {
		return err
	}
	balance, err = smath.Add(balance, amount)
	if err != nil {
		return exercisevm.Abortf("balance overflow")
	}
	if err := setInstance(env, totalSupplyKey, supply); err != nil {
		return err
	}
	if err := setPersistent(env, balanceKey(to), balance); err != nil {
		return err
	}
	env.Events().Publish("mint", to, amount)
	return nil
}

func (BasicToken) BalanceOf(env *exercisevm.Env, owner ids.ShortID) (uint64, error) {
	return exercisevm.GetOr(env.Storage().Persistent(), balanceKey(owner), uint64(0))
}

func (t BasicToken) Transfer(env *exercisevm.Env, from, to ids.ShortID, amount uint64) error {
	if err := env.RequireAuth(from); err != nil {
		return err
	}
	if amount == 0 {
		return ErrInvalidAmount
	}
	fromBalance, err := t.BalanceOf(env, from)
	if err != nil {
		return err
	}
	if fromBalance < amount {
		return ErrInsufficientBalance
	}
	if err := setPersistent(env, balanceKey(from), fromBalance-amount); err != nil {
		return err
	}
	toBalance, err := t.BalanceOf(env, to)
	if err != nil {
		return err
	}
	toBalance, err = smath.Add(toBalance, amount)
	if err != nil {
		return exercisevm.Abortf("balance overflow")
	}
	if err := setPersistent(env, balanceKey(to), toBalance); err != nil {
		return err
	}
	env.Events().Publish("transfer", from, to, amount)
	return nil
}

func (BasicToken) TotalSupply(env *exercisevm.Env) (uint64, error) {
	return mustGet[uint64](env.Storage().Instance(), totalSupplyKey)
}
