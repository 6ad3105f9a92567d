// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package results

import (
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/exercisevm/exercisevm"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

var SafeTransfer = &exercisevm.Contract{
	Name:        "safe_transfer",
	Description: "balance transfer reporting every failure as a tagged error",
	Methods: []exercisevm.Method{
		{Name: "initialize", Call: exercisevm.Action1(Initialize)},
		{Name: "transfer", Call: exercisevm.Action3(Transfer)},
		{Name: "set_balance", Call: exercisevm.Action2(SetBalance)},
		{Name: "balance", ReadOnly: true, Call: exercisevm.Func1(Balance)},
	},
}

// Transfer moves [amount] from [from] to [to]. [from] must sign.
func Transfer(env *exercisevm.Env, from, to ids.ShortID, amount uint64) error {
	if err := env.RequireAuth(from); err != nil {
		return err
	}
	if amount == 0 {
		return ErrInvalidAmount
	}
	return move(env, "transfer", from, to, amount)
}

// move debits [from] and credits [to] and publishes [topic].
func move(env *exercisevm.Env, topic exercisevm.Symbol, from, to ids.ShortID, amount uint64) error {
	fromBalance, err := Balance(env, from)
	if err != nil {
		return err
	}
	newFrom, err := smath.Sub(fromBalance, amount)
	if err != nil {
		return ErrInsufficientBalance
	}
	if err := setInstance(env, balanceKey(from), newFrom); err != nil {
		return err
	}
	toBalance, err := Balance(env, to)
	if err != nil {
		return err
	}
	newTo, err := smath.Add(toBalance, amount)
	if err != nil {
		return ErrLimitExceeded
	}
	if err := setInstance(env, balanceKey(to), newTo); err != nil {
		return err
	}
	env.Events().Publish(topic, from, to, amount)
	return nil
}
