// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tiers

import (
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/exercisevm/exercisevm"
)

var (
	priceKey       = exercisevm.NewKey("Price")
	calculationKey = exercisevm.NewKey("Calculation")
)

// TempCache keeps everything in the temporary tier and never extends it:
// values vanish once the minimum temporary TTL has passed.
var TempCache = &exercisevm.Contract{
	Name:        "temp_cache",
	Description: "short-lived values in the temporary tier",
	Methods: []exercisevm.Method{
		{Name: "save_price", Call: exercisevm.Action1(SavePrice)},
		{Name: "get_price", ReadOnly: true, Call: exercisevm.NoArgs(GetPrice)},
		{Name: "save_calculation", Call: exercisevm.Action1(SaveCalculation)},
		{Name: "get_calculation", ReadOnly: true, Call: exercisevm.NoArgs(GetCalculation)},
		{Name: "create_lock", Call: exercisevm.Action1(CreateLock)},
		{Name: "has_lock", ReadOnly: true, Call: exercisevm.Func1(HasLock)},
		{Name: "remove_lock", Call: exercisevm.Action1(RemoveLock)},
	},
}

func lockKey(user ids.ShortID) exercisevm.Key {
	return exercisevm.NewKey("Lock").Address(user)
}

func SavePrice(env *exercisevm.Env, price uint64) error {
	return env.Storage().Temporary().Set(priceKey, price)
}

func GetPrice(env *exercisevm.Env) (*uint64, error) {
	return optional[uint64](env.Storage().Temporary(), priceKey)
}

func SaveCalculation(env *exercisevm.Env, result int64) error {
	return env.Storage().Temporary().Set(calculationKey, result)
}

func GetCalculation(env *exercisevm.Env) (*int64, error) {
	return optional[int64](env.Storage().Temporary(), calculationKey)
}

func CreateLock(env *exercisevm.Env, user ids.ShortID) error {
	if err := requireAuth(env, user); err != nil {
		return err
	}
	return env.Storage().Temporary().Set(lockKey(user), true)
}

func HasLock(env *exercisevm.Env, user ids.ShortID) (bool, error) {
	return env.Storage().Temporary().Has(lockKey(user))
}

func RemoveLock(env *exercisevm.Env, user ids.ShortID) error {
	if err := requireAuth(env, user); err != nil {
		return err
	}
	return env.Storage().Temporary().Remove(lockKey(user))
}
