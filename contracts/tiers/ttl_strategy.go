// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tiers

import (
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/exercisevm/exercisevm"
)

const (
	lazyThreshold     = 50
	lazyExtendTo      = 100
	criticalThreshold = 100
	criticalExtendTo  = 200
)

// TTLStrategy compares extension policies on persistent entries.
var TTLStrategy = &exercisevm.Contract{
	Name:        "ttl_strategy",
	Description: "eager, lazy and long-lived TTL extension",
	Methods: []exercisevm.Method{
		{Name: "update_balance_eager", Call: exercisevm.Action2(UpdateBalanceEager)},
		{Name: "update_balance_lazy", Call: exercisevm.Action2(UpdateBalanceLazy)},
		{Name: "save_critical_data", Call: exercisevm.Action2(SaveCriticalData)},
		{Name: "get_balance", ReadOnly: true, Call: exercisevm.Func1(GetUserBalance)},
		{Name: "get_critical_data", ReadOnly: true, Call: exercisevm.Func1(GetCriticalData)},
	},
}

func criticalKey(user ids.ShortID) exercisevm.Key {
	return exercisevm.NewKey("Critical").Address(user)
}

// UpdateBalanceEager extends the balance on every write.
func UpdateBalanceEager(env *exercisevm.Env, user ids.ShortID, balance uint64) error {
	if err := requireAuth(env, user); err != nil {
		return err
	}
	return setPersistent(env, userBalanceKey(user), balance)
}

// UpdateBalanceLazy only extends once fewer than 50 ledgers remain.
func UpdateBalanceLazy(env *exercisevm.Env, user ids.ShortID, balance uint64) error {
	if err := requireAuth(env, user); err != nil {
		return err
	}
	return setPersistentTTL(env, userBalanceKey(user), balance, lazyThreshold, lazyExtendTo)
}

func SaveCriticalData(env *exercisevm.Env, user ids.ShortID, data int64) error {
	if err := requireAuth(env, user); err != nil {
		return err
	}
	return setPersistentTTL(env, criticalKey(user), data, criticalThreshold, criticalExtendTo)
}

func GetCriticalData(env *exercisevm.Env, user ids.ShortID) (*int64, error) {
	return optional[int64](env.Storage().Persistent(), criticalKey(user))
}
