// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tiers

import (
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/exercisevm/exercisevm"
)

var UserData = &exercisevm.Contract{
	Name:        "user_data",
	Description: "per-user values in the persistent tier",
	Methods: []exercisevm.Method{
		{Name: "get_balance", ReadOnly: true, Call: exercisevm.Func1(GetUserBalance)},
		{Name: "set_balance", Call: exercisevm.Action2(SetUserBalance)},
		{Name: "user_exists", ReadOnly: true, Call: exercisevm.Func1(UserExists)},
		{Name: "save_last_transaction", Call: exercisevm.Action2(SaveLastTransaction)},
		{Name: "get_last_transaction", ReadOnly: true, Call: exercisevm.Func1(GetLastTransaction)},
		{Name: "save_record", Call: exercisevm.Action2(SaveRecord)},
		{Name: "get_record", ReadOnly: true, Call: exercisevm.Func1(GetRecord)},
	},
}

func userBalanceKey(user ids.ShortID) exercisevm.Key {
	return exercisevm.NewKey("Balance").Address(user)
}

func lastTransactionKey(user ids.ShortID) exercisevm.Key {
	return exercisevm.NewKey("LastTransaction").Address(user)
}

func recordKey(id uint32) exercisevm.Key {
	return exercisevm.NewKey("Record").Uint32(id)
}

func GetUserBalance(env *exercisevm.Env, user ids.ShortID) (uint64, error) {
	return exercisevm.GetOr(env.Storage().Persistent(), userBalanceKey(user), uint64(0))
}

func SetUserBalance(env *exercisevm.Env, user ids.ShortID, balance uint64) error {
	if err := requireAuth(env, user); err != nil {
		return err
	}
	return setPersistent(env, userBalanceKey(user), balance)
}

// UserExists reports whether [user] ever had a balance set.
func UserExists(env *exercisevm.Env, user ids.ShortID) (bool, error) {
	return env.Storage().Persistent().Has(userBalanceKey(user))
}

func SaveLastTransaction(env *exercisevm.Env, user ids.ShortID, amount int64) error {
	if err := requireAuth(env, user); err != nil {
		return err
	}
	return setPersistent(env, lastTransactionKey(user), amount)
}

func GetLastTransaction(env *exercisevm.Env, user ids.ShortID) (*int64, error) {
	return optional[int64](env.Storage().Persistent(), lastTransactionKey(user))
}

func SaveRecord(env *exercisevm.Env, id uint32, value int64) error {
	return setPersistent(env, recordKey(id), value)
}

func GetRecord(env *exercisevm.Env, id uint32) (*int64, error) {
	return optional[int64](env.Storage().Persistent(), recordKey(id))
}
