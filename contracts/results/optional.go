// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package results

import (
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/exercisevm/exercisevm"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

const (
	// adminDefaultBalance and userDefaultBalance are what
	// GetBalanceComputed reports for accounts without a balance.
	adminDefaultBalance uint64 = 1000
	userDefaultBalance  uint64 = 100
)

var OptionalBalance = &exercisevm.Contract{
	Name:        "optional_balance",
	Description: "balances that may be absent",
	Methods: []exercisevm.Method{
		{Name: "initialize", Call: exercisevm.Action1(Initialize)},
		{Name: "get_balance", ReadOnly: true, Call: exercisevm.Func1(GetBalance)},
		{Name: "get_balance_or_zero", ReadOnly: true, Call: exercisevm.Func1(Balance)},
		{Name: "get_balance_computed", ReadOnly: true, Call: exercisevm.Func1(GetBalanceComputed)},
		{Name: "get_balance_doubled", ReadOnly: true, Call: exercisevm.Func1(GetBalanceDoubled)},
		{Name: "set_balance", Call: exercisevm.Action2(SetBalance)},
	},
}

// GetBalance returns nil if [account] has no balance.
func GetBalance(env *exercisevm.Env, account ids.ShortID) (*uint64, error) {
	balance, ok, err := exercisevm.Get[uint64](env.Storage().Instance(), balanceKey(account))
	if err != nil || !ok {
		return nil, err
	}
	return &balance, nil
}

// GetBalanceComputed falls back to a default that depends on whether
// [account] is the admin.
func GetBalanceComputed(env *exercisevm.Env, account ids.ShortID) (uint64, error) {
	balance, err := GetBalance(env, account)
	if err != nil {
		return 0, err
	}
	if balance != nil {
		return *balance, nil
	}
	admin, ok, err := exercisevm.Get[ids.ShortID](env.Storage().Instance(), adminKey)
	if err != nil {
		return 0, err
	}
	if ok && admin == account {
		return adminDefaultBalance, nil
	}
	return userDefaultBalance, nil
}

func GetBalanceDoubled(env *exercisevm.Env, account ids.ShortID) (*uint64, error) {
	balance, err := GetBalance(env, account)
	if err != nil || balance == nil {
		return nil, err
	}
	doubled, err := smath.Add(*balance, *balance)
	if err != nil {
		return nil, exercisevm.Abortf("overflow doubling balance of %s", account)
	}
	return &doubled, nil
}
