// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package results

import (
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/exercisevm/exercisevm"
)

// MaxDonation is the largest single donation.
const MaxDonation uint64 = 1_000_000

var ValidatedDonation = &exercisevm.Contract{
	Name:        "validated_donation",
	Description: "donations validated before any balance moves",
	Methods: []exercisevm.Method{
		{Name: "initialize", Call: exercisevm.Action1(Initialize)},
		{Name: "donate", Call: exercisevm.Action3(Donate)},
		{Name: "set_balance", Call: exercisevm.Action2(SetBalance)},
		{Name: "balance", ReadOnly: true, Call: exercisevm.Func1(Balance)},
	},
}

func Donate(env *exercisevm.Env, donor, beneficiary ids.ShortID, amount uint64) error {
	if err := env.RequireAuth(donor); err != nil {
		return err
	}
	if err := ValidateAmount(amount, MaxDonation); err != nil {
		return err
	}
	balance, err := Balance(env, donor)
	if err != nil {
		return err
	}
	if err := ValidateBalance(balance, amount); err != nil {
		return err
	}
	return move(env, "donation", donor, beneficiary, amount)
}
