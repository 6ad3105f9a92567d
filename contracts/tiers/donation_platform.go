// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tiers

import (
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/exercisevm/exercisevm"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

var (
	platformNameKey   = exercisevm.NewKey("PlatformName")
	totalDonationsKey = exercisevm.NewKey("TotalDonations")
)

// DonationPlatform mixes tiers: its settings and donation count live in the
// instance tier while balances and donation records are persistent.
var DonationPlatform = &exercisevm.Contract{
	Name:        "donation_platform",
	Description: "donations recorded per donor and beneficiary",
	Methods: []exercisevm.Method{
		{Name: "initialize", Call: exercisevm.Action2(InitializePlatform)},
		{Name: "donate", Call: exercisevm.Action3(Donate)},
		{Name: "get_donor_balance", ReadOnly: true, Call: exercisevm.Func1(GetDonorBalance)},
		{Name: "get_total_received", ReadOnly: true, Call: exercisevm.Func1(GetTotalReceived)},
		{Name: "get_donation", ReadOnly: true, Call: exercisevm.Func1(GetDonation)},
		{Name: "get_total_donations", ReadOnly: true, Call: exercisevm.NoArgs(GetTotalDonations)},
		{Name: "set_balance", Call: exercisevm.Action2(SetDonorBalance)},
		{Name: "donor_exists", ReadOnly: true, Call: exercisevm.Func1(DonorExists)},
	},
}

// DonationInfo is the record kept for every donation.
type DonationInfo struct {
	Donor       ids.ShortID `serialize:"true" json:"donor"`
	Beneficiary ids.ShortID `serialize:"true" json:"beneficiary"`
	Amount      uint64      `serialize:"true" json:"amount"`
	Timestamp   uint64      `serialize:"true" json:"timestamp"`
}

func donorBalanceKey(donor ids.ShortID) exercisevm.Key {
	return exercisevm.NewKey("DonorBalance").Address(donor)
}

func receivedKey(beneficiary ids.ShortID) exercisevm.Key {
	return exercisevm.NewKey("Received").Address(beneficiary)
}

func donationKey(id uint32) exercisevm.Key {
	return exercisevm.NewKey("Donation").Uint32(id)
}

func InitializePlatform(env *exercisevm.Env, admin ids.ShortID, name exercisevm.Symbol) error {
	instance := env.Storage().Instance()
	has, err := instance.Has(adminKey)
	if err != nil {
		return err
	}
	if has {
		return ErrAlreadyInitialized
	}
	if err := instance.Set(adminKey, admin); err != nil {
		return err
	}
	if err := instance.Set(platformNameKey, name); err != nil {
		return err
	}
	return setInstance(env, totalDonationsKey, uint32(0))
}

// Donate moves [amount] from the donor's platform balance to the
// beneficiary's received total and records the donation.
func Donate(env *exercisevm.Env, donor, beneficiary ids.ShortID, amount uint64) error {
	if err := env.RequireAuth(donor); err != nil {
		return err
	}
	if _, err := GetAdmin(env); err != nil {
		return err
	}
	if amount == 0 {
		return ErrInvalidAmount
	}
	balance, err := GetDonorBalance(env, donor)
	if err != nil {
		return err
	}
	balance, err = smath.Sub(balance, amount)
	if err != nil {
		return ErrInsufficientBalance
	}
	if err := setPersistent(env, donorBalanceKey(donor), balance); err != nil {
		return err
	}

	received, err := GetTotalReceived(env, beneficiary)
	if err != nil {
		return err
	}
	received, err = smath.Add(received, amount)
	if err != nil {
		return exercisevm.Abortf("received total overflow")
	}
	if err := setPersistent(env, receivedKey(beneficiary), received); err != nil {
		return err
	}

	id, err := GetTotalDonations(env)
	if err != nil {
		return err
	}
	next, err := smath.Add(id, 1)
	if err != nil {
		return exercisevm.Abortf("donation counter overflow")
	}
	info := &DonationInfo{
		Donor:       donor,
		Beneficiary: beneficiary,
		Amount:      amount,
		Timestamp:   env.Ledger().Timestamp,
	}
	if err := setPersistent(env, donationKey(id), info); err != nil {
		return err
	}
	if err := setInstance(env, totalDonationsKey, next); err != nil {
		return err
	}
	env.Events().Publish("donation", id, donor, beneficiary, amount)
	return nil
}

func GetDonorBalance(env *exercisevm.Env, donor ids.ShortID) (uint64, error) {
	return exercisevm.GetOr(env.Storage().Persistent(), donorBalanceKey(donor), uint64(0))
}

func GetTotalReceived(env *exercisevm.Env, beneficiary ids.ShortID) (uint64, error) {
	return exercisevm.GetOr(env.Storage().Persistent(), receivedKey(beneficiary), uint64(0))
}

func GetDonation(env *exercisevm.Env, id uint32) (*DonationInfo, error) {
	return optional[DonationInfo](env.Storage().Persistent(), donationKey(id))
}

func GetTotalDonations(env *exercisevm.Env) (uint32, error) {
	return exercisevm.GetOr(env.Storage().Instance(), totalDonationsKey, uint32(0))
}

// SetDonorBalance seeds a donor's platform balance. Admin only.
func SetDonorBalance(env *exercisevm.Env, donor ids.ShortID, balance uint64) error {
	admin, err := GetAdmin(env)
	if err != nil {
		return err
	}
	if err := requireAuth(env, admin); err != nil {
		return err
	}
	return setPersistent(env, donorBalanceKey(donor), balance)
}

func DonorExists(env *exercisevm.Env, donor ids.ShortID) (bool, error) {
	return env.Storage().Persistent().Has(donorBalanceKey(donor))
}
