// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package capabilities

import (
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/exercisevm/exercisevm"
)

var (
	beneficiaryKey = exercisevm.NewKey("Beneficiary")
	amountKey      = exercisevm.NewKey("Amount")
	schoolKey      = exercisevm.NewKey("School")
	hospitalKey    = exercisevm.NewKey("Hospital")

	_ Donation = EducationDonation{}
	_ Donation = HealthDonation{}
)

var EducationDonationContract = &exercisevm.Contract{
	Name:        "education_donation",
	Description: "donation to a school",
	Methods: []exercisevm.Method{
		{Name: "initialize", Call: exercisevm.Action3(EducationDonation{}.Initialize)},
		{Name: "get_beneficiary", ReadOnly: true, Call: exercisevm.NoArgs(EducationDonation{}.Beneficiary)},
		{Name: "get_amount", ReadOnly: true, Call: exercisevm.NoArgs(EducationDonation{}.Amount)},
		{Name: "get_school", ReadOnly: true, Call: exercisevm.NoArgs(EducationDonation{}.School)},
		{Name: "process", Call: exercisevm.Action1(EducationDonation{}.Process)},
		{Name: "register", Call: exercisevm.Action(func(env *exercisevm.Env) error {
			return RegisterDonation(env, EducationDonation{})
		})},
		{Name: "registry", ReadOnly: true, Call: exercisevm.NoArgs(Registry)},
	},
}

var HealthDonationContract = &exercisevm.Contract{
	Name:        "health_donation",
	Description: "donation to a hospital",
	Methods: []exercisevm.Method{
		{Name: "initialize", Call: exercisevm.Action3(HealthDonation{}.Initialize)},
		{Name: "get_beneficiary", ReadOnly: true, Call: exercisevm.NoArgs(HealthDonation{}.Beneficiary)},
		{Name: "get_amount", ReadOnly: true, Call: exercisevm.NoArgs(HealthDonation{}.Amount)},
		{Name: "get_hospital", ReadOnly: true, Call: exercisevm.NoArgs(HealthDonation{}.Hospital)},
		{Name: "process", Call: exercisevm.Action1(HealthDonation{}.Process)},
		{Name: "register", Call: exercisevm.Action(func(env *exercisevm.Env) error {
			return RegisterDonation(env, HealthDonation{})
		})},
		{Name: "registry", ReadOnly: true, Call: exercisevm.NoArgs(Registry)},
	},
}

// EducationDonation sends a fixed amount to a beneficiary at a school.
type EducationDonation struct{}

func (EducationDonation) Initialize(env *exercisevm.Env, beneficiary ids.ShortID, amount uint64, school exercisevm.Symbol) error {
	return initDonation(env, beneficiary, amount, schoolKey, school)
}

func (EducationDonation) Beneficiary(env *exercisevm.Env) (ids.ShortID, error) {
	return mustGet[ids.ShortID](env.Storage().Instance(), beneficiaryKey)
}

func (EducationDonation) Amount(env *exercisevm.Env) (uint64, error) {
	return mustGet[uint64](env.Storage().Instance(), amountKey)
}

func (EducationDonation) School(env *exercisevm.Env) (exercisevm.Symbol, error) {
	return mustGet[exercisevm.Symbol](env.Storage().Instance(), schoolKey)
}

func (d EducationDonation) Process(env *exercisevm.Env, donor ids.ShortID) error {
	return processDonation(env, d, donor, "donation_edu", schoolKey)
}

// HealthDonation sends a fixed amount to a beneficiary at a hospital.
type HealthDonation struct{}

func (HealthDonation) Initialize(env *exercisevm.Env, beneficiary ids.ShortID, amount uint64, hospital exercisevm.Symbol) error {
	return initDonation(env, beneficiary, amount, hospitalKey, hospital)
}

func (HealthDonation) Beneficiary(env *exercisevm.Env) (ids.ShortID, error) {
	return mustGet[ids.ShortID](env.Storage().Instance(), beneficiaryKey)
}

func (HealthDonation) Amount(env *exercisevm.Env) (uint64, error) {
	return mustGet[uint64](env.Storage().Instance(), amountKey)
}

func (HealthDonation) Hospital(env *exercisevm.Env) (exercisevm.Symbol, error) {
	return mustGet[exercisevm.Symbol](env.Storage().Instance(), hospitalKey)
}

func (d HealthDonation) Process(env *exercisevm.Env, donor ids.ShortID) error {
	return processDonation(env, d, donor, "donation_health", hospitalKey)
}

func initDonation(env *exercisevm.Env, beneficiary ids.ShortID, amount uint64, placeKey exercisevm.Key, place exercisevm.Symbol) error {
	instance := env.Storage().Instance()
	has, err := instance.Has(beneficiaryKey)
	if err != nil {
		return err
	}
	if has {
		return ErrAlreadyInitialized
	}
	if err := instance.Set(beneficiaryKey, beneficiary); err != nil {
		return err
	}
	if err := instance.Set(amountKey, amount); err != nil {
		return err
	}
	return setInstance(env, placeKey, place)
}

func processDonation(env *exercisevm.Env, d Donation, donor ids.ShortID, topic exercisevm.Symbol, placeKey exercisevm.Key) error {
	if err := env.RequireAuth(donor); err != nil {
		return err
	}
	beneficiary, err := d.Beneficiary(env)
	if err != nil {
		return err
	}
	amount, err := d.Amount(env)
	if err != nil {
		return err
	}
	if amount == 0 {
		return ErrInvalidAmount
	}
	place, err := mustGet[exercisevm.Symbol](env.Storage().Instance(), placeKey)
	if err != nil {
		return err
	}
	env.Events().Publish(topic, donor, beneficiary, amount, place)
	return nil
}
