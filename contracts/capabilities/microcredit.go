// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package capabilities

import (
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/exercisevm/exercisevm"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

// DefaultInterestRate is the rate, in percent, until the owner changes it.
const DefaultInterestRate uint32 = 10

var (
	interestRateKey = exercisevm.NewKey("InterestRate")
	totalLentKey    = exercisevm.NewKey("TotalLent")

	_ Ownable = MicroCredit{}
)

var MicroCreditContract = &exercisevm.Contract{
	Name:        "microcredit",
	Description: "owned credit line with an adjustable interest rate",
	Methods: []exercisevm.Method{
		{Name: "initialize", Call: exercisevm.Action1(MicroCredit{}.Initialize)},
		{Name: "request_credit", Call: exercisevm.Action2(MicroCredit{}.RequestCredit)},
		{Name: "set_interest_rate", Call: exercisevm.Action2(MicroCredit{}.SetInterestRate)},
		{Name: "get_interest_rate", ReadOnly: true, Call: exercisevm.NoArgs(MicroCredit{}.InterestRate)},
		{Name: "get_total_lent", ReadOnly: true, Call: exercisevm.NoArgs(MicroCredit{}.TotalLent)},
		{Name: "get_owner", ReadOnly: true, Call: exercisevm.NoArgs(MicroCredit{}.Owner)},
		{Name: "transfer_ownership", Call: exercisevm.Action2(MicroCredit{}.TransferOwnership)},
	},
}

// MicroCredit lends to applicants and lets its owner set the interest rate.
type MicroCredit struct {
	ownable
}

func (m MicroCredit) Initialize(env *exercisevm.Env, owner ids.ShortID) error {
	if err := m.claim(env, owner); err != nil {
		return err
	}
	instance := env.Storage().Instance()
	if err := instance.Set(interestRateKey, DefaultInterestRate); err != nil {
		return err
	}
	return setInstance(env, totalLentKey, uint64(0))
}

func (MicroCredit) RequestCredit(env *exercisevm.Env, applicant ids.ShortID, amount uint64) error {
	if err := env.RequireAuth(applicant); err != nil {
		return err
	}
	if amount == 0 {
		return ErrInvalidAmount
	}
	total, err := MicroCredit{}.TotalLent(env)
	if err != nil {
		return err
	}
	total, err = smath.Add(total, amount)
	if err != nil {
		return exercisevm.Abortf("total lent overflow")
	}
	if err := setInstance(env, totalLentKey, total); err != nil {
		return err
	}
	env.Events().Publish("credit_req", applicant, amount)
	return nil
}

func (m MicroCredit) SetInterestRate(env *exercisevm.Env, caller ids.ShortID, rate uint32) error {
	if err := m.RequireOwner(env, caller); err != nil {
		return err
	}
	if err := setInstance(env, interestRateKey, rate); err != nil {
		return err
	}
	env.Events().Publish("rate_chg", rate)
	return nil
}

func (MicroCredit) InterestRate(env *exercisevm.Env) (uint32, error) {
	return exercisevm.GetOr(env.Storage().Instance(), interestRateKey, DefaultInterestRate)
}

func (MicroCredit) TotalLent(env *exercisevm.Env) (uint64, error) {
	return exercisevm.GetOr(env.Storage().Instance(), totalLentKey, uint64(0))
}
