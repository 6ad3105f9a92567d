// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package results

import (
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/exercisevm/exercisevm"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

var Loans = &exercisevm.Contract{
	Name:        "loans",
	Description: "loans bounded by a per-applicant credit limit",
	Methods: []exercisevm.Method{
		{Name: "initialize", Call: exercisevm.Action1(Initialize)},
		{Name: "get_limit", ReadOnly: true, Call: exercisevm.Func1(GetLimit)},
		{Name: "set_limit", Call: exercisevm.Action2(SetLimit)},
		{Name: "request_loan", Call: exercisevm.Action2(RequestLoan)},
		{Name: "balance", ReadOnly: true, Call: exercisevm.Func1(Balance)},
		{Name: "total_lent", ReadOnly: true, Call: exercisevm.Func1(TotalLent)},
	},
}

func limitKey(applicant ids.ShortID) exercisevm.Key {
	return exercisevm.NewKey("Limit").Address(applicant)
}

func lentKey(applicant ids.ShortID) exercisevm.Key {
	return exercisevm.NewKey("Lent").Address(applicant)
}

// GetLimit returns nil for applicants without a credit limit.
func GetLimit(env *exercisevm.Env, applicant ids.ShortID) (*uint64, error) {
	limit, ok, err := exercisevm.Get[uint64](env.Storage().Instance(), limitKey(applicant))
	if err != nil || !ok {
		return nil, err
	}
	return &limit, nil
}

func SetLimit(env *exercisevm.Env, applicant ids.ShortID, limit uint64) error {
	if err := requireAdmin(env); err != nil {
		return err
	}
	return setInstance(env, limitKey(applicant), limit)
}

// RequestLoan credits [amount] to [applicant] if it is within the
// applicant's limit.
func RequestLoan(env *exercisevm.Env, applicant ids.ShortID, amount uint64) error {
	if err := env.RequireAuth(applicant); err != nil {
		return err
	}
	if amount == 0 {
		return ErrInvalidAmount
	}
	limit, err := GetLimit(env, applicant)
	if err != nil {
		return err
	}
	if limit == nil {
		return ErrInvalidApplicant
	}
	if err := ValidateAmount(amount, *limit); err != nil {
		return err
	}

	balance, err := Balance(env, applicant)
	if err != nil {
		return err
	}
	balance, err = smath.Add(balance, amount)
	if err != nil {
		return ErrLimitExceeded
	}
	lent, err := TotalLent(env, applicant)
	if err != nil {
		return err
	}
	lent, err = smath.Add(lent, amount)
	if err != nil {
		return ErrLimitExceeded
	}
	if err := setInstance(env, balanceKey(applicant), balance); err != nil {
		return err
	}
	if err := setInstance(env, lentKey(applicant), lent); err != nil {
		return err
	}
	env.Events().Publish("loan", applicant, amount)
	return nil
}

func TotalLent(env *exercisevm.Env, applicant ids.ShortID) (uint64, error) {
	return exercisevm.GetOr(env.Storage().Instance(), lentKey(applicant), uint64(0))
}
