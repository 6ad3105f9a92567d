// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package basics collects the introductory exercises: iterating over a
// vector, validating input, emitting events and a checked token transfer.
package basics

import (
	"fmt"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/exercisevm/exercisevm"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

const (
	// Threshold is the value CountAbove compares against.
	Threshold   = 100
	MaxQuantity = 1000

	ttlThreshold = 100
	ttlExtendTo  = 100
)

type Error uint32

const (
	ErrZeroQuantity Error = iota + 1
	ErrQuantityTooLarge
	ErrInvalidAmount
	ErrInsufficientBalance
	ErrOverflow
	ErrUnderflow
)

var _ exercisevm.ContractError = ErrZeroQuantity

func (e Error) Code() uint32 { return uint32(e) }

func (e Error) Error() string {
	switch e {
	case ErrZeroQuantity:
		return "quantity can't be zero"
	case ErrQuantityTooLarge:
		return fmt.Sprintf("quantity can't exceed %d", MaxQuantity)
	case ErrInvalidAmount:
		return "amount must be positive"
	case ErrInsufficientBalance:
		return "insufficient balance"
	case ErrOverflow:
		return "overflow"
	case ErrUnderflow:
		return "underflow"
	default:
		return fmt.Sprintf("error(%d)", uint32(e))
	}
}

var adminKey = exercisevm.NewKey("Admin")

func balanceKey(account ids.ShortID) exercisevm.Key {
	return exercisevm.NewKey("balance").Address(account)
}

var Basics = &exercisevm.Contract{
	Name:        "basics",
	Description: "introductory exercises",
	Methods: []exercisevm.Method{
		{Name: "count_above", ReadOnly: true, Call: exercisevm.Func1(CountAbove)},
		{Name: "validate_quantity", ReadOnly: true, Call: exercisevm.Func1(ValidateQuantity)},
		{Name: "process_deposit", Call: exercisevm.Func1(ProcessDeposit)},
		{Name: "process_token_info", ReadOnly: true, Call: exercisevm.Func3(ProcessTokenInfo)},
		{Name: "initialize", Call: exercisevm.Action1(Initialize)},
		{Name: "set_balance", Call: exercisevm.Action2(SetBalance)},
		{Name: "transfer", Call: exercisevm.Action3(Transfer)},
		{Name: "balance", ReadOnly: true, Call: exercisevm.Func1(Balance)},
		{Name: "safe_add_u8", ReadOnly: true, Call: exercisevm.Func2(SafeAddU8)},
		{Name: "safe_sub_u32", ReadOnly: true, Call: exercisevm.Func2(SafeSubU32)},
	},
}

// CountAbove returns how many of [values] exceed [Threshold].
func CountAbove(_ *exercisevm.Env, values []uint32) (uint32, error) {
	var n uint32
	for _, v := range values {
		if v > Threshold {
			n++
		}
	}
	return n, nil
}

func ValidateQuantity(_ *exercisevm.Env, q uint32) (uint32, error) {
	switch {
	case q == 0:
		return 0, ErrZeroQuantity
	case q > MaxQuantity:
		return 0, ErrQuantityTooLarge
	default:
		return q, nil
	}
}

func ProcessDeposit(env *exercisevm.Env, q uint32) (uint64, error) {
	q, err := ValidateQuantity(env, q)
	if err != nil {
		return 0, err
	}
	env.Events().Publish("deposit", q)
	return uint64(q), nil
}

// ProcessTokenInfo aborts on an empty name or a zero supply and otherwise
// echoes [supply].
func ProcessTokenInfo(_ *exercisevm.Env, name string, _ exercisevm.Symbol, supply uint64) (uint64, error) {
	if len(name) == 0 {
		return 0, exercisevm.Abortf("empty token name")
	}
	if supply == 0 {
		return 0, exercisevm.Abortf("supply can't be zero")
	}
	return supply, nil
}

func Initialize(env *exercisevm.Env, admin ids.ShortID) error {
	instance := env.Storage().Instance()
	has, err := instance.Has(adminKey)
	if err != nil {
		return err
	}
	if has {
		return exercisevm.Abortf("already initialized")
	}
	return setInstance(env, adminKey, admin)
}

// SetBalance seeds [account]. The admin must sign.
func SetBalance(env *exercisevm.Env, account ids.ShortID, amount uint64) error {
	admin, ok, err := exercisevm.Get[ids.ShortID](env.Storage().Instance(), adminKey)
	if err != nil {
		return err
	}
	if !ok {
		return exercisevm.Abortf("not initialized")
	}
	if err := env.RequireAuth(admin); err != nil {
		return err
	}
	return setInstance(env, balanceKey(account), amount)
}

func Transfer(env *exercisevm.Env, from, to ids.ShortID, amount uint64) error {
	if err := env.RequireAuth(from); err != nil {
		return err
	}
	if amount == 0 {
		return ErrInvalidAmount
	}
	fromBalance, err := Balance(env, from)
	if err != nil {
		return err
	}
	fromBalance, err = smath.Sub(fromBalance, amount)
	if err != nil {
		return ErrInsufficientBalance
	}
	if err := setInstance(env, balanceKey(from), fromBalance); err != nil {
		return err
	}

	// Read after the debit so a self transfer nets out.
	toBalance, err := Balance(env, to)
	if err != nil {
		return err
	}
	toBalance, err = smath.Add(toBalance, amount)
	if err != nil {
		return ErrOverflow
	}
	if err := setInstance(env, balanceKey(to), toBalance); err != nil {
		return err
	}
	env.Events().Publish("transfer", from, to, amount)
	return nil
}

func Balance(env *exercisevm.Env, account ids.ShortID) (uint64, error) {
	return exercisevm.GetOr(env.Storage().Instance(), balanceKey(account), uint64(0))
}

func SafeAddU8(_ *exercisevm.Env, a, b uint8) (uint8, error) {
	sum, err := smath.Add(a, b)
	if err != nil {
		return 0, ErrOverflow
	}
	return sum, nil
}

func SafeSubU32(_ *exercisevm.Env, a, b uint32) (uint32, error) {
	diff, err := smath.Sub(a, b)
	if err != nil {
		return 0, ErrUnderflow
	}
	return diff, nil
}

func setInstance(env *exercisevm.Env, key exercisevm.Key, value interface{}) error {
	instance := env.Storage().Instance()
	if err := instance.Set(key, value); err != nil {
		return err
	}
	return instance.ExtendTTL(ttlThreshold, ttlExtendTo)
}
