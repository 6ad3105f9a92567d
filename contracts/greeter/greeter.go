// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package greeter is a small but complete contract: validated input, tagged
// errors, an admin set once at initialization and TTL upkeep on every write.
package greeter

import (
	"fmt"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/exercisevm/exercisevm"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

const (
	ttlThreshold = 100
	ttlExtendTo  = 100

	// Greeting is returned by every successful hello.
	Greeting exercisevm.Symbol = "Hola"
)

type Error uint32

const (
	ErrEmptyName Error = iota + 1
	ErrNameTooLong
	ErrNotAuthorized
	ErrNotInitialized
	ErrAlreadyInitialized
)

var _ exercisevm.ContractError = ErrEmptyName

func (e Error) Code() uint32 { return uint32(e) }

func (e Error) Error() string {
	switch e {
	case ErrEmptyName:
		return "empty name"
	case ErrNameTooLong:
		return "name too long"
	case ErrNotAuthorized:
		return "not authorized"
	case ErrNotInitialized:
		return "not initialized"
	case ErrAlreadyInitialized:
		return "already initialized"
	default:
		return fmt.Sprintf("error(%d)", uint32(e))
	}
}

var (
	adminKey   = exercisevm.NewKey("Admin")
	counterKey = exercisevm.NewKey("GreetingCount")
)

func lastGreetingKey(user ids.ShortID) exercisevm.Key {
	return exercisevm.NewKey("LastGreeting").Address(user)
}

var Greeter = &exercisevm.Contract{
	Name:        "greeter",
	Description: "greets users and remembers their last greeting",
	Methods: []exercisevm.Method{
		{Name: "initialize", Call: exercisevm.Action1(Initialize)},
		{Name: "hello", Call: exercisevm.Func2(Hello)},
		{Name: "get_counter", ReadOnly: true, Call: exercisevm.NoArgs(GetCounter)},
		{Name: "get_last_greeting", ReadOnly: true, Call: exercisevm.Func1(GetLastGreeting)},
		{Name: "reset_counter", Call: exercisevm.Action1(ResetCounter)},
		{Name: "get_admin", ReadOnly: true, Call: exercisevm.NoArgs(GetAdmin)},
	},
}

func Initialize(env *exercisevm.Env, admin ids.ShortID) error {
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
	if err := instance.Set(counterKey, uint32(0)); err != nil {
		return err
	}
	return instance.ExtendTTL(ttlThreshold, ttlExtendTo)
}

// Hello bumps the greeting counter and stores [name] as the last greeting of
// [user]. Names are 1 to 32 symbol characters.
func Hello(env *exercisevm.Env, user ids.ShortID, name string) (exercisevm.Symbol, error) {
	switch {
	case len(name) == 0:
		return "", ErrEmptyName
	case len(name) > exercisevm.MaxSymbolLen:
		return "", ErrNameTooLong
	}
	sym, err := exercisevm.NewSymbol(name)
	if err != nil {
		return "", fmt.Errorf("%w: %w", exercisevm.ErrInvalidArgs, err)
	}

	count, err := GetCounter(env)
	if err != nil {
		return "", err
	}
	count, err = smath.Add(count, 1)
	if err != nil {
		return "", exercisevm.Abortf("greeting counter overflow")
	}

	instance := env.Storage().Instance()
	if err := instance.Set(counterKey, count); err != nil {
		return "", err
	}
	persistent := env.Storage().Persistent()
	key := lastGreetingKey(user)
	if err := persistent.Set(key, sym); err != nil {
		return "", err
	}
	if err := persistent.ExtendTTL(key, ttlThreshold, ttlExtendTo); err != nil {
		return "", err
	}
	if err := instance.ExtendTTL(ttlThreshold, ttlExtendTo); err != nil {
		return "", err
	}
	env.Events().Publish("hello", user, sym)
	return Greeting, nil
}

func GetCounter(env *exercisevm.Env) (uint32, error) {
	return exercisevm.GetOr(env.Storage().Instance(), counterKey, uint32(0))
}

// GetLastGreeting returns nil if [user] never said hello.
func GetLastGreeting(env *exercisevm.Env, user ids.ShortID) (*exercisevm.Symbol, error) {
	sym, ok, err := exercisevm.Get[exercisevm.Symbol](env.Storage().Persistent(), lastGreetingKey(user))
	if err != nil || !ok {
		return nil, err
	}
	return &sym, nil
}

// ResetCounter zeroes the counter. [caller] must sign and be the admin.
func ResetCounter(env *exercisevm.Env, caller ids.ShortID) error {
	admin, err := GetAdmin(env)
	if err != nil {
		return err
	}
	if env.RequireAuth(caller) != nil || caller != admin {
		return ErrNotAuthorized
	}
	instance := env.Storage().Instance()
	if err := instance.Set(counterKey, uint32(0)); err != nil {
		return err
	}
	if err := instance.ExtendTTL(ttlThreshold, ttlExtendTo); err != nil {
		return err
	}
	env.Events().Publish("reset", caller)
	return nil
}

func GetAdmin(env *exercisevm.Env) (ids.ShortID, error) {
	admin, ok, err := exercisevm.Get[ids.ShortID](env.Storage().Instance(), adminKey)
	if err == nil && !ok {
		err = ErrNotInitialized
	}
	return admin, err
}
