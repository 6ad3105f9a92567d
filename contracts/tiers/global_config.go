// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tiers

import (
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/exercisevm/exercisevm"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

var (
	adminKey      = exercisevm.NewKey("Admin")
	tokenNameKey  = exercisevm.NewKey("TokenName")
	operationsKey = exercisevm.NewKey("TotalOperations")
)

var GlobalConfig = &exercisevm.Contract{
	Name:        "global_config",
	Description: "contract-wide settings in the instance tier",
	Methods: []exercisevm.Method{
		{Name: "initialize", Call: exercisevm.Action2(InitializeConfig)},
		{Name: "get_admin", ReadOnly: true, Call: exercisevm.NoArgs(GetAdmin)},
		{Name: "get_token_name", ReadOnly: true, Call: exercisevm.NoArgs(GetTokenName)},
		{Name: "increment_operations", Call: exercisevm.NoArgs(IncrementOperations)},
		{Name: "get_total_operations", ReadOnly: true, Call: exercisevm.NoArgs(GetTotalOperations)},
	},
}

func InitializeConfig(env *exercisevm.Env, admin ids.ShortID, name exercisevm.Symbol) error {
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
	if err := instance.Set(tokenNameKey, name); err != nil {
		return err
	}
	return setInstance(env, operationsKey, uint32(0))
}

func GetAdmin(env *exercisevm.Env) (ids.ShortID, error) {
	return required[ids.ShortID](env.Storage().Instance(), adminKey)
}

func GetTokenName(env *exercisevm.Env) (exercisevm.Symbol, error) {
	return required[exercisevm.Symbol](env.Storage().Instance(), tokenNameKey)
}

func IncrementOperations(env *exercisevm.Env) (uint32, error) {
	n, err := GetTotalOperations(env)
	if err != nil {
		return 0, err
	}
	n, err = smath.Add(n, 1)
	if err != nil {
		return 0, exercisevm.Abortf("operation counter overflow")
	}
	return n, setInstance(env, operationsKey, n)
}

func GetTotalOperations(env *exercisevm.Env) (uint32, error) {
	return exercisevm.GetOr(env.Storage().Instance(), operationsKey, uint32(0))
}
