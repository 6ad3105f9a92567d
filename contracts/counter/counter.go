// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package counter is a single counter kept in the instance tier.
package counter

import (
	"github.com/ava-labs/exercisevm/exercisevm"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

const (
	// Limit is the ceiling of IncrementWithLimit.
	Limit uint32 = 1000

	ttlThreshold = 100
	ttlExtendTo  = 100
)

var counterKey = exercisevm.NewKey("COUNTER")

var Contract = &exercisevm.Contract{
	Name:        "counter",
	Description: "instance-tier counter with checked arithmetic",
	Methods: []exercisevm.Method{
		{Name: "increment", Call: exercisevm.NoArgs(Increment)},
		{Name: "decrement", Call: exercisevm.NoArgs(Decrement)},
		{Name: "get_count", ReadOnly: true, Call: exercisevm.NoArgs(GetCount)},
		{Name: "reset", Call: exercisevm.Action(Reset)},
		{Name: "increment_by", Call: exercisevm.Func1(IncrementBy)},
		{Name: "increment_with_limit", Call: exercisevm.NoArgs(IncrementWithLimit)},
		{Name: "decrement_by", Call: exercisevm.Func1(DecrementBy)},
	},
}

func GetCount(env *exercisevm.Env) (uint32, error) {
	return exercisevm.GetOr(env.Storage().Instance(), counterKey, uint32(0))
}

func store(env *exercisevm.Env, count uint32) error {
	instance := env.Storage().Instance()
	if err := instance.Set(counterKey, count); err != nil {
		return err
	}
	return instance.ExtendTTL(ttlThreshold, ttlExtendTo)
}

func Increment(env *exercisevm.Env) (uint32, error) {
	count, err := GetCount(env)
	if err != nil {
		return 0, err
	}
	count, err = smath.Add(count, 1)
	if err != nil {
		return 0, exercisevm.Abortf("counter overflow")
	}
	if err := store(env, count); err != nil {
		return 0, err
	}
	env.Events().Publish("increment", count)
	return count, nil
}

// Decrement aborts when the counter is already zero.
func Decrement(env *exercisevm.Env) (uint32, error) {
	count, err := GetCount(env)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, exercisevm.Abortf("cannot decrement: counter is already 0")
	}
	count--
	if err := store(env, count); err != nil {
		return 0, err
	}
	env.Events().Publish("decrement", count)
	return count, nil
}

func Reset(env *exercisevm.Env) error {
	if err := store(env, 0); err != nil {
		return err
	}
	env.Events().Publish("reset", uint32(0))
	return nil
}

func IncrementBy(env *exercisevm.Env, n uint32) (uint32, error) {
	count, err := GetCount(env)
	if err != nil {
		return 0, err
	}
	next, err := smath.Add(count, n)
	if err != nil {
		return 0, exercisevm.Abortf("counter overflow: %d + %d", count, n)
	}
	if err := store(env, next); err != nil {
		return 0, err
	}
	env.Events().Publish("inc_by", n, next)
	return next, nil
}

// IncrementWithLimit aborts once the counter has reached Limit.
func IncrementWithLimit(env *exercisevm.Env) (uint32, error) {
	count, err := GetCount(env)
	if err != nil {
		return 0, err
	}
	if count >= Limit {
		return 0, exercisevm.Abortf("counter reached the limit of %d", Limit)
	}
	count++
	if err := store(env, count); err != nil {
		return 0, err
	}
	env.Events().Publish("increment", count)
	return count, nil
}

func DecrementBy(env *exercisevm.Env, n uint32) (uint32, error) {
	count, err := GetCount(env)
	if err != nil {
		return 0, err
	}
	next, err := smath.Sub(count, n)
	if err != nil {
		return 0, exercisevm.Abortf("cannot decrement: counter %d is below %d", count, n)
	}
	if err := store(env, next); err != nil {
		return 0, err
	}
	env.Events().Publish("dec_by", n, next)
	return next, nil
}
