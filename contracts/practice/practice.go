// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package practice holds the small practice contracts: analysis functions,
// counter variations, a two-option poll and a like/dislike reputation board.
package practice

import (
	"github.com/ava-labs/exercisevm/exercisevm"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

const (
	ttlThreshold = 100
	ttlExtendTo  = 100

	// defaultData is what DoubleData reads before DATA is ever set.
	defaultData uint32 = 10
)

var (
	dataKey  = exercisevm.NewKey("DATA")
	totalKey = exercisevm.NewKey("TOTAL")
)

var Mystery = &exercisevm.Contract{
	Name:        "mystery",
	Description: "read-only doubling and an accumulator",
	Methods: []exercisevm.Method{
		{Name: "double_data", ReadOnly: true, Call: exercisevm.NoArgs(DoubleData)},
		{Name: "accumulate", Call: exercisevm.Func1(Accumulate)},
	},
}

// DoubleData returns twice DATA without writing anything.
func DoubleData(env *exercisevm.Env) (uint32, error) {
	v, err := exercisevm.GetOr(env.Storage().Instance(), dataKey, defaultData)
	if err != nil {
		return 0, err
	}
	doubled, err := smath.Add(v, v)
	if err != nil {
		return 0, exercisevm.Abortf("overflow doubling %d", v)
	}
	return doubled, nil
}

// Accumulate adds [x] to TOTAL and returns the new total.
func Accumulate(env *exercisevm.Env, x uint32) (uint32, error) {
	instance := env.Storage().Instance()
	total, err := exercisevm.GetOr(instance, totalKey, uint32(0))
	if err != nil {
		return 0, err
	}
	total, err = smath.Add(total, x)
	if err != nil {
		return 0, exercisevm.Abortf("total overflow")
	}
	if err := instance.Set(totalKey, total); err != nil {
		return 0, err
	}
	return total, instance.ExtendTTL(ttlThreshold, ttlExtendTo)
}

// setInstance writes [value] at [key] and extends the instance.
func setInstance(env *exercisevm.Env, key exercisevm.Key, value interface{}) error {
	instance := env.Storage().Instance()
	if err := instance.Set(key, value); err != nil {
		return err
	}
	return instance.ExtendTTL(ttlThreshold, ttlExtendTo)
}
