// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package practice

import (
	"github.com/ava-labs/exercisevm/exercisevm"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

const (
	// MaxCount bounds the limited and settable counters.
	MaxCount uint32 = 1000
	// HistorySize is how many values the history counter remembers.
	HistorySize = 5
)

var (
	countKey   = exercisevm.NewKey("COUNT")
	historyKey = exercisevm.NewKey("HIST")
)

var ExtendedCounter = &exercisevm.Contract{
	Name:        "extended_counter",
	Description: "counter with increment_by, decrement and reset",
	Methods: []exercisevm.Method{
		{Name: "get_count", ReadOnly: true, Call: exercisevm.NoArgs(GetCount)},
		{Name: "increment_by", Call: exercisevm.Func1(IncrementBy)},
		{Name: "increment", Call: exercisevm.NoArgs(Increment)},
		{Name: "decrement", Call: exercisevm.NoArgs(Decrement)},
		{Name: "reset", Call: exercisevm.Action(Reset)},
	},
}

var LimitedCounter = &exercisevm.Contract{
	Name:        "limited_counter",
	Description: "counter that stops at 1000",
	Methods: []exercisevm.Method{
		{Name: "get_count", ReadOnly: true, Call: exercisevm.NoArgs(GetCount)},
		{Name: "increment", Call: exercisevm.NoArgs(IncrementLimited)},
	},
}

var SettableCounter = &exercisevm.Contract{
	Name:        "settable_counter",
	Description: "counter that can be set to any value up to 1000",
	Methods: []exercisevm.Method{
		{Name: "get_count", ReadOnly: true, Call: exercisevm.NoArgs(GetCount)},
		{Name: "set_value", Call: exercisevm.Action1(SetValue)},
		{Name: "increment", Call: exercisevm.NoArgs(Increment)},
	},
}

var HistoryCounter = &exercisevm.Contract{
	Name:        "history_counter",
	Description: "counter that remembers its last five values",
	Methods: []exercisevm.Method{
		{Name: "get_count", ReadOnly: true, Call: exercisevm.NoArgs(GetCount)},
		{Name: "increment", Call: exercisevm.NoArgs(IncrementWithHistory)},
		{Name: "get_history", ReadOnly: true, Call: exercisevm.NoArgs(GetHistory)},
	},
}

func GetCount(env *exercisevm.Env) (uint32, error) {
	return exercisevm.GetOr(env.Storage().Instance(), countKey, uint32(0))
}

func IncrementBy(env *exercisevm.Env, n uint32) (uint32, error) {
	count, err := GetCount(env)
	if err != nil {
		return 0, err
	}
	count, err = smath.Add(count, n)
	if err != nil {
		return 0, exercisevm.Abortf("counter overflow")
	}
	if err := setInstance(env, countKey, count); err != nil {
		return 0, err
	}
	env.Events().Publish("incr_by", n, count)
	return count, nil
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
	if err := setInstance(env, countKey, count); err != nil {
		return 0, err
	}
	env.Events().Publish("increment", count)
	return count, nil
}

func Decrement(env *exercisevm.Env) (uint32, error) {
	count, err := GetCount(env)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, exercisevm.Abortf("cannot decrement: counter is already 0")
	}
	count--
	if err := setInstance(env, countKey, count); err != nil {
		return 0, err
	}
	env.Events().Publish("decrement", count)
	return count, nil
}

func Reset(env *exercisevm.Env) error {
	if err := setInstance(env, countKey, uint32(0)); err != nil {
		return err
	}
	env.Events().Publish("reset", uint32(0))
	return nil
}

func IncrementLimited(env *exercisevm.Env) (uint32, error) {
	count, err := GetCount(env)
	if err != nil {
		return 0, err
	}
	if count >= MaxCount {
		return 0, exercisevm.Abortf("counter reached the maximum of %d", MaxCount)
	}
	count++
	if err := setInstance(env, countKey, count); err != nil {
		return 0, err
	}
	env.Events().Publish("increment", count)
	return count, nil
}

func SetValue(env *exercisevm.Env, v uint32) error {
	if v > MaxCount {
		return exercisevm.Abortf("value must be between 0 and %d, got %d", MaxCount, v)
	}
	if err := setInstance(env, countKey, v); err != nil {
		return err
	}
	env.Events().Publish("set_val", v)
	return nil
}

// IncrementWithHistory increments and appends the new value to the history,
// keeping only the most recent HistorySize values.
func IncrementWithHistory(env *exercisevm.Env) (uint32, error) {
	count, err := GetCount(env)
	if err != nil {
		return 0, err
	}
	count, err = smath.Add(count, 1)
	if err != nil {
		return 0, exercisevm.Abortf("counter overflow")
	}
	history, err := GetHistory(env)
	if err != nil {
		return 0, err
	}
	history = append(history, count)
	if len(history) > HistorySize {
		history = history[len(history)-HistorySize:]
	}

	if err := env.Storage().Instance().Set(countKey, count); err != nil {
		return 0, err
	}
	if err := setInstance(env, historyKey, history); err != nil {
		return 0, err
	}
	env.Events().Publish("increment", count)
	return count, nil
}

func GetHistory(env *exercisevm.Env) ([]uint32, error) {
	return exercisevm.GetOr(env.Storage().Instance(), historyKey, []uint32{})
}
