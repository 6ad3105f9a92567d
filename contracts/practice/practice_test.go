// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package practice

import (
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/exercisevm/exercisevm"
	"github.com/ava-labs/exercisevm/exercisevm/hosttest"
)

type fixture struct {
	*hosttest.Harness
	contractID ids.ID
}

func newFixture(t *testing.T, c *exercisevm.Contract) *fixture {
	h := hosttest.New(t, c)
	return &fixture{Harness: h, contractID: h.Deploy(c.Name)}
}

func call[T any](f *fixture, fn func(*exercisevm.Env) (T, error), opts ...exercisevm.CallOption) (T, error) {
	return exercisevm.Call(f.Ctx, f.Host, f.contractID, fn, opts...)
}

func exec(f *fixture, fn func(*exercisevm.Env) error, opts ...exercisevm.CallOption) error {
	return exercisevm.Exec(f.Ctx, f.Host, f.contractID, fn, opts...)
}

func TestMystery(t *testing.T) {
	require := require.New(t)
	f := newFixture(t, Mystery)

	v, err := call(f, DoubleData)
	require.NoError(err)
	require.Equal(uint32(20), v)

	for _, x := range []uint32{5, 5, 5} {
		_, err := call(f, func(env *exercisevm.Env) (uint32, error) { return Accumulate(env, x) })
		require.NoError(err)
	}
	total, err := call(f, func(env *exercisevm.Env) (uint32, error) {
		return exercisevm.GetOr(env.Storage().Instance(), totalKey, uint32(0))
	})
	require.NoError(err)
	require.Equal(uint32(15), total)

	require.NoError(exec(f, func(env *exercisevm.Env) error {
		return env.Storage().Instance().Set(dataKey, uint32(1<<31))
	}))
	_, err = call(f, DoubleData)
	require.ErrorIs(err, exercisevm.ErrAborted)
}

func TestExtendedCounter(t *testing.T) {
	require := require.New(t)
	f := newFixture(t, ExtendedCounter)

	count, err := call(f, func(env *exercisevm.Env) (uint32, error) { return IncrementBy(env, 5) })
	require.NoError(err)
	require.Equal(uint32(5), count)
	require.Equal(exercisevm.Symbol("incr_by"), f.LastEvent().Topic)

	count, err = call(f, Increment)
	require.NoError(err)
	require.Equal(uint32(6), count)

	count, err = call(f, Decrement)
	require.NoError(err)
	require.Equal(uint32(5), count)

	require.NoError(exec(f, Reset))
	last := f.LastEvent()
	require.Equal(exercisevm.Symbol("reset"), last.Topic)
	require.Equal([]interface{}{uint32(0)}, last.Data)
	_, err = call(f, Decrement)
	require.ErrorIs(err, exercisevm.ErrAborted)
}

func TestLimitedCounter(t *testing.T) {
	require := require.New(t)
	f := newFixture(t, LimitedCounter)

	require.NoError(exec(f, func(env *exercisevm.Env) error {
		return env.Storage().Instance().Set(countKey, MaxCount-1)
	}))
	count, err := call(f, IncrementLimited)
	require.NoError(err)
	require.Equal(MaxCount, count)

	_, err = call(f, IncrementLimited)
	require.ErrorIs(err, exercisevm.ErrAborted)
	count, err = call(f, GetCount)
	require.NoError(err)
	require.Equal(MaxCount, count)
}

func TestSettableCounter(t *testing.T) {
	require := require.New(t)
	f := newFixture(t, SettableCounter)

	require.NoError(exec(f, func(env *exercisevm.Env) error { return SetValue(env, 500) }))
	require.Equal([]interface{}{uint32(500)}, f.LastEvent().Data)

	count, err := call(f, Increment)
	require.NoError(err)
	require.Equal(uint32(501), count)

	err = exec(f, func(env *exercisevm.Env) error { return SetValue(env, MaxCount+1) })
	require.ErrorIs(err, exercisevm.ErrAborted)
	count, err = call(f, GetCount)
	require.NoError(err)
	require.Equal(uint32(501), count)
}

func TestHistoryCounter(t *testing.T) {
	require := require.New(t)
	f := newFixture(t, HistoryCounter)

	history, err := call(f, GetHistory)
	require.NoError(err)
	require.Empty(history)

	for i := 0; i < 7; i++ {
		_, err := call(f, IncrementWithHistory)
		require.NoError(err)
	}
	history, err = call(f, GetHistory)
	require.NoError(err)
	require.Equal([]uint32{3, 4, 5, 6, 7}, history)
}

func TestVoting(t *testing.T) {
	require := require.New(t)
	f := newFixture(t, Voting)

	winner, err := call(f, GetWinner)
	require.NoError(err)
	require.Equal(exercisevm.Symbol("tie"), winner)

	require.NoError(exec(f, VoteA))
	require.NoError(exec(f, VoteB))
	require.NoError(exec(f, VoteB))

	results, err := call(f, GetResults)
	require.NoError(err)
	require.Equal(Results{A: 1, B: 2}, results)

	winner, err = call(f, GetWinner)
	require.NoError(err)
	require.Equal(exercisevm.Symbol("B"), winner)
}

func TestReputation(t *testing.T) {
	require := require.New(t)
	f := newFixture(t, Reputation)

	alice := hosttest.Addr()
	bob := hosttest.Addr()
	entity := exercisevm.Symbol("pizzeria")

	require.ErrorIs(exec(f, func(env *exercisevm.Env) error {
		return Like(env, entity, alice)
	}), exercisevm.ErrNotAuthorized)

	require.NoError(exec(f, func(env *exercisevm.Env) error {
		return Like(env, entity, alice)
	}, exercisevm.WithAuths(alice)))
	require.Equal([]interface{}{entity, alice, uint32(1)}, f.LastEvent().Data)

	require.NoError(exec(f, func(env *exercisevm.Env) error {
		return Dislike(env, entity, bob)
	}, exercisevm.WithAuths(bob)))

	// A second vote of any kind aborts and leaves the tallies alone.
	for _, vote := range []func(*exercisevm.Env, exercisevm.Symbol, ids.ShortID) error{Like, Dislike} {
		err := exec(f, func(env *exercisevm.Env) error {
			return vote(env, entity, alice)
		}, exercisevm.WithAuths(alice))
		require.ErrorIs(err, exercisevm.ErrAborted)
	}

	likes, err := call(f, func(env *exercisevm.Env) (uint32, error) { return GetLikes(env, entity) })
	require.NoError(err)
	require.Equal(uint32(1), likes)
	dislikes, err := call(f, func(env *exercisevm.Env) (uint32, error) { return GetDislikes(env, entity) })
	require.NoError(err)
	require.Equal(uint32(1), dislikes)

	voted, err := call(f, func(env *exercisevm.Env) (bool, error) { return HasVoted(env, entity, alice) })
	require.NoError(err)
	require.True(voted)
	voted, err = call(f, func(env *exercisevm.Env) (bool, error) { return HasVoted(env, "other", alice) })
	require.NoError(err)
	require.False(voted)
}

func TestReputationScore(t *testing.T) {
	require := require.New(t)
	f := newFixture(t, Reputation)

	entity := exercisevm.Symbol("cafe")
	for i := 0; i < 3; i++ {
		user := hosttest.Addr()
		require.NoError(exec(f, func(env *exercisevm.Env) error {
			return Dislike(env, entity, user)
		}, exercisevm.WithAuths(user)))
	}
	user := hosttest.Addr()
	require.NoError(exec(f, func(env *exercisevm.Env) error {
		return Like(env, entity, user)
	}, exercisevm.WithAuths(user)))

	score, err := call(f, func(env *exercisevm.Env) (int64, error) { return GetScore(env, entity) })
	require.NoError(err)
	require.Equal(int64(-2), score)
}

func TestReputationDynamic(t *testing.T) {
	require := require.New(t)
	f := newFixture(t, Reputation)

	user := hosttest.Addr()
	args := exercisevm.Args{[]byte(`"museum"`), []byte(`"` + user.String() + `"`)}
	_, err := f.Host.Invoke(f.Ctx, f.contractID, "like", args, exercisevm.WithAuths(user))
	require.NoError(err)

	res, err := f.Host.Invoke(f.Ctx, f.contractID, "get_score", args[:1])
	require.NoError(err)
	require.Equal(int64(1), res.Value)

	res, err = f.Host.Invoke(f.Ctx, f.contractID, "has_voted", args)
	require.NoError(err)
	require.Equal(true, res.Value)
}
