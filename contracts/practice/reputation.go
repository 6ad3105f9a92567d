// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package practice

import (
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/exercisevm/exercisevm"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

var Reputation = &exercisevm.Contract{
	Name:        "reputation",
	Description: "one like or dislike per user and entity",
	Methods: []exercisevm.Method{
		{Name: "like", Call: exercisevm.Action2(Like)},
		{Name: "dislike", Call: exercisevm.Action2(Dislike)},
		{Name: "get_likes", ReadOnly: true, Call: exercisevm.Func1(GetLikes)},
		{Name: "get_dislikes", ReadOnly: true, Call: exercisevm.Func1(GetDislikes)},
		{Name: "get_score", ReadOnly: true, Call: exercisevm.Func1(GetScore)},
		{Name: "has_voted", ReadOnly: true, Call: exercisevm.Func2(HasVoted)},
	},
}

func voteKey(entity exercisevm.Symbol, user ids.ShortID) exercisevm.Key {
	return exercisevm.NewKey("Vote").Symbol(entity).Address(user)
}

func likesKey(entity exercisevm.Symbol) exercisevm.Key {
	return exercisevm.NewKey("Likes").Symbol(entity)
}

func dislikesKey(entity exercisevm.Symbol) exercisevm.Key {
	return exercisevm.NewKey("Dislikes").Symbol(entity)
}

// Like records [user]'s like of [entity]. A user votes at most once per
// entity; a second vote aborts.
func Like(env *exercisevm.Env, entity exercisevm.Symbol, user ids.ShortID) error {
	return react(env, entity, user, "like", likesKey(entity))
}

func Dislike(env *exercisevm.Env, entity exercisevm.Symbol, user ids.ShortID) error {
	return react(env, entity, user, "dislike", dislikesKey(entity))
}

func react(env *exercisevm.Env, entity exercisevm.Symbol, user ids.ShortID, kind exercisevm.Symbol, tallyKey exercisevm.Key) error {
	if err := env.RequireAuth(user); err != nil {
		return err
	}
	persistent := env.Storage().Persistent()
	vk := voteKey(entity, user)
	voted, err := persistent.Has(vk)
	if err != nil {
		return err
	}
	if voted {
		return exercisevm.Abortf("%s already voted on %s", user, entity)
	}

	tally, err := exercisevm.GetOr(persistent, tallyKey, uint32(0))
	if err != nil {
		return err
	}
	tally, err = smath.Add(tally, 1)
	if err != nil {
		return exercisevm.Abortf("%s tally overflow", kind)
	}

	if err := setPersistent(persistent, vk, kind); err != nil {
		return err
	}
	if err := setPersistent(persistent, tallyKey, tally); err != nil {
		return err
	}
	env.Events().Publish(kind, entity, user, tally)
	return nil
}

func GetLikes(env *exercisevm.Env, entity exercisevm.Symbol) (uint32, error) {
	return exercisevm.GetOr(env.Storage().Persistent(), likesKey(entity), uint32(0))
}

func GetDislikes(env *exercisevm.Env, entity exercisevm.Symbol) (uint32, error) {
	return exercisevm.GetOr(env.Storage().Persistent(), dislikesKey(entity), uint32(0))
}

// GetScore is likes minus dislikes.
func GetScore(env *exercisevm.Env, entity exercisevm.Symbol) (int64, error) {
	likes, err := GetLikes(env, entity)
	if err != nil {
		return 0, err
	}
	dislikes, err := GetDislikes(env, entity)
	if err != nil {
		return 0, err
	}
	return int64(likes) - int64(dislikes), nil
}

func HasVoted(env *exercisevm.Env, entity exercisevm.Symbol, user ids.ShortID) (bool, error) {
	return env.Storage().Persistent().Has(voteKey(entity, user))
}

func setPersistent(persistent *exercisevm.EntryStore, key exercisevm.Key, value interface{}) error {
	if err := persistent.Set(key, value); err != nil {
		return err
	}
	return persistent.ExtendTTL(key, ttlThreshold, ttlExtendTo)
}
