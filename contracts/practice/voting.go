// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package practice

import (
	"github.com/ava-labs/exercisevm/exercisevm"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

var (
	voteAKey = exercisevm.NewKey("VOTE_A")
	voteBKey = exercisevm.NewKey("VOTE_B")
)

var Voting = &exercisevm.Contract{
	Name:        "voting",
	Description: "open two-option poll",
	Methods: []exercisevm.Method{
		{Name: "vote_a", Call: exercisevm.Action(VoteA)},
		{Name: "vote_b", Call: exercisevm.Action(VoteB)},
		{Name: "get_results", ReadOnly: true, Call: exercisevm.NoArgs(GetResults)},
		{Name: "get_winner", ReadOnly: true, Call: exercisevm.NoArgs(GetWinner)},
	},
}

// Results is the tally of the poll.
type Results struct {
	A uint32 `json:"a"`
	B uint32 `json:"b"`
}

func VoteA(env *exercisevm.Env) error { return vote(env, voteAKey, "vote_a") }
func VoteB(env *exercisevm.Env) error { return vote(env, voteBKey, "vote_b") }

func vote(env *exercisevm.Env, key exercisevm.Key, topic exercisevm.Symbol) error {
	votes, err := exercisevm.GetOr(env.Storage().Instance(), key, uint32(0))
	if err != nil {
		return err
	}
	votes, err = smath.Add(votes, 1)
	if err != nil {
		return exercisevm.Abortf("vote overflow")
	}
	if err := setInstance(env, key, votes); err != nil {
		return err
	}
	env.Events().Publish(topic, votes)
	return nil
}

func GetResults(env *exercisevm.Env) (Results, error) {
	instance := env.Storage().Instance()
	a, err := exercisevm.GetOr(instance, voteAKey, uint32(0))
	if err != nil {
		return Results{}, err
	}
	b, err := exercisevm.GetOr(instance, voteBKey, uint32(0))
	if err != nil {
		return Results{}, err
	}
	return Results{A: a, B: b}, nil
}

// GetWinner returns "A", "B" or "tie".
func GetWinner(env *exercisevm.Env) (exercisevm.Symbol, error) {
	r, err := GetResults(env)
	switch {
	case err != nil:
		return "", err
	case r.A > r.B:
		return "A", nil
	case r.B > r.A:
		return "B", nil
	default:
		return "tie", nil
	}
}
