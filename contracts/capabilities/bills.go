// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package capabilities

import (
	"github.com/ava-labs/exercisevm/exercisevm"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

var (
	nextBillKey = exercisevm.NewKey("NextBill")

	_ Votable = Bill{}
)

var BillsContract = &exercisevm.Contract{
	Name:        "bills",
	Description: "proposals that pass with more votes for than against",
	Methods: []exercisevm.Method{
		{Name: "propose", Call: exercisevm.Func1(Propose)},
		{Name: "vote_for", Call: exercisevm.Action1(VoteFor)},
		{Name: "vote_against", Call: exercisevm.Action1(VoteAgainst)},
		{Name: "get_votes", ReadOnly: true, Call: exercisevm.Func1(GetVotes)},
		{Name: "passed", ReadOnly: true, Call: exercisevm.Func1(BillPassed)},
		{Name: "count_passed", ReadOnly: true, Call: exercisevm.NoArgs(CountPassedBills)},
	},
}

// Bill is a proposal stored in the persistent tier under its ID.
type Bill struct {
	ID uint32
}

// Votes is the tally of a bill.
type Votes struct {
	Title   exercisevm.Symbol `json:"title"`
	For     uint32            `json:"for"`
	Against uint32            `json:"against"`
}

func (b Bill) titleKey() exercisevm.Key   { return exercisevm.NewKey("Title").Uint32(b.ID) }
func (b Bill) forKey() exercisevm.Key     { return exercisevm.NewKey("For").Uint32(b.ID) }
func (b Bill) againstKey() exercisevm.Key { return exercisevm.NewKey("Against").Uint32(b.ID) }

func (b Bill) VotesFor(env *exercisevm.Env) (uint32, error) {
	return exercisevm.GetOr(env.Storage().Persistent(), b.forKey(), uint32(0))
}

func (b Bill) VotesAgainst(env *exercisevm.Env) (uint32, error) {
	return exercisevm.GetOr(env.Storage().Persistent(), b.againstKey(), uint32(0))
}

func (b Bill) verify(env *exercisevm.Env) error {
	exists, err := env.Storage().Persistent().Has(b.titleKey())
	if err != nil {
		return err
	}
	if !exists {
		return ErrUnknownBill
	}
	return nil
}

func (b Bill) vote(env *exercisevm.Env, key exercisevm.Key, topic exercisevm.Symbol) error {
	if err := b.verify(env); err != nil {
		return err
	}
	votes, err := exercisevm.GetOr(env.Storage().Persistent(), key, uint32(0))
	if err != nil {
		return err
	}
	votes, err = smath.Add(votes, 1)
	if err != nil {
		return exercisevm.Abortf("vote overflow on bill %d", b.ID)
	}
	if err := setPersistent(env, key, votes); err != nil {
		return err
	}
	env.Events().Publish(topic, b.ID, votes)
	return nil
}

// Propose stores a new bill titled [title] and returns its ID.
func Propose(env *exercisevm.Env, title exercisevm.Symbol) (uint32, error) {
	id, err := exercisevm.GetOr(env.Storage().Instance(), nextBillKey, uint32(0))
	if err != nil {
		return 0, err
	}
	next, err := smath.Add(id, 1)
	if err != nil {
		return 0, exercisevm.Abortf("too many bills")
	}
	if err := setInstance(env, nextBillKey, next); err != nil {
		return 0, err
	}
	if err := setPersistent(env, Bill{ID: id}.titleKey(), title); err != nil {
		return 0, err
	}
	env.Events().Publish("proposed", id, title)
	return id, nil
}

func VoteFor(env *exercisevm.Env, id uint32) error {
	b := Bill{ID: id}
	return b.vote(env, b.forKey(), "vote_for")
}

func VoteAgainst(env *exercisevm.Env, id uint32) error {
	b := Bill{ID: id}
	return b.vote(env, b.againstKey(), "vote_against")
}

func GetVotes(env *exercisevm.Env, id uint32) (Votes, error) {
	b := Bill{ID: id}
	title, ok, err := exercisevm.Get[exercisevm.Symbol](env.Storage().Persistent(), b.titleKey())
	switch {
	case err != nil:
		return Votes{}, err
	case !ok:
		return Votes{}, ErrUnknownBill
	}
	votesFor, err := b.VotesFor(env)
	if err != nil {
		return Votes{}, err
	}
	votesAgainst, err := b.VotesAgainst(env)
	if err != nil {
		return Votes{}, err
	}
	return Votes{Title: title, For: votesFor, Against: votesAgainst}, nil
}

func BillPassed(env *exercisevm.Env, id uint32) (bool, error) {
	b := Bill{ID: id}
	if err := b.verify(env); err != nil {
		return false, err
	}
	return Passed(env, b)
}

// CountPassedBills counts every proposed bill that has passed.
func CountPassedBills(env *exercisevm.Env) (uint32, error) {
	n, err := exercisevm.GetOr(env.Storage().Instance(), nextBillKey, uint32(0))
	if err != nil {
		return 0, err
	}
	bills := make([]Votable, n)
	for i := range bills {
		bills[i] = Bill{ID: uint32(i)}
	}
	return CountPassed(env, bills)
}
