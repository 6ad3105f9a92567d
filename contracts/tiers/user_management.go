// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tiers

import (
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/exercisevm/exercisevm"
)

var UserManagement = &exercisevm.Contract{
	Name:        "user_management",
	Description: "create and delete every persistent entry of a user",
	Methods: []exercisevm.Method{
		{Name: "create_user", Call: exercisevm.Action3(CreateUser)},
		{Name: "delete_user", Call: exercisevm.Action1(DeleteUser)},
		{Name: "user_exists", ReadOnly: true, Call: exercisevm.Func1(UserExists)},
		{Name: "get_balance", ReadOnly: true, Call: exercisevm.Func1(GetUserBalance)},
	},
}

func totalDonatedKey(user ids.ShortID) exercisevm.Key {
	return exercisevm.NewKey("TotalDonated").Address(user)
}

func lastDonationKey(user ids.ShortID) exercisevm.Key {
	return exercisevm.NewKey("LastDonation").Address(user)
}

func profileKey(user ids.ShortID) exercisevm.Key {
	return exercisevm.NewKey("Profile").Address(user)
}

func CreateUser(env *exercisevm.Env, user ids.ShortID, balance, totalDonated uint64) error {
	if err := requireAuth(env, user); err != nil {
		return err
	}
	if err := setPersistent(env, userBalanceKey(user), balance); err != nil {
		return err
	}
	if err := setPersistent(env, totalDonatedKey(user), totalDonated); err != nil {
		return err
	}
	env.Events().Publish("user_created", user)
	return nil
}

// DeleteUser removes every entry of [user]. It fails with ErrUserNotFound if
// the user has no balance entry.
func DeleteUser(env *exercisevm.Env, user ids.ShortID) error {
	if err := requireAuth(env, user); err != nil {
		return err
	}
	exists, err := UserExists(env, user)
	if err != nil {
		return err
	}
	if !exists {
		return ErrUserNotFound
	}
	persistent := env.Storage().Persistent()
	for _, key := range []exercisevm.Key{
		userBalanceKey(user),
		lastDonationKey(user),
		totalDonatedKey(user),
		profileKey(user),
	} {
		if err := persistent.Remove(key); err != nil {
			return err
		}
	}
	env.Events().Publish("user_deleted", user)
	return nil
}
