// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package results

import (
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/exercisevm/exercisevm"
)

var AdminGate = &exercisevm.Contract{
	Name:        "admin_gate",
	Description: "turns a missing admin into a tagged error",
	Methods: []exercisevm.Method{
		{Name: "initialize", Call: exercisevm.Action1(Initialize)},
		{Name: "get_admin", ReadOnly: true, Call: exercisevm.NoArgs(GetAdmin)},
		{Name: "use_admin", Call: exercisevm.Action(UseAdmin)},
		{Name: "set_admin", Call: exercisevm.Action1(SetAdmin)},
	},
}

// UseAdmin succeeds only when the admin signed the invocation.
func UseAdmin(env *exercisevm.Env) error {
	admin, err := GetAdmin(env)
	if err != nil {
		return err
	}
	return env.RequireAuth(admin)
}

// SetAdmin sets the first admin freely. Replacing an admin needs the
// current admin's signature.
func SetAdmin(env *exercisevm.Env, admin ids.ShortID) error {
	has, err := env.Storage().Instance().Has(adminKey)
	if err != nil {
		return err
	}
	if has {
		if err := requireAdmin(env); err != nil {
			return err
		}
	}
	if err := setInstance(env, adminKey, admin); err != nil {
		return err
	}
	env.Events().Publish("admin_set", admin)
	return nil
}
