// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/exercisevm/exercisevm/hosttest"
)

func TestRegistry(t *testing.T) {
	require := require.New(t)

	registry, err := Registry()
	require.NoError(err)
	require.Len(registry.Contracts(), len(Contracts()))

	for _, name := range []string{"basics", "counter", "reputation", "basic_token", "admin_gate", "temp_cache", "greeter"} {
		_, ok := registry.Lookup(name)
		require.True(ok, name)
	}
}

func TestDeployEverything(t *testing.T) {
	require := require.New(t)
	h := hosttest.New(t, Contracts()...)
	registry := h.Host.Registry()

	for _, c := range Contracts() {
		h.Deploy(c.Name)
	}

	deployed, err := h.Host.Contracts()
	require.NoError(err)
	names := make([]string, 0, len(deployed))
	for _, c := range deployed {
		names = append(names, c.Name)
	}
	require.ElementsMatch(registry.Names(), names)
}
