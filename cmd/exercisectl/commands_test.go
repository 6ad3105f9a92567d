// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"encoding/json"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	require := require.New(t)

	args := parseArgs([]string{"42", `"quoted"`, "Ana", "[1,2]"})
	require.Equal([]interface{}{
		json.RawMessage("42"),
		json.RawMessage(`"quoted"`),
		"Ana",
		json.RawMessage("[1,2]"),
	}, args)
}

func TestInvokeOptions(t *testing.T) {
	require := require.New(t)
	defer func() { invokeAuths = nil }()

	invokeAuths = []string{ids.GenerateTestShortID().String()}
	opts, err := invokeOptions()
	require.NoError(err)
	require.Len(opts, 1)

	invokeAuths = []string{"not-an-address"}
	_, err = invokeOptions()
	require.Error(err)
}
