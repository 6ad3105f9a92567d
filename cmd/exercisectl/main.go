// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// exercisectl talks to a running exercisevm server.
package main

import (
	"context"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/ava-labs/exercisevm/client"
)

var endpoint string

var rootCmd = &cobra.Command{
	Use:           "exercisectl",
	Short:         "Deploy and invoke exercise contracts",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "http://127.0.0.1:9650", "Server URI")
	rootCmd.AddCommand(
		contractsCmd,
		deployCmd,
		invokeCmd,
		ledgerCmd,
		eventsCmd,
		restoreCmd,
	)
}

func newClient() client.Client {
	return client.New(endpoint)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}
