// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/ava-labs/exercisevm/api"
	"github.com/ava-labs/exercisevm/client"
)

var (
	invokeAuths    []string
	invokeAllAuths bool
	invokeSimulate bool

	eventsSince uint64
	eventsLimit int
)

var contractsCmd = &cobra.Command{
	Use:   "contracts",
	Short: "List deployable and deployed contracts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		reply, err := newClient().Contracts(cmd.Context())
		if err != nil {
			return err
		}
		available := pterm.TableData{{"Name", "Methods", "Description"}}
		for _, c := range reply.Available {
			methods := make([]string, len(c.Methods))
			for i, m := range c.Methods {
				methods[i] = m.Name
			}
			available = append(available, []string{c.Name, strings.Join(methods, ", "), c.Description})
		}
		pterm.DefaultSection.Println("Available")
		if err := pterm.DefaultTable.WithHasHeader().WithData(available).Render(); err != nil {
			return err
		}

		deployed := pterm.TableData{{"Contract ID", "Name", "Ledger"}}
		for _, c := range reply.Deployed {
			deployed = append(deployed, []string{c.ContractID.String(), c.Name, strconv.FormatUint(uint64(c.Deployed), 10)})
		}
		pterm.DefaultSection.Println("Deployed")
		return pterm.DefaultTable.WithHasHeader().WithData(deployed).Render()
	},
}

var deployCmd = &cobra.Command{
	Use:   "deploy <name>",
	Short: "Deploy a new contract instance",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		contractID, err := newClient().Deploy(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		pterm.Success.Printfln("deployed %s as %s", args[0], contractID)
		return nil
	},
}

var invokeCmd = &cobra.Command{
	Use:   "invoke <contractID> <method> [json-args...]",
	Short: "Invoke a contract method",
	Long:  "Invoke a contract method. Arguments that are not valid JSON are sent as strings.",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		contractID, err := ids.FromString(args[0])
		if err != nil {
			return fmt.Errorf("invalid contract ID: %w", err)
		}
		opts, err := invokeOptions()
		if err != nil {
			return err
		}

		reply, err := newClient().Invoke(cmd.Context(), contractID, args[1], parseArgs(args[2:]), opts...)
		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			kind := "error"
			if apiErr.Aborted {
				kind = "aborted"
			}
			return fmt.Errorf("%s (code %d): %s", kind, apiErr.Code, apiErr.Message)
		}
		if err != nil {
			return err
		}

		value, err := json.Marshal(reply.Value)
		if err != nil {
			return err
		}
		pterm.Success.Printfln("ledger %d: %s", reply.Ledger.Sequence, value)
		return printEvents(reply.Events)
	},
}

func invokeOptions() ([]client.Option, error) {
	var opts []client.Option
	for _, s := range invokeAuths {
		addr, err := ids.ShortFromString(s)
		if err != nil {
			return nil, fmt.Errorf("invalid address %q: %w", s, err)
		}
		opts = append(opts, client.WithAuths(addr))
	}
	if invokeAllAuths {
		opts = append(opts, client.WithAllAuths())
	}
	if invokeSimulate {
		opts = append(opts, client.Simulate())
	}
	return opts, nil
}

func parseArgs(args []string) []interface{} {
	out := make([]interface{}, len(args))
	for i, arg := range args {
		if json.Valid([]byte(arg)) {
			out[i] = json.RawMessage(arg)
		} else {
			out[i] = arg
		}
	}
	return out
}

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Show the current ledger",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ledger, err := newClient().Ledger(cmd.Context())
		if err != nil {
			return err
		}
		pterm.Info.Printfln("sequence %d, timestamp %d", ledger.Sequence, ledger.Timestamp)
		return nil
	},
}

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List committed events",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		events, err := newClient().Events(cmd.Context(), eventsSince, eventsLimit)
		if err != nil {
			return err
		}
		return printEvents(events)
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore <contractID>",
	Short: "Restore an archived contract instance",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		contractID, err := ids.FromString(args[0])
		if err != nil {
			return fmt.Errorf("invalid contract ID: %w", err)
		}
		if err := newClient().Restore(cmd.Context(), contractID); err != nil {
			return err
		}
		pterm.Success.Printfln("restored %s", contractID)
		return nil
	},
}

func init() {
	invokeCmd.Flags().StringSliceVar(&invokeAuths, "auth", nil, "Address that signs the invocation (repeatable)")
	invokeCmd.Flags().BoolVar(&invokeAllAuths, "all-auths", false, "Treat every address as having signed")
	invokeCmd.Flags().BoolVar(&invokeSimulate, "simulate", false, "Run without committing")

	eventsCmd.Flags().Uint64Var(&eventsSince, "since", 0, "First event index to return")
	eventsCmd.Flags().IntVar(&eventsLimit, "limit", 0, "Maximum number of events, 0 for all")
}
