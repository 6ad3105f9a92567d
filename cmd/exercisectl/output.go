// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"encoding/json"
	"strconv"

	"github.com/pterm/pterm"

	"github.com/ava-labs/exercisevm/exercisevm"
)

func printEvents(events []exercisevm.Event) error {
	if len(events) == 0 {
		return nil
	}
	data := pterm.TableData{{"Index", "Ledger", "Contract", "Topic", "Data"}}
	for _, e := range events {
		payload, err := json.Marshal(e.Data)
		if err != nil {
			return err
		}
		data = append(data, []string{
			strconv.FormatUint(e.Index, 10),
			strconv.FormatUint(uint64(e.Ledger), 10),
			e.ContractID.String(),
			string(e.Topic),
			string(payload),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
