// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package catalog lists every contract the server can deploy.
package catalog

import (
	"github.com/ava-labs/exercisevm/contracts/basics"
	"github.com/ava-labs/exercisevm/contracts/capabilities"
	"github.com/ava-labs/exercisevm/contracts/counter"
	"github.com/ava-labs/exercisevm/contracts/greeter"
	"github.com/ava-labs/exercisevm/contracts/practice"
	"github.com/ava-labs/exercisevm/contracts/results"
	"github.com/ava-labs/exercisevm/contracts/tiers"
	"github.com/ava-labs/exercisevm/exercisevm"
)

// Contracts returns every known contract.
func Contracts() []*exercisevm.Contract {
	return []*exercisevm.Contract{
		basics.Basics,
		counter.Contract,

		practice.Mystery,
		practice.ExtendedCounter,
		practice.LimitedCounter,
		practice.SettableCounter,
		practice.HistoryCounter,
		practice.Voting,
		practice.Reputation,

		capabilities.EducationDonationContract,
		capabilities.HealthDonationContract,
		capabilities.MicroCreditContract,
		capabilities.BillsContract,
		capabilities.BasicTokenContract,

		results.SafeTransfer,
		results.OptionalBalance,
		results.Loans,
		results.AdminGate,
		results.ValidatedDonation,

		tiers.GlobalConfig,
		tiers.UserData,
		tiers.TempCache,
		tiers.DonationPlatform,
		tiers.UserManagement,
		tiers.TTLStrategy,

		greeter.Greeter,
	}
}

// Registry returns a registry holding [Contracts].
func Registry() (*exercisevm.Registry, error) {
	return exercisevm.NewRegistry(Contracts()...)
}
