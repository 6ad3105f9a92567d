// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/rpc"

	"github.com/ava-labs/exercisevm/api"
	"github.com/ava-labs/exercisevm/exercisevm"
)

// Client defines exercisevm client operations.
type Client interface {
	// Contracts lists the registry and the deployed instances
	Contracts(ctx context.Context) (*api.ContractsReply, error)

	// Deploy creates a new instance of the named contract
	Deploy(ctx context.Context, name string) (ids.ID, error)

	// Invoke calls a method. A failed invocation is returned as *api.Error.
	Invoke(ctx context.Context, contractID ids.ID, method string, args []interface{}, opts ...Option) (*api.InvokeReply, error)

	Ledger(ctx context.Context) (exercisevm.Ledger, error)

	// Events returns committed events starting at [since]
	Events(ctx context.Context, since uint64, limit int) ([]exercisevm.Event, error)

	// Restore revives an archived instance
	Restore(ctx context.Context, contractID ids.ID) error
}

// Option adjusts an invocation.
type Option func(*api.InvokeArgs)

func WithAuths(addrs ...ids.ShortID) Option {
	return func(a *api.InvokeArgs) { a.Auths = append(a.Auths, addrs...) }
}

func WithAllAuths() Option {
	return func(a *api.InvokeArgs) { a.AllAuths = true }
}

func Simulate() Option {
	return func(a *api.InvokeArgs) { a.Simulate = true }
}

// New creates a new client object for the service at [uri].
func New(uri string) Client {
	req := rpc.NewEndpointRequester(uri + api.Endpoint)
	return &client{req: req}
}

type client struct {
	req rpc.EndpointRequester
}

func (cli *client) Contracts(ctx context.Context) (*api.ContractsReply, error) {
	resp := new(api.ContractsReply)
	err := cli.req.SendRequest(ctx,
		"exercisevm.contracts",
		&struct{}{},
		resp,
	)
	return resp, err
}

func (cli *client) Deploy(ctx context.Context, name string) (ids.ID, error) {
	resp := new(api.DeployReply)
	err := cli.req.SendRequest(ctx,
		"exercisevm.deploy",
		&api.DeployArgs{Name: name},
		resp,
	)
	return resp.ContractID, err
}

func (cli *client) Invoke(ctx context.Context, contractID ids.ID, method string, args []interface{}, opts ...Option) (*api.InvokeReply, error) {
	params := &api.InvokeArgs{
		ContractID: contractID,
		Method:     method,
		Args:       make([]json.RawMessage, len(args)),
	}
	for i, arg := range args {
		if raw, ok := arg.(json.RawMessage); ok {
			params.Args[i] = raw
			continue
		}
		b, err := json.Marshal(arg)
		if err != nil {
			return nil, fmt.Errorf("couldn't encode argument %d: %w", i, err)
		}
		params.Args[i] = b
	}
	for _, opt := range opts {
		opt(params)
	}

	resp := new(api.InvokeReply)
	if err := cli.req.SendRequest(ctx, "exercisevm.invoke", params, resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return resp, resp.Error
	}
	return resp, nil
}

func (cli *client) Ledger(ctx context.Context) (exercisevm.Ledger, error) {
	var resp exercisevm.Ledger
	err := cli.req.SendRequest(ctx,
		"exercisevm.ledger",
		&struct{}{},
		&resp,
	)
	return resp, err
}

func (cli *client) Events(ctx context.Context, since uint64, limit int) ([]exercisevm.Event, error) {
	resp := new(api.EventsReply)
	err := cli.req.SendRequest(ctx,
		"exercisevm.events",
		&api.EventsArgs{Since: since, Limit: limit},
		resp,
	)
	return resp.Events, err
}

func (cli *client) Restore(ctx context.Context, contractID ids.ID) error {
	return cli.req.SendRequest(ctx,
		"exercisevm.restore",
		&api.RestoreArgs{ContractID: contractID},
		new(api.RestoreReply),
	)
}
