// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package api exposes a Host over JSON-RPC.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/gorilla/rpc/v2"

	cjson "github.com/ava-labs/avalanchego/utils/json"
	log "github.com/inconshreveable/log15"

	"github.com/ava-labs/exercisevm/exercisevm"
)

// Endpoint is the path the service is mounted on.
const Endpoint = "/ext/" + exercisevm.Name

// NewHandler returns a JSON-RPC handler serving [host] as the "exercisevm"
// service.
func NewHandler(host *exercisevm.Host, logger log.Logger) (http.Handler, error) {
	server := rpc.NewServer()
	codec := cjson.NewCodec()
	server.RegisterCodec(codec, "application/json")
	server.RegisterCodec(codec, "application/json;charset=UTF-8")
	return server, server.RegisterService(&Service{host: host, log: logger}, exercisevm.Name)
}

// Service is the API service for this host
type Service struct {
	host *exercisevm.Host
	log  log.Logger
}

// ContractsReply lists what can be deployed and what already is.
type ContractsReply struct {
	Available []ContractInfo                `json:"available"`
	Deployed  []exercisevm.DeployedContract `json:"deployed"`
}

type ContractInfo struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Methods     []MethodInfo `json:"methods"`
}

type MethodInfo struct {
	Name     string `json:"name"`
	ReadOnly bool   `json:"readOnly"`
}

func (s *Service) Contracts(_ *http.Request, _ *struct{}, reply *ContractsReply) error {
	for _, c := range s.host.Registry().Contracts() {
		info := ContractInfo{Name: c.Name, Description: c.Description}
		for _, m := range c.Methods {
			info.Methods = append(info.Methods, MethodInfo{Name: m.Name, ReadOnly: m.ReadOnly})
		}
		reply.Available = append(reply.Available, info)
	}
	deployed, err := s.host.Contracts()
	if err != nil {
		return err
	}
	reply.Deployed = deployed
	return nil
}

type DeployArgs struct {
	Name string `json:"name"`
}

type DeployReply struct {
	ContractID ids.ID `json:"contractID"`
}

func (s *Service) Deploy(r *http.Request, args *DeployArgs, reply *DeployReply) error {
	contractID, err := s.host.Deploy(r.Context(), args.Name)
	if err != nil {
		return err
	}
	reply.ContractID = contractID
	return nil
}

type InvokeArgs struct {
	ContractID ids.ID            `json:"contractID"`
	Method     string            `json:"method"`
	Args       []json.RawMessage `json:"args"`
	Auths      []ids.ShortID     `json:"auths"`
	AllAuths   bool              `json:"allAuths"`
	Simulate   bool              `json:"simulate"`
}

// InvokeReply carries either the result of an invocation or the contract
// error that rolled it back.
type InvokeReply struct {
	Value  interface{}        `json:"value,omitempty"`
	Events []exercisevm.Event `json:"events,omitempty"`
	Ledger exercisevm.Ledger  `json:"ledger"`
	Error  *Error             `json:"error,omitempty"`
}

// Error describes a failed invocation. Code is set for tagged contract
// errors and zero otherwise.
type Error struct {
	Code    uint32 `json:"code"`
	Message string `json:"message"`
	Aborted bool   `json:"aborted"`
}

func (e *Error) Error() string { return e.Message }

// NewError converts a contract failure into its wire form. It returns nil for
// errors raised by the host itself.
func NewError(err error) *Error {
	code, tagged := exercisevm.ErrorCode(err)
	aborted := exercisevm.IsAbort(err)
	if !tagged && !aborted {
		return nil
	}
	return &Error{Code: code, Message: err.Error(), Aborted: aborted}
}

func (s *Service) Invoke(r *http.Request, args *InvokeArgs, reply *InvokeReply) error {
	opts := []exercisevm.CallOption{exercisevm.WithAuths(args.Auths...)}
	if args.AllAuths {
		opts = append(opts, exercisevm.WithAllAuths())
	}
	if args.Simulate {
		opts = append(opts, exercisevm.Simulate())
	}

	res, err := s.host.Invoke(r.Context(), args.ContractID, args.Method, args.Args, opts...)
	if err != nil {
		reply.Error = NewError(err)
		if reply.Error == nil {
			return err
		}
		reply.Ledger = s.host.Ledger()
		s.log.Debug("invocation failed",
			"contractID", args.ContractID,
			"method", args.Method,
			"error", err,
		)
		return nil
	}
	reply.Value = res.Value
	reply.Events = res.Events
	reply.Ledger = res.Ledger
	return nil
}

func (s *Service) Ledger(_ *http.Request, _ *struct{}, reply *exercisevm.Ledger) error {
	*reply = s.host.Ledger()
	return nil
}

type EventsArgs struct {
	Since uint64 `json:"since"`
	Limit int    `json:"limit"`
}

type EventsReply struct {
	Events []exercisevm.Event `json:"events"`
}

func (s *Service) Events(_ *http.Request, args *EventsArgs, reply *EventsReply) error {
	reply.Events = s.host.Events(args.Since, args.Limit)
	return nil
}

type RestoreArgs struct {
	ContractID ids.ID `json:"contractID"`
}

type RestoreReply struct {
	Success bool `json:"success"`
}

// Restore revives an archived contract instance.
func (s *Service) Restore(r *http.Request, args *RestoreArgs, reply *RestoreReply) error {
	if err := s.host.RestoreInstance(r.Context(), args.ContractID); err != nil {
		return err
	}
	reply.Success = true
	return nil
}
