// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package exercisevm

import (
	"errors"
	"fmt"
	"sort"
)

var errDuplicateContract = errors.New("duplicate contract")

// Registry maps contract names to their implementations. The host resolves
// deployed contracts through it.
type Registry struct {
	contracts map[string]*Contract
}

func NewRegistry(contracts ...*Contract) (*Registry, error) {
	r := &Registry{contracts: make(map[string]*Contract, len(contracts))}
	for _, c := range contracts {
		if err := r.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) Register(c *Contract) error {
	if err := c.Verify(); err != nil {
		return err
	}
	if _, ok := r.contracts[c.Name]; ok {
		return fmt.Errorf("%w: %s", errDuplicateContract, c.Name)
	}
	r.contracts[c.Name] = c
	return nil
}

func (r *Registry) Lookup(name string) (*Contract, bool) {
	c, ok := r.contracts[name]
	return c, ok
}

// Contracts returns every registered contract sorted by name.
func (r *Registry) Contracts() []*Contract {
	out := make([]*Contract, 0, len(r.contracts))
	for _, c := range r.contracts {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *Registry) Names() []string {
	contracts := r.Contracts()
	names := make([]string, len(contracts))
	for i, c := range contracts {
		names[i] = c.Name
	}
	return names
}
