// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package exercisevm

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/ava-labs/avalanchego/ids"

	cjson "github.com/ava-labs/avalanchego/utils/json"
)

var (
	errNoName          = errors.New("missing name")
	errDuplicateMethod = errors.New("duplicate method")
)

// Contract is a named set of entry points. A deployed instance of a
// contract owns its own storage.
type Contract struct {
	Name        string
	Description string
	Methods     []Method
}

// Method is one entry point. ReadOnly methods never commit.
type Method struct {
	Name     string
	ReadOnly bool
	Call     func(env *Env, args Args) (interface{}, error)
}

func (c *Contract) Method(name string) (Method, bool) {
	for _, m := range c.Methods {
		if m.Name == name {
			return m, true
		}
	}
	return Method{}, false
}

func (c *Contract) Verify() error {
	if c.Name == "" {
		return errNoName
	}
	seen := make(map[string]struct{}, len(c.Methods))
	for _, m := range c.Methods {
		if m.Name == "" || m.Call == nil {
			return fmt.Errorf("%s: %w", c.Name, errNoName)
		}
		if _, ok := seen[m.Name]; ok {
			return fmt.Errorf("%s: %w %q", c.Name, errDuplicateMethod, m.Name)
		}
		seen[m.Name] = struct{}{}
	}
	return nil
}

// NoArgs adapts an entry point without arguments to a Method.Call.
func NoArgs[T any](fn func(*Env) (T, error)) func(*Env, Args) (interface{}, error) {
	return func(env *Env, args Args) (interface{}, error) {
		if err := args.Expect(0); err != nil {
			return nil, err
		}
		return fn(env)
	}
}

// Action adapts an entry point that only returns an error.
func Action(fn func(*Env) error) func(*Env, Args) (interface{}, error) {
	return func(env *Env, args Args) (interface{}, error) {
		if err := args.Expect(0); err != nil {
			return nil, err
		}
		return nil, fn(env)
	}
}

// Func1 adapts a one-argument entry point to a Method.Call.
func Func1[A, R any](fn func(*Env, A) (R, error)) func(*Env, Args) (interface{}, error) {
	return func(env *Env, args Args) (interface{}, error) {
		if err := args.Expect(1); err != nil {
			return nil, err
		}
		a, err := Arg[A](args, 0)
		if err != nil {
			return nil, err
		}
		return fn(env, a)
	}
}

func Func2[A, B, R any](fn func(*Env, A, B) (R, error)) func(*Env, Args) (interface{}, error) {
	return func(env *Env, args Args) (interface{}, error) {
		if err := args.Expect(2); err != nil {
			return nil, err
		}
		a, err := Arg[A](args, 0)
		if err != nil {
			return nil, err
		}
		b, err := Arg[B](args, 1)
		if err != nil {
			return nil, err
		}
		return fn(env, a, b)
	}
}

func Func3[A, B, C, R any](fn func(*Env, A, B, C) (R, error)) func(*Env, Args) (interface{}, error) {
	return func(env *Env, args Args) (interface{}, error) {
		if err := args.Expect(3); err != nil {
			return nil, err
		}
		a, err := Arg[A](args, 0)
		if err != nil {
			return nil, err
		}
		b, err := Arg[B](args, 1)
		if err != nil {
			return nil, err
		}
		c, err := Arg[C](args, 2)
		if err != nil {
			return nil, err
		}
		return fn(env, a, b, c)
	}
}

// Action1 adapts a one-argument entry point that only returns an error.
func Action1[A any](fn func(*Env, A) error) func(*Env, Args) (interface{}, error) {
	return Func1(func(env *Env, a A) (interface{}, error) {
		return nil, fn(env, a)
	})
}

func Action2[A, B any](fn func(*Env, A, B) error) func(*Env, Args) (interface{}, error) {
	return Func2(func(env *Env, a A, b B) (interface{}, error) {
		return nil, fn(env, a, b)
	})
}

func Action3[A, B, C any](fn func(*Env, A, B, C) error) func(*Env, Args) (interface{}, error) {
	return Func3(func(env *Env, a A, b B, c C) (interface{}, error) {
		return nil, fn(env, a, b, c)
	})
}

// Arg decodes argument [i] as a T. Numbers go through the typed accessors so
// they may be quoted; anything with a Verify method is verified.
func Arg[T any](a Args, i int) (T, error) {
	var v T
	var err error
	switch p := interface{}(&v).(type) {
	case *uint8:
		*p, err = a.Uint8(i)
	case *uint32:
		*p, err = a.Uint32(i)
	case *uint64:
		*p, err = a.Uint64(i)
	case *Symbol:
		*p, err = a.Symbol(i)
	case *[]uint32:
		*p, err = a.Uint32s(i)
	default:
		err = a.decode(i, &v)
		if verifiable, ok := interface{}(v).(interface{ Verify() error }); err == nil && ok {
			if verr := verifiable.Verify(); verr != nil {
				err = fmt.Errorf("%w: argument %d: %v", ErrInvalidArgs, i, verr)
			}
		}
	}
	if err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// Args are the positional JSON arguments of a dynamic invocation.
type Args []json.RawMessage

// Expect fails unless exactly [n] arguments were given.
func (a Args) Expect(n int) error {
	if len(a) != n {
		return fmt.Errorf("%w: expected %d arguments, got %d", ErrInvalidArgs, n, len(a))
	}
	return nil
}

func (a Args) decode(i int, dst interface{}) error {
	if i >= len(a) {
		return fmt.Errorf("%w: missing argument %d", ErrInvalidArgs, i)
	}
	if err := json.Unmarshal(a[i], dst); err != nil {
		return fmt.Errorf("%w: argument %d: %v", ErrInvalidArgs, i, err)
	}
	return nil
}

func (a Args) Address(i int) (ids.ShortID, error) {
	var addr ids.ShortID
	err := a.decode(i, &addr)
	return addr, err
}

func (a Args) Symbol(i int) (Symbol, error) {
	var s Symbol
	if err := a.decode(i, &s); err != nil {
		return "", err
	}
	if err := s.Verify(); err != nil {
		return "", fmt.Errorf("%w: argument %d: %v", ErrInvalidArgs, i, err)
	}
	return s, nil
}

func (a Args) String(i int) (string, error) {
	var s string
	err := a.decode(i, &s)
	return s, err
}

func (a Args) Uint8(i int) (uint8, error) {
	v, err := a.Uint32(i)
	if err != nil {
		return 0, err
	}
	if v > math.MaxUint8 {
		return 0, fmt.Errorf("%w: argument %d: %d overflows uint8", ErrInvalidArgs, i, v)
	}
	return uint8(v), nil
}

func (a Args) Uint32(i int) (uint32, error) {
	var v cjson.Uint32
	err := a.decode(i, &v)
	return uint32(v), err
}

func (a Args) Uint64(i int) (uint64, error) {
	var v cjson.Uint64
	err := a.decode(i, &v)
	return uint64(v), err
}

func (a Args) Int64(i int) (int64, error) {
	var v int64
	err := a.decode(i, &v)
	return v, err
}

func (a Args) Uint32s(i int) ([]uint32, error) {
	var vs []cjson.Uint32
	if err := a.decode(i, &vs); err != nil {
		return nil, err
	}
	out := make([]uint32, len(vs))
	for j, v := range vs {
		out[j] = uint32(v)
	}
	return out, nil
}
