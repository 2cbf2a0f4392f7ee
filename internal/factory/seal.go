// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package factory

import (
	"errors"
	"reflect"
)

var (
	// ErrIllegalConstruction is returned by Seal.CheckFrom for any value that
	// was not produced by the owning Cache.
	ErrIllegalConstruction = errors.New("cannot directly instantiate new object, you have to use the factory for that")

	// ErrNilInstance is returned by Cache.Get when a Builder reports success
	// but hands back nil.
	ErrNilInstance = errors.New("builder returned a nil instance")
)

// Seal is embedded by participating types. Only Cache.Get can stamp it, and
// the stamp records which cache did so and where the value lives. A value
// made with a struct literal or new(), built by some other cache, or copied
// out of a stamped value fails every CheckFrom.
type Seal struct {
	owner any
	self  *Seal
}

// CheckFrom must be the first call in every exported method of the embedding
// type, passing the cache that type is built through.
func (s *Seal) CheckFrom(owner any) error {
	if s == nil || s.self != s || owner == nil || s.owner != owner {
		return ErrIllegalConstruction
	}
	return nil
}

func (s *Seal) seal(owner any) {
	s.owner = owner
	s.self = s
}

type sealer interface {
	seal(owner any)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

func stamp(v any, owner any) error {
	if isNil(v) {
		return ErrNilInstance
	}
	if s, ok := v.(sealer); ok {
		s.seal(owner)
	}
	return nil
}
