// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package factory

import "fmt"

// Kind tells the three flavors of Key apart.
type Kind int

const (
	// KindOmitted is the zero Kind, so the zero Key means "no key supplied".
	KindOmitted Kind = iota
	KindNull
	KindValue
)

func (k Kind) String() string {
	switch k {
	case KindOmitted:
		return "omitted"
	case KindNull:
		return "null"
	case KindValue:
		return "value"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Key is the cache key handed to Cache.Get. It is one of Omitted, Null or
// Of(value).
type Key[K comparable] struct {
	kind  Kind
	value K
}

// Omitted is the key used when the caller did not supply one. All omitted-key
// lookups share the single default slot of a Cache.
func Omitted[K comparable]() Key[K] {
	return Key[K]{kind: KindOmitted}
}

// Null is the explicit no-cache key. Lookups with it always build.
func Null[K comparable]() Key[K] {
	return Key[K]{kind: KindNull}
}

// Of wraps a caller-supplied key value.
func Of[K comparable](v K) Key[K] {
	return Key[K]{kind: KindValue, value: v}
}

func (k Key[K]) Kind() Kind {
	return k.kind
}

// Value returns the wrapped value and true only for KindValue keys.
func (k Key[K]) Value() (K, bool) {
	if k.kind != KindValue {
		var zero K
		return zero, false
	}
	return k.value, true
}

func (k Key[K]) String() string {
	if k.kind == KindValue {
		return fmt.Sprintf("%v", k.value)
	}
	return "<" + k.kind.String() + ">"
}
