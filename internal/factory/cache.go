// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package factory

import (
	"sync"

	"github.com/apex/log"
)

// Builder constructs a brand new instance for key. It decides which of the
// caller's arguments reach the real constructor; the key is passed so it can
// tell the omitted, null and value cases apart.
type Builder[K comparable, T any] func(key Key[K]) (T, error)

// slot is the map key. The default slot can never collide with a caller key.
type slot[K comparable] struct {
	def bool
	key K
}

// Cache memoizes instances of one participating type. Entries are never
// evicted.
type Cache[K comparable, T any] struct {
	name string

	mu      sync.Mutex
	entries map[slot[K]]T
}

// New returns an empty cache. name is only used for logging.
func New[K comparable, T any](name string) *Cache[K, T] {
	return &Cache[K, T]{
		name:    name,
		entries: make(map[slot[K]]T),
	}
}

// Get returns the instance for key, calling build on a miss.
//
// A Null key always builds and never stores. An Omitted key maps to the
// default slot. A value key returns whatever is cached for it, ignoring build
// entirely on a hit. A failed build stores nothing, and a build that returns
// a nil instance counts as failed with ErrNilInstance.
//
// build runs with the cache locked and must not call Get on the same cache.
func (c *Cache[K, T]) Get(key Key[K], build Builder[K, T]) (T, error) {
	logger := log.WithFields(log.Fields{"type": c.name, "key": key.String()})

	if key.Kind() == KindNull {
		logger.Debug("uncached construction")
		v, err := build(key)
		if err == nil {
			err = stamp(v, c)
		}
		if err != nil {
			var zero T
			return zero, err
		}
		return v, nil
	}

	s := toSlot(key)

	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.entries[s]; ok {
		logger.Debug("cache hit")
		return v, nil
	}

	logger.Debug("cache miss")
	v, err := build(key)
	if err == nil {
		err = stamp(v, c)
	}
	if err != nil {
		var zero T
		return zero, err
	}
	c.entries[s] = v

	return v, nil
}

// Cached reports whether an instance is stored for key. Null keys are never
// cached.
func (c *Cache[K, T]) Cached(key Key[K]) bool {
	if key.Kind() == KindNull {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[toSlot(key)]
	return ok
}

// Len returns the number of stored instances.
func (c *Cache[K, T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Reset drops every entry. Meant for tests.
func (c *Cache[K, T]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[slot[K]]T)
}

func toSlot[K comparable](key Key[K]) slot[K] {
	if v, ok := key.Value(); ok {
		return slot[K]{key: v}
	}
	return slot[K]{def: true}
}
