// Copyright (c) 2026, Ember UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bimap implements a generic bidirectional map, maintaining a
// bijection between a set of keys and a set of values with fast lookup
// in both directions. The zero value is usable without initialization.
package bimap

// Map is a bidirectional map between keys of type K and values of type V.
// Every key maps to exactly one value and vice versa.
type Map[K comparable, V comparable] struct {

	// Forward is the key-to-value mapping.
	Forward map[K]V

	// Reverse is the value-to-key mapping.
	Reverse map[V]K
}

// New returns a new [Map]. The zero value is usable without initialization,
// so this is just a standard convenience method.
func New[K comparable, V comparable]() *Map[K, V] {
	return &Map[K, V]{}
}

func (m *Map[K, V]) init() {
	if m.Forward == nil {
		m.Forward = make(map[K]V)
		m.Reverse = make(map[V]K)
	}
}

// Set adds the given key-value pair. Any previous pairing involving either
// the key or the value is removed first, preserving the bijection.
func (m *Map[K, V]) Set(key K, val V) {
	m.init()
	if old, ok := m.Forward[key]; ok {
		delete(m.Reverse, old)
	}
	if old, ok := m.Reverse[val]; ok {
		delete(m.Forward, old)
	}
	m.Forward[key] = val
	m.Reverse[val] = key
}

// Value returns the value for the given key, if it is present.
func (m *Map[K, V]) Value(key K) (V, bool) {
	v, ok := m.Forward[key]
	return v, ok
}

// Key returns the key for the given value, if it is present.
func (m *Map[K, V]) Key(val V) (K, bool) {
	k, ok := m.Reverse[val]
	return k, ok
}

// HasKey returns whether the given key is present.
func (m *Map[K, V]) HasKey(key K) bool {
	_, ok := m.Forward[key]
	return ok
}

// HasValue returns whether the given value is present.
func (m *Map[K, V]) HasValue(val V) bool {
	_, ok := m.Reverse[val]
	return ok
}

// DeleteKey removes the pairing for the given key, if there is one,
// returning whether a pairing was removed.
func (m *Map[K, V]) DeleteKey(key K) bool {
	v, ok := m.Forward[key]
	if !ok {
		return false
	}
	delete(m.Forward, key)
	delete(m.Reverse, v)
	return true
}

// DeleteValue removes the pairing for the given value, if there is one,
// returning whether a pairing was removed.
func (m *Map[K, V]) DeleteValue(val V) bool {
	k, ok := m.Reverse[val]
	if !ok {
		return false
	}
	delete(m.Forward, k)
	delete(m.Reverse, val)
	return true
}

// Len returns the number of key-value pairs.
func (m *Map[K, V]) Len() int {
	return len(m.Forward)
}

// Reset removes all pairings.
func (m *Map[K, V]) Reset() {
	m.Forward = nil
	m.Reverse = nil
}
