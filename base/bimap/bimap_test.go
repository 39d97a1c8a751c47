// Copyright (c) 2026, Ember UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bimap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBimap(t *testing.T) {
	var m Map[string, int]
	m.Set("a", 1)
	m.Set("b", 2)

	v, ok := m.Value("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	k, ok := m.Key(2)
	assert.True(t, ok)
	assert.Equal(t, "b", k)

	_, ok = m.Value("c")
	assert.False(t, ok)
	assert.Equal(t, 2, m.Len())
}

func TestBimapBijection(t *testing.T) {
	var m Map[string, int]
	m.Set("a", 1)
	m.Set("b", 1) // evicts a -> 1

	assert.False(t, m.HasKey("a"))
	k, _ := m.Key(1)
	assert.Equal(t, "b", k)
	assert.Equal(t, 1, m.Len())

	m.Set("b", 2) // re-pairs b
	assert.False(t, m.HasValue(1))
	assert.Equal(t, 1, m.Len())
}

func TestBimapDelete(t *testing.T) {
	var m Map[string, int]
	m.Set("a", 1)
	m.Set("b", 2)

	assert.True(t, m.DeleteKey("a"))
	assert.False(t, m.DeleteKey("a"))
	assert.False(t, m.HasValue(1))

	assert.True(t, m.DeleteValue(2))
	assert.Equal(t, 0, m.Len())

	m.Set("c", 3)
	m.Reset()
	assert.Equal(t, 0, m.Len())
}
