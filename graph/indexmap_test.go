// Copyright (c) 2026, Ember UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndexMap(t *testing.T) {
	var im IndexMap
	im.Insert(10, 0)
	im.Insert(11, 1)

	idx, ok := im.NodeIndex(10)
	assert.True(t, ok)
	assert.Equal(t, NodeIndex(0), idx)

	id, ok := im.WidgetID(1)
	assert.True(t, ok)
	assert.Equal(t, WidgetID(11), id)

	idx, ok = im.NodeIndex(99)
	assert.False(t, ok)
	assert.Equal(t, NoNode, idx)
	id, ok = im.WidgetID(99)
	assert.False(t, ok)
	assert.Equal(t, NoWidget, id)

	assert.Equal(t, 2, im.Len())
	im.Reset()
	assert.Equal(t, 0, im.Len())
}

func TestGenerator(t *testing.T) {
	var gn Generator
	a := gn.Next()
	b := gn.Next()
	assert.NotEqual(t, a, b)
	assert.Equal(t, a+1, b)

	ids := gn.NextList(3)
	assert.Len(t, ids, 3)
	assert.Equal(t, b+1, ids[0])
	assert.Equal(t, b+3, ids[2])

	u := NewUpdater()
	assert.NotEqual(t, u.NewID(), u.NewID())
	assert.Len(t, u.NewIDList(4), 4)
}
