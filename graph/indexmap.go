// Copyright (c) 2026, Ember UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import "github.com/emberui/ember/base/bimap"

// WidgetID is the stable user-facing identifier for a widget, valid
// across frames. IDs are allocated by [Updater.NewID] and are never
// reused. The graph's [IndexMap] translates them to [NodeIndex] handles.
type WidgetID int64

// NoWidget is the nil value for [WidgetID].
const NoWidget WidgetID = -1

// IndexMap maintains the bijection between user-facing [WidgetID]s and
// the [NodeIndex] arena handles used internally by the [Graph]. The zero
// value is usable without initialization.
type IndexMap struct {
	m bimap.Map[WidgetID, NodeIndex]
}

// Insert adds the given pairing, replacing any previous pairing for
// either the ID or the index.
func (im *IndexMap) Insert(id WidgetID, idx NodeIndex) {
	im.m.Set(id, idx)
}

// NodeIndex returns the node index paired with the given widget ID,
// if there is one.
func (im *IndexMap) NodeIndex(id WidgetID) (NodeIndex, bool) {
	idx, ok := im.m.Value(id)
	if !ok {
		return NoNode, false
	}
	return idx, true
}

// WidgetID returns the widget ID paired with the given node index,
// if there is one.
func (im *IndexMap) WidgetID(idx NodeIndex) (WidgetID, bool) {
	id, ok := im.m.Key(idx)
	if !ok {
		return NoWidget, false
	}
	return id, true
}

// Len returns the number of pairings.
func (im *IndexMap) Len() int {
	return im.m.Len()
}

// Reset removes all pairings.
func (im *IndexMap) Reset() {
	im.m.Reset()
}

// Generator hands out fresh widget identifiers. Identifiers are never
// reused. The zero value is ready to use.
type Generator struct {
	next WidgetID
}

// Next reserves and returns a new widget identifier.
func (gn *Generator) Next() WidgetID {
	id := gn.next
	gn.next++
	return id
}

// NextList reserves and returns n new widget identifiers, for widgets
// that need a batch of stable identifiers up front.
func (gn *Generator) NextList(n int) []WidgetID {
	ids := make([]WidgetID, n)
	for i := range ids {
		ids[i] = gn.Next()
	}
	return ids
}
