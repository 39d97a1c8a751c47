// Copyright (c) 2026, Ember UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	"reflect"
	"time"

	"github.com/emberui/ember/math32"
)

// NodeIndex is a stable handle to a node within the [Graph]'s backing
// arena. Indices are assigned consecutively from 0 and are never
// recycled for the lifetime of the graph, even if the corresponding
// widget is not instantiated in a later frame.
type NodeIndex int32

// NoNode is the nil value for [NodeIndex].
const NoNode NodeIndex = -1

// node is one slot in the graph's node arena. A node either caches a
// widget's state or is a placeholder reserving the index for a widget
// that has not been instantiated yet.
type node struct {
	// widget is the cached widget state; nil for placeholders.
	widget *Container

	// parents holds the incoming edge of each kind, or NoEdge.
	parents [NumEdgeKinds]EdgeIndex

	// kids holds the outgoing edges in insertion order.
	kids []EdgeIndex
}

// Container caches a widget's state inside a graph node.
type Container struct {

	// State is the dynamically stored widget state, set during the
	// post-update phase. It is nil for widgets that have not completed
	// an update pass.
	State any

	// StateType identifies the concrete type of State. A widget ID that
	// is reused with a different state type is reported as a programmer
	// error and treated as a fresh instantiation.
	StateType reflect.Type

	// Rect describes the widget's position and dimensions.
	Rect math32.Box2

	// Depth is the depth at which the widget is rendered compared to its
	// siblings. Lower depths sort later in the depth order and therefore
	// render on top. NaN is a fatal precondition violation.
	Depth float32

	// KidArea is the area in which child widgets are placed.
	KidArea KidArea

	// DraggedFrom is where dragging started if the widget is draggable
	// and currently being dragged.
	DraggedFrom *math32.Vector2

	// Floating is non-nil if the widget is a "floating" (pop-up style)
	// widget, rendered after the entire non-floating tree.
	Floating *Floating

	// XScroll is the scroll state along the x axis, non-nil only if that
	// axis is scrollable.
	XScroll *ScrollState

	// YScroll is the scroll state along the y axis, non-nil only if that
	// axis is scrollable.
	YScroll *ScrollState

	// InstantiationOrder is the widget's position within the overall
	// instantiation ordering of the current frame, used to break depth
	// ties deterministically.
	InstantiationOrder int
}

// Scrollable returns whether the widget is scrollable along either axis.
func (c *Container) Scrollable() bool {
	return c.XScroll != nil || c.YScroll != nil
}

// Scroll returns the scroll state for the given axis, or nil if that
// axis is not scrollable.
func (c *Container) Scroll(axis math32.Dims) *ScrollState {
	if axis == math32.X {
		return c.XScroll
	}
	return c.YScroll
}

// scrollBarContains returns whether the given point is over the hit
// rectangle of either axis' scrollbar.
func (c *Container) scrollBarContains(pt math32.Vector2) bool {
	if c.XScroll != nil && c.XScroll.Bar.ContainsPoint(pt) {
		return true
	}
	if c.YScroll != nil && c.YScroll.Bar.ContainsPoint(pt) {
		return true
	}
	return false
}

// WidgetState returns the container's cached state as the given type,
// if there is any and it is of that type.
func WidgetState[T any](c *Container) (T, bool) {
	v, ok := c.State.(T)
	return v, ok
}

// KidArea is the area of a widget upon which its child widgets are placed.
type KidArea struct {

	// Rect is the bounds describing the position and area.
	Rect math32.Box2

	// Pad is the distance between the edge of the area and where child
	// widgets are placed.
	Pad Padding
}

// Inner returns the kid area rectangle shrunk by the padding.
func (k KidArea) Inner() math32.Box2 {
	return math32.Box2{
		Min: k.Rect.Min.Add(math32.Vec2(k.Pad.Left, k.Pad.Top)),
		Max: k.Rect.Max.Sub(math32.Vec2(k.Pad.Right, k.Pad.Bottom)),
	}
}

// Padding is the distance between each edge of an area and its contents.
type Padding struct {
	Left, Right, Top, Bottom float32
}

// PaddingAll returns a [Padding] with the same distance on every edge.
func PaddingAll(p float32) Padding {
	return Padding{Left: p, Right: p, Top: p, Bottom: p}
}

// Floating is the state necessary for floating (pop-up style) widgets.
type Floating struct {

	// LastClicked is the time the widget was last clicked, used for
	// depth sorting among floating widgets: the most recently clicked
	// floating widget renders on top of the others.
	LastClicked time.Time
}

// ScrollState is the per-axis scroll state of a scrollable widget.
type ScrollState struct {

	// Offset is the current scroll position along the axis.
	Offset float32

	// Max is the maximum possible offset along the axis.
	Max float32

	// Bar is the hit rectangle of the scrollbar itself, used for
	// picking. Scrollbars render above their own widget's children.
	Bar math32.Box2
}

// NodeSet is a set of node indices. It tracks which widgets were
// instantiated during a frame.
type NodeSet map[NodeIndex]struct{}

// NewNodeSet returns a new [NodeSet] containing the given indices.
func NewNodeSet(idxs ...NodeIndex) NodeSet {
	s := make(NodeSet, len(idxs))
	for _, idx := range idxs {
		s.Add(idx)
	}
	return s
}

// Add adds the given index to the set.
func (s NodeSet) Add(idx NodeIndex) { s[idx] = struct{}{} }

// Has returns whether the set contains the given index.
func (s NodeSet) Has(idx NodeIndex) bool {
	_, ok := s[idx]
	return ok
}
