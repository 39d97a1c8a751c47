// Copyright (c) 2026, Ember UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/emberui/ember/base/errors"
	"github.com/emberui/ember/math32"
)

// PreUpdate carries everything known about a widget before its update
// logic runs: its identity, relationships, and geometry. It is cached
// into the graph at the start of the widget's instantiation so that
// logic for later-instantiated widgets can already query it.
type PreUpdate struct {

	// ID is the widget's stable identifier.
	ID WidgetID

	// Parent is the widget's depth (rendering) parent. NoWidget means
	// the widget is parented under the root.
	Parent WidgetID

	// XPositionRelativeTo is the widget the x coordinate is positioned
	// relative to, or NoWidget.
	XPositionRelativeTo WidgetID

	// YPositionRelativeTo is the widget the y coordinate is positioned
	// relative to, or NoWidget.
	YPositionRelativeTo WidgetID

	// GraphicParent is the widget this widget graphically decorates,
	// or NoWidget.
	GraphicParent WidgetID

	// StateType is the concrete type of the state that will be stored
	// by the matching [PostUpdate].
	StateType reflect.Type

	// Rect is the widget's position and dimensions.
	Rect math32.Box2

	// Depth is the widget's depth relative to its siblings. Lower
	// depths render on top.
	Depth float32

	// KidArea is the area in which the widget places its children.
	KidArea KidArea

	// DraggedFrom is where dragging started if the widget is currently
	// being dragged.
	DraggedFrom *math32.Vector2

	// Floating is non-nil for floating (pop-up style) widgets.
	Floating *Floating

	// XScroll and YScroll carry per-axis scroll state for scrollable
	// widgets.
	XScroll *ScrollState
	YScroll *ScrollState
}

// PostUpdate carries the state produced by a widget's update logic,
// cached into the graph once the widget finishes instantiating.
type PostUpdate struct {

	// ID is the widget's stable identifier.
	ID WidgetID

	// State is the widget's new state. Its concrete type must match the
	// StateType declared by the preceding [PreUpdate].
	State any
}

// Updater owns a [Graph] and a [DepthOrder] and drives the per-frame
// update cycle: [Updater.Begin], then an interleaved sequence of
// [Updater.PreUpdateCache] and [Updater.PostUpdateCache] calls as
// widgets instantiate (children nested within their parent's two
// phases), then [Updater.End].
type Updater struct {
	graph *Graph
	order *DepthOrder

	// ids hands out the identifiers returned by NewID.
	ids Generator

	// root is the node of the first widget cached with no parent.
	root NodeIndex

	// updated and prevUpdated are the widgets instantiated during the
	// current and previous update cycles.
	updated     NodeSet
	prevUpdated NodeSet

	// prevWidget and currentParent are the instantiation cursors: the
	// most recently cached widget and the parent under which the next
	// auto-parented widget will be placed.
	prevWidget    NodeIndex
	currentParent NodeIndex
}

// NewUpdater returns a new [Updater] with an empty graph.
func NewUpdater() *Updater {
	return &Updater{
		graph:       New(),
		order:       NewDepthOrder(),
		root:        NoNode,
		updated:     make(NodeSet),
		prevUpdated: make(NodeSet),
	}
}

// Graph returns the underlying widget graph.
func (u *Updater) Graph() *Graph { return u.graph }

// Order returns the depth order computed by the last [Updater.End].
func (u *Updater) Order() *DepthOrder { return u.order }

// Root returns the root widget's node, or NoNode before the first
// update cycle.
func (u *Updater) Root() NodeIndex { return u.root }

// NewID reserves and returns a new widget identifier. Identifiers are
// never reused.
func (u *Updater) NewID() WidgetID {
	return u.ids.Next()
}

// NewIDList reserves and returns n new widget identifiers.
func (u *Updater) NewIDList(n int) []WidgetID {
	return u.ids.NextList(n)
}

// UpdatedWidgets returns the set of widgets instantiated so far during
// the current update cycle.
func (u *Updater) UpdatedWidgets() NodeSet { return u.updated }

// PrevUpdatedWidgets returns the set of widgets instantiated during the
// previous update cycle.
func (u *Updater) PrevUpdatedWidgets() NodeSet { return u.prevUpdated }

// PrevWidget returns the most recently cached widget, if any. Widgets
// use this to position themselves relative to the previous sibling.
func (u *Updater) PrevWidget() (WidgetID, bool) {
	if u.prevWidget == NoNode {
		return NoWidget, false
	}
	return u.graph.IDs.WidgetID(u.prevWidget)
}

// CurrentParent returns the widget that newly instantiated widgets are
// parented under by default, if any.
func (u *Updater) CurrentParent() (WidgetID, bool) {
	if u.currentParent == NoNode {
		return NoWidget, false
	}
	return u.graph.IDs.WidgetID(u.currentParent)
}

// Begin starts a new update cycle. The widgets updated last cycle become
// the previous set and the cursors are reset.
func (u *Updater) Begin() {
	u.prevUpdated = u.updated
	u.updated = make(NodeSet, len(u.prevUpdated))
	u.prevWidget = NoNode
	u.currentParent = NoNode
}

// nodeFor returns the node for the given widget identifier, adding a
// placeholder for identifiers that have no node yet. Placeholders let a
// widget refer to another that instantiates later in the same cycle.
func (u *Updater) nodeFor(id WidgetID) NodeIndex {
	if idx, ok := u.graph.IDs.NodeIndex(id); ok {
		return idx
	}
	idx := u.graph.AddPlaceholder()
	u.graph.IDs.Insert(id, idx)
	return idx
}

// PreUpdateCache caches the given pre-update state into the graph,
// promoting the widget's placeholder if necessary and updating its
// depth, position, and graphic edges. A widget identifier that reappears
// with a different state type is reported as a programmer error and its
// cached state is discarded.
//
// A relationship that would make the graph cyclic is rejected: the
// offending edge is left unchanged, the remaining relationships still
// apply, and the joined errors are returned along with the node.
func (u *Updater) PreUpdateCache(pre PreUpdate) (NodeIndex, error) {
	idx := u.nodeFor(pre.ID)

	w := u.graph.nodes[idx].widget
	if w == nil {
		w = &Container{}
		u.graph.nodes[idx].widget = w
	} else if w.StateType != nil && pre.StateType != nil && w.StateType != pre.StateType {
		slog.Error("graph: widget ID reused with a different state type; discarding cached state",
			"id", pre.ID, "cached", w.StateType, "new", pre.StateType)
		w.State = nil
	}
	w.StateType = pre.StateType
	w.Rect = pre.Rect
	w.Depth = pre.Depth
	w.KidArea = pre.KidArea
	w.DraggedFrom = pre.DraggedFrom
	w.Floating = pre.Floating
	w.XScroll = pre.XScroll
	w.YScroll = pre.YScroll
	// the instantiation index is assigned once per cycle, on the first
	// pre-update; repeat pre-updates of the same widget keep it.
	if !u.updated.Has(idx) {
		w.InstantiationOrder = len(u.updated)
		u.updated.Add(idx)
	}

	parent := NoNode
	if pre.Parent != NoWidget {
		parent = u.nodeFor(pre.Parent)
	} else if u.root == NoNode {
		u.root = idx
	} else if idx != u.root {
		parent = u.root
	}
	var err error
	if parent != NoNode {
		_, derr := u.graph.SetEdge(parent, idx, Depth)
		err = errors.Join(err, derr)
	}

	err = errors.Join(err, u.setRelation(idx, pre.XPositionRelativeTo, PositionX))
	err = errors.Join(err, u.setRelation(idx, pre.YPositionRelativeTo, PositionY))
	err = errors.Join(err, u.setRelation(idx, pre.GraphicParent, Graphic))

	u.prevWidget = idx
	u.currentParent = parent
	return idx, err
}

// setRelation sets or removes the incoming edge of the given kind
// according to the relation target.
func (u *Updater) setRelation(idx NodeIndex, to WidgetID, kind EdgeKind) error {
	if to == NoWidget {
		u.graph.RemoveParentEdge(idx, kind)
		return nil
	}
	_, err := u.graph.SetEdge(u.nodeFor(to), idx, kind)
	return err
}

// PostUpdateCache stores the state produced by a widget's update logic.
// It returns an error if the widget was never pre-updated or if the
// state's concrete type does not match the declared state type.
func (u *Updater) PostUpdateCache(post PostUpdate) error {
	idx, ok := u.graph.IDs.NodeIndex(post.ID)
	if !ok || u.graph.Widget(idx) == nil {
		return fmt.Errorf("graph: post-update for widget %d that was never pre-updated", post.ID)
	}
	w := u.graph.Widget(idx)
	if st := reflect.TypeOf(post.State); w.StateType != nil && st != w.StateType {
		return fmt.Errorf("graph: post-update state for widget %d has type %v, declared %v",
			post.ID, st, w.StateType)
	}
	w.State = post.State

	u.prevWidget = idx
	if parent, ok := u.graph.DepthParent(idx); ok {
		u.currentParent = parent
	} else {
		u.currentParent = NoNode
	}
	return nil
}

// End finishes the update cycle and recomputes the depth order. The
// captured identifiers name the widgets currently capturing the mouse
// and keyboard, or NoWidget.
func (u *Updater) End(capturedMouse, capturedKeyboard WidgetID) {
	u.order.Update(u.graph, u.root, u.updated,
		u.resolve(capturedMouse), u.resolve(capturedKeyboard))
}

func (u *Updater) resolve(id WidgetID) NodeIndex {
	if id == NoWidget {
		return NoNode
	}
	idx, ok := u.graph.IDs.NodeIndex(id)
	if !ok {
		return NoNode
	}
	return idx
}

// ResetStale converts every widget that was not instantiated during the
// current cycle back into a placeholder, discarding its cached state.
// Call between [Updater.End] and the next [Updater.Begin].
func (u *Updater) ResetStale() {
	u.graph.ResetNonUpdated(u.updated)
}

// NodeIndex returns the node for the given identifier, if it has one.
func (u *Updater) NodeIndex(id WidgetID) (NodeIndex, bool) {
	return u.graph.IDs.NodeIndex(id)
}

// WidgetID returns the identifier for the given node, if it has one.
func (u *Updater) WidgetID(idx NodeIndex) (WidgetID, bool) {
	return u.graph.IDs.WidgetID(idx)
}

// PickWidget returns the identifier of the topmost widget under the
// given point, if any.
func (u *Updater) PickWidget(pt math32.Vector2) (WidgetID, bool) {
	idx, ok := PickWidget(u.graph, u.order, pt)
	if !ok {
		return NoWidget, false
	}
	return u.graph.IDs.WidgetID(idx)
}

// PickScrollableWidget returns the identifier of the topmost scrollable
// widget whose kid area contains the given point, if any.
func (u *Updater) PickScrollableWidget(pt math32.Vector2) (WidgetID, bool) {
	idx, ok := PickScrollableWidget(u.graph, u.order, pt)
	if !ok {
		return NoWidget, false
	}
	return u.graph.IDs.WidgetID(idx)
}

// ScrollOffset returns the total scroll offset applied to the widget
// with the given identifier.
func (u *Updater) ScrollOffset(id WidgetID) math32.Vector2 {
	idx, ok := u.graph.IDs.NodeIndex(id)
	if !ok {
		return math32.Vector2{}
	}
	return ScrollOffset(u.graph, idx)
}

// KidsBoundingBox returns the bounding box around the children of the
// widget with the given identifier, if it has any. Only widgets
// instantiated during the current cycle count.
func (u *Updater) KidsBoundingBox(id WidgetID) (math32.Box2, bool) {
	idx, ok := u.graph.IDs.NodeIndex(id)
	if !ok {
		return math32.Box2{}, false
	}
	return KidsBoundingBox(u.graph, u.updated, idx)
}

// CroppedArea returns the cropped visible area of the widget with the
// given identifier, if it is visible at all.
func (u *Updater) CroppedArea(id WidgetID) (math32.Box2, bool) {
	idx, ok := u.graph.IDs.NodeIndex(id)
	if !ok {
		return math32.Box2{}, false
	}
	return CroppedAreaWithin(u.graph, idx, NoNode)
}
