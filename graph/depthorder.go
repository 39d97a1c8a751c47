// Copyright (c) 2026, Ember UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	"fmt"
	"slices"

	"github.com/emberui/ember/math32"
)

// VisitKind distinguishes the kinds of renderable items a [DepthOrder]
// visits. Scrollbars are rendered separately from their widget because
// they appear on top of the widget's children.
type VisitKind int32

const (
	// VisitWidget is a visit of the widget itself.
	VisitWidget VisitKind = iota

	// VisitScrollbar is a visit of the scrollbar(s) of a scrollable
	// widget, made after the widget's entire subtree.
	VisitScrollbar
)

func (k VisitKind) String() string {
	switch k {
	case VisitWidget:
		return "Widget"
	case VisitScrollbar:
		return "Scrollbar"
	}
	return "VisitKindInvalid"
}

// Visitable is one renderable item within a [DepthOrder].
type Visitable struct {

	// Node is the graph node being visited.
	Node NodeIndex

	// Kind is what is rendered at this visit.
	Kind VisitKind
}

// DepthOrder caches the rendering order of a [Graph]'s widgets: the
// order in which they should be drawn, with the last entry drawn on top.
// Input dispatch walks the same order back to front.
//
// The buffers are retained and reused between [DepthOrder.Update] calls.
type DepthOrder struct {

	// Order is the render order. Widgets later in the slice render on
	// top of those earlier.
	Order []Visitable

	// floating collects floating widget roots found during the main
	// traversal, rendered as separate trees after the rest.
	floating []NodeIndex
}

// NewDepthOrder returns a new empty [DepthOrder].
func NewDepthOrder() *DepthOrder {
	return &DepthOrder{}
}

// Update recomputes the depth order from the given root, visiting only
// widgets present in the updated set. Widgets that currently capture the
// mouse or keyboard sort after all of their siblings. Floating widgets
// are deferred and rendered after the entire non-floating tree, ordered
// from least to most recently clicked, so the most recently clicked
// floating tree renders on top.
//
// Panics if any visited widget has a NaN depth.
func (d *DepthOrder) Update(g *Graph, root NodeIndex, updated NodeSet, capturedMouse, capturedKeyboard NodeIndex) {
	d.Order = d.Order[:0]
	d.floating = d.floating[:0]

	d.visit(g, root, updated, capturedMouse, capturedKeyboard)

	slices.SortStableFunc(d.floating, func(a, b NodeIndex) int {
		fa, fb := g.Widget(a).Floating, g.Widget(b).Floating
		return fa.LastClicked.Compare(fb.LastClicked)
	})
	// each floating widget roots its own subtree; floats found within a
	// floating tree are appended and processed in turn.
	for i := 0; i < len(d.floating); i++ {
		d.visit(g, d.floating[i], updated, capturedMouse, capturedKeyboard)
	}
}

// visit renders the subtree rooted at idx into the order, deferring any
// floating descendants to the floating queue. A node that was not
// instantiated this cycle ends the branch, taking its whole subtree with
// it.
func (d *DepthOrder) visit(g *Graph, idx NodeIndex, updated NodeSet, capturedMouse, capturedKeyboard NodeIndex) {
	w := g.Widget(idx)
	if w == nil || !updated.Has(idx) {
		return
	}
	d.Order = append(d.Order, Visitable{Node: idx, Kind: VisitWidget})

	// stale kids are filtered here rather than in the recursion so that
	// the sort and the floating deferral below only see live widgets.
	kids := make([]NodeIndex, 0, 8)
	for _, kid := range g.DepthChildren(idx) {
		kw := g.Widget(kid)
		if kw == nil || !updated.Has(kid) {
			continue
		}
		if kw.Floating != nil {
			d.floating = append(d.floating, kid)
			continue
		}
		kids = append(kids, kid)
	}

	// sort kids so that widgets with lower depths and captured widgets
	// render later, i.e. on top.
	slices.SortStableFunc(kids, func(a, b NodeIndex) int {
		if a == capturedMouse || a == capturedKeyboard {
			return 1
		}
		if b == capturedMouse || b == capturedKeyboard {
			return -1
		}
		da, db := g.Widget(a).Depth, g.Widget(b).Depth
		if math32.IsNaN(da) || math32.IsNaN(db) {
			panic(fmt.Sprintf("graph: NaN depth on widget node %d or %d", a, b))
		}
		switch {
		case da > db:
			return -1
		case da < db:
			return 1
		}
		return g.Widget(a).InstantiationOrder - g.Widget(b).InstantiationOrder
	})

	for _, kid := range kids {
		d.visit(g, kid, updated, capturedMouse, capturedKeyboard)
	}

	// scrollbars render after the subtree so they sit on top of any
	// scrolled content.
	if w.Scrollable() {
		d.Order = append(d.Order, Visitable{Node: idx, Kind: VisitScrollbar})
	}
}
