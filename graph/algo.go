// Copyright (c) 2026, Ember UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import "github.com/emberui/ember/math32"

// PickWalk is a walker over the widgets under a point, yielded from the
// top of the depth order downwards.
type PickWalk struct {
	g              *Graph
	order          *DepthOrder
	pt             math32.Vector2
	i              int
	scrollableOnly bool
}

// PickWidgets returns a walker over all widgets under the given point,
// from the top of the depth order downwards. Graphic elements resolve to
// the widget they decorate, and a point over a scrollbar resolves to the
// scrollbar's widget.
func PickWidgets(g *Graph, order *DepthOrder, pt math32.Vector2) PickWalk {
	return PickWalk{g: g, order: order, pt: pt, i: len(order.Order)}
}

// PickScrollableWidgets returns a walker over all scrollable widgets
// whose kid area contains the given point, from the top of the depth
// order downwards. This is the set of widgets a scroll event at that
// point may apply to.
func PickScrollableWidgets(g *Graph, order *DepthOrder, pt math32.Vector2) PickWalk {
	return PickWalk{g: g, order: order, pt: pt, i: len(order.Order), scrollableOnly: true}
}

// Next returns the next picked widget, if there is one.
func (w *PickWalk) Next() (NodeIndex, bool) {
	for w.i > 0 {
		w.i--
		v := w.order.Order[w.i]
		c := w.g.Widget(v.Node)
		if c == nil {
			continue
		}
		if w.scrollableOnly {
			if v.Kind != VisitWidget {
				continue
			}
			if c.Scrollable() && c.KidArea.Rect.ContainsPoint(w.pt) {
				return v.Node, true
			}
			continue
		}
		switch v.Kind {
		case VisitScrollbar:
			if c.scrollBarContains(w.pt) {
				return v.Node, true
			}
		case VisitWidget:
			// widgets scrolled out of their ancestors' kid areas are
			// not pickable within the cropped-away region.
			area, ok := CroppedArea(w.g, v.Node)
			if !ok || !area.ContainsPoint(w.pt) {
				continue
			}
			walk := w.g.ParentWalk(v.Node, Graphic)
			return walk.Last(), true
		}
	}
	return NoNode, false
}

// PickWidget returns the topmost widget under the given point, if any.
func PickWidget(g *Graph, order *DepthOrder, pt math32.Vector2) (NodeIndex, bool) {
	w := PickWidgets(g, order, pt)
	return w.Next()
}

// PickScrollableWidget returns the topmost scrollable widget whose kid
// area contains the given point, if any.
func PickScrollableWidget(g *Graph, order *DepthOrder, pt math32.Vector2) (NodeIndex, bool) {
	w := PickScrollableWidgets(g, order, pt)
	return w.Next()
}

// CroppedArea returns the widget's rectangle cropped by the kid areas of
// all scrollable ancestors along its depth-parent chain. It reports
// false if the widget does not exist or is cropped away entirely.
func CroppedArea(g *Graph, idx NodeIndex) (math32.Box2, bool) {
	return CroppedAreaWithin(g, idx, NoNode)
}

// CroppedAreaWithin is like [CroppedArea] but stops cropping after
// processing the given deepest ancestor. Pass [NoNode] to crop against
// the entire chain.
func CroppedAreaWithin(g *Graph, idx, deepest NodeIndex) (math32.Box2, bool) {
	w := g.Widget(idx)
	if w == nil {
		return math32.Box2{}, false
	}
	area := w.Rect
	cur := idx
	for {
		parent, ok := g.DepthParent(cur)
		if !ok {
			return area, true
		}
		if pw := g.Widget(parent); pw != nil && pw.Scrollable() {
			// graphic elements are part of their widget's own chrome
			// and are not cropped by it.
			if gp, ok := g.GraphicParent(cur); !ok || gp != parent {
				area = area.Intersect(pw.KidArea.Rect)
				if area.IsEmpty() {
					return math32.Box2{}, false
				}
			}
		}
		if parent == deepest {
			return area, true
		}
		cur = parent
	}
}

// KidsBoundingBox returns the bounding box around the subtrees of all of
// the given widget's depth children, reporting false if it has none.
// Children outside the updated set (nil means no filter), floating
// children, and graphic elements of the widget itself are excluded; this
// is the box scrollable widgets scroll over.
func KidsBoundingBox(g *Graph, updated NodeSet, idx NodeIndex) (math32.Box2, bool) {
	bb := kidsBox(g, updated, idx)
	if bb.IsEmpty() {
		return math32.Box2{}, false
	}
	return bb, true
}

// BoundingBoxAround returns the box bounding the given widget's own
// rectangle along with the subtrees of all of its depth children, as it
// would be if the widget's center were at the given target point.
func BoundingBoxAround(g *Graph, updated NodeSet, idx NodeIndex, target math32.Vector2) math32.Box2 {
	w := g.Widget(idx)
	if w == nil {
		return math32.B2Empty()
	}
	return subtreeBox(g, updated, idx).Translate(target.Sub(w.Rect.Center()))
}

// kidsBox folds the subtree boxes of idx's eligible depth children.
func kidsBox(g *Graph, updated NodeSet, idx NodeIndex) math32.Box2 {
	bb := math32.B2Empty()
	for _, kid := range g.DepthChildren(idx) {
		kw := g.Widget(kid)
		if kw == nil || kw.Floating != nil {
			continue
		}
		if updated != nil && !updated.Has(kid) {
			continue
		}
		if gp, ok := g.GraphicParent(kid); ok && gp == idx {
			continue
		}
		bb = bb.Union(subtreeBox(g, updated, kid))
	}
	return bb
}

// subtreeBox returns the widget's rectangle unioned with its kids' box.
func subtreeBox(g *Graph, updated NodeSet, idx NodeIndex) math32.Box2 {
	bb := g.Widget(idx).Rect
	if kb := kidsBox(g, updated, idx); !kb.IsEmpty() {
		bb = bb.Union(kb)
	}
	return bb
}

// ScrollOffset returns the total scroll offset applied to the given
// widget by all scrollable widgets along its depth-parent chain.
func ScrollOffset(g *Graph, idx NodeIndex) math32.Vector2 {
	return math32.Vec2(
		axisScrollOffset(g, idx, math32.X),
		axisScrollOffset(g, idx, math32.Y),
	)
}

// axisScrollOffset accumulates the scroll offset along one axis by
// walking the depth-parent chain. Offsets are rounded to avoid jitter
// from subpixel scroll positions.
//
// A scrollable ancestor's offset applies at most once per widget: if any
// widget along the position-parent chain lives within the scrollable's
// subtree, its resolved position already carries the offset, so the
// widget positioned relative to it must not add it again. A graphic
// element takes the offset of the widget it decorates rather than its
// own, and a graphic element of the scrollable itself never scrolls
// with the scrollable's content.
func axisScrollOffset(g *Graph, idx NodeIndex, axis math32.Dims) float32 {
	var offset float32
	cur := idx
	for {
		depthParent, ok := g.DepthParent(cur)
		if !ok {
			return offset
		}
		pw := g.Widget(depthParent)
		if pw == nil || pw.Scroll(axis) == nil {
			cur = depthParent
			continue
		}
		scroll := pw.Scroll(axis)

		if g.DoesRecursiveEdgeExist(depthParent, cur, Graphic) {
			// a graphical element of the scrollable itself.
			return offset
		}

		if _, hasPos := g.PositionParent(cur, axis); !hasPos {
			// with no position parent on this axis, a graphic element
			// resolves as though it were the widget it decorates.
			if gp, ok := g.GraphicParent(cur); ok {
				cur = gp
				continue
			}
			offset += math32.Round(scroll.Offset)
			cur = depthParent
			continue
		}

		walk := g.ParentWalk(cur, PositionEdge(axis))
		for {
			posParent, ok := walk.Next()
			if !ok {
				break
			}
			if posParent == depthParent {
				// positioned relative to the scrollable itself; the
				// offset applies exactly once, here.
				offset += math32.Round(scroll.Offset)
				return offset
			}
			if g.DoesRecursiveEdgeExist(depthParent, posParent, Depth) {
				// the position parent is inside the scrollable's
				// subtree and already carries this offset.
				return offset
			}
		}
		offset += math32.Round(scroll.Offset)
		cur = depthParent
	}
}
