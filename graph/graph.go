// Copyright (c) 2026, Ember UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package graph implements the retained widget graph at the core of an
// immediate-mode GUI: a directed acyclic graph that caches per-widget
// state across frames and encodes rendering, positioning, and graphical
// relationships between widgets as typed edges.
//
// The primary type of interest is [Graph]. Each update cycle, the
// widget-instantiation driver writes widget state into the graph through
// an [Updater], after which a [DepthOrder] computes the paint/pick order
// consumed by rendering and input dispatch along with the query
// functions in algo.go.
package graph

import (
	"fmt"

	"github.com/emberui/ember/base/errors"
	"github.com/emberui/ember/math32"
)

// ErrWouldCycle is reported when an edge insertion is rejected because it
// would create a cycle within the graph.
var ErrWouldCycle = errors.New("graph: edge would create a cycle")

// WouldCycleError is the error returned by [Graph.SetEdge] when adding
// the requested edge would create a cycle. The graph is left unmodified.
// It wraps [ErrWouldCycle].
type WouldCycleError struct {
	Parent NodeIndex
	Child  NodeIndex
	Kind   EdgeKind
}

func (e *WouldCycleError) Error() string {
	return fmt.Sprintf("graph: %v edge from node %d to node %d would create a cycle",
		e.Kind, e.Parent, e.Child)
}

func (e *WouldCycleError) Unwrap() error { return ErrWouldCycle }

// Graph stores the dynamic state of a UI tree of widgets in a directed
// acyclic graph whose edges describe the rendering tree, relative
// positioning, and graphical ownership. Nodes are referenced by stable
// [NodeIndex] handles into a backing arena; indices are never recycled.
//
// A Graph is exclusively owned by a single update pass per frame and
// must not be used concurrently.
type Graph struct {

	// IDs maps user-facing widget identifiers to node indices.
	IDs IndexMap

	nodes []node
	edges []edge

	// scratch state for the cycle check, reused across SetEdge calls.
	visitGen uint32
	visited  []uint32
	stack    []NodeIndex
}

// New returns a new empty [Graph].
func New() *Graph {
	return &Graph{}
}

// NewWithCapacity returns a new [Graph] with storage preallocated for the
// given number of nodes. Each node can have at most one incoming edge per
// kind, so edge capacity is a fixed multiple of node capacity.
func NewWithCapacity(nodes int) *Graph {
	return &Graph{
		nodes: make([]node, 0, nodes),
		edges: make([]edge, 0, nodes*int(NumEdgeKinds)),
	}
}

// Clear removes all nodes, edges, and identifier mappings from the graph.
// This is the only way a node is ever removed.
func (g *Graph) Clear() {
	g.nodes = g.nodes[:0]
	g.edges = g.edges[:0]
	g.IDs.Reset()
}

// NodeCount returns the total number of nodes in the graph, including
// placeholders.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// WidgetCount returns the number of nodes currently caching widget state.
func (g *Graph) WidgetCount() int {
	n := 0
	for i := range g.nodes {
		if g.nodes[i].widget != nil {
			n++
		}
	}
	return n
}

// EdgeCount returns the total number of edges in the graph.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// Contains returns whether the given index refers to a node in the graph.
func (g *Graph) Contains(idx NodeIndex) bool {
	return idx >= 0 && int(idx) < len(g.nodes)
}

// IsPlaceholder returns whether the node at the given index exists and
// holds no widget state.
func (g *Graph) IsPlaceholder(idx NodeIndex) bool {
	return g.Contains(idx) && g.nodes[idx].widget == nil
}

// AddPlaceholder adds a new placeholder node, reserving an index for a
// widget that has not been instantiated yet, and returns its index.
// Computes in O(1) time.
func (g *Graph) AddPlaceholder() NodeIndex {
	g.nodes = append(g.nodes, node{parents: noParents()})
	return NodeIndex(len(g.nodes) - 1)
}

func noParents() [NumEdgeKinds]EdgeIndex {
	return [NumEdgeKinds]EdgeIndex{NoEdge, NoEdge, NoEdge, NoEdge}
}

// Widget returns the cached widget state at the given index, or nil if
// the index is out of range or the node is a placeholder.
func (g *Graph) Widget(idx NodeIndex) *Container {
	if !g.Contains(idx) {
		return nil
	}
	return g.nodes[idx].widget
}

// SetEdge sets an edge of the given kind from parent to child, so that it
// is the only incoming edge of that kind on child: any existing incoming
// edge of the same kind from a different parent is removed first. If the
// identical edge already exists, its index is returned unchanged.
//
// If adding the edge would create a cycle, a [*WouldCycleError] is
// returned and the graph is left bit-for-bit unmodified.
//
// Panics if either node does not exist within the graph.
func (g *Graph) SetEdge(parent, child NodeIndex, kind EdgeKind) (EdgeIndex, error) {
	if !g.Contains(parent) || !g.Contains(child) {
		panic(fmt.Sprintf("graph: SetEdge(%d, %d, %v) with a node that does not exist", parent, child, kind))
	}
	existing := g.nodes[child].parents[kind]
	if existing != NoEdge && g.edges[existing].parent == parent {
		return existing, nil
	}
	if g.wouldCycle(parent, child) {
		return NoEdge, &WouldCycleError{Parent: parent, Child: child, Kind: kind}
	}
	if existing != NoEdge {
		g.removeEdge(existing)
	}
	ei := EdgeIndex(len(g.edges))
	g.edges = append(g.edges, edge{parent: parent, child: child, kind: kind})
	g.nodes[child].parents[kind] = ei
	g.nodes[parent].kids = append(g.nodes[parent].kids, ei)
	return ei, nil
}

// RemoveParentEdge removes the unique incoming edge of the given kind on
// child, if there is one, returning whether an edge was removed.
func (g *Graph) RemoveParentEdge(child NodeIndex, kind EdgeKind) bool {
	if !g.Contains(child) {
		return false
	}
	ei := g.nodes[child].parents[kind]
	if ei == NoEdge {
		return false
	}
	g.removeEdge(ei)
	return true
}

// EdgeEndpoints returns the parent and child nodes on either end of the
// edge at the given index.
func (g *Graph) EdgeEndpoints(ei EdgeIndex) (parent, child NodeIndex, ok bool) {
	if ei < 0 || int(ei) >= len(g.edges) {
		return NoNode, NoNode, false
	}
	e := g.edges[ei]
	return e.parent, e.child, true
}

// removeEdge unlinks and removes the edge at the given index, compacting
// the edge arena by moving the last edge into the vacated slot.
func (g *Graph) removeEdge(ei EdgeIndex) {
	e := g.edges[ei]
	g.nodes[e.child].parents[e.kind] = NoEdge
	kids := g.nodes[e.parent].kids
	for i, k := range kids {
		if k == ei {
			g.nodes[e.parent].kids = append(kids[:i], kids[i+1:]...)
			break
		}
	}
	last := EdgeIndex(len(g.edges) - 1)
	if ei != last {
		moved := g.edges[last]
		g.edges[ei] = moved
		g.nodes[moved.child].parents[moved.kind] = ei
		mkids := g.nodes[moved.parent].kids
		for i, k := range mkids {
			if k == last {
				mkids[i] = ei
				break
			}
		}
	}
	g.edges = g.edges[:last]
}

// wouldCycle returns whether adding an edge parent -> child would create
// a cycle, which is the case exactly when child is already an ancestor of
// parent along any combination of edge kinds.
func (g *Graph) wouldCycle(parent, child NodeIndex) bool {
	if parent == child {
		return true
	}
	g.visitGen++
	for len(g.visited) < len(g.nodes) {
		g.visited = append(g.visited, 0)
	}
	stack := append(g.stack[:0], parent)
	found := false
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == child {
			found = true
			break
		}
		if g.visited[n] == g.visitGen {
			continue
		}
		g.visited[n] = g.visitGen
		for _, ei := range g.nodes[n].parents {
			if ei != NoEdge {
				stack = append(stack, g.edges[ei].parent)
			}
		}
	}
	g.stack = stack[:0]
	return found
}

// Parent returns the parent of the given node along its unique incoming
// edge of the given kind, if there is one.
func (g *Graph) Parent(idx NodeIndex, kind EdgeKind) (NodeIndex, bool) {
	if !g.Contains(idx) {
		return NoNode, false
	}
	ei := g.nodes[idx].parents[kind]
	if ei == NoEdge {
		return NoNode, false
	}
	return g.edges[ei].parent, true
}

// DepthParent returns the parent along the given node's [Depth] edge.
func (g *Graph) DepthParent(idx NodeIndex) (NodeIndex, bool) {
	return g.Parent(idx, Depth)
}

// PositionParent returns the parent along the given node's position edge
// for the given axis.
func (g *Graph) PositionParent(idx NodeIndex, axis math32.Dims) (NodeIndex, bool) {
	return g.Parent(idx, PositionEdge(axis))
}

// XPositionParent returns the parent along the given node's [PositionX]
// edge.
func (g *Graph) XPositionParent(idx NodeIndex) (NodeIndex, bool) {
	return g.Parent(idx, PositionX)
}

// YPositionParent returns the parent along the given node's [PositionY]
// edge.
func (g *Graph) YPositionParent(idx NodeIndex) (NodeIndex, bool) {
	return g.Parent(idx, PositionY)
}

// GraphicParent returns the parent along the given node's [Graphic] edge.
func (g *Graph) GraphicParent(idx NodeIndex) (NodeIndex, bool) {
	return g.Parent(idx, Graphic)
}

// Children appends the children of the given node along edges of the
// given kind to dst, in edge insertion order, and returns the result.
func (g *Graph) Children(dst []NodeIndex, idx NodeIndex, kind EdgeKind) []NodeIndex {
	if !g.Contains(idx) {
		return dst
	}
	for _, ei := range g.nodes[idx].kids {
		if g.edges[ei].kind == kind {
			dst = append(dst, g.edges[ei].child)
		}
	}
	return dst
}

// DepthChildren returns the children of the given node along [Depth]
// edges, in edge insertion order.
func (g *Graph) DepthChildren(idx NodeIndex) []NodeIndex {
	return g.Children(nil, idx, Depth)
}

// GraphicChildren returns the children of the given node along [Graphic]
// edges, in edge insertion order.
func (g *Graph) GraphicChildren(idx NodeIndex) []NodeIndex {
	return g.Children(nil, idx, Graphic)
}

// PositionChildren returns the children positioned relative to the given
// node along the given axis, in edge insertion order.
func (g *Graph) PositionChildren(idx NodeIndex, axis math32.Dims) []NodeIndex {
	return g.Children(nil, idx, PositionEdge(axis))
}

// DoesEdgeExist returns whether an edge of the given kind exists between
// parent -> child. It returns false if either node does not exist.
func (g *Graph) DoesEdgeExist(parent, child NodeIndex, kind EdgeKind) bool {
	if !g.Contains(parent) || !g.Contains(child) {
		return false
	}
	ei := g.nodes[child].parents[kind]
	return ei != NoEdge && g.edges[ei].parent == parent
}

// DoesRecursiveEdgeExist returns whether parent and child are connected
// by a single chain of edges of the given kind, i.e. parent -> x -> y ->
// child. It returns false if either node does not exist.
func (g *Graph) DoesRecursiveEdgeExist(parent, child NodeIndex, kind EdgeKind) bool {
	w := g.ParentWalk(child, kind)
	for {
		n, ok := w.Next()
		if !ok {
			return false
		}
		if n == parent {
			return true
		}
	}
}

// ParentWalk is a walker that recursively steps through the chain of
// parents of a single edge kind, starting from (and not including) a
// given node.
type ParentWalk struct {
	g    *Graph
	kind EdgeKind
	cur  NodeIndex
}

// ParentWalk returns a [ParentWalk] over the chain of parents of the
// given kind starting from the given node.
func (g *Graph) ParentWalk(start NodeIndex, kind EdgeKind) ParentWalk {
	return ParentWalk{g: g, kind: kind, cur: start}
}

// Next steps to and returns the next parent in the chain, if there is one.
func (w *ParentWalk) Next() (NodeIndex, bool) {
	n, ok := w.g.Parent(w.cur, w.kind)
	if !ok {
		return NoNode, false
	}
	w.cur = n
	return n, true
}

// Last walks the rest of the chain and returns the last node in it,
// or the current node if the chain is already exhausted.
func (w *ParentWalk) Last() NodeIndex {
	for {
		if _, ok := w.Next(); !ok {
			return w.cur
		}
	}
}

// ResetNonUpdated converts every widget node whose index is not present
// in the given set back into a placeholder, discarding its cached state.
// This preserves the validity of existing node indices while allowing a
// widget with the same index to reappear in a future frame.
func (g *Graph) ResetNonUpdated(updated NodeSet) {
	for i := range g.nodes {
		if g.nodes[i].widget != nil && !updated.Has(NodeIndex(i)) {
			g.nodes[i].widget = nil
		}
	}
}
