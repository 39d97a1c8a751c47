// Copyright (c) 2026, Ember UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import "github.com/emberui/ember/math32"

// EdgeKind is the kind of a directed edge between two nodes in the
// widget [Graph]. Each node may have at most one incoming edge of
// each kind, so the graph can be described as four trees superimposed
// on top of one another, one per kind.
type EdgeKind int32

const (
	// Depth describes the rendering order of widgets. For an edge
	// a -> b, a is the parent of b and is rendered before it. Depth
	// edges form the primary ownership tree of the interface.
	Depth EdgeKind = iota

	// PositionX describes relative positioning along the x axis.
	// For an edge a -> b, b's x coordinate is defined relative to a.
	PositionX

	// PositionY describes relative positioning along the y axis.
	// For an edge a -> b, b's y coordinate is defined relative to a.
	PositionY

	// Graphic marks a widget as a purely graphical element of another
	// widget. For an edge a -> b, b is a non-interactive decoration
	// of a. This implies several things about b:
	//
	//   - If b is picked within [PickWidget], the index for a is
	//     returned instead.
	//   - When determining the [ScrollOffset] for b, a's scrolling
	//     (if it is scrollable) is skipped.
	//   - Any Graphic child of b is considered a Graphic child of a.
	Graphic

	// NumEdgeKinds is the number of different edge kinds.
	NumEdgeKinds
)

func (k EdgeKind) String() string {
	switch k {
	case Depth:
		return "Depth"
	case PositionX:
		return "PositionX"
	case PositionY:
		return "PositionY"
	case Graphic:
		return "Graphic"
	}
	return "EdgeKindInvalid"
}

// IsPosition returns whether this kind is [PositionX] or [PositionY].
func (k EdgeKind) IsPosition() bool {
	return k == PositionX || k == PositionY
}

// PositionEdge returns the position edge kind for the given axis.
func PositionEdge(axis math32.Dims) EdgeKind {
	if axis == math32.X {
		return PositionX
	}
	return PositionY
}

// EdgeIndex is a handle into the graph's edge arena. Edge removal
// compacts the arena, so handles are only stable until the next
// removal and must be treated as transient by callers.
type EdgeIndex int32

// NoEdge is the nil value for [EdgeIndex].
const NoEdge EdgeIndex = -1

// edge is one directed parent -> child connection in the arena.
type edge struct {
	parent NodeIndex
	child  NodeIndex
	kind   EdgeKind
}
