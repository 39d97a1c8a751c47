// Copyright (c) 2026, Ember UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"fmt"
	"image"

	"golang.org/x/image/math/fixed"
)

// Box2 represents a 2D bounding box defined by two points:
// the point with minimum coordinates and the point with maximum coordinates.
type Box2 struct {
	Min Vector2
	Max Vector2
}

// B2 returns a new [Box2] from the given minimum and maximum x and y
// coordinates.
func B2(x0, y0, x1, y1 float32) Box2 {
	return Box2{Vec2(x0, y0), Vec2(x1, y1)}
}

// B2Empty returns a new [Box2] with empty minimum and maximum values.
func B2Empty() Box2 {
	bx := Box2{}
	bx.SetEmpty()
	return bx
}

// B2FromRect returns a new [Box2] from the given [image.Rectangle].
func B2FromRect(rect image.Rectangle) Box2 {
	return Box2{FromPoint(rect.Min), FromPoint(rect.Max)}
}

// B2FromFixed returns a new [Box2] from the given [fixed.Rectangle26_6].
func B2FromFixed(rect fixed.Rectangle26_6) Box2 {
	return Box2{FromFixed(rect.Min), FromFixed(rect.Max)}
}

// B2FromCenterSize returns a new [Box2] with the given center position and
// total size.
func B2FromCenterSize(center, size Vector2) Box2 {
	half := size.MulScalar(0.5)
	return Box2{center.Sub(half), center.Add(half)}
}

// SetEmpty sets this bounding box to empty (min / max +/- Infinity).
func (b *Box2) SetEmpty() {
	b.Min.SetScalar(Infinity)
	b.Max.SetScalar(-Infinity)
}

// IsEmpty returns whether this bounding box is empty (max < min on any
// coordinate).
func (b Box2) IsEmpty() bool {
	return b.Max.X < b.Min.X || b.Max.Y < b.Min.Y
}

func (b Box2) String() string {
	return fmt.Sprintf("[%v - %v]", b.Min, b.Max)
}

// Canon returns the canonical version of the box, with minimum and maximum
// coordinates swapped as needed so that min is actually the minimum.
func (b Box2) Canon() Box2 {
	return Box2{b.Min.Min(b.Max), b.Min.Max(b.Max)}
}

// Size returns the size of this bounding box (max - min).
func (b Box2) Size() Vector2 {
	return b.Max.Sub(b.Min)
}

// Center returns the center point of this bounding box.
func (b Box2) Center() Vector2 {
	return b.Min.Add(b.Max).MulScalar(0.5)
}

// Translate returns this box translated by the given offset.
func (b Box2) Translate(offset Vector2) Box2 {
	return Box2{b.Min.Add(offset), b.Max.Add(offset)}
}

// ExpandByPoint expands this bounding box to include the given point.
func (b *Box2) ExpandByPoint(pt Vector2) {
	b.Min = b.Min.Min(pt)
	b.Max = b.Max.Max(pt)
}

// ContainsPoint returns whether this bounding box contains the given point.
// Points on the maximum edges are considered outside, matching
// [image.Rectangle] semantics.
func (b Box2) ContainsPoint(pt Vector2) bool {
	return pt.X >= b.Min.X && pt.X < b.Max.X && pt.Y >= b.Min.Y && pt.Y < b.Max.Y
}

// ContainsBox returns whether this bounding box fully contains the other one.
func (b Box2) ContainsBox(other Box2) bool {
	return b.Min.X <= other.Min.X && other.Max.X <= b.Max.X &&
		b.Min.Y <= other.Min.Y && other.Max.Y <= b.Max.Y
}

// Intersect returns the intersection of this box with the other one.
// If the boxes do not overlap, the result [Box2.IsEmpty].
func (b Box2) Intersect(other Box2) Box2 {
	return Box2{b.Min.Max(other.Min), b.Max.Min(other.Max)}
}

// Union returns the smallest box that encloses both this box and the other
// one.
func (b Box2) Union(other Box2) Box2 {
	return Box2{b.Min.Min(other.Min), b.Max.Max(other.Max)}
}

// ToRect returns the [image.Rectangle] version of this box, using floor for
// min and ceil for max, suitable for scissor / clip regions.
func (b Box2) ToRect() image.Rectangle {
	return image.Rectangle{Min: b.Min.ToPointFloor(), Max: b.Max.ToPointCeil()}
}

// ToFixed returns the [fixed.Rectangle26_6] version of this box.
func (b Box2) ToFixed() fixed.Rectangle26_6 {
	return fixed.Rectangle26_6{Min: b.Min.ToFixed(), Max: b.Max.ToFixed()}
}
