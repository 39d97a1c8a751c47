// Copyright (c) 2026, Ember UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	"reflect"
	"testing"

	"github.com/emberui/ember/base/errors"
	"github.com/emberui/ember/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type buttonState struct {
	Presses int
}

type sliderState struct {
	Value float32
}

var (
	buttonType = reflect.TypeOf((*buttonState)(nil)).Elem()
	sliderType = reflect.TypeOf((*sliderState)(nil)).Elem()
)

func preButton(id, parent WidgetID, rect math32.Box2) PreUpdate {
	return PreUpdate{
		ID:                  id,
		Parent:              parent,
		XPositionRelativeTo: NoWidget,
		YPositionRelativeTo: NoWidget,
		GraphicParent:       NoWidget,
		StateType:           buttonType,
		Rect:                rect,
		KidArea:             KidArea{Rect: rect},
	}
}

// cache pre-update-caches p, failing the test on relationship errors.
func cache(t *testing.T, u *Updater, p PreUpdate) NodeIndex {
	t.Helper()
	idx, err := u.PreUpdateCache(p)
	require.NoError(t, err)
	return idx
}

func TestUpdateCycle(t *testing.T) {
	u := NewUpdater()
	rootID := u.NewID()
	aID := u.NewID()
	bID := u.NewID()

	u.Begin()
	rootIdx := cache(t, u, preButton(rootID, NoWidget, math32.B2(0, 0, 100, 100)))
	aIdx := cache(t, u, preButton(aID, rootID, math32.B2(0, 0, 50, 50)))
	require.NoError(t, u.PostUpdateCache(PostUpdate{ID: aID, State: buttonState{Presses: 1}}))
	bIdx := cache(t, u, preButton(bID, rootID, math32.B2(50, 0, 100, 50)))
	require.NoError(t, u.PostUpdateCache(PostUpdate{ID: bID, State: buttonState{}}))
	require.NoError(t, u.PostUpdateCache(PostUpdate{ID: rootID, State: buttonState{}}))
	u.End(NoWidget, NoWidget)

	assert.Equal(t, rootIdx, u.Root())
	assert.Equal(t, []NodeIndex{rootIdx, aIdx, bIdx}, widgets(u.Order()))
	assert.Equal(t, 3, u.Graph().WidgetCount())

	// the cached state round-trips through the graph with its type.
	st, ok := WidgetState[buttonState](u.Graph().Widget(aIdx))
	require.True(t, ok)
	assert.Equal(t, 1, st.Presses)

	// the next cycle sees this cycle's widgets as the previous set.
	u.Begin()
	assert.True(t, u.PrevUpdatedWidgets().Has(aIdx))
	assert.Empty(t, u.UpdatedWidgets())
}

func TestUpdatePlaceholderPromotion(t *testing.T) {
	u := NewUpdater()
	rootID := u.NewID()
	aID := u.NewID()
	bID := u.NewID()

	u.Begin()
	cache(t, u, preButton(rootID, NoWidget, math32.B2(0, 0, 100, 100)))

	// a positions itself relative to b before b has instantiated; b
	// gets a placeholder node that the edge can point at.
	pre := preButton(aID, rootID, math32.B2(0, 0, 50, 50))
	pre.XPositionRelativeTo = bID
	aIdx := cache(t, u, pre)

	bIdx, ok := u.NodeIndex(bID)
	require.True(t, ok)
	assert.True(t, u.Graph().IsPlaceholder(bIdx))
	assert.True(t, u.Graph().DoesEdgeExist(bIdx, aIdx, PositionX))

	// instantiating b promotes the placeholder in place.
	bIdx2 := cache(t, u, preButton(bID, rootID, math32.B2(50, 0, 100, 50)))
	assert.Equal(t, bIdx, bIdx2)
	assert.False(t, u.Graph().IsPlaceholder(bIdx))
	u.End(NoWidget, NoWidget)

	assert.Contains(t, widgets(u.Order()), bIdx)
}

func TestUpdateCyclicRelation(t *testing.T) {
	u := NewUpdater()
	rootID := u.NewID()
	aID := u.NewID()
	bID := u.NewID()

	u.Begin()
	cache(t, u, preButton(rootID, NoWidget, math32.B2(0, 0, 100, 100)))
	preA := preButton(aID, rootID, math32.B2(0, 0, 50, 50))
	preA.XPositionRelativeTo = bID
	aIdx := cache(t, u, preA)

	// b positioning itself back relative to a would be circular; the
	// widget still caches but the edge is rejected.
	preB := preButton(bID, rootID, math32.B2(50, 0, 100, 50))
	preB.XPositionRelativeTo = aID
	bIdx, err := u.PreUpdateCache(preB)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrWouldCycle))
	assert.NotNil(t, u.Graph().Widget(bIdx))
	assert.True(t, u.Graph().DoesEdgeExist(bIdx, aIdx, PositionX))
	assert.False(t, u.Graph().DoesEdgeExist(aIdx, bIdx, PositionX))
}

func TestUpdateStateTypeMismatch(t *testing.T) {
	u := NewUpdater()
	rootID := u.NewID()
	aID := u.NewID()

	u.Begin()
	cache(t, u, preButton(rootID, NoWidget, math32.B2(0, 0, 100, 100)))
	aIdx := cache(t, u, preButton(aID, rootID, math32.B2(0, 0, 50, 50)))

	// a post-update with the wrong concrete type is rejected.
	err := u.PostUpdateCache(PostUpdate{ID: aID, State: sliderState{Value: 0.5}})
	require.Error(t, err)
	assert.Nil(t, u.Graph().Widget(aIdx).State)

	require.NoError(t, u.PostUpdateCache(PostUpdate{ID: aID, State: buttonState{Presses: 2}}))
	u.End(NoWidget, NoWidget)

	// reusing the ID with a different state type discards the cached
	// state but keeps the node.
	u.Begin()
	cache(t, u, preButton(rootID, NoWidget, math32.B2(0, 0, 100, 100)))
	pre := preButton(aID, rootID, math32.B2(0, 0, 50, 50))
	pre.StateType = sliderType
	aIdx2 := cache(t, u, pre)
	assert.Equal(t, aIdx, aIdx2)
	assert.Nil(t, u.Graph().Widget(aIdx).State)
	assert.Equal(t, sliderType, u.Graph().Widget(aIdx).StateType)
}

func TestUpdateRepeatPreUpdate(t *testing.T) {
	u := NewUpdater()
	rootID := u.NewID()
	aID := u.NewID()
	bID := u.NewID()

	u.Begin()
	cache(t, u, preButton(rootID, NoWidget, math32.B2(0, 0, 100, 100)))
	aIdx := cache(t, u, preButton(aID, rootID, math32.B2(0, 0, 50, 50)))
	// pre-updating the same widget again in one cycle keeps its first
	// instantiation index instead of reassigning it.
	cache(t, u, preButton(aID, rootID, math32.B2(0, 0, 60, 60)))
	bIdx := cache(t, u, preButton(bID, rootID, math32.B2(50, 0, 100, 50)))

	assert.Equal(t, 1, u.Graph().Widget(aIdx).InstantiationOrder)
	assert.Equal(t, 2, u.Graph().Widget(bIdx).InstantiationOrder)
	// the repeated pre-update still refreshed the cached geometry.
	assert.Equal(t, math32.B2(0, 0, 60, 60), u.Graph().Widget(aIdx).Rect)
}

func TestUpdatePostBeforePre(t *testing.T) {
	u := NewUpdater()
	u.Begin()
	err := u.PostUpdateCache(PostUpdate{ID: 7, State: buttonState{}})
	assert.Error(t, err)
}

func TestUpdateCursors(t *testing.T) {
	u := NewUpdater()
	rootID := u.NewID()
	aID := u.NewID()

	u.Begin()
	_, ok := u.PrevWidget()
	assert.False(t, ok)
	_, ok = u.CurrentParent()
	assert.False(t, ok)

	cache(t, u, preButton(rootID, NoWidget, math32.B2(0, 0, 100, 100)))
	prev, ok := u.PrevWidget()
	require.True(t, ok)
	assert.Equal(t, rootID, prev)
	_, ok = u.CurrentParent()
	assert.False(t, ok) // the root has no parent

	cache(t, u, preButton(aID, rootID, math32.B2(0, 0, 50, 50)))
	prev, _ = u.PrevWidget()
	assert.Equal(t, aID, prev)
	parent, ok := u.CurrentParent()
	require.True(t, ok)
	assert.Equal(t, rootID, parent)

	// finishing a widget pops the cursor back to its own parent.
	require.NoError(t, u.PostUpdateCache(PostUpdate{ID: aID, State: buttonState{}}))
	prev, _ = u.PrevWidget()
	assert.Equal(t, aID, prev)
	parent, ok = u.CurrentParent()
	require.True(t, ok)
	assert.Equal(t, rootID, parent)
}

func TestUpdateResetStale(t *testing.T) {
	u := NewUpdater()
	rootID := u.NewID()
	aID := u.NewID()

	u.Begin()
	cache(t, u, preButton(rootID, NoWidget, math32.B2(0, 0, 100, 100)))
	aIdx := cache(t, u, preButton(aID, rootID, math32.B2(0, 0, 50, 50)))
	require.NoError(t, u.PostUpdateCache(PostUpdate{ID: aID, State: buttonState{Presses: 3}}))
	u.End(NoWidget, NoWidget)

	// a is not instantiated this cycle and gets reset to a placeholder.
	u.Begin()
	cache(t, u, preButton(rootID, NoWidget, math32.B2(0, 0, 100, 100)))
	u.End(NoWidget, NoWidget)
	u.ResetStale()

	assert.Nil(t, u.Graph().Widget(aIdx))
	assert.NotContains(t, widgets(u.Order()), aIdx)

	// the identifier still maps to the same node if a comes back.
	u.Begin()
	cache(t, u, preButton(rootID, NoWidget, math32.B2(0, 0, 100, 100)))
	aIdx2 := cache(t, u, preButton(aID, rootID, math32.B2(0, 0, 50, 50)))
	assert.Equal(t, aIdx, aIdx2)
	// but the previous state is gone.
	assert.Nil(t, u.Graph().Widget(aIdx).State)
}

func TestUpdateCaptured(t *testing.T) {
	u := NewUpdater()
	rootID := u.NewID()
	aID := u.NewID()
	bID := u.NewID()

	u.Begin()
	rootIdx := cache(t, u, preButton(rootID, NoWidget, math32.B2(0, 0, 100, 100)))
	aIdx := cache(t, u, preButton(aID, rootID, math32.B2(0, 0, 50, 50)))
	bIdx := cache(t, u, preButton(bID, rootID, math32.B2(50, 0, 100, 50)))
	u.End(aID, NoWidget)

	// the mouse-capturing widget renders last among its siblings.
	assert.Equal(t, []NodeIndex{rootIdx, bIdx, aIdx}, widgets(u.Order()))
}

func TestUpdaterPickAndScroll(t *testing.T) {
	u := NewUpdater()
	rootID := u.NewID()
	sID := u.NewID()
	kidID := u.NewID()

	u.Begin()
	cache(t, u, preButton(rootID, NoWidget, math32.B2(0, 0, 100, 100)))
	pre := preButton(sID, rootID, math32.B2(0, 0, 80, 80))
	pre.YScroll = &ScrollState{Offset: 20, Max: 100}
	cache(t, u, pre)
	cache(t, u, preButton(kidID, sID, math32.B2(10, 10, 30, 30)))
	u.End(NoWidget, NoWidget)

	id, ok := u.PickWidget(math32.Vec2(20, 20))
	require.True(t, ok)
	assert.Equal(t, kidID, id)

	id, ok = u.PickScrollableWidget(math32.Vec2(20, 20))
	require.True(t, ok)
	assert.Equal(t, sID, id)

	assert.Equal(t, math32.Vec2(0, 20), u.ScrollOffset(kidID))
	assert.Equal(t, math32.Vector2{}, u.ScrollOffset(99))

	bb, ok := u.KidsBoundingBox(sID)
	require.True(t, ok)
	assert.Equal(t, math32.B2(10, 10, 30, 30), bb)

	area, ok := u.CroppedArea(kidID)
	require.True(t, ok)
	assert.Equal(t, math32.B2(10, 10, 30, 30), area)
}
