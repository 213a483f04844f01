// seehuhn.de/go/shadowvol - CPU shadow volume rendering
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package shadowvol

import (
	"bytes"
	"errors"
	"image"
	"log/slog"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/shadowvol/mesh"
)

var errRender = errors.New("render failed")

// fakeRenderer records the calls made by the accumulator. A visible
// front volume covers the whole image, a visible back volume covers the
// left half.
type fakeRenderer struct {
	width, height int

	overridden bool
	overrides  int
	restores   int
	volumes    [2]*FrustumGeometry
	visible    [2]bool

	depthRenders int
	failAt       int // fail the n-th depth render, counting from 1
	overrideErr  error
}

func (r *fakeRenderer) Size() (int, int) { return r.width, r.height }

func (r *fakeRenderer) OverrideMaterials() (func(), error) {
	if r.overrideErr != nil {
		return nil, r.overrideErr
	}
	r.overridden = true
	r.overrides++
	return func() {
		r.overridden = false
		r.restores++
	}, nil
}

func (r *fakeRenderer) SetVolume(side VolumeSide, g *FrustumGeometry) {
	if g.Empty() {
		g = nil
	}
	r.volumes[side] = g
}

func (r *fakeRenderer) SetVolumeVisible(side VolumeSide, visible bool) {
	r.visible[side] = visible
}

func (r *fakeRenderer) RenderDepthOnly(cam Camera, dst *image.RGBA) (*image.RGBA, error) {
	r.depthRenders++
	if r.depthRenders == r.failAt {
		return dst, errRender
	}
	if !r.overridden {
		return dst, errors.New("materials not overridden")
	}
	if r.visible[FrontVolume] && r.visible[BackVolume] {
		return dst, errors.New("both volumes visible")
	}

	dst = fit(dst, r.width, r.height)
	clear(dst.Pix)
	for y := range r.height {
		for x := range r.width {
			if r.visible[FrontVolume] && r.volumes[FrontVolume] != nil ||
				r.visible[BackVolume] && r.volumes[BackVolume] != nil && 2*x < r.width {
				dst.Pix[dst.PixOffset(x, y)+3] = 255
			}
		}
	}
	return dst, nil
}

func (r *fakeRenderer) RenderUnshadowed(cam Camera, dst *image.RGBA) (*image.RGBA, error) {
	dst = fit(dst, r.width, r.height)
	for i := range dst.Pix {
		dst.Pix[i] = 200
	}
	return dst, nil
}

func newOccluder(t *testing.T, name string, m *mesh.Mesh, xf mesh.Transform) *Occluder {
	t.Helper()
	occ, err := NewOccluder(name, m, &xf, Tolerance{})
	require.NoError(t, err)
	return occ
}

func testScene(t *testing.T) ([]*Occluder, []Light) {
	occluders := []*Occluder{
		newOccluder(t, "a", mesh.Cube(2), mesh.Translate(0, 3, 0)),
		newOccluder(t, "b", mesh.Cube(1), mesh.Translate(5, 3, 0)),
	}
	lights := []Light{
		{Position: math32.Vec3(0, 8, 0), Intensity: 1},
		{Position: math32.Vec3(5, 8, 0), Intensity: 1},
		{Position: math32.Vec3(2, 9, 1), Intensity: 1},
	}
	return occluders, lights
}

func TestAccumulateCounts(t *testing.T) {
	r := &fakeRenderer{width: 4, height: 2}
	occluders, lights := testScene(t)

	var buf bytes.Buffer
	a := &Accumulator{
		Renderer:  r,
		Extrusion: 100,
		Logger:    slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})),
	}
	st := NewStencilBuffer(1, 1)
	require.NoError(t, a.Accumulate(st, Camera{}, occluders, lights))

	assert.Equal(t, 4, st.Width)
	assert.Equal(t, 2, st.Height)
	assert.Equal(t, int32(0), st.At(0, 0))
	assert.Equal(t, int32(6), st.At(3, 1))

	assert.Equal(t, 12, r.depthRenders)
	assert.Equal(t, 1, r.overrides)
	assert.Equal(t, 1, r.restores)
	assert.False(t, r.overridden)
	assert.Equal(t, [2]bool{}, r.visible)
	assert.Nil(t, r.volumes[FrontVolume])
	assert.Nil(t, r.volumes[BackVolume])

	assert.Equal(t, 6, bytes.Count(buf.Bytes(), []byte("msg=\"shadow volume\"")))
	assert.Contains(t, buf.String(), "occluder=b light=2")

	// a second call starts from a cleared buffer
	require.NoError(t, a.Accumulate(st, Camera{}, occluders, lights))
	assert.Equal(t, int32(6), st.At(3, 1))
}

func TestAccumulateSkipsEmpty(t *testing.T) {
	r := &fakeRenderer{width: 2, height: 2}
	occluders := []*Occluder{
		newOccluder(t, "sheet", mesh.Plane(2, 2), mesh.Identity()),
		nil,
		{Name: "no frustum"},
	}
	lights := []Light{{Position: math32.Vec3(0, 5, 0)}}

	a := &Accumulator{Renderer: r, Extrusion: 10}
	st := NewStencilBuffer(2, 2)
	require.NoError(t, a.Accumulate(st, Camera{}, occluders, lights))
	assert.Equal(t, 0, r.depthRenders)
	assert.Equal(t, int32(0), st.Max())

	// without extrusion, no volume is drawn
	occluders, lights = testScene(t)
	a.Extrusion = 0
	require.NoError(t, a.Accumulate(st, Camera{}, occluders, lights))
	assert.Equal(t, 0, r.depthRenders)
}

func TestNewOccluder(t *testing.T) {
	m := mesh.Cube(2)
	m.Indices = append(m.Indices, 0, 1, uint32(len(m.Vertices)))
	_, err := NewOccluder("broken", m, nil, Tolerance{})
	assert.ErrorIs(t, err, mesh.ErrInvalidMesh)

	m = &mesh.Mesh{Vertices: m.Vertices, Indices: []uint32{0, 1}}
	_, err = NewOccluder("short", m, nil, Tolerance{})
	assert.ErrorIs(t, err, mesh.ErrInvalidMesh)

	// the pose is read when the volume is built
	xf := mesh.Identity()
	occ, err := NewOccluder("cube", mesh.Cube(2), &xf, Tolerance{})
	require.NoError(t, err)
	light := math32.Vec3(0, 8, 0)
	before := occ.Volume(light, 10)
	xf = mesh.Translate(0, -2, 0)
	after := occ.Volume(light, 10)
	require.Len(t, after.Vertices, 16)
	require.Equal(t, len(before.Vertices), len(after.Vertices))
	assert.InDelta(t, before.Vertices[0].Y-2, after.Vertices[0].Y, 1e-4)

	var nilPose Occluder
	assert.Equal(t, mesh.Identity(), nilPose.Transform())
}

func TestAccumulateNothingToDo(t *testing.T) {
	occluders, lights := testScene(t)

	r := &fakeRenderer{width: 3, height: 3}
	a := &Accumulator{Renderer: r, Extrusion: 10}
	st := NewStencilBuffer(3, 3)
	st.Values[0] = 5

	require.NoError(t, a.Accumulate(st, Camera{}, occluders, nil))
	assert.Equal(t, int32(0), st.Max())
	require.NoError(t, a.Accumulate(st, Camera{}, nil, lights))
	assert.Zero(t, r.overrides)

	st.Values[0] = 5
	a.Renderer = nil
	require.NoError(t, a.Accumulate(st, Camera{}, occluders, lights))
	assert.Equal(t, int32(0), st.Max())
}

func TestAccumulateErrors(t *testing.T) {
	occluders, lights := testScene(t)

	for _, failAt := range []int{1, 2, 5} {
		r := &fakeRenderer{width: 2, height: 2, failAt: failAt}
		a := &Accumulator{Renderer: r, Extrusion: 10}
		err := a.Accumulate(NewStencilBuffer(2, 2), Camera{}, occluders, lights)
		assert.ErrorIs(t, err, errRender)
		assert.Equal(t, failAt, r.depthRenders)

		assert.False(t, r.overridden)
		assert.Equal(t, 1, r.restores)
		assert.Equal(t, [2]bool{}, r.visible)
		assert.Nil(t, r.volumes[FrontVolume])
		assert.Nil(t, r.volumes[BackVolume])
	}

	r := &fakeRenderer{width: 2, height: 2, failAt: 2}
	a := &Accumulator{Renderer: r, Extrusion: 10}
	err := a.Accumulate(NewStencilBuffer(2, 2), Camera{}, occluders, lights)
	assert.ErrorContains(t, err, `occluder "a", light 0: back volume`)

	r = &fakeRenderer{width: 2, height: 2, overrideErr: errRender}
	a = &Accumulator{Renderer: r, Extrusion: 10}
	err = a.Accumulate(NewStencilBuffer(2, 2), Camera{}, occluders, lights)
	assert.ErrorIs(t, err, errRender)
	assert.Zero(t, r.depthRenders)
}

// TestAccumulateOrder checks that the stencil buffer does not depend on
// the order of occluders and lights.
func TestAccumulateOrder(t *testing.T) {
	occluders, lights := testScene(t)
	r := &fakeRenderer{width: 4, height: 4}
	a := &Accumulator{Renderer: r, Extrusion: 10}

	st1 := NewStencilBuffer(4, 4)
	require.NoError(t, a.Accumulate(st1, Camera{}, occluders, lights))

	rev := []*Occluder{occluders[1], occluders[0]}
	revLights := []Light{lights[2], lights[0], lights[1]}
	st2 := NewStencilBuffer(4, 4)
	require.NoError(t, a.Accumulate(st2, Camera{}, rev, revLights))

	assert.Equal(t, st1.Values, st2.Values)
}
