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

// Package softgl is a small software renderer for triangle meshes.
//
// It implements the render service needed by [shadowvol.Pipeline]: a
// depth buffer, a material override which only writes depth, and two
// slots for the front and back faces of a shadow volume.
package softgl

import (
	"fmt"
	"image"
	"image/color"

	"cogentcore.org/core/base/errors"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/shadowvol"
	"seehuhn.de/go/shadowvol/mesh"
	"seehuhn.de/go/shadowvol/raster"
)

var (
	// ErrNoOverride is returned by RenderDepthOnly if the materials have
	// not been overridden.
	ErrNoOverride = errors.New("no material override active")

	// ErrOverrideActive is returned when the materials are overridden
	// already, or when an unshadowed render is requested during an
	// override.
	ErrOverrideActive = errors.New("material override active")
)

// Material describes how the faces of a solid are drawn.
type Material struct {
	Name  string
	Color color.RGBA

	// DepthOnly materials update the depth buffer but leave the colour
	// image unchanged.
	DepthOnly bool
}

var (
	// DepthOnly is the material used while the materials are overridden.
	DepthOnly = &Material{Name: "depth-only", DepthOnly: true}

	// VolumeMaterial is used for shadow volume meshes.
	VolumeMaterial = &Material{Name: "volume", Color: color.RGBA{R: 255, G: 255, B: 255, A: 255}}
)

// Solid is a mesh placed in the scene. Both sides of every triangle are
// drawn.
type Solid struct {
	Name      string
	Mesh      *mesh.Mesh
	Transform mesh.Transform
	Material  *Material
	Hidden    bool
}

// Renderer draws solids into RGBA images.
// The zero value is not usable; use [New].
type Renderer struct {
	Solids []*Solid

	// Lights are used for shading in RenderUnshadowed.
	Lights []shadowvol.Light

	// Ambient is the brightness of faces which receive no light.
	Ambient float32

	// Background is the colour of pixels not covered by any solid in
	// RenderUnshadowed.
	Background color.RGBA

	width, height int
	depth         []float32

	volumes [2]*shadowvol.FrustumGeometry
	visible [2]bool

	saved map[*Solid]*Material // nil unless the materials are overridden

	view view
	rast *raster.Rasteriser
	poly []vertex
	pts  []vec.Vec2
}

var _ shadowvol.Renderer = (*Renderer)(nil)

// New returns a renderer for images of the given size.
func New(width, height int) *Renderer {
	r := &Renderer{
		Ambient:    0.2,
		Background: color.RGBA{A: 255},
		rast:       raster.NewRasteriser(rect.Rect{}),
	}
	r.Resize(width, height)
	return r
}

// Add places a mesh in the scene, using a new material of the given
// colour.
func (r *Renderer) Add(name string, m *mesh.Mesh, xf mesh.Transform, col color.RGBA) *Solid {
	s := &Solid{
		Name:      name,
		Mesh:      m,
		Transform: xf,
		Material:  &Material{Name: name, Color: col},
	}
	r.Solids = append(r.Solids, s)
	return s
}

// Solid returns the solid with the given name, or nil.
func (r *Renderer) Solid(name string) *Solid {
	for _, s := range r.Solids {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Size returns the output resolution.
func (r *Renderer) Size() (width, height int) {
	return r.width, r.height
}

// Resize changes the output resolution.
func (r *Renderer) Resize(width, height int) {
	r.width, r.height = max(width, 0), max(height, 0)
	n := r.width * r.height
	if cap(r.depth) < n {
		r.depth = make([]float32, n)
	}
	r.depth = r.depth[:n]
}

// Overridden reports whether the depth-only material is in place.
func (r *Renderer) Overridden() bool {
	return r.saved != nil
}

// OverrideMaterials replaces the material of every solid by [DepthOnly].
// The returned function puts the original materials back; calling it
// more than once has no further effect.
func (r *Renderer) OverrideMaterials() (func(), error) {
	if r.saved != nil {
		return func() {}, ErrOverrideActive
	}
	saved := make(map[*Solid]*Material, len(r.Solids))
	for _, s := range r.Solids {
		saved[s] = s.Material
		s.Material = DepthOnly
	}
	r.saved = saved

	done := false
	return func() {
		if done {
			return
		}
		done = true
		for s, m := range saved {
			s.Material = m
		}
		r.saved = nil
	}, nil
}

// SetVolume stores the geometry for one side of the shadow volume.
func (r *Renderer) SetVolume(side shadowvol.VolumeSide, g *shadowvol.FrustumGeometry) {
	if g.Empty() {
		g = nil
	}
	r.volumes[side] = g
}

// SetVolumeVisible shows or hides one side of the shadow volume.
func (r *Renderer) SetVolumeVisible(side shadowvol.VolumeSide, visible bool) {
	r.visible[side] = visible
}

// VolumeVisible reports whether one side of the shadow volume is shown.
func (r *Renderer) VolumeVisible(side shadowvol.VolumeSide) bool {
	return r.visible[side]
}

// RenderDepthOnly draws the solids into the depth buffer and then draws
// the visible volume meshes in white, where they are in front of the
// solids. All other pixels are transparent black.
func (r *Renderer) RenderDepthOnly(cam shadowvol.Camera, dst *image.RGBA) (*image.RGBA, error) {
	if r.saved == nil {
		return dst, ErrNoOverride
	}
	img := r.begin(cam, dst, color.RGBA{})

	for _, s := range r.Solids {
		if err := r.drawSolid(img, s); err != nil {
			return img, err
		}
	}
	for side, g := range r.volumes {
		if g == nil || !r.visible[side] {
			continue
		}
		r.drawVolume(img, g)
	}
	return img, nil
}

// RenderUnshadowed draws the solids with flat Lambert shading.
// Volume meshes are never drawn.
func (r *Renderer) RenderUnshadowed(cam shadowvol.Camera, dst *image.RGBA) (*image.RGBA, error) {
	if r.saved != nil {
		return dst, ErrOverrideActive
	}
	img := r.begin(cam, dst, r.Background)

	for _, s := range r.Solids {
		if err := r.drawSolid(img, s); err != nil {
			return img, err
		}
	}
	return img, nil
}

func (r *Renderer) drawSolid(img *image.RGBA, s *Solid) error {
	if s.Hidden || s.Mesh == nil {
		return nil
	}
	if s.Material == nil {
		return fmt.Errorf("solid %q has no material", s.Name)
	}
	if err := s.Mesh.Validate(); err != nil {
		return fmt.Errorf("solid %q: %w", s.Name, err)
	}
	for _, tri := range s.Mesh.Triangles() {
		for k := range tri {
			tri[k] = s.Transform.Point(tri[k])
		}
		r.drawSolidTriangle(img, tri, s.Material)
	}
	return nil
}

// fit returns img if it is a w×h image with origin (0, 0), and a new
// image otherwise.
func fit(img *image.RGBA, w, h int) *image.RGBA {
	if img != nil && img.Rect == image.Rect(0, 0, w, h) {
		return img
	}
	return image.NewRGBA(image.Rect(0, 0, w, h))
}
