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
	"fmt"
	"image"
	"log/slog"

	"cogentcore.org/core/base/errors"
	"seehuhn.de/go/shadowvol/mesh"
)

// ErrNoRenderer is returned by [Pipeline.Frame] if no renderer is set.
var ErrNoRenderer = errors.New("no renderer")

// Default values used by [NewPipeline].
const (
	DefaultExtrusion        = 1000
	DefaultShadowMultiplier = 0.5
)

// Pipeline renders shadowed frames of a fixed set of occluders and
// lights.
//
// The images in a [Frame] belong to the pipeline and are overwritten by
// the next call to [Pipeline.Frame]. A Pipeline must not be used from
// more than one goroutine at a time.
type Pipeline struct {
	Renderer  Renderer
	Occluders []*Occluder
	Lights    []Light

	// Extrusion is the length of the shadow volumes.
	Extrusion float32

	// ShadowMultiplier scales the colour of pixels in shadow.
	ShadowMultiplier float32

	// Falloff optionally darkens pixels inside several volumes further.
	Falloff *Falloff

	// Tolerance is used by AddOccluder for new occluders.
	Tolerance Tolerance

	// Logger is passed on to the accumulation step.
	// If nil, slog.Default() is used.
	Logger *slog.Logger

	acc        Accumulator
	stencil    StencilBuffer
	unshadowed *image.RGBA
	shadowed   *image.RGBA
	mask       *image.RGBA
}

// NewPipeline returns a pipeline with the default extrusion length and
// shadow multiplier.
func NewPipeline(r Renderer, occluders []*Occluder, lights []Light) *Pipeline {
	return &Pipeline{
		Renderer:         r,
		Occluders:        occluders,
		Lights:           lights,
		Extrusion:        DefaultExtrusion,
		ShadowMultiplier: DefaultShadowMultiplier,
		Tolerance:        Tolerance{Vertex: DefaultTolerance, Normal: DefaultTolerance},
	}
}

// AddOccluder registers a new occluder and returns it.
// The pose is shared, see [Occluder].
func (p *Pipeline) AddOccluder(name string, m *mesh.Mesh, pose *mesh.Transform) (*Occluder, error) {
	occ, err := NewOccluder(name, m, pose, p.Tolerance)
	if err != nil {
		return nil, err
	}
	p.Occluders = append(p.Occluders, occ)
	return occ, nil
}

// AddLight registers a new light.
func (p *Pipeline) AddLight(l Light) {
	p.Lights = append(p.Lights, l)
}

// Frame holds the images of one rendered frame.
type Frame struct {
	Unshadowed *image.RGBA
	Shadowed   *image.RGBA
	Mask       *image.RGBA
	Stencil    *StencilBuffer
}

// Frame renders the scene without shadows, accumulates the stencil
// buffer for all occluders and lights, and composites the result.
func (p *Pipeline) Frame(cam Camera) (*Frame, error) {
	if p.Renderer == nil {
		return nil, ErrNoRenderer
	}

	var err error
	p.unshadowed, err = p.Renderer.RenderUnshadowed(cam, p.unshadowed)
	if err != nil {
		return nil, fmt.Errorf("unshadowed pass: %w", err)
	}

	p.acc.Renderer = p.Renderer
	p.acc.Extrusion = p.Extrusion
	p.acc.Logger = p.Logger
	err = p.acc.Accumulate(&p.stencil, cam, p.Occluders, p.Lights)
	if err != nil {
		return nil, err
	}

	c := Compositor{ShadowMultiplier: p.ShadowMultiplier, Falloff: p.Falloff}
	p.shadowed, p.mask, err = c.Composite(p.shadowed, p.mask, p.unshadowed, &p.stencil)
	if err != nil {
		return nil, err
	}

	return &Frame{
		Unshadowed: p.unshadowed,
		Shadowed:   p.shadowed,
		Mask:       p.mask,
		Stencil:    &p.stencil,
	}, nil
}
