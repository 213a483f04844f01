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

// Package scenes contains fixture scenes for the shadow volume renderer.
package scenes

import (
	"image/color"
	"slices"

	"cogentcore.org/core/math32"
	"seehuhn.de/go/shadowvol"
	"seehuhn.de/go/shadowvol/mesh"
	"seehuhn.de/go/shadowvol/softgl"
)

// Case defines a single scene.
type Case struct {
	Name    string // lowercase a-z, 0-9 and _ only
	Width   int    // image width in pixels
	Height  int    // image height in pixels
	Camera  shadowvol.Camera
	Lights  []shadowvol.Light
	Objects []Object

	// Probes are world-space points on visible surfaces, with the
	// stencil value expected at the pixel they project to.
	Probes []Probe
}

// Object is one mesh of a scene.
type Object struct {
	Name        string
	Mesh        *mesh.Mesh
	Transform   mesh.Transform
	Color       color.RGBA
	CastsShadow bool
}

// Probe is a point with a known stencil value.
type Probe struct {
	Point   math32.Vector3
	Stencil int32
}

// Setup creates a software renderer and a shadow pipeline for the scene.
// Every object is added to the renderer; objects which cast shadows are
// also registered as occluders, sharing the pose of the drawn solid.
func (c *Case) Setup() (*softgl.Renderer, *shadowvol.Pipeline, error) {
	r := softgl.New(c.Width, c.Height)
	r.Lights = slices.Clone(c.Lights)

	p := shadowvol.NewPipeline(r, nil, slices.Clone(c.Lights))
	for _, obj := range c.Objects {
		s := r.Add(obj.Name, obj.Mesh, obj.Transform, obj.Color)
		if !obj.CastsShadow {
			continue
		}
		if _, err := p.AddOccluder(obj.Name, obj.Mesh, &s.Transform); err != nil {
			return nil, nil, err
		}
	}
	return r, p, nil
}

// Pixel returns the pixel which a probe point projects to.
func (c *Case) Pixel(p math32.Vector3) (x, y int, ok bool) {
	fx, fy, ok := c.Camera.Project(p, c.Width, c.Height)
	if !ok {
		return 0, 0, false
	}
	x, y = int(math32.Floor(fx)), int(math32.Floor(fy))
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return 0, 0, false
	}
	return x, y, true
}

// Moved returns a copy of the scene in which all objects, lights and the
// camera are translated by d. Meshes are shared.
func (c Case) Moved(d math32.Vector3) Case {
	c.Camera.Pos = c.Camera.Pos.Add(d)
	c.Camera.Target = c.Camera.Target.Add(d)

	lights := make([]shadowvol.Light, len(c.Lights))
	for i, l := range c.Lights {
		l.Position = l.Position.Add(d)
		lights[i] = l
	}
	c.Lights = lights

	objects := make([]Object, len(c.Objects))
	for i, obj := range c.Objects {
		obj.Transform = obj.Transform.Moved(d)
		objects[i] = obj
	}
	c.Objects = objects

	probes := make([]Probe, len(c.Probes))
	for i, pr := range c.Probes {
		pr.Point = pr.Point.Add(d)
		probes[i] = pr
	}
	c.Probes = probes
	return c
}

var (
	grey  = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	red   = color.RGBA{R: 220, G: 60, B: 40, A: 255}
	blue  = color.RGBA{R: 60, G: 90, B: 220, A: 255}
	green = color.RGBA{R: 70, G: 180, B: 90, A: 255}
)

// floor is a large receiving plane at y = 0, which does not cast shadows.
func floor() Object {
	return Object{
		Name:      "floor",
		Mesh:      mesh.Plane(40, 40),
		Transform: mesh.Identity(),
		Color:     grey,
	}
}

// topDown looks straight down onto the origin from height h.
func topDown(h float32) shadowvol.Camera {
	return shadowvol.Camera{
		Pos:    math32.Vec3(0, h, 0),
		Target: math32.Vec3(0, 0, 0),
		Up:     math32.Vec3(0, 0, -1),
		FOV:    60,
	}
}

func pt(x, y, z float32) math32.Vector3 {
	return math32.Vec3(x, y, z)
}
