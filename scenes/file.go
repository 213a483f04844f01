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

package scenes

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"cogentcore.org/core/math32"
	"github.com/pelletier/go-toml/v2"
	"seehuhn.de/go/shadowvol"
	"seehuhn.de/go/shadowvol/mesh"
)

// sceneFile is the TOML representation of a [Case].
type sceneFile struct {
	Name    string       `toml:"name"`
	Width   int          `toml:"width"`
	Height  int          `toml:"height"`
	Camera  cameraFile   `toml:"camera"`
	Lights  []lightFile  `toml:"light"`
	Objects []objectFile `toml:"object"`
	Probes  []probeFile  `toml:"probe"`
}

type cameraFile struct {
	Position [3]float32 `toml:"position"`
	Target   [3]float32 `toml:"target"`
	Up       [3]float32 `toml:"up"`
	FOV      float32    `toml:"fov"`
	Near     float32    `toml:"near"`
}

type lightFile struct {
	Position  [3]float32 `toml:"position"`
	Intensity *float32   `toml:"intensity"`
}

type objectFile struct {
	Name string `toml:"name"`

	// Shape is one of "cube", "box", "plane", "tetrahedron" or "sphere".
	// If OBJ is set, the mesh is read from that file instead.
	Shape string     `toml:"shape"`
	Size  [3]float32 `toml:"size"`
	OBJ   string     `toml:"obj"`

	Position [3]float32  `toml:"position"`
	Axis     [3]float32  `toml:"axis"`
	Angle    float32     `toml:"angle"`
	Scale    *[3]float32 `toml:"scale"`

	Color       [3]uint8 `toml:"color"`
	CastsShadow *bool    `toml:"casts_shadow"`
}

type probeFile struct {
	Point   [3]float32 `toml:"point"`
	Stencil int32      `toml:"stencil"`
}

// Read decodes a scene from TOML. Relative OBJ file names are resolved
// against dir.
func Read(r io.Reader, dir string) (*Case, error) {
	var sf sceneFile
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&sf); err != nil {
		return nil, err
	}

	c := &Case{
		Name:   sf.Name,
		Width:  sf.Width,
		Height: sf.Height,
		Camera: shadowvol.Camera{
			Pos:    vec3(sf.Camera.Position),
			Target: vec3(sf.Camera.Target),
			Up:     vec3(sf.Camera.Up),
			FOV:    sf.Camera.FOV,
			Near:   sf.Camera.Near,
		},
	}
	if c.Width <= 0 || c.Height <= 0 {
		return nil, fmt.Errorf("scene %q: invalid image size %dx%d", c.Name, c.Width, c.Height)
	}
	if c.Camera.Up == (math32.Vector3{}) {
		c.Camera.Up = math32.Vec3(0, 1, 0)
	}

	for _, lf := range sf.Lights {
		l := shadowvol.Light{Position: vec3(lf.Position), Intensity: 1}
		if lf.Intensity != nil {
			l.Intensity = *lf.Intensity
		}
		c.Lights = append(c.Lights, l)
	}

	for i, of := range sf.Objects {
		obj, err := of.object(dir)
		if err != nil {
			return nil, fmt.Errorf("scene %q, object %d: %w", c.Name, i, err)
		}
		c.Objects = append(c.Objects, obj)
	}

	for _, pf := range sf.Probes {
		c.Probes = append(c.Probes, Probe{Point: vec3(pf.Point), Stencil: pf.Stencil})
	}
	return c, nil
}

// Load reads a scene from a TOML file.
func Load(fname string) (*Case, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := Read(f, filepath.Dir(fname))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return c, nil
}

func (of *objectFile) object(dir string) (Object, error) {
	m, err := of.mesh(dir)
	if err != nil {
		return Object{}, err
	}

	xf := mesh.Identity()
	if of.Scale != nil {
		for _, v := range of.Scale {
			if v == 0 || math32.IsNaN(v) || math32.IsInf(v, 0) {
				return Object{}, fmt.Errorf("invalid scale %v", *of.Scale)
			}
		}
		xf = xf.Scaled(of.Scale[0], of.Scale[1], of.Scale[2])
	}
	if of.Angle != 0 {
		xf = xf.Rotated(vec3(of.Axis), of.Angle)
	}
	xf = xf.Moved(vec3(of.Position))

	obj := Object{
		Name:        of.Name,
		Mesh:        m,
		Transform:   xf,
		Color:       color.RGBA{R: of.Color[0], G: of.Color[1], B: of.Color[2], A: 255},
		CastsShadow: of.Shape != "plane",
	}
	if obj.Name == "" {
		obj.Name = m.Name
	}
	if of.CastsShadow != nil {
		obj.CastsShadow = *of.CastsShadow
	}
	return obj, nil
}

func (of *objectFile) mesh(dir string) (*mesh.Mesh, error) {
	if of.OBJ != "" {
		fname := of.OBJ
		if !filepath.IsAbs(fname) {
			fname = filepath.Join(dir, fname)
		}
		return mesh.LoadOBJ(fname)
	}

	s := of.Size
	switch of.Shape {
	case "cube":
		return mesh.Cube(orDefault(s[0], 1)), nil
	case "box":
		return mesh.Box(orDefault(s[0], 1), orDefault(s[1], 1), orDefault(s[2], 1)), nil
	case "plane":
		return mesh.Plane(orDefault(s[0], 10), orDefault(s[1], orDefault(s[0], 10))), nil
	case "tetrahedron":
		return mesh.Tetrahedron(orDefault(s[0], 1)), nil
	case "sphere":
		return mesh.Sphere(orDefault(s[0], 1), 16, 12), nil
	case "":
		return nil, fmt.Errorf("%w: object needs a shape or an OBJ file", mesh.ErrInvalidMesh)
	default:
		return nil, fmt.Errorf("%w: unknown shape %q", mesh.ErrInvalidMesh, of.Shape)
	}
}

func orDefault(v, def float32) float32 {
	if v > 0 {
		return v
	}
	return def
}

func vec3(v [3]float32) math32.Vector3 {
	return math32.Vec3(v[0], v[1], v[2])
}
