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
	"seehuhn.de/go/shadowvol"
	"seehuhn.de/go/shadowvol/mesh"
)

// degenerateCases contain occluders and lights which give no shadow
// volume, or unusual edge configurations.
var degenerateCases = []Case{
	{
		Name:   "no_lights",
		Width:  64,
		Height: 64,
		Camera: topDown(20),
		Objects: []Object{
			floor(),
			{
				Name:        "cube",
				Mesh:        mesh.Cube(2),
				Transform:   mesh.Translate(0, 3, 0),
				Color:       red,
				CastsShadow: true,
			},
		},
		Probes: []Probe{
			{Point: pt(1.5, 0, 0), Stencil: 0},
			{Point: pt(0, 4, 0), Stencil: 0},
		},
	},
	{
		// The light is at the centre of the cube, so no face is turned
		// towards it.
		Name:   "light_inside",
		Width:  64,
		Height: 64,
		Camera: topDown(20),
		Lights: []shadowvol.Light{{Position: pt(0, 3, 0), Intensity: 0.8}},
		Objects: []Object{
			floor(),
			{
				Name:        "cube",
				Mesh:        mesh.Cube(2),
				Transform:   mesh.Translate(0, 3, 0),
				Color:       red,
				CastsShadow: true,
			},
		},
		Probes: []Probe{
			{Point: pt(1.5, 0, 0), Stencil: 0},
			{Point: pt(5, 0, 0), Stencil: 0},
		},
	},
	{
		// An open plane has only boundary edges and casts no shadow
		// volume.
		Name:   "open_occluder",
		Width:  64,
		Height: 64,
		Camera: topDown(20),
		Lights: []shadowvol.Light{{Position: pt(0, 8, 0), Intensity: 0.8}},
		Objects: []Object{
			floor(),
			{
				Name:        "sheet",
				Mesh:        mesh.Plane(2, 2),
				Transform:   mesh.Translate(0, 3, 0),
				Color:       green,
				CastsShadow: true,
			},
		},
		Probes: []Probe{
			{Point: pt(1.5, 0, 0), Stencil: 0},
		},
	},
	{
		Name:   "sliver",
		Width:  64,
		Height: 64,
		Camera: topDown(20),
		Lights: []shadowvol.Light{{Position: pt(0, 8, 0), Intensity: 0.8}},
		Objects: []Object{
			floor(),
			{
				Name:        "sliver",
				Mesh:        sliver(),
				Transform:   mesh.Translate(0, 3, 0),
				Color:       blue,
				CastsShadow: true,
			},
		},
	},
}

// sliver is a closed tetrahedron with an extra zero-area triangle
// attached to one of its edges.
func sliver() *mesh.Mesh {
	m := mesh.Tetrahedron(1)
	a, b, _ := m.Triangle(0)
	mid := a.Add(b).MulScalar(0.5)
	n := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, a, b, mid)
	m.Indices = append(m.Indices, n, n+1, n+2)
	m.Name = "sliver"
	return m
}
