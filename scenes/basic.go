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

// The cube scenes place a cube of size 2 at height 3 above the floor,
// lit from (0, 8, 0). Its shadow on the floor is the square |x|, |z| < 2.
var basicCases = []Case{
	{
		Name:   "cube",
		Width:  64,
		Height: 64,
		Camera: topDown(20),
		Lights: []shadowvol.Light{{Position: pt(0, 8, 0), Intensity: 0.8}},
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
			{Point: pt(1.5, 0, 0), Stencil: 1},
			{Point: pt(-1.5, 0, 1.5), Stencil: 1},
			{Point: pt(2.5, 0, 0), Stencil: 0},
			{Point: pt(0, 0, -2.5), Stencil: 0},
			{Point: pt(0, 4, 0), Stencil: 0}, // top of the cube
		},
	},
	{
		// Rotated by 45 degrees, the shadow is the diamond |x| + |z| < 2√2.
		Name:   "rotated_cube",
		Width:  64,
		Height: 64,
		Camera: topDown(20),
		Lights: []shadowvol.Light{{Position: pt(0, 8, 0), Intensity: 0.8}},
		Objects: []Object{
			floor(),
			{
				Name:        "cube",
				Mesh:        mesh.Cube(2),
				Transform:   mesh.Translate(0, 3, 0).Rotated(pt(0, 1, 0), 45),
				Color:       red,
				CastsShadow: true,
			},
		},
		Probes: []Probe{
			{Point: pt(2.3, 0, 0), Stencil: 1},
			{Point: pt(0, 0, -2.3), Stencil: 1},
			{Point: pt(1.8, 0, 1.8), Stencil: 0},
		},
	},
	{
		// Each light casts a shadow on the far side of the cube; the two
		// shadows only meet underneath it.
		Name:   "two_lights",
		Width:  64,
		Height: 64,
		Camera: topDown(20),
		Lights: []shadowvol.Light{
			{Position: pt(-3, 8, 0), Intensity: 0.5},
			{Position: pt(3, 8, 0), Intensity: 0.5},
		},
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
			{Point: pt(-3, 0, 0), Stencil: 1},
			{Point: pt(3, 0, 0), Stencil: 1},
			{Point: pt(0, 0, 3), Stencil: 0},
			{Point: pt(7, 0, 0), Stencil: 0},
		},
	},
	{
		Name:   "sphere",
		Width:  96,
		Height: 96,
		Camera: topDown(20),
		Lights: []shadowvol.Light{{Position: pt(0, 8, 0), Intensity: 0.8}},
		Objects: []Object{
			floor(),
			{
				Name:        "sphere",
				Mesh:        mesh.Sphere(1, 16, 12),
				Transform:   mesh.Translate(0, 3, 0),
				Color:       blue,
				CastsShadow: true,
			},
		},
		Probes: []Probe{
			{Point: pt(4, 0, 0), Stencil: 0},
		},
	},
	{
		Name:   "tetrahedron",
		Width:  96,
		Height: 96,
		Camera: shadowvol.Camera{Pos: pt(6, 12, 10), Target: pt(0, 1, 0), Up: pt(0, 1, 0), FOV: 50},
		Lights: []shadowvol.Light{{Position: pt(-4, 9, 2), Intensity: 0.9}},
		Objects: []Object{
			floor(),
			{
				Name:        "tetrahedron",
				Mesh:        mesh.Tetrahedron(1.5),
				Transform:   mesh.Translate(0, 2.5, 0).Rotated(pt(1, 0, 1), 30),
				Color:       green,
				CastsShadow: true,
			},
		},
	},
}
