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
	"image/color"

	"seehuhn.de/go/shadowvol"
	"seehuhn.de/go/shadowvol/mesh"
)

var overlapCases = []Case{
	{
		// Two thin plates, one above the other and shifted sideways, lit
		// from (0, 10, 0). On the floor, the upper plate shades
		// -3.8 < x < 1.27, the lower one -0.84 < x < 2.52.
		Name:   "two_plates",
		Width:  64,
		Height: 64,
		Camera: shadowvol.Camera{Pos: pt(0, 2, 14), Target: pt(0, 0, 0), Up: pt(0, 1, 0), FOV: 60},
		Lights: []shadowvol.Light{{Position: pt(0, 10, 0), Intensity: 0.8}},
		Objects: []Object{
			floor(),
			{
				Name:        "upper",
				Mesh:        mesh.Box(2, 0.1, 2),
				Transform:   mesh.Translate(-0.5, 6, 0),
				Color:       red,
				CastsShadow: true,
			},
			{
				Name:        "lower",
				Mesh:        mesh.Box(2, 0.1, 2),
				Transform:   mesh.Translate(0.5, 4, 0),
				Color:       blue,
				CastsShadow: true,
			},
		},
		Probes: []Probe{
			{Point: pt(0, 0, 0), Stencil: 2},
			{Point: pt(-2.5, 0, 0), Stencil: 1},
			{Point: pt(4, 0, 0), Stencil: 0},
		},
	},
	{
		Name:    "plate_grid",
		Width:   128,
		Height:  96,
		Camera:  shadowvol.Camera{Pos: pt(0, 14, 12), Target: pt(0, 0, 0), Up: pt(0, 1, 0), FOV: 55},
		Lights:  []shadowvol.Light{{Position: pt(-2, 10, 1), Intensity: 0.5}, {Position: pt(3, 9, -1), Intensity: 0.5}},
		Objects: plateGrid(),
	},
}

// plateGrid is a floor with a 3×3 grid of small plates at varying
// heights.
func plateGrid() []Object {
	objs := []Object{floor()}
	for i := range 9 {
		x := float32(i%3-1) * 2.5
		z := float32(i/3-1) * 2.5
		objs = append(objs, Object{
			Name:        "plate" + string(rune('a'+i)),
			Mesh:        mesh.Box(1.2, 0.1, 1.2),
			Transform:   mesh.Translate(x, 2+float32(i%4), z).Rotated(pt(0, 1, 0), float32(10*i)),
			Color:       color.RGBA{R: uint8(60 + 20*i), G: 120, B: uint8(220 - 20*i), A: 255},
			CastsShadow: true,
		})
	}
	return objs
}
