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

// largeCases render at a resolution where the bounding boxes of the floor
// triangles exceed 65536 pixels, so that the rasteriser uses its active
// segment list.
var largeCases = []Case{
	resized(basicCases[0], "cube_512", 512, 512),
	resized(overlapCases[0], "two_plates_512", 512, 512),
}

// resized returns a copy of c with a new name and image size.
func resized(c Case, name string, width, height int) Case {
	c.Name = name
	c.Width = width
	c.Height = height
	return c
}
