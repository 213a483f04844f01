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

// Package shadowvol computes hard shadows with stencil shadow volumes on
// the CPU.
//
// For every occluder the candidate silhouette edges are found once, when
// the occluder is created. Each frame, the edges which separate a face
// turned towards a light from a face turned away from it are extruded
// away from the light into an open volume. The front and back faces of
// every volume are drawn by a [Renderer] against the depth of the scene,
// and the difference of the two coverage masks is added into a
// [StencilBuffer]. Pixels with a positive stencil value lie in shadow and
// are darkened by the [Compositor].
//
// [Pipeline] ties the steps together for a whole frame.
package shadowvol

//go:generate go run ./scenes/export -o testdata/frusta.json
