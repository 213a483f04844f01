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

package mesh

import (
	"cogentcore.org/core/math32"
)

// Cube returns an axis-aligned cube with the given edge length,
// centred on the origin.
func Cube(size float32) *Mesh {
	m := Box(size, size, size)
	m.Name = "cube"
	return m
}

// Box returns an axis-aligned box with the given extents, centred on the
// origin. Every face has its own four vertices, so the mesh has 24
// vertices and 12 triangles.
func Box(sx, sy, sz float32) *Mesh {
	x, y, z := sx/2, sy/2, sz/2
	p := func(a, b, c float32) math32.Vector3 { return math32.Vec3(a, b, c) }

	b := newBuilder("box")
	b.quad(p(x, -y, z), p(x, -y, -z), p(x, y, -z), p(x, y, z))     // +x
	b.quad(p(-x, -y, -z), p(-x, -y, z), p(-x, y, z), p(-x, y, -z)) // -x
	b.quad(p(-x, y, z), p(x, y, z), p(x, y, -z), p(-x, y, -z))     // +y
	b.quad(p(-x, -y, -z), p(x, -y, -z), p(x, -y, z), p(-x, -y, z)) // -y
	b.quad(p(-x, -y, z), p(x, -y, z), p(x, y, z), p(-x, y, z))     // +z
	b.quad(p(x, -y, -z), p(-x, -y, -z), p(-x, y, -z), p(x, y, -z)) // -z
	return b.m
}

// Plane returns a rectangle in the y=0 plane with normal +y, centred on
// the origin. The plane is open: all four outer edges belong to a
// single triangle.
func Plane(width, depth float32) *Mesh {
	x, z := width/2, depth/2
	b := newBuilder("plane")
	b.quad(
		math32.Vec3(-x, 0, z),
		math32.Vec3(x, 0, z),
		math32.Vec3(x, 0, -z),
		math32.Vec3(-x, 0, -z),
	)
	return b.m
}

// Tetrahedron returns a regular tetrahedron inscribed in a sphere of the
// given radius, with shared vertices.
func Tetrahedron(radius float32) *Mesh {
	s := radius / math32.Sqrt(3)
	b := newBuilder("tetrahedron")
	v0 := b.vertex(math32.Vec3(s, s, s))
	v1 := b.vertex(math32.Vec3(-s, -s, s))
	v2 := b.vertex(math32.Vec3(-s, s, -s))
	v3 := b.vertex(math32.Vec3(s, -s, -s))
	b.triangle(v0, v1, v3)
	b.triangle(v0, v2, v1)
	b.triangle(v0, v3, v2)
	b.triangle(v1, v2, v3)
	return b.m
}

// Sphere returns a UV sphere with the given number of longitudinal
// segments and latitudinal rings. Vertices on the seam and at the poles
// are shared.
func Sphere(radius float32, segments, rings int) *Mesh {
	segments = max(segments, 3)
	rings = max(rings, 2)

	b := newBuilder("sphere")
	top := b.vertex(math32.Vec3(0, radius, 0))
	ringStart := make([]uint32, rings-1)
	for r := 1; r < rings; r++ {
		theta := math32.Pi * float32(r) / float32(rings)
		y := radius * math32.Cos(theta)
		rr := radius * math32.Sin(theta)
		for s := range segments {
			phi := 2 * math32.Pi * float32(s) / float32(segments)
			idx := b.vertex(math32.Vec3(rr*math32.Cos(phi), y, -rr*math32.Sin(phi)))
			if s == 0 {
				ringStart[r-1] = idx
			}
		}
	}
	bottom := b.vertex(math32.Vec3(0, -radius, 0))

	at := func(r, s int) uint32 {
		return ringStart[r] + uint32(s%segments)
	}
	for s := range segments {
		b.triangle(top, at(0, s), at(0, s+1))
	}
	for r := 0; r < rings-2; r++ {
		for s := range segments {
			b.triangle(at(r, s), at(r+1, s), at(r+1, s+1))
			b.triangle(at(r, s), at(r+1, s+1), at(r, s+1))
		}
	}
	for s := range segments {
		b.triangle(bottom, at(rings-2, s+1), at(rings-2, s))
	}
	return b.m
}
