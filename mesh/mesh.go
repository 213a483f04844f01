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

// Package mesh provides indexed triangle meshes and rigid transforms.
//
// Triangles are wound counter-clockwise when seen from the side their
// normal points to, so that cross(b-a, c-a) is the outward direction.
package mesh

import (
	"fmt"
	"iter"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/math32"
)

// ErrInvalidMesh is returned by [Mesh.Validate] for malformed index data.
var ErrInvalidMesh = errors.New("invalid mesh")

// Mesh is an indexed triangle mesh in model space.
// Meshes are treated as immutable once they have been handed to
// an occluder or a renderer.
type Mesh struct {
	Name string

	// Vertices holds the vertex positions.
	Vertices []math32.Vector3

	// Indices holds one index triple per triangle.
	Indices []uint32
}

// NumTriangles returns the number of complete index triples.
func (m *Mesh) NumTriangles() int {
	if m == nil {
		return 0
	}
	return len(m.Indices) / 3
}

// Triangle returns the corner positions of triangle i.
func (m *Mesh) Triangle(i int) (a, b, c math32.Vector3) {
	idx := m.Indices[3*i : 3*i+3]
	return m.Vertices[idx[0]], m.Vertices[idx[1]], m.Vertices[idx[2]]
}

// Triangles iterates over all triangles in index order.
func (m *Mesh) Triangles() iter.Seq2[int, [3]math32.Vector3] {
	return func(yield func(int, [3]math32.Vector3) bool) {
		for i := range m.NumTriangles() {
			a, b, c := m.Triangle(i)
			if !yield(i, [3]math32.Vector3{a, b, c}) {
				return
			}
		}
	}
}

// Validate checks that the index list describes whole triangles and
// that every index refers to an existing vertex.
func (m *Mesh) Validate() error {
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices do not form whole triangles", ErrInvalidMesh, len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			return fmt.Errorf("%w: index %d at position %d out of range (%d vertices)",
				ErrInvalidMesh, idx, i, len(m.Vertices))
		}
	}
	return nil
}

// Center returns the mean of all vertex positions.
func (m *Mesh) Center() math32.Vector3 {
	var sum math32.Vector3
	if len(m.Vertices) == 0 {
		return sum
	}
	for _, v := range m.Vertices {
		sum = sum.Add(v)
	}
	return sum.MulScalar(1 / float32(len(m.Vertices)))
}

// Bounds returns the axis-aligned bounding box of the vertices.
func (m *Mesh) Bounds() math32.Box3 {
	b := math32.B3Empty()
	for _, v := range m.Vertices {
		b.ExpandByPoint(v)
	}
	return b
}

// FaceNormal returns the unit normal of the triangle (a, b, c).
// Degenerate triangles give the zero vector.
func FaceNormal(a, b, c math32.Vector3) math32.Vector3 {
	return Normalize(b.Sub(a).Cross(c.Sub(a)))
}

// Centroid returns the mean of the three corners.
func Centroid(a, b, c math32.Vector3) math32.Vector3 {
	return a.Add(b).Add(c).MulScalar(1.0 / 3.0)
}

// Normalize returns v scaled to unit length, or the zero vector if v has
// zero length.
func Normalize(v math32.Vector3) math32.Vector3 {
	l := v.Length()
	if l == 0 {
		return math32.Vector3{}
	}
	return v.MulScalar(1 / l)
}

// builder accumulates vertices and triangles for the primitive constructors.
type builder struct {
	m *Mesh
}

func newBuilder(name string) *builder {
	return &builder{m: &Mesh{Name: name}}
}

func (b *builder) vertex(v math32.Vector3) uint32 {
	b.m.Vertices = append(b.m.Vertices, v)
	return uint32(len(b.m.Vertices) - 1)
}

func (b *builder) triangle(i0, i1, i2 uint32) {
	b.m.Indices = append(b.m.Indices, i0, i1, i2)
}

// quad adds the counter-clockwise quadrilateral p0, p1, p2, p3 as two
// triangles with their own four vertices.
func (b *builder) quad(p0, p1, p2, p3 math32.Vector3) {
	i0 := b.vertex(p0)
	i1 := b.vertex(p1)
	i2 := b.vertex(p2)
	i3 := b.vertex(p3)
	b.triangle(i0, i1, i2)
	b.triangle(i0, i2, i3)
}
