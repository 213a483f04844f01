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
	"math/rand/v2"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/shadowvol/mesh"
)

func TestCubeEdges(t *testing.T) {
	edges := ExtractEdges(mesh.Cube(2), Tolerance{})
	require.Len(t, edges, 12)
	for _, e := range edges {
		assert.Len(t, e.Faces, 2)
		assert.InDelta(t, 2, e.B.Sub(e.A).Length(), 1e-6)
		assert.InDelta(t, 0, e.Faces[0].Normal.Dot(e.Faces[1].Normal), 1e-6)
	}
}

// TestOpenEdges checks that boundary edges, and edges between coplanar
// triangles, are never candidates.
func TestOpenEdges(t *testing.T) {
	assert.Empty(t, ExtractEdges(mesh.Plane(3, 3), Tolerance{}))

	single := &mesh.Mesh{
		Vertices: []math32.Vector3{{}, {X: 1}, {Y: 1}},
		Indices:  []uint32{0, 1, 2},
	}
	assert.Empty(t, ExtractEdges(single, Tolerance{}))

	assert.Empty(t, ExtractEdges(nil, Tolerance{}))
	assert.Empty(t, ExtractEdges(&mesh.Mesh{}, Tolerance{}))
}

// TestSplitVertices checks that edges are matched by position even when
// the two triangles use different vertex indices.
func TestSplitVertices(t *testing.T) {
	m := &mesh.Mesh{
		Vertices: []math32.Vector3{
			{}, {X: 1}, {Y: 1},        // normal +z
			{}, {X: 1.00005}, {Z: -1}, // normal +y, nearly the same edge
		},
		Indices: []uint32{0, 1, 2, 3, 4, 5},
	}
	edges := ExtractEdges(m, Tolerance{})
	require.Len(t, edges, 1)
	assert.Equal(t, math32.Vector3{}, edges[0].A)
	assert.Equal(t, math32.Vector3{X: 1}, edges[0].B)
	assert.InDelta(t, 1, edges[0].Faces[0].Normal.Z, 1e-6)
	assert.InDelta(t, 1, edges[0].Faces[1].Normal.Y, 1e-6)

	// beyond the tolerance, the edges are distinct
	m.Vertices[4].X = 1.001
	assert.Empty(t, ExtractEdges(m, Tolerance{}))

	// a coarser tolerance merges them again
	assert.Len(t, ExtractEdges(m, Tolerance{Vertex: 0.01}), 1)
}

// TestNormalTolerance checks that faces whose normals differ by less than
// the normal tolerance are counted once.
func TestNormalTolerance(t *testing.T) {
	m := &mesh.Mesh{
		Vertices: []math32.Vector3{{}, {X: 1}, {Y: 1}, {X: 1}, {}, {Y: -1, Z: 1e-5}},
		Indices:  []uint32{0, 1, 2, 3, 4, 5},
	}
	assert.Empty(t, ExtractEdges(m, Tolerance{}))
	assert.Len(t, ExtractEdges(m, Tolerance{Normal: 1e-6}), 1)
}

// TestDegenerateTriangle checks that faces with a zero normal do not take
// part in the facing test.
func TestDegenerateTriangle(t *testing.T) {
	m := &mesh.Mesh{
		Vertices: []math32.Vector3{{}, {X: 1}, {Y: 1}, {X: 2}},
		Indices:  []uint32{0, 1, 2, 0, 1, 3},
	}
	edges := ExtractEdges(m, Tolerance{})
	require.Len(t, edges, 1)
	assert.Equal(t, math32.Vector3{}, edges[0].Faces[1].Normal)

	f := &OcclusionFrustum{Edges: edges}
	var sil []WorldEdge
	assert.NotPanics(t, func() {
		sil = f.Silhouette(mesh.Identity(), math32.Vec3(0, 0, 5))
	})
	assert.Empty(t, sil)
	assert.Empty(t, f.Silhouette(mesh.Identity(), math32.Vec3(0, 0, -5)))
}

// TestDegenerateFirstFace checks a cube with a zero-area triangle on one
// of its edges, listed before the real faces.
func TestDegenerateFirstFace(t *testing.T) {
	light := math32.Vec3(10, 13, 10)
	plain := NewOcclusionFrustum(mesh.Cube(2), Tolerance{})
	require.Len(t, plain.Silhouette(mesh.Identity(), light), 6)

	m := mesh.Cube(2)
	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices,
		math32.Vec3(1, 1, 1), math32.Vec3(1, 1, -1), math32.Vec3(1, 1, 0))
	m.Indices = append([]uint32{base, base + 1, base + 2}, m.Indices...)

	f := NewOcclusionFrustum(m, Tolerance{})
	sil := f.Silhouette(mesh.Identity(), light)
	assert.Len(t, sil, 6)
	for _, e := range sil {
		assert.NotEqual(t, math32.Vector3{}, e.N1)
		assert.NotEqual(t, math32.Vector3{}, e.N2)
	}
	assert.Equal(t, 12, f.Build(mesh.Identity(), light, 10).NumTriangles())
}

// TestNonManifold checks that the first two faces of an edge decide the
// facing test.
func TestNonManifold(t *testing.T) {
	m := &mesh.Mesh{
		Vertices: []math32.Vector3{
			{}, {X: 1}, {Y: 1},
			{X: 1}, {}, {Z: -1},
			{}, {X: 1}, {Y: -1, Z: -1},
		},
		Indices: []uint32{0, 1, 2, 3, 4, 5, 6, 7, 8},
	}
	edges := ExtractEdges(m, Tolerance{})
	require.Len(t, edges, 1)
	require.Len(t, edges[0].Faces, 3)

	f := &OcclusionFrustum{Edges: edges}
	assert.InDelta(t, -1, edges[0].Faces[1].Normal.Y, 1e-6)

	// The first two faces point towards +z and -y.  From (0.5, 5, 5) only
	// the first one is turned towards the light.
	assert.Len(t, f.Silhouette(mesh.Identity(), math32.Vec3(0.5, 5, 5)), 1)
	// From (0.5, -1, 5) both are, and the third face is ignored.
	assert.Empty(t, f.Silhouette(mesh.Identity(), math32.Vec3(0.5, -1, 5)))
}

// TestHashMatchesNaive compares the hashed edge matching with the
// quadratic scan.
func TestHashMatchesNaive(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	jitter := func(m *mesh.Mesh, amount float32) *mesh.Mesh {
		res := &mesh.Mesh{Name: m.Name + "_jitter", Indices: m.Indices}
		for _, v := range m.Vertices {
			d := math32.Vec3(rng.Float32()-0.5, rng.Float32()-0.5, rng.Float32()-0.5)
			res.Vertices = append(res.Vertices, v.Add(d.MulScalar(amount)))
		}
		return res
	}

	meshes := []*mesh.Mesh{
		mesh.Cube(2),
		mesh.Box(1, 0.1, 3),
		mesh.Tetrahedron(1),
		mesh.Sphere(1, 12, 8),
		mesh.Plane(2, 2),
		jitter(mesh.Cube(2), 1e-4),
		jitter(mesh.Sphere(0.01, 10, 6), 5e-5),
		jitter(mesh.Box(3, 2, 1), 3e-4),
	}
	for _, m := range meshes {
		t.Run(m.Name, func(t *testing.T) {
			for _, tol := range []Tolerance{{}, {Vertex: 1e-3, Normal: 1e-2}} {
				assert.Equal(t, extractEdgesNaive(m, tol), ExtractEdges(m, tol))
			}
		})
	}
}

func BenchmarkExtractEdges(b *testing.B) {
	m := mesh.Sphere(1, 64, 32)
	b.Run("hash", func(b *testing.B) {
		for b.Loop() {
			ExtractEdges(m, Tolerance{})
		}
	})
	b.Run("naive", func(b *testing.B) {
		for b.Loop() {
			extractEdgesNaive(m, Tolerance{})
		}
	})
}
