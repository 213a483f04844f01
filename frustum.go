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
	"iter"
	"slices"

	"cogentcore.org/core/math32"
	"seehuhn.de/go/shadowvol/mesh"
)

// OcclusionFrustum holds the candidate silhouette edges of one occluder
// mesh. It is computed once and can then be used to build shadow volumes
// for any occluder pose and light position.
type OcclusionFrustum struct {
	// Edges are the candidate silhouette edges, in model space.
	Edges []SharedEdge

	// Center is the mean vertex position of the mesh, in model space.
	Center math32.Vector3
}

// NewOcclusionFrustum extracts the candidate silhouette edges of m.
func NewOcclusionFrustum(m *mesh.Mesh, tol Tolerance) *OcclusionFrustum {
	f := &OcclusionFrustum{Edges: ExtractEdges(m, tol)}
	if m != nil {
		f.Center = m.Center()
	}
	return f
}

// WorldEdge is a silhouette edge for one occluder pose and light position.
// N1 and N2 are the world-space normals of the two faces deciding the
// facing test.
type WorldEdge struct {
	V1, V2 math32.Vector3
	N1, N2 math32.Vector3
}

// Silhouette returns the edges where exactly one of the two adjoining
// faces is turned towards the light, in world space and in the order of
// f.Edges.
//
// A face is turned towards the light if dot(centroid - light, normal) < 0.
// Faces with a zero normal are skipped. For edges with more than two
// remaining faces, the first two are used; edges with fewer than two are
// never part of the silhouette.
func (f *OcclusionFrustum) Silhouette(xf mesh.Transform, light math32.Vector3) []WorldEdge {
	var res []WorldEdge
	for i := range f.Edges {
		e := &f.Edges[i]
		f1, f2, ok := e.deciding()
		if !ok {
			continue
		}
		n1, lit1 := facing(xf, f1, light)
		n2, lit2 := facing(xf, f2, light)
		if lit1 == lit2 {
			continue
		}
		res = append(res, WorldEdge{
			V1: xf.Point(e.A),
			V2: xf.Point(e.B),
			N1: n1,
			N2: n2,
		})
	}
	return res
}

// deciding returns the first two faces of e with a non-zero normal.
func (e *SharedEdge) deciding() (f1, f2 FaceSample, ok bool) {
	k := 0
	for _, face := range e.Faces {
		if face.Normal == (math32.Vector3{}) {
			continue
		}
		if k == 0 {
			f1 = face
		} else {
			return f1, face, true
		}
		k++
	}
	return f1, f2, false
}

func facing(xf mesh.Transform, face FaceSample, light math32.Vector3) (math32.Vector3, bool) {
	n := xf.Normal(face.Normal)
	c := xf.Point(face.Centroid)
	return n, c.Sub(light).Dot(n) < 0
}

// Build extrudes the current silhouette away from the light by the
// distance extrusion and returns the front-facing volume mesh, in world
// space. Every silhouette edge gives one quad, stored as four vertices
// and two triangles.
//
// The result is empty if extrusion is not positive, if there is no
// silhouette, or if all silhouette edges are degenerate.
func (f *OcclusionFrustum) Build(xf mesh.Transform, light math32.Vector3, extrusion float32) *FrustumGeometry {
	g := &FrustumGeometry{}
	if !(extrusion > 0) {
		return g
	}
	for _, e := range f.Silhouette(xf, light) {
		g.addQuad(e, light, extrusion)
	}
	return g
}

// FrustumGeometry is a triangle mesh in world space describing one open
// shadow volume.
type FrustumGeometry struct {
	Vertices []math32.Vector3
	Indices  []uint32
}

// addQuad extrudes e away from light. The quad is wound so that its
// normal has a positive component along the mean of the two face normals.
func (g *FrustumGeometry) addQuad(e WorldEdge, light math32.Vector3, extrusion float32) {
	v1, v2 := e.V1, e.V2
	d1, d2 := v1.Sub(light), v2.Sub(light)
	if v2.Sub(v1).Length() == 0 || d1.Length() == 0 || d2.Length() == 0 {
		return
	}
	v3 := v2.Add(mesh.Normalize(d2).MulScalar(extrusion))
	v4 := v1.Add(mesh.Normalize(d1).MulScalar(extrusion))

	base := uint32(len(g.Vertices))
	g.Vertices = append(g.Vertices, v1, v2, v3, v4)

	avg := e.N1.Add(e.N2).MulScalar(0.5)
	n := v2.Sub(v1).Cross(v4.Sub(v1))
	if n.Dot(avg) > 0 {
		g.Indices = append(g.Indices, base, base+1, base+2, base, base+2, base+3)
	} else {
		g.Indices = append(g.Indices, base, base+2, base+1, base, base+3, base+2)
	}
}

// Empty reports whether g contains no triangles. A nil geometry is empty.
func (g *FrustumGeometry) Empty() bool {
	return g == nil || len(g.Indices) == 0
}

// NumTriangles returns the number of triangles in g.
func (g *FrustumGeometry) NumTriangles() int {
	if g == nil {
		return 0
	}
	return len(g.Indices) / 3
}

// Reversed returns the back-facing volume mesh: the same vertices with
// the index list in reverse order, which inverts the winding of every
// triangle. The vertex slice is shared with g.
func (g *FrustumGeometry) Reversed() *FrustumGeometry {
	if g == nil {
		return nil
	}
	idx := slices.Clone(g.Indices)
	slices.Reverse(idx)
	return &FrustumGeometry{Vertices: g.Vertices, Indices: idx}
}

// Triangles iterates over the triangles of g.
func (g *FrustumGeometry) Triangles() iter.Seq2[int, [3]math32.Vector3] {
	return func(yield func(int, [3]math32.Vector3) bool) {
		for i := range g.NumTriangles() {
			idx := g.Indices[3*i : 3*i+3]
			tri := [3]math32.Vector3{g.Vertices[idx[0]], g.Vertices[idx[1]], g.Vertices[idx[2]]}
			if !yield(i, tri) {
				return
			}
		}
	}
}

// Mesh returns g as a mesh with the given name. Vertex and index slices
// are shared.
func (g *FrustumGeometry) Mesh(name string) *mesh.Mesh {
	if g == nil {
		return &mesh.Mesh{Name: name}
	}
	return &mesh.Mesh{Name: name, Vertices: g.Vertices, Indices: g.Indices}
}
