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
	"math"

	"cogentcore.org/core/math32"
	"seehuhn.de/go/shadowvol/mesh"
)

// DefaultTolerance is used for zero or negative fields of a [Tolerance].
const DefaultTolerance = 1e-4

// Tolerance gives the thresholds below which two positions, or two
// normals, are considered equal.
type Tolerance struct {
	// Vertex is the largest distance between two edge endpoints which
	// still count as the same point.
	Vertex float32

	// Normal is the largest distance between two unit normals which
	// still count as the same direction.
	Normal float32
}

func (t Tolerance) withDefaults() Tolerance {
	if !(t.Vertex > 0) {
		t.Vertex = DefaultTolerance
	}
	if !(t.Normal > 0) {
		t.Normal = DefaultTolerance
	}
	return t
}

// FaceSample describes one triangle adjoining an edge, in model space.
type FaceSample struct {
	Normal   math32.Vector3
	Centroid math32.Vector3
}

// SharedEdge is an unordered pair of model-space endpoints, together with
// the distinct faces which touch it.
//
// Faces holds one sample per distinct face normal, in the order the
// triangles were encountered. Edges with at least two samples are
// candidate silhouette edges.
type SharedEdge struct {
	A, B  math32.Vector3
	Faces []FaceSample
}

// IsCandidate reports whether the edge separates faces with different
// normals.
func (e *SharedEdge) IsCandidate() bool {
	return len(e.Faces) >= 2
}

// matches reports whether the edge connects a and b, in either direction.
func (e *SharedEdge) matches(a, b math32.Vector3, eps float32) bool {
	return near(e.A, a, eps) && near(e.B, b, eps) ||
		near(e.A, b, eps) && near(e.B, a, eps)
}

// addFace records f unless a sample with a near-equal normal is present.
func (e *SharedEdge) addFace(f FaceSample, eps float32) {
	for _, g := range e.Faces {
		if near(g.Normal, f.Normal, eps) {
			return
		}
	}
	e.Faces = append(e.Faces, f)
}

func near(a, b math32.Vector3, eps float32) bool {
	d := a.Sub(b)
	return d.Dot(d) < eps*eps
}

func faceSample(tri [3]math32.Vector3) FaceSample {
	return FaceSample{
		Normal:   mesh.FaceNormal(tri[0], tri[1], tri[2]),
		Centroid: mesh.Centroid(tri[0], tri[1], tri[2]),
	}
}

// ExtractEdges returns the candidate silhouette edges of m.
//
// Edges are matched by the positions of their endpoints, not by vertex
// index, so that meshes with split vertices (one copy per face, as needed
// for flat shading) are handled. The result is in order of first
// appearance of each edge in the index list. A nil or empty mesh gives
// no edges.
func ExtractEdges(m *mesh.Mesh, tol Tolerance) []SharedEdge {
	tol = tol.withDefaults()
	h := newEdgeHash(tol.Vertex)

	var all []SharedEdge
	for _, tri := range m.Triangles() {
		face := faceSample(tri)
		for k := range 3 {
			a, b := tri[k], tri[(k+1)%3]
			if i := h.find(all, a, b); i >= 0 {
				all[i].addFace(face, tol.Normal)
				continue
			}
			h.insert(len(all), a, b)
			all = append(all, SharedEdge{A: a, B: b, Faces: []FaceSample{face}})
		}
	}
	return candidates(all)
}

// extractEdgesNaive compares every edge with every edge seen so far.
// It gives the same result as ExtractEdges.
func extractEdgesNaive(m *mesh.Mesh, tol Tolerance) []SharedEdge {
	tol = tol.withDefaults()

	var all []SharedEdge
	for _, tri := range m.Triangles() {
		face := faceSample(tri)
		for k := range 3 {
			a, b := tri[k], tri[(k+1)%3]
			found := false
			for i := range all {
				if all[i].matches(a, b, tol.Vertex) {
					all[i].addFace(face, tol.Normal)
					found = true
					break
				}
			}
			if !found {
				all = append(all, SharedEdge{A: a, B: b, Faces: []FaceSample{face}})
			}
		}
	}
	return candidates(all)
}

func candidates(all []SharedEdge) []SharedEdge {
	var res []SharedEdge
	for _, e := range all {
		if e.IsCandidate() {
			res = append(res, e)
		}
	}
	return res
}

// cellKey identifies one cube of the spatial hash.
type cellKey [3]int64

// edgeHash indexes stored edges by the grid cells of both endpoints.
// Cells are twice as wide as the vertex tolerance, so two points closer
// than the tolerance always lie in the same or in adjacent cells.
type edgeHash struct {
	eps   float32
	inv   float64 // 1 / cell size
	cells map[cellKey][]int
}

func newEdgeHash(eps float32) *edgeHash {
	return &edgeHash{
		eps:   eps,
		inv:   1 / (2 * float64(eps)),
		cells: make(map[cellKey][]int),
	}
}

func (h *edgeHash) key(p math32.Vector3) cellKey {
	return cellKey{
		int64(math.Floor(float64(p.X) * h.inv)),
		int64(math.Floor(float64(p.Y) * h.inv)),
		int64(math.Floor(float64(p.Z) * h.inv)),
	}
}

func (h *edgeHash) insert(i int, a, b math32.Vector3) {
	ka, kb := h.key(a), h.key(b)
	h.cells[ka] = append(h.cells[ka], i)
	if kb != ka {
		h.cells[kb] = append(h.cells[kb], i)
	}
}

// find returns the index of the earliest stored edge matching (a, b),
// or -1. Every match has an endpoint near a, so only the cells around a
// need to be searched.
func (h *edgeHash) find(all []SharedEdge, a, b math32.Vector3) int {
	best := -1
	k := h.key(a)
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for dz := int64(-1); dz <= 1; dz++ {
				for _, i := range h.cells[cellKey{k[0] + dx, k[1] + dy, k[2] + dz}] {
					if best >= 0 && i >= best {
						break
					}
					if all[i].matches(a, b, h.eps) {
						best = i
						break
					}
				}
			}
		}
	}
	return best
}
