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
	"fmt"
	"io"
	"os"
	"strings"

	"cogentcore.org/core/math32"
	"github.com/g3n/engine/loader/obj"
)

// ReadOBJ reads the geometry of a Wavefront OBJ file.
//
// The faces of all objects in the file are merged into one mesh, named
// after the first object. Polygons with more than three corners are split
// into a triangle fan. Materials, texture coordinates and normals are
// ignored.
func ReadOBJ(r io.Reader) (*Mesh, error) {
	dec, err := obj.DecodeReader(r, strings.NewReader(""))
	if err != nil {
		return nil, err
	}

	m := &Mesh{}
	xyz := dec.Vertices
	for i := 0; i+2 < len(xyz); i += 3 {
		m.Vertices = append(m.Vertices, math32.Vec3(xyz[i], xyz[i+1], xyz[i+2]))
	}

	for _, ob := range dec.Objects {
		if m.Name == "" {
			m.Name = ob.Name
		}
		for _, face := range ob.Faces {
			corners := make([]uint32, len(face.Vertices))
			for k, idx := range face.Vertices {
				if idx < 0 || idx >= len(m.Vertices) {
					return nil, fmt.Errorf("%w: vertex index %d out of range", ErrInvalidMesh, idx+1)
				}
				corners[k] = uint32(idx)
			}
			for i := 1; i+1 < len(corners); i++ {
				m.Indices = append(m.Indices, corners[0], corners[i], corners[i+1])
			}
		}
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// LoadOBJ reads an OBJ file from disk.
func LoadOBJ(fname string) (m *Mesh, err error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	m, err = ReadOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return m, nil
}
