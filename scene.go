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
	"fmt"

	"cogentcore.org/core/math32"
	"seehuhn.de/go/shadowvol/mesh"
)

// Light is a point light.
type Light struct {
	Position math32.Vector3

	// Intensity scales the diffuse contribution of the light when the
	// scene is shaded. It does not affect shadows.
	Intensity float32
}

// Occluder is a mesh which casts shadows.
//
// The mesh must not change after the occluder has been created.
// Pose is read at every frame. It usually points to the transform of the
// drawn object, so that the shadow follows the object when it moves.
// A nil Pose is the identity.
type Occluder struct {
	Name    string
	Mesh    *mesh.Mesh
	Pose    *mesh.Transform
	Frustum *OcclusionFrustum
}

// NewOccluder extracts the silhouette candidates of m and returns an
// occluder at the pose *pose.
// An error is returned if the mesh has out-of-range indices.
func NewOccluder(name string, m *mesh.Mesh, pose *mesh.Transform, tol Tolerance) (*Occluder, error) {
	if m != nil {
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("occluder %q: %w", name, err)
		}
	}
	return &Occluder{
		Name:    name,
		Mesh:    m,
		Pose:    pose,
		Frustum: NewOcclusionFrustum(m, tol),
	}, nil
}

// Transform returns the current pose of the occluder.
func (o *Occluder) Transform() mesh.Transform {
	if o.Pose == nil {
		return mesh.Identity()
	}
	return *o.Pose
}

// Volume builds the front-facing shadow volume of the occluder for one
// light.
func (o *Occluder) Volume(light math32.Vector3, extrusion float32) *FrustumGeometry {
	if o == nil || o.Frustum == nil {
		return &FrustumGeometry{}
	}
	return o.Frustum.Build(o.Transform(), light, extrusion)
}
