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
	"image"

	"cogentcore.org/core/math32"
	"seehuhn.de/go/shadowvol/mesh"
)

// VolumeSide selects one of the two volume meshes held by a [Renderer].
type VolumeSide int

const (
	// FrontVolume is the shadow volume with its original winding.
	FrontVolume VolumeSide = iota

	// BackVolume is the same volume with every triangle reversed.
	BackVolume
)

func (s VolumeSide) String() string {
	switch s {
	case FrontVolume:
		return "front"
	case BackVolume:
		return "back"
	default:
		return "unknown"
	}
}

// Renderer is the render service used by [Accumulator] and [Pipeline].
//
// Images returned by the render methods have the size reported by Size.
// Implementations may reuse dst if it has the right size, and must
// allocate a new image otherwise.
type Renderer interface {
	// Size returns the current output resolution in pixels.
	Size() (width, height int)

	// OverrideMaterials replaces the materials of all scene objects by a
	// material which only writes depth. The returned function restores
	// the original materials; it must be called exactly once.
	OverrideMaterials() (restore func(), err error)

	// SetVolume stores the mesh for one side of the shadow volume.
	// A nil or empty geometry removes the mesh.
	SetVolume(side VolumeSide, g *FrustumGeometry)

	// SetVolumeVisible controls whether the volume mesh for side is
	// drawn by RenderDepthOnly.
	SetVolumeVisible(side VolumeSide, visible bool)

	// RenderDepthOnly draws the scene with the material override in
	// place, followed by the visible volume meshes. Volume meshes are
	// drawn with back-face culling, tested against the depth of the
	// scene, and leave a non-zero alpha value where they are visible.
	RenderDepthOnly(cam Camera, dst *image.RGBA) (*image.RGBA, error)

	// RenderUnshadowed draws the scene with its own materials and with
	// both volume meshes hidden.
	RenderUnshadowed(cam Camera, dst *image.RGBA) (*image.RGBA, error)
}

// Camera is a perspective pinhole camera.
type Camera struct {
	Pos    math32.Vector3
	Target math32.Vector3
	Up     math32.Vector3

	// FOV is the vertical field of view in degrees.
	// Zero selects 60 degrees.
	FOV float32

	// Near is the distance of the near clipping plane.
	// Zero selects 0.05.
	Near float32
}

// Basis returns the orthonormal camera frame. If Up is parallel to the
// viewing direction, another up vector is chosen.
func (c Camera) Basis() (right, up, forward math32.Vector3) {
	forward = mesh.Normalize(c.Target.Sub(c.Pos))
	right = mesh.Normalize(forward.Cross(c.Up))
	if right == (math32.Vector3{}) {
		alt := math32.Vec3(0, 0, -1)
		if math32.Abs(forward.Z) > 0.9 {
			alt = math32.Vec3(0, 1, 0)
		}
		right = mesh.Normalize(forward.Cross(alt))
	}
	up = right.Cross(forward)
	return right, up, forward
}

// View maps a world-space point to camera coordinates: x to the right,
// y up and z along the viewing direction.
func (c Camera) View(p math32.Vector3) math32.Vector3 {
	right, up, forward := c.Basis()
	d := p.Sub(c.Pos)
	return math32.Vec3(d.Dot(right), d.Dot(up), d.Dot(forward))
}

// NearPlane returns the distance of the near clipping plane.
func (c Camera) NearPlane() float32 {
	if c.Near > 0 {
		return c.Near
	}
	return 0.05
}

// Focal returns the distance of the image plane, in pixels, for an
// image of the given height.
func (c Camera) Focal(height int) float32 {
	fov := c.FOV
	if !(fov > 0) {
		fov = 60
	}
	return float32(height) / 2 / math32.Tan(math32.DegToRad(fov)/2)
}

// ProjectView maps camera coordinates to pixel coordinates, with the
// origin in the top-left corner of the image and y pointing down.
func (c Camera) ProjectView(v math32.Vector3, width, height int) (x, y float32) {
	s := c.Focal(height)
	x = float32(width)/2 + s*v.X/v.Z
	y = float32(height)/2 - s*v.Y/v.Z
	return x, y
}

// Project maps a world-space point to pixel coordinates. The result is
// not valid if the point is closer to the camera than the near plane.
func (c Camera) Project(p math32.Vector3, width, height int) (x, y float32, ok bool) {
	v := c.View(p)
	if v.Z < c.NearPlane() {
		return 0, 0, false
	}
	x, y = c.ProjectView(v, width, height)
	return x, y, true
}
