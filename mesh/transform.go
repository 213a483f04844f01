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

// Transform maps model space to world space: scale first, then rotate,
// then translate. All scale components must be non-zero.
type Transform struct {
	Pos   math32.Vector3
	Rot   math32.Quat
	Scale math32.Vector3
}

// Identity returns the transform which leaves all points unchanged.
func Identity() Transform {
	return Transform{
		Rot:   math32.Quat{W: 1},
		Scale: math32.Vec3(1, 1, 1),
	}
}

// Translate returns a pure translation.
func Translate(x, y, z float32) Transform {
	t := Identity()
	t.Pos = math32.Vec3(x, y, z)
	return t
}

// Rotated returns a copy of t with an additional rotation by angle
// (in degrees) about axis, applied after the existing rotation.
func (t Transform) Rotated(axis math32.Vector3, angle float32) Transform {
	q := math32.NewQuatAxisAngle(Normalize(axis), math32.DegToRad(angle))
	q.SetMul(t.Rot)
	t.Rot = q
	return t
}

// Scaled returns a copy of t with the scale multiplied component-wise by s.
func (t Transform) Scaled(sx, sy, sz float32) Transform {
	t.Scale = math32.Vec3(t.Scale.X*sx, t.Scale.Y*sy, t.Scale.Z*sz)
	return t
}

// Moved returns a copy of t translated by d in world space.
func (t Transform) Moved(d math32.Vector3) Transform {
	t.Pos = t.Pos.Add(d)
	return t
}

// Point maps a model-space position to world space.
func (t Transform) Point(p math32.Vector3) math32.Vector3 {
	s := math32.Vec3(p.X*t.Scale.X, p.Y*t.Scale.Y, p.Z*t.Scale.Z)
	return s.MulQuat(t.Rot).Add(t.Pos)
}

// Normal maps a model-space normal to a unit world-space normal.
// The zero vector stays zero.
func (t Transform) Normal(n math32.Vector3) math32.Vector3 {
	s := math32.Vec3(n.X/t.Scale.X, n.Y/t.Scale.Y, n.Z/t.Scale.Z)
	return Normalize(s.MulQuat(t.Rot))
}
