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

package softgl

import (
	"image"
	"image/color"

	"cogentcore.org/core/math32"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/shadowvol"
	"seehuhn.de/go/shadowvol/mesh"
)

// depthBias is the relative amount by which a volume fragment must be
// closer than the stored depth to be drawn.
const depthBias = 1e-6

type mode int

const (
	modeDepth  mode = iota // depth test and write, no colour
	modeShade              // depth test and write, colour
	modeVolume             // depth test without write, colour
)

// vertex is a projected point: pixel coordinates and inverse depth.
type vertex struct {
	x, y, iz float64
}

// view holds the camera state for one render call.
type view struct {
	cam                shadowvol.Camera
	right, up, forward math32.Vector3
	near               float32
	width, height      int
	views              []math32.Vector3
	clipped            []math32.Vector3
}

// begin prepares img, the depth buffer and the camera for a new image.
func (r *Renderer) begin(cam shadowvol.Camera, dst *image.RGBA, bg color.RGBA) *image.RGBA {
	w, h := r.width, r.height
	img := fit(dst, w, h)
	for i := 0; i+3 < len(img.Pix); i += 4 {
		img.Pix[i+0] = bg.R
		img.Pix[i+1] = bg.G
		img.Pix[i+2] = bg.B
		img.Pix[i+3] = bg.A
	}
	clear(r.depth)

	r.view.cam = cam
	r.view.right, r.view.up, r.view.forward = cam.Basis()
	r.view.near = cam.NearPlane()
	r.view.width, r.view.height = w, h
	r.rast.Reset(rect.Rect{URx: float64(w), URy: float64(h)})
	return img
}

func (v *view) toView(p math32.Vector3) math32.Vector3 {
	d := p.Sub(v.cam.Pos)
	return math32.Vec3(d.Dot(v.right), d.Dot(v.up), d.Dot(v.forward))
}

// facesCamera reports whether the triangle is wound counter-clockwise
// as seen from the camera.
func (v *view) facesCamera(tri [3]math32.Vector3) bool {
	n := tri[1].Sub(tri[0]).Cross(tri[2].Sub(tri[0]))
	return n.Dot(v.cam.Pos.Sub(tri[0])) > 0
}

func (r *Renderer) drawSolidTriangle(img *image.RGBA, tri [3]math32.Vector3, m *Material) {
	if m.DepthOnly {
		r.rasterise(img, tri, modeDepth, color.RGBA{})
		return
	}
	r.rasterise(img, tri, modeShade, r.shade(tri, m.Color))
}

func (r *Renderer) drawVolume(img *image.RGBA, g *shadowvol.FrustumGeometry) {
	col := VolumeMaterial.Color
	for _, tri := range g.Triangles() {
		if !r.view.facesCamera(tri) {
			continue
		}
		r.rasterise(img, tri, modeVolume, col)
	}
}

// shade returns the flat-shaded colour of a triangle. The normal is
// turned towards the camera, so both sides are lit the same way.
func (r *Renderer) shade(tri [3]math32.Vector3, base color.RGBA) color.RGBA {
	n := mesh.FaceNormal(tri[0], tri[1], tri[2])
	c := mesh.Centroid(tri[0], tri[1], tri[2])
	if n.Dot(r.view.cam.Pos.Sub(c)) < 0 {
		n = n.MulScalar(-1)
	}

	b := r.Ambient
	for _, l := range r.Lights {
		d := mesh.Normalize(l.Position.Sub(c))
		b += l.Intensity * max(0, n.Dot(d))
	}
	b = min(max(b, 0), 1)

	return color.RGBA{
		R: uint8(float32(base.R)*b + 0.5),
		G: uint8(float32(base.G)*b + 0.5),
		B: uint8(float32(base.B)*b + 0.5),
		A: base.A,
	}
}

// rasterise clips a world-space triangle against the near plane,
// projects it and fills the resulting polygon as a triangle fan.
func (r *Renderer) rasterise(img *image.RGBA, tri [3]math32.Vector3, m mode, col color.RGBA) {
	v := &r.view
	v.views = v.views[:0]
	for _, p := range tri {
		v.views = append(v.views, v.toView(p))
	}
	v.clipped = clipNear(v.views, v.near, v.clipped[:0])
	if len(v.clipped) < 3 {
		return
	}

	r.poly = r.poly[:0]
	for _, p := range v.clipped {
		x, y := v.cam.ProjectView(p, v.width, v.height)
		r.poly = append(r.poly, vertex{x: float64(x), y: float64(y), iz: 1 / float64(p.Z)})
	}
	for i := 1; i+1 < len(r.poly); i++ {
		r.fillTriangle(img, r.poly[0], r.poly[i], r.poly[i+1], m, col)
	}
}

// clipNear clips a convex polygon in camera coordinates to z >= near.
func clipNear(in []math32.Vector3, near float32, out []math32.Vector3) []math32.Vector3 {
	for i := range in {
		a, b := in[i], in[(i+1)%len(in)]
		aIn, bIn := a.Z >= near, b.Z >= near
		if aIn {
			out = append(out, a)
		}
		if aIn != bIn {
			t := (near - a.Z) / (b.Z - a.Z)
			p := a.Add(b.Sub(a).MulScalar(t))
			p.Z = near
			out = append(out, p)
		}
	}
	return out
}

// edgeFunc is twice the signed area of the triangle (a, b, p).
func edgeFunc(a, b vertex, px, py float64) float64 {
	return (b.x-a.x)*(py-a.y) - (b.y-a.y)*(px-a.x)
}

// fillTriangle draws the pixels whose centres lie inside the triangle,
// including its edges. The coverage rasteriser supplies the candidate
// pixels; the inverse depth is interpolated linearly in screen space.
func (r *Renderer) fillTriangle(img *image.RGBA, a, b, c vertex, m mode, col color.RGBA) {
	area := edgeFunc(a, b, c.x, c.y)
	if area == 0 {
		return
	}
	sign := 1.0
	if area < 0 {
		sign, area = -1, -area
	}

	r.pts = append(r.pts[:0], vec.Vec2{X: a.x, Y: a.y}, vec.Vec2{X: b.x, Y: b.y}, vec.Vec2{X: c.x, Y: c.y})
	width := r.width
	r.rast.FillPolygon(r.pts, func(y, xMin int, coverage []float32) {
		py := float64(y) + 0.5
		for i := range coverage {
			x := xMin + i
			px := float64(x) + 0.5
			w0 := sign * edgeFunc(b, c, px, py)
			w1 := sign * edgeFunc(c, a, px, py)
			w2 := sign * edgeFunc(a, b, px, py)
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			iz := float32((w0*a.iz + w1*b.iz + w2*c.iz) / area)

			k := y*width + x
			d := r.depth[k]
			switch m {
			case modeDepth:
				if iz > d {
					r.depth[k] = iz
				}
			case modeShade:
				if iz > d {
					r.depth[k] = iz
					setPixel(img, x, y, col)
				}
			case modeVolume:
				if iz > d*(1+depthBias) {
					setPixel(img, x, y, col)
				}
			}
		}
	})
}

func setPixel(img *image.RGBA, x, y int, col color.RGBA) {
	p := img.Pix[img.PixOffset(x, y):]
	p[0], p[1], p[2], p[3] = col.R, col.G, col.B, col.A
}
