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

package raster

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"testing"

	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

const ringSegments = 64

// ringPoints returns a regular polygon approximating a circle.
// Clockwise rings reverse the direction of travel.
func ringPoints(cx, cy, radius float64, clockwise bool) []vec.Vec2 {
	pts := make([]vec.Vec2, ringSegments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / ringSegments
		if clockwise {
			a = -a
		}
		pts[i] = vec.Vec2{X: cx + radius*math.Cos(a), Y: cy + radius*math.Sin(a)}
	}
	return pts
}

// ringPath builds an annulus: outer ring one way, inner ring the other.
func ringPath(cx, cy, outer, inner float64) *path.Data {
	p := &path.Data{}
	for _, ring := range [][]vec.Vec2{
		ringPoints(cx, cy, outer, false),
		ringPoints(cx, cy, inner, true),
	} {
		p.MoveTo(ring[0])
		for _, pt := range ring[1:] {
			p.LineTo(pt)
		}
		p.Close()
	}
	return p
}

// BenchmarkRasteriserRing measures the polygon fill of an annulus.
func BenchmarkRasteriserRing(b *testing.B) {
	for _, size := range []int{20, 200, 2000} {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			clip := rect.Rect{URx: float64(size), URy: float64(size)}
			r := NewRasteriser(clip)
			dst := image.NewAlpha(image.Rect(0, 0, size, size))

			c := float64(size) / 2
			ring := ringPath(c, c, float64(size)*0.45, float64(size)*0.30)

			b.ReportAllocs()
			for b.Loop() {
				r.Reset(clip)
				r.Fill(ring, func(y, xMin int, coverage []float32) {
					row := dst.Pix[y*dst.Stride+xMin:]
					for i, v := range coverage {
						row[i] = uint8(v * 255)
					}
				})
			}
		})
	}
}

// BenchmarkVectorRing draws the same annulus with x/image/vector.
func BenchmarkVectorRing(b *testing.B) {
	for _, size := range []int{20, 200, 2000} {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			r := vector.NewRasterizer(size, size)
			dst := image.NewAlpha(image.Rect(0, 0, size, size))
			src := image.NewUniform(color.Alpha{A: 255})

			c := float64(size) / 2
			outer := ringPoints(c, c, float64(size)*0.45, false)
			inner := ringPoints(c, c, float64(size)*0.30, true)

			b.ReportAllocs()
			for b.Loop() {
				r.Reset(size, size)
				for _, ring := range [][]vec.Vec2{outer, inner} {
					r.MoveTo(float32(ring[0].X), float32(ring[0].Y))
					for _, pt := range ring[1:] {
						r.LineTo(float32(pt.X), float32(pt.Y))
					}
					r.ClosePath()
				}
				r.Draw(dst, dst.Bounds(), src, image.Point{})
			}
		})
	}
}

// BenchmarkTriangleSpans measures the per-triangle cost which dominates
// mask rendering: many small triangles, one Fill call each.
func BenchmarkTriangleSpans(b *testing.B) {
	const size = 256
	clip := rect.Rect{URx: size, URy: size}
	r := NewRasteriser(clip)
	var tris [][]vec.Vec2
	for i := range 200 {
		x := float64(i%20) * 12
		y := float64(i/20) * 24
		tris = append(tris, []vec.Vec2{{X: x, Y: y}, {X: x + 15, Y: y + 3}, {X: x + 4, Y: y + 20}})
	}
	var n int
	emit := func(y, xMin int, coverage []float32) { n += len(coverage) }

	b.ReportAllocs()
	for b.Loop() {
		for _, tri := range tris {
			r.FillPolygon(tri, emit)
		}
	}
}
