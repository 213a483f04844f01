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

// Package raster scan-converts polygons into per-row coverage spans.
//
// The output is an anti-aliased coverage value per pixel. Callers which
// need a hard pixel decision (for example a pixel-centre test with depth
// interpolation) use the emitted spans to limit the pixels they look at.
package raster

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// EmitFunc receives the coverage of one pixel row. coverage[i] belongs to
// pixel (xMin+i, y). The slice is only valid during the call.
type EmitFunc func(y, xMin int, coverage []float32)

// segment is a non-horizontal polygon edge in device coordinates.
type segment struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64 // (x1-x0)/(y1-y0)
}

func (s *segment) top() float64    { return min(s.y0, s.y1) }
func (s *segment) bottom() float64 { return max(s.y0, s.y1) }

// xAt returns the x coordinate of the line through s at height y.
func (s *segment) xAt(y float64) float64 {
	return s.x0 + s.dxdy*(y-s.y0)
}

// Rasteriser converts polygons to pixel coverage using the nonzero
// winding rule. One instance is meant to be reused for many polygons;
// its buffers grow as needed and are kept between calls.
type Rasteriser struct {
	// CTM maps input coordinates to device pixels.
	// Must be a non-singular matrix.
	CTM matrix.Matrix

	// Clip is the output region in device pixels.
	// Must have integer-aligned coordinates.
	Clip rect.Rect

	// bufferAreaLimit is the largest bounding box area (in pixels) for
	// which all rows are accumulated at once. Larger polygons are swept
	// one row at a time with an active segment list.
	bufferAreaLimit int

	segs      []segment
	active    []int
	cover     []float32 // signed vertical extent per pixel; reused as output
	area      []float32 // cover weighted by the uncovered part of the pixel
	rowFirst  []int
	rowLast   []int
	crossings []float64

	hasBBox        bool
	bbXMin, bbXMax float64
	bbYMin, bbYMax float64
}

// NewRasteriser returns a Rasteriser for the given clip rectangle with
// the identity CTM.
func NewRasteriser(clip rect.Rect) *Rasteriser {
	return &Rasteriser{
		CTM:             matrix.Identity,
		Clip:            clip,
		bufferAreaLimit: defaultBufferAreaLimit,
	}
}

// Reset prepares the Rasteriser for a new clip rectangle, resets the CTM
// and keeps the buffer capacity.
func (r *Rasteriser) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.segs = r.segs[:0]
	r.active = r.active[:0]
	r.cover = r.cover[:0]
	r.area = r.area[:0]
	r.rowFirst = r.rowFirst[:0]
	r.rowLast = r.rowLast[:0]
	r.crossings = r.crossings[:0]
}

// FillPolygon fills the closed polygon through pts.
func (r *Rasteriser) FillPolygon(pts []vec.Vec2, emit EmitFunc) {
	r.startSegments()
	if len(pts) < 3 {
		return
	}
	for i := range pts {
		r.addSegment(pts[i], pts[(i+1)%len(pts)])
	}
	r.sweep(emit)
}

// Fill fills all subpaths of p. Outlines are expected to consist of
// straight segments; curve segments are replaced by their chord.
func (r *Rasteriser) Fill(p *path.Data, emit EmitFunc) {
	r.startSegments()

	var current, start vec.Vec2
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			if current != start {
				r.addSegment(current, start)
			}
			current = p.Coords[k]
			start = current
			k++
		case path.CmdLineTo:
			r.addSegment(current, p.Coords[k])
			current = p.Coords[k]
			k++
		case path.CmdQuadTo:
			r.addSegment(current, p.Coords[k+1])
			current = p.Coords[k+1]
			k += 2
		case path.CmdCubeTo:
			r.addSegment(current, p.Coords[k+2])
			current = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			if current != start {
				r.addSegment(current, start)
			}
			current = start
		}
	}
	if current != start {
		r.addSegment(current, start)
	}
	r.sweep(emit)
}

func (r *Rasteriser) startSegments() {
	r.segs = r.segs[:0]
	r.hasBBox = false
}

// addSegment transforms the segment a-b to device space and stores it,
// unless it is horizontal.
func (r *Rasteriser) addSegment(a, b vec.Vec2) {
	m := r.CTM
	x0 := m[0]*a.X + m[2]*a.Y + m[4]
	y0 := m[1]*a.X + m[3]*a.Y + m[5]
	x1 := m[0]*b.X + m[2]*b.Y + m[4]
	y1 := m[1]*b.X + m[3]*b.Y + m[5]

	dy := y1 - y0
	if math.Abs(dy) < horizontalEdgeThreshold {
		return
	}
	r.segs = append(r.segs, segment{x0: x0, y0: y0, x1: x1, y1: y1, dxdy: (x1 - x0) / dy})

	if !r.hasBBox {
		r.bbXMin, r.bbXMax = min(x0, x1), max(x0, x1)
		r.bbYMin, r.bbYMax = min(y0, y1), max(y0, y1)
		r.hasBBox = true
		return
	}
	r.bbXMin = min(r.bbXMin, x0, x1)
	r.bbXMax = max(r.bbXMax, x0, x1)
	r.bbYMin = min(r.bbYMin, y0, y1)
	r.bbYMax = max(r.bbYMax, y0, y1)
}

// pixelBounds returns the clipped integer bounding box of the stored
// segments.
func (r *Rasteriser) pixelBounds() (xMin, xMax, yMin, yMax int, ok bool) {
	if len(r.segs) == 0 {
		return 0, 0, 0, 0, false
	}
	xMin = max(int(math.Floor(r.bbXMin)), int(r.Clip.LLx))
	xMax = min(int(math.Floor(r.bbXMax))+1, int(r.Clip.URx))
	yMin = max(int(math.Floor(r.bbYMin)), int(r.Clip.LLy))
	yMax = min(int(math.Floor(r.bbYMax))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return 0, 0, 0, 0, false
	}
	return xMin, xMax, yMin, yMax, true
}

func (r *Rasteriser) sweep(emit EmitFunc) {
	xMin, xMax, yMin, yMax, ok := r.pixelBounds()
	if !ok {
		return
	}
	if (xMax-xMin)*(yMax-yMin) < r.bufferAreaLimit {
		r.sweepBuffered(xMin, xMax, yMin, yMax, emit)
	} else {
		r.sweepActive(xMin, xMax, yMin, yMax, emit)
	}
}

// Each pixel keeps two accumulators.  A segment piece of height dy which
// crosses the pixel at horizontal offset f (0 = left border) adds
//
//	cover += sign*dy
//	area  += sign*dy*(1-f)
//
// Scanning a row from left to right, the coverage of pixel i is the
// running sum of cover over pixels left of i plus area[i].  This is the
// signed area of the polygon inside the pixel.

// accumulate adds the part of s inside row y to cover and area, which
// span pixel columns [xMin, xMax).  Pieces left of xMin are added to the
// first column, so that the running sum stays correct.
func (r *Rasteriser) accumulate(s *segment, y int, cover, area []float32, xMin, xMax int) {
	yTop := max(float64(y), s.top())
	yBot := min(float64(y+1), s.bottom())
	if yBot <= yTop {
		return
	}

	sign := float32(1)
	if s.y1 < s.y0 {
		sign = -1
	}

	xa, xb := s.xAt(yTop), s.xAt(yBot)
	left := int(math.Floor(min(xa, xb)))
	right := int(math.Floor(max(xa, xb)))

	if right < xMin {
		c := sign * float32(yBot-yTop)
		cover[0] += c
		area[0] += c
		return
	}
	if left >= xMax {
		return
	}

	// Split the piece where it crosses vertical pixel borders.  Borders
	// outside [xMin, xMax] do not change the result.
	r.crossings = append(r.crossings[:0], yTop, yBot)
	if left != right {
		dydx := 1 / s.dxdy
		for x := max(left+1, xMin); x <= min(right, xMax); x++ {
			yx := s.y0 + dydx*(float64(x)-s.x0)
			if yx > yTop && yx < yBot {
				r.crossings = append(r.crossings, yx)
			}
		}
		slices.Sort(r.crossings)
	}

	for i := 1; i < len(r.crossings); i++ {
		y0, y1 := r.crossings[i-1], r.crossings[i]
		if y1 <= y0 {
			continue
		}
		c := sign * float32(y1-y0)
		xm := s.xAt((y0 + y1) / 2)
		pix := int(math.Floor(xm))
		switch {
		case pix < xMin:
			cover[0] += c
			area[0] += c
		case pix < xMax:
			k := pix - xMin
			cover[k] += c
			area[k] += c * float32(1-(xm-float64(pix)))
		}
	}
}

// column returns the clamped pixel column, relative to xMin, where s
// passes through the middle of its piece in row y.
func column(s *segment, y, xMin, xMax int) (int, bool) {
	yTop := max(float64(y), s.top())
	yBot := min(float64(y+1), s.bottom())
	if yBot <= yTop {
		return 0, false
	}
	x := int(math.Floor(s.xAt((yTop + yBot) / 2)))
	return min(max(x, xMin), xMax-1) - xMin, true
}

// resolve turns the accumulators of one row into nonzero-rule coverage,
// in place in cover.
func resolve(cover, area []float32) {
	var sum float32
	for i := range cover {
		v := sum + area[i]
		sum += cover[i]
		if v < 0 {
			v = -v
		}
		cover[i] = min(v, 1)
	}
}

// emitTrimmed passes the non-zero part of a resolved row to emit.
func emitTrimmed(y, xMin int, coverage []float32, emit EmitFunc) {
	lo, hi := 0, len(coverage)
	for lo < hi && coverage[lo] == 0 {
		lo++
	}
	for hi > lo && coverage[hi-1] == 0 {
		hi--
	}
	if lo < hi {
		emit(y, xMin+lo, coverage[lo:hi])
	}
}

// sweepBuffered accumulates all rows of the bounding box at once.
func (r *Rasteriser) sweepBuffered(xMin, xMax, yMin, yMax int, emit EmitFunc) {
	width := xMax - xMin
	height := yMax - yMin

	n := width * height
	r.cover = slices.Grow(r.cover[:0], n)[:n]
	r.area = slices.Grow(r.area[:0], n)[:n]
	clear(r.cover)
	clear(r.area)

	r.rowFirst = slices.Grow(r.rowFirst[:0], height)[:height]
	r.rowLast = slices.Grow(r.rowLast[:0], height)[:height]
	for i := range height {
		r.rowFirst[i] = width
		r.rowLast[i] = -1
	}

	for i := range r.segs {
		s := &r.segs[i]
		y0 := max(int(math.Floor(s.top())), yMin)
		y1 := min(int(math.Floor(s.bottom()))+1, yMax)
		for y := y0; y < y1; y++ {
			row := y - yMin
			off := row * width
			r.accumulate(s, y, r.cover[off:off+width], r.area[off:off+width], xMin, xMax)
			if x, ok := column(s, y, xMin, xMax); ok {
				r.rowFirst[row] = min(r.rowFirst[row], x)
				r.rowLast[row] = max(r.rowLast[row], x)
			}
		}
	}

	for row := range height {
		if r.rowLast[row] < 0 {
			continue
		}
		off := row * width
		coverage := r.cover[off : off+width]
		resolve(coverage, r.area[off:off+width])
		emitTrimmed(yMin+row, xMin, coverage, emit)
	}
}

// sweepActive processes one row at a time, keeping a list of the
// segments which intersect the current row.
func (r *Rasteriser) sweepActive(xMin, xMax, yMin, yMax int, emit EmitFunc) {
	width := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.segs, func(a, b segment) int {
		return cmp.Compare(a.top(), b.top())
	})

	r.active = r.active[:0]
	next := 0
	for y := yMin; y < yMax; y++ {
		yf := float64(y)
		for next < len(r.segs) && r.segs[next].top() < yf+1 {
			r.active = append(r.active, next)
			next++
		}
		if len(r.active) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		touched := false
		for i := 0; i < len(r.active); {
			s := &r.segs[r.active[i]]
			if s.bottom() <= yf {
				last := len(r.active) - 1
				r.active[i] = r.active[last]
				r.active = r.active[:last]
				continue
			}
			r.accumulate(s, y, r.cover, r.area, xMin, xMax)
			if _, ok := column(s, y, xMin, xMax); ok {
				touched = true
			}
			i++
		}
		if !touched {
			continue
		}

		resolve(r.cover, r.area)
		emitTrimmed(y, xMin, r.cover, emit)
	}
}

const (
	// horizontalEdgeThreshold is the smallest vertical extent of a segment
	// which contributes to coverage.
	horizontalEdgeThreshold = 1e-10

	// defaultBufferAreaLimit selects between the buffered sweep and the
	// active-segment sweep.
	defaultBufferAreaLimit = 65536
)
