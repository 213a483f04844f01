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
	"image"
)

// StencilBuffer holds one signed counter per pixel, in row-major order.
// A positive value means that the pixel lies inside at least one shadow
// volume.
type StencilBuffer struct {
	Width, Height int
	Values        []int32
}

// NewStencilBuffer returns a zeroed buffer of the given size.
func NewStencilBuffer(width, height int) *StencilBuffer {
	s := &StencilBuffer{}
	s.Resize(width, height)
	return s
}

// Resize changes the size of the buffer. If the size changes, the old
// values are discarded and all counters are zero afterwards.
func (s *StencilBuffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if s.Width == width && s.Height == height && len(s.Values) == width*height {
		return
	}
	s.Width, s.Height = width, height
	if cap(s.Values) >= width*height {
		s.Values = s.Values[:width*height]
		clear(s.Values)
	} else {
		s.Values = make([]int32, width*height)
	}
}

// Clear sets all counters to zero.
func (s *StencilBuffer) Clear() {
	clear(s.Values)
}

// At returns the counter for pixel (x, y).
func (s *StencilBuffer) At(x, y int) int32 {
	return s.Values[y*s.Width+x]
}

// AccumulateMasks adds one for every pixel where front has non-zero
// alpha, and subtracts one for every pixel where back has non-zero
// alpha. Both masks must have the size of the buffer.
func (s *StencilBuffer) AccumulateMasks(front, back *image.RGBA) error {
	if err := s.checkSize(front); err != nil {
		return err
	}
	if err := s.checkSize(back); err != nil {
		return err
	}

	fb, bb := front.Bounds(), back.Bounds()
	for y := range s.Height {
		row := s.Values[y*s.Width : (y+1)*s.Width]
		fp := front.Pix[front.PixOffset(fb.Min.X, fb.Min.Y+y):]
		bp := back.Pix[back.PixOffset(bb.Min.X, bb.Min.Y+y):]
		for x := range row {
			if fp[4*x+3] != 0 {
				row[x]++
			}
			if bp[4*x+3] != 0 {
				row[x]--
			}
		}
	}
	return nil
}

func (s *StencilBuffer) checkSize(img *image.RGBA) error {
	if img == nil {
		return fmt.Errorf("%w: missing mask", ErrSizeMismatch)
	}
	b := img.Bounds()
	if b.Dx() != s.Width || b.Dy() != s.Height {
		return fmt.Errorf("%w: mask is %dx%d, stencil is %dx%d",
			ErrSizeMismatch, b.Dx(), b.Dy(), s.Width, s.Height)
	}
	return nil
}

// Max returns the largest counter, or 0 for an empty buffer.
func (s *StencilBuffer) Max() int32 {
	var m int32
	for _, v := range s.Values {
		m = max(m, v)
	}
	return m
}

// Heatmap returns a grey-scale image of the buffer. Non-positive counters
// are black, the largest counter is white.
func (s *StencilBuffer) Heatmap() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, s.Width, s.Height))
	m := s.Max()
	if m <= 0 {
		return img
	}
	for i, v := range s.Values {
		if v > 0 {
			img.Pix[i] = uint8((int64(v)*255 + int64(m)/2) / int64(m))
		}
	}
	return img
}
