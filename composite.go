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

	"cogentcore.org/core/base/errors"
)

// ErrSizeMismatch is returned when a stencil buffer and an image which
// should describe the same pixels have different sizes.
var ErrSizeMismatch = errors.New("buffer size mismatch")

// Falloff makes the shadow darker for pixels inside several volumes:
// the colour is scaled by max(MinBrightness, 1 - K*stencil).
type Falloff struct {
	K             float32
	MinBrightness float32
}

// Compositor applies a stencil buffer to an unshadowed image.
type Compositor struct {
	// ShadowMultiplier scales the colour of pixels in shadow.
	ShadowMultiplier float32

	// Falloff, if set, replaces ShadowMultiplier by a factor which
	// depends on the stencil value.
	Falloff *Falloff
}

// Factor returns the colour scale for a pixel with stencil value v.
func (c *Compositor) Factor(v int32) float32 {
	switch {
	case v <= 0:
		return 1
	case c.Falloff != nil:
		return max(c.Falloff.MinBrightness, 1-c.Falloff.K*float32(v))
	default:
		return c.ShadowMultiplier
	}
}

// Composite writes the shadowed image to dst and the shadow mask to mask
// and returns both. If dst or mask is nil or does not have the size of
// src, a new image is allocated. The stencil buffer must have the size
// of src.
//
// Pixels with a positive stencil value have their colour scaled and are
// made opaque. All other pixels are copied unchanged. The mask is opaque
// black in shadow and transparent elsewhere.
func (c *Compositor) Composite(dst, mask, src *image.RGBA, st *StencilBuffer) (*image.RGBA, *image.RGBA, error) {
	sb := src.Bounds()
	w, h := sb.Dx(), sb.Dy()
	if st.Width != w || st.Height != h {
		return dst, mask, fmt.Errorf("%w: image is %dx%d, stencil is %dx%d",
			ErrSizeMismatch, w, h, st.Width, st.Height)
	}
	dst = fit(dst, w, h)
	mask = fit(mask, w, h)

	for y := range h {
		sp := src.Pix[src.PixOffset(sb.Min.X, sb.Min.Y+y):]
		dp := dst.Pix[y*dst.Stride:]
		mp := mask.Pix[y*mask.Stride:]
		for x := range w {
			v := st.Values[y*w+x]
			s := sp[4*x : 4*x+4 : 4*x+4]
			d := dp[4*x : 4*x+4 : 4*x+4]
			m := mp[4*x : 4*x+4 : 4*x+4]
			m[0], m[1], m[2] = 0, 0, 0
			if v <= 0 {
				copy(d, s)
				m[3] = 0
				continue
			}
			f := c.Factor(v)
			d[0] = scale(s[0], f)
			d[1] = scale(s[1], f)
			d[2] = scale(s[2], f)
			d[3] = 255
			m[3] = 255
		}
	}
	return dst, mask, nil
}

// fit returns img if it is a w×h image with origin (0, 0), and a new
// image otherwise.
func fit(img *image.RGBA, w, h int) *image.RGBA {
	if img != nil && img.Rect == image.Rect(0, 0, w, h) {
		return img
	}
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

// scale multiplies a colour component by f and rounds to the nearest
// integer, clamping to [0, 255].
func scale(c uint8, f float32) uint8 {
	v := float32(c)*f + 0.5
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}
