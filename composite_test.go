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
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestComposite(t *testing.T) {
	src := solidImage(3, 1, color.RGBA{200, 101, 7, 128})
	st := NewStencilBuffer(3, 1)
	copy(st.Values, []int32{0, 1, 5})

	c := &Compositor{ShadowMultiplier: 0.5}
	dst, mask, err := c.Composite(nil, nil, src, st)
	require.NoError(t, err)

	assert.Equal(t, color.RGBA{200, 101, 7, 128}, dst.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{100, 51, 4, 255}, dst.RGBAAt(1, 0))
	assert.Equal(t, color.RGBA{100, 51, 4, 255}, dst.RGBAAt(2, 0))

	assert.Equal(t, color.RGBA{}, mask.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, mask.RGBAAt(1, 0))
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, mask.RGBAAt(2, 0))

	// the source is not modified
	assert.Equal(t, color.RGBA{200, 101, 7, 128}, src.RGBAAt(1, 0))
}

func TestCompositeFalloff(t *testing.T) {
	c := &Compositor{
		ShadowMultiplier: 0.5,
		Falloff:          &Falloff{K: 0.25, MinBrightness: 0.3},
	}
	assert.Equal(t, float32(1), c.Factor(0))
	assert.Equal(t, float32(1), c.Factor(-2))
	assert.Equal(t, float32(0.75), c.Factor(1))
	assert.Equal(t, float32(0.5), c.Factor(2))
	assert.Equal(t, float32(0.3), c.Factor(3))
	assert.Equal(t, float32(0.3), c.Factor(10))

	src := solidImage(2, 1, color.RGBA{200, 200, 200, 255})
	st := NewStencilBuffer(2, 1)
	copy(st.Values, []int32{1, 2})
	dst, _, err := c.Composite(nil, nil, src, st)
	require.NoError(t, err)
	assert.Equal(t, uint8(150), dst.Pix[0])
	assert.Equal(t, uint8(100), dst.Pix[4])
}

// TestCompositeIdentity checks that an empty stencil buffer leaves the
// image unchanged.
func TestCompositeIdentity(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 5, 4))
	for i := range src.Pix {
		src.Pix[i] = uint8(i * 7)
	}
	st := NewStencilBuffer(5, 4)
	c := &Compositor{ShadowMultiplier: 0}

	dst, mask, err := c.Composite(nil, nil, src, st)
	require.NoError(t, err)
	assert.Equal(t, src.Pix, dst.Pix)
	assert.Equal(t, make([]uint8, len(mask.Pix)), mask.Pix)
}

func TestCompositeReuse(t *testing.T) {
	src := solidImage(4, 4, color.RGBA{10, 20, 30, 255})
	st := NewStencilBuffer(4, 4)
	st.Values[0] = 1
	c := &Compositor{ShadowMultiplier: 0}

	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))
	mask := image.NewRGBA(image.Rect(0, 0, 4, 4))
	dst2, mask2, err := c.Composite(dst, mask, src, st)
	require.NoError(t, err)
	assert.Same(t, dst, dst2)
	assert.Same(t, mask, mask2)
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, dst.RGBAAt(0, 0))

	// mask pixels from an earlier call are cleared
	st.Values[0] = 0
	_, _, err = c.Composite(dst, mask, src, st)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{}, mask.RGBAAt(0, 0))

	// buffers of the wrong size are replaced
	small := image.NewRGBA(image.Rect(0, 0, 2, 2))
	dst3, _, err := c.Composite(small, nil, src, st)
	require.NoError(t, err)
	assert.NotSame(t, small, dst3)
	assert.Equal(t, src.Rect, dst3.Rect)
}

func TestCompositeSizeMismatch(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	c := &Compositor{ShadowMultiplier: 0.5}
	_, _, err := c.Composite(nil, nil, src, NewStencilBuffer(4, 3))
	assert.ErrorIs(t, err, ErrSizeMismatch)
}

func TestScale(t *testing.T) {
	assert.Equal(t, uint8(0), scale(255, 0))
	assert.Equal(t, uint8(255), scale(255, 1))
	assert.Equal(t, uint8(128), scale(255, 0.5))
	assert.Equal(t, uint8(255), scale(200, 2))
	assert.Equal(t, uint8(0), scale(200, -1))
}
