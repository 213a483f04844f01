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
	"log/slog"
)

// Accumulator fills a [StencilBuffer] by drawing the front and back faces
// of the shadow volumes of every (occluder, light) pair.
//
// The zero value is usable once Renderer is set. The transient mask
// images are kept between calls.
type Accumulator struct {
	Renderer Renderer

	// Extrusion is the distance by which silhouette edges are extruded
	// away from the light. Non-positive values give no shadows.
	Extrusion float32

	// Logger receives one debug record per (occluder, light) pair.
	// If nil, slog.Default() is used.
	Logger *slog.Logger

	front, back *image.RGBA
}

func (a *Accumulator) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}

// Accumulate resizes st to the renderer resolution, clears it, and adds
// the contributions of all pairs of occluders and lights.
//
// While the passes run, the scene materials are replaced by the depth-only
// material of the renderer. The original materials are restored, and both
// volume meshes are hidden and removed, before Accumulate returns,
// including when an error occurs.
//
// Without a renderer, occluders or lights the stencil buffer stays zero.
func (a *Accumulator) Accumulate(st *StencilBuffer, cam Camera, occluders []*Occluder, lights []Light) (err error) {
	if a.Renderer == nil {
		st.Clear()
		return nil
	}
	st.Resize(a.Renderer.Size())
	st.Clear()
	if len(occluders) == 0 || len(lights) == 0 {
		return nil
	}

	restore, err := a.Renderer.OverrideMaterials()
	if err != nil {
		return fmt.Errorf("depth-only override: %w", err)
	}
	defer restore()
	defer a.hideVolumes()

	log := a.logger()
	for _, occ := range occluders {
		if occ == nil || occ.Frustum == nil {
			continue
		}
		for j, l := range lights {
			g := occ.Volume(l.Position, a.Extrusion)
			log.Debug("shadow volume",
				"occluder", occ.Name,
				"light", j,
				"quads", g.NumTriangles()/2)
			if g.Empty() {
				continue
			}

			err := a.accumulatePair(st, cam, g)
			if err != nil {
				log.Warn("shadow volume pass failed",
					"occluder", occ.Name,
					"light", j,
					"error", err)
				return fmt.Errorf("occluder %q, light %d: %w", occ.Name, j, err)
			}
		}
	}
	return nil
}

// accumulatePair draws the front mask, then the back mask, and adds
// their difference to st.
func (a *Accumulator) accumulatePair(st *StencilBuffer, cam Camera, g *FrustumGeometry) error {
	r := a.Renderer
	r.SetVolume(FrontVolume, g)
	r.SetVolume(BackVolume, g.Reversed())

	var err error
	r.SetVolumeVisible(FrontVolume, true)
	r.SetVolumeVisible(BackVolume, false)
	a.front, err = r.RenderDepthOnly(cam, a.front)
	if err != nil {
		return fmt.Errorf("front volume: %w", err)
	}

	r.SetVolumeVisible(FrontVolume, false)
	r.SetVolumeVisible(BackVolume, true)
	a.back, err = r.RenderDepthOnly(cam, a.back)
	if err != nil {
		return fmt.Errorf("back volume: %w", err)
	}

	return st.AccumulateMasks(a.front, a.back)
}

func (a *Accumulator) hideVolumes() {
	for _, side := range []VolumeSide{FrontVolume, BackVolume} {
		a.Renderer.SetVolumeVisible(side, false)
		a.Renderer.SetVolume(side, nil)
	}
}
