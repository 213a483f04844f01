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

// Command genpdf draws the shadow volumes of the built-in scenes as
// vector graphics, one PDF file per scene.
//
// Solids are filled in dark grey. The triangles of every shadow volume
// are outlined on top, in white where they face the camera and in grey
// where they face away. Triangles which reach behind the camera are
// left out.
package main

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"cogentcore.org/core/math32"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics/color"
	"seehuhn.de/go/shadowvol"
	"seehuhn.de/go/shadowvol/scenes"
)

const outDir = "testdata/volumes"

func main() {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		panic(err)
	}

	for _, category := range slices.Sorted(maps.Keys(scenes.All)) {
		for _, sc := range scenes.All[category] {
			name := category + "_" + sc.Name
			pdfPath := filepath.Join(outDir, name+".pdf")
			if err := generatePDF(&sc, pdfPath); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
		}
	}
}

func generatePDF(sc *scenes.Case, pdfPath string) error {
	// Page size in points, one point per pixel.
	paper := &pdf.Rectangle{
		URx: float64(sc.Width),
		URy: float64(sc.Height),
	}

	page, err := document.CreateSinglePage(pdfPath, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	page.SetFillColor(color.DeviceGray(0))
	page.Rectangle(0, 0, float64(sc.Width), float64(sc.Height))
	page.Fill()

	// PDF origin is bottom-left, pixel coordinates start top-left.
	page.Transform(matrix.Matrix{1, 0, 0, -1, 0, float64(sc.Height)})

	proj := projector{cam: sc.Camera, width: sc.Width, height: sc.Height}

	page.SetFillColor(color.DeviceGray(0.3))
	for _, obj := range sc.Objects {
		for _, tri := range obj.Mesh.Triangles() {
			for k := range tri {
				tri[k] = obj.Transform.Point(tri[k])
			}
			if proj.triangle(page, tri) {
				page.Fill()
			}
		}
	}

	_, p, err := sc.Setup()
	if err != nil {
		return err
	}
	page.SetLineWidth(0.5)
	for _, occ := range p.Occluders {
		for _, l := range p.Lights {
			g := occ.Volume(l.Position, p.Extrusion)
			drawVolume(page, proj, g, false)
			drawVolume(page, proj, g, true)
		}
	}

	return page.Close()
}

// drawVolume outlines the triangles of g which face the camera, or those
// which face away if front is false.
func drawVolume(page *document.Page, proj projector, g *shadowvol.FrustumGeometry, front bool) {
	if front {
		page.SetStrokeColor(color.DeviceGray(1))
	} else {
		page.SetStrokeColor(color.DeviceGray(0.5))
	}
	for _, tri := range g.Triangles() {
		n := tri[1].Sub(tri[0]).Cross(tri[2].Sub(tri[0]))
		facing := n.Dot(proj.cam.Pos.Sub(tri[0])) > 0
		if facing != front {
			continue
		}
		if proj.triangle(page, tri) {
			page.Stroke()
		}
	}
}

type projector struct {
	cam           shadowvol.Camera
	width, height int
}

// triangle adds the projected outline of tri to the current path.
// It reports false, and leaves the path unchanged, if a corner lies
// behind the near plane.
func (p projector) triangle(page *document.Page, tri [3]math32.Vector3) bool {
	var xy [3][2]float64
	for k, v := range tri {
		x, y, ok := p.cam.Project(v, p.width, p.height)
		if !ok {
			return false
		}
		xy[k] = [2]float64{float64(x), float64(y)}
	}
	page.MoveTo(xy[0][0], xy[0][1])
	page.LineTo(xy[1][0], xy[1][1])
	page.LineTo(xy[2][0], xy[2][1])
	page.ClosePath()
	return true
}
