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

// Command export writes the shadow volumes of all built-in scenes to JSON,
// for comparison with other implementations.
// Run from the module root directory.
package main

import (
	"encoding/json"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"cogentcore.org/core/cli"
	"cogentcore.org/core/math32"
	"seehuhn.de/go/shadowvol"
	"seehuhn.de/go/shadowvol/scenes"
)

// Config holds the command line options.
type Config struct {

	// Output is the name of the JSON file.
	Output string `flag:"o,output" default:"testdata/frusta.json"`
}

func main() {
	opts := cli.DefaultOptions("export", "Write the shadow volumes of all built-in scenes to JSON.")
	cli.Run(opts, &Config{}, Export)
}

// Export writes the JSON file.
func Export(c *Config) error { //cli:cmd -root
	var out struct {
		Scenes []jsonScene `json:"scenes"`
	}

	for _, category := range slices.Sorted(maps.Keys(scenes.All)) {
		for _, sc := range scenes.All[category] {
			js, err := toJSON(category, &sc)
			if err != nil {
				return err
			}
			out.Scenes = append(out.Scenes, js)
		}
	}

	if err := os.MkdirAll(filepath.Dir(c.Output), 0755); err != nil {
		return err
	}
	f, err := os.Create(c.Output)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

type jsonScene struct {
	Name      string       `json:"name"`
	Width     int          `json:"width"`
	Height    int          `json:"height"`
	Extrusion float32      `json:"extrusion"`
	Volumes   []jsonVolume `json:"volumes"`
}

type jsonVolume struct {
	Occluder string       `json:"occluder"`
	Light    [3]float32   `json:"light"`
	Edges    int          `json:"candidate_edges"`
	Vertices [][3]float32 `json:"vertices"`
	Indices  []uint32     `json:"indices"`
}

func toJSON(category string, sc *scenes.Case) (jsonScene, error) {
	_, p, err := sc.Setup()
	if err != nil {
		return jsonScene{}, err
	}
	js := jsonScene{
		Name:      category + "_" + sc.Name,
		Width:     sc.Width,
		Height:    sc.Height,
		Extrusion: p.Extrusion,
	}
	for _, occ := range p.Occluders {
		for _, l := range p.Lights {
			js.Volumes = append(js.Volumes, volumeToJSON(occ, l, p.Extrusion))
		}
	}
	return js, nil
}

func volumeToJSON(occ *shadowvol.Occluder, l shadowvol.Light, extrusion float32) jsonVolume {
	g := occ.Volume(l.Position, extrusion)
	jv := jsonVolume{
		Occluder: occ.Name,
		Light:    vec(l.Position),
		Edges:    len(occ.Frustum.Edges),
		Vertices: make([][3]float32, len(g.Vertices)),
		Indices:  g.Indices,
	}
	for i, v := range g.Vertices {
		jv.Vertices[i] = vec(v)
	}
	if jv.Indices == nil {
		jv.Indices = []uint32{}
	}
	return jv
}

func vec(v math32.Vector3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}
