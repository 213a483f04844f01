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

// Command render draws scenes with shadow volumes and writes the results
// as PNG images.
//
// For every scene four images are written: the shadowed frame, the frame
// without shadows, the shadow mask, and a heat map of the stencil buffer.
package main

import (
	"fmt"
	"image"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/iox/imagex"
	"cogentcore.org/core/base/logx"
	"cogentcore.org/core/cli"
	"seehuhn.de/go/shadowvol"
	"seehuhn.de/go/shadowvol/scenes"
)

// Config holds the command line options.
type Config struct {

	// Scene is the full name of a built-in scene, for example basic_cube,
	// or the name of a TOML scene file. If empty, all built-in scenes
	// are drawn.
	Scene string `posarg:"0" required:"-"`

	// Output is the directory the images are written to.
	Output string `flag:"o,output" default:"."`

	// Width and Height override the image size of the scene.
	Width  int
	Height int

	// Multiplier scales the colour of shadowed pixels.
	Multiplier float32 `default:"0.5"`

	// Falloff, if positive, darkens pixels inside several shadow volumes
	// by this amount per volume, down to MinBrightness.
	Falloff       float32
	MinBrightness float32 `default:"0.2"`

	// Verbose reports every rendered scene.
	Verbose bool `flag:"v,verbose"`

	// VeryVerbose also reports every shadow volume.
	VeryVerbose bool `flag:"vv,very-verbose"`

	// Quiet only reports errors.
	Quiet bool `flag:"q,quiet"`
}

func main() {
	opts := cli.DefaultOptions("render", "Render scenes with stencil shadow volumes.")
	cli.Run(opts, &Config{}, Render)
}

// Render draws the selected scenes.
func Render(c *Config) error { //cli:cmd -root
	level := logx.LevelFromFlags(c.VeryVerbose, c.Verbose, c.Quiet)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cases, err := selectScenes(c.Scene)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(c.Output, 0o755); err != nil {
		return err
	}

	var errs []error
	for _, sc := range cases {
		if err := c.render(sc, logger); err != nil {
			errs = append(errs, errors.Log(fmt.Errorf("%s: %w", sc.Name, err)))
		}
	}
	return errors.Join(errs...)
}

// selectScenes returns the scenes named by arg. Built-in scenes are
// renamed to their full names.
func selectScenes(arg string) ([]*scenes.Case, error) {
	switch {
	case arg == "":
		var res []*scenes.Case
		for _, category := range slices.Sorted(maps.Keys(scenes.All)) {
			for _, sc := range scenes.All[category] {
				sc.Name = category + "_" + sc.Name
				res = append(res, &sc)
			}
		}
		return res, nil
	case strings.HasSuffix(arg, ".toml"):
		sc, err := scenes.Load(arg)
		if err != nil {
			return nil, err
		}
		if sc.Name == "" {
			sc.Name = strings.TrimSuffix(filepath.Base(arg), ".toml")
		}
		return []*scenes.Case{sc}, nil
	default:
		sc, err := scenes.Lookup(arg)
		if err != nil {
			return nil, err
		}
		sc.Name = arg
		return []*scenes.Case{&sc}, nil
	}
}

func (c *Config) render(sc *scenes.Case, logger *slog.Logger) error {
	if c.Width > 0 {
		sc.Width = c.Width
	}
	if c.Height > 0 {
		sc.Height = c.Height
	}

	_, p, err := sc.Setup()
	if err != nil {
		return err
	}
	p.ShadowMultiplier = c.Multiplier
	p.Logger = logger.With("scene", sc.Name)
	if c.Falloff > 0 {
		p.Falloff = &shadowvol.Falloff{K: c.Falloff, MinBrightness: c.MinBrightness}
	}

	frame, err := p.Frame(sc.Camera)
	if err != nil {
		return err
	}

	images := []struct {
		suffix string
		img    image.Image
	}{
		{"", frame.Shadowed},
		{"_unshadowed", frame.Unshadowed},
		{"_mask", frame.Mask},
		{"_stencil", frame.Stencil.Heatmap()},
	}
	for _, im := range images {
		fname := filepath.Join(c.Output, sc.Name+im.suffix+".png")
		if err := imagex.Save(im.img, fname); err != nil {
			return err
		}
	}
	logger.Info("rendered",
		"scene", sc.Name,
		"size", fmt.Sprintf("%dx%d", sc.Width, sc.Height),
		"occluders", len(p.Occluders),
		"lights", len(p.Lights),
		"max_stencil", frame.Stencil.Max())
	return nil
}
