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

package scenes

import (
	"fmt"
	"strings"

	"cogentcore.org/core/base/errors"
)

// ErrUnknownScene is returned by [Lookup] for names not found in [All].
var ErrUnknownScene = errors.New("unknown scene")

// All contains all scenes, grouped by category.
// The full name of a scene is the category, an underscore, and the
// scene name.
var All = map[string][]Case{
	"basic":      basicCases,
	"overlap":    overlapCases,
	"degenerate": degenerateCases,
	"large":      largeCases,
}

// Lookup finds a scene by its full name, for example "basic_cube".
func Lookup(fullName string) (Case, error) {
	for category, cases := range All {
		rest, ok := strings.CutPrefix(fullName, category+"_")
		if !ok {
			continue
		}
		for _, c := range cases {
			if c.Name == rest {
				return c, nil
			}
		}
	}
	return Case{}, fmt.Errorf("%w: %q", ErrUnknownScene, fullName)
}
