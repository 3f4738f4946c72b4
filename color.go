// seehuhn.de/go/pdfview - annotation comment synchronization for PDF viewers
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

package pdfview

import (
	"fmt"
	"math"
)

// Color is an annotation color in a form the indicator layer can render
// directly: device RGB components plus an opacity, all in the range [0, 1].
type Color struct {
	R, G, B float64
	Opacity float64
}

// NormalizeColor converts an annotation color array to a renderable Color.
// Annotation dictionaries store colors as arrays of 0, 1, 3 or 4 numbers
// (transparent, DeviceGray, DeviceRGB and DeviceCMYK, respectively); both
// raw annotation records and live editors report this form.
//
// The opacity argument is the annotation's stroking opacity; values outside
// (0, 1] are treated as "not set" and default to fully opaque.
//
// NormalizeColor returns nil for a transparent or malformed color array.
// An annotation without a renderable color draws no visible markup, so
// callers treat nil as "use the viewer default" rather than as an error.
func NormalizeColor(components []float64, opacity float64) *Color {
	if opacity <= 0 || opacity > 1 || math.IsNaN(opacity) {
		opacity = 1
	}

	for _, v := range components {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
	}

	switch len(components) {
	case 0:
		return nil
	case 1:
		g := clamp01(components[0])
		return &Color{R: g, G: g, B: g, Opacity: opacity}
	case 3:
		return &Color{
			R:       clamp01(components[0]),
			G:       clamp01(components[1]),
			B:       clamp01(components[2]),
			Opacity: opacity,
		}
	case 4:
		c := clamp01(components[0])
		m := clamp01(components[1])
		y := clamp01(components[2])
		k := clamp01(components[3])
		return &Color{
			R:       (1 - c) * (1 - k),
			G:       (1 - m) * (1 - k),
			B:       (1 - y) * (1 - k),
			Opacity: opacity,
		}
	default:
		return nil
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Hex returns the color as a lower-case CSS hex string, e.g. "#ffcc00".
// The opacity is not encoded; indicator styling applies it separately.
func (c *Color) Hex() string {
	if c == nil {
		return ""
	}
	r := int(math.Round(clamp01(c.R) * 255))
	g := int(math.Round(clamp01(c.G) * 255))
	b := int(math.Round(clamp01(c.B) * 255))
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
