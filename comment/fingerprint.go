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

package comment

import (
	"fmt"
	"math/bits"
	"strings"
	"unicode"

	"github.com/go-dedup/simhash"
	"golang.org/x/text/unicode/norm"

	"seehuhn.de/go/pdfview"
)

// Comments without any durable ID fall back to positional keys, which do
// not survive a reconciliation pass.  To keep such comments from changing
// identity on every pass, the registry remembers a content+geometry
// fingerprint per key and lets the next pass's positional candidates adopt
// the key of a close-enough fingerprint.
//
// The fingerprint is a 64-bit simhash over the NFC-normalized note text
// (character bigrams) plus the marker rectangle quantized to a coarse grid.
// Hamming distance between fingerprints approximates dissimilarity, so a
// small edit to the note text still matches.

// fingerprintGrid is the quantization resolution for geometry features.
// Coarse on purpose: sub-cell movement of a marker must not change the
// fingerprint.
const fingerprintGrid = 64

// defaultFingerprintMaxDistance is the largest Hamming distance at which
// two fingerprints still count as the same comment.
const defaultFingerprintMaxDistance = 6

// fingerprintCacheSize bounds the memoization cache.  It only needs to
// hold the comments without durable IDs of one document, which is a small
// number even on heavily annotated files.
const fingerprintCacheSize = 512

// fingerprint hashes a comment's text and geometry.  The zero return value
// means "no fingerprint": the comment has neither text nor geometry, and
// must not participate in fingerprint matching.
func fingerprint(text string, rect *pdfview.Rect) uint64 {
	f := commentFeatures{text: text, rect: rect}
	features := f.GetFeatures()
	if len(features) == 0 {
		return 0
	}
	return simhash.NewSimhash().GetSimhash(f)
}

// cachedFingerprint is fingerprint, memoized through the given cache.
func cachedFingerprint(cache *fingerprintCache, text string, rect *pdfview.Rect) uint64 {
	key := fingerprintKey(text, rect)
	if fp, ok := cache.Get(key); ok {
		return fp
	}
	fp := fingerprint(text, rect)
	cache.Put(key, fp)
	return fp
}

func fingerprintKey(text string, rect *pdfview.Rect) string {
	if rect == nil {
		return text
	}
	return fmt.Sprintf("%s\x1f%g/%g/%g/%g",
		text, rect.Left, rect.Top, rect.Width, rect.Height)
}

// hammingDistance counts the differing bits of two fingerprints.
func hammingDistance(a, b uint64) int {
	return bits.OnesCount64(a ^ b)
}

// commentFeatures implements simhash.FeatureSet for one comment.
type commentFeatures struct {
	text string
	rect *pdfview.Rect
}

func (f commentFeatures) GetFeatures() []simhash.Feature {
	var features []simhash.Feature

	text := norm.NFC.String(strings.TrimSpace(f.text))
	runes := []rune(text)
	for i := 0; i < len(runes)-1; i++ {
		r1, r2 := runes[i], runes[i+1]
		if unicode.IsSpace(r1) || unicode.IsSpace(r2) {
			continue
		}
		features = append(features, simhash.NewFeature([]byte(string([]rune{r1, r2}))))
	}
	// very short texts get single-rune features as well, so that they
	// produce a usable signal at all
	if len(runes) > 0 && len(runes) < 4 {
		for _, r := range runes {
			if !unicode.IsSpace(r) {
				features = append(features, simhash.NewFeature([]byte(string(r))))
			}
		}
	}

	if f.rect != nil {
		gx := quantize(f.rect.Left)
		gy := quantize(f.rect.Top)
		gw := quantize(f.rect.Width)
		gh := quantize(f.rect.Height)
		features = append(features,
			simhash.NewFeature([]byte(fmt.Sprintf("gx:%d", gx))),
			simhash.NewFeature([]byte(fmt.Sprintf("gy:%d", gy))),
			simhash.NewFeature([]byte(fmt.Sprintf("gw:%d", gw))),
			simhash.NewFeature([]byte(fmt.Sprintf("gh:%d", gh))),
		)
	}

	return features
}

func quantize(v float64) int {
	g := int(v * fingerprintGrid)
	if g < 0 {
		g = 0
	} else if g > fingerprintGrid-1 {
		g = fingerprintGrid - 1
	}
	return g
}
