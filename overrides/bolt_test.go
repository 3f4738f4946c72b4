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

package overrides

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"seehuhn.de/go/pdfview"
)

func TestBoltStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.db")

	s, err := NewBoltStore(path, "doc-1")
	require.NoError(t, err)

	_, ok, err := s.Get("9R")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Set("9R", pdfview.SubtypeTypewriter))
	subtype, ok, err := s.Get("9R")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, pdfview.SubtypeTypewriter, subtype)

	require.NoError(t, s.Delete("9R"))
	_, ok, err = s.Get("9R")
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, s.Delete("9R"))

	require.NoError(t, s.Close())
}

// Overrides must survive closing and reopening the database, the way they
// survive a viewer restart.
func TestBoltStorePersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.db")

	s, err := NewBoltStore(path, "doc-1")
	require.NoError(t, err)
	require.NoError(t, s.Set("9R", pdfview.SubtypeSquiggly))
	require.NoError(t, s.Close())

	s, err = NewBoltStore(path, "doc-1")
	require.NoError(t, err)
	defer s.Close()

	subtype, ok, err := s.Get("9R")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, pdfview.SubtypeSquiggly, subtype)
}

// Annotation IDs are only unique within their document, so each document
// gets its own bucket.
func TestBoltStoreDocumentIsolation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.db")

	a, err := NewBoltStore(path, "doc-a")
	require.NoError(t, err)
	require.NoError(t, a.Set("9R", pdfview.SubtypeTypewriter))
	require.NoError(t, a.Close())

	b, err := NewBoltStore(path, "doc-b")
	require.NoError(t, err)
	defer b.Close()

	_, ok, err := b.Get("9R")
	require.NoError(t, err)
	require.False(t, ok, "override leaked across documents")
}
