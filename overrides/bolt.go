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
	"time"

	"go.etcd.io/bbolt"

	"seehuhn.de/go/pdfview"
)

// BoltStore keeps subtype overrides in a bbolt database file, so that the
// user's choices survive viewer restarts.  Overrides are grouped into one
// bucket per document, since annotation IDs are only unique within their
// document.
type BoltStore struct {
	db     *bbolt.DB
	bucket []byte
}

// NewBoltStore opens (or creates) the override database at path and binds
// the store to the bucket for the given document key.  The document key
// must identify the document file, for example a content hash or an
// absolute path.
func NewBoltStore(path, document string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, err
	}

	bucket := []byte(document)
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db, bucket: bucket}, nil
}

func (s *BoltStore) Get(annotationID string) (pdfview.Subtype, bool, error) {
	var subtype pdfview.Subtype
	var ok bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(s.bucket).Get([]byte(annotationID))
		if data != nil {
			subtype = pdfview.Subtype(data)
			ok = true
		}
		return nil
	})
	if err != nil {
		return "", false, err
	}
	return subtype, ok, nil
}

func (s *BoltStore) Set(annotationID string, subtype pdfview.Subtype) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(annotationID), []byte(subtype))
	})
}

func (s *BoltStore) Delete(annotationID string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(s.bucket).Delete([]byte(annotationID))
	})
}

// Close closes the underlying database file.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

var _ Store = (*BoltStore)(nil)
