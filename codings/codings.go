/*
 * Copyright the fmtstream authors. All Rights Reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License").
 * You may not use this file except in compliance with the License.
 * A copy of the License is located at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * or in the "license" file accompanying this file. This file is distributed
 * on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either
 * express or implied. See the License for the specific language governing
 * permissions and limitations under the License.
 */

// Package codings provides a coding table mapping transfer codings to byte
// stream transforms, with gzip, zlib and zstd decompression ready-made.
package codings

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"

	"github.com/fmtstream/fmtstream-go"
)

// Codings handled by the default table.
const (
	Gzip fmtstream.Coding = "application/gzip"
	Zlib fmtstream.Coding = "application/zlib"
	Zstd fmtstream.Coding = "application/zstd"
)

// An UnknownCodingError is returned by TransformFor when no transform is
// registered for a coding.
type UnknownCodingError struct {
	Coding fmtstream.Coding
}

func (e *UnknownCodingError) Error() string {
	return fmt.Sprintf("codings: no transform registered for coding %v", e.Coding)
}

// A Table maps codings to transforms. It implements fmtstream.CodingTable.
// Like the registry it is meant to be populated during initialization and
// holds no lock.
type Table struct {
	transforms map[fmtstream.Coding]fmtstream.Transform
}

// NewTable creates an empty Table.
func NewTable() *Table {
	return &Table{transforms: make(map[fmtstream.Coding]fmtstream.Transform)}
}

// Default creates a Table with the gzip, zlib and zstd transforms
// registered.
func Default() *Table {
	t := NewTable()
	t.Register(Gzip, GzipTransform)
	t.Register(Zlib, ZlibTransform)
	t.Register(Zstd, ZstdTransform)
	return t
}

// Register maps c to tf, overwriting any previous transform for c.
func (t *Table) Register(c fmtstream.Coding, tf fmtstream.Transform) {
	t.transforms[c] = tf
}

// TransformFor returns the transform registered for c, or an
// UnknownCodingError.
func (t *Table) TransformFor(c fmtstream.Coding) (fmtstream.Transform, error) {
	tf, ok := t.transforms[c]
	if !ok {
		return nil, &UnknownCodingError{Coding: c}
	}
	return tf, nil
}

// A decoded byte stream that closes both the decompressor and the
// underlying stream.
type transformed struct {
	io.Reader
	closers []io.Closer
}

func (t *transformed) Close() error {
	var first error
	for _, c := range t.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// GzipTransform wraps rc in a gzip decompressor.
func GzipTransform(rc io.ReadCloser) (io.ReadCloser, error) {
	zr, err := gzip.NewReader(rc)
	if err != nil {
		return nil, err
	}
	return &transformed{Reader: zr, closers: []io.Closer{zr, rc}}, nil
}

// ZlibTransform wraps rc in a zlib decompressor.
func ZlibTransform(rc io.ReadCloser) (io.ReadCloser, error) {
	zr, err := zlib.NewReader(rc)
	if err != nil {
		return nil, err
	}
	return &transformed{Reader: zr, closers: []io.Closer{zr, rc}}, nil
}

// ZstdTransform wraps rc in a zstd decompressor.
func ZstdTransform(rc io.ReadCloser) (io.ReadCloser, error) {
	zr, err := zstd.NewReader(rc)
	if err != nil {
		return nil, err
	}
	zrc := zr.IOReadCloser()
	return &transformed{Reader: zrc, closers: []io.Closer{zrc, rc}}, nil
}
