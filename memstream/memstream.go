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

// Package memstream provides an in-memory value stream declaring every
// optional capability. It is the reference implementation of the stream
// contract, and the natural backend for tests and for formats decoded
// eagerly into memory.
package memstream

import (
	"fmt"
	"io"
	"reflect"

	"github.com/fmtstream/fmtstream-go"
)

// A Stream holds a sequence of values in memory, with a cursor supporting
// reads, seeks, writes and truncation. The zero value is an empty open
// stream.
type Stream struct {
	values []interface{}
	pos    int64
	closed bool
}

// New creates a Stream over the given values, positioned on the first one.
func New(values ...interface{}) *Stream {
	return &Stream{values: values}
}

// Capabilities declares every optional operation.
func (s *Stream) Capabilities() fmtstream.Capability {
	return fmtstream.CapRead | fmtstream.CapReadInto | fmtstream.CapSeek |
		fmtstream.CapSeekEnd | fmtstream.CapLen | fmtstream.CapWrite |
		fmtstream.CapTruncate
}

// Offset returns the index of the value the cursor is positioned on.
func (s *Stream) Offset() int64 {
	return s.pos
}

// EOF reports whether the cursor is past the last value.
func (s *Stream) EOF() bool {
	return s.pos >= int64(len(s.values))
}

// Rewind repositions the cursor on the first value.
func (s *Stream) Rewind() error {
	s.pos = 0
	return nil
}

// Close marks the stream closed. It is idempotent and never fails; the
// stream holds no external resources.
func (s *Stream) Close() error {
	s.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (s *Stream) Closed() bool {
	return s.closed
}

// ReadValue returns the value under the cursor and advances it, or io.EOF
// past the last value.
func (s *Stream) ReadValue() (interface{}, error) {
	if s.EOF() {
		return nil, io.EOF
	}
	v := s.values[s.pos]
	s.pos++
	return v, nil
}

// ReadValueInto assigns the value under the cursor to into, which must be a
// non-nil pointer to a type the value is assignable to, and returns into.
// Past the last value it returns io.EOF.
func (s *Stream) ReadValueInto(into interface{}) (interface{}, error) {
	if s.EOF() {
		return nil, io.EOF
	}
	dst := reflect.ValueOf(into)
	if dst.Kind() != reflect.Ptr || dst.IsNil() {
		return nil, fmt.Errorf("memstream: read into non-pointer %T", into)
	}
	src := reflect.ValueOf(s.values[s.pos])
	if !src.Type().AssignableTo(dst.Elem().Type()) {
		return nil, fmt.Errorf("memstream: cannot read %v into %T", src.Type(), into)
	}
	dst.Elem().Set(src)
	s.pos++
	return into, nil
}

// SeekValue repositions the cursor on the value at index n. Seeking to the
// length of the stream is legal and equivalent to SeekEnd.
func (s *Stream) SeekValue(n int64) error {
	if n < 0 || n > int64(len(s.values)) {
		return fmt.Errorf("memstream: seek to %v outside [0, %v]", n, len(s.values))
	}
	s.pos = n
	return nil
}

// SeekEnd repositions the cursor past the last value.
func (s *Stream) SeekEnd() error {
	s.pos = int64(len(s.values))
	return nil
}

// Len returns the number of values in the stream.
func (s *Stream) Len() (int64, error) {
	return int64(len(s.values)), nil
}

// WriteValue writes v at the cursor, appending past the last value and
// overwriting otherwise, then advances the cursor.
func (s *Stream) WriteValue(v interface{}) error {
	if s.EOF() {
		s.values = append(s.values, v)
	} else {
		s.values[s.pos] = v
	}
	s.pos++
	return nil
}

// Truncate discards every value at index n and beyond, moving the cursor
// back to n if it pointed past it.
func (s *Stream) Truncate(n int64) error {
	if n < 0 || n > int64(len(s.values)) {
		return fmt.Errorf("memstream: truncate to %v outside [0, %v]", n, len(s.values))
	}
	s.values = s.values[:n]
	if s.pos > n {
		s.pos = n
	}
	return nil
}
