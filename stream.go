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

package fmtstream

import "fmt"

// A Stream is a cursor over a sequence of decoded values, produced by an
// Opener during resolution.
//
// Every Stream supports the core below. Optional operations are declared
// through Capabilities and reached through the matching narrow interface
// (ValueReader, ValueWriter, ...) or, more conveniently, through the
// package-level checked helpers (ReadValue, WriteValue, ...), which return
// an UnsupportedOperationError instead of panicking when the stream lacks
// the capability.
//
// A Stream has exactly one logical owner and a single cursor. It is not safe
// for concurrent use.
type Stream interface {
	// Offset returns the index of the value the cursor is positioned on,
	// starting at zero.
	Offset() int64

	// EOF reports whether the cursor is past the last value.
	EOF() bool

	// Rewind repositions the cursor on the first value.
	Rewind() error

	// Close releases the stream's resources, including the underlying
	// byte stream. It is idempotent: closing an already-closed stream
	// returns nil.
	Close() error

	// Capabilities returns the optional operations this stream supports.
	Capabilities() Capability
}

// A ValueReader is a Stream with the CapRead capability.
type ValueReader interface {
	// ReadValue returns the next decoded value and advances the cursor.
	// At end of data it returns io.EOF.
	ReadValue() (interface{}, error)
}

// A ValueReaderInto is a Stream with the CapReadInto capability.
type ValueReaderInto interface {
	// ReadValueInto decodes the next value into the caller-supplied
	// mutable value and returns that same value. At end of data it
	// returns io.EOF.
	ReadValueInto(into interface{}) (interface{}, error)
}

// A ValueSeeker is a Stream with the CapSeek capability.
type ValueSeeker interface {
	// SeekValue repositions the cursor on the value at index n.
	SeekValue(n int64) error
}

// An EndSeeker is a Stream with the CapSeekEnd capability.
type EndSeeker interface {
	// SeekEnd repositions the cursor past the last value.
	SeekEnd() error
}

// A Lengther is a Stream with the CapLen capability.
type Lengther interface {
	// Len returns the number of values in the stream.
	Len() (int64, error)
}

// A ValueWriter is a Stream with the CapWrite capability.
type ValueWriter interface {
	// WriteValue writes a value at the current position, appending if the
	// cursor is at the end and overwriting otherwise, then advances the
	// cursor.
	WriteValue(v interface{}) error
}

// A Truncater is a Stream with the CapTruncate capability.
type Truncater interface {
	// Truncate discards every value at index n and beyond.
	Truncate(n int64) error
}

func unsupported(s Stream, op Capability) error {
	return &UnsupportedOperationError{Op: op, Stream: fmt.Sprintf("%T", s)}
}

// ReadValue returns the next decoded value from s, or io.EOF at end of data.
// It fails with an UnsupportedOperationError if s does not declare CapRead.
func ReadValue(s Stream) (interface{}, error) {
	r, ok := s.(ValueReader)
	if !ok || !s.Capabilities().Has(CapRead) {
		return nil, unsupported(s, CapRead)
	}
	return r.ReadValue()
}

// ReadValueInto decodes the next value from s into the caller-supplied value
// and returns that same value, or io.EOF at end of data. It fails with an
// UnsupportedOperationError if s does not declare CapReadInto.
func ReadValueInto(s Stream, into interface{}) (interface{}, error) {
	r, ok := s.(ValueReaderInto)
	if !ok || !s.Capabilities().Has(CapReadInto) {
		return nil, unsupported(s, CapReadInto)
	}
	return r.ReadValueInto(into)
}

// SeekValue repositions the cursor of s on the value at index n. It fails
// with an UnsupportedOperationError if s does not declare CapSeek.
func SeekValue(s Stream, n int64) error {
	sk, ok := s.(ValueSeeker)
	if !ok || !s.Capabilities().Has(CapSeek) {
		return unsupported(s, CapSeek)
	}
	return sk.SeekValue(n)
}

// SeekEnd repositions the cursor of s past the last value. It fails with an
// UnsupportedOperationError if s does not declare CapSeekEnd.
func SeekEnd(s Stream) error {
	sk, ok := s.(EndSeeker)
	if !ok || !s.Capabilities().Has(CapSeekEnd) {
		return unsupported(s, CapSeekEnd)
	}
	return sk.SeekEnd()
}

// Len returns the number of values in s. It fails with an
// UnsupportedOperationError if s does not declare CapLen.
func Len(s Stream) (int64, error) {
	l, ok := s.(Lengther)
	if !ok || !s.Capabilities().Has(CapLen) {
		return 0, unsupported(s, CapLen)
	}
	return l.Len()
}

// WriteValue writes a value to s at the current position. It fails with an
// UnsupportedOperationError if s does not declare CapWrite.
func WriteValue(s Stream, v interface{}) error {
	w, ok := s.(ValueWriter)
	if !ok || !s.Capabilities().Has(CapWrite) {
		return unsupported(s, CapWrite)
	}
	return w.WriteValue(v)
}

// Truncate discards every value of s at index n and beyond. It fails with an
// UnsupportedOperationError if s does not declare CapTruncate.
func Truncate(s Stream, n int64) error {
	t, ok := s.(Truncater)
	if !ok || !s.Capabilities().Has(CapTruncate) {
		return unsupported(s, CapTruncate)
	}
	return t.Truncate(n)
}
