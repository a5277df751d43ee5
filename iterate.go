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

import "io"

// An Iterator steps lazily through the values of a Stream.
//
// The first call to Next rewinds the stream, so a fresh Iterator over a
// stream always reproduces the full sequence, provided nothing else moved
// the cursor meanwhile. Iterators own no resources and never outlive their
// stream; closing the stream is still the caller's job. Two live Iterators
// over one Stream share its single cursor and will interfere.
//
//	it := fmtstream.Values(s)
//	for it.Next() {
//		use(it.Value())
//	}
//	if err := it.Err(); err != nil {
//		return err
//	}
type Iterator struct {
	s       Stream
	into    interface{}
	started bool
	done    bool
	cur     interface{}
	err     error
}

// Values returns an Iterator yielding each value of s in turn. Every step
// reads a fresh value; retaining one across steps is safe. The stream must
// declare CapRead.
func Values(s Stream) *Iterator {
	return &Iterator{s: s}
}

// BufferedValues returns an Iterator that decodes every value into the same
// caller-supplied mutable value: each step yields the identical into
// reference with new contents. Consumers that retain a value past the next
// step must copy it themselves. The stream must declare CapReadInto.
func BufferedValues(s Stream, into interface{}) *Iterator {
	return &Iterator{s: s, into: into}
}

// Next advances the iterator to the next value. It returns false at end of
// data or on error; the two are distinguished by Err.
func (it *Iterator) Next() bool {
	if it.done || it.err != nil {
		return false
	}
	if !it.started {
		if err := it.s.Rewind(); err != nil {
			it.err = err
			return false
		}
		it.started = true
	}
	if it.s.EOF() {
		it.done = true
		return false
	}

	var v interface{}
	var err error
	if it.into != nil {
		v, err = ReadValueInto(it.s, it.into)
	} else {
		v, err = ReadValue(it.s)
	}
	if err == io.EOF {
		it.done = true
		return false
	}
	if err != nil {
		it.err = err
		return false
	}
	it.cur = v
	return true
}

// Value returns the value the iterator is positioned on. It is only valid
// after a call to Next that returned true.
func (it *Iterator) Value() interface{} {
	return it.cur
}

// Err returns the error that terminated iteration, if any. A nil Err after
// Next returns false means the stream's end was reached.
func (it *Iterator) Err() error {
	return it.err
}
