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

import "strings"

// A Capability is a set of optional Stream operations. A concrete stream
// type declares its capabilities statically via Capabilities; the set never
// changes over the life of a stream.
type Capability uint16

const (
	// CapRead is the ability to read the next decoded value.
	CapRead Capability = 1 << iota

	// CapReadInto is the ability to decode the next value into a
	// caller-supplied mutable value.
	CapReadInto

	// CapSeek is the ability to seek to an arbitrary value offset.
	CapSeek

	// CapSeekEnd is the ability to seek past the last value.
	CapSeekEnd

	// CapLen is the ability to report the number of values without
	// scanning. Only layouts that carry their length declare it.
	CapLen

	// CapWrite is the ability to write a value at the current position,
	// appending or overwriting.
	CapWrite

	// CapTruncate is the ability to discard all values past a given
	// offset.
	CapTruncate
)

var capNames = []struct {
	cap  Capability
	name string
}{
	{CapRead, "read"},
	{CapReadInto, "read-into"},
	{CapSeek, "seek"},
	{CapSeekEnd, "seek-end"},
	{CapLen, "len"},
	{CapWrite, "write"},
	{CapTruncate, "truncate"},
}

// Has reports whether every capability in x is in c.
func (c Capability) Has(x Capability) bool {
	return c&x == x
}

// String implements fmt.Stringer for Capability.
func (c Capability) String() string {
	if c == 0 {
		return "<none>"
	}
	var names []string
	for _, n := range capNames {
		if c.Has(n.cap) {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, "|")
}
