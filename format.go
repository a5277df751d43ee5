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

// A Format names a data format. Values are media-type style strings; the
// package treats them as opaque keys and never inspects their structure.
type Format string

// A Coding names a transfer coding (compression and the like) applied atop a
// format. Like Format it is an opaque key.
type Coding string

// A Resource is something that can be resolved into a Stream: a file path or
// an open byte stream, optionally already tagged with a Format and Coding.
//
// Exactly one of Path and Reader must be set. A Resource with an empty
// Format is untyped and is handed to the registry's classifier during
// resolution; a non-empty Format (with or without a Coding) bypasses
// classification entirely.
type Resource struct {
	Path   string
	Reader io.Reader
	Format Format
	Coding Coding
}

// PathResource returns an untyped Resource backed by the file at path.
func PathResource(path string) Resource {
	return Resource{Path: path}
}

// ReaderResource returns an untyped Resource backed by an open byte stream.
// If r is an io.ReadCloser, resolution takes ownership of it: the Stream's
// Close (or the scoped session) closes it.
func ReaderResource(r io.Reader) Resource {
	return Resource{Reader: r}
}

// WithFormat returns a copy of the Resource tagged with the given format.
func (res Resource) WithFormat(f Format) Resource {
	res.Format = f
	return res
}

// WithCoding returns a copy of the Resource tagged with the given coding.
func (res Resource) WithCoding(c Coding) Resource {
	res.Coding = c
	return res
}
