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

// Package fmtstream resolves data resources into typed streams of decoded
// values.
//
// A resource is a file path, an open byte stream, or either of those already
// tagged with a format identifier. Resolution consults a Registry mapping
// each format to the handlers registered for it, breaks ties using per-format
// and global favorites, optionally unwraps a transfer coding (compression and
// the like), and finally dispatches to the opener registered for the chosen
// (handler, format) pair. The opener returns a Stream: a cursor over decoded
// values with a mandatory core (offset, EOF, rewind, close) and a declared
// set of optional capabilities (sequential read, read-into, seeking, length,
// writing, truncation).
//
// The package defines the resolution machinery and the contracts only. It
// knows nothing about any concrete binary layout: format classification,
// coding transforms, and the streams themselves are supplied by integrators.
// The cborstream subpackage is a complete example handler, memstream is an
// in-memory stream implementing every capability, and codings ships a table
// of ready-made compression transforms.
//
// Registration is expected to complete during program initialization, before
// resolution begins. The Registry performs no internal locking: it assumes a
// single writer followed by any number of concurrent readers. A Stream has a
// single cursor and a single logical owner; share one across goroutines only
// with external synchronization.
package fmtstream
