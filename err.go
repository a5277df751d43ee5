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

import (
	"fmt"
	"strings"
)

// A UsageError is returned when you use a Registry or Stream in an
// inappropriate way, for example registering a nil handler or resolving an
// untyped resource with no classifier installed.
type UsageError struct {
	API string
	Msg string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("fmtstream: usage error in %v: %v", e.API, e.Msg)
}

// A DuplicateRegistrationError is returned when a handler is registered a
// second time under the same format. The registry is left unchanged.
type DuplicateRegistrationError struct {
	Handler Handler
	Format  Format
}

func (e *DuplicateRegistrationError) Error() string {
	return fmt.Sprintf("fmtstream: handler %v already registered for format %v", e.Handler.Name(), e.Format)
}

// A NoHandlerError is returned by Resolve when no handler at all is
// registered for the requested format.
type NoHandlerError struct {
	Format Format
}

func (e *NoHandlerError) Error() string {
	return fmt.Sprintf("fmtstream: no handler registered for format %v", e.Format)
}

// An AmbiguousHandlerError is returned by Resolve when several handlers are
// registered for a format and neither a per-format favorite nor exactly one
// global favorite singles one out. Candidates holds every handler registered
// for the format, in registration order.
type AmbiguousHandlerError struct {
	Format     Format
	Candidates []Handler
}

func (e *AmbiguousHandlerError) Error() string {
	names := make([]string, len(e.Candidates))
	for i, h := range e.Candidates {
		names[i] = h.Name()
	}
	return fmt.Sprintf("fmtstream: ambiguous handlers for format %v: %v", e.Format, strings.Join(names, ", "))
}

// An UnregisteredHandlerError is returned when a per-format favorite is
// requested for a handler that is not registered under that format.
type UnregisteredHandlerError struct {
	Handler Handler
	Format  Format
}

func (e *UnregisteredHandlerError) Error() string {
	return fmt.Sprintf("fmtstream: handler %v is not registered for format %v", e.Handler.Name(), e.Format)
}

// An AlreadyGlobalFavoriteError is returned when a handler is marked as a
// global favorite a second time.
type AlreadyGlobalFavoriteError struct {
	Handler Handler
}

func (e *AlreadyGlobalFavoriteError) Error() string {
	return fmt.Sprintf("fmtstream: handler %v is already a global favorite", e.Handler.Name())
}

// A NoOpenerError is returned during dispatch when the resolved handler has
// no opener registered for the requested format.
type NoOpenerError struct {
	Handler Handler
	Format  Format
}

func (e *NoOpenerError) Error() string {
	return fmt.Sprintf("fmtstream: no opener registered for handler %v and format %v", e.Handler.Name(), e.Format)
}

// An UnsupportedOperationError is returned when an optional Stream operation
// is invoked on a stream that does not declare the matching capability.
type UnsupportedOperationError struct {
	Op     Capability
	Stream string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("fmtstream: stream %v does not support %v", e.Stream, e.Op)
}
