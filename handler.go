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

// A Handler identifies one streaming backend for one or more formats.
//
// Handler values are used directly as map keys, so the dynamic type must be
// comparable; a struct singleton or a string-based type both work. The
// registry only ever holds the value and calls Name for error messages and
// logs; a handler is an identity token, not a behavior.
type Handler interface {
	// Name returns a short, stable name identifying the backend.
	Name() string
}

// A NamedHandler is the simplest possible Handler: a bare name. Integrators
// with no richer identity to carry can use it directly.
type NamedHandler string

// Name returns the handler's name.
func (h NamedHandler) Name() string { return string(h) }

// An Opener constructs a typed Stream over a prepared byte stream. It is the
// sole extension point for integrators: each handler registers one Opener per
// format it supports, and the dispatcher invokes it after resolution has
// picked the handler and any coding has been unwrapped.
//
// The Opener owns rc. It must arrange for the returned Stream's Close to
// close rc, or close rc itself before returning successfully, or close rc
// and return an error if the byte stream does not hold a valid layout for
// the format. The trailing args are passed through verbatim from OpenStream.
type Opener func(h Handler, f Format, rc io.ReadCloser, args ...interface{}) (Stream, error)
