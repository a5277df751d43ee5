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
	"io"
	"os"

	"go.uber.org/zap"
)

// A Classifier infers the format, and optionally the coding, of an untyped
// resource by inspecting its name or bytes. Classification lives outside
// this package; resolution only calls whatever was installed with
// SetClassifier and propagates its failures unchanged.
type Classifier interface {
	Classify(res Resource) (Format, Coding, error)
}

// ClassifierFunc adapts a plain function to the Classifier interface.
type ClassifierFunc func(res Resource) (Format, Coding, error)

// Classify calls f.
func (f ClassifierFunc) Classify(res Resource) (Format, Coding, error) {
	return f(res)
}

// A Transform wraps a byte stream in a transfer decoding, for example
// decompression. On success the returned stream owns rc: closing it must
// close rc. On failure the Transform must leave rc open; the caller closes
// it.
type Transform func(rc io.ReadCloser) (io.ReadCloser, error)

// A CodingTable supplies the Transform for a coding. Coding transforms live
// outside this package; the codings subpackage ships a ready-made table.
// Failures from TransformFor propagate through resolution unchanged.
type CodingTable interface {
	TransformFor(c Coding) (Transform, error)
}

// open obtains the resource's underlying byte stream.
func (res Resource) open() (io.ReadCloser, error) {
	switch {
	case res.Path != "" && res.Reader != nil:
		return nil, &UsageError{API: "OpenStream", Msg: "resource has both a path and a reader"}
	case res.Path != "":
		return os.Open(res.Path)
	case res.Reader != nil:
		if rc, ok := res.Reader.(io.ReadCloser); ok {
			return rc, nil
		}
		return io.NopCloser(res.Reader), nil
	}
	return nil, &UsageError{API: "OpenStream", Msg: "resource has neither a path nor a reader"}
}

// OpenStream resolves res into a typed Stream.
//
// An untyped resource is first classified. The underlying byte stream is
// then opened, unwrapped through the coding transform if the resource
// carries a coding, and handed to the opener registered for the resolved
// (handler, format) pair along with any trailing args. Every failure along
// the chain (classification, I/O, coding lookup, handler resolution,
// dispatch) propagates as is; there is no fallback. The caller owns the
// returned Stream and must close it, or use WithStream instead.
func (r *Registry) OpenStream(res Resource, args ...interface{}) (Stream, error) {
	if res.Format == "" {
		if r.classifier == nil {
			return nil, &UsageError{API: "OpenStream", Msg: "untyped resource and no classifier installed"}
		}
		f, c, err := r.classifier.Classify(res)
		if err != nil {
			return nil, err
		}
		res.Format = f
		if res.Coding == "" {
			res.Coding = c
		}
	}

	rc, err := res.open()
	if err != nil {
		return nil, err
	}
	if res.Coding != "" {
		if r.codings == nil {
			rc.Close()
			return nil, &UsageError{API: "OpenStream", Msg: "resource has a coding and no coding table installed"}
		}
		tf, err := r.codings.TransformFor(res.Coding)
		if err != nil {
			rc.Close()
			return nil, err
		}
		wrapped, err := tf(rc)
		if err != nil {
			rc.Close()
			return nil, err
		}
		rc = wrapped
	}

	h, err := r.Resolve(res.Format)
	if err != nil {
		rc.Close()
		return nil, err
	}
	open, ok := r.openers[openerKey{handler: h, format: res.Format}]
	if !ok {
		rc.Close()
		return nil, &NoOpenerError{Handler: h, Format: res.Format}
	}

	return open(h, res.Format, rc, args...)
}

// WithStream resolves res, hands the resulting Stream to fn, and closes the
// Stream exactly once on every exit path, panics included. The error
// returned is fn's own; a failure while closing never masks it and is only
// logged.
func (r *Registry) WithStream(res Resource, fn func(Stream) error, args ...interface{}) error {
	s, err := r.OpenStream(res, args...)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil {
			r.log.Warn("closing stream failed", zap.Error(cerr))
		}
	}()
	return fn(s)
}

// OpenStream resolves a resource against the default registry.
func OpenStream(res Resource, args ...interface{}) (Stream, error) {
	return defaultRegistry.OpenStream(res, args...)
}

// WithStream runs a scoped session against the default registry.
func WithStream(res Resource, fn func(Stream) error, args ...interface{}) error {
	return defaultRegistry.WithStream(res, fn, args...)
}
