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

// Package cborstream provides a stream handler for CBOR sequences
// (RFC 8742): a byte stream holding zero or more concatenated CBOR data
// items. It is a complete integration of the fmtstream extension point and
// the model for writing handlers of your own.
package cborstream

import (
	"bytes"
	"io"

	"github.com/fxamacker/cbor/v2"

	"github.com/fmtstream/fmtstream-go"
)

// Format is the identifier cborstream registers under by default.
const Format fmtstream.Format = "application/cbor-seq"

type handlerToken struct{}

// Name returns the handler's name.
func (handlerToken) Name() string { return "cbor-sequence" }

// Handler is the identity token for the CBOR sequence backend.
var Handler fmtstream.Handler = handlerToken{}

// Register registers Handler and its opener in r under the default Format.
func Register(r *fmtstream.Registry) error {
	return RegisterFormat(r, Format)
}

// RegisterFormat registers Handler and its opener in r under f, for
// integrations that name CBOR sequences differently.
func RegisterFormat(r *fmtstream.Registry, f fmtstream.Format) error {
	if err := r.Register(f, Handler); err != nil {
		return err
	}
	return r.RegisterOpener(f, Handler, Open)
}

// Open is the fmtstream.Opener for CBOR sequences. It buffers the full byte
// stream up front so the stream can rewind, closes rc, and fails without
// reading values: a malformed item surfaces on the read that reaches it.
// It takes no extra args.
func Open(h fmtstream.Handler, f fmtstream.Format, rc io.ReadCloser, args ...interface{}) (fmtstream.Stream, error) {
	defer rc.Close()
	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}
	s := &Stream{raw: raw}
	s.reset()
	return s, nil
}

// A Stream decodes the values of a CBOR sequence held in memory. It
// declares CapRead and CapReadInto; the wire layout carries no length or
// index, so there is no seeking.
type Stream struct {
	raw     []byte
	dec     *cbor.Decoder
	next    cbor.RawMessage
	nextErr error
	pos     int64
	closed  bool
}

// reset rebuilds the decoder over the start of the sequence and primes the
// one-item lookahead EOF detection relies on.
func (s *Stream) reset() {
	s.dec = cbor.NewDecoder(bytes.NewReader(s.raw))
	s.pos = 0
	s.advance()
}

func (s *Stream) advance() {
	s.next = nil
	s.nextErr = s.dec.Decode(&s.next)
}

// Capabilities declares sequential reading, plain and buffered.
func (s *Stream) Capabilities() fmtstream.Capability {
	return fmtstream.CapRead | fmtstream.CapReadInto
}

// Offset returns the index of the value the cursor is positioned on.
func (s *Stream) Offset() int64 {
	return s.pos
}

// EOF reports whether the cursor is past the last value.
func (s *Stream) EOF() bool {
	return s.nextErr == io.EOF
}

// Rewind repositions the cursor on the first value.
func (s *Stream) Rewind() error {
	s.reset()
	return nil
}

// Close marks the stream closed. It is idempotent; the underlying byte
// stream was already released by Open.
func (s *Stream) Close() error {
	s.closed = true
	return nil
}

// ReadValue decodes the next item into a fresh value and advances the
// cursor. At the end of the sequence it returns io.EOF; a malformed item
// returns the decoder's error.
func (s *Stream) ReadValue() (interface{}, error) {
	if s.nextErr != nil {
		return nil, s.nextErr
	}
	var v interface{}
	if err := cbor.Unmarshal(s.next, &v); err != nil {
		return nil, err
	}
	s.pos++
	s.advance()
	return v, nil
}

// ReadValueInto decodes the next item into the caller-supplied value, which
// must be a non-nil pointer, and returns that same value. At the end of the
// sequence it returns io.EOF.
func (s *Stream) ReadValueInto(into interface{}) (interface{}, error) {
	if s.nextErr != nil {
		return nil, s.nextErr
	}
	if err := cbor.Unmarshal(s.next, into); err != nil {
		return nil, err
	}
	s.pos++
	s.advance()
	return into, nil
}
