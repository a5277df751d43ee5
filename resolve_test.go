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

package fmtstream_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmtstream/fmtstream-go"
	"github.com/fmtstream/fmtstream-go/memstream"
)

const ftest fmtstream.Format = "application/x-test"

// memOpener ignores the byte stream and serves fixed values; dispatch tests
// only care about which opener ran and with what arguments.
func memOpener(values ...interface{}) fmtstream.Opener {
	return func(h fmtstream.Handler, f fmtstream.Format, rc io.ReadCloser, args ...interface{}) (fmtstream.Stream, error) {
		if err := rc.Close(); err != nil {
			return nil, err
		}
		return memstream.New(values...), nil
	}
}

func newTestRegistry(t *testing.T, values ...interface{}) (*fmtstream.Registry, fmtstream.Handler) {
	t.Helper()
	r := fmtstream.NewRegistry()
	h := fmtstream.NamedHandler("mem")
	require.NoError(t, r.Register(ftest, h))
	require.NoError(t, r.RegisterOpener(ftest, h, memOpener(values...)))
	return r, h
}

func TestOpenStreamClassified(t *testing.T) {
	r, _ := newTestRegistry(t, "a", "b")

	res := fmtstream.ReaderResource(strings.NewReader("")).WithFormat(ftest)
	s, err := r.OpenStream(res)
	require.NoError(t, err)
	defer s.Close()

	v, err := fmtstream.ReadValue(s)
	require.NoError(t, err)
	assert.Equal(t, "a", v)
}

func TestOpenStreamClassifiesUntypedResource(t *testing.T) {
	r, _ := newTestRegistry(t, 1)
	r.SetClassifier(fmtstream.ClassifierFunc(func(res fmtstream.Resource) (fmtstream.Format, fmtstream.Coding, error) {
		return ftest, "", nil
	}))

	s, err := r.OpenStream(fmtstream.ReaderResource(strings.NewReader("")))
	require.NoError(t, err)
	defer s.Close()

	v, err := fmtstream.ReadValue(s)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestOpenStreamClassifierFailurePropagates(t *testing.T) {
	r, _ := newTestRegistry(t)
	boom := errors.New("unrecognized resource")
	r.SetClassifier(fmtstream.ClassifierFunc(func(res fmtstream.Resource) (fmtstream.Format, fmtstream.Coding, error) {
		return "", "", boom
	}))

	_, err := r.OpenStream(fmtstream.ReaderResource(strings.NewReader("")))
	assert.Equal(t, boom, err)
}

func TestOpenStreamNoClassifier(t *testing.T) {
	r, _ := newTestRegistry(t)

	_, err := r.OpenStream(fmtstream.ReaderResource(strings.NewReader("")))
	var usage *fmtstream.UsageError
	require.ErrorAs(t, err, &usage)
}

func TestOpenStreamResolutionFailurePropagates(t *testing.T) {
	r := fmtstream.NewRegistry()

	_, err := r.OpenStream(fmtstream.ReaderResource(strings.NewReader("")).WithFormat(ftest))
	var nh *fmtstream.NoHandlerError
	require.ErrorAs(t, err, &nh)
}

func TestOpenStreamNoOpener(t *testing.T) {
	r := fmtstream.NewRegistry()
	h := fmtstream.NamedHandler("mem")
	require.NoError(t, r.Register(ftest, h))

	_, err := r.OpenStream(fmtstream.ReaderResource(strings.NewReader("")).WithFormat(ftest))
	var no *fmtstream.NoOpenerError
	require.ErrorAs(t, err, &no)
	assert.Equal(t, h, no.Handler)
}

func TestOpenStreamCodingTransform(t *testing.T) {
	r, h := newTestRegistry(t)

	// The opener sees the transformed bytes, not the raw ones.
	var seen string
	require.NoError(t, r.RegisterOpener("wrapped", h, func(h fmtstream.Handler, f fmtstream.Format, rc io.ReadCloser, args ...interface{}) (fmtstream.Stream, error) {
		defer rc.Close()
		b, err := io.ReadAll(rc)
		if err != nil {
			return nil, err
		}
		seen = string(b)
		return memstream.New(), nil
	}))
	require.NoError(t, r.Register("wrapped", h))

	r.SetCodingTable(codingTableFunc(func(c fmtstream.Coding) (fmtstream.Transform, error) {
		if c != "rot0" {
			return nil, errors.New("unknown coding")
		}
		return func(rc io.ReadCloser) (io.ReadCloser, error) {
			b, err := io.ReadAll(rc)
			if err != nil {
				return nil, err
			}
			rc.Close()
			return io.NopCloser(strings.NewReader("decoded:" + string(b))), nil
		}, nil
	}))

	res := fmtstream.ReaderResource(strings.NewReader("payload")).WithFormat("wrapped").WithCoding("rot0")
	s, err := r.OpenStream(res)
	require.NoError(t, err)
	s.Close()

	assert.Equal(t, "decoded:payload", seen)
}

type codingTableFunc func(c fmtstream.Coding) (fmtstream.Transform, error)

func (f codingTableFunc) TransformFor(c fmtstream.Coding) (fmtstream.Transform, error) {
	return f(c)
}

func TestOpenStreamCodingWithoutTable(t *testing.T) {
	r, _ := newTestRegistry(t)

	res := fmtstream.ReaderResource(strings.NewReader("")).WithFormat(ftest).WithCoding("application/gzip")
	_, err := r.OpenStream(res)
	var usage *fmtstream.UsageError
	require.ErrorAs(t, err, &usage)
}

func TestOpenStreamExtraArgs(t *testing.T) {
	r := fmtstream.NewRegistry()
	h := fmtstream.NamedHandler("mem")
	require.NoError(t, r.Register(ftest, h))

	var got []interface{}
	require.NoError(t, r.RegisterOpener(ftest, h, func(h fmtstream.Handler, f fmtstream.Format, rc io.ReadCloser, args ...interface{}) (fmtstream.Stream, error) {
		rc.Close()
		got = args
		return memstream.New(), nil
	}))

	s, err := r.OpenStream(fmtstream.ReaderResource(strings.NewReader("")).WithFormat(ftest), "layout", 42)
	require.NoError(t, err)
	s.Close()

	assert.Equal(t, []interface{}{"layout", 42}, got)
}

func TestOpenStreamPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "values.test")
	require.NoError(t, os.WriteFile(path, []byte("from disk"), 0o644))

	r := fmtstream.NewRegistry()
	h := fmtstream.NamedHandler("mem")
	require.NoError(t, r.Register(ftest, h))

	var seen string
	require.NoError(t, r.RegisterOpener(ftest, h, func(h fmtstream.Handler, f fmtstream.Format, rc io.ReadCloser, args ...interface{}) (fmtstream.Stream, error) {
		defer rc.Close()
		b, err := io.ReadAll(rc)
		if err != nil {
			return nil, err
		}
		seen = string(b)
		return memstream.New(), nil
	}))

	s, err := r.OpenStream(fmtstream.PathResource(path).WithFormat(ftest))
	require.NoError(t, err)
	s.Close()
	assert.Equal(t, "from disk", seen)

	_, err = r.OpenStream(fmtstream.PathResource(filepath.Join(t.TempDir(), "absent")).WithFormat(ftest))
	assert.Error(t, err)
}

func TestOpenStreamRejectsMalformedResources(t *testing.T) {
	r, _ := newTestRegistry(t)

	var usage *fmtstream.UsageError
	_, err := r.OpenStream(fmtstream.Resource{Format: ftest})
	require.ErrorAs(t, err, &usage)

	res := fmtstream.Resource{Path: "some/path", Reader: strings.NewReader(""), Format: ftest}
	_, err = r.OpenStream(res)
	require.ErrorAs(t, err, &usage)
}

// countingStream wraps a Stream and counts Close calls.
type countingStream struct {
	fmtstream.Stream
	closes int
}

func (c *countingStream) Close() error {
	c.closes++
	return c.Stream.Close()
}

func TestWithStreamClosesExactlyOnce(t *testing.T) {
	r := fmtstream.NewRegistry()
	h := fmtstream.NamedHandler("mem")
	require.NoError(t, r.Register(ftest, h))

	counter := &countingStream{Stream: memstream.New("a")}
	require.NoError(t, r.RegisterOpener(ftest, h, func(h fmtstream.Handler, f fmtstream.Format, rc io.ReadCloser, args ...interface{}) (fmtstream.Stream, error) {
		rc.Close()
		return counter, nil
	}))

	err := r.WithStream(fmtstream.ReaderResource(strings.NewReader("")).WithFormat(ftest), func(s fmtstream.Stream) error {
		assert.Equal(t, 0, counter.closes)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, counter.closes)
}

func TestWithStreamClosesOnCallbackFailure(t *testing.T) {
	r := fmtstream.NewRegistry()
	h := fmtstream.NamedHandler("mem")
	require.NoError(t, r.Register(ftest, h))

	counter := &countingStream{Stream: memstream.New()}
	require.NoError(t, r.RegisterOpener(ftest, h, func(h fmtstream.Handler, f fmtstream.Format, rc io.ReadCloser, args ...interface{}) (fmtstream.Stream, error) {
		rc.Close()
		return counter, nil
	}))

	boom := errors.New("boom")
	err := r.WithStream(fmtstream.ReaderResource(strings.NewReader("")).WithFormat(ftest), func(s fmtstream.Stream) error {
		return boom
	})
	assert.Equal(t, boom, err)
	assert.Equal(t, 1, counter.closes)
}

func TestWithStreamOpenFailure(t *testing.T) {
	r := fmtstream.NewRegistry()

	called := false
	err := r.WithStream(fmtstream.ReaderResource(strings.NewReader("")).WithFormat(ftest), func(s fmtstream.Stream) error {
		called = true
		return nil
	})
	var nh *fmtstream.NoHandlerError
	require.ErrorAs(t, err, &nh)
	assert.False(t, called)
}
