// Copyright 2021 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package deflate

import (
	"io"

	"github.com/cloudriff/ungzip/internal/window"
)

// WriteFailure wraps an I/O error returned by the underlying sink writer.
type WriteFailure struct {
	Err error
}

func (e *WriteFailure) Error() string { return "deflate: write failure: " + e.Err.Error() }
func (e *WriteFailure) Unwrap() error { return e.Err }

// sink buffers decoded output in an 8192-byte chunk before flushing to the
// underlying writer, and mirrors every emitted byte into the sliding
// window so that later back-references can find it.
type sink struct {
	w   io.Writer
	win *window.Window
	buf [8192]byte
	n   int
}

func newSink(w io.Writer, win *window.Window) *sink {
	return &sink{w: w, win: win}
}

// WriteByte emits a single decoded byte to the window and the output
// buffer, flushing the buffer first if it is full.
func (s *sink) WriteByte(b byte) error {
	if s.n == len(s.buf) {
		if err := s.flush(); err != nil {
			return err
		}
	}
	s.win.Put(b)
	s.buf[s.n] = b
	s.n++
	return nil
}

func (s *sink) flush() error {
	if s.n == 0 {
		return nil
	}
	if _, err := s.w.Write(s.buf[:s.n]); err != nil {
		return &WriteFailure{Err: err}
	}
	s.n = 0
	return nil
}

// Flush writes out any buffered bytes. Callers must call it once after the
// decoder finishes successfully; on failure the caller discards the
// partial output rather than flushing it.
func (s *sink) Flush() error { return s.flush() }
