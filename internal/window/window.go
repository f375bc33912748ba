// Copyright 2021 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package window implements the 32 KiB sliding-window back-reference
// buffer used by DEFLATE (RFC 1951 section 3.2.1), grounded on the ring
// buffer design in original_source/decompress.c's back_refs array.
package window

// Size is the DEFLATE sliding window size: the largest distance a
// back-reference may name.
const Size = 32768

// Window is a ring buffer retaining the most recently emitted output
// bytes, used as the source for LZ77 back-reference copies. The zero
// value is an empty window ready for use.
type Window struct {
	buf    [Size]byte
	pos    int // next write position
	filled bool
}

// Put appends b to the window, overwriting the oldest retained byte once
// the window has wrapped.
func (w *Window) Put(b byte) {
	w.buf[w.pos] = b
	w.pos++
	if w.pos == Size {
		w.pos = 0
		w.filled = true
	}
}

// Available reports how many bytes of history are currently retrievable,
// i.e. the number of bytes emitted in the current stream, capped at Size.
func (w *Window) Available() int {
	if w.filled {
		return Size
	}
	return w.pos
}

// At returns the byte written `distance` puts ago, with distance in
// [1, Available()]. Callers must validate distance against Available
// first; At does not bounds-check.
func (w *Window) At(distance int) byte {
	idx := w.pos - distance
	if idx < 0 {
		idx += Size
	}
	return w.buf[idx]
}
