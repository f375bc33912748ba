// Copyright 2021 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package ungzip decompresses gzip-framed data (RFC 1952) carrying a
// DEFLATE bitstream (RFC 1951): one or more concatenated members, each
// decoded in full before the next member's header is parsed.
package ungzip

import (
	"bytes"
	"hash"
	"hash/crc32"
	"io"

	"github.com/cloudriff/ungzip/internal/bitio"
	"github.com/cloudriff/ungzip/internal/deflate"
	"github.com/cloudriff/ungzip/internal/gzipheader"
	"github.com/cloudriff/ungzip/internal/window"
)

type options struct {
	verifyChecksum bool
}

// ReaderOption configures Decompress and NewReader.
type ReaderOption func(*options)

// WithChecksumVerification enables checking each member's trailing
// CRC-32 and ISIZE against the bytes actually produced, returning a
// gzipheader.ChecksumMismatch on failure. It is off by default, matching
// the reference decoder this package generalizes, which parses but
// never validates the trailer.
func WithChecksumVerification() ReaderOption {
	return func(o *options) { o.verifyChecksum = true }
}

// Decompress reads gzip-framed data from r in full, decodes every
// member it contains, and writes the concatenated uncompressed bytes to
// w. The input is read entirely into memory before decoding begins, per
// this package's in-memory, single-pass design.
func Decompress(r io.Reader, w io.Writer, opts ...ReaderOption) error {
	buf, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	o := &options{}
	for _, fn := range opts {
		fn(o)
	}

	br := bitio.New(buf)
	var win window.Window

	for br.BytePos() < len(buf) {
		if _, err := gzipheader.Parse(br); err != nil {
			return err
		}

		sink := w
		var tracker *crcSizeWriter
		if o.verifyChecksum {
			tracker = newCRCSizeWriter(w)
			sink = tracker
		}

		dec := deflate.NewDecoder(br, sink, &win)
		if err := dec.RunMember(); err != nil {
			return err
		}

		trailer, err := gzipheader.ParseTrailer(br)
		if err != nil {
			return err
		}
		if o.verifyChecksum {
			if err := trailer.Verify(tracker.crc.Sum32(), tracker.size); err != nil {
				return err
			}
		}
	}
	return nil
}

// NewReader decompresses all of r eagerly and returns an io.Reader over
// the result. This package has no streaming decode path (the Non-goals
// this decoder follows exclude it): the whole input must already be in
// memory to parse even the first member, so there is nothing to gain
// from a lazily-pulled reader.
func NewReader(r io.Reader, opts ...ReaderOption) (io.Reader, error) {
	var out bytes.Buffer
	if err := Decompress(r, &out, opts...); err != nil {
		return nil, err
	}
	return bytes.NewReader(out.Bytes()), nil
}

// crcSizeWriter tees writes to an underlying writer while accumulating a
// CRC-32 and byte count, used to verify a member's trailer.
type crcSizeWriter struct {
	w    io.Writer
	crc  hash.Hash32
	size uint32
}

func newCRCSizeWriter(w io.Writer) *crcSizeWriter {
	return &crcSizeWriter{w: w, crc: crc32.NewIEEE()}
}

func (c *crcSizeWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	if n > 0 {
		c.crc.Write(p[:n])
		c.size += uint32(n)
	}
	return n, err
}
