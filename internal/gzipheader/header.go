// Copyright 2021 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package gzipheader parses gzip member framing (RFC 1952): the fixed
// 10-byte header and its optional fields, and the 8-byte trailer. It
// consumes a bit cursor and leaves it positioned at the first bit of the
// member's DEFLATE stream, handing control back to the core decoder.
package gzipheader

import "github.com/cloudriff/ungzip/internal/bitio"

const (
	magic1 = 0x1f
	magic2 = 0x8b
	cmDeflate = 8
)

const (
	flagText = 1 << iota
	flagHCRC
	flagExtra
	flagName
	flagComment
	flagReserved1
	flagReserved2
	flagReserved3
)

// InvalidGzipHeader is returned when a member's header is malformed: bad
// magic, an unsupported compression method, reserved flag bits set, or a
// truncated optional field.
type InvalidGzipHeader string

func (e InvalidGzipHeader) Error() string { return "gzip: invalid header: " + string(e) }

// Header holds the fixed fields of a gzip member header; the optional
// FNAME/FCOMMENT fields are exposed as decoded strings when present.
type Header struct {
	MTIME   uint32
	XFL     byte
	OS      byte
	Name    string
	Comment string
	HasName    bool
	HasComment bool
}

// Parse reads one gzip member header from br, advancing the cursor to
// the first bit of the member's DEFLATE stream.
func Parse(br *bitio.Reader) (*Header, error) {
	fixed, err := br.ReadAlignedBytes(10)
	if err != nil {
		return nil, InvalidGzipHeader("truncated fixed header")
	}
	if fixed[0] != magic1 || fixed[1] != magic2 {
		return nil, InvalidGzipHeader("bad magic number")
	}
	if fixed[2] != cmDeflate {
		return nil, InvalidGzipHeader("unsupported compression method")
	}
	flg := fixed[3]
	if flg&(flagReserved1|flagReserved2|flagReserved3) != 0 {
		return nil, InvalidGzipHeader("reserved FLG bits set")
	}

	h := &Header{
		MTIME: uint32(fixed[4]) | uint32(fixed[5])<<8 | uint32(fixed[6])<<16 | uint32(fixed[7])<<24,
		XFL:   fixed[8],
		OS:    fixed[9],
	}

	if flg&flagExtra != 0 {
		xlenBytes, err := br.ReadAlignedBytes(2)
		if err != nil {
			return nil, InvalidGzipHeader("truncated FEXTRA length")
		}
		xlen := int(xlenBytes[0]) | int(xlenBytes[1])<<8
		if _, err := br.ReadAlignedBytes(xlen); err != nil {
			return nil, InvalidGzipHeader("truncated FEXTRA data")
		}
	}

	if flg&flagName != 0 {
		name, err := readCString(br)
		if err != nil {
			return nil, InvalidGzipHeader("truncated FNAME")
		}
		h.Name = name
		h.HasName = true
	}

	if flg&flagComment != 0 {
		comment, err := readCString(br)
		if err != nil {
			return nil, InvalidGzipHeader("truncated FCOMMENT")
		}
		h.Comment = comment
		h.HasComment = true
	}

	if flg&flagHCRC != 0 {
		if _, err := br.ReadAlignedBytes(2); err != nil {
			return nil, InvalidGzipHeader("truncated FHCRC")
		}
	}

	return h, nil
}

// readCString reads bytes one at a time until a NUL terminator.
func readCString(br *bitio.Reader) (string, error) {
	var b []byte
	for {
		chunk, err := br.ReadAlignedBytes(1)
		if err != nil {
			return "", err
		}
		if chunk[0] == 0 {
			break
		}
		b = append(b, chunk[0])
	}
	return string(b), nil
}
