// Copyright 2021 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package gzipheader

import "github.com/cloudriff/ungzip/internal/bitio"

// Trailer is a gzip member's 8-byte trailer: the CRC-32 of the
// uncompressed data and its length modulo 2^32.
type Trailer struct {
	CRC32 uint32
	ISIZE uint32
}

// ParseTrailer reads the 8-byte trailer following a member's DEFLATE
// stream. The core decoder has already aligned the cursor to a byte
// boundary by the time this is called.
func ParseTrailer(br *bitio.Reader) (*Trailer, error) {
	b, err := br.ReadAlignedBytes(8)
	if err != nil {
		return nil, InvalidGzipHeader("truncated trailer")
	}
	return &Trailer{
		CRC32: uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24,
		ISIZE: uint32(b[4]) | uint32(b[5])<<8 | uint32(b[6])<<16 | uint32(b[7])<<24,
	}, nil
}

// ChecksumMismatch is returned when WithChecksumVerification is enabled
// and a member's trailer does not match the bytes actually produced.
type ChecksumMismatch string

func (e ChecksumMismatch) Error() string { return "gzip: checksum mismatch: " + string(e) }

// Verify checks t against the CRC-32 and byte count actually produced
// for this member, returning ChecksumMismatch on a mismatch. gotSize is the
// uncompressed byte count modulo 2^32, as ISIZE stores it.
func (t *Trailer) Verify(gotCRC32 uint32, gotSize uint32) error {
	if t.CRC32 != gotCRC32 {
		return ChecksumMismatch("CRC-32 does not match decoded data")
	}
	if t.ISIZE != gotSize {
		return ChecksumMismatch("ISIZE does not match decoded data length")
	}
	return nil
}
