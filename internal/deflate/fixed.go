// Copyright 2021 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package deflate

import "github.com/cloudriff/ungzip/internal/huffman"

// fixed decodes a BTYPE=01 block using the predefined RFC 1951 section
// 3.2.6 code lengths. The two fixed trees are built once and cached on
// the Decoder, since they never change within a stream.
//
// The distance alphabet is decoded through a genuine canonical tree (all
// 30 symbols at length 5) rather than the reference implementation's
// raw-5-bit-then-reverse shortcut: both give the same symbol, and the
// tree keeps distance decoding uniform with the dynamic-block path.
func (d *Decoder) fixed() error {
	if d.fixedLit == nil {
		lit, err := huffman.Build(fixedLitLengths(), huffman.MaxBits)
		if err != nil {
			return err
		}
		dist, err := huffman.Build(fixedDistLengths(), huffman.MaxBits)
		if err != nil {
			return err
		}
		d.fixedLit = lit
		d.fixedDist = dist
	}

	return d.expand(d.fixedLit, func() (int, error) {
		return d.fixedDist.Decode(d.br)
	})
}
