// Copyright 2021 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package deflate

import "github.com/cloudriff/ungzip/internal/huffman"

// dynamic decodes a BTYPE=10 block: reads the header-compressed
// literal/length and distance code-length vectors, builds their
// Huffman trees, then runs the symbol-expansion loop.
func (d *Decoder) dynamic() error {
	hlit, err := d.br.ReadBits(5)
	if err != nil {
		return err
	}
	hdist, err := d.br.ReadBits(5)
	if err != nil {
		return err
	}
	hclen, err := d.br.ReadBits(4)
	if err != nil {
		return err
	}

	llCount := int(hlit) + 257
	dCount := int(hdist) + 1
	clCount := int(hclen) + 4

	var clLengths [19]uint8
	for i := 0; i < clCount; i++ {
		v, err := d.br.ReadBits(3)
		if err != nil {
			return err
		}
		clLengths[clcOrder[i]] = uint8(v)
	}

	clTree, err := huffman.Build(clLengths[:], 7)
	if err != nil {
		return err
	}

	lengths, err := d.decodeCodeLengths(clTree, llCount+dCount)
	if err != nil {
		return err
	}

	litTree, err := huffman.Build(lengths[:llCount], huffman.MaxBits)
	if err != nil {
		return err
	}
	distTree, err := huffman.Build(lengths[llCount:], huffman.MaxBits)
	if err != nil {
		return err
	}

	return d.expand(litTree, func() (int, error) {
		return distTree.Decode(d.br)
	})
}

// decodeCodeLengths decodes a single sequence of `total` code lengths
// using the code-length alphabet, expanding repeat codes 16/17/18 (spec
// section 4.7 step 4). Repeat runs may cross the boundary between the
// literal/length and distance portions of the sequence.
func (d *Decoder) decodeCodeLengths(clTree *huffman.Tree, total int) ([]uint8, error) {
	lengths := make([]uint8, 0, total)
	previous := uint8(0)

	for len(lengths) < total {
		sym, err := clTree.Decode(d.br)
		if err != nil {
			return nil, translateSymbolError(err)
		}

		switch {
		case sym <= 15:
			previous = uint8(sym)
			lengths = append(lengths, previous)

		case sym == 16:
			if len(lengths) == 0 {
				return nil, CorruptedStream("repeat code 16 at position 0")
			}
			n, err := d.br.ReadBits(2)
			if err != nil {
				return nil, err
			}
			count := int(n) + 3
			if len(lengths)+count > total {
				return nil, CorruptedStream("repeat code 16 overruns code-length count")
			}
			for i := 0; i < count; i++ {
				lengths = append(lengths, previous)
			}

		case sym == 17:
			n, err := d.br.ReadBits(3)
			if err != nil {
				return nil, err
			}
			count := int(n) + 3
			if len(lengths)+count > total {
				return nil, CorruptedStream("repeat code 17 overruns code-length count")
			}
			for i := 0; i < count; i++ {
				lengths = append(lengths, 0)
			}
			previous = 0

		case sym == 18:
			n, err := d.br.ReadBits(7)
			if err != nil {
				return nil, err
			}
			count := int(n) + 11
			if len(lengths)+count > total {
				return nil, CorruptedStream("repeat code 18 overruns code-length count")
			}
			for i := 0; i < count; i++ {
				lengths = append(lengths, 0)
			}
			previous = 0

		default:
			return nil, CorruptedStream("invalid code-length symbol")
		}
	}

	return lengths, nil
}
