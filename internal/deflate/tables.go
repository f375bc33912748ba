// Copyright 2021 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package deflate

// lengthEntry is one row of the length_table from RFC 1951 section 3.2.5:
// literal/length symbols 257-285 map to a base match length plus a count
// of extra bits read to refine it.
type lengthEntry struct {
	base  int
	extra uint
}

// lengthTable indexes by symbol-257, covering symbols 257..285.
var lengthTable = [29]lengthEntry{
	{3, 0}, {4, 0}, {5, 0}, {6, 0}, {7, 0}, {8, 0}, {9, 0}, {10, 0},
	{11, 1}, {13, 1}, {15, 1}, {17, 1},
	{19, 2}, {23, 2}, {27, 2}, {31, 2},
	{35, 3}, {43, 3}, {51, 3}, {59, 3},
	{67, 4}, {83, 4}, {99, 4}, {115, 4},
	{131, 5}, {163, 5}, {195, 5}, {227, 5},
	{258, 0},
}

// distEntry is one row of the distance table from RFC 1951 section 3.2.5.
type distEntry struct {
	base  int
	extra uint
}

// distTable indexes directly by distance symbol 0..29.
var distTable = [30]distEntry{
	{1, 0}, {2, 0}, {3, 0}, {4, 0},
	{5, 1}, {7, 1},
	{9, 2}, {13, 2},
	{17, 3}, {25, 3},
	{33, 4}, {49, 4},
	{65, 5}, {97, 5},
	{129, 6}, {193, 6},
	{257, 7}, {385, 7},
	{513, 8}, {769, 8},
	{1025, 9}, {1537, 9},
	{2049, 10}, {3073, 10},
	{4097, 11}, {6145, 11},
	{8193, 12}, {12289, 12},
	{16385, 13}, {24577, 13},
}

// clcOrder is the order in which the 19 code-length-alphabet code lengths
// are transmitted in a dynamic block header (RFC 1951 section 3.2.7).
var clcOrder = [19]int{16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15}

// fixedLitLengths are the RFC 1951 section 3.2.6 fixed literal/length code
// lengths, built once and reused for every fixed-Huffman block.
func fixedLitLengths() []uint8 {
	l := make([]uint8, 288)
	for i := 0; i < 144; i++ {
		l[i] = 8
	}
	for i := 144; i < 256; i++ {
		l[i] = 9
	}
	for i := 256; i < 280; i++ {
		l[i] = 7
	}
	for i := 280; i < 288; i++ {
		l[i] = 8
	}
	return l
}

// fixedDistLengths are the RFC 1951 section 3.2.6 fixed distance code
// lengths: all 30 symbols at a uniform 5 bits.
func fixedDistLengths() []uint8 {
	l := make([]uint8, 30)
	for i := range l {
		l[i] = 5
	}
	return l
}
