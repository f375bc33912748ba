// Copyright 2021 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package huffman_test

import (
	"testing"

	"github.com/cloudriff/ungzip/internal/bitio"
	"github.com/cloudriff/ungzip/internal/huffman"
)

// fixedLiteralLengths returns the RFC 1951 section 3.2.6 fixed
// literal/length code lengths.
func fixedLiteralLengths() []uint8 {
	lengths := make([]uint8, 288)
	for i := 0; i < 144; i++ {
		lengths[i] = 8
	}
	for i := 144; i < 256; i++ {
		lengths[i] = 9
	}
	for i := 256; i < 280; i++ {
		lengths[i] = 7
	}
	for i := 280; i < 288; i++ {
		lengths[i] = 8
	}
	return lengths
}

func TestGenerateCodesFixedLiteralTable(t *testing.T) {
	codes, err := huffman.GenerateCodes(fixedLiteralLengths(), 15)
	if err != nil {
		t.Fatal(err)
	}

	for _, tc := range []struct {
		sym  int
		bits string
	}{
		{0, "00110000"},
		{143, "10111111"},
		{144, "110010000"},
		{255, "111111111"},
		{256, "0000000"},
		{279, "0010111"},
		{280, "11000000"},
		{287, "11000111"},
	} {
		got := formatBits(codes[tc.sym], len(tc.bits))
		if got != tc.bits {
			t.Errorf("symbol %d: got %s, want %s", tc.sym, got, tc.bits)
		}
	}
}

func formatBits(code uint16, width int) string {
	b := make([]byte, width)
	for i := 0; i < width; i++ {
		bit := (code >> uint(width-1-i)) & 1
		if bit == 1 {
			b[i] = '1'
		} else {
			b[i] = '0'
		}
	}
	return string(b)
}

func TestBuildAndDecodeRoundTrip(t *testing.T) {
	lengths := fixedLiteralLengths()
	tree, err := huffman.Build(lengths, 15)
	if err != nil {
		t.Fatal(err)
	}

	codes, err := huffman.GenerateCodes(lengths, 15)
	if err != nil {
		t.Fatal(err)
	}

	for _, sym := range []int{0, 1, 143, 144, 200, 255, 256, 279, 280, 287} {
		buf := encodeMSBFirst(codes[sym], lengths[sym])
		got, err := tree.Decode(bitio.New(buf))
		if err != nil {
			t.Fatalf("symbol %d: decode error: %v", sym, err)
		}
		if got != sym {
			t.Errorf("symbol %d: decoded %d", sym, got)
		}
	}
}

// encodeMSBFirst packs a DEFLATE Huffman code (sent most-significant-bit
// first) into a byte slice suitable for feeding to a bitio.Reader, which
// consumes bits in ascending bit-index (arrival) order.
func encodeMSBFirst(code uint16, length uint8) []byte {
	nbytes := (int(length) + 7) / 8
	if nbytes == 0 {
		nbytes = 1
	}
	buf := make([]byte, nbytes)
	bitPos := 0
	for i := int(length) - 1; i >= 0; i-- {
		bit := (code >> uint(i)) & 1
		if bit == 1 {
			buf[bitPos/8] |= 1 << uint(bitPos%8)
		}
		bitPos++
	}
	return buf
}

func TestBuildRejectsDuplicateCode(t *testing.T) {
	// Three symbols all claiming a 1-bit code: only two 1-bit codes
	// ("0" and "1") exist, so this alphabet is over-subscribed.
	lengths := []uint8{1, 1, 1}
	if _, err := huffman.Build(lengths, 15); err == nil {
		t.Fatal("expected error for over-subscribed code")
	}
}

func TestBuildRejectsLengthBeyondLimit(t *testing.T) {
	lengths := []uint8{8}
	if _, err := huffman.Build(lengths, 7); err == nil {
		t.Fatal("expected error for length exceeding limit")
	}
}

func TestGenerateCodesOrdering(t *testing.T) {
	// Spec section 8: canonical-code round-trip property -- within a
	// length class, codes are assigned in increasing symbol-index order.
	lengths := []uint8{3, 3, 3, 3, 3, 2, 4, 4}
	codes, err := huffman.GenerateCodes(lengths, 15)
	if err != nil {
		t.Fatal(err)
	}
	for l := uint8(1); l <= 4; l++ {
		var lastSym = -1
		var lastCode = -1
		for sym, length := range lengths {
			if length != l {
				continue
			}
			if lastSym != -1 && int(codes[sym]) <= lastCode {
				t.Errorf("length %d: code for symbol %d (%d) not greater than previous (%d)", l, sym, codes[sym], lastCode)
			}
			lastSym = sym
			lastCode = int(codes[sym])
		}
	}
}
