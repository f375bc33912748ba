// Copyright 2021 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package deflate decodes a raw DEFLATE bitstream (RFC 1951): the block
// loop, the three block types, canonical-Huffman symbol decoding, and
// length/distance back-reference expansion over a 32 KiB sliding window.
//
// deflate consumes a bit cursor already positioned at the first bit of
// the first block and leaves it byte-aligned immediately after the final
// block, ready for a caller (gzipheader) to resume reading a trailer.
package deflate

import (
	"io"

	"github.com/cloudriff/ungzip/internal/bitio"
	"github.com/cloudriff/ungzip/internal/huffman"
	"github.com/cloudriff/ungzip/internal/window"
)

// bitReader is the subset of bitio.Reader the block decoders need.
type bitReader interface {
	ReadBit() (uint, error)
	ReadBits(n uint) (uint16, error)
	AlignToByte()
	ReadAlignedBytes(n int) ([]byte, error)
}

// Decoder runs the DEFLATE block loop over a bit cursor, emitting decoded
// bytes to a sink backed by a shared sliding window. A single Decoder may
// be driven across multiple gzip members so that the window and fixed
// Huffman trees are built once per stream, not once per member.
type Decoder struct {
	br  bitReader
	win *window.Window
	snk *sink

	fixedLit  *huffman.Tree
	fixedDist *huffman.Tree
}

// NewDecoder returns a Decoder that reads blocks from br and writes
// decoded output to w, retaining back-reference history in win.
func NewDecoder(br *bitio.Reader, w io.Writer, win *window.Window) *Decoder {
	return &Decoder{br: br, win: win, snk: newSink(w, win)}
}

// RunMember decodes blocks until one with BFINAL=1 completes, then
// byte-aligns the cursor and flushes the sink. It does not reset the
// sliding window, so back-references spanning a member boundary resolve
// against output from prior members, per the stream-lifetime window
// model this decoder follows.
func (d *Decoder) RunMember() error {
	for {
		bfinal, err := d.br.ReadBit()
		if err != nil {
			return err
		}
		btype, err := d.br.ReadBits(2)
		if err != nil {
			return err
		}
		switch btype {
		case 0:
			if err := d.stored(); err != nil {
				return err
			}
		case 1:
			if err := d.fixed(); err != nil {
				return err
			}
		case 2:
			if err := d.dynamic(); err != nil {
				return err
			}
		default:
			return CorruptedStream("reserved block type 3")
		}
		if bfinal == 1 {
			break
		}
	}
	d.br.AlignToByte()
	return d.snk.Flush()
}

// expand runs the symbol-expansion loop (spec section 4.8) against a
// literal/length tree and a distance decoder, until the end-of-block
// symbol (256) is seen.
func (d *Decoder) expand(lit *huffman.Tree, distSym func() (int, error)) error {
	for {
		sym, err := lit.Decode(d.br)
		if err != nil {
			return translateSymbolError(err)
		}

		switch {
		case sym < 256:
			if err := d.snk.WriteByte(byte(sym)); err != nil {
				return err
			}
		case sym == 256:
			return nil
		case sym <= 285:
			length, err := d.decodeLength(sym)
			if err != nil {
				return err
			}
			dsym, err := distSym()
			if err != nil {
				return translateSymbolError(err)
			}
			if dsym < 0 || dsym > 29 {
				return CorruptedStream("distance symbol out of range")
			}
			distance, err := d.decodeDistance(dsym)
			if err != nil {
				return err
			}
			if err := d.copyBackReference(distance, length); err != nil {
				return err
			}
		default:
			return CorruptedStream("literal/length symbol out of range")
		}
	}
}

func (d *Decoder) decodeLength(sym int) (int, error) {
	entry := lengthTable[sym-257]
	e, err := d.br.ReadBits(entry.extra)
	if err != nil {
		return 0, err
	}
	if sym == 284 && e == 31 {
		return 0, CorruptedStream("length 258 must use symbol 285, not 284 with extra=31")
	}
	return entry.base + int(e), nil
}

func (d *Decoder) decodeDistance(sym int) (int, error) {
	entry := distTable[sym]
	e, err := d.br.ReadBits(entry.extra)
	if err != nil {
		return 0, err
	}
	return entry.base + int(e), nil
}

// copyBackReference copies length bytes from distance bytes before the
// current write position, byte by byte so that self-overlapping runs
// (distance < length) are reproduced correctly.
func (d *Decoder) copyBackReference(distance, length int) error {
	if distance < 1 || distance > window.Size || distance > d.win.Available() {
		return CorruptedStream("back-reference distance exceeds window contents")
	}
	for i := 0; i < length; i++ {
		b := d.win.At(distance)
		if err := d.snk.WriteByte(b); err != nil {
			return err
		}
	}
	return nil
}

// translateSymbolError maps the sentinel EOF errors used by bitio and
// huffman onto bitio.ErrUnexpectedEOF, the single value deflate callers
// compare against.
func translateSymbolError(err error) error {
	if err == huffman.ErrUnexpectedEOF {
		return bitio.ErrUnexpectedEOF
	}
	return err
}
