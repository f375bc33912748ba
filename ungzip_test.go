// Copyright 2021 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package ungzip_test

import (
	"bytes"
	"compress/gzip"
	"io"
	"testing"

	"github.com/cloudriff/ungzip"
)

// gzipOf compresses data with the standard library's encoder, which this
// package's decoder must stay compatible with (spec's reference
// compatibility property).
func gzipOf(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDecompressRoundTrip(t *testing.T) {
	for _, tc := range [][]byte{
		[]byte(""),
		[]byte("abc"),
		bytes.Repeat([]byte("a"), 1000),
		bytes.Repeat([]byte("hello world, hello world, "), 500),
	} {
		compressed := gzipOf(t, tc)
		var out bytes.Buffer
		if err := ungzip.Decompress(bytes.NewReader(compressed), &out); err != nil {
			t.Fatalf("Decompress(%d bytes): %v", len(tc), err)
		}
		if !bytes.Equal(out.Bytes(), tc) {
			t.Errorf("got %d bytes, want %d bytes", out.Len(), len(tc))
		}
	}
}

func TestDecompressConcatenatedMembers(t *testing.T) {
	first := gzipOf(t, []byte("hello, "))
	second := gzipOf(t, []byte("world"))

	var out bytes.Buffer
	concatenated := append(append([]byte{}, first...), second...)
	if err := ungzip.Decompress(bytes.NewReader(concatenated), &out); err != nil {
		t.Fatal(err)
	}
	if got, want := out.String(), "hello, world"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDecompressWithChecksumVerification(t *testing.T) {
	compressed := gzipOf(t, []byte("checksummed data"))
	var out bytes.Buffer
	err := ungzip.Decompress(bytes.NewReader(compressed), &out, ungzip.WithChecksumVerification())
	if err != nil {
		t.Fatal(err)
	}
	if out.String() != "checksummed data" {
		t.Errorf("got %q", out.String())
	}
}

func TestDecompressWithChecksumVerificationDetectsCorruption(t *testing.T) {
	compressed := gzipOf(t, []byte("checksummed data"))
	// Invert every bit of the last byte of the trailer's CRC-32 field.
	compressed[len(compressed)-5] ^= 0xff

	var out bytes.Buffer
	err := ungzip.Decompress(bytes.NewReader(compressed), &out, ungzip.WithChecksumVerification())
	if err == nil {
		t.Fatal("expected checksum mismatch error")
	}
}

func TestNewReader(t *testing.T) {
	compressed := gzipOf(t, []byte("via io.Reader"))
	r, err := ungzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		t.Fatal(err)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "via io.Reader" {
		t.Errorf("got %q", got)
	}
}
