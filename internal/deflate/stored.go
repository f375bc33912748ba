// Copyright 2021 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package deflate

// stored decodes a BTYPE=00 block: byte-align, read LEN/NLEN, copy LEN
// raw bytes straight to the sink.
func (d *Decoder) stored() error {
	d.br.AlignToByte()

	lenBytes, err := d.br.ReadAlignedBytes(2)
	if err != nil {
		return err
	}
	nlenBytes, err := d.br.ReadAlignedBytes(2)
	if err != nil {
		return err
	}
	length := uint16(lenBytes[0]) | uint16(lenBytes[1])<<8
	nlen := uint16(nlenBytes[0]) | uint16(nlenBytes[1])<<8
	if nlen != ^length {
		return CorruptedStream("stored block NLEN is not the complement of LEN")
	}

	data, err := d.br.ReadAlignedBytes(int(length))
	if err != nil {
		return err
	}
	for _, b := range data {
		if err := d.snk.WriteByte(b); err != nil {
			return err
		}
	}
	return nil
}
