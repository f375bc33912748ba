// Copyright 2021 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package deflate

// CorruptedStream is returned when the compressed bitstream violates the
// DEFLATE format: an invalid block type, a stored-block length mismatch,
// an out-of-range symbol, or a back-reference distance beyond the window.
type CorruptedStream string

func (e CorruptedStream) Error() string { return "deflate: corrupted stream: " + string(e) }
