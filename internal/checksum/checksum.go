// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package checksum implements the CRC32 used by GPT headers and partition entry arrays.
package checksum

import (
	"hash/crc32"
	"sync"
)

// Polynomial is the reversed ISO-3309 (IEEE 802.3) polynomial.
const Polynomial = 0xedb88320

var ieeeTable = sync.OnceValue(func() *crc32.Table {
	return crc32.MakeTable(Polynomial)
})

// Calculate returns the CRC32 of buf.
//
// The register is seeded with 0xFFFFFFFF and the result is complemented,
// which matches the UEFI definition of the GPT checksums.
func Calculate(buf []byte) uint32 {
	return crc32.Checksum(buf, ieeeTable())
}

// Verify returns true if the checksum of buf matches expected.
func Verify(buf []byte, expected uint32) bool {
	return Calculate(buf) == expected
}
