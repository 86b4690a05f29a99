// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package binutil provides little-endian field accessors for on-disk structures.
//
// Accessors take the containing buffer and the field offset, so decoders
// read like the on-disk layout tables they implement.
package binutil

import "encoding/binary"

// Uint16LE reads a little-endian uint16 at off.
func Uint16LE(buf []byte, off int) uint16 {
	return binary.LittleEndian.Uint16(buf[off : off+2])
}

// Uint32LE reads a little-endian uint32 at off.
func Uint32LE(buf []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(buf[off : off+4])
}

// Uint64LE reads a little-endian uint64 at off.
func Uint64LE(buf []byte, off int) uint64 {
	return binary.LittleEndian.Uint64(buf[off : off+8])
}

// PutUint16LE writes a little-endian uint16 at off.
func PutUint16LE(buf []byte, off int, v uint16) {
	binary.LittleEndian.PutUint16(buf[off:off+2], v)
}

// PutUint32LE writes a little-endian uint32 at off.
func PutUint32LE(buf []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(buf[off:off+4], v)
}

// PutUint64LE writes a little-endian uint64 at off.
func PutUint64LE(buf []byte, off int, v uint64) {
	binary.LittleEndian.PutUint64(buf[off:off+8], v)
}

// IsZero returns true if all bytes in buf are zero.
func IsZero(buf []byte) bool {
	for _, b := range buf {
		if b != 0 {
			return false
		}
	}

	return true
}
