// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package gptutil implements helper functions for GPT GUIDs.
package gptutil

import "github.com/google/uuid"

// GUIDToUUID converts a GPT GUID to a UUID.
//
// GPT stores the first three GUID fields little-endian, the rest as is.
func GUIDToUUID(g []byte) []byte {
	return append(
		[]byte{
			g[3], g[2], g[1], g[0],
			g[5], g[4],
			g[7], g[6],
			g[8], g[9],
		},
		g[10:16]...,
	)
}

// UUIDToGUID converts a UUID to a GPT GUID.
func UUIDToGUID(u []byte) []byte {
	return GUIDToUUID(u)
}

// ReadGUID decodes the on-disk GUID at off.
func ReadGUID(buf []byte, off int) uuid.UUID {
	var u uuid.UUID

	copy(u[:], GUIDToUUID(buf[off:off+16]))

	return u
}

// PutGUID encodes u as an on-disk GUID at off.
func PutGUID(buf []byte, off int, u uuid.UUID) {
	copy(buf[off:off+16], UUIDToGUID(u[:]))
}

// DiskSizer is an interface for block devices that can provide their sector size and total size.
type DiskSizer interface {
	GetSectorSize() uint
	GetSize() uint64
}

// LastLBA returns the last logical block address of the device.
func LastLBA(r DiskSizer) (uint64, bool) {
	sectorSize := r.GetSectorSize()
	size := r.GetSize()

	if sectorSize == 0 || uint64(sectorSize) > size {
		return 0, false
	}

	return (size / uint64(sectorSize)) - 1, true
}
