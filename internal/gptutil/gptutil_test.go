// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package gptutil_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/siderolabs/go-disklayout/internal/gptutil"
)

func TestGUIDToUUID(t *testing.T) {
	u := []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef, 0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77}

	guid := []byte{0x67, 0x45, 0x23, 0x01, 0xab, 0x89, 0xef, 0xcd, 0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77}

	assert.Equal(t, u, gptutil.GUIDToUUID(guid))
	assert.Equal(t, guid, gptutil.GUIDToUUID(u))
	assert.Equal(t, u, gptutil.GUIDToUUID(gptutil.UUIDToGUID(u)))
}

func TestReadPutGUID(t *testing.T) {
	// EFI System Partition type GUID as stored on disk.
	onDisk := []byte{0x28, 0x73, 0x2a, 0xc1, 0x1f, 0xf8, 0xd2, 0x11, 0xba, 0x4b, 0x00, 0xa0, 0xc9, 0x3e, 0xc9, 0x3b}

	buf := append([]byte{0xff, 0xff}, onDisk...)

	esp := uuid.MustParse("C12A7328-F81F-11D2-BA4B-00A0C93EC93B")

	assert.Equal(t, esp, gptutil.ReadGUID(buf, 2))

	out := make([]byte, 18)
	gptutil.PutGUID(out, 2, esp)

	assert.Equal(t, onDisk, out[2:])
}

type sizer struct {
	sectorSize uint
	size       uint64
}

func (s sizer) GetSectorSize() uint { return s.sectorSize }
func (s sizer) GetSize() uint64     { return s.size }

func TestLastLBA(t *testing.T) {
	lba, ok := gptutil.LastLBA(sizer{sectorSize: 512, size: 64 * 1024 * 1024})
	assert.True(t, ok)
	assert.EqualValues(t, 131071, lba)

	_, ok = gptutil.LastLBA(sizer{sectorSize: 4096, size: 512})
	assert.False(t, ok)

	_, ok = gptutil.LastLBA(sizer{sectorSize: 0, size: 512})
	assert.False(t, ok)
}
