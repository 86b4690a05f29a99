// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package blkid

import (
	"github.com/siderolabs/go-disklayout/internal/magic"
)

// Boot sector OEM name, bytes [3,11).
var (
	fatMagicMSDOS = magic.Magic{
		Offset: 3,
		Value:  []byte("MSDOS"),
	}

	fatMagicMkfs = magic.Magic{
		Offset: 3,
		Value:  []byte("mkfs.fat"),
	}

	ntfsMagic = magic.Magic{
		Offset: 3,
		Value:  []byte("NTFS    "),
	}
)

const (
	extSuperblockOffset = 0x400
	extSuperblockSize   = 0x400
)

// relative to the superblock
var extfsMagic = magic.Magic{
	Offset: 0x38,
	Value:  []byte("\123\357"),
}

type prober struct {
	name  string
	magic magic.Set
}

type chain []prober

// maxMagicSize returns the size of the buffer covering every magic in the chain.
func (c chain) maxMagicSize() int {
	size := 0

	for _, p := range c {
		size = max(size, p.magic.BlockSize())
	}

	return size
}

// match returns the first prober with a matching magic.
func (c chain) match(buf []byte) (prober, bool) {
	for _, p := range c {
		if p.magic.Matches(buf) {
			return p, true
		}
	}

	return prober{}, false
}

func swapMagic() magic.Set {
	var set magic.Set

	// swap signature sits in the last 10 bytes of the first page, for page sizes from 4k to 32k
	for _, pageSize := range []int{0x1000, 0x2000, 0x4000, 0x8000} {
		for _, value := range []string{"SWAP-SPACE", "SWAPSPACE2"} {
			set = append(set, &magic.Magic{Offset: pageSize - 10, Value: []byte(value)})
		}
	}

	return set
}

func extendedChain() chain {
	return chain{
		{
			name:  "xfs",
			magic: magic.Set{{Offset: 0, Value: []byte("XFSB")}},
		},
		{
			name:  "luks",
			magic: magic.Set{{Offset: 0, Value: []byte("LUKS\xba\xbe")}},
		},
		{
			name: "squashfs",
			magic: magic.Set{
				{Offset: 0, Value: []byte("sqsh")},
				{Offset: 0, Value: []byte("hsqs")},
			},
		},
		{
			name:  "bluestore",
			magic: magic.Set{{Offset: 0, Value: []byte("bluestore block device")}},
		},
		{
			name: "vfat",
			magic: magic.Set{
				{Offset: 0x52, Value: []byte("MSWIN")},
				{Offset: 0x52, Value: []byte("FAT32   ")},
				{Offset: 0x36, Value: []byte("MSDOS")},
				{Offset: 0x36, Value: []byte("FAT16   ")},
				{Offset: 0x36, Value: []byte("FAT12   ")},
				{Offset: 0x36, Value: []byte("FAT     ")},
			},
		},
		{
			name: "lvm2-pv",
			magic: magic.Set{
				{Offset: 0x018, Value: []byte("LVM2 001")},
				{Offset: 0x218, Value: []byte("LVM2 001")},
			},
		},
		{
			name:  "swap",
			magic: swapMagic(),
		},
		{
			name:  "iso9660",
			magic: magic.Set{{Offset: 0x8001, Value: []byte("CD001")}},
		},
	}
}
