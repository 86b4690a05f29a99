// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package disktest

import "github.com/siderolabs/go-disklayout/internal/binutil"

// WriteNTFSBootSector writes a minimal NTFS boot sector at the byte offset.
func (img *Image) WriteNTFSBootSector(offset uint64) {
	b := img.buf[offset : offset+512]

	copy(b[0:3], []byte{0xeb, 0x52, 0x90})
	copy(b[3:11], "NTFS    ")
	binutil.PutUint16LE(b, 11, 512) // bytes per sector
	b[13] = 8                       // sectors per cluster
	b[21] = 0xf8                    // media descriptor
	binutil.PutUint64LE(b, 48, 4)   // $MFT cluster
	b[510], b[511] = 0x55, 0xAA
}

// WriteFATBootSector writes a minimal FAT32 boot sector with the given OEM name.
func (img *Image) WriteFATBootSector(offset uint64, oemName string) {
	b := img.buf[offset : offset+512]

	oem := []byte("        ")
	copy(oem, oemName)

	copy(b[0:3], []byte{0xeb, 0x58, 0x90})
	copy(b[3:11], oem)
	binutil.PutUint16LE(b, 11, 512) // bytes per sector
	b[13] = 8                       // sectors per cluster
	binutil.PutUint16LE(b, 14, 32)  // reserved sectors
	b[16] = 2                       // number of FATs
	b[21] = 0xf8                    // media descriptor
	copy(b[0x52:0x5a], "FAT32   ")
	b[510], b[511] = 0x55, 0xAA
}

// WriteExtSuperblock writes a minimal ext2/3/4 superblock into the partition at the byte offset.
func (img *Image) WriteExtSuperblock(offset uint64) {
	sb := img.buf[offset+1024 : offset+2048]

	binutil.PutUint32LE(sb, 0x00, 2048) // inodes count
	binutil.PutUint32LE(sb, 0x04, 8192) // blocks count
	binutil.PutUint32LE(sb, 0x18, 2)    // log block size: 4096
	binutil.PutUint16LE(sb, 0x38, 0xef53)
	copy(sb[0x78:0x88], "extlabel")
}

// WriteAtOffset copies data into the image at the byte offset.
func (img *Image) WriteAtOffset(offset uint64, data []byte) {
	copy(img.buf[offset:], data)
}
