// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package disktest

import (
	"math"

	"github.com/siderolabs/go-disklayout/internal/binutil"
)

// MBR on-disk layout.
const (
	MBRTableOffset = 446
	MBREntrySize   = 16
)

// MBREntry is a single MBR partition table entry.
type MBREntry struct {
	Status   byte
	Type     byte
	StartLBA uint32
	Sectors  uint32
}

func putMBREntry(b []byte, e MBREntry) {
	b[0] = e.Status
	// CHS addresses are not used by any reader, fill them like LBA-only tools do.
	copy(b[1:4], []byte{0xfe, 0xff, 0xff})
	b[4] = e.Type
	copy(b[5:8], []byte{0xfe, 0xff, 0xff})
	binutil.PutUint32LE(b, 8, e.StartLBA)
	binutil.PutUint32LE(b, 12, e.Sectors)
}

// WriteBootRecord writes an MBR-shaped sector (boot signature and up to 4 entries) at lba.
func (img *Image) WriteBootRecord(lba uint64, entries ...MBREntry) {
	sector := img.Sector(lba)

	for i := range 4 {
		b := sector[MBRTableOffset+i*MBREntrySize : MBRTableOffset+(i+1)*MBREntrySize]
		clear(b)

		if i < len(entries) {
			putMBREntry(b, entries[i])
		}
	}

	sector[510], sector[511] = 0x55, 0xAA
}

// WriteMBR writes the MBR to sector 0.
func (img *Image) WriteMBR(entries ...MBREntry) {
	img.WriteBootRecord(0, entries...)
}

// SetDiskSignature sets the 32-bit MBR disk signature.
func (img *Image) SetDiskSignature(sig uint32) {
	binutil.PutUint32LE(img.Sector(0), 440, sig)
}

// Logical describes a logical partition inside an extended partition.
type Logical struct {
	Type    byte
	Sectors uint32
}

// WriteExtendedChain writes an EBR chain inside the extended partition starting at extStart.
//
// Each logical partition is preceded by its EBR and a gap of one track (63 sectors),
// the way fdisk lays them out. It returns the EBR LBAs.
func (img *Image) WriteExtendedChain(extStart uint32, logicals ...Logical) []uint64 {
	const gap = 63

	ebrs := make([]uint64, 0, len(logicals))
	cursor := uint64(extStart)

	for i, l := range logicals {
		ebr := cursor
		ebrs = append(ebrs, ebr)

		logical := MBREntry{Type: l.Type, StartLBA: gap, Sectors: l.Sectors}

		var next MBREntry

		if i < len(logicals)-1 {
			nextEBR := ebr + gap + uint64(l.Sectors)

			next = MBREntry{
				Type:     0x05,
				StartLBA: uint32(nextEBR - uint64(extStart)),
				Sectors:  gap + logicals[i+1].Sectors,
			}
		}

		img.WriteBootRecord(ebr, logical, next)

		cursor = ebr + gap + uint64(l.Sectors)
	}

	return ebrs
}

// WriteProtectiveMBR writes a GPT protective MBR covering the whole image.
func (img *Image) WriteProtectiveMBR(bootable bool) {
	var status byte

	if bootable {
		// Some BIOSes in legacy mode won't boot from a disk unless there is at least one
		// partition in the MBR marked bootable.
		status = 0x80
	}

	sectors := img.LastLBA()
	if sectors > math.MaxUint32 {
		sectors = math.MaxUint32
	}

	img.WriteMBR(MBREntry{Status: status, Type: 0xee, StartLBA: 1, Sectors: uint32(sectors)})
}
