// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package disktest

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/unicode"

	"github.com/siderolabs/go-disklayout/internal/binutil"
	"github.com/siderolabs/go-disklayout/internal/checksum"
	"github.com/siderolabs/go-disklayout/internal/gptutil"
)

// GPT on-disk layout.
const (
	GPTHeaderSize     = 92
	GPTEntrySize      = 128
	GPTNumEntries     = 128
	GPTHeaderCRCField = 16
	GPTEntriesCRCOff  = 88
	GPTRevision       = 0x00010000
	GPTSignature      = "EFI PART"
)

// GPTPartition is a partition written to the GPT entry array.
type GPTPartition struct {
	Name string

	TypeGUID uuid.UUID
	PartGUID uuid.UUID

	FirstLBA uint64
	LastLBA  uint64

	Flags uint64
}

// GPTOptions configure the GPT writer.
type GPTOptions struct {
	DiskGUID   uuid.UUID
	NumEntries uint32
	EntrySize  uint32

	SkipPMBR         bool
	MarkPMBRBootable bool
	SkipBackup       bool

	// Slots places partitions at explicit 0-based slot indexes instead of packing them.
	Slots []int
}

// GPTOption is a function that sets some option.
type GPTOption func(*GPTOptions)

// WithDiskGUID sets the disk GUID.
func WithDiskGUID(guid uuid.UUID) GPTOption {
	return func(o *GPTOptions) {
		o.DiskGUID = guid
	}
}

// WithEntries overrides the entry count and entry size.
func WithEntries(num, size uint32) GPTOption {
	return func(o *GPTOptions) {
		o.NumEntries = num
		o.EntrySize = size
	}
}

// WithSkipPMBR skips writing the protective MBR.
func WithSkipPMBR() GPTOption {
	return func(o *GPTOptions) {
		o.SkipPMBR = true
	}
}

// WithSkipBackup skips writing the backup header and entries.
func WithSkipBackup() GPTOption {
	return func(o *GPTOptions) {
		o.SkipBackup = true
	}
}

// WithSlots places partitions into the given entry slots.
func WithSlots(slots ...int) GPTOption {
	return func(o *GPTOptions) {
		o.Slots = slots
	}
}

// GPTGeometry describes where the GPT structures were written.
type GPTGeometry struct {
	PrimaryHeaderLBA  uint64
	BackupHeaderLBA   uint64
	PrimaryEntriesLBA uint64
	BackupEntriesLBA  uint64
	FirstUsableLBA    uint64
	LastUsableLBA     uint64
	EntriesBytes      uint64
}

// WriteGPT writes protective MBR, primary and backup GPT headers and entry arrays.
func (img *Image) WriteGPT(partitions []GPTPartition, opts ...GPTOption) (GPTGeometry, error) {
	options := GPTOptions{
		DiskGUID:   uuid.MustParse("D815C311-BDED-43FE-A91A-DCBE0D8025D5"),
		NumEntries: GPTNumEntries,
		EntrySize:  GPTEntrySize,
	}

	for _, opt := range opts {
		opt(&options)
	}

	ss := uint64(img.sectorSize)
	entriesBytes := uint64(options.NumEntries) * uint64(options.EntrySize)
	lbasForEntries := (entriesBytes + ss - 1) / ss
	lastLBA := img.LastLBA()

	geo := GPTGeometry{
		PrimaryHeaderLBA:  1,
		BackupHeaderLBA:   lastLBA,
		PrimaryEntriesLBA: 2,
		BackupEntriesLBA:  lastLBA - lbasForEntries,
		EntriesBytes:      entriesBytes,
	}

	geo.FirstUsableLBA = geo.PrimaryEntriesLBA + lbasForEntries
	geo.LastUsableLBA = geo.BackupEntriesLBA - 1

	entriesBuf := make([]byte, entriesBytes)
	utf16 := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

	for i, entry := range partitions {
		slot := i
		if i < len(options.Slots) {
			slot = options.Slots[i]
		}

		if slot >= int(options.NumEntries) {
			return geo, fmt.Errorf("slot %d exceeds entry count %d", slot, options.NumEntries)
		}

		b := entriesBuf[slot*int(options.EntrySize) : (slot+1)*int(options.EntrySize)]

		gptutil.PutGUID(b, 0, entry.TypeGUID)
		gptutil.PutGUID(b, 16, entry.PartGUID)
		binutil.PutUint64LE(b, 32, entry.FirstLBA)
		binutil.PutUint64LE(b, 40, entry.LastLBA)
		binutil.PutUint64LE(b, 48, entry.Flags)

		nameBuf, err := utf16.NewEncoder().Bytes([]byte(entry.Name))
		if err != nil {
			return geo, fmt.Errorf("failed to encode partition name: %w", err)
		}

		if len(nameBuf) > 72 {
			return geo, fmt.Errorf("partition name %q too long: %d bytes", entry.Name, len(nameBuf))
		}

		copy(b[56:128], nameBuf)
	}

	entriesChecksum := checksum.Calculate(entriesBuf)

	// GPT header should occupy whole sector
	header := make([]byte, ss)
	copy(header[0:8], GPTSignature)
	binutil.PutUint32LE(header, 8, GPTRevision)
	binutil.PutUint32LE(header, 12, GPTHeaderSize)
	binutil.PutUint64LE(header, 40, geo.FirstUsableLBA)
	binutil.PutUint64LE(header, 48, geo.LastUsableLBA)
	gptutil.PutGUID(header, 56, options.DiskGUID)
	binutil.PutUint32LE(header, 80, options.NumEntries)
	binutil.PutUint32LE(header, 84, options.EntrySize)
	binutil.PutUint32LE(header, GPTEntriesCRCOff, entriesChecksum)

	primary := slices.Clone(header)
	binutil.PutUint64LE(primary, 24, geo.PrimaryHeaderLBA)
	binutil.PutUint64LE(primary, 32, geo.BackupHeaderLBA)
	binutil.PutUint64LE(primary, 72, geo.PrimaryEntriesLBA)
	SealHeader(primary)

	if _, err := img.WriteAt(primary, int64(geo.PrimaryHeaderLBA*ss)); err != nil {
		return geo, fmt.Errorf("failed to write primary header: %w", err)
	}

	if _, err := img.WriteAt(entriesBuf, int64(geo.PrimaryEntriesLBA*ss)); err != nil {
		return geo, fmt.Errorf("failed to write primary entries: %w", err)
	}

	if !options.SkipBackup {
		backup := slices.Clone(header)
		binutil.PutUint64LE(backup, 24, geo.BackupHeaderLBA)
		binutil.PutUint64LE(backup, 32, geo.PrimaryHeaderLBA)
		binutil.PutUint64LE(backup, 72, geo.BackupEntriesLBA)
		SealHeader(backup)

		if _, err := img.WriteAt(backup, int64(geo.BackupHeaderLBA*ss)); err != nil {
			return geo, fmt.Errorf("failed to write backup header: %w", err)
		}

		if _, err := img.WriteAt(entriesBuf, int64(geo.BackupEntriesLBA*ss)); err != nil {
			return geo, fmt.Errorf("failed to write backup entries: %w", err)
		}
	}

	if !options.SkipPMBR {
		img.WriteProtectiveMBR(options.MarkPMBRBootable)
	}

	return geo, nil
}

// SealHeader recomputes the header CRC32 in place.
func SealHeader(header []byte) {
	size := binutil.Uint32LE(header, 12)

	clear(header[GPTHeaderCRCField : GPTHeaderCRCField+4])
	binutil.PutUint32LE(header, GPTHeaderCRCField, checksum.Calculate(header[:size]))
}

// ResealEntries recomputes the entry array CRC32 stored in the header at headerLBA
// from the entries currently on the image, then reseals the header.
func (img *Image) ResealEntries(headerLBA uint64) {
	header := img.Sector(headerLBA)

	entriesLBA := binutil.Uint64LE(header, 72)
	size := uint64(binutil.Uint32LE(header, 80)) * uint64(binutil.Uint32LE(header, 84))
	start := entriesLBA * uint64(img.sectorSize)

	binutil.PutUint32LE(header, GPTEntriesCRCOff, checksum.Calculate(img.buf[start:start+size]))
	SealHeader(header)
}
