// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package gpt implements reading of GUID Partition Tables.
package gpt

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/unicode"

	"github.com/siderolabs/go-disklayout/internal/binutil"
	"github.com/siderolabs/go-disklayout/internal/checksum"
	"github.com/siderolabs/go-disklayout/internal/gptutil"
	"github.com/siderolabs/go-disklayout/internal/ioutil"
	"github.com/siderolabs/go-disklayout/parttype"
)

// Signature is the GPT header signature.
const Signature = "EFI PART"

// On-disk layout.
const (
	HeaderSize   = 92
	MinEntrySize = 128

	maxEntrySize   = 4096
	pmbrSize       = 512
	pmbrTable      = 446
	pmbrEntrySize  = 16
	nameOffset     = 56
	nameLength     = 72
	headerCRCField = 16
)

// Reader is an interface around the device holding the GPT.
type Reader interface {
	io.ReaderAt
}

// Header is the decoded GPT header.
type Header struct {
	Revision uint32
	Size     uint32
	CRC32    uint32

	MyLBA     uint64
	BackupLBA uint64

	FirstUsableLBA uint64
	LastUsableLBA  uint64

	DiskGUID uuid.UUID

	EntriesLBA   uint64
	NumEntries   uint32
	EntrySize    uint32
	EntriesCRC32 uint32
}

// Partition is a used GPT partition entry.
type Partition struct {
	// Index is the 1-based slot of the entry in the partition entry array.
	Index uint

	TypeGUID   uuid.UUID
	UniqueGUID uuid.UUID

	// FirstLBA and LastLBA are inclusive.
	FirstLBA uint64
	LastLBA  uint64

	Attributes uint64

	Name string
}

// Partition attribute bits.
const (
	AttributeRequired           = 1 << 0
	AttributeNoBlockIO          = 1 << 1
	AttributeLegacyBIOSBootable = 1 << 2
)

// RequiredPartition returns true if the platform requires the partition to function.
func (p Partition) RequiredPartition() bool {
	return p.Attributes&AttributeRequired != 0
}

// LegacyBIOSBootable returns true if the partition is marked bootable for legacy BIOS.
func (p Partition) LegacyBIOSBootable() bool {
	return p.Attributes&AttributeLegacyBIOSBootable != 0
}

// Sectors returns the length of the partition in sectors.
func (p Partition) Sectors() uint64 {
	if p.LastLBA < p.FirstLBA {
		return 0
	}

	return p.LastLBA - p.FirstLBA + 1
}

// Offset returns the byte offset of the partition.
func (p Partition) Offset(sectorSize uint) uint64 {
	return p.FirstLBA * uint64(sectorSize)
}

// Size returns the size of the partition in bytes.
func (p Partition) Size(sectorSize uint) uint64 {
	return p.Sectors() * uint64(sectorSize)
}

// Layout is the decoded GPT layout.
type Layout struct {
	Header     Header
	Partitions []Partition

	SectorSize uint

	// Verified is set when the partition entry array checksum matches the header.
	Verified bool

	// UsedBackup is set when the primary header was corrupt and the backup header was used.
	UsedBackup bool
}

// Read reads the GPT from the device.
//
// If the partition entry array fails its checksum, the decoded layout is still returned,
// not marked as verified, along with an error matching ErrEntryArrayCorrupt.
func Read(r Reader, sectorSize uint, opts ...Option) (*Layout, error) {
	options := applyOptions(opts...)

	if sectorSize < pmbrSize {
		return nil, fmt.Errorf("unsupported sector size %d", sectorSize)
	}

	pmbr, err := ioutil.ReadAt(r, 0, pmbrSize)
	if err != nil {
		return nil, fmt.Errorf("failed to read protective MBR: %w", err)
	}

	if !hasProtectiveEntry(pmbr) {
		return nil, ErrNotGPT
	}

	primary, err := ioutil.ReadSectors(r, 1, 1, sectorSize)
	if err != nil {
		return nil, fmt.Errorf("failed to read GPT header: %w", err)
	}

	if string(primary[:len(Signature)]) != Signature {
		return nil, ErrNotGPT
	}

	layout := &Layout{
		SectorSize: sectorSize,
	}

	hdr, fault := decodeHeader(primary, 1, sectorSize, options.MaxEntries)
	if fault != nil {
		options.Logger.Warn("primary GPT header is corrupt", zap.Stringer("fault", fault))

		faults := []HeaderFault{*fault}

		backupLBA := binutil.Uint64LE(primary, 32)

		if options.SkipBackup || backupLBA <= 1 {
			return nil, &HeaderCorruptError{Faults: faults}
		}

		hdr, fault, err = readBackupHeader(r, backupLBA, sectorSize, options.MaxEntries)
		if err != nil {
			return nil, err
		}

		if fault != nil {
			return nil, &HeaderCorruptError{Faults: append(faults, *fault)}
		}

		options.Logger.Info("using backup GPT header", zap.Uint64("lba", backupLBA))

		layout.UsedBackup = true
	}

	layout.Header = hdr

	if sizer, ok := r.(gptutil.DiskSizer); ok {
		backupAt := hdr.BackupLBA
		if layout.UsedBackup {
			backupAt = hdr.MyLBA
		}

		if lastLBA, ok := gptutil.LastLBA(sizer); ok && backupAt != lastLBA {
			options.Logger.Info("backup GPT header is not at the end of the disk", zap.Uint64("backup_lba", backupAt), zap.Uint64("last_lba", lastLBA))
		}
	}

	entries, err := ioutil.ReadAt(r, hdr.EntriesLBA*uint64(sectorSize), int(hdr.NumEntries)*int(hdr.EntrySize))
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return layout, &EntryArrayCorruptError{LBA: hdr.EntriesLBA, Reason: "entry array beyond end of device"}
		}

		return nil, fmt.Errorf("failed to read GPT partition entries: %w", err)
	}

	layout.Partitions, err = decodeEntries(entries, hdr)
	if err != nil {
		return nil, err
	}

	for _, p := range layout.Partitions {
		if p.FirstLBA > p.LastLBA || p.FirstLBA < hdr.FirstUsableLBA || p.LastLBA > hdr.LastUsableLBA {
			options.Logger.Warn("partition outside of usable range",
				zap.Uint("index", p.Index),
				zap.Uint64("first_lba", p.FirstLBA),
				zap.Uint64("last_lba", p.LastLBA),
			)
		}
	}

	computed := checksum.Calculate(entries)
	if computed != hdr.EntriesCRC32 {
		return layout, &EntryArrayCorruptError{
			LBA:      hdr.EntriesLBA,
			Reason:   "checksum mismatch",
			Stored:   hdr.EntriesCRC32,
			Computed: computed,
		}
	}

	layout.Verified = true

	return layout, nil
}

func hasProtectiveEntry(sector []byte) bool {
	for slot := range 4 {
		if parttype.IsProtective(sector[pmbrTable+slot*pmbrEntrySize+4]) {
			return true
		}
	}

	return false
}

func readBackupHeader(r Reader, lba uint64, sectorSize uint, maxEntries uint32) (Header, *HeaderFault, error) {
	buf, err := ioutil.ReadSectors(r, lba, 1, sectorSize)
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return Header{}, &HeaderFault{LBA: lba, Reason: "beyond end of device"}, nil
		}

		return Header{}, nil, fmt.Errorf("failed to read backup GPT header: %w", err)
	}

	if string(buf[:len(Signature)]) != Signature {
		return Header{}, &HeaderFault{LBA: lba, Reason: "invalid signature"}, nil
	}

	hdr, fault := decodeHeader(buf, lba, sectorSize, maxEntries)

	return hdr, fault, nil
}

// decodeHeader validates the header found at lba and decodes it.
func decodeHeader(buf []byte, lba uint64, sectorSize uint, maxEntries uint32) (Header, *HeaderFault) {
	hdr := Header{
		Revision:       binutil.Uint32LE(buf, 8),
		Size:           binutil.Uint32LE(buf, 12),
		CRC32:          binutil.Uint32LE(buf, headerCRCField),
		MyLBA:          binutil.Uint64LE(buf, 24),
		BackupLBA:      binutil.Uint64LE(buf, 32),
		FirstUsableLBA: binutil.Uint64LE(buf, 40),
		LastUsableLBA:  binutil.Uint64LE(buf, 48),
		DiskGUID:       gptutil.ReadGUID(buf, 56),
		EntriesLBA:     binutil.Uint64LE(buf, 72),
		NumEntries:     binutil.Uint32LE(buf, 80),
		EntrySize:      binutil.Uint32LE(buf, 84),
		EntriesCRC32:   binutil.Uint32LE(buf, 88),
	}

	if hdr.Size < HeaderSize || uint(hdr.Size) > sectorSize {
		return hdr, &HeaderFault{LBA: lba, Reason: fmt.Sprintf("invalid header size %d", hdr.Size)}
	}

	scratch := bytes.Clone(buf[:hdr.Size])
	clear(scratch[headerCRCField : headerCRCField+4])

	if computed := checksum.Calculate(scratch); computed != hdr.CRC32 {
		return hdr, &HeaderFault{LBA: lba, Reason: "checksum mismatch", Stored: hdr.CRC32, Computed: computed}
	}

	if hdr.MyLBA != lba {
		return hdr, &HeaderFault{LBA: lba, Reason: fmt.Sprintf("header claims to be at LBA %d", hdr.MyLBA)}
	}

	if hdr.EntrySize < MinEntrySize || hdr.EntrySize > maxEntrySize || hdr.EntrySize%8 != 0 {
		return hdr, &HeaderFault{LBA: lba, Reason: fmt.Sprintf("invalid partition entry size %d", hdr.EntrySize)}
	}

	if hdr.NumEntries > maxEntries {
		return hdr, &HeaderFault{LBA: lba, Reason: fmt.Sprintf("too many partition entries: %d > %d", hdr.NumEntries, maxEntries)}
	}

	if hdr.EntriesLBA > math.MaxInt64/uint64(sectorSize) {
		return hdr, &HeaderFault{LBA: lba, Reason: fmt.Sprintf("partition entries LBA %d out of range", hdr.EntriesLBA)}
	}

	return hdr, nil
}

func decodeEntries(buf []byte, hdr Header) ([]Partition, error) {
	var partitions []Partition

	decoder := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()

	for i := range int(hdr.NumEntries) {
		entry := buf[i*int(hdr.EntrySize) : i*int(hdr.EntrySize)+MinEntrySize]

		if binutil.IsZero(entry[:16]) {
			continue
		}

		name, err := decoder.Bytes(trimName(entry[nameOffset : nameOffset+nameLength]))
		if err != nil {
			return nil, fmt.Errorf("failed to decode name of partition %d: %w", i+1, err)
		}

		partitions = append(partitions, Partition{
			Index:      uint(i + 1),
			TypeGUID:   gptutil.ReadGUID(entry, 0),
			UniqueGUID: gptutil.ReadGUID(entry, 16),
			FirstLBA:   binutil.Uint64LE(entry, 32),
			LastLBA:    binutil.Uint64LE(entry, 40),
			Attributes: binutil.Uint64LE(entry, 48),
			Name:       string(name),
		})
	}

	return partitions, nil
}

// trimName cuts the UTF-16LE name at the first NUL code unit.
func trimName(b []byte) []byte {
	for i := 0; i+1 < len(b); i += 2 {
		if b[i] == 0 && b[i+1] == 0 {
			return b[:i]
		}
	}

	return b
}
