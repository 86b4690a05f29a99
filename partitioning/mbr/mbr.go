// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package mbr implements reading of MBR partition tables, including logical partitions
// chained through extended boot records (EBRs).
package mbr

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/siderolabs/go-disklayout/internal/binutil"
	"github.com/siderolabs/go-disklayout/internal/ioutil"
	"github.com/siderolabs/go-disklayout/parttype"
)

// On-disk layout of the boot record.
const (
	BootRecordSize = 512
	TableOffset    = 446
	EntrySize      = 16
	NumEntries     = 4

	diskSignatureOffset = 440
	bootSignatureOffset = 510
)

// Reader is an interface around the device holding the MBR.
type Reader interface {
	io.ReaderAt

	GetSectorSize() uint
}

// Kind tells primary and logical partitions apart.
type Kind int

// Partition kinds.
const (
	KindPrimary Kind = iota
	KindLogical
)

func (k Kind) String() string {
	switch k {
	case KindPrimary:
		return "primary"
	case KindLogical:
		return "logical"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Partition is a single partition found in the MBR or in an EBR.
type Partition struct { //nolint:govet
	// Number is 1-based, assigned in discovery order.
	Number uint
	Kind   Kind

	// Slot is the table slot (0-3) for primary partitions, and the index among all logical
	// partitions of the disk for logical ones.
	Slot int

	Status byte
	Type   byte

	// StartLBA is absolute, even for logical partitions.
	StartLBA uint64
	Sectors  uint64

	// EBRLBA is the LBA of the EBR describing a logical partition.
	EBRLBA uint64
}

// DevIndex returns the partition number the Linux kernel assigns: 1-4 for primaries, 5 onwards for logicals.
func (p Partition) DevIndex() uint {
	if p.Kind == KindLogical {
		return uint(p.Slot) + 5
	}

	return uint(p.Slot) + 1
}

// Bootable returns true if the partition carries the active flag.
func (p Partition) Bootable() bool {
	return p.Status&0x80 != 0
}

// Extended returns true if the partition is an extended partition container.
func (p Partition) Extended() bool {
	return parttype.IsExtended(p.Type)
}

// EndLBA returns the last LBA of the partition (inclusive).
func (p Partition) EndLBA() uint64 {
	if p.Sectors == 0 {
		return p.StartLBA
	}

	return p.StartLBA + p.Sectors - 1
}

// Offset returns the byte offset of the partition.
func (p Partition) Offset(sectorSize uint) uint64 {
	return p.StartLBA * uint64(sectorSize)
}

// Size returns the size of the partition in bytes.
func (p Partition) Size(sectorSize uint) uint64 {
	return p.Sectors * uint64(sectorSize)
}

// Layout is the decoded MBR partition layout.
type Layout struct {
	Partitions []Partition

	SectorSize    uint
	DiskSignature uint32

	// Partial is set when the extended partition chain could not be walked to the end.
	Partial bool
}

type entry struct {
	status   byte
	typ      byte
	startLBA uint32
	sectors  uint32
}

func (e entry) unused() bool {
	return e.typ == 0 && e.startLBA == 0
}

func decodeEntry(sector []byte, idx int) entry {
	off := TableOffset + idx*EntrySize

	return entry{
		status:   sector[off],
		typ:      sector[off+4],
		startLBA: binutil.Uint32LE(sector, off+8),
		sectors:  binutil.Uint32LE(sector, off+12),
	}
}

func hasBootSignature(sector []byte) bool {
	return sector[bootSignatureOffset] == 0x55 && sector[bootSignatureOffset+1] == 0xAA
}

// Read reads the MBR partition table from the device.
//
// If the extended partition chain is damaged, the partitions found so far are returned
// along with an error matching ErrCorruptChain, and the layout is marked as partial.
func Read(r Reader, opts ...Option) (*Layout, error) {
	options := applyOptions(opts...)

	sectorSize := r.GetSectorSize()
	if sectorSize < BootRecordSize {
		return nil, fmt.Errorf("unsupported sector size %d", sectorSize)
	}

	sector, err := ioutil.ReadAt(r, 0, BootRecordSize)
	if err != nil {
		return nil, fmt.Errorf("failed to read MBR: %w", err)
	}

	if !hasBootSignature(sector) {
		return nil, ErrNotMBR
	}

	layout := &Layout{
		SectorSize:    sectorSize,
		DiskSignature: binutil.Uint32LE(sector, diskSignatureOffset),
	}

	var extended []Partition

	for slot := range NumEntries {
		e := decodeEntry(sector, slot)

		if e.unused() {
			continue
		}

		part := layout.add(Partition{
			Kind:     KindPrimary,
			Slot:     slot,
			Status:   e.status,
			Type:     e.typ,
			StartLBA: uint64(e.startLBA),
			Sectors:  uint64(e.sectors),
		})

		if part.Extended() {
			extended = append(extended, part)
		}
	}

	walker := chainWalker{
		r:          r,
		sectorSize: sectorSize,
		maxDepth:   options.MaxChainDepth,
		visited:    map[uint64]struct{}{},
		logger:     options.Logger,
	}

	for _, ext := range extended {
		if err = walker.walk(layout, ext.StartLBA); err != nil {
			layout.Partial = true

			if errors.Is(err, ErrCorruptChain) {
				options.Logger.Warn("extended partition chain is corrupt", zap.Error(err))
			}

			return layout, err
		}
	}

	return layout, nil
}

func (l *Layout) add(p Partition) Partition {
	p.Number = uint(len(l.Partitions) + 1)
	l.Partitions = append(l.Partitions, p)

	return p
}

// chainWalker follows EBR links, shared across all extended partitions of the disk
// so that two containers pointing into each other are detected as well.
type chainWalker struct {
	r          Reader
	visited    map[uint64]struct{}
	logger     *zap.Logger
	sectorSize uint
	maxDepth   int
	logicals   int
}

func (w *chainWalker) walk(layout *Layout, extStart uint64) error {
	var next uint64

	for depth := 0; ; depth++ {
		ebrLBA := extStart + next

		if depth >= w.maxDepth {
			return &ChainError{LBA: ebrLBA, Depth: depth, Reason: fmt.Sprintf("more than %d links", w.maxDepth)}
		}

		if _, seen := w.visited[ebrLBA]; seen {
			return &ChainError{LBA: ebrLBA, Depth: depth, Reason: "EBR visited twice"}
		}

		w.visited[ebrLBA] = struct{}{}

		sector, err := ioutil.ReadAt(w.r, ebrLBA*uint64(w.sectorSize), BootRecordSize)
		if err != nil {
			return fmt.Errorf("failed to read EBR at LBA %d: %w", ebrLBA, err)
		}

		if !hasBootSignature(sector) {
			return &ChainError{LBA: ebrLBA, Depth: depth, Reason: "missing boot signature"}
		}

		logical, link := decodeEntry(sector, 0), decodeEntry(sector, 1)

		w.logger.Debug("read EBR",
			zap.Uint64("lba", ebrLBA),
			zap.Int("depth", depth),
			zap.Uint8("type", logical.typ),
			zap.Uint32("next", link.startLBA),
		)

		if logical.typ != 0 && logical.sectors != 0 {
			layout.add(Partition{
				Kind:     KindLogical,
				Slot:     w.logicals,
				Status:   logical.status,
				Type:     logical.typ,
				StartLBA: ebrLBA + uint64(logical.startLBA),
				Sectors:  uint64(logical.sectors),
				EBRLBA:   ebrLBA,
			})

			w.logicals++
		}

		if link.startLBA == 0 {
			return nil
		}

		next = uint64(link.startLBA)
	}
}
