// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package disklayout reconstructs the partition layout of a disk from its raw sectors.
//
// GPT is tried first, MBR second; a disk carrying neither is reported as raw.
// Every partition is annotated with the filesystem found inside it.
package disklayout

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/google/uuid"
	"github.com/siderolabs/gen/xslices"
	"github.com/siderolabs/go-pointer"
	"go.uber.org/zap"

	"github.com/siderolabs/go-disklayout/blkid"
	"github.com/siderolabs/go-disklayout/internal/ioutil"
	"github.com/siderolabs/go-disklayout/parttype"
	"github.com/siderolabs/go-disklayout/partitioning/gpt"
	"github.com/siderolabs/go-disklayout/partitioning/mbr"
)

const protectiveSectorSize = 512

// Reader is an interface around the disk.
type Reader interface {
	io.ReaderAt

	GetSectorSize() uint
}

// Layout is an immutable snapshot of the disk partition layout.
type Layout struct {
	r    Reader
	opts []Option

	fault error

	diskGUID      *uuid.UUID
	diskSignature *uint32

	partitions []Partition

	sectorSize uint
	style      Style
	state      State

	verified   bool
	usedBackup bool
}

// Create reads the partition layout of the disk.
//
// IO errors are returned as is with a nil layout. If the partition table is damaged,
// both the layout found so far and the error are returned; the error matches one of
// ErrHeaderCorrupt, ErrEntryArrayCorrupt or ErrCorruptChain.
func Create(r Reader, opts ...Option) (*Layout, error) {
	options := applyOptions(opts...)

	sectorSize := options.SectorSize
	if sectorSize == 0 {
		sectorSize = r.GetSectorSize()
	}

	l := &Layout{
		r:          r,
		opts:       opts,
		sectorSize: sectorSize,
		state:      StateUnread,
	}

	logger := options.Logger

	sector, err := ioutil.ReadAt(r, 0, protectiveSectorSize)
	if err != nil {
		return nil, fmt.Errorf("failed to read first sector: %w", err)
	}

	l.transition(logger, StateProtectiveSectorRead)

	switch {
	case hasProtectiveEntry(sector):
		l.transition(logger, StateGPTCandidate)
	case hasBootSignature(sector):
		l.transition(logger, StateMBRCandidate)
	default:
		l.transition(logger, StateRaw)

		return l, nil
	}

	if l.state == StateGPTCandidate {
		err = l.readGPT(options)

		switch {
		case errors.Is(err, gpt.ErrNotGPT):
			logger.Debug("no GPT header found, trying MBR")

			l.transition(logger, StateMBRCandidate)
		case err != nil && l.style != StyleGPT:
			return nil, err
		default:
			l.finish(logger, options, err)

			return l, err
		}
	}

	err = l.readMBR(options)

	switch {
	case errors.Is(err, mbr.ErrNotMBR):
		l.transition(logger, StateRaw)

		return l, nil
	case err != nil && l.style != StyleMBR:
		return nil, err
	default:
		l.finish(logger, options, err)

		return l, err
	}
}

func (l *Layout) transition(logger *zap.Logger, next State) {
	logger.Debug("disk layout state", zap.Stringer("from", l.state), zap.Stringer("to", next))

	l.state = next
}

// finish records the outcome for a recognized partition table and probes the filesystems.
func (l *Layout) finish(logger *zap.Logger, options Options, fault error) {
	if fault != nil {
		logger.Warn("partition table is damaged, layout is partial", zap.Stringer("style", l.style), zap.Error(fault))

		l.fault = fault
		l.transition(logger, StateCorrupt)
	} else {
		l.transition(logger, StateValid)
	}

	if !options.SkipFilesystemProbe {
		l.probeFilesystems(options)
	}

	logger.Debug("disk layout read",
		zap.Stringer("style", l.style),
		zap.Int("partitions", len(l.partitions)),
		zap.Uint("sector_size", l.sectorSize),
	)
}

// readGPT returns an error with style left unset for IO errors and missing GPT.
func (l *Layout) readGPT(options Options) error {
	table, err := gpt.Read(l.r, l.sectorSize, options.gptOptions()...)
	if err != nil && !errors.Is(err, gpt.ErrHeaderCorrupt) && !errors.Is(err, gpt.ErrEntryArrayCorrupt) {
		if errors.Is(err, gpt.ErrNotGPT) {
			return err
		}

		return fmt.Errorf("failed to read GPT: %w", err)
	}

	l.style = StyleGPT

	if table == nil {
		return err
	}

	l.diskGUID = pointer.To(table.Header.DiskGUID)
	l.verified = table.Verified
	l.usedBackup = table.UsedBackup

	l.partitions = make([]Partition, 0, len(table.Partitions))

	for _, p := range table.Partitions {
		l.partitions = append(l.partitions, fromGPT(p, l.sectorSize))
	}

	return err
}

// readMBR returns an error with style left unset for IO errors and missing MBR.
func (l *Layout) readMBR(options Options) error {
	table, err := mbr.Read(sectorSizeReader{l.r, l.sectorSize}, options.mbrOptions()...)
	if err != nil && !errors.Is(err, mbr.ErrCorruptChain) {
		if errors.Is(err, mbr.ErrNotMBR) {
			return err
		}

		return fmt.Errorf("failed to read MBR: %w", err)
	}

	l.style = StyleMBR
	l.diskSignature = pointer.To(table.DiskSignature)
	l.verified = err == nil

	l.partitions = make([]Partition, 0, len(table.Partitions))

	for _, p := range table.Partitions {
		l.partitions = append(l.partitions, fromMBR(p, l.sectorSize))
	}

	return err
}

func (l *Layout) probeFilesystems(options Options) {
	probeOpts := options.probeOptions()

	for i := range l.partitions {
		p := &l.partitions[i]

		if p.Extended() {
			continue
		}

		sig := blkid.Probe(l.r, p.Offset, l.sectorSize, probeOpts...)

		p.Filesystem = pointer.To(sig.Name)
		p.FilesystemOffset = sig.Offset
	}
}

// Style returns the partitioning style of the disk.
func (l *Layout) Style() Style {
	return l.style
}

// State returns the state reading the layout stopped in: Raw, Valid or Corrupt.
func (l *Layout) State() State {
	return l.state
}

// Partitions returns a copy of the partitions, in on-disk order.
func (l *Layout) Partitions() []Partition {
	return xslices.Map(l.partitions, Partition.clone)
}

// Find returns the partition with the given number.
func (l *Layout) Find(number uint) (Partition, bool) {
	idx := slices.IndexFunc(l.partitions, func(p Partition) bool { return p.Number == number })
	if idx == -1 {
		return Partition{}, false
	}

	return l.partitions[idx].clone(), true
}

// Partial returns true if the partition table is damaged and the layout is incomplete.
func (l *Layout) Partial() bool {
	return l.fault != nil
}

// Fault returns the error which made the layout partial.
func (l *Layout) Fault() error {
	return l.fault
}

// Verified returns true if every checksum and chain link of the partition table was valid.
func (l *Layout) Verified() bool {
	return l.verified
}

// UsedBackupHeader returns true if the GPT primary header was corrupt and the backup was used.
func (l *Layout) UsedBackupHeader() bool {
	return l.usedBackup
}

// SectorSize returns the sector size the layout was read with.
func (l *Layout) SectorSize() uint {
	return l.sectorSize
}

// DiskGUID returns the GPT disk GUID.
func (l *Layout) DiskGUID() (uuid.UUID, bool) {
	if l.diskGUID == nil {
		return uuid.UUID{}, false
	}

	return *l.diskGUID, true
}

// DiskSignature returns the MBR disk signature.
func (l *Layout) DiskSignature() (uint32, bool) {
	if l.diskSignature == nil {
		return 0, false
	}

	return *l.diskSignature, true
}

// Reload reads the layout again from the same disk with the same options.
//
// The receiver is left unchanged.
func (l *Layout) Reload() (*Layout, error) {
	return Create(l.r, l.opts...)
}

type sectorSizeReader struct {
	io.ReaderAt

	sectorSize uint
}

func (r sectorSizeReader) GetSectorSize() uint {
	return r.sectorSize
}

func hasProtectiveEntry(sector []byte) bool {
	for slot := range mbr.NumEntries {
		if parttype.IsProtective(sector[mbr.TableOffset+slot*mbr.EntrySize+4]) {
			return true
		}
	}

	return false
}

func hasBootSignature(sector []byte) bool {
	return sector[510] == 0x55 && sector[511] == 0xAA
}
