// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package blkid identifies the filesystem inside a partition by its magic signatures.
package blkid

import (
	"errors"
	"io"
	"math"

	"go.uber.org/zap"

	"github.com/siderolabs/go-disklayout/internal/ioutil"
)

// Filesystem names reported by the detector.
const (
	FAT32   = "FAT32"
	NTFS    = "NTFS"
	Ext4    = "ext4"
	Unknown = "Unknown"
)

const minSectorSize = 512

// Signature is the result of probing a partition.
type Signature struct {
	Name string

	// Offset is the absolute byte offset of the structure examined last.
	Offset uint64
}

// Known returns true if a filesystem was identified.
func (s Signature) Known() bool {
	return s.Name != Unknown
}

// Detect returns the name of the filesystem found at the byte offset, or Unknown.
func Detect(r io.ReaderAt, offset uint64, sectorSize uint, opts ...ProbeOption) string {
	return Probe(r, offset, sectorSize, opts...).Name
}

// Probe identifies the filesystem found at the byte offset.
//
// The boot sector is checked first for FAT32 and NTFS OEM names, then the ext superblock magic.
// Probe never fails: read errors skip the probe which failed to read.
func Probe(r io.ReaderAt, offset uint64, sectorSize uint, opts ...ProbeOption) Signature {
	options := applyProbeOptions(opts...)
	logger := options.Logger.With(zap.Uint64("offset", offset))

	if sectorSize < minSectorSize {
		sectorSize = minSectorSize
	}

	boot, err := ioutil.ReadAt(r, offset, int(sectorSize))
	if err != nil {
		logger.Debug("failed to read boot sector", zap.Error(err))
	} else {
		switch {
		case fatMagicMSDOS.Matches(boot), fatMagicMkfs.Matches(boot):
			return Signature{Name: FAT32, Offset: offset}
		case ntfsMagic.Matches(boot):
			return Signature{Name: NTFS, Offset: offset}
		}
	}

	sbOffset := offset + extSuperblockOffset

	if sbOffset < offset {
		return Signature{Name: Unknown, Offset: offset}
	}

	sb, err := ioutil.ReadAt(r, sbOffset, extSuperblockSize)
	if err != nil {
		logger.Debug("failed to read ext superblock", zap.Error(err))
	} else if extfsMagic.Matches(sb) {
		return Signature{Name: Ext4, Offset: sbOffset}
	}

	if options.ExtendedMagic {
		if name, ok := probeExtended(r, offset, logger); ok {
			return Signature{Name: name, Offset: offset}
		}
	}

	return Signature{Name: Unknown, Offset: sbOffset}
}

func probeExtended(r io.ReaderAt, offset uint64, logger *zap.Logger) (string, bool) {
	if offset > math.MaxInt64 {
		return "", false
	}

	probers := extendedChain()

	// the partition might be smaller than the largest magic offset, accept short reads
	buf := make([]byte, probers.maxMagicSize())

	n, err := r.ReadAt(buf, int64(offset))
	if err != nil && !errors.Is(err, io.EOF) {
		logger.Debug("failed to read magic buffer", zap.Error(err))

		return "", false
	}

	matched, ok := probers.match(buf[:n])
	if !ok {
		return "", false
	}

	logger.Debug("extended magic matched", zap.String("name", matched.name))

	return matched.name, true
}
