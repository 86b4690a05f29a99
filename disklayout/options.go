// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package disklayout

import (
	"go.uber.org/zap"

	"github.com/siderolabs/go-disklayout/blkid"
	"github.com/siderolabs/go-disklayout/partitioning/gpt"
	"github.com/siderolabs/go-disklayout/partitioning/mbr"
)

// Options is a set of options for reading the disk layout.
type Options struct {
	// Logger to use for logging.
	Logger *zap.Logger

	// SectorSize overrides the sector size reported by the reader.
	SectorSize uint

	// MaxChainDepth limits the number of EBRs followed in each extended partition.
	MaxChainDepth int

	// MaxEntries limits the GPT partition entry count.
	MaxEntries uint32

	// SkipBackupHeader disables the GPT backup header fallback.
	SkipBackupHeader bool

	// SkipFilesystemProbe disables filesystem detection.
	SkipFilesystemProbe bool

	// ExtendedMagic enables the extended filesystem magic probes.
	ExtendedMagic bool
}

// Option is a function that sets some option.
type Option func(*Options)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithSectorSize overrides the sector size reported by the reader.
func WithSectorSize(sectorSize uint) Option {
	return func(o *Options) {
		o.SectorSize = sectorSize
	}
}

// WithMaxChainDepth limits the length of MBR extended partition chains.
func WithMaxChainDepth(depth int) Option {
	return func(o *Options) {
		o.MaxChainDepth = depth
	}
}

// WithMaxEntries limits the GPT partition entry count.
func WithMaxEntries(n uint32) Option {
	return func(o *Options) {
		o.MaxEntries = n
	}
}

// WithoutBackupHeader disables the GPT backup header fallback.
func WithoutBackupHeader() Option {
	return func(o *Options) {
		o.SkipBackupHeader = true
	}
}

// WithoutFilesystemProbe skips filesystem detection for partitions.
func WithoutFilesystemProbe() Option {
	return func(o *Options) {
		o.SkipFilesystemProbe = true
	}
}

// WithExtendedMagic enables detection of filesystems beyond FAT32, NTFS and ext4.
func WithExtendedMagic() Option {
	return func(o *Options) {
		o.ExtendedMagic = true
	}
}

func applyOptions(opts ...Option) Options {
	o := Options{
		Logger:        zap.NewNop(),
		MaxChainDepth: mbr.DefaultMaxChainDepth,
		MaxEntries:    gpt.DefaultMaxEntries,
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

func (o Options) gptOptions() []gpt.Option {
	opts := []gpt.Option{
		gpt.WithLogger(o.Logger.Named("gpt")),
		gpt.WithMaxEntries(o.MaxEntries),
	}

	if o.SkipBackupHeader {
		opts = append(opts, gpt.WithoutBackup())
	}

	return opts
}

func (o Options) mbrOptions() []mbr.Option {
	return []mbr.Option{
		mbr.WithLogger(o.Logger.Named("mbr")),
		mbr.WithMaxChainDepth(o.MaxChainDepth),
	}
}

func (o Options) probeOptions() []blkid.ProbeOption {
	opts := []blkid.ProbeOption{
		blkid.WithProbeLogger(o.Logger.Named("blkid")),
	}

	if o.ExtendedMagic {
		opts = append(opts, blkid.WithExtendedMagic())
	}

	return opts
}
