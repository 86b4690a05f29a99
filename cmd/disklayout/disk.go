// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package main

import (
	"errors"
	"fmt"
	"io"
	"math"

	"go.uber.org/zap"

	"github.com/siderolabs/go-disklayout/block"
	"github.com/siderolabs/go-disklayout/diskimage"
	"github.com/siderolabs/go-disklayout/disklayout"
	"github.com/siderolabs/go-disklayout/partitioning"
)

// disk is an opened block device or disk image.
type disk struct {
	disklayout.Reader

	dev *block.Device

	path string
	size uint64
}

// openDisk opens the path as a block device, or loads it into memory if it is a compressed image.
func openDisk(path string, flags *globalFlags, logger *zap.Logger) (*disk, error) {
	dev, err := block.NewFromPath(path)
	if err != nil {
		return nil, err
	}

	size, err := dev.GetSize()
	if err != nil {
		dev.Close() //nolint:errcheck

		return nil, fmt.Errorf("failed to get size of %q: %w", path, err)
	}

	header := make([]byte, 4)

	if _, err = dev.ReadAt(header, 0); err != nil && !errors.Is(err, io.EOF) {
		dev.Close() //nolint:errcheck

		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}

	if format := diskimage.DetectFormat(header); format != diskimage.FormatRaw {
		defer dev.Close() //nolint:errcheck

		return openImage(path, dev, size, flags, logger)
	}

	if err = dev.Lock(false); err != nil {
		dev.Close() //nolint:errcheck

		return nil, fmt.Errorf("failed to lock %q: %w", path, err)
	}

	if wholeDisk, err := dev.IsWholeDisk(); err == nil && !wholeDisk {
		fields := []zap.Field{zap.String("path", path)}

		if parent, part, ok := partitioning.SplitDevName(path); ok {
			fields = append(fields, zap.String("disk", parent), zap.Uint("partition", part))
		}

		logger.Warn("device is a partition, not a whole disk", fields...)
	}

	if ioSize, err := dev.GetIOSize(); err == nil {
		logger.Debug("opened block device",
			zap.String("path", path),
			zap.Uint64("size", size),
			zap.Uint("sector_size", dev.GetSectorSize()),
			zap.Uint("io_size", ioSize),
		)
	}

	return &disk{
		Reader: dev,
		dev:    dev,
		path:   path,
		size:   size,
	}, nil
}

func openImage(path string, dev *block.Device, size uint64, flags *globalFlags, logger *zap.Logger) (*disk, error) {
	opts := []diskimage.Option{diskimage.WithLogger(logger.With(zap.String("image", path)))}

	if flags.maxImageSize != 0 {
		opts = append(opts, diskimage.WithMaxSize(flags.maxImageSize))
	}

	if flags.sectorSize != 0 {
		opts = append(opts, diskimage.WithSectorSize(flags.sectorSize))
	}

	if size > math.MaxInt64 {
		return nil, fmt.Errorf("image %q is too large", path)
	}

	img, err := diskimage.NewFromReader(io.NewSectionReader(dev, 0, int64(size)), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load image %q: %w", path, err)
	}

	logger.Debug("loaded compressed image", zap.String("path", path), zap.Stringer("format", img.Format()), zap.Uint64("size", img.GetSize()))

	return &disk{
		Reader: img,
		path:   path,
		size:   img.GetSize(),
	}, nil
}

// partitionPath returns the kernel devname of the partition for block devices.
func (d *disk) partitionPath(devIndex uint) string {
	if d.dev == nil {
		return ""
	}

	if regular, err := d.dev.IsRegularFile(); err != nil || regular {
		return ""
	}

	return partitioning.DevName(d.path, devIndex)
}

func (d *disk) Close() error {
	if d.dev == nil {
		return nil
	}

	if err := d.dev.Unlock(); err != nil {
		d.dev.Close() //nolint:errcheck

		return err
	}

	return d.dev.Close()
}
