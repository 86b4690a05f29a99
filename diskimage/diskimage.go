// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package diskimage loads compressed disk images into memory for reading.
package diskimage

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"

	"github.com/siderolabs/go-disklayout/internal/magic"
)

// ErrTooLarge is returned when the decompressed image exceeds the size limit.
var ErrTooLarge = errors.New("disk image is too large")

// Format is the compression format of a disk image.
type Format int

// Supported formats.
const (
	FormatRaw Format = iota
	FormatZstd
	FormatGzip
	FormatBzip2
)

func (f Format) String() string {
	switch f {
	case FormatRaw:
		return "raw"
	case FormatZstd:
		return "zstd"
	case FormatGzip:
		return "gzip"
	case FormatBzip2:
		return "bzip2"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

var formatMagic = []struct {
	magic  magic.Magic
	format Format
}{
	{magic: magic.Magic{Value: []byte{0x28, 0xb5, 0x2f, 0xfd}}, format: FormatZstd},
	{magic: magic.Magic{Value: []byte{0x1f, 0x8b}}, format: FormatGzip},
	{magic: magic.Magic{Value: []byte("BZh")}, format: FormatBzip2},
}

// DetectFormat returns the compression format of the stream header.
func DetectFormat(header []byte) Format {
	for _, m := range formatMagic {
		if m.magic.Matches(header) {
			return m.format
		}
	}

	return FormatRaw
}

// Image is a disk image held in memory.
type Image struct {
	data []byte

	format     Format
	sectorSize uint
}

// Open reads the disk image at path, decompressing it if needed.
func Open(path string, opts ...Option) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	defer f.Close() //nolint:errcheck

	return NewFromReader(f, opts...)
}

// NewFromReader reads the disk image from r, decompressing it if needed.
func NewFromReader(r io.Reader, opts ...Option) (*Image, error) {
	options := applyOptions(opts...)

	br := bufio.NewReader(r)

	header, err := br.Peek(4)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read image header: %w", err)
	}

	format := DetectFormat(header)

	options.Logger.Debug("reading disk image", zap.Stringer("format", format), zap.Uint64("max_size", options.MaxSize))

	src, closer, err := decompressor(br, format)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s decompressor: %w", format, err)
	}

	defer closer()

	var buf bytes.Buffer

	limit := int64(math.MaxInt64)
	if options.MaxSize < math.MaxInt64 {
		limit = int64(options.MaxSize) + 1
	}

	n, err := io.Copy(&buf, io.LimitReader(src, limit))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s image: %w", format, err)
	}

	if uint64(n) > options.MaxSize {
		return nil, fmt.Errorf("%w: limit %d bytes", ErrTooLarge, options.MaxSize)
	}

	options.Logger.Debug("disk image loaded", zap.Int64("size", n))

	return &Image{
		data:       buf.Bytes(),
		format:     format,
		sectorSize: options.SectorSize,
	}, nil
}

func decompressor(r io.Reader, format Format) (io.Reader, func(), error) {
	switch format {
	case FormatZstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, err
		}

		return dec, dec.Close, nil
	case FormatGzip:
		dec, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, err
		}

		return dec, func() { dec.Close() }, nil //nolint:errcheck,gosec
	case FormatBzip2:
		dec, err := bzip2.NewReader(r, nil)
		if err != nil {
			return nil, nil, err
		}

		return dec, func() { dec.Close() }, nil //nolint:errcheck,gosec
	default:
		return r, func() {}, nil
	}
}

// ReadAt implements io.ReaderAt.
func (img *Image) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("negative offset %d", off)
	}

	if off >= int64(len(img.data)) {
		return 0, io.EOF
	}

	n := copy(p, img.data[off:])
	if n < len(p) {
		return n, io.EOF
	}

	return n, nil
}

// GetSectorSize returns the sector size of the image.
func (img *Image) GetSectorSize() uint {
	return img.sectorSize
}

// GetSize returns the decompressed size of the image.
func (img *Image) GetSize() uint64 {
	return uint64(len(img.data))
}

// Format returns the compression format the image was stored in.
func (img *Image) Format() Format {
	return img.format
}
