// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package disktest builds synthetic in-memory disk images for tests.
package disktest

import (
	"fmt"
	"io"
)

// Image is an in-memory disk image.
//
// It implements the reader interfaces consumed by the partition table parsers.
type Image struct {
	buf        []byte
	sectorSize uint
}

// New allocates a zeroed image of size bytes.
func New(size uint64, sectorSize uint) *Image {
	return &Image{
		buf:        make([]byte, size),
		sectorSize: sectorSize,
	}
}

// ReadAt implements io.ReaderAt.
func (img *Image) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("negative offset %d", off)
	}

	if off >= int64(len(img.buf)) {
		return 0, io.EOF
	}

	n := copy(p, img.buf[off:])
	if n < len(p) {
		return n, io.EOF
	}

	return n, nil
}

// WriteAt implements io.WriterAt.
func (img *Image) WriteAt(p []byte, off int64) (int, error) {
	if off < 0 || off+int64(len(p)) > int64(len(img.buf)) {
		return 0, fmt.Errorf("write of %d bytes at %d out of bounds", len(p), off)
	}

	return copy(img.buf[off:], p), nil
}

// GetSectorSize returns the logical sector size.
func (img *Image) GetSectorSize() uint {
	return img.sectorSize
}

// GetSize returns the image size in bytes.
func (img *Image) GetSize() uint64 {
	return uint64(len(img.buf))
}

// Bytes returns the underlying buffer.
func (img *Image) Bytes() []byte {
	return img.buf
}

// Sector returns a writable view of the sector at lba.
func (img *Image) Sector(lba uint64) []byte {
	start := lba * uint64(img.sectorSize)

	return img.buf[start : start+uint64(img.sectorSize)]
}

// LastLBA returns the last addressable LBA of the image.
func (img *Image) LastLBA() uint64 {
	return uint64(len(img.buf))/uint64(img.sectorSize) - 1
}

// CountingReader counts ReadAt calls going to the wrapped image.
type CountingReader struct {
	*Image

	Reads   int
	Offsets []int64
}

// ReadAt implements io.ReaderAt.
func (r *CountingReader) ReadAt(p []byte, off int64) (int, error) {
	r.Reads++
	r.Offsets = append(r.Offsets, off)

	return r.Image.ReadAt(p, off)
}

// FailingReader fails every read touching [FailFrom, FailTo).
type FailingReader struct {
	*Image

	FailFrom, FailTo int64
	Err              error
}

// ReadAt implements io.ReaderAt.
func (r *FailingReader) ReadAt(p []byte, off int64) (int, error) {
	if off < r.FailTo && off+int64(len(p)) > r.FailFrom {
		return 0, r.Err
	}

	return r.Image.ReadAt(p, off)
}
