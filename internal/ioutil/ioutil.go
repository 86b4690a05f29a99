// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package ioutil provides IO utility functions.
package ioutil

import (
	"fmt"
	"io"
	"math"
)

// ReadFullAt is io.ReadFull for io.ReaderAt.
func ReadFullAt(r io.ReaderAt, buf []byte, offset int64) error {
	for n := 0; n < len(buf); {
		m, err := r.ReadAt(buf[n:], offset)

		n += m
		offset += int64(m)

		if err != nil {
			if err == io.EOF && n == len(buf) {
				return nil
			}

			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}

			return err
		}
	}

	return nil
}

// ReadAt reads exactly length bytes at the absolute byte offset.
func ReadAt(r io.ReaderAt, offset uint64, length int) ([]byte, error) {
	if offset > math.MaxInt64 {
		return nil, fmt.Errorf("offset %d out of range", offset)
	}

	buf := make([]byte, length)

	if err := ReadFullAt(r, buf, int64(offset)); err != nil {
		return nil, fmt.Errorf("error reading %d bytes at offset %d: %w", length, offset, err)
	}

	return buf, nil
}

// ReadSectors reads count sectors starting at lba.
func ReadSectors(r io.ReaderAt, lba uint64, count, sectorSize uint) ([]byte, error) {
	if sectorSize == 0 {
		return nil, fmt.Errorf("invalid sector size %d", sectorSize)
	}

	if lba > math.MaxInt64/uint64(sectorSize) {
		return nil, fmt.Errorf("LBA %d out of range", lba)
	}

	return ReadAt(r, lba*uint64(sectorSize), int(count*sectorSize))
}
