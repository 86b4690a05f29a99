// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package block provides read access to blockdevices and raw disk images.
package block

import (
	"fmt"
	"os"
)

// Device wraps blockdevice operations.
type Device struct {
	f *os.File

	ownedFile bool
	devNo     uint64
}

// NewFromFile returns a new Device from the specified file.
func NewFromFile(f *os.File) *Device {
	return &Device{f: f}
}

// DefaultBlockSize is the default block size in bytes.
const DefaultBlockSize = 512

// ReadAt implements io.ReaderAt.
func (d *Device) ReadAt(p []byte, off int64) (int, error) {
	return d.f.ReadAt(p, off)
}

// Name returns the path the device was opened with.
func (d *Device) Name() string {
	return d.f.Name()
}

// Close the device.
//
// The underlying file is closed only if the device was opened by NewFromPath.
func (d *Device) Close() error {
	if !d.ownedFile {
		return nil
	}

	return d.f.Close()
}

// IsRegularFile returns true if the device is backed by a regular file (disk image).
func (d *Device) IsRegularFile() (bool, error) {
	st, err := d.f.Stat()
	if err != nil {
		return false, fmt.Errorf("failed to stat %q: %w", d.f.Name(), err)
	}

	return st.Mode().IsRegular(), nil
}

func (d *Device) fileSize() (uint64, error) {
	st, err := d.f.Stat()
	if err != nil {
		return 0, fmt.Errorf("failed to stat %q: %w", d.f.Name(), err)
	}

	return uint64(st.Size()), nil
}
