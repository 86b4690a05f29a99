// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

//go:build !linux

package block

import "os"

// NewFromPath returns a new Device from the specified path.
func NewFromPath(path string) (*Device, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	return &Device{
		f:         f,
		ownedFile: true,
	}, nil
}

// GetSize returns the size of the underlying file in bytes.
func (d *Device) GetSize() (uint64, error) {
	return d.fileSize()
}

// GetIOSize returns DefaultBlockSize.
func (d *Device) GetIOSize() (uint, error) {
	return DefaultBlockSize, nil
}

// GetSectorSize returns DefaultBlockSize.
func (d *Device) GetSectorSize() uint {
	return DefaultBlockSize
}

// IsWholeDisk always returns true.
func (d *Device) IsWholeDisk() (bool, error) {
	return true, nil
}

// Lock is a no-op.
func (d *Device) Lock(bool) error {
	return nil
}

// TryLock is a no-op.
func (d *Device) TryLock(bool) error {
	return nil
}

// Unlock is a no-op.
func (d *Device) Unlock() error {
	return nil
}
