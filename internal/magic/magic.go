// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package magic implements the magic number detection for partitions.
package magic

import "bytes"

// Magic defines a filesystem/volume manager/etc magic value.
type Magic struct {
	// Value to search for.
	Value []byte

	// Offset in the buffer where the magic value is located.
	Offset int
}

// Matches returns true if the magic value is found at the specified offset in the buffer.
func (magic *Magic) Matches(buf []byte) bool {
	if len(buf) < magic.BlockSize() {
		return false
	}

	return bytes.Equal(buf[magic.Offset:magic.Offset+len(magic.Value)], magic.Value)
}

// BlockSize returns the size of the buffer that needs to be read from the disk to detect the magic value.
func (magic *Magic) BlockSize() int {
	return magic.Offset + len(magic.Value)
}

// Set is a list of magic values, any of which identifies the same thing.
type Set []*Magic

// Matches returns true if any of the magic values matches.
func (set Set) Matches(buf []byte) bool {
	for _, m := range set {
		if m.Matches(buf) {
			return true
		}
	}

	return false
}

// BlockSize returns the size of the buffer needed to check every magic in the set.
func (set Set) BlockSize() int {
	size := 0

	for _, m := range set {
		size = max(size, m.BlockSize())
	}

	return size
}
