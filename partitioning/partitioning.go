// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package partitioning maps partition numbers to kernel device names.
package partitioning

import (
	"strconv"
	"strings"
)

// DevName returns the devname for the partition on a disk.
//
// Disks with a name ending in a digit get a "p" separator: /dev/nvme0n1 becomes /dev/nvme0n1p2.
func DevName(device string, part uint) string {
	result := device

	if endsWithDigit(result) {
		result += "p"
	}

	return result + strconv.FormatUint(uint64(part), 10)
}

// SplitDevName splits a partition devname into the disk devname and the partition number.
//
// It is the inverse of DevName; ok is false if devname does not look like a partition.
func SplitDevName(devname string) (device string, part uint, ok bool) {
	digits := strings.TrimRightFunc(devname, isDigit)
	if len(digits) == len(devname) || len(digits) == 0 {
		return "", 0, false
	}

	n, err := strconv.ParseUint(devname[len(digits):], 10, 32)
	if err != nil || n == 0 {
		return "", 0, false
	}

	device = digits

	if trimmed, found := strings.CutSuffix(device, "p"); found && endsWithDigit(trimmed) {
		device = trimmed
	} else if endsWithDigit(device) {
		return "", 0, false
	}

	return device, uint(n), true
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func endsWithDigit(s string) bool {
	return len(s) > 0 && isDigit(rune(s[len(s)-1]))
}
