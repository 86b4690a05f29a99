// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package gpt

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors.
var (
	// ErrNotGPT is returned when there is no protective MBR or no GPT header signature.
	ErrNotGPT = errors.New("no GPT found")

	// ErrHeaderCorrupt is returned when neither the primary nor the backup header validate.
	ErrHeaderCorrupt = errors.New("GPT header corrupt")

	// ErrEntryArrayCorrupt is returned when the partition entry array checksum doesn't match.
	ErrEntryArrayCorrupt = errors.New("GPT partition entry array corrupt")
)

// HeaderFault describes why a single GPT header was rejected.
type HeaderFault struct {
	Reason string

	LBA uint64

	// Stored and Computed are set for checksum mismatches.
	Stored, Computed uint32
}

func (f HeaderFault) String() string {
	if f.Stored != f.Computed {
		return fmt.Sprintf("LBA %d: %s (stored 0x%08x, computed 0x%08x)", f.LBA, f.Reason, f.Stored, f.Computed)
	}

	return fmt.Sprintf("LBA %d: %s", f.LBA, f.Reason)
}

// HeaderCorruptError is returned when no GPT header could be validated.
type HeaderCorruptError struct {
	// Faults lists every header tried, primary first.
	Faults []HeaderFault
}

func (e *HeaderCorruptError) Error() string {
	faults := make([]string, 0, len(e.Faults))

	for _, f := range e.Faults {
		faults = append(faults, f.String())
	}

	return fmt.Sprintf("%s: %s", ErrHeaderCorrupt, strings.Join(faults, "; "))
}

// Is implements errors.Is.
func (e *HeaderCorruptError) Is(target error) bool {
	return target == ErrHeaderCorrupt
}

// EntryArrayCorruptError is returned when the partition entry array failed validation.
type EntryArrayCorruptError struct {
	Reason string

	LBA uint64

	Stored, Computed uint32
}

func (e *EntryArrayCorruptError) Error() string {
	if e.Stored != e.Computed {
		return fmt.Sprintf("%s: %s at LBA %d (stored 0x%08x, computed 0x%08x)", ErrEntryArrayCorrupt, e.Reason, e.LBA, e.Stored, e.Computed)
	}

	return fmt.Sprintf("%s: %s at LBA %d", ErrEntryArrayCorrupt, e.Reason, e.LBA)
}

// Is implements errors.Is.
func (e *EntryArrayCorruptError) Is(target error) bool {
	return target == ErrEntryArrayCorrupt
}
