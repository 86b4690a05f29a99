// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package mbr

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	// ErrNotMBR is returned when sector 0 doesn't carry the 55 AA boot signature.
	ErrNotMBR = errors.New("no MBR boot signature")

	// ErrCorruptChain is returned when the extended partition chain loops, is too deep or is damaged.
	ErrCorruptChain = errors.New("corrupt extended partition chain")
)

// ChainError describes where the extended partition chain walk stopped.
type ChainError struct {
	Reason string

	// LBA of the offending EBR.
	LBA uint64

	// Depth is the 0-based index of the offending link in the chain.
	Depth int
}

func (e *ChainError) Error() string {
	return fmt.Sprintf("%s: %s (EBR at LBA %d, link %d)", ErrCorruptChain, e.Reason, e.LBA, e.Depth)
}

// Is implements errors.Is.
func (e *ChainError) Is(target error) bool {
	return target == ErrCorruptChain
}
