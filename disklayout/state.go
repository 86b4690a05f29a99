// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package disklayout

import "fmt"

// Style is the partitioning scheme of the disk.
type Style int

// Partitioning styles.
const (
	StyleRaw Style = iota
	StyleMBR
	StyleGPT
)

func (s Style) String() string {
	switch s {
	case StyleRaw:
		return "Raw"
	case StyleMBR:
		return "MBR"
	case StyleGPT:
		return "GPT"
	default:
		return fmt.Sprintf("style(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Style) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// State is a step of reading the disk layout.
//
//	Unread -> ProtectiveSectorRead -> GPTCandidate | MBRCandidate | Raw
//	GPTCandidate -> MBRCandidate, if there is no GPT header behind the protective entry
//	GPTCandidate | MBRCandidate -> Valid | Corrupt
//	MBRCandidate -> Raw, if the boot signature is gone
type State int

// Layout states.
const (
	StateUnread State = iota
	StateProtectiveSectorRead
	StateGPTCandidate
	StateMBRCandidate
	StateRaw
	StateValid
	StateCorrupt
)

func (s State) String() string {
	switch s {
	case StateUnread:
		return "Unread"
	case StateProtectiveSectorRead:
		return "ProtectiveSectorRead"
	case StateGPTCandidate:
		return "GPTCandidate"
	case StateMBRCandidate:
		return "MBRCandidate"
	case StateRaw:
		return "Raw"
	case StateValid:
		return "Valid"
	case StateCorrupt:
		return "Corrupt"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Terminal returns true if reading stopped in this state.
func (s State) Terminal() bool {
	return s == StateRaw || s == StateValid || s == StateCorrupt
}
