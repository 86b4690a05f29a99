// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package parttype maps MBR partition type codes and GPT partition type GUIDs to names.
//
// The tables are fixed at compile time and never modified, so lookups are safe
// for concurrent use.
package parttype

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Descriptor is a human-readable description of a partition type.
type Descriptor struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// Known returns true if the descriptor came from the catalog.
func (d Descriptor) Known() bool {
	return !strings.HasPrefix(d.Name, unknownPrefix)
}

const unknownPrefix = "Unknown ("

// MBR extended partition type codes.
const (
	MBRExtendedCHS   = 0x05
	MBRExtendedLBA   = 0x0f
	MBRLinuxExtended = 0x85
	MBRProtective    = 0xee
)

// LookupMBR returns the descriptor for the MBR partition type code.
func LookupMBR(code byte) Descriptor {
	if d, ok := mbrTypes[code]; ok {
		return d
	}

	return Descriptor{
		Name:        fmt.Sprintf("%s0x%02X)", unknownPrefix, code),
		Description: "unrecognized MBR partition type",
	}
}

// LookupGPT returns the descriptor for the GPT partition type GUID.
func LookupGPT(guid uuid.UUID) Descriptor {
	if d, ok := gptTypes[guid]; ok {
		return d
	}

	return Descriptor{
		Name:        fmt.Sprintf("%s{%s})", unknownPrefix, strings.ToUpper(guid.String())),
		Description: "unrecognized GPT partition type",
	}
}

// IsExtended returns true if the MBR type code denotes an extended partition container.
func IsExtended(code byte) bool {
	switch code {
	case MBRExtendedCHS, MBRExtendedLBA, MBRLinuxExtended:
		return true
	default:
		return false
	}
}

// IsProtective returns true if the MBR type code marks a GPT protective MBR entry.
func IsProtective(code byte) bool {
	return code == MBRProtective
}
