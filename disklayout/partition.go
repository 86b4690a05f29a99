// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package disklayout

import (
	"github.com/google/uuid"
	"github.com/siderolabs/go-pointer"

	"github.com/siderolabs/go-disklayout/parttype"
	"github.com/siderolabs/go-disklayout/partitioning/gpt"
	"github.com/siderolabs/go-disklayout/partitioning/mbr"
)

// Partition describes a single partition of the disk, regardless of the partitioning style.
type Partition struct { //nolint:govet
	// Number is 1-based, in on-disk order.
	Number uint  `json:"number" yaml:"number"`
	Style  Style `json:"style" yaml:"style"`

	// DevIndex is the number the kernel gives the partition device node.
	DevIndex uint `json:"dev_index" yaml:"dev_index"`

	// Kind is only set for MBR partitions.
	Kind *mbr.Kind `json:"kind,omitempty" yaml:"kind,omitempty"`

	Offset uint64 `json:"offset" yaml:"offset"`
	Size   uint64 `json:"size" yaml:"size"`

	// StartLBA and EndLBA are inclusive.
	StartLBA uint64 `json:"start_lba" yaml:"start_lba"`
	EndLBA   uint64 `json:"end_lba" yaml:"end_lba"`

	Type parttype.Descriptor `json:"type" yaml:"type"`

	// Bootable is the MBR active flag, or the GPT legacy BIOS bootable attribute.
	Bootable bool `json:"bootable,omitempty" yaml:"bootable,omitempty"`

	// MBR only.
	TypeCode *byte `json:"type_code,omitempty" yaml:"type_code,omitempty"`

	// GPT only.
	TypeGUID   *uuid.UUID `json:"type_guid,omitempty" yaml:"type_guid,omitempty"`
	UniqueGUID *uuid.UUID `json:"unique_guid,omitempty" yaml:"unique_guid,omitempty"`
	Name       *string    `json:"name,omitempty" yaml:"name,omitempty"`
	Attributes uint64     `json:"attributes,omitempty" yaml:"attributes,omitempty"`

	// Filesystem is nil if the partition was not probed.
	Filesystem       *string `json:"filesystem,omitempty" yaml:"filesystem,omitempty"`
	FilesystemOffset uint64  `json:"filesystem_offset,omitempty" yaml:"filesystem_offset,omitempty"`
}

// Extended returns true for MBR extended partition containers.
func (p Partition) Extended() bool {
	return p.TypeCode != nil && parttype.IsExtended(*p.TypeCode)
}

// clone returns a copy of the partition which shares no memory with p.
func (p Partition) clone() Partition {
	p.Kind = clonePtr(p.Kind)
	p.TypeCode = clonePtr(p.TypeCode)
	p.TypeGUID = clonePtr(p.TypeGUID)
	p.UniqueGUID = clonePtr(p.UniqueGUID)
	p.Name = clonePtr(p.Name)
	p.Filesystem = clonePtr(p.Filesystem)

	return p
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}

	return pointer.To(*v)
}

func fromMBR(p mbr.Partition, sectorSize uint) Partition {
	return Partition{
		Number:   p.Number,
		Style:    StyleMBR,
		DevIndex: p.DevIndex(),
		Kind:     pointer.To(p.Kind),
		Offset:   p.Offset(sectorSize),
		Size:     p.Size(sectorSize),
		StartLBA: p.StartLBA,
		EndLBA:   p.EndLBA(),
		Type:     parttype.LookupMBR(p.Type),
		TypeCode: pointer.To(p.Type),
		Bootable: p.Bootable(),
	}
}

func fromGPT(p gpt.Partition, sectorSize uint) Partition {
	return Partition{
		Number:     p.Index,
		Style:      StyleGPT,
		DevIndex:   p.Index,
		Offset:     p.Offset(sectorSize),
		Size:       p.Size(sectorSize),
		StartLBA:   p.FirstLBA,
		EndLBA:     p.LastLBA,
		Type:       parttype.LookupGPT(p.TypeGUID),
		TypeGUID:   pointer.To(p.TypeGUID),
		UniqueGUID: pointer.To(p.UniqueGUID),
		Name:       pointer.To(p.Name),
		Attributes: p.Attributes,
		Bootable:   p.LegacyBIOSBootable(),
	}
}
