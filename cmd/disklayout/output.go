// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/siderolabs/gen/xslices"
	"github.com/siderolabs/go-pointer"
	"gopkg.in/yaml.v3"

	"github.com/siderolabs/go-disklayout/disklayout"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

var outputFormats = []string{outputTable, outputJSON, outputYAML}

type report struct { //nolint:govet
	Path       string           `json:"path" yaml:"path"`
	Size       uint64           `json:"size" yaml:"size"`
	SectorSize uint             `json:"sector_size" yaml:"sector_size"`
	Style      disklayout.Style `json:"style" yaml:"style"`
	State      disklayout.State `json:"state" yaml:"state"`
	Verified   bool             `json:"verified" yaml:"verified"`

	UsedBackupHeader bool       `json:"used_backup_header,omitempty" yaml:"used_backup_header,omitempty"`
	DiskGUID         *uuid.UUID `json:"disk_guid,omitempty" yaml:"disk_guid,omitempty"`
	DiskSignature    *string    `json:"disk_signature,omitempty" yaml:"disk_signature,omitempty"`
	Fault            *string    `json:"fault,omitempty" yaml:"fault,omitempty"`

	Partitions []partitionReport `json:"partitions" yaml:"partitions"`
}

type partitionReport struct {
	disklayout.Partition `yaml:",inline"`

	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

func newReport(d *disk, layout *disklayout.Layout) report {
	rep := report{
		Path:             d.path,
		Size:             d.size,
		SectorSize:       layout.SectorSize(),
		Style:            layout.Style(),
		State:            layout.State(),
		Verified:         layout.Verified(),
		UsedBackupHeader: layout.UsedBackupHeader(),
	}

	if guid, ok := layout.DiskGUID(); ok {
		rep.DiskGUID = pointer.To(guid)
	}

	if sig, ok := layout.DiskSignature(); ok {
		rep.DiskSignature = pointer.To(fmt.Sprintf("0x%08x", sig))
	}

	if fault := layout.Fault(); fault != nil {
		rep.Fault = pointer.To(fault.Error())
	}

	rep.Partitions = xslices.Map(layout.Partitions(), func(p disklayout.Partition) partitionReport {
		return partitionReport{
			Partition: p,
			Path:      d.partitionPath(p.DevIndex),
		}
	})

	return rep
}

func writeReport(w io.Writer, format string, rep report) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(rep)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(rep); err != nil {
			return err
		}

		return enc.Close()
	default:
		return writeTable(w, rep)
	}
}

func writeTable(w io.Writer, rep report) error {
	fmt.Fprintf(w, "Disk %s: %s, %d bytes, sector size %d\n", rep.Path, humanSize(rep.Size), rep.Size, rep.SectorSize)

	header := fmt.Sprintf("Partition table: %s (%s)", rep.Style, rep.State)

	switch {
	case rep.DiskGUID != nil:
		header += ", disk GUID " + rep.DiskGUID.String()
	case rep.DiskSignature != nil:
		header += ", disk signature " + *rep.DiskSignature
	}

	if rep.UsedBackupHeader {
		header += ", using backup header"
	}

	fmt.Fprintln(w, header)

	if rep.Fault != nil {
		fmt.Fprintf(w, "Damaged: %s\n", *rep.Fault)
	}

	if len(rep.Partitions) == 0 {
		return nil
	}

	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "#\tDEVICE\tBOOT\tSTART\tEND\tSIZE\tTYPE\tNAME\tFILESYSTEM")

	for _, p := range rep.Partitions {
		fmt.Fprintln(tw, strings.Join(tableRow(p), "\t"))
	}

	return tw.Flush()
}

func tableRow(p partitionReport) []string {
	boot := ""
	if p.Bootable {
		boot = "*"
	}

	typ := p.Type.Name
	if p.Kind != nil {
		typ = fmt.Sprintf("%s (%s)", typ, *p.Kind)
	}

	return []string{
		strconv.FormatUint(uint64(p.Number), 10),
		orDash(p.Path),
		boot,
		strconv.FormatUint(p.StartLBA, 10),
		strconv.FormatUint(p.EndLBA, 10),
		humanSize(p.Size),
		typ,
		orDash(pointer.SafeDeref(p.Name)),
		orDash(pointer.SafeDeref(p.Filesystem)),
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}

	return s
}

func humanSize(size uint64) string {
	const unit = 1024

	if size < unit {
		return fmt.Sprintf("%dB", size)
	}

	div, exp := uint64(unit), 0

	for n := size / unit; n >= unit && exp < 5; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f%ciB", float64(size)/float64(div), "KMGTPE"[exp])
}
