// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/siderolabs/go-disklayout/blkid"
)

func probeCmd(global *globalFlags, logger func() *zap.Logger) *cobra.Command {
	var (
		offset        uint64
		extendedMagic bool
	)

	cmd := &cobra.Command{
		Use:   "probe <path>",
		Short: "Detect the filesystem at a byte offset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDisk(args[0], global, logger())
			if err != nil {
				return err
			}

			defer d.Close() //nolint:errcheck

			sectorSize := global.sectorSize
			if sectorSize == 0 {
				sectorSize = d.GetSectorSize()
			}

			opts := []blkid.ProbeOption{blkid.WithProbeLogger(logger())}

			if extendedMagic {
				opts = append(opts, blkid.WithExtendedMagic())
			}

			sig := blkid.Probe(d, offset, sectorSize, opts...)

			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", sig.Name, sig.Offset)

			return nil
		},
	}

	cmd.Flags().Uint64Var(&offset, "offset", 0, "Byte offset of the partition")
	cmd.Flags().BoolVar(&extendedMagic, "extended-magic", false, "Detect filesystems beyond FAT32, NTFS and ext4")

	return cmd
}
