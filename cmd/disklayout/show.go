// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package main

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/siderolabs/go-disklayout/disklayout"
)

type showFlags struct {
	output        string
	noFilesystem  bool
	noBackup      bool
	extendedMagic bool
	maxChainDepth int
	maxEntries    uint32
	strict        bool
}

func showCmd(global *globalFlags, logger func() *zap.Logger) *cobra.Command {
	var flags showFlags

	cmd := &cobra.Command{
		Use:   "show <path>",
		Short: "Show the partition layout of a disk",
		Long: `Show the partition layout of a block device or disk image.

Compressed images (zstd, gzip, bzip2) are decompressed into memory.
A damaged partition table is reported along with the partitions which could be read.`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(*cobra.Command, []string) error {
			if !slices.Contains(outputFormats, flags.output) {
				return fmt.Errorf("unsupported output format %q, expected one of %v", flags.output, outputFormats)
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args[0], global, &flags, logger())
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", outputTable, fmt.Sprintf("Output format, one of %v", outputFormats))
	cmd.Flags().BoolVar(&flags.noFilesystem, "no-fs", false, "Skip filesystem detection")
	cmd.Flags().BoolVar(&flags.noBackup, "no-backup", false, "Do not fall back to the GPT backup header")
	cmd.Flags().BoolVar(&flags.extendedMagic, "extended-magic", false, "Detect filesystems beyond FAT32, NTFS and ext4")
	cmd.Flags().IntVar(&flags.maxChainDepth, "max-chain-depth", 0, "Limit on the number of extended boot records to follow")
	cmd.Flags().Uint32Var(&flags.maxEntries, "max-entries", 0, "Limit on the number of GPT entries")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "Exit with an error if the partition table is damaged")

	return cmd
}

func (flags *showFlags) layoutOptions(global *globalFlags, logger *zap.Logger) []disklayout.Option {
	opts := []disklayout.Option{disklayout.WithLogger(logger)}

	if global.sectorSize != 0 {
		opts = append(opts, disklayout.WithSectorSize(global.sectorSize))
	}

	if flags.noFilesystem {
		opts = append(opts, disklayout.WithoutFilesystemProbe())
	}

	if flags.noBackup {
		opts = append(opts, disklayout.WithoutBackupHeader())
	}

	if flags.extendedMagic {
		opts = append(opts, disklayout.WithExtendedMagic())
	}

	if flags.maxChainDepth > 0 {
		opts = append(opts, disklayout.WithMaxChainDepth(flags.maxChainDepth))
	}

	if flags.maxEntries > 0 {
		opts = append(opts, disklayout.WithMaxEntries(flags.maxEntries))
	}

	return opts
}

func runShow(cmd *cobra.Command, path string, global *globalFlags, flags *showFlags, logger *zap.Logger) error {
	d, err := openDisk(path, global, logger)
	if err != nil {
		return err
	}

	defer d.Close() //nolint:errcheck

	layout, err := disklayout.Create(d, flags.layoutOptions(global, logger)...)
	if layout == nil {
		return fmt.Errorf("failed to read partition table of %q: %w", path, err)
	}

	if err != nil {
		logger.Warn("partition table is damaged", zap.String("path", path), zap.Error(err))
	}

	rep := newReport(d, layout)

	if err = writeReport(cmd.OutOrStdout(), flags.output, rep); err != nil {
		return err
	}

	if flags.strict && layout.Partial() {
		return errors.Join(errPartial, layout.Fault())
	}

	return nil
}

var errPartial = errors.New("partition table is damaged")
