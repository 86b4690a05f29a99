// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package main implements the disklayout CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type globalFlags struct {
	debug        bool
	sectorSize   uint
	maxImageSize uint64
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	config.Encoding = "console"
	config.DisableStacktrace = true

	return config.Build()
}

func rootCmd() *cobra.Command {
	var (
		flags  globalFlags
		logger = zap.NewNop()
	)

	cmd := &cobra.Command{
		Use:           "disklayout",
		Short:         "Inspect MBR and GPT partition tables",
		Long:          `Read the partition table of a block device or disk image, and identify the filesystem in each partition.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			var err error

			logger, err = newLogger(flags.debug)

			return err
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			logger.Sync() //nolint:errcheck
		},
	}

	cmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().UintVar(&flags.sectorSize, "sector-size", 0, "Override the logical sector size of the disk")
	cmd.PersistentFlags().Uint64Var(&flags.maxImageSize, "max-image-size", 0, "Limit for decompressed disk images in bytes")

	loggerFn := func() *zap.Logger { return logger }

	cmd.AddCommand(showCmd(&flags, loggerFn))
	cmd.AddCommand(probeCmd(&flags, loggerFn))

	return cmd
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
