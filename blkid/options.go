// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package blkid

import "go.uber.org/zap"

// ProbeOptions is the options for probing.
type ProbeOptions struct {
	// Logger to use for logging.
	Logger *zap.Logger

	// ExtendedMagic enables the probes for filesystems and volume managers beyond FAT32, NTFS and ext4.
	ExtendedMagic bool
}

// ProbeOption is an option for probing.
type ProbeOption func(*ProbeOptions)

// WithProbeLogger sets the logger for the probe.
func WithProbeLogger(logger *zap.Logger) ProbeOption {
	return func(o *ProbeOptions) {
		o.Logger = logger
	}
}

// WithExtendedMagic enables the extended magic probes.
//
// They are consulted only after the boot sector and ext superblock probes found nothing.
func WithExtendedMagic() ProbeOption {
	return func(o *ProbeOptions) {
		o.ExtendedMagic = true
	}
}

func applyProbeOptions(opts ...ProbeOption) ProbeOptions {
	o := ProbeOptions{
		Logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}
