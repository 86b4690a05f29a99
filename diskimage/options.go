// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package diskimage

import "go.uber.org/zap"

// Default limits.
const (
	DefaultSectorSize = 512
	DefaultMaxSize    = 4 << 30
)

// Options is a set of options for opening disk images.
type Options struct {
	// Logger to use for logging.
	Logger *zap.Logger

	// SectorSize reported by the image.
	SectorSize uint

	// MaxSize limits the decompressed image size.
	MaxSize uint64
}

// Option is a function that sets some option.
type Option func(*Options)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithSectorSize sets the sector size reported by the image.
func WithSectorSize(sectorSize uint) Option {
	return func(o *Options) {
		o.SectorSize = sectorSize
	}
}

// WithMaxSize limits the decompressed image size.
func WithMaxSize(size uint64) Option {
	return func(o *Options) {
		o.MaxSize = size
	}
}

func applyOptions(opts ...Option) Options {
	o := Options{
		Logger:     zap.NewNop(),
		SectorSize: DefaultSectorSize,
		MaxSize:    DefaultMaxSize,
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}
