// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package gpt

import "go.uber.org/zap"

// DefaultMaxEntries is the default limit on the number of partition entries read.
const DefaultMaxEntries = 1024

// Options is a set of options for reading the partition table.
type Options struct {
	// Logger to use for logging.
	Logger *zap.Logger

	// MaxEntries limits the partition entry count accepted from the header.
	MaxEntries uint32

	// SkipBackup disables falling back to the backup header.
	SkipBackup bool
}

// Option is a function that sets some option.
type Option func(*Options)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithMaxEntries overrides the partition entry count limit.
func WithMaxEntries(n uint32) Option {
	return func(o *Options) {
		o.MaxEntries = n
	}
}

// WithoutBackup is an option to trust the primary header only.
func WithoutBackup() Option {
	return func(o *Options) {
		o.SkipBackup = true
	}
}

func applyOptions(opts ...Option) Options {
	o := Options{
		Logger:     zap.NewNop(),
		MaxEntries: DefaultMaxEntries,
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}
