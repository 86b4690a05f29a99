// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package mbr

import "go.uber.org/zap"

// DefaultMaxChainDepth is the default limit on the number of EBRs followed per extended partition.
const DefaultMaxChainDepth = 1024

// Options configure reading the MBR.
type Options struct {
	// Logger to use for logging.
	Logger *zap.Logger

	// MaxChainDepth limits the number of EBRs followed in a single extended partition.
	MaxChainDepth int
}

// Option is a function that sets some option.
type Option func(*Options)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithMaxChainDepth overrides the extended partition chain depth limit.
func WithMaxChainDepth(depth int) Option {
	return func(o *Options) {
		o.MaxChainDepth = depth
	}
}

func applyOptions(opts ...Option) Options {
	o := Options{
		Logger:        zap.NewNop(),
		MaxChainDepth: DefaultMaxChainDepth,
	}

	for _, opt := range opts {
		opt(&o)
	}

	if o.MaxChainDepth <= 0 {
		o.MaxChainDepth = DefaultMaxChainDepth
	}

	return o
}
