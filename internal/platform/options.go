package platform

import (
	"log/slog"

	"github.com/aretw0/hbnb/pkg/storage"
)

// options holds the internal configuration for opening a storage.
type options struct {
	logger *slog.Logger
	codec  storage.Codec
	config map[string]interface{}
}

// Option defines a functional option for configuring the storage.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		config: map[string]interface{}{
			"atomic": true,
			"strict": true,
		},
	}
}

// WithLogger sets the logger for the storage.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithCodec forces a codec regardless of the backing file extension.
func WithCodec(c storage.Codec) Option {
	return func(o *options) {
		o.codec = c
	}
}

// WithStrict controls strict number decoding for JSON. Enabled by default.
// Numbers are kept as json.Number (string based) to preserve large integers.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.config["strict"] = strict
	}
}

// WithIndent pretty-prints the backing file.
func WithIndent(indent bool) Option {
	return func(o *options) {
		o.config["indent"] = indent
	}
}

// WithAtomicWrites controls whether snapshots replace the file through a
// temp file and rename. Enabled by default.
func WithAtomicWrites(enabled bool) Option {
	return func(o *options) {
		o.config["atomic"] = enabled
	}
}

// WithReadOnly enables read-only mode: Save returns core.ErrReadOnly.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.config["read_only"] = enabled
	}
}

// WithEventBuffer sets the capacity of the Watch channel.
// Zero means default (16).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.config["event_buffer"] = size
	}
}
