package pwg

import (
	"github.com/rs/zerolog"

	"github.com/consensys/acvm/acir"
	"github.com/consensys/acvm/blackbox"
	"github.com/consensys/acvm/logger"
)

// Option alters the behavior of a solving session. See the descriptions of
// functions returning instances of this type for implemented options.
type Option func(*Config) error

// Config is the session configuration with the options applied.
type Config struct {
	BlackBox *blackbox.Registry
	Logger   zerolog.Logger
}

// WithBlackBoxRegistry replaces the session's black-box registry.
func WithBlackBoxRegistry(r *blackbox.Registry) Option {
	return func(cfg *Config) error {
		cfg.BlackBox = r
		return nil
	}
}

// WithBlackBoxFunc registers a local black-box implementation.
func WithBlackBoxFunc(fn acir.BlackBoxFunc, f blackbox.Func) Option {
	return func(cfg *Config) error {
		cfg.BlackBox.Register(fn, f)
		return nil
	}
}

// WithDeferredBlackBox marks functions as resolved by the caller: the
// session blocks when it reaches one and resumes through ResolveBlackBox.
func WithDeferredBlackBox(fns ...acir.BlackBoxFunc) Option {
	return func(cfg *Config) error {
		for _, fn := range fns {
			cfg.BlackBox.Defer(fn)
		}
		return nil
	}
}

// WithLogger replaces the default zerolog logger.
func WithLogger(l zerolog.Logger) Option {
	return func(cfg *Config) error {
		cfg.Logger = l
		return nil
	}
}

// NewConfig returns a default configuration with the given options applied.
func NewConfig(opts ...Option) (Config, error) {
	cfg := Config{
		BlackBox: blackbox.NewRegistry(),
		Logger:   logger.Logger(),
	}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}
