package goanf

import (
	"io"
	"log/slog"
)

// Config holds Forest construction parameters.
// All fields are exported to allow inspection after construction.
type Config struct {
	// Sparsity is the maximum degree any node may carry. Terms of higher
	// degree are discarded at construction time. Unbounded keeps every term.
	Sparsity int

	// InlineVariables is the number of low variable indices eligible for
	// inline NodeIDs. A value of 0 disables inline encoding.
	InlineVariables int

	// PageSize is the initial number of slots in each per-variable node page.
	PageSize int

	// Logger receives debug and diagnostic events.
	Logger *slog.Logger
}

// Option configures Forest parameters using the functional options pattern.
// Options are applied in the order they are provided to NewForest.
type Option func(*Config)

// WithSparsity sets the degree truncation bound.
//
// If k < 0, the bound is Unbounded (exact arithmetic).
// If k == 0, every polynomial collapses to its constant term.
// If k > 0, terms of degree greater than k are dropped as nodes are built.
//
// Truncation is lossy. Use it only when exact degree tracking is too
// expensive for the problem at hand.
func WithSparsity(k int) Option {
	return func(c *Config) {
		if k < 0 {
			c.Sparsity = Unbounded
		} else {
			c.Sparsity = k
		}
	}
}

// WithInlineVariables sets how many low variable indices use inline NodeIDs.
//
// If n <= 0, inline encoding is disabled and every node takes an arena slot.
// Values above the encodable limit are clamped.
func WithInlineVariables(n int) Option {
	return func(c *Config) {
		switch {
		case n <= 0:
			c.InlineVariables = 0
		case n > maxInlineVariables:
			c.InlineVariables = maxInlineVariables
		default:
			c.InlineVariables = n
		}
	}
}

// WithPageSize sets the initial slot count of each per-variable node page.
// The size is rounded up to a power of two; values below 8 become 8.
func WithPageSize(n int) Option {
	return func(c *Config) {
		size := 8
		for size < n {
			size <<= 1
		}
		c.PageSize = size
	}
}

// WithLogger sets the structured logger used for diagnostics.
// A nil logger restores the default, which discards all output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// newConfig creates a new configuration with sensible defaults and applies
// the provided options in order.
//
// Default values:
//   - Sparsity: Unbounded
//   - InlineVariables: 1 << 16
//   - PageSize: 64
//   - Logger: discards output
func newConfig(opts ...Option) *Config {
	cfg := &Config{
		Sparsity:        Unbounded,
		InlineVariables: 1 << 16,
		PageSize:        64,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return cfg
}
