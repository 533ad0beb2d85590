package querysql

import (
	"log/slog"

	"github.com/roach88/calsearch/internal/queryir"
)

// ColumnFormatter wraps a rendered column reference, e.g. to strip a known
// prefix from a stored URI before comparison.
type ColumnFormatter func(column string) string

// Option configures an Adapter.
type Option func(*config)

type config struct {
	dialect           Dialect
	charset           string
	prefixes          map[string]string
	formatters        map[queryir.Field]ColumnFormatter
	placeholderOffset int
	folding           bool
	logger            *slog.Logger
}

func newConfig(opts []Option) config {
	cfg := config{
		dialect:    DialectMySQL,
		prefixes:   map[string]string{},
		formatters: map[queryir.Field]ColumnFormatter{},
		folding:    true,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	return cfg
}

// WithDialect selects the SQL dialect (default MySQL).
func WithDialect(d Dialect) Option {
	return func(cfg *config) {
		cfg.dialect = d
	}
}

// WithCharset converts textual columns to charset before comparing them.
func WithCharset(charset string) Option {
	return func(cfg *config) {
		cfg.charset = charset
	}
}

// WithPrefix overrides the table alias of a registry. An empty alias
// renders bare column names.
func WithPrefix(registry, alias string) Option {
	return func(cfg *config) {
		cfg.prefixes[registry] = alias
	}
}

// WithPrefixes overrides several registry aliases at once.
func WithPrefixes(prefixes map[string]string) Option {
	return func(cfg *config) {
		for registry, alias := range prefixes {
			cfg.prefixes[registry] = alias
		}
	}
}

// WithColumnFormatter installs a formatter for every column of one field.
func WithColumnFormatter(field queryir.Field, f ColumnFormatter) Option {
	return func(cfg *config) {
		if f == nil {
			delete(cfg.formatters, field)
			return
		}
		cfg.formatters[field] = f
	}
}

// WithPlaceholderOffset declares how many parameters precede the fragment
// in the final statement. Only numbered placeholders ($n) depend on it.
func WithPlaceholderOffset(n int) Option {
	return func(cfg *config) {
		cfg.placeholderOffset = n
	}
}

// WithoutINFolding renders OR'd equality terms as a plain OR chain.
func WithoutINFolding() Option {
	return func(cfg *config) {
		cfg.folding = false
	}
}

// WithLogger sets the logger for compilation diagnostics (default slog.Default()).
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}
