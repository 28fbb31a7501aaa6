package logger

// Config provides environment-based logger configuration.
type Config struct {
	Level         string `env:"LOG_LEVEL" envDefault:"info"`
	Format        string `env:"LOG_FORMAT" envDefault:"json"`
	StackTrace    bool   `env:"LOG_STACK_TRACE" envDefault:"true"`
	MaxStackDepth int    `env:"LOG_MAX_STACK_DEPTH" envDefault:"10"`
}

// NewFromConfig creates a logger from configuration. Extra options are
// applied after the config and may override it.
func NewFromConfig(cfg Config, opts ...Option) *Logger {
	depth := 0
	if cfg.StackTrace && cfg.MaxStackDepth > 0 {
		depth = cfg.MaxStackDepth
	}

	all := []Option{
		WithLevel(ParseLevel(cfg.Level)),
		WithFormat(Format(cfg.Format)),
		WithStackTrace(depth),
	}
	all = append(all, opts...)
	return New(all...)
}
