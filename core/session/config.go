package session

import "time"

// Config holds session manager configuration.
type Config struct {
	// Lifespan is the absolute session lifetime set at creation and at each
	// refresh (default 30 days).
	Lifespan time.Duration `env:"SESSION_LIFESPAN" envDefault:"720h"`
	// RefreshThreshold is the sliding-window cutoff: a validated session
	// with less than this much lifetime left gets extended (default 7 days).
	RefreshThreshold time.Duration `env:"SESSION_REFRESH_THRESHOLD" envDefault:"168h"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		Lifespan:         30 * 24 * time.Hour,
		RefreshThreshold: 7 * 24 * time.Hour,
	}
}

// Option is a functional option for configuring the session manager.
type Option func(*Manager)

// WithLifespan sets the absolute session lifetime.
func WithLifespan(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.lifespan = d
		}
	}
}

// WithRefreshThreshold sets the sliding-window refresh cutoff.
func WithRefreshThreshold(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.refreshThreshold = d
		}
	}
}

// WithCache attaches an optional read-through session cache.
func WithCache(c Cache) Option {
	return func(m *Manager) { m.cache = c }
}

// WithConfig applies lifespan and refresh threshold from a Config.
func WithConfig(cfg Config) Option {
	return func(m *Manager) {
		if cfg.Lifespan > 0 {
			m.lifespan = cfg.Lifespan
		}
		if cfg.RefreshThreshold > 0 {
			m.refreshThreshold = cfg.RefreshThreshold
		}
	}
}
