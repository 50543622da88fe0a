package stockroom

import "github.com/rs/zerolog"

// Config holds process-wide defaults applied to every registry created afterwards
var Config config = config{
	logger:         zerolog.Nop(),
	entityCapacity: 1024,
	systemCapacity: 64,
}

type config struct {
	logger         zerolog.Logger
	entityCapacity int
	systemCapacity int
}

// SetLogger configures the default registry logger
func (c *config) SetLogger(logger zerolog.Logger) {
	c.logger = logger
}

// SetEntityCapacity configures how many entity slots a registry preallocates
func (c *config) SetEntityCapacity(n int) {
	if n < 0 {
		n = 0
	}
	c.entityCapacity = n
}

// SetSystemCapacity configures how many systems a registry accepts
func (c *config) SetSystemCapacity(n int) {
	c.systemCapacity = n
}

type settings struct {
	logger         zerolog.Logger
	metrics        *Metrics
	entityCapacity int
	systemCapacity int
}

func (c *config) settings() settings {
	return settings{
		logger:         c.logger,
		entityCapacity: c.entityCapacity,
		systemCapacity: c.systemCapacity,
	}
}

// Option overrides a Config default for a single registry.
type Option func(*settings)

func WithLogger(logger zerolog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithMetrics reports registry activity to m. Metrics may be shared between
// registries.
func WithMetrics(m *Metrics) Option {
	return func(s *settings) {
		s.metrics = m
	}
}

func WithEntityCapacity(n int) Option {
	return func(s *settings) {
		if n >= 0 {
			s.entityCapacity = n
		}
	}
}

func WithSystemCapacity(n int) Option {
	return func(s *settings) {
		s.systemCapacity = n
	}
}
