package literate

import "github.com/ardnew/litcalc/log"

const (
	// DefaultMarker closes a statement and marks where its result goes.
	DefaultMarker = "#="
	// DefaultKeyword introduces a binding statement.
	DefaultKeyword = "let "
)

type config struct {
	marker  string
	keyword string
	strict  bool
	logger  log.Logger
}

func makeConfig(opts ...Option) config {
	cfg := config{
		marker:  DefaultMarker,
		keyword: DefaultKeyword,
	}

	for _, opt := range opts {
		if opt != nil {
			cfg = opt(cfg)
		}
	}

	return cfg
}

// Option configures an [Engine] or an [Evaluator].
type Option func(config) config

// WithMarker sets the marker token. An empty marker is ignored.
func WithMarker(marker string) Option {
	return func(c config) config {
		if marker != "" {
			c.marker = marker
		}

		return c
	}
}

// WithKeyword sets the prefix that identifies a binding statement. An empty
// keyword disables binding detection.
func WithKeyword(keyword string) Option {
	return func(c config) config {
		c.keyword = keyword

		return c
	}
}

// WithStrict makes an unterminated batch at the end of input an error.
func WithStrict(strict bool) Option {
	return func(c config) config {
		c.strict = strict

		return c
	}
}

// WithLogger sets the logger used for flush and evaluation events.
func WithLogger(l log.Logger) Option {
	return func(c config) config {
		c.logger = l

		return c
	}
}
