package executor

import (
	"context"
	"fmt"
	"runtime"

	"github.com/Iron-Ham/hookrun/internal/dag"
	"github.com/Iron-Ham/hookrun/internal/errors"
	"github.com/Iron-Ham/hookrun/internal/event"
	"github.com/Iron-Ham/hookrun/internal/logging"
	"github.com/Iron-Ham/hookrun/internal/report"
)

// RunFunc runs one task and returns its outcome. It is called at most once
// per task per run and must honor ctx for cooperative cancellation.
type RunFunc func(ctx context.Context, id string) report.Outcome

// Strategy executes a plan and returns the aggregated report. Every task in
// the plan receives exactly one outcome.
type Strategy interface {
	Name() string
	Run(ctx context.Context, plan *dag.Plan, run RunFunc) *report.Report
}

// Kind selects a Strategy implementation.
type Kind string

const (
	KindSequential Kind = "sequential"
	KindConcurrent Kind = "concurrent"
)

// KindFor maps a --parallel style flag to a Kind.
func KindFor(parallel bool) Kind {
	if parallel {
		return KindConcurrent
	}
	return KindSequential
}

// New returns the strategy named by kind.
func New(kind Kind, opts ...Option) (Strategy, error) {
	switch kind {
	case KindSequential:
		return NewSequential(opts...), nil
	case KindConcurrent:
		return NewConcurrent(opts...), nil
	default:
		return nil, fmt.Errorf("%w: unknown execution strategy %q", errors.ErrInvalidInput, kind)
	}
}

// Option configures a Strategy.
type Option func(*config)

type config struct {
	maxWorkers int
	failFast   bool
	bus        *event.Bus
	logger     *logging.Logger
}

func newConfig(opts []Option) config {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.maxWorkers <= 0 {
		cfg.maxWorkers = runtime.NumCPU()
	}
	if cfg.logger == nil {
		cfg.logger = logging.NopLogger()
	}
	return cfg
}

// WithMaxWorkers bounds how many tasks the concurrent strategy runs at once.
// A zero or negative value is replaced with runtime.NumCPU().
func WithMaxWorkers(n int) Option {
	return func(c *config) { c.maxWorkers = n }
}

// WithFailFast stops dispatching new tasks after the first failure. The
// concurrent strategy applies it at the next level barrier.
func WithFailFast(enabled bool) Option {
	return func(c *config) { c.failFast = enabled }
}

// WithBus publishes lifecycle events on bus.
func WithBus(bus *event.Bus) Option {
	return func(c *config) { c.bus = bus }
}

// WithLogger sets the logger for the strategy.
func WithLogger(logger *logging.Logger) Option {
	return func(c *config) { c.logger = logger }
}
