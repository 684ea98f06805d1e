package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/headline/internal/model"
)

// Step is one stage of a run.
type Step interface {
	// Name identifies the step in logs.
	Name() string

	// State is the run state this step executes under.
	State() model.RunState

	// Do executes the step, reading from and writing to the report.
	// A returned error is fatal and aborts the run; recoverable
	// failures go into the report instead.
	Do(ctx context.Context, report *model.RunReport) error
}

// Pipeline executes steps in order against a single run report.
type Pipeline struct {
	steps  []Step
	logger *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// NewPipeline creates a Pipeline that runs the given steps in order.
func NewPipeline(steps []Step, opts ...Option) *Pipeline {
	p := &Pipeline{steps: steps}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// Execute runs each step, advancing the report's state as it goes.
// When a step fails, the run ends in the aborted state with the error
// recorded on the report; Execute returns the same error so callers can
// set their exit status. A completed run ends in the done state with
// FinishedAt set.
func (p *Pipeline) Execute(ctx context.Context, report *model.RunReport) error {
	for _, step := range p.steps {
		report.State = step.State()
		p.logger.Debug("pipeline step started", "step", step.Name(), "state", report.State)

		start := time.Now()
		if err := step.Do(ctx, report); err != nil {
			report.State = model.RunStateAborted
			report.Error = err
			report.ErrorMessage = err.Error()
			report.FinishedAt = time.Now()

			p.logger.Error("pipeline aborted", "step", step.Name(), "error", err)
			return err
		}

		p.logger.Debug("pipeline step finished", "step", step.Name(), "elapsed", time.Since(start))
	}

	report.State = model.RunStateDone
	report.FinishedAt = time.Now()
	return nil
}
