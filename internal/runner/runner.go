package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tally/tally/internal/config"
	"github.com/tally/tally/internal/expense"
	"github.com/tally/tally/internal/input"
	"github.com/tally/tally/internal/logging"
	"github.com/tally/tally/internal/observability"
	"github.com/tally/tally/internal/passport"
	"github.com/tally/tally/internal/record"
	"github.com/tally/tally/internal/rules"
	"go.uber.org/zap"
)

// ErrNoCombination is returned when no entries sum to the expense target.
var ErrNoCombination = errors.New("no combination sums to target")

// Runner executes configured jobs one after another.
type Runner struct {
	cfg     *config.Config
	engine  *rules.Engine
	runID   string
	logger  *zap.Logger
	runLog  *logging.OutcomeLogger
	metrics *observability.Metrics
	now     func() time.Time
}

type Option func(*Runner)

func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func WithRunLog(l *logging.OutcomeLogger) Option {
	return func(r *Runner) { r.runLog = l }
}

func WithMetrics(m *observability.Metrics) Option {
	return func(r *Runner) { r.metrics = m }
}

func New(cfg *config.Config, opts ...Option) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}

	engine, err := rules.BuildEngine(cfg)
	if err != nil {
		return nil, err
	}

	r := &Runner{
		cfg:    cfg,
		engine: engine,
		runID:  uuid.New().String(),
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With(zap.String("run_id", r.runID))
	return r, nil
}

func (r *Runner) RunID() string {
	return r.runID
}

// RunAll runs every configured job in order and stops at the first failure.
func (r *Runner) RunAll(ctx context.Context) ([]logging.Outcome, error) {
	outcomes := make([]logging.Outcome, 0, len(r.cfg.Jobs))
	for _, job := range r.cfg.Jobs {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}
		outcome, err := r.Run(ctx, job)
		outcomes = append(outcomes, outcome)
		if err != nil {
			return outcomes, fmt.Errorf("job %s: %w", job.Name, err)
		}
	}
	return outcomes, nil
}

// Run executes one job. On failure the outcome carries the error and no
// result.
func (r *Runner) Run(ctx context.Context, job config.Job) (logging.Outcome, error) {
	start := r.now()
	log := r.logger.With(zap.String("job", job.Name), zap.String("kind", job.Kind))

	outcome := logging.Outcome{
		Timestamp: start.UTC(),
		RunID:     r.runID,
		Job:       job.Name,
		Kind:      job.Kind,
		Input:     job.Input,
	}
	if job.Kind == config.KindPasswords {
		outcome.Variant = job.Policy
	}

	var err error
	if err = ctx.Err(); err == nil {
		err = r.execute(job, &outcome)
	}

	outcome.DurationMS = r.now().Sub(start).Milliseconds()
	if err != nil {
		outcome.Status = logging.StatusError
		outcome.Error = err.Error()
		outcome.Records, outcome.Valid, outcome.Malformed, outcome.Result = 0, 0, 0, 0
		log.Error("job failed", zap.Error(err))
	} else {
		outcome.Status = logging.StatusOK
		log.Info("job finished",
			zap.Int("records", outcome.Records),
			zap.Int("valid", outcome.Valid),
			zap.Int("malformed", outcome.Malformed),
			zap.Int64("result", outcome.Result),
			zap.Int64("duration_ms", outcome.DurationMS),
		)
	}

	r.metrics.Observe(outcome)
	if r.runLog != nil {
		if werr := r.runLog.Write(outcome); werr != nil {
			log.Warn("write run log", zap.Error(werr))
		}
	}

	return outcome, err
}

func (r *Runner) execute(job config.Job, outcome *logging.Outcome) error {
	path := r.cfg.ResolvePath(job.Input)

	switch job.Kind {
	case config.KindPasswords:
		return r.runPasswords(path, job, outcome)
	case config.KindExpenses:
		return r.runExpenses(path, job, outcome)
	case config.KindPassports:
		return r.runPassports(path, job, outcome)
	default:
		return fmt.Errorf("unknown job kind %q", job.Kind)
	}
}

func (r *Runner) runPasswords(path string, job config.Job, outcome *logging.Outcome) error {
	variant, err := record.ParseVariant(job.Policy)
	if err != nil {
		return err
	}
	lines, err := input.ReadLines(path)
	if err != nil {
		return err
	}
	records, malformed, err := record.ParseLines(lines, job.SkipMalformed)
	if err != nil {
		return err
	}

	valid := record.CountValid(records, variant)
	outcome.Records = len(records)
	outcome.Valid = valid
	outcome.Malformed = malformed
	outcome.Result = int64(valid)
	return nil
}

func (r *Runner) runExpenses(path string, job config.Job, outcome *logging.Outcome) error {
	lines, err := input.ReadLines(path)
	if err != nil {
		return err
	}
	entries, malformed, err := expense.ParseEntries(lines, job.SkipMalformed)
	if err != nil {
		return err
	}

	values, ok := expense.FindCombination(entries, job.Size, job.Target)
	if !ok {
		return fmt.Errorf("%w: size %d, target %d", ErrNoCombination, job.Size, job.Target)
	}

	outcome.Records = len(entries)
	outcome.Valid = len(values)
	outcome.Malformed = malformed
	outcome.Result = expense.Product(values)
	return nil
}

func (r *Runner) runPassports(path string, job config.Job, outcome *logging.Outcome) error {
	groups, err := input.ReadGroups(path)
	if err != nil {
		return err
	}
	passports, malformed, err := passport.Parse(groups, r.engine, job.SkipMalformed)
	if err != nil {
		return err
	}

	var valid int
	if job.Strict {
		valid = passport.CountValid(r.engine, passports)
	} else {
		valid = passport.CountComplete(r.engine, passports)
	}

	outcome.Records = len(passports)
	outcome.Valid = valid
	outcome.Malformed = malformed
	outcome.Result = int64(valid)
	return nil
}
