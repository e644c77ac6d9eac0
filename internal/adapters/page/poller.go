package page

import (
	"context"
	"time"

	"github.com/avasisht/gradelens/internal/domain/model"
	"github.com/avasisht/gradelens/pkg/metrics"
)

// Default poller configuration constants.
const (
	defaultMaxWait   = 60 * time.Second
	defaultStableFor = 6 // consecutive ticks observing the same shape
	defaultInterval  = time.Second
)

// Source produces table snapshots on demand. A capture that cannot be
// parsed into a table should surface as an error; the poller treats it as
// the empty shape rather than failing.
type Source interface {
	Snapshot(ctx context.Context) (model.TableSnapshot, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) (model.TableSnapshot, error)

// Snapshot implements Source.
func (f SourceFunc) Snapshot(ctx context.Context) (model.TableSnapshot, error) {
	return f(ctx)
}

// Option applies a configuration option to the Poller.
type Option func(*Poller)

// WithMaxWait bounds the total wait. Non-positive values keep the default.
func WithMaxWait(d time.Duration) Option {
	return func(p *Poller) {
		if d > 0 {
			p.maxWait = d
		}
	}
}

// WithStableFor sets how many consecutive ticks must observe the same
// shape before the table counts as stable.
func WithStableFor(ticks int) Option {
	return func(p *Poller) {
		if ticks > 0 {
			p.stableFor = ticks
		}
	}
}

// WithInterval sets the sampling cadence. Tests drive synthetic shape
// sequences with a tiny interval; production keeps the 1-second tick.
func WithInterval(d time.Duration) Option {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// Poller is a heuristic convergence detector over a still-rendering table.
// It samples the source at a fixed cadence and stops once the shape has
// been observed unchanged for stableFor consecutive ticks, or once the
// tick budget implied by maxWait runs out. Hitting maxWait is not an
// error: the caller gets the latest snapshot and must tolerate a table
// that is still mid-update.
type Poller struct {
	maxWait   time.Duration
	stableFor int
	interval  time.Duration
}

// NewPoller creates a Poller with configuration options.
func NewPoller(opts ...Option) *Poller {
	p := &Poller{
		maxWait:   defaultMaxWait,
		stableFor: defaultStableFor,
		interval:  defaultInterval,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Await polls src until the shape stabilizes or the wait budget is spent,
// returning the last snapshot captured. An absent table stabilizes
// trivially at shape (0,0); the caller must check for an empty result.
// Only context cancellation produces an error.
func (p *Poller) Await(ctx context.Context, src Source) (model.TableSnapshot, error) {
	maxTicks := int(p.maxWait / p.interval)
	if maxTicks < 1 {
		maxTicks = 1
	}

	var (
		last      model.TableSnapshot
		lastRows  int
		lastCols  int
		stableRun int
	)
	for tick := 1; ; tick++ {
		snapshot, err := src.Snapshot(ctx)
		if err != nil {
			// No parseable table this tick. Shape (0,0) still
			// participates in the stability count.
			snapshot = model.TableSnapshot{}
		}
		metrics.RecordPollTick()

		rows, cols := snapshot.Shape()
		if tick > 1 && rows == lastRows && cols == lastCols {
			stableRun++
		} else {
			stableRun = 1
		}
		last, lastRows, lastCols = snapshot, rows, cols

		if stableRun >= p.stableFor {
			metrics.RecordStabilization(float64(tick) * p.interval.Seconds())
			return last, nil
		}
		if tick >= maxTicks {
			metrics.RecordStabilization(float64(tick) * p.interval.Seconds())
			return last, nil
		}

		select {
		case <-ctx.Done():
			return last, ctx.Err()
		case <-time.After(p.interval):
		}
	}
}
