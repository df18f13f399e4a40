package push

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ryanklein/heimdallr/internal/blocklist"
	"github.com/ryanklein/heimdallr/internal/logging"
	"go.uber.org/zap"
)

// DefaultStepTimeout bounds each protocol step when the caller does not
// configure one. The original workflow this tool replaces had no timeout at
// all and could hang indefinitely on an unresponsive device.
const DefaultStepTimeout = 30 * time.Second

// Coordinator fans one configuration fragment out to a set of targets,
// driving a full transaction per device and collecting one Result per
// target. Device failures are isolated: a failure on one target never
// aborts or alters another target's transaction.
type Coordinator struct {
	dialer   Dialer
	fragment *blocklist.Fragment

	// Workers is the maximum number of concurrent device sessions.
	// Values below 2 mean strictly sequential processing (the default):
	// one device's transaction completes before the next begins.
	Workers int

	// StepTimeout bounds each protocol step (0 means DefaultStepTimeout).
	// A step that times out fails with that step's outcome category.
	StepTimeout time.Duration

	// Observer, when set, receives step-level progress events. It may be
	// called from multiple goroutines when Workers > 1 and must not block.
	Observer func(StepEvent)
}

// NewCoordinator creates a sequential coordinator for the given transport
// and fragment.
func NewCoordinator(dialer Dialer, fragment *blocklist.Fragment) *Coordinator {
	return &Coordinator{
		dialer:   dialer,
		fragment: fragment,
	}
}

// Run processes every target and returns exactly one Result per target, in
// target-submission order, regardless of concurrency. It returns a non-nil
// error only for pre-flight invariant violations (empty target set, missing
// fragment), detected before any device is contacted; per-device failures
// are reported through the Results, never as an error.
func (c *Coordinator) Run(ctx context.Context, targets []Target) ([]Result, error) {
	if c.fragment == nil {
		return nil, fmt.Errorf("%w: no configuration fragment", ErrInvalidConfiguration)
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("%w: empty target set", ErrInvalidConfiguration)
	}
	for _, target := range targets {
		if target.Host == "" {
			return nil, fmt.Errorf("%w: target with empty host", ErrInvalidConfiguration)
		}
	}

	stepTimeout := c.StepTimeout
	if stepTimeout == 0 {
		stepTimeout = DefaultStepTimeout
	}

	logging.Info("Starting distribution run",
		zap.Int("targets", len(targets)),
		zap.String("fragment", c.fragment.String()),
		zap.Int("workers", c.Workers),
	)

	results := make([]Result, len(targets))

	if c.Workers <= 1 {
		for i, target := range targets {
			results[i] = runTransaction(ctx, c.dialer, target, c.fragment, stepTimeout, c.Observer)
		}
		return results, nil
	}

	// Bounded fan-out. Each transaction writes only its own index, so the
	// report stays in submission order without extra bookkeeping. The
	// group never returns an error: per-device failures live in Results.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.Workers)
	for i, target := range targets {
		g.Go(func() error {
			results[i] = runTransaction(gctx, c.dialer, target, c.fragment, stepTimeout, c.Observer)
			return nil
		})
	}
	_ = g.Wait()

	return results, nil
}
