// Package controller owns the lifecycle of one simulation job: submission,
// the fixed-interval poll loop, progress tracking, and the terminal
// transition that freezes the view model for export.
package controller

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/sohamshetty07/oraculum-core/internal/model"
	"github.com/sohamshetty07/oraculum-core/internal/reconcile"
	"github.com/sohamshetty07/oraculum-core/internal/service"
)

// Controller tracks one job at a time. A new Submit discards the prior job
// entirely: its poll loop is cancelled and a pending poll result, if any, is
// never applied.
type Controller struct {
	client   *service.Client
	interval time.Duration

	mu            sync.Mutex
	state         model.LifecycleState
	progress      int
	handle        model.JobHandle
	correlationID string
	engine        *reconcile.Engine
	sched         *cron.Cron
	done          chan struct{}

	// gen increments whenever the current poll loop is invalidated (new
	// submit, stop). A tick that resolved against an older generation
	// discards its snapshot instead of applying it.
	gen uint64
}

// New creates an idle controller polling at the given interval. Intervals
// below one second are rounded up to one second by the scheduler.
func New(client *service.Client, interval time.Duration) *Controller {
	return &Controller{
		client:   client,
		interval: interval,
		state:    model.StateIdle,
	}
}

// Submit starts a new job from the given request. Any prior job is discarded.
// On transport failure the lifecycle reverts to idle and no handle is
// retained.
func (c *Controller) Submit(ctx context.Context, req model.SubmitRequest) error {
	c.mu.Lock()
	c.cancelLocked()
	c.state = model.StateProcessing
	c.progress = 0
	c.handle = ""
	c.correlationID = uuid.New().String()
	c.engine = reconcile.NewEngine(req.Scenario)
	c.done = make(chan struct{})
	correlationID := c.correlationID
	gen := c.gen
	c.mu.Unlock()

	slog.Info("Submitting simulation job",
		"correlation_id", correlationID,
		"scenario", string(req.Scenario),
		"product", req.ProductName,
		"agent_count", req.AgentCount,
	)

	handle, err := c.client.Submit(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		// Stop or a newer Submit invalidated this job while the transport
		// call was in flight: do not start the loop, do not retain a handle.
		slog.Warn("Discarding submission result, job was cancelled or superseded",
			"correlation_id", correlationID,
		)
		if err != nil {
			return err
		}
		return fmt.Errorf("%w: job discarded before acceptance", model.ErrSubmission)
	}
	if err != nil {
		c.state = model.StateIdle
		c.engine = nil
		if c.done != nil {
			close(c.done)
			c.done = nil
		}
		slog.Error("Job submission failed",
			"correlation_id", correlationID,
			"error", err.Error(),
		)
		return err
	}

	c.handle = handle
	c.startLoopLocked()

	slog.Info("Job accepted, polling started",
		"correlation_id", correlationID,
		"job_id", string(handle),
		"interval", c.interval.String(),
	)
	return nil
}

// startLoopLocked schedules the poll loop. SkipIfStillRunning guarantees
// ticks stay sequential: a tick whose fetch has not resolved blocks the next
// one from launching, so overlapping snapshots can never merge out of order.
func (c *Controller) startLoopLocked() {
	logger := newCronLogger()
	sched := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(logger),
		cron.Recover(logger),
	))

	gen := c.gen
	sched.Schedule(cron.Every(c.interval), cron.FuncJob(func() {
		c.tick(context.Background(), gen)
	}))
	sched.Start()
	c.sched = sched
}

// tick performs one poll cycle: fetch a snapshot, update progress, forward
// batches to the reconciliation engine, and handle the terminal transition.
// Poll failures are logged and swallowed; the next tick retries on schedule.
func (c *Controller) tick(ctx context.Context, gen uint64) {
	c.mu.Lock()
	if c.gen != gen || c.state != model.StateProcessing {
		c.mu.Unlock()
		return
	}
	handle := c.handle
	correlationID := c.correlationID
	c.mu.Unlock()

	snapshot, err := c.client.Status(ctx, handle)
	if err != nil {
		slog.Warn("Poll tick failed, will retry on schedule",
			"correlation_id", correlationID,
			"job_id", string(handle),
			"error", err.Error(),
		)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// The loop may have been cancelled while the fetch was in flight; a
	// stale snapshot must never be applied.
	if c.gen != gen || c.state != model.StateProcessing {
		return
	}

	if snapshot.Progress != nil {
		c.progress = clampProgress(*snapshot.Progress)
	}
	if len(snapshot.Agents) > 0 {
		c.engine.ApplyRoster(snapshot.Agents)
	}
	if len(snapshot.Results) > 0 {
		c.engine.ApplyResults(snapshot.Results)
	}

	slog.Debug("Applied status snapshot",
		"correlation_id", correlationID,
		"job_id", string(handle),
		"status", snapshot.Status,
		"progress", c.progress,
		"records", c.engine.Len(),
	)

	if snapshot.Terminal() {
		c.progress = 100
		c.state = model.StateCompleted
		c.stopSchedLocked()
		if c.done != nil {
			close(c.done)
		}
		slog.Info("Job completed",
			"correlation_id", correlationID,
			"job_id", string(handle),
			"records", c.engine.Len(),
		)
	}
}

// Stop cancels the poll loop. It is idempotent and effective immediately: a
// pending poll result is discarded, never applied.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelLocked()
}

func (c *Controller) cancelLocked() {
	c.gen++
	c.stopSchedLocked()
	if c.done != nil && c.state == model.StateProcessing {
		close(c.done)
		c.done = nil
	}
}

func (c *Controller) stopSchedLocked() {
	if c.sched != nil {
		c.sched.Stop()
		c.sched = nil
	}
}

// Wait blocks until the tracked job completes, the loop is cancelled, or ctx
// expires.
func (c *Controller) Wait(ctx context.Context) error {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()
	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// State returns the current lifecycle state.
func (c *Controller) State() model.LifecycleState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Completed reports whether the tracked job reached its terminal state.
func (c *Controller) Completed() bool {
	return c.State() == model.StateCompleted
}

// Progress returns the current progress percentage (0-100).
func (c *Controller) Progress() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.progress
}

// Handle returns the handle of the tracked job, empty while idle.
func (c *Controller) Handle() model.JobHandle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handle
}

// Records returns the view model in iteration order.
func (c *Controller) Records() []model.AgentRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.engine == nil {
		return nil
	}
	return c.engine.Records()
}

// clampProgress converts the snapshot's fraction into a 0-100 percentage.
// Values are accepted as-is across ticks, even when non-monotonic; only the
// terminal transition forces 100.
func clampProgress(fraction float64) int {
	pct := int(math.Round(fraction * 100))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
