package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/sohamshetty07/oraculum-core/internal/model"
)

// Analyst issues one-shot report synthesis requests for a completed job and
// stores the resulting narrative text. It is independent of polling.
type Analyst struct {
	client *Client

	mu     sync.Mutex
	report string
	has    bool
}

// NewAnalyst creates an analyst backed by the given API client.
func NewAnalyst(client *Client) *Analyst {
	return &Analyst{client: client}
}

// RequestReport synthesizes a narrative report for the job. ready reflects
// the caller's lifecycle state; calling before completion fails with
// model.ErrNotReady. Transport failures surface as model.ErrAnalysis and are
// not retried. Safe to invoke repeatedly: a fresh report overwrites the
// previous one.
func (a *Analyst) RequestReport(ctx context.Context, handle model.JobHandle, ready bool) (string, error) {
	if !ready {
		return "", model.ErrNotReady
	}

	slog.Info("Requesting narrative report", "job_id", string(handle))

	report, err := a.client.Analyze(ctx, handle)
	if err != nil {
		slog.Error("Report synthesis failed",
			"job_id", string(handle),
			"error", err.Error(),
		)
		return "", err
	}

	a.mu.Lock()
	a.report = report
	a.has = true
	a.mu.Unlock()

	slog.Info("Narrative report stored",
		"job_id", string(handle),
		"length", len(report),
	)
	return report, nil
}

// Report returns the stored narrative text, if any.
func (a *Analyst) Report() (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.report, a.has
}
