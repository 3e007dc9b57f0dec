// Package reconcile owns the view model for one job: an ordered, keyed
// collection of canonical agent records assembled from successive status
// snapshots.
package reconcile

import (
	"log/slog"

	"github.com/sohamshetty07/oraculum-core/internal/model"
	"github.com/sohamshetty07/oraculum-core/internal/normalize"
)

// Engine applies one of two merge policies per snapshot, selected by the
// job's scenario type:
//
//   - Upsert (grid scenarios): incoming records are merged by id, new fields
//     override, absent fields are retained. Idempotent and order-independent.
//   - Replace (feed scenarios): the incoming result batch is the full
//     transcript-to-date and replaces the prior sequence wholesale.
//
// Engine is not safe for concurrent use; the job controller serializes all
// access to it.
type Engine struct {
	scenario model.Scenario

	// Grid state: insertion order of first appearance plus keyed records.
	order []string
	byID  map[string]model.AgentRecord

	// Feed state: the transcript as of the latest snapshot.
	feed []model.AgentRecord

	// written flips once any record has ever entered the view model. It is
	// monotonic and gates roster seeding: a stale roster snapshot arriving
	// after live results must not clobber them.
	written bool
}

// NewEngine creates an empty engine for one job. Engines are never reused
// across jobs.
func NewEngine(scenario model.Scenario) *Engine {
	return &Engine{
		scenario: scenario,
		byID:     make(map[string]model.AgentRecord),
	}
}

// ApplyRoster seeds the view model from placeholder participants. Seeding is
// one-shot: it only runs while the view model has never been written.
func (e *Engine) ApplyRoster(raw []any) {
	if e.written {
		return
	}
	records := normalize.Batch(raw)
	if len(records) == 0 {
		return
	}

	if e.scenario.Feed() {
		e.feed = records
	} else {
		for _, record := range records {
			e.insert(record)
		}
	}
	e.written = true

	slog.Debug("Seeded view model from roster",
		"scenario", string(e.scenario),
		"participants", len(records),
	)
}

// ApplyResults incorporates a result batch under the scenario's merge policy.
func (e *Engine) ApplyResults(raw []any) {
	records := normalize.Batch(raw)
	if len(records) == 0 {
		return
	}

	if e.scenario.Feed() {
		// The backend returns the full transcript each tick; trust its
		// ordering instead of deduplicating content.
		e.feed = records
	} else {
		for _, record := range records {
			existing, ok := e.byID[record.ID]
			if ok {
				e.byID[record.ID] = existing.Merge(record)
			} else {
				e.insert(record)
			}
		}
	}
	e.written = true
}

// insert adds a new grid entry at the end of iteration order, applying the
// display defaults for fields still absent on first appearance.
func (e *Engine) insert(record model.AgentRecord) {
	if record.Role == nil {
		record.Role = model.StringPtr(model.DefaultRole)
	}
	if record.Demographic == nil {
		record.Demographic = model.StringPtr("")
	}
	e.order = append(e.order, record.ID)
	e.byID[record.ID] = record
}

// Records returns the view model in iteration order. The slice is a copy;
// mutating it does not affect the engine.
func (e *Engine) Records() []model.AgentRecord {
	if e.scenario.Feed() {
		out := make([]model.AgentRecord, len(e.feed))
		copy(out, e.feed)
		return out
	}

	out := make([]model.AgentRecord, 0, len(e.order))
	for _, id := range e.order {
		out = append(out, e.byID[id])
	}
	return out
}

// Len returns the number of records currently in the view model.
func (e *Engine) Len() int {
	if e.scenario.Feed() {
		return len(e.feed)
	}
	return len(e.order)
}
