package reconcile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sohamshetty07/oraculum-core/internal/model"
)

func batch(t *testing.T, raw string) []any {
	t.Helper()
	var v []any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestUpsert_InsertPreservesFirstAppearanceOrder(t *testing.T) {
	e := NewEngine(model.ScenarioProductLaunch)
	e.ApplyResults(batch(t, `[{"id": 2, "response": "b"}, {"id": 1, "response": "a"}]`))
	e.ApplyResults(batch(t, `[{"id": 3, "response": "c"}]`))

	records := e.Records()
	require.Len(t, records, 3)
	assert.Equal(t, "2", records[0].ID)
	assert.Equal(t, "1", records[1].ID)
	assert.Equal(t, "3", records[2].ID)
}

func TestUpsert_Idempotence(t *testing.T) {
	raw := `[{"id": 1, "role": "Ravi", "response": "Good"}, {"id": 2, "response": "Bad"}]`

	once := NewEngine(model.ScenarioProductLaunch)
	once.ApplyResults(batch(t, raw))

	twice := NewEngine(model.ScenarioProductLaunch)
	twice.ApplyResults(batch(t, raw))
	twice.ApplyResults(batch(t, raw))

	assert.Equal(t, once.Records(), twice.Records())
}

func TestUpsert_MonotonicEnrichment(t *testing.T) {
	e := NewEngine(model.ScenarioCreativeTest)
	e.ApplyResults(batch(t, `[{"id": 1, "response": "a"}]`))
	e.ApplyResults(batch(t, `[{"id": 1, "thoughtProcess": "b"}]`))

	records := e.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "a", model.Deref(records[0].Response))
	assert.Equal(t, "b", model.Deref(records[0].ThoughtProcess))
}

func TestUpsert_PartialUpdateKeepsKnownRole(t *testing.T) {
	e := NewEngine(model.ScenarioProductLaunch)
	e.ApplyRoster(batch(t, `[{"id": 1, "role": "Ravi"}]`))
	e.ApplyResults(batch(t, `[{"agentId": 1, "response": "Good"}]`))

	records := e.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "Ravi", records[0].RoleLabel())
	assert.Equal(t, "Good", model.Deref(records[0].Response))
}

func TestFeed_ReplaceWholesale(t *testing.T) {
	e := NewEngine(model.ScenarioFocusGroup)
	e.ApplyResults(batch(t, `[{"agent_id": 1, "response": "opening"}]`))
	e.ApplyResults(batch(t, `[
		{"agent_id": 1, "response": "opening"},
		{"agent_id": 2, "response": "rebuttal"},
		{"agent_id": 1, "response": "reply"}
	]`))

	records := e.Records()
	require.Len(t, records, 3, "second transcript replaces, never appends")
	assert.Equal(t, "opening", model.Deref(records[0].Response))
	assert.Equal(t, "rebuttal", model.Deref(records[1].Response))
	assert.Equal(t, "reply", model.Deref(records[2].Response))
}

func TestRosterBootstrap_IsOneShot(t *testing.T) {
	e := NewEngine(model.ScenarioProductLaunch)
	e.ApplyResults(batch(t, `[{"id": 1, "response": "live"}, {"id": 2, "response": "live"}]`))

	// A stale roster-only snapshot arriving out of order must not reset or
	// shrink the view model.
	e.ApplyRoster(batch(t, `[{"id": 9, "role": "Ghost"}]`))

	records := e.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "1", records[0].ID)
	assert.Equal(t, "live", model.Deref(records[0].Response))
}

func TestRosterBootstrap_SeedsEmptyViewModel(t *testing.T) {
	e := NewEngine(model.ScenarioABMessaging)
	e.ApplyRoster(batch(t, `[{"id": 1, "name": "Ravi"}, {"id": 2}]`))

	records := e.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "Ravi", records[0].RoleLabel())
	assert.Equal(t, model.DefaultRole, records[1].RoleLabel())
	assert.Nil(t, records[0].Response)
}

func TestApplyResults_DropsMalformedWithoutAbortingTick(t *testing.T) {
	e := NewEngine(model.ScenarioProductLaunch)
	e.ApplyResults(batch(t, `[{"id": 1, "response": "ok"}, {"response": "orphan"}]`))

	records := e.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "1", records[0].ID)
}
