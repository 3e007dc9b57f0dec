package normalize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sohamshetty07/oraculum-core/internal/model"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestRecord_IdentifierPrecedence(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"agentId wins over id", `{"agentId": "a-7", "id": "x-1"}`, "a-7"},
		{"snake case agent_id wins over id", `{"agent_id": 3, "id": 9}`, "3"},
		{"id alone", `{"id": "solo"}`, "solo"},
		{"numeric id renders without fraction", `{"agentId": 12}`, "12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, err := Record(decode(t, tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, record.ID)
		})
	}
}

func TestRecord_NoIdentifier(t *testing.T) {
	_, err := Record(decode(t, `{"role": "Skeptic", "response": "meh"}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrMalformedRecord)
}

func TestRecord_RoleAliases(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"agentRole first", `{"id": 1, "agentRole": "Analyst", "role": "Other", "name": "Ravi"}`, "Analyst"},
		{"role before name", `{"id": 1, "role": "Skeptic", "name": "Ravi"}`, "Skeptic"},
		{"name as fallback", `{"id": 1, "name": "Ravi"}`, "Ravi"},
		{"default when absent", `{"id": 1}`, model.DefaultRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, err := Record(decode(t, tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, record.RoleLabel())
		})
	}
}

func TestRecord_DemographicAliases(t *testing.T) {
	record, err := Record(decode(t, `{"id": 1, "agentDemographic": "Urban, 25-34", "demographic": "ignored"}`))
	require.NoError(t, err)
	assert.Equal(t, "Urban, 25-34", record.DemographicLabel())

	record, err = Record(decode(t, `{"id": 1}`))
	require.NoError(t, err)
	assert.Equal(t, "", record.DemographicLabel())
	assert.Nil(t, record.Demographic)
}

func TestRecord_PassthroughFields(t *testing.T) {
	raw := `{
		"agentId": 4,
		"response": "Love it",
		"thought_process": "price anchoring",
		"sources": "reddit.com/r/coffee",
		"sentiment": "positive",
		"category": "Round 2",
		"timestamp": "2026-08-26T10:00:00Z"
	}`

	record, err := Record(decode(t, raw))
	require.NoError(t, err)
	assert.Equal(t, "Love it", model.Deref(record.Response))
	assert.Equal(t, "price anchoring", model.Deref(record.ThoughtProcess))
	assert.Equal(t, "reddit.com/r/coffee", model.Deref(record.Sources))
	assert.Equal(t, "positive", model.Deref(record.Sentiment))
	assert.Equal(t, "Round 2", model.Deref(record.Category))
	assert.Equal(t, "2026-08-26T10:00:00Z", model.Deref(record.Timestamp))
}

func TestRecord_AbsentVersusEmpty(t *testing.T) {
	absent, err := Record(decode(t, `{"id": 1}`))
	require.NoError(t, err)
	assert.Nil(t, absent.Response, "field never produced must stay absent")

	empty, err := Record(decode(t, `{"id": 1, "response": ""}`))
	require.NoError(t, err)
	require.NotNil(t, empty.Response, "produced-empty field must stay present")
	assert.Equal(t, "", *empty.Response)
}

func TestBatch_DropsMalformedEntries(t *testing.T) {
	raw := []any{
		decode(t, `{"id": 1, "response": "ok"}`),
		decode(t, `{"role": "no identifier"}`),
		decode(t, `{"agentId": 2}`),
	}

	records := Batch(raw)
	require.Len(t, records, 2)
	assert.Equal(t, "1", records[0].ID)
	assert.Equal(t, "2", records[1].ID)
}
