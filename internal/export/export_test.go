package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sohamshetty07/oraculum-core/internal/model"
)

func TestTabular_RoundTripThroughStandardReader(t *testing.T) {
	response := `He said "hi", twice`
	thought := "line one\nline two"

	var buf bytes.Buffer
	err := Tabular(&buf, []model.AgentRecord{{
		ID:             "1",
		Role:           model.StringPtr("Ravi"),
		Response:       model.StringPtr(response),
		ThoughtProcess: model.StringPtr(thought),
	}})
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"ID", "Category", "Role", "Demographic", "Response", "ThoughtProcess"}, rows[0])
	assert.Equal(t, response, rows[1][4], "quotes and commas survive the round trip")
	assert.Equal(t, thought, rows[1][5], "embedded line breaks are preserved")
}

func TestTabular_EveryFieldQuoted(t *testing.T) {
	var buf bytes.Buffer
	err := Tabular(&buf, []model.AgentRecord{{ID: "7"}})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `"7","","Participant","","",""`, lines[1])
}

func TestTabular_SourcesColumnOnlyWhenPresent(t *testing.T) {
	var without bytes.Buffer
	require.NoError(t, Tabular(&without, []model.AgentRecord{{ID: "1"}}))
	assert.NotContains(t, strings.Split(without.String(), "\n")[0], "Sources")

	var with bytes.Buffer
	require.NoError(t, Tabular(&with, []model.AgentRecord{
		{ID: "1"},
		{ID: "2", Sources: model.StringPtr("reddit.com/r/coffee")},
	}))
	assert.Contains(t, strings.Split(with.String(), "\n")[0], "Sources")
}

func TestTabular_Golden(t *testing.T) {
	records := []model.AgentRecord{
		{
			ID:             "1",
			Category:       model.StringPtr("Round 1"),
			Role:           model.StringPtr("Ravi"),
			Demographic:    model.StringPtr("Urban, 25-34"),
			Response:       model.StringPtr(`He said "hi", twice`),
			ThoughtProcess: model.StringPtr("anchor\nprice"),
			Sources:        model.StringPtr("reddit.com/r/coffee"),
		},
		{
			ID:       "2",
			Response: model.StringPtr(""),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Tabular(&buf, records))

	g := goldie.New(t)
	g.Assert(t, "grid_export", buf.Bytes())
}

func TestDocument_Verbatim(t *testing.T) {
	report := "Executive Summary\n\nConsensus: 74%\n"
	var buf bytes.Buffer
	require.NoError(t, Document(&buf, report))
	assert.Equal(t, report, buf.String())
}

func TestFilename(t *testing.T) {
	date := time.Date(2026, time.August, 26, 12, 0, 0, 0, time.UTC)
	got := Filename(model.ScenarioProductLaunch, "Nimbus Cold-Brew 2.0", date, "csv")
	assert.Equal(t, "product_launch_nimbus_cold_brew_2_0_2026-08-26.csv", got)
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Nimbus", "nimbus"},
		{"Café Brûlée", "caf__br_l_e"},
		{"a b/c", "a_b_c"},
		{"UPPER09", "upper09"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Sanitize(tt.in), tt.in)
	}
}
