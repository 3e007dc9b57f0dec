// Package normalize maps raw simulation records, whose field names drift
// across backend versions, into the canonical AgentRecord form. All alias
// resolution happens here so the rest of the pipeline never touches raw
// payload data.
package normalize

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/oliveagle/jsonpath"

	"github.com/sohamshetty07/oraculum-core/internal/model"
)

// Alias chains in precedence order: first non-null wins. camelCase aliases
// come from the current wire format, snake_case from older backend versions.
var (
	idPaths          = mustCompile("$.agentId", "$.agent_id", "$.id")
	rolePaths        = mustCompile("$.agentRole", "$.agent_role", "$.role", "$.name")
	demographicPaths = mustCompile("$.agentDemographic", "$.agent_demographic", "$.demographic")

	passthroughPaths = map[string][]*jsonpath.Compiled{
		"response":       mustCompile("$.response"),
		"thoughtProcess": mustCompile("$.thoughtProcess", "$.thought_process"),
		"sources":        mustCompile("$.sources"),
		"sentiment":      mustCompile("$.sentiment"),
		"category":       mustCompile("$.category"),
		"timestamp":      mustCompile("$.timestamp"),
	}
)

func mustCompile(expressions ...string) []*jsonpath.Compiled {
	compiled := make([]*jsonpath.Compiled, 0, len(expressions))
	for _, expr := range expressions {
		pattern, err := jsonpath.Compile(expr)
		if err != nil {
			panic(fmt.Sprintf("invalid JSONPath expression %q: %v", expr, err))
		}
		compiled = append(compiled, pattern)
	}
	return compiled
}

// Record converts one raw record into canonical form. It fails with
// model.ErrMalformedRecord when no alias yields a usable identifier. Optional
// fields stay nil when absent; a field that is present but empty stays
// present, preserving the "produced empty" vs "not yet produced" distinction.
func Record(raw any) (model.AgentRecord, error) {
	id, ok := lookupValue(raw, idPaths)
	if !ok {
		return model.AgentRecord{}, fmt.Errorf("%w: no agentId or id field", model.ErrMalformedRecord)
	}

	record := model.AgentRecord{
		ID:          coerceID(id),
		Role:        lookupString(raw, rolePaths),
		Demographic: lookupString(raw, demographicPaths),
	}
	if record.ID == "" {
		return model.AgentRecord{}, fmt.Errorf("%w: empty identifier", model.ErrMalformedRecord)
	}

	for field, paths := range passthroughPaths {
		value := lookupString(raw, paths)
		if value == nil {
			continue
		}
		switch field {
		case "response":
			record.Response = value
		case "thoughtProcess":
			record.ThoughtProcess = value
		case "sources":
			record.Sources = value
		case "sentiment":
			record.Sentiment = value
		case "category":
			record.Category = value
		case "timestamp":
			record.Timestamp = value
		}
	}

	return record, nil
}

// Batch normalizes a batch of raw records. Entries that fail normalization
// are dropped with a warning; they never abort the batch.
func Batch(raw []any) []model.AgentRecord {
	records := make([]model.AgentRecord, 0, len(raw))
	for i, entry := range raw {
		record, err := Record(entry)
		if err != nil {
			slog.Warn("Dropping malformed record from batch",
				"index", i,
				"error", err.Error(),
			)
			continue
		}
		records = append(records, record)
	}
	return records
}

// lookupValue probes the alias chain and returns the first non-null value.
func lookupValue(raw any, paths []*jsonpath.Compiled) (any, bool) {
	for _, pattern := range paths {
		value, err := pattern.Lookup(raw)
		if err != nil || value == nil {
			continue
		}
		return value, true
	}
	return nil, false
}

func lookupString(raw any, paths []*jsonpath.Compiled) *string {
	value, ok := lookupValue(raw, paths)
	if !ok {
		return nil
	}
	s := coerceString(value)
	return &s
}

// coerceID renders a string-or-number identifier. JSON numbers decode as
// float64; integral values print without a fractional part so "1" and 1
// resolve to the same key.
func coerceID(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		if v == math.Trunc(v) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func coerceString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
