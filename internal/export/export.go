// Package export serializes a completed view model into local artifacts: a
// delimited-text table of all records and a plain-text document holding the
// narrative report.
package export

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sohamshetty07/oraculum-core/internal/model"
)

// Tabular writes one CSV row per record, in view-model iteration order.
// Every field is wrapped in quotes, embedded quotes are doubled, and embedded
// line breaks are preserved inside the quoted field per RFC 4180, so every
// value round-trips losslessly through a standard CSV reader. The Sources
// column is emitted only when at least one record carries sources.
func Tabular(w io.Writer, records []model.AgentRecord) error {
	withSources := false
	for _, r := range records {
		if r.Sources != nil {
			withSources = true
			break
		}
	}

	header := []string{"ID", "Category", "Role", "Demographic", "Response", "ThoughtProcess"}
	if withSources {
		header = append(header, "Sources")
	}
	if err := writeRow(w, header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, r := range records {
		row := []string{
			r.ID,
			model.Deref(r.Category),
			r.RoleLabel(),
			r.DemographicLabel(),
			model.Deref(r.Response),
			model.Deref(r.ThoughtProcess),
		}
		if withSources {
			row = append(row, model.Deref(r.Sources))
		}
		if err := writeRow(w, row); err != nil {
			return fmt.Errorf("write row for agent %s: %w", r.ID, err)
		}
	}
	return nil
}

// writeRow emits one record line. The standard csv writer only quotes when
// forced to, so quoting is done here to keep every field wrapped.
func writeRow(w io.Writer, fields []string) error {
	var b strings.Builder
	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(field, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}

// Document writes the narrative report verbatim.
func Document(w io.Writer, report string) error {
	_, err := io.WriteString(w, report)
	return err
}

// Filename builds the artifact name for a job:
// {scenarioType}_{sanitizedProductName}_{isoDate}.{ext}.
func Filename(scenario model.Scenario, productName string, date time.Time, ext string) string {
	return fmt.Sprintf("%s_%s_%s.%s",
		scenario,
		Sanitize(productName),
		date.Format("2006-01-02"),
		strings.TrimPrefix(ext, "."),
	)
}

// Sanitize replaces every character outside [A-Za-z0-9] with an underscore
// and lower-cases the result.
func Sanitize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// WriteTabularFile writes the CSV artifact into dir and returns its path.
func WriteTabularFile(dir string, scenario model.Scenario, productName string, records []model.AgentRecord) (string, error) {
	path := filepath.Join(dir, Filename(scenario, productName, time.Now(), "csv"))
	if err := writeFile(path, func(w io.Writer) error {
		return Tabular(w, records)
	}); err != nil {
		return "", err
	}
	slog.Info("Wrote tabular artifact", "path", path, "records", len(records))
	return path, nil
}

// WriteReportFile writes the report document into dir and returns its path.
func WriteReportFile(dir string, scenario model.Scenario, productName, report string) (string, error) {
	path := filepath.Join(dir, Filename(scenario, productName, time.Now(), "txt"))
	if err := writeFile(path, func(w io.Writer) error {
		return Document(w, report)
	}); err != nil {
		return "", err
	}
	slog.Info("Wrote report artifact", "path", path, "length", len(report))
	return path, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
