// Package generate wraps a generator run with human-readable reporting for
// the command layer.
package generate

import (
	"context"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jinzhu/inflection"

	"github.com/cmmoran/metagen/internal/diag"
	"github.com/cmmoran/metagen/pkg/generator"
)

// Run executes one generation pass.
func Run(ctx context.Context, opts generator.Options) (*generator.Report, error) {
	return generator.Run(ctx, opts)
}

// DiagnosticsTable renders the run's diagnostics as a text table, empty
// string when there are none.
func DiagnosticsTable(r *generator.Report) string {
	if len(r.Diagnostics) == 0 {
		return ""
	}
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Code", "Severity", "Position", "Message"})
	for _, d := range r.Diagnostics {
		t.AppendRow(table.Row{d.Code, d.Severity.String(), d.Pos.String(), d.Message})
	}
	return t.Render()
}

// Summary is a one-line account of the run.
func Summary(r *generator.Report) string {
	generated := 0
	for _, u := range r.Units {
		if u.File != "" {
			generated++
		}
	}
	warnings, errs := 0, 0
	for _, d := range r.Diagnostics {
		switch d.Severity {
		case diag.SeverityWarning:
			warnings++
		case diag.SeverityError:
			errs++
		}
	}

	parts := []string{fmt.Sprintf("generated %s", count(generated, "companion file"))}
	if warnings > 0 {
		parts = append(parts, count(warnings, "warning"))
	}
	if errs > 0 {
		parts = append(parts, count(errs, "error"))
	}
	return strings.Join(parts, ", ")
}

func count(n int, noun string) string {
	if n != 1 {
		noun = inflection.Plural(noun)
	}
	return fmt.Sprintf("%d %s", n, noun)
}
