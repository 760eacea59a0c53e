package generate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cmmoran/metagen/internal/diag"
	"github.com/cmmoran/metagen/pkg/generator"
)

func TestSummary(t *testing.T) {
	r := &generator.Report{
		Units: []generator.Unit{
			{Type: "a.User", File: "user_metagen.go"},
			{Type: "a.Order", File: "order_metagen.go"},
			{Type: "a.Broken"},
		},
		Diagnostics: []diag.Diagnostic{
			{Severity: diag.SeverityWarning},
			{Severity: diag.SeverityError},
		},
	}
	require.Equal(t, "generated 2 companion files, 1 warning, 1 error", Summary(r))
}

func TestSummarySingular(t *testing.T) {
	r := &generator.Report{
		Units: []generator.Unit{{Type: "a.User", File: "user_metagen.go"}},
	}
	require.Equal(t, "generated 1 companion file", Summary(r))
}

func TestDiagnosticsTable(t *testing.T) {
	require.Empty(t, DiagnosticsTable(&generator.Report{}))

	r := &generator.Report{Diagnostics: []diag.Diagnostic{
		{Code: diag.CodeIndexer, Severity: diag.SeverityWarning, Message: "indexer property At is not supported and was skipped"},
	}}
	out := DiagnosticsTable(r)
	require.Contains(t, out, "MG1001")
	require.Contains(t, out, "warning")
	require.Contains(t, out, "indexer property At")
}
