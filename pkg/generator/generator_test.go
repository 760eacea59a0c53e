package generator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cmmoran/metagen/internal/diag"
)

func TestSnake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "User", want: "user"},
		{in: "UserProfile", want: "user_profile"},
		{in: "HTTPServer", want: "httpserver"},
		{in: "box", want: "box"},
		{in: "OAuth2Token", want: "oauth2_token"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, snake(tt.in))
		})
	}
}

func TestReportFailed(t *testing.T) {
	r := &Report{Diagnostics: []diag.Diagnostic{
		{Code: diag.CodeIndexer, Severity: diag.SeverityWarning},
	}}
	require.False(t, r.Failed())

	r.Diagnostics = append(r.Diagnostics, diag.Diagnostic{
		Code: diag.CodeInvalidTarget, Severity: diag.SeverityError,
	})
	require.True(t, r.Failed())
}
