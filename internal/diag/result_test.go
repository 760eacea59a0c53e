package diag

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/require"
)

func warn(msg string) Diagnostic {
	return Warnf(CodeIndexer, token.Position{}, "%s", msg)
}

func fail(msg string) Diagnostic {
	return Errorf(CodeInvalidTarget, token.Position{}, "%s", msg)
}

func TestOkCarriesWarnings(t *testing.T) {
	r := Ok(42, warn("w1"), warn("w2"))
	require.True(t, r.OK())
	require.Equal(t, 42, r.Value())
	require.Len(t, r.Diagnostics(), 2)
	require.Empty(t, r.Errors())
}

func TestFailHasNoValue(t *testing.T) {
	r := Fail[int](fail("boom"))
	require.False(t, r.OK())
	require.Zero(t, r.Value())
	require.Len(t, r.Errors(), 1)
}

func TestMapPreservesWarnings(t *testing.T) {
	r := Map(Ok(2, warn("w")), func(v int) int { return v * 10 })
	require.True(t, r.OK())
	require.Equal(t, 20, r.Value())
	require.Len(t, r.Diagnostics(), 1)
}

func TestMapSkipsFailed(t *testing.T) {
	called := false
	r := Map(Fail[int](fail("boom")), func(v int) int { called = true; return v })
	require.False(t, r.OK())
	require.False(t, called)
	require.Len(t, r.Diagnostics(), 1)
}

func TestMap2MergesDiagnosticsInOrder(t *testing.T) {
	a := Ok(1, warn("first"))
	b := Ok(2, warn("second"))
	r := Map2(a, b, func(x, y int) int { return x + y })
	require.True(t, r.OK())
	require.Equal(t, 3, r.Value())
	ds := r.Diagnostics()
	require.Len(t, ds, 2)
	require.Equal(t, "first", ds[0].Message)
	require.Equal(t, "second", ds[1].Message)
}

func TestMap2FailDominates(t *testing.T) {
	tests := []struct {
		name string
		a    Result[int]
		b    Result[int]
	}{
		{name: "left fails", a: Fail[int](fail("boom")), b: Ok(2, warn("w"))},
		{name: "right fails", a: Ok(1, warn("w")), b: Fail[int](fail("boom"))},
		{name: "both fail", a: Fail[int](fail("a")), b: Fail[int](fail("b"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			r := Map2(tt.a, tt.b, func(x, y int) int { called = true; return 0 })
			require.False(t, r.OK())
			require.False(t, called)
			require.Len(t, r.Diagnostics(), len(tt.a.Diagnostics())+len(tt.b.Diagnostics()))
		})
	}
}

func TestSeverityStrings(t *testing.T) {
	require.Equal(t, "warning", SeverityWarning.String())
	require.Equal(t, "error", SeverityError.String())
}
