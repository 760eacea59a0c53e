package literal

import (
	"go/constant"
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatBasicKinds(t *testing.T) {
	runeType := types.Universe.Lookup("rune").Type().(*types.Basic)

	tests := []struct {
		name string
		val  constant.Value
		typ  types.Type
		want string
	}{
		{name: "int", val: constant.MakeInt64(42), typ: types.Typ[types.Int], want: "42"},
		{name: "negative int", val: constant.MakeInt64(-7), typ: types.Typ[types.Int], want: "-7"},
		{name: "int8 keeps width", val: constant.MakeInt64(5), typ: types.Typ[types.Int8], want: "int8(5)"},
		{name: "uint64 keeps width", val: constant.MakeUint64(18446744073709551615), typ: types.Typ[types.Uint64], want: "uint64(18446744073709551615)"},
		{name: "float64 bare", val: constant.MakeFloat64(2.5), typ: types.Typ[types.Float64], want: "2.5"},
		{name: "float32 converted", val: constant.MakeFloat64(1.5), typ: types.Typ[types.Float32], want: "float32(1.5)"},
		{name: "bool", val: constant.MakeBool(true), typ: types.Typ[types.Bool], want: "true"},
		{name: "string quoted", val: constant.MakeString(`he said "hi"`), typ: types.Typ[types.String], want: `"he said \"hi\""`},
		{name: "rune quoted", val: constant.MakeInt64('x'), typ: runeType, want: "'x'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Format(tt.val, tt.typ, nil)
			require.True(t, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestFormatNamedIntegralCasts(t *testing.T) {
	pkg := types.NewPackage("example.com/palette", "palette")
	obj := types.NewTypeName(token.NoPos, pkg, "Color", nil)
	named := types.NewNamed(obj, types.Typ[types.Int], nil)

	got, ok := Format(constant.MakeInt64(2), named, types.RelativeTo(pkg))
	require.True(t, ok)
	require.Equal(t, "Color(2)", got)

	// qualified from another package
	got, ok = Format(constant.MakeInt64(2), named, nil)
	require.True(t, ok)
	require.Equal(t, "palette.Color(2)", got)
}

func TestFormatUnsupported(t *testing.T) {
	tests := []struct {
		name string
		val  constant.Value
		typ  types.Type
	}{
		{name: "nil value", val: nil, typ: types.Typ[types.Int]},
		{name: "complex", val: constant.ToComplex(constant.MakeFloat64(1)), typ: types.Typ[types.Complex128]},
		{name: "named struct", val: constant.MakeInt64(1), typ: func() types.Type {
			pkg := types.NewPackage("example.com/x", "x")
			obj := types.NewTypeName(token.NoPos, pkg, "S", nil)
			return types.NewNamed(obj, types.NewStruct(nil, nil), nil)
		}()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Format(tt.val, tt.typ, nil)
			require.False(t, ok)
		})
	}
}
