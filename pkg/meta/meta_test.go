package meta

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sample() Type {
	return Type{
		Name:    "User",
		Package: "example.com/fixture",
		Properties: []Property{
			{Name: "Email", Type: "string", HasGetter: true, HasSetter: true},
		},
		Fields: []Field{
			{Name: "Max", Type: "int", Static: true, ReadOnly: true, Const: true},
		},
		Methods: []Method{
			{Name: "Greet", NumParams: 1},
		},
		Constructors: []Constructor{
			{Name: "NewUser", NumParams: 1},
			{Name: "NewUserFromParts", NumParams: 2},
		},
	}
}

func TestLookups(t *testing.T) {
	ty := sample()

	p, ok := ty.Property("Email")
	require.True(t, ok)
	require.Equal(t, "string", p.Type)

	_, ok = ty.Property("Nope")
	require.False(t, ok)

	f, ok := ty.Field("Max")
	require.True(t, ok)
	require.True(t, f.Const)

	m, ok := ty.Method("Greet")
	require.True(t, ok)
	require.Equal(t, 1, m.NumParams)

	c, ok := ty.Constructor(2)
	require.True(t, ok)
	require.Equal(t, "NewUserFromParts", c.Name)

	_, ok = ty.Constructor(3)
	require.False(t, ok)
}
