package loader

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/packages"
)

// parsePkg fabricates a loaded package from in-memory sources so directive
// scanning can be exercised without invoking the build system.
func parsePkg(t *testing.T, src string) (*packages.Package, *token.FileSet) {
	t.Helper()
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "fixture.go", src, parser.ParseComments)
	require.NoError(t, err)

	info := &types.Info{Defs: map[*ast.Ident]types.Object{}}
	conf := types.Config{}
	pkg, err := conf.Check("example.com/fixture", fset, []*ast.File{file}, info)
	require.NoError(t, err)

	return &packages.Package{
		PkgPath:   "example.com/fixture",
		Types:     pkg,
		TypesInfo: info,
		Syntax:    []*ast.File{file},
	}, fset
}

func TestScanFindsAnnotatedTypes(t *testing.T) {
	pkg, fset := parsePkg(t, `package fixture

//metagen:reflect fields private
type User struct {
	Name string
}

type Ignored struct {
	N int
}

//metagen:reflect
type Order struct {
	Total float64
}
`)

	sources := scanFile(pkg, fset, pkg.Syntax[0])
	require.Len(t, sources, 2)

	require.Equal(t, "User", sources[0].Spec.Name.Name)
	require.Equal(t, "fields private", sources[0].Directive)
	require.NotNil(t, sources[0].Named)
	require.Empty(t, sources[0].Enclosing)

	require.Equal(t, "Order", sources[1].Spec.Name.Name)
	require.Empty(t, sources[1].Directive)
}

func TestScanFindsLocalTypesWithEnclosingChain(t *testing.T) {
	pkg, fset := parsePkg(t, `package fixture

func makeThing() any {
	run := func() any {
		//metagen:reflect
		type Thing struct {
			N int
		}
		return Thing{}
	}
	return run()
}
`)

	sources := scanFile(pkg, fset, pkg.Syntax[0])
	require.Len(t, sources, 1)
	require.Equal(t, "Thing", sources[0].Spec.Name.Name)

	// innermost first
	require.Len(t, sources[0].Enclosing, 2)
	require.Equal(t, "function literal", sources[0].Enclosing[0].Name)
	require.Equal(t, "makeThing", sources[0].Enclosing[1].Name)
}

func TestScanAliasHasNoNamedType(t *testing.T) {
	pkg, fset := parsePkg(t, `package fixture

type User struct {
	Name string
}

//metagen:reflect
type Person = User
`)

	sources := scanFile(pkg, fset, pkg.Syntax[0])
	require.Len(t, sources, 1)
	require.Equal(t, "Person", sources[0].Spec.Name.Name)
	require.Nil(t, sources[0].Named)
}

func TestDirectiveArgs(t *testing.T) {
	parse := func(src string) *ast.CommentGroup {
		fset := token.NewFileSet()
		file, err := parser.ParseFile(fset, "f.go", src, parser.ParseComments)
		require.NoError(t, err)
		return file.Decls[0].(*ast.GenDecl).Doc
	}

	tests := []struct {
		name     string
		src      string
		wantArgs string
		wantOK   bool
	}{
		{
			name:     "bare directive",
			src:      "package p\n\n//metagen:reflect\ntype T struct{}",
			wantArgs: "", wantOK: true,
		},
		{
			name:     "directive with args",
			src:      "package p\n\n//metagen:reflect fields inherited\ntype T struct{}",
			wantArgs: "fields inherited", wantOK: true,
		},
		{
			name:     "directive below prose",
			src:      "package p\n\n// T is a thing.\n//metagen:reflect private\ntype T struct{}",
			wantArgs: "private", wantOK: true,
		},
		{
			name:   "prose mentioning the directive name is not a directive",
			src:    "package p\n\n// metagen:reflect is documented here\ntype T struct{}",
			wantOK: false,
		},
		{
			name:   "no doc",
			src:    "package p\n\ntype T struct{}",
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args, ok := directiveArgs(parse(tt.src))
			require.Equal(t, tt.wantOK, ok)
			require.Equal(t, tt.wantArgs, args)
		})
	}
}
