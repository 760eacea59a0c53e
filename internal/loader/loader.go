// Package loader resolves Go packages and discovers the types annotated with
// the metagen:reflect directive. It owns all interaction with go/packages;
// downstream stages only ever see extract.Source handles.
package loader

import (
	"context"
	"go/ast"
	"go/token"
	"go/types"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/tools/go/packages"

	"github.com/cmmoran/metagen/internal/extract"
)

const directiveName = "metagen:reflect"

const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedImports |
	packages.NeedTypes |
	packages.NeedSyntax |
	packages.NeedTypesInfo

// Load resolves the packages matched by patterns under dir and returns one
// Source per annotated type declaration, ordered by source position so the
// rest of the pipeline is deterministic. Local and alias declarations are
// returned too; the extractor is responsible for diagnosing them.
func Load(ctx context.Context, dir string, patterns ...string) ([]*extract.Source, error) {
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}
	fset := token.NewFileSet()
	pkgs, err := packages.Load(&packages.Config{
		Mode:    loadMode,
		Context: ctx,
		Dir:     dir,
		Fset:    fset,
	}, patterns...)
	if err != nil {
		return nil, errors.Wrap(err, "loading packages")
	}

	var out []*extract.Source
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return nil, errors.Newf("loading %s: %v", pkg.PkgPath, pkg.Errors[0])
		}
		for _, file := range pkg.Syntax {
			out = append(out, scanFile(pkg, fset, file)...)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Pos.Filename != out[j].Pos.Filename {
			return out[i].Pos.Filename < out[j].Pos.Filename
		}
		return out[i].Pos.Offset < out[j].Pos.Offset
	})
	return out, nil
}

func scanFile(pkg *packages.Package, fset *token.FileSet, file *ast.File) []*extract.Source {
	var out []*extract.Source
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			out = append(out, scanGenDecl(pkg, fset, d, nil)...)
		case *ast.FuncDecl:
			if d.Body == nil {
				continue
			}
			level := extract.Enclosing{Name: d.Name.Name, Pos: fset.Position(d.Pos())}
			out = append(out, scanBody(pkg, fset, d.Body, []extract.Enclosing{level})...)
		}
	}
	return out
}

// scanGenDecl collects annotated TypeSpecs from one type declaration group.
// The directive may sit on the group doc (covering a single TypeSpec) or on
// the TypeSpec itself; the latter wins.
func scanGenDecl(pkg *packages.Package, fset *token.FileSet, gen *ast.GenDecl, enclosing []extract.Enclosing) []*extract.Source {
	if gen.Tok != token.TYPE {
		return nil
	}
	groupArgs, groupOK := directiveArgs(gen.Doc)

	var out []*extract.Source
	for _, spec := range gen.Specs {
		ts, ok := spec.(*ast.TypeSpec)
		if !ok {
			continue
		}
		args, found := directiveArgs(ts.Doc)
		if !found && groupOK && len(gen.Specs) == 1 {
			args, found = groupArgs, true
		}
		if !found {
			continue
		}
		out = append(out, newSource(pkg, fset, ts, enclosing, args))
	}
	return out
}

// scanBody walks one function body for annotated local type declarations,
// descending into function literals with the enclosing chain extended
// innermost-first.
func scanBody(pkg *packages.Package, fset *token.FileSet, body ast.Node, enclosing []extract.Enclosing) []*extract.Source {
	var out []*extract.Source
	ast.Inspect(body, func(n ast.Node) bool {
		switch v := n.(type) {
		case *ast.FuncLit:
			level := extract.Enclosing{Name: "function literal", Pos: fset.Position(v.Pos())}
			chain := append([]extract.Enclosing{level}, enclosing...)
			out = append(out, scanBody(pkg, fset, v.Body, chain)...)
			return false
		case *ast.GenDecl:
			out = append(out, scanGenDecl(pkg, fset, v, enclosing)...)
			return false
		}
		return true
	})
	return out
}

func newSource(pkg *packages.Package, fset *token.FileSet, ts *ast.TypeSpec, enclosing []extract.Enclosing, args string) *extract.Source {
	var named *types.Named
	if tn, ok := pkg.TypesInfo.Defs[ts.Name].(*types.TypeName); ok && !tn.IsAlias() {
		named, _ = tn.Type().(*types.Named)
	}
	chain := make([]extract.Enclosing, len(enclosing))
	copy(chain, enclosing)
	return &extract.Source{
		Fset:      fset,
		Pkg:       pkg.Types,
		Files:     pkg.Syntax,
		Named:     named,
		Spec:      ts,
		Enclosing: chain,
		Directive: args,
		Pos:       fset.Position(ts.Pos()),
	}
}

// directiveArgs looks for the metagen:reflect directive comment in a doc
// group and returns its argument text. Directive comments follow the
// compiler convention: no space after the slashes.
func directiveArgs(doc *ast.CommentGroup) (string, bool) {
	if doc == nil {
		return "", false
	}
	for _, c := range doc.List {
		text := strings.TrimPrefix(c.Text, "//")
		if text == directiveName {
			return "", true
		}
		if rest, ok := strings.CutPrefix(text, directiveName+" "); ok {
			return strings.TrimSpace(rest), true
		}
	}
	return "", false
}
