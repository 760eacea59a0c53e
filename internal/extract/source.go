// Package extract walks the resolved program representation of one annotated
// type and produces pure value models. The Source handle is the only place
// live go/ast and go/types values are visible; everything read from it is
// copied into owned fields immediately and the handle is dropped after
// extraction.
package extract

import (
	"go/ast"
	"go/token"
	"go/types"
	"strings"
	"unicode"

	"github.com/cmmoran/metagen/internal/model"
)

// GeneratedSuffix is the hint-name suffix of emitted companion files. Members
// whose declaration lives in such a file are extraction artifacts of a
// previous pass and are silently skipped, the way compiler-synthesized
// members would be.
const GeneratedSuffix = "_metagen.go"

// Enclosing is one function level wrapping a locally declared type,
// innermost first.
type Enclosing struct {
	Name string
	Pos  token.Position
}

// Source is the bridge handle for one annotated type. It is consumed by
// Extract and must never be stored on a model.
type Source struct {
	Fset      *token.FileSet
	Pkg       *types.Package
	Files     []*ast.File
	Named     *types.Named
	Spec      *ast.TypeSpec
	Enclosing []Enclosing // innermost-first function levels; empty for package-level types
	Directive string      // directive argument text, may be empty
	Pos       token.Position
}

// Qualifier renders type names relative to the annotated type's package.
func (s *Source) Qualifier() types.Qualifier {
	return types.RelativeTo(s.Pkg)
}

func (s *Source) typeName() string { return s.Spec.Name.Name }

func (s *Source) qualifiedName() string {
	return s.Pkg.Path() + "." + s.typeName()
}

func (s *Source) position(pos token.Pos) token.Position {
	if s.Fset == nil {
		return token.Position{}
	}
	return s.Fset.Position(pos)
}

// generated reports whether pos lies in a previously generated companion file.
func (s *Source) generated(pos token.Pos) bool {
	return strings.HasSuffix(s.position(pos).Filename, GeneratedSuffix)
}

func visibilityOf(name string) string {
	if ast.IsExported(name) {
		return model.VisibilityExported
	}
	return model.VisibilityUnexported
}

// visible applies the visibility filter for the resolved options.
func visible(name string, opts model.Options) bool {
	return ast.IsExported(name) || opts.Private
}

// nullable reports Go nilability of a type: pointers, slices, maps, channels,
// functions and interfaces.
func nullable(t types.Type) bool {
	switch types.Unalias(t).Underlying().(type) {
	case *types.Pointer, *types.Slice, *types.Map, *types.Chan, *types.Signature, *types.Interface:
		return true
	}
	return false
}

// upperStart reports whether s begins with an upper-case letter or a digit,
// the shape a type-name suffix or accessor base name must have.
func upperStart(s string) bool {
	if s == "" {
		return false
	}
	r := []rune(s)[0]
	return unicode.IsUpper(r) || unicode.IsDigit(r)
}
