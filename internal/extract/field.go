package extract

import (
	"bytes"
	"context"
	"go/ast"
	"go/printer"
	"go/token"
	"go/types"
	"reflect"
	"strings"

	"github.com/cmmoran/metagen/internal/diag"
	"github.com/cmmoran/metagen/internal/literal"
	"github.com/cmmoran/metagen/internal/model"
)

// ExtractFields walks the struct's fields plus the package-level constants
// associated with the type. Embedded wrapper fields are silently skipped;
// with inherited members enabled their promoted leaves are flattened in.
// Constant literal text is computed here, at extraction time, so emission
// never needs the program representation.
func ExtractFields(ctx context.Context, s *Source, opts model.Options) diag.Result[[]model.FieldModel] {
	if !opts.Fields {
		return diag.Ok[[]model.FieldModel](nil)
	}

	var out []model.FieldModel
	seen := map[string]bool{}

	st, ok := s.Named.Underlying().(*types.Struct)
	if ok {
		out = appendStructFields(ctx, s, opts, st, out, seen)
	}
	out = appendConstFields(ctx, s, opts, out)

	return diag.Ok(out)
}

func appendStructFields(ctx context.Context, s *Source, opts model.Options, st *types.Struct, out []model.FieldModel, seen map[string]bool) []model.FieldModel {
	var embedded []*types.Struct

	for i := 0; i < st.NumFields(); i++ {
		if ctx.Err() != nil {
			return out
		}
		f := st.Field(i)
		if f.Embedded() {
			if inner, ok := types.Unalias(derefType(f.Type())).Underlying().(*types.Struct); ok && opts.Inherited {
				embedded = append(embedded, inner)
			}
			continue
		}
		if seen[f.Name()] || !visible(f.Name(), opts) {
			continue
		}
		tag := reflect.StructTag(st.Tag(i))
		if strings.HasPrefix(tag.Get("metagen"), "-") {
			continue
		}
		seen[f.Name()] = true
		out = append(out, model.FieldModel{
			Name:           f.Name(),
			Type:           refOf(f.Type(), s),
			ContainingType: s.qualifiedName(),
			Nullable:       nullable(f.Type()),
			ReadOnly:       tagReadOnly(tag),
			Visibility:     visibilityOf(f.Name()),
		})
	}

	// promoted fields, one embedding level at a time, shadowed names excluded
	for _, inner := range embedded {
		out = appendStructFields(ctx, s, opts, inner, out, seen)
	}
	return out
}

// tagReadOnly recognizes the read-only field marker in the metagen tag.
func tagReadOnly(tag reflect.StructTag) bool {
	for _, part := range strings.Split(tag.Get("metagen"), ",") {
		if strings.TrimSpace(part) == "readonly" {
			return true
		}
	}
	return false
}

func derefType(t types.Type) types.Type {
	if p, ok := types.Unalias(t).(*types.Pointer); ok {
		return p.Elem()
	}
	return t
}

// appendConstFields collects package-level constants named with the type-name
// prefix (UserMax belongs to User as "Max"). Declaration-site syntax text is
// preferred for the literal; the formatter reconstruction is the fallback,
// and a constant with neither is silently omitted.
func appendConstFields(ctx context.Context, s *Source, opts model.Options, out []model.FieldModel) []model.FieldModel {
	scope := s.Pkg.Scope()
	prefix := s.typeName()
	for _, name := range scope.Names() {
		if ctx.Err() != nil {
			return out
		}
		c, ok := scope.Lookup(name).(*types.Const)
		if !ok || s.generated(c.Pos()) {
			continue
		}
		rest, ok := strings.CutPrefix(name, prefix)
		if !ok || !upperStart(rest) {
			continue
		}
		if !visible(name, opts) {
			continue
		}
		lit, ok := constLiteral(s, c)
		if !ok {
			continue
		}
		out = append(out, model.FieldModel{
			Name:           rest,
			Type:           refOf(c.Type(), s),
			ContainingType: s.qualifiedName(),
			Static:         true,
			ReadOnly:       true,
			Const:          true,
			ConstLiteral:   lit,
			Visibility:     visibilityOf(name),
		})
	}
	return out
}

func constLiteral(s *Source, c *types.Const) (string, bool) {
	if text, ok := constSyntaxText(s, c.Name()); ok {
		return text, true
	}
	return literal.Format(c.Val(), c.Type(), s.Qualifier())
}

// constSyntaxText finds the declaring ValueSpec and returns the author's
// exact expression text (preserving spellings like 1_000). The syntax text is
// preferred over the reconstructed literal without reconciling the two.
func constSyntaxText(s *Source, name string) (string, bool) {
	for _, file := range s.Files {
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.CONST {
				continue
			}
			for _, spec := range gen.Specs {
				vs, ok := spec.(*ast.ValueSpec)
				if !ok {
					continue
				}
				for i, ident := range vs.Names {
					if ident.Name != name || i >= len(vs.Values) {
						continue
					}
					if lit, ok := vs.Values[i].(*ast.BasicLit); ok {
						return lit.Value, true
					}
					var buf bytes.Buffer
					if err := printer.Fprint(&buf, s.Fset, vs.Values[i]); err != nil {
						return "", false
					}
					return buf.String(), true
				}
			}
		}
	}
	return "", false
}
