package extract

import (
	"bytes"
	"go/printer"
	"go/types"

	"github.com/cmmoran/metagen/internal/diag"
	"github.com/cmmoran/metagen/internal/model"
)

// ExtractDeclarationChain walks the declaration path of the annotated type
// from the innermost level outwards. A companion file can only attach methods
// to a package-level defined type, so every enclosing function level and any
// alias declaration fails the whole extraction, one error per offending
// level. On success the chain is reversed into outer-to-inner order.
func ExtractDeclarationChain(s *Source) diag.Result[[]model.TypeDeclarationModel] {
	var (
		chain []model.TypeDeclarationModel // built innermost-first
		errs  []diag.Diagnostic
	)

	keyword := "struct"
	if s.Spec.Assign.IsValid() {
		keyword = "alias"
		errs = append(errs, diag.Errorf(diag.CodeNotExtendable, s.Pos,
			"type %s is an alias declaration; a generated companion cannot attach to it", s.typeName()))
	}
	chain = append(chain, model.TypeDeclarationModel{
		Name:       s.typeName(),
		Keyword:    keyword,
		Modifiers:  visibilityOf(s.typeName()),
		TypeParams: typeParamClause(s),
	})

	for _, enc := range s.Enclosing {
		chain = append(chain, model.TypeDeclarationModel{
			Name:    enc.Name,
			Keyword: "func",
		})
		errs = append(errs, diag.Errorf(diag.CodeNotExtendable, enc.Pos,
			"type %s is declared inside %s; a generated companion cannot attach to it", s.typeName(), enc.Name))
	}

	if len(errs) > 0 {
		return diag.Fail[[]model.TypeDeclarationModel](errs...)
	}

	// reverse to outer-to-inner
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return diag.Ok(chain)
}

func typeParamClause(s *Source) string {
	if s.Spec.TypeParams == nil {
		return ""
	}
	var buf bytes.Buffer
	buf.WriteByte('[')
	if err := printer.Fprint(&buf, s.Fset, s.Spec.TypeParams); err != nil {
		return ""
	}
	buf.WriteByte(']')
	return buf.String()
}

func constraintString(tp *types.TypeParam, s *Source) string {
	c := tp.Constraint()
	if iface, ok := c.Underlying().(*types.Interface); ok && iface.Empty() {
		return "any"
	}
	return types.TypeString(c, s.Qualifier())
}

// typeParams copies the type-parameter list with constraints rendered
// relative to the type's package.
func typeParams(s *Source) []model.TypeParam {
	tps := s.Named.TypeParams()
	if tps == nil || tps.Len() == 0 {
		return nil
	}
	out := make([]model.TypeParam, 0, tps.Len())
	for i := 0; i < tps.Len(); i++ {
		tp := tps.At(i)
		out = append(out, model.TypeParam{
			Name:       tp.Obj().Name(),
			Constraint: constraintString(tp, s),
		})
	}
	return out
}
