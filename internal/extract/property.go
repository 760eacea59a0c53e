package extract

import (
	"context"

	"github.com/cmmoran/metagen/internal/diag"
	"github.com/cmmoran/metagen/internal/model"
)

// ExtractProperties classifies accessor pairs into property models. Indexer
// shapes (parameterized accessors) emit a warning and are skipped; everything
// else becomes a model. Runs independently of the other extractors.
func ExtractProperties(ctx context.Context, s *Source, opts model.Options) diag.Result[[]model.PropertyModel] {
	if !opts.Properties {
		return diag.Ok[[]model.PropertyModel](nil)
	}

	var (
		out   []model.PropertyModel
		warns []diag.Diagnostic
	)
	for _, pair := range classifyAccessors(methodsOf(s, opts)) {
		if ctx.Err() != nil {
			break
		}
		if !visible(pair.base, opts) {
			continue
		}
		if pair.indexer() {
			pos := s.Pos
			if pair.getter != nil {
				pos = s.position(pair.getter.Pos())
			} else if pair.setter != nil {
				pos = s.position(pair.setter.Pos())
			}
			warns = append(warns, diag.Warnf(diag.CodeIndexer, pos,
				"indexer property %s is not supported and was skipped", pair.base))
			continue
		}

		pm := model.PropertyModel{
			Name:           pair.base,
			Type:           refOf(pair.propType(), s),
			ContainingType: s.qualifiedName(),
			Nullable:       nullable(pair.propType()),
			HasGetter:      pair.getter != nil,
			HasSetter:      pair.setter != nil,
			Visibility:     visibilityOf(pair.base),
		}
		if pair.getter != nil {
			pm.GetterName = pair.getter.Name()
		}
		if pair.setter != nil {
			pm.SetterName = pair.setter.Name()
		}
		out = append(out, pm)
	}

	return diag.Ok(out, warns...)
}
