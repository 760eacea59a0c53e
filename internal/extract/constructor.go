package extract

import (
	"context"
	"go/types"
	"sort"

	"github.com/cmmoran/metagen/internal/diag"
	"github.com/cmmoran/metagen/internal/model"
)

// ExtractConstructors collects package-level New<Type> factory functions
// returning the type, a pointer to it, or either alongside an error. A
// type-parameterized factory warns and is skipped. Overloads sharing an
// arity are kept; dispatch resolves them first-match.
func ExtractConstructors(ctx context.Context, s *Source, opts model.Options) diag.Result[[]model.ConstructorModel] {
	if !opts.Constructors {
		return diag.Ok[[]model.ConstructorModel](nil)
	}

	var (
		out   []model.ConstructorModel
		warns []diag.Diagnostic
	)
	for _, f := range constructorFuncs(s, opts) {
		if ctx.Err() != nil {
			break
		}
		sig := signatureOf(f)
		if sig.TypeParams() != nil && sig.TypeParams().Len() > 0 {
			warns = append(warns, diag.Warnf(diag.CodeGenericMethod, s.position(f.Pos()),
				"generic constructor %s is not supported and was skipped", f.Name()))
			continue
		}

		ptr, withErr, ok := constructorResults(sig, s.Named)
		if !ok {
			continue
		}

		cm := model.ConstructorModel{
			Name:           f.Name(),
			ContainingType: s.qualifiedName(),
			ReturnsPointer: ptr,
			ReturnsError:   withErr,
			Visibility:     visibilityOf(f.Name()),
		}
		params := sig.Params()
		for i := 0; i < params.Len(); i++ {
			variadic := sig.Variadic() && i == params.Len()-1
			cm.Params = append(cm.Params, paramModel(s, params.At(i), variadic))
		}
		out = append(out, cm)
	}

	return diag.Ok(out, warns...)
}

func constructorFuncs(s *Source, opts model.Options) []*types.Func {
	var out []*types.Func
	scope := s.Pkg.Scope()
	for _, name := range scope.Names() {
		f, ok := scope.Lookup(name).(*types.Func)
		if !ok || s.generated(f.Pos()) {
			continue
		}
		if !isConstructorName(name, s.typeName()) || !visible(name, opts) {
			continue
		}
		if signatureOf(f).Recv() != nil {
			continue
		}
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// constructorResults validates the factory's result shape: T, *T, (T, error)
// or (*T, error). Anything else means the function is not a constructor.
func constructorResults(sig *types.Signature, named *types.Named) (pointer, withErr, ok bool) {
	results := sig.Results()
	switch results.Len() {
	case 1:
	case 2:
		n, isNamed := types.Unalias(results.At(1).Type()).(*types.Named)
		if !isNamed || n.Obj().Pkg() != nil || n.Obj().Name() != "error" {
			return false, false, false
		}
		withErr = true
	default:
		return false, false, false
	}

	first := types.Unalias(results.At(0).Type())
	if p, isPtr := first.(*types.Pointer); isPtr {
		pointer = true
		first = types.Unalias(p.Elem())
	}
	n, isNamed := first.(*types.Named)
	if !isNamed || n.Obj() != named.Obj() {
		return false, false, false
	}
	return pointer, withErr, true
}
