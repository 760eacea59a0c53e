package extract

import (
	"context"
	"go/types"
	"sort"
	"strings"

	"github.com/cmmoran/metagen/internal/diag"
	"github.com/cmmoran/metagen/internal/model"
)

// ExtractMethods walks the receiver methods of the type plus the exported
// package-level extension functions whose first parameter is the type.
// Property accessors are silently skipped (wrong kind); functions carrying
// their own type-parameter list warn and are skipped.
func ExtractMethods(ctx context.Context, s *Source, opts model.Options) diag.Result[[]model.MethodModel] {
	if !opts.Methods {
		return diag.Ok[[]model.MethodModel](nil)
	}

	var (
		out   []model.MethodModel
		warns []diag.Diagnostic
	)

	fns := methodsOf(s, opts)
	accessors := accessorNames(classifyAccessors(fns))

	for _, f := range fns {
		if ctx.Err() != nil {
			break
		}
		if accessors[f.Name()] {
			continue
		}
		if !visible(f.Name(), opts) {
			continue
		}
		out = append(out, methodModel(s, f, false, false))
	}

	for _, f := range extensionFuncs(s, opts) {
		if ctx.Err() != nil {
			break
		}
		sig := signatureOf(f)
		if sig.TypeParams() != nil && sig.TypeParams().Len() > 0 {
			warns = append(warns, diag.Warnf(diag.CodeGenericMethod, s.position(f.Pos()),
				"generic method %s is not supported and was skipped", f.Name()))
			continue
		}
		ptr := false
		if _, ok := sig.Params().At(0).Type().(*types.Pointer); ok {
			ptr = true
		}
		out = append(out, methodModel(s, f, true, ptr))
	}

	return diag.Ok(out, warns...)
}

func methodModel(s *Source, f *types.Func, extension, ptrRecv bool) model.MethodModel {
	sig := signatureOf(f)

	params := sig.Params()
	start := 0
	if extension {
		start = 1 // the first parameter is the receiver
	}
	pms := make([]model.ParameterModel, 0, params.Len()-start)
	for i := start; i < params.Len(); i++ {
		variadic := sig.Variadic() && i == params.Len()-1
		pms = append(pms, paramModel(s, params.At(i), variadic))
	}

	mm := model.MethodModel{
		Name:           f.Name(),
		ContainingType: s.qualifiedName(),
		Params:         pms,
		Static:         extension,
		Extension:      extension,
		PointerRecv:    ptrRecv,
		Void:           sig.Results().Len() == 0,
		Visibility:     visibilityOf(f.Name()),
	}
	for i := 0; i < sig.Results().Len(); i++ {
		mm.Results = append(mm.Results, refOf(sig.Results().At(i).Type(), s))
	}
	if len(mm.Results) > 0 {
		mm.ReturnType = mm.Results[0]
	}
	if sig.Results().Len() == 1 {
		if ch, ok := types.Unalias(sig.Results().At(0).Type()).Underlying().(*types.Chan); ok && ch.Dir() == types.RecvOnly {
			mm.Async = true
		}
	}
	return mm
}

func paramModel(s *Source, v *types.Var, variadic bool) model.ParameterModel {
	pm := model.ParameterModel{
		Name:     v.Name(),
		Type:     refOf(v.Type(), s),
		Nullable: nullable(v.Type()) || variadic,
		Variadic: variadic,
	}
	if variadic {
		// omitting the variadic tail is the language's default-argument form
		pm.HasDefault = true
		pm.DefaultLiteral = "nil"
	}
	return pm
}

// extensionFuncs collects exported package-level functions whose first
// parameter is the annotated type or a pointer to it, skipping constructor
// candidates and anything living in a generated file. Sorted by name.
func extensionFuncs(s *Source, opts model.Options) []*types.Func {
	var out []*types.Func
	scope := s.Pkg.Scope()
	for _, name := range scope.Names() {
		f, ok := scope.Lookup(name).(*types.Func)
		if !ok || s.generated(f.Pos()) {
			continue
		}
		if !visible(name, opts) {
			continue
		}
		if isConstructorName(name, s.typeName()) {
			continue
		}
		sig := signatureOf(f)
		if sig.Recv() != nil || sig.Params().Len() == 0 {
			continue
		}
		if !firstParamIsReceiver(sig.Params().At(0).Type(), s.Named) {
			continue
		}
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

func firstParamIsReceiver(t types.Type, named *types.Named) bool {
	t = types.Unalias(t)
	if p, ok := t.(*types.Pointer); ok {
		t = types.Unalias(p.Elem())
	}
	n, ok := t.(*types.Named)
	return ok && n.Obj() == named.Obj()
}

func isConstructorName(name, typeName string) bool {
	for _, prefix := range []string{"New" + typeName, "new" + typeName} {
		if rest, ok := strings.CutPrefix(name, prefix); ok && (rest == "" || upperStart(rest)) {
			return true
		}
	}
	return false
}
