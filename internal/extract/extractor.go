package extract

import (
	"context"
	"go/ast"
	"go/types"
	"sort"

	"github.com/cmmoran/metagen/internal/diag"
	"github.com/cmmoran/metagen/internal/model"
)

type memberSet struct {
	properties   []model.PropertyModel
	methods      []model.MethodModel
	fields       []model.FieldModel
	constructors []model.ConstructorModel
}

// Extract runs the full pipeline for one annotated type: options resolution,
// the declaration-chain extractor, and the four member extractors, merged
// through the accumulation combinator. The extractors have no data
// dependency on each other; a failed chain short-circuits assembly at the
// merge step, never by cancelling the member extractors.
func Extract(ctx context.Context, s *Source) diag.Result[model.TypeModel] {
	opts := ResolveOptions(s.Directive)

	// Alias declarations have no named type behind them; the member
	// extractors cannot run, only the chain diagnostics apply.
	if s.Spec.Assign.IsValid() || s.Named == nil {
		return diag.Fail[model.TypeModel](ExtractDeclarationChain(s).Diagnostics()...)
	}

	if _, ok := s.Spec.Type.(*ast.StructType); !ok {
		return diag.Fail[model.TypeModel](diag.Errorf(diag.CodeInvalidTarget, s.Pos,
			"metagen:reflect target %s is not a struct type declaration", s.typeName()))
	}

	chain := ExtractDeclarationChain(s)
	props := ExtractProperties(ctx, s, opts)
	methods := ExtractMethods(ctx, s, opts)
	fields := ExtractFields(ctx, s, opts)
	ctors := ExtractConstructors(ctx, s, opts)

	accessors := diag.Map2(props, methods,
		func(p []model.PropertyModel, m []model.MethodModel) memberSet {
			return memberSet{properties: p, methods: m}
		})
	members := diag.Map2(accessors,
		diag.Map2(fields, ctors, func(f []model.FieldModel, c []model.ConstructorModel) memberSet {
			return memberSet{fields: f, constructors: c}
		}),
		func(a, b memberSet) memberSet {
			a.fields = b.fields
			a.constructors = b.constructors
			return a
		})

	return diag.Map2(chain, members, func(decls []model.TypeDeclarationModel, ms memberSet) model.TypeModel {
		return assemble(s, opts, decls, ms)
	})
}

func assemble(s *Source, opts model.Options, decls []model.TypeDeclarationModel, ms memberSet) model.TypeModel {
	tm := model.TypeModel{
		Name:          s.typeName(),
		QualifiedName: s.qualifiedName(),
		PkgPath:       s.Pkg.Path(),
		PkgName:       s.Pkg.Name(),
		Visibility:    visibilityOf(s.typeName()),
		BaseType:      baseTypeName(s),
		Interfaces:    implementedInterfaces(s),
		Declarations:  decls,
		TypeParams:    typeParams(s),
		Properties:    ms.properties,
		Methods:       ms.methods,
		Fields:        ms.fields,
		Constructors:  ms.constructors,
		Options:       opts,
	}
	collectImports(&tm)
	return tm
}

// baseTypeName is the fully qualified name of the first embedded named
// struct, the closest analog of a base type.
func baseTypeName(s *Source) string {
	st, ok := s.Named.Underlying().(*types.Struct)
	if !ok {
		return ""
	}
	for i := 0; i < st.NumFields(); i++ {
		f := st.Field(i)
		if !f.Embedded() {
			continue
		}
		n, ok := types.Unalias(derefType(f.Type())).(*types.Named)
		if !ok {
			continue
		}
		if _, ok := n.Underlying().(*types.Struct); !ok {
			continue
		}
		if n.Obj().Pkg() == nil {
			return n.Obj().Name()
		}
		return n.Obj().Pkg().Path() + "." + n.Obj().Name()
	}
	return ""
}

// implementedInterfaces lists the package-local interfaces satisfied by *T,
// sorted by name.
func implementedInterfaces(s *Source) []string {
	var out []string
	ptr := types.NewPointer(s.Named)
	scope := s.Pkg.Scope()
	for _, name := range scope.Names() {
		tn, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || tn.IsAlias() {
			continue
		}
		iface, ok := tn.Type().Underlying().(*types.Interface)
		if !ok || iface.Empty() {
			continue
		}
		if types.Implements(ptr, iface) {
			out = append(out, s.Pkg.Path()+"."+name)
		}
	}
	sort.Strings(out)
	return out
}
