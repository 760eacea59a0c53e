// Package emit synthesizes the companion source unit for a finished
// TypeModel: a static metadata value plus the four literal-name dispatch
// methods. It consumes models only; by this point every literal and type
// reference has already been reduced to owned values.
package emit

import (
	"github.com/dave/jennifer/jen"

	"github.com/cmmoran/metagen/internal/model"
)

// MetaImportPath is the runtime descriptor package generated files import.
const MetaImportPath = "github.com/cmmoran/metagen/pkg/meta"

// File renders the complete companion unit for one annotated type.
func File(tm model.TypeModel) *jen.File {
	f := jen.NewFilePathName(tm.PkgPath, tm.PkgName)
	f.HeaderComment("Code generated by metagen. DO NOT EDIT.")
	for _, imp := range tm.Imports {
		f.ImportName(imp.Path, imp.Name)
	}

	emitMetadata(f, tm)
	emitGetDispatch(f, tm)
	emitSetDispatch(f, tm)
	emitInvokeDispatch(f, tm)
	emitCreate(f, tm)
	return f
}

// typeRef renders a TypeRef as a code expression, qualifying external named
// types so jennifer manages their imports.
func typeRef(tm model.TypeModel, r model.TypeRef) *jen.Statement {
	switch r.Kind {
	case model.RefBasic:
		return jen.Id(r.Name)
	case model.RefNamed:
		if r.PkgPath == "" || r.PkgPath == tm.PkgPath {
			return jen.Id(r.Name)
		}
		return jen.Qual(r.PkgPath, r.Name)
	case model.RefPointer:
		return jen.Op("*").Add(typeRef(tm, *r.Elem))
	case model.RefSlice:
		return jen.Index().Add(typeRef(tm, *r.Elem))
	case model.RefMap:
		return jen.Map(typeRef(tm, *r.Key)).Add(typeRef(tm, *r.Elem))
	case model.RefChan:
		switch {
		case r.RecvOnly:
			return jen.Op("<-").Chan().Add(typeRef(tm, *r.Elem))
		case r.SendOnly:
			return jen.Chan().Op("<-").Add(typeRef(tm, *r.Elem))
		default:
			return jen.Chan().Add(typeRef(tm, *r.Elem))
		}
	default:
		return jen.Id(r.Raw)
	}
}

// namedType renders the annotated type, with its type arguments when generic.
func namedType(tm model.TypeModel) *jen.Statement {
	st := jen.Id(tm.Name)
	if tm.Generic() {
		args := make([]jen.Code, 0, len(tm.TypeParams))
		for _, tp := range tm.TypeParams {
			args = append(args, jen.Id(tp.Name))
		}
		st = st.Index(args...)
	}
	return st
}

func recvType(tm model.TypeModel) *jen.Statement {
	return jen.Op("*").Add(namedType(tm))
}

// typeParamsDecl renders the type-parameter clause of generated generic
// functions. Constraint text is emitted as written.
func typeParamsDecl(tm model.TypeModel) []jen.Code {
	out := make([]jen.Code, 0, len(tm.TypeParams))
	for _, tp := range tm.TypeParams {
		out = append(out, jen.Id(tp.Name).Id(tp.Constraint))
	}
	return out
}

// assertArg renders expr.(T), or expr unchanged when T is any.
func assertArg(tm model.TypeModel, r model.TypeRef, expr *jen.Statement) *jen.Statement {
	if r.Kind == model.RefBasic && r.Name == "any" {
		return expr
	}
	return expr.Assert(typeRef(tm, r))
}

// fixedArity is the argument count a method dispatch case checks for; the
// variadic tail is always left at its default.
func fixedArity(params []model.ParameterModel) int {
	n := len(params)
	if n > 0 && params[n-1].Variadic {
		n--
	}
	return n
}

// callArgs renders the positionally-asserted argument list, dropping the
// variadic tail.
func callArgs(tm model.TypeModel, params []model.ParameterModel) []jen.Code {
	n := fixedArity(params)
	out := make([]jen.Code, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, assertArg(tm, params[i].Type, jen.Id("args").Index(jen.Lit(i))))
	}
	return out
}
