package emit

import (
	"github.com/dave/jennifer/jen"

	"github.com/cmmoran/metagen/internal/model"
)

// emitMetadata renders the static metadata value. A non-generic type gets a
// package-level var; a generic type gets a function parameterized the same
// way the type is, since a var cannot carry type parameters.
func emitMetadata(f *jen.File, tm model.TypeModel) {
	value := jen.Qual(MetaImportPath, "Type").Values(metadataDict(tm))
	f.Comment(tm.Name + "Meta describes " + tm.Name + " without runtime reflection.")
	if !tm.Generic() {
		f.Var().Id(tm.Name + "Meta").Op("=").Add(value)
		return
	}
	f.Func().Id(tm.Name+"Meta").Types(typeParamsDecl(tm)...).Params().
		Qual(MetaImportPath, "Type").
		Block(jen.Return(value))
}

func metadataDict(tm model.TypeModel) jen.Dict {
	d := jen.Dict{
		jen.Id("Name"):    jen.Lit(tm.Name),
		jen.Id("Package"): jen.Lit(tm.PkgPath),
	}
	if tm.BaseType != "" {
		d[jen.Id("Base")] = jen.Lit(tm.BaseType)
	}
	if len(tm.Interfaces) > 0 {
		vals := make([]jen.Code, 0, len(tm.Interfaces))
		for _, iface := range tm.Interfaces {
			vals = append(vals, jen.Lit(iface))
		}
		d[jen.Id("Interfaces")] = jen.Index().String().Values(vals...)
	}
	if len(tm.Properties) > 0 {
		d[jen.Id("Properties")] = descriptorSlice(tm, "Property", len(tm.Properties), func(i int) jen.Dict {
			return propertyDict(tm, tm.Properties[i])
		})
	}
	if len(tm.Fields) > 0 {
		d[jen.Id("Fields")] = descriptorSlice(tm, "Field", len(tm.Fields), func(i int) jen.Dict {
			return fieldDict(tm, tm.Fields[i])
		})
	}
	if len(tm.Methods) > 0 {
		d[jen.Id("Methods")] = descriptorSlice(tm, "Method", len(tm.Methods), func(i int) jen.Dict {
			return methodDict(tm, tm.Methods[i])
		})
	}
	if len(tm.Constructors) > 0 {
		d[jen.Id("Constructors")] = descriptorSlice(tm, "Constructor", len(tm.Constructors), func(i int) jen.Dict {
			return constructorDict(tm, tm.Constructors[i])
		})
	}
	return d
}

func descriptorSlice(tm model.TypeModel, kind string, n int, dict func(i int) jen.Dict) *jen.Statement {
	elems := make([]jen.Code, 0, n)
	for i := 0; i < n; i++ {
		elems = append(elems, jen.Values(dict(i)))
	}
	return jen.Index().Qual(MetaImportPath, kind).Values(elems...)
}

func propertyDict(tm model.TypeModel, p model.PropertyModel) jen.Dict {
	d := jen.Dict{
		jen.Id("Name"): jen.Lit(p.Name),
		jen.Id("Type"): jen.Lit(p.Type.String()),
	}
	if p.Nullable {
		d[jen.Id("Nullable")] = jen.True()
	}
	if p.HasGetter {
		d[jen.Id("HasGetter")] = jen.True()
		d[jen.Id("Get")] = jen.Func().Params(jen.Id("recv").Id("any")).Id("any").Block(
			jen.Return(recvAssert(tm).Dot(p.GetterName).Call()),
		)
	}
	if p.HasSetter {
		d[jen.Id("HasSetter")] = jen.True()
		d[jen.Id("Set")] = jen.Func().Params(jen.Id("recv"), jen.Id("value").Id("any")).Block(
			recvAssert(tm).Dot(p.SetterName).Call(assertArg(tm, p.Type, jen.Id("value"))),
		)
	}
	return d
}

func fieldDict(tm model.TypeModel, fd model.FieldModel) jen.Dict {
	d := jen.Dict{
		jen.Id("Name"): jen.Lit(fd.Name),
		jen.Id("Type"): jen.Lit(fd.Type.String()),
	}
	if fd.Static {
		d[jen.Id("Static")] = jen.True()
	}
	if fd.ReadOnly {
		d[jen.Id("ReadOnly")] = jen.True()
	}
	if fd.Const {
		d[jen.Id("Const")] = jen.True()
		// the literal computed at extraction time, emitted verbatim
		d[jen.Id("Get")] = jen.Func().Params(jen.Id("recv").Id("any")).Id("any").Block(
			jen.Return(jen.Id(fd.ConstLiteral)),
		)
		return d
	}
	d[jen.Id("Get")] = jen.Func().Params(jen.Id("recv").Id("any")).Id("any").Block(
		jen.Return(recvAssert(tm).Dot(fd.Name)),
	)
	if !fd.ReadOnly {
		d[jen.Id("Set")] = jen.Func().Params(jen.Id("recv"), jen.Id("value").Id("any")).Block(
			recvAssert(tm).Dot(fd.Name).Op("=").Add(assertArg(tm, fd.Type, jen.Id("value"))),
		)
	}
	return d
}

func methodDict(tm model.TypeModel, m model.MethodModel) jen.Dict {
	d := jen.Dict{
		jen.Id("Name"):      jen.Lit(m.Name),
		jen.Id("NumParams"): jen.Lit(fixedArity(m.Params)),
	}
	if n := len(m.Params); n > 0 && m.Params[n-1].Variadic {
		d[jen.Id("Variadic")] = jen.True()
	}
	if m.Static {
		d[jen.Id("Static")] = jen.True()
	}
	if m.Async {
		d[jen.Id("Async")] = jen.True()
	}
	if m.Void {
		d[jen.Id("Void")] = jen.True()
	}

	body := []jen.Code{jen.Id("x").Op(":=").Add(recvAssert(tm))}
	call := methodCall(tm, m, jen.Id("x"))
	if m.Void {
		body = append(body, call, jen.Return(jen.Nil()))
	} else {
		lhs, pack := resultVars(m)
		body = append(body, lhs.Op(":=").Add(call), jen.Return(pack))
	}
	d[jen.Id("Invoke")] = jen.Func().
		Params(jen.Id("recv").Id("any"), jen.Id("args").Index().Id("any")).
		Index().Id("any").
		Block(body...)
	return d
}

func constructorDict(tm model.TypeModel, c model.ConstructorModel) jen.Dict {
	d := jen.Dict{
		jen.Id("Name"):      jen.Lit(c.Name),
		jen.Id("NumParams"): jen.Lit(c.FixedArity()),
	}
	if n := len(c.Params); n > 0 && c.Params[n-1].Variadic {
		d[jen.Id("Variadic")] = jen.True()
	}
	d[jen.Id("New")] = jen.Func().
		Params(jen.Id("args").Index().Id("any")).
		Params(jen.Id("any"), jen.Id("error")).
		Block(constructorBody(tm, c)...)
	return d
}

// recvAssert renders recv.(*T).
func recvAssert(tm model.TypeModel) *jen.Statement {
	return jen.Id("recv").Assert(recvType(tm))
}

// methodCall renders the invocation of m on recv with asserted args. For an
// extension method the receiver becomes the first argument.
func methodCall(tm model.TypeModel, m model.MethodModel, recv *jen.Statement) *jen.Statement {
	args := callArgs(tm, m.Params)
	if !m.Extension {
		return recv.Dot(m.Name).Call(args...)
	}
	first := recv
	if !m.PointerRecv {
		first = jen.Op("*").Add(recv)
	}
	return jen.Id(m.Name).Call(append([]jen.Code{first}, args...)...)
}

func resultVars(m model.MethodModel) (*jen.Statement, *jen.Statement) {
	names := make([]jen.Code, 0, len(m.Results))
	packed := make([]jen.Code, 0, len(m.Results))
	for i := range m.Results {
		id := jen.Id(resultName(i))
		names = append(names, id)
		packed = append(packed, jen.Id(resultName(i)))
	}
	return jen.List(names...), jen.Index().Id("any").Values(packed...)
}

func resultName(i int) string {
	return "r" + string(rune('0'+i))
}

// constructorBody renders the factory call normalized to (any, error) with
// the instance always returned as a pointer.
func constructorBody(tm model.TypeModel, c model.ConstructorModel) []jen.Code {
	call := jen.Id(c.Name).Call(callArgs(tm, c.Params)...)
	switch {
	case c.ReturnsError && c.ReturnsPointer:
		return []jen.Code{jen.Return(call)}
	case c.ReturnsError:
		return []jen.Code{
			jen.List(jen.Id("v"), jen.Id("err")).Op(":=").Add(call),
			jen.If(jen.Id("err").Op("!=").Nil()).Block(jen.Return(jen.Nil(), jen.Id("err"))),
			jen.Return(jen.Op("&").Id("v"), jen.Nil()),
		}
	case c.ReturnsPointer:
		return []jen.Code{jen.Return(call, jen.Nil())}
	default:
		return []jen.Code{
			jen.Id("v").Op(":=").Add(call),
			jen.Return(jen.Op("&").Id("v"), jen.Nil()),
		}
	}
}
