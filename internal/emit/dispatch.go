package emit

import (
	"github.com/dave/jennifer/jen"

	"github.com/cmmoran/metagen/internal/model"
)

// The dispatch methods are closed switches over literal member names chosen
// at generation time; no name survives as runtime lookup data. An empty
// table degenerates to an always-failing stub.

func emitGetDispatch(f *jen.File, tm model.TypeModel) {
	var cases []jen.Code
	seen := map[string]bool{}

	for _, p := range tm.Properties {
		if !p.HasGetter || seen[p.Name] {
			continue
		}
		seen[p.Name] = true
		cases = append(cases, jen.Case(jen.Lit(p.Name)).Block(
			jen.Return(jen.Id("x").Dot(p.GetterName).Call(), jen.Nil()),
		))
	}
	for _, fd := range tm.Fields {
		if seen[fd.Name] {
			continue
		}
		seen[fd.Name] = true
		var value *jen.Statement
		if fd.Const {
			value = jen.Id(fd.ConstLiteral)
		} else {
			value = jen.Id("x").Dot(fd.Name)
		}
		cases = append(cases, jen.Case(jen.Lit(fd.Name)).Block(jen.Return(value, jen.Nil())))
	}

	fail := jen.Return(jen.Nil(), jen.Qual("fmt", "Errorf").Call(
		jen.Lit(tm.Name+" has no readable property %q"), jen.Id("name"),
	))

	f.Comment("GetPropertyValue reads a property or field by its literal name.")
	fn := f.Func().Params(jen.Id("x").Add(recvType(tm))).Id("GetPropertyValue").
		Params(jen.Id("name").String()).
		Params(jen.Id("any"), jen.Id("error"))
	if len(cases) == 0 {
		fn.Block(fail)
		return
	}
	fn.Block(
		jen.Switch(jen.Id("name")).Block(cases...),
		fail,
	)
}

func emitSetDispatch(f *jen.File, tm model.TypeModel) {
	var cases []jen.Code
	seen := map[string]bool{}

	for _, p := range tm.Properties {
		if !p.HasSetter || seen[p.Name] {
			continue
		}
		seen[p.Name] = true
		cases = append(cases, jen.Case(jen.Lit(p.Name)).Block(
			jen.Id("x").Dot(p.SetterName).Call(assertArg(tm, p.Type, jen.Id("value"))),
			jen.Return(jen.Nil()),
		))
	}
	for _, fd := range tm.Fields {
		if fd.Const || fd.ReadOnly || seen[fd.Name] {
			continue
		}
		seen[fd.Name] = true
		cases = append(cases, jen.Case(jen.Lit(fd.Name)).Block(
			jen.Id("x").Dot(fd.Name).Op("=").Add(assertArg(tm, fd.Type, jen.Id("value"))),
			jen.Return(jen.Nil()),
		))
	}

	fail := jen.Return(jen.Qual("fmt", "Errorf").Call(
		jen.Lit(tm.Name+" has no writable property %q"), jen.Id("name"),
	))

	f.Comment("SetPropertyValue writes a property or field by its literal name.")
	fn := f.Func().Params(jen.Id("x").Add(recvType(tm))).Id("SetPropertyValue").
		Params(jen.Id("name").String(), jen.Id("value").Id("any")).
		Id("error")
	if len(cases) == 0 {
		fn.Block(fail)
		return
	}
	fn.Block(
		jen.Switch(jen.Id("name")).Block(cases...),
		fail,
	)
}

func emitInvokeDispatch(f *jen.File, tm model.TypeModel) {
	var cases []jen.Code
	seen := map[string]bool{}

	for _, m := range tm.Methods {
		if seen[m.Name] {
			continue
		}
		seen[m.Name] = true
		arity := fixedArity(m.Params)

		body := []jen.Code{
			jen.If(jen.Len(jen.Id("args")).Op("!=").Lit(arity)).Block(
				jen.Return(jen.Nil(), jen.Qual("fmt", "Errorf").Call(
					jen.Lit(tm.Name+"."+m.Name+" expects %d arguments, got %d"),
					jen.Lit(arity), jen.Len(jen.Id("args")),
				)),
			),
		}
		call := methodCall(tm, m, jen.Id("x"))
		if m.Void {
			body = append(body, call, jen.Return(jen.Nil(), jen.Nil()))
		} else {
			lhs, pack := resultVars(m)
			body = append(body, lhs.Op(":=").Add(call), jen.Return(pack, jen.Nil()))
		}
		cases = append(cases, jen.Case(jen.Lit(m.Name)).Block(body...))
	}

	fail := jen.Return(jen.Nil(), jen.Qual("fmt", "Errorf").Call(
		jen.Lit(tm.Name+" has no method %q"), jen.Id("name"),
	))

	f.Comment("InvokeMethod calls a method by its literal name with positional arguments.")
	fn := f.Func().Params(jen.Id("x").Add(recvType(tm))).Id("InvokeMethod").
		Params(jen.Id("name").String(), jen.Id("args").Op("...").Id("any")).
		Params(jen.Index().Id("any"), jen.Id("error"))
	if len(cases) == 0 {
		fn.Block(fail)
		return
	}
	fn.Block(
		jen.Switch(jen.Id("name")).Block(cases...),
		fail,
	)
}

func emitCreate(f *jen.File, tm model.TypeModel) {
	var cases []jen.Code
	seen := map[int]bool{}

	for _, c := range tm.Constructors {
		arity := c.FixedArity()
		if seen[arity] {
			continue // overload ambiguity: first match wins
		}
		seen[arity] = true
		cases = append(cases, jen.Case(jen.Lit(arity)).Block(createBody(tm, c)...))
	}

	fail := jen.Return(jen.Nil(), jen.Qual("fmt", "Errorf").Call(
		jen.Lit(tm.Name+" has no constructor taking %d arguments"), jen.Len(jen.Id("args")),
	))

	f.Comment("Create" + tm.Name + "Instance constructs an instance by argument count.")
	fn := f.Func().Id("Create" + tm.Name + "Instance")
	if tm.Generic() {
		fn = fn.Types(typeParamsDecl(tm)...)
	}
	fn = fn.Params(jen.Id("args").Op("...").Id("any")).
		Params(recvType(tm), jen.Id("error"))
	if len(cases) == 0 {
		fn.Block(fail)
		return
	}
	fn.Block(
		jen.Switch(jen.Len(jen.Id("args"))).Block(cases...),
		fail,
	)
}

// createBody is constructorBody specialized to the typed (*T, error) result
// of the convenience function.
func createBody(tm model.TypeModel, c model.ConstructorModel) []jen.Code {
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
