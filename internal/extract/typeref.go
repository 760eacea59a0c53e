package extract

import (
	"go/types"
	"path"
	"sort"

	"github.com/cmmoran/metagen/internal/model"
)

// refOf copies a go/types type into an owned model.TypeRef tree. Exotic
// shapes (arrays, structs, non-empty interfaces, signatures, instantiated
// generics) degrade to RefOther carrying the rendering relative to the
// annotated type's package.
func refOf(t types.Type, s *Source) model.TypeRef {
	t = types.Unalias(t)
	switch tt := t.(type) {
	case *types.Basic:
		return model.TypeRef{Kind: model.RefBasic, Name: tt.Name()}
	case *types.Pointer:
		elem := refOf(tt.Elem(), s)
		return model.TypeRef{Kind: model.RefPointer, Elem: &elem}
	case *types.Slice:
		elem := refOf(tt.Elem(), s)
		return model.TypeRef{Kind: model.RefSlice, Elem: &elem}
	case *types.Map:
		key := refOf(tt.Key(), s)
		elem := refOf(tt.Elem(), s)
		return model.TypeRef{Kind: model.RefMap, Key: &key, Elem: &elem}
	case *types.Chan:
		elem := refOf(tt.Elem(), s)
		return model.TypeRef{
			Kind:     model.RefChan,
			Elem:     &elem,
			RecvOnly: tt.Dir() == types.RecvOnly,
			SendOnly: tt.Dir() == types.SendOnly,
		}
	case *types.Named:
		if tt.TypeArgs().Len() > 0 {
			return rawRef(t, s)
		}
		obj := tt.Obj()
		pkgPath := ""
		if obj.Pkg() != nil {
			pkgPath = obj.Pkg().Path()
		}
		return model.TypeRef{Kind: model.RefNamed, Name: obj.Name(), PkgPath: pkgPath}
	case *types.Interface:
		if tt.Empty() {
			return model.TypeRef{Kind: model.RefBasic, Name: "any"}
		}
		return rawRef(t, s)
	case *types.TypeParam:
		return model.TypeRef{Kind: model.RefBasic, Name: tt.Obj().Name()}
	default:
		return rawRef(t, s)
	}
}

func rawRef(t types.Type, s *Source) model.TypeRef {
	return model.TypeRef{Kind: model.RefOther, Raw: types.TypeString(t, s.Qualifier())}
}

// collectImports gathers the external package paths referenced by every
// member TypeRef into a sorted Import list. Local and builtin references
// contribute nothing.
func collectImports(tm *model.TypeModel) {
	seen := map[string]bool{}
	var walk func(r model.TypeRef)
	walk = func(r model.TypeRef) {
		if r.Kind == model.RefNamed && r.PkgPath != "" && r.PkgPath != tm.PkgPath {
			seen[r.PkgPath] = true
		}
		if r.Key != nil {
			walk(*r.Key)
		}
		if r.Elem != nil {
			walk(*r.Elem)
		}
	}
	for _, p := range tm.Properties {
		walk(p.Type)
	}
	for _, f := range tm.Fields {
		walk(f.Type)
	}
	for _, m := range tm.Methods {
		for _, p := range m.Params {
			walk(p.Type)
		}
		for _, r := range m.Results {
			walk(r)
		}
	}
	for _, c := range tm.Constructors {
		for _, p := range c.Params {
			walk(p.Type)
		}
	}

	paths := make([]string, 0, len(seen))
	for p := range seen {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		tm.Imports = append(tm.Imports, model.Import{Path: p, Name: path.Base(p)})
	}
}
