package extract

import (
	"go/types"
	"sort"
	"strings"

	"github.com/cmmoran/metagen/internal/model"
)

// accessorPair is one property candidate: a getter (`X() T` or `GetX() T`)
// and/or a setter (`SetX(T)`). Classification is a pure function of the
// method list, so the property and method extractors derive identical sets
// without observing each other.
type accessorPair struct {
	base   string
	getter *types.Func
	setter *types.Func
}

// indexer reports a parameterized accessor pair, the unsupported
// indexer-property shape.
func (p accessorPair) indexer() bool {
	if p.getter != nil && signatureOf(p.getter).Params().Len() > 0 {
		return true
	}
	if p.setter != nil && signatureOf(p.setter).Params().Len() > 1 {
		return true
	}
	return false
}

func (p accessorPair) propType() types.Type {
	if p.getter != nil {
		return signatureOf(p.getter).Results().At(0).Type()
	}
	params := signatureOf(p.setter).Params()
	return params.At(params.Len() - 1).Type()
}

func signatureOf(f *types.Func) *types.Signature {
	return f.Type().(*types.Signature)
}

// methodsOf returns the candidate method list, sorted by name for pass-stable
// ordering: the declared set by default, the full promoted set when inherited
// members are requested. Methods declared in a previously generated companion
// file are dropped here, before any classification sees them.
func methodsOf(s *Source, opts model.Options) []*types.Func {
	var fns []*types.Func
	if opts.Inherited {
		ms := types.NewMethodSet(types.NewPointer(s.Named))
		for i := 0; i < ms.Len(); i++ {
			if f, ok := ms.At(i).Obj().(*types.Func); ok {
				fns = append(fns, f)
			}
		}
	} else {
		for i := 0; i < s.Named.NumMethods(); i++ {
			fns = append(fns, s.Named.Method(i))
		}
	}

	out := fns[:0]
	for _, f := range fns {
		if s.generated(f.Pos()) {
			continue
		}
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// classifyAccessors pairs getters with setters over the method list. A bare
// no-argument method without a Set counterpart stays a method; a Get-prefixed
// getter counts as a read-only property on its own.
func classifyAccessors(fns []*types.Func) []accessorPair {
	byName := make(map[string]*types.Func, len(fns))
	for _, f := range fns {
		byName[f.Name()] = f
	}

	bases := map[string]bool{}
	for _, f := range fns {
		name := f.Name()
		sig := signatureOf(f)
		if rest, ok := strings.CutPrefix(name, "Set"); ok && upperStart(rest) &&
			sig.Results().Len() == 0 && sig.Params().Len() >= 1 {
			bases[rest] = true
		}
		if rest, ok := strings.CutPrefix(name, "Get"); ok && upperStart(rest) &&
			sig.Results().Len() == 1 {
			bases[rest] = true
		}
	}

	ordered := make([]string, 0, len(bases))
	for b := range bases {
		ordered = append(ordered, b)
	}
	sort.Strings(ordered)

	pairs := make([]accessorPair, 0, len(ordered))
	for _, base := range ordered {
		pair := accessorPair{base: base}
		if f, ok := byName["Set"+base]; ok {
			if sig := signatureOf(f); sig.Results().Len() == 0 && sig.Params().Len() >= 1 {
				pair.setter = f
			}
		}
		if f, ok := byName[base]; ok && pair.setter != nil {
			if sig := signatureOf(f); sig.Results().Len() == 1 {
				pair.getter = f
			}
		}
		if pair.getter == nil {
			if f, ok := byName["Get"+base]; ok {
				if sig := signatureOf(f); sig.Results().Len() == 1 {
					pair.getter = f
				}
			}
		}
		if pair.getter == nil && pair.setter == nil {
			continue
		}
		pairs = append(pairs, pair)
	}
	return pairs
}

// accessorNames is the set of method names consumed by property
// classification; the method extractor silently skips them.
func accessorNames(pairs []accessorPair) map[string]bool {
	names := make(map[string]bool, len(pairs)*2)
	for _, p := range pairs {
		if p.getter != nil {
			names[p.getter.Name()] = true
		}
		if p.setter != nil {
			names[p.setter.Name()] = true
		}
	}
	return names
}
