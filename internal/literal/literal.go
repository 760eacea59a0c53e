// Package literal turns resolved constant values into Go source literal text.
// It is total: unsupported value categories report ok=false and callers omit
// the constant rather than treating it as an error.
package literal

import (
	"fmt"
	"go/constant"
	"go/types"
	"strconv"
)

// Format renders val, declared as typ, into literal source text. Named
// integral types render as a cast of the underlying value (Color(2)),
// qualified through qual relative to the emitting package. Sized numeric
// kinds render as conversions so the literal keeps its declared width;
// plain int, float64 and untyped values render bare.
func Format(val constant.Value, typ types.Type, qual types.Qualifier) (string, bool) {
	if val == nil {
		return "", false
	}
	if val.Kind() == constant.Unknown {
		return "", false
	}

	typ = types.Unalias(typ)
	if named, ok := typ.(*types.Named); ok {
		under, ok := named.Underlying().(*types.Basic)
		if !ok {
			return "", false
		}
		inner, ok := formatBasic(val, under)
		if !ok {
			return "", false
		}
		return fmt.Sprintf("%s(%s)", types.TypeString(named, qual), inner), true
	}

	basic, ok := typ.(*types.Basic)
	if !ok {
		if val.Kind() == constant.Bool || val.Kind() == constant.String {
			return formatBasic(val, types.Typ[types.UntypedBool])
		}
		return "", false
	}
	return wrapBasic(val, basic)
}

// wrapBasic renders a basic-typed constant, adding a conversion for kinds
// whose default literal type would lose the declared width or signedness.
func wrapBasic(val constant.Value, b *types.Basic) (string, bool) {
	inner, ok := formatBasic(val, b)
	if !ok {
		return "", false
	}
	switch b.Kind() {
	case types.Int8, types.Int16, types.Int32, types.Int64,
		types.Uint, types.Uint8, types.Uint16, types.Uint32, types.Uint64, types.Uintptr,
		types.Float32:
		// rune literals already carry their type
		if b.Name() == "rune" {
			return inner, true
		}
		return fmt.Sprintf("%s(%s)", b.Name(), inner), true
	default:
		return inner, true
	}
}

func formatBasic(val constant.Value, b *types.Basic) (string, bool) {
	switch val.Kind() {
	case constant.Bool:
		return strconv.FormatBool(constant.BoolVal(val)), true
	case constant.String:
		return strconv.Quote(constant.StringVal(val)), true
	case constant.Int:
		if b.Name() == "rune" || b.Kind() == types.UntypedRune {
			if r, ok := constant.Int64Val(val); ok {
				return strconv.QuoteRune(rune(r)), true
			}
		}
		if b.Info()&types.IsUnsigned != 0 {
			if u, ok := constant.Uint64Val(val); ok {
				return strconv.FormatUint(u, 10), true
			}
			return "", false
		}
		if i, ok := constant.Int64Val(val); ok {
			return strconv.FormatInt(i, 10), true
		}
		return "", false
	case constant.Float:
		f, _ := constant.Float64Val(val)
		if b.Kind() == types.Float32 {
			return strconv.FormatFloat(f, 'g', -1, 32), true
		}
		return strconv.FormatFloat(f, 'g', -1, 64), true
	default:
		// complex and unknown values have no literal form here
		return "", false
	}
}
