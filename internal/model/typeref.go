package model

import "strings"

// RefKind is the coarse category of a TypeRef node.
type RefKind int

const (
	RefInvalid RefKind = iota
	RefBasic           // string, int, bool, ...
	RefNamed           // a defined type, possibly from another package
	RefPointer         // *T
	RefSlice           // []T
	RefMap             // map[K]V
	RefChan            // chan T / <-chan T
	RefOther           // anything else, kept as rendered text
)

// TypeRef is an owned, value-comparable description of a Go type, detached
// from go/types. Composite kinds link child nodes through Key/Elem; RefOther
// carries the type rendered relative to the annotated type's package.
type TypeRef struct {
	Kind     RefKind
	Name     string // basic name or defined type's simple name
	PkgPath  string // non-empty only for RefNamed from a named package
	Raw      string // RefOther rendering
	Key      *TypeRef
	Elem     *TypeRef
	RecvOnly bool // <-chan
	SendOnly bool // chan<-
}

// String renders the fully qualified form, suitable for descriptor text and
// diffing, not for compilation.
func (t TypeRef) String() string {
	switch t.Kind {
	case RefBasic:
		return t.Name
	case RefNamed:
		if t.PkgPath == "" {
			return t.Name
		}
		return t.PkgPath + "." + t.Name
	case RefPointer:
		return "*" + t.elemString()
	case RefSlice:
		return "[]" + t.elemString()
	case RefMap:
		k := ""
		if t.Key != nil {
			k = t.Key.String()
		}
		return "map[" + k + "]" + t.elemString()
	case RefChan:
		switch {
		case t.RecvOnly:
			return "<-chan " + t.elemString()
		case t.SendOnly:
			return "chan<- " + t.elemString()
		default:
			return "chan " + t.elemString()
		}
	case RefOther:
		return t.Raw
	}
	return ""
}

func (t TypeRef) elemString() string {
	if t.Elem == nil {
		return ""
	}
	return t.Elem.String()
}

// SimpleName is the unqualified leaf name, used for identity-key reporting.
func (t TypeRef) SimpleName() string {
	s := t.String()
	if i := strings.LastIndex(s, "."); i >= 0 {
		return s[i+1:]
	}
	return s
}
