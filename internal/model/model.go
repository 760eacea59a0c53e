// Package model holds the value types produced by extraction. Every type here
// is a plain value: strings, bools, slices and TypeRef trees. Nothing retains
// a go/ast or go/types handle, which is what allows repeated extraction of
// unchanged source to compare equal and lets the host pipeline cache models
// across passes.
package model

// Visibility tokens attached to extracted members.
const (
	VisibilityExported   = "exported"
	VisibilityUnexported = "unexported"
)

// Import is one package referenced by a member's type, as collected during
// extraction. Paths are sorted before being stored on a TypeModel.
type Import struct {
	Path string
	Name string
}

// TypeParam is one type parameter of a generic annotated type, with its
// constraint rendered relative to the type's own package.
type TypeParam struct {
	Name       string
	Constraint string
}

// TypeDeclarationModel is one level of the declaration chain, ordered
// outer-to-inner. For a package-level type the chain has a single entry; a
// type declared inside a function grows one (failing) entry per enclosing
// function level.
type TypeDeclarationModel struct {
	Name       string
	Keyword    string // "struct", "alias", or "func" for an enclosing function level
	Modifiers  string // visibility token of the declaration
	TypeParams string // rendered clause text, e.g. "[T any]"
}

// ParameterModel describes one parameter of a method or constructor. A
// variadic final parameter is the language's optional-argument mechanism and
// is modeled as having a nil default.
type ParameterModel struct {
	Name           string
	Type           TypeRef
	Nullable       bool
	Variadic       bool
	HasDefault     bool
	DefaultLiteral string
}

// PropertyModel describes one accessor pair. GetterName and SetterName carry
// the actual method names so emission never has to re-derive them.
type PropertyModel struct {
	Name           string
	Type           TypeRef
	ContainingType string
	Static         bool
	Nullable       bool
	HasGetter      bool
	HasSetter      bool
	GetterName     string
	SetterName     string
	Visibility     string
}

// FieldModel describes a struct field or a package-level constant associated
// with the type. For constants the literal text is precomputed at extraction
// time so emission never touches the program representation.
type FieldModel struct {
	Name           string
	Type           TypeRef
	ContainingType string
	Static         bool
	Nullable       bool
	ReadOnly       bool
	Const          bool
	ConstLiteral   string
	Visibility     string
}

// MethodModel describes one invokable method. Extension methods are
// package-level functions whose first parameter is the receiver; for those
// Params excludes the receiver parameter and PointerRecv records whether it
// was declared *T or T.
type MethodModel struct {
	Name           string
	ReturnType     TypeRef // zero value when Void
	Results        []TypeRef
	ContainingType string
	Params         []ParameterModel
	Static         bool
	Async          bool
	Extension      bool
	Generic        bool
	Void           bool
	PointerRecv    bool
	Visibility     string
}

// Arity is the identity key component shared with ConstructorModel; two
// methods may share Name+Arity, ambiguity is kept rather than resolved.
// Arity is the number of arguments dispatch passes: the variadic tail is
// always omitted.
func (m MethodModel) Arity() int {
	n := len(m.Params)
	if n > 0 && m.Params[n-1].Variadic {
		n--
	}
	return n
}

// ConstructorModel describes one New<Type> factory function.
type ConstructorModel struct {
	Name           string
	ContainingType string
	Params         []ParameterModel
	ReturnsPointer bool
	ReturnsError   bool
	Visibility     string
}

// FixedArity is the number of non-variadic parameters, the dispatch key for
// instance creation.
func (c ConstructorModel) FixedArity() int {
	n := len(c.Params)
	if n > 0 && c.Params[n-1].Variadic {
		n--
	}
	return n
}

// TypeModel is the complete extracted description of one annotated type.
type TypeModel struct {
	Name          string
	QualifiedName string
	PkgPath       string
	PkgName       string
	Visibility    string
	BaseType      string
	Interfaces    []string
	Declarations  []TypeDeclarationModel
	TypeParams    []TypeParam
	Properties    []PropertyModel
	Methods       []MethodModel
	Fields        []FieldModel
	Constructors  []ConstructorModel
	Imports       []Import
	Options       Options
}

// Generic reports whether the annotated type itself carries type parameters.
func (t TypeModel) Generic() bool { return len(t.TypeParams) > 0 }
