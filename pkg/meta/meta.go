// Package meta defines the descriptor values instantiated by generated
// companion files. It ships into user binaries, imports nothing reflective,
// and every accessor is a directly-compiled function literal baked in at
// generation time.
package meta

// Getter reads a member from a receiver.
type Getter func(recv any) any

// Setter writes a member on a receiver.
type Setter func(recv, value any)

// Invoker calls a method with positionally-typed arguments and returns its
// results; nil for a void method.
type Invoker func(recv any, args []any) []any

// Factory constructs a new instance from positionally-typed arguments.
type Factory func(args []any) (any, error)

// Property is one accessor-pair descriptor. Get is nil for a write-only
// property, Set for a read-only one.
type Property struct {
	Name      string
	Type      string
	Nullable  bool
	HasGetter bool
	HasSetter bool
	Get       Getter
	Set       Setter
}

// Field is one field or associated-constant descriptor. For constants the
// getter returns the literal that was baked in at generation time.
type Field struct {
	Name     string
	Type     string
	Static   bool
	ReadOnly bool
	Const    bool
	Get      Getter
	Set      Setter
}

// Method is one invokable-method descriptor.
type Method struct {
	Name      string
	NumParams int
	Variadic  bool
	Static    bool
	Async     bool
	Void      bool
	Invoke    Invoker
}

// Constructor is one factory descriptor, keyed by fixed-parameter count.
type Constructor struct {
	Name      string
	NumParams int
	Variadic  bool
	New       Factory
}

// Type is the static metadata value generated once per annotated type.
type Type struct {
	Name         string
	Package      string
	Base         string
	Interfaces   []string
	Properties   []Property
	Methods      []Method
	Fields       []Field
	Constructors []Constructor
}

// Property finds a property descriptor by name.
func (t Type) Property(name string) (Property, bool) {
	for _, p := range t.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// Field finds a field descriptor by name.
func (t Type) Field(name string) (Field, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Method finds the first method descriptor with the given name.
func (t Type) Method(name string) (Method, bool) {
	for _, m := range t.Methods {
		if m.Name == name {
			return m, true
		}
	}
	return Method{}, false
}

// Constructor finds the first constructor accepting n fixed arguments.
func (t Type) Constructor(n int) (Constructor, bool) {
	for _, c := range t.Constructors {
		if c.NumParams == n {
			return c, true
		}
	}
	return Constructor{}, false
}
