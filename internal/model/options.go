package model

// Options is the resolved per-type configuration carried on the directive.
// It is immutable once resolved; an empty directive resolves to exactly
// DefaultOptions().
type Options struct {
	Properties   bool
	Methods      bool
	Fields       bool
	Constructors bool
	Inherited    bool
	Private      bool
}

// DefaultOptions returns the documented defaults: properties, methods and
// constructors in; fields, inherited and private members out.
func DefaultOptions() Options {
	return Options{
		Properties:   true,
		Methods:      true,
		Constructors: true,
	}
}
