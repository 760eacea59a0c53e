package diag

// Result is the accumulation type over which independent extractors are
// merged: either Ok with zero or more warnings, or Fail with one or more
// errors. Combining two Ok results unions their warnings in order; combining
// a Fail with anything yields Fail with all diagnostics merged. A successful
// result can carry warnings and still flow to downstream stages.
type Result[T any] struct {
	value  T
	failed bool
	diags  []Diagnostic
}

// Ok wraps a value, optionally carrying warnings.
func Ok[T any](v T, warnings ...Diagnostic) Result[T] {
	return Result[T]{value: v, diags: warnings}
}

// Fail produces a failed result. At least one diagnostic is expected.
func Fail[T any](errs ...Diagnostic) Result[T] {
	return Result[T]{failed: true, diags: errs}
}

// OK reports whether the result carries a value.
func (r Result[T]) OK() bool { return !r.failed }

// Value returns the carried value; for a failed result it is the zero value.
func (r Result[T]) Value() T { return r.value }

// Diagnostics returns all accumulated diagnostics in emission order.
func (r Result[T]) Diagnostics() []Diagnostic { return r.diags }

// Errors returns only the error-severity diagnostics.
func (r Result[T]) Errors() []Diagnostic {
	var out []Diagnostic
	for _, d := range r.diags {
		if d.Severity == SeverityError {
			out = append(out, d)
		}
	}
	return out
}

// Map transforms the value of an Ok result, preserving warnings. A failed
// result passes through unchanged.
func Map[A, B any](r Result[A], fn func(A) B) Result[B] {
	if r.failed {
		return Result[B]{failed: true, diags: r.diags}
	}
	return Result[B]{value: fn(r.value), diags: r.diags}
}

// Map2 combines two independent results. Diagnostics are merged a-then-b
// regardless of outcome; fn runs only when both are Ok.
func Map2[A, B, C any](a Result[A], b Result[B], fn func(A, B) C) Result[C] {
	merged := make([]Diagnostic, 0, len(a.diags)+len(b.diags))
	merged = append(merged, a.diags...)
	merged = append(merged, b.diags...)
	if a.failed || b.failed {
		return Result[C]{failed: true, diags: merged}
	}
	return Result[C]{value: fn(a.value, b.value), diags: merged}
}
