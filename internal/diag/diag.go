// Package diag defines the diagnostic values emitted by extraction and the
// accumulation algebra that merges independent extractor results.
package diag

import (
	"fmt"
	"go/token"
)

// Severity of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	}
	return "unknown"
}

// Stable diagnostic codes. Errors abort generation for the type; warnings
// narrow the extracted model and generation proceeds.
const (
	CodeInvalidTarget = "MG0001" // directive on something other than a struct declaration
	CodeNotExtendable = "MG0002" // a declaration-chain level cannot receive a companion file
	CodeIndexer       = "MG1001" // parameterized accessor pair, skipped
	CodeGenericMethod = "MG1002" // type-parameterized function, skipped
)

// Diagnostic is one reportable finding anchored to a source position.
type Diagnostic struct {
	Code     string
	Severity Severity
	Message  string
	Pos      token.Position
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s %s: %s", d.Pos, d.Severity, d.Code, d.Message)
}

// Errorf builds an error-severity diagnostic.
func Errorf(code string, pos token.Position, format string, args ...any) Diagnostic {
	return Diagnostic{Code: code, Severity: SeverityError, Message: fmt.Sprintf(format, args...), Pos: pos}
}

// Warnf builds a warning-severity diagnostic.
func Warnf(code string, pos token.Position, format string, args ...any) Diagnostic {
	return Diagnostic{Code: code, Severity: SeverityWarning, Message: fmt.Sprintf(format, args...), Pos: pos}
}
