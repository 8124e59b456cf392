package edifact

import (
	"fmt"
	"strings"
)

// Severity classifies a Diagnostic as fatal to parsing or merely advisory.
type Severity int

const (
	// SeverityError marks a diagnostic that made the surrounding parse fail.
	SeverityError Severity = iota
	// SeverityWarning marks a diagnostic that was tolerated.
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Code enumerates the diagnostic codes named in the error-handling taxonomy.
type Code string

// Structural errors, fatal to parse (spec.md §7).
const (
	CodeEmptyInput        Code = "EMPTY_INPUT"
	CodeInvalidUNB        Code = "INVALID_UNB"
	CodeMissingUNZ        Code = "MISSING_UNZ"
	CodeMissingUNE        Code = "MISSING_UNE"
	CodeMissingUNT        Code = "MISSING_UNT"
	CodeUNATooShort       Code = "UNA_TOO_SHORT"
	CodeUNBElementCount   Code = "UNB_ELEMENT_COUNT"
	CodeUNZElementCount   Code = "UNZ_ELEMENT_COUNT"
	CodeUNGElementCount   Code = "UNG_ELEMENT_COUNT"
	CodeUNEElementCount   Code = "UNE_ELEMENT_COUNT"
	CodeUNHElementCount   Code = "UNH_ELEMENT_COUNT"
	CodeUNTElementCount   Code = "UNT_ELEMENT_COUNT"
)

// Reference/count mismatches, warnings (spec.md §7).
const (
	CodeControlReferenceMismatch Code = "CONTROL_REFERENCE_MISMATCH"
	CodeMessageCountMismatch     Code = "MESSAGE_COUNT_MISMATCH"
	CodeSegmentCountMismatch     Code = "SEGMENT_COUNT_MISMATCH"
	CodeUNEReferenceMismatch     Code = "UNE_REFERENCE_MISMATCH"
	CodeUNTReferenceMismatch     Code = "UNT_REFERENCE_MISMATCH"
	CodeCountMismatch            Code = "COUNT_MISMATCH"
)

// Semantic validation codes, severity varies (spec.md §4.4, §7). Reference
// mismatches reuse CodeUNTReferenceMismatch/CodeUNEReferenceMismatch above.
const (
	CodeUNBSenderRequired           Code = "UNB_SENDER_REQUIRED"
	CodeUNBRecipientRequired        Code = "UNB_RECIPIENT_REQUIRED"
	CodeUNZControlReferenceMismatch Code = "UNZ_CONTROL_REFERENCE_MISMATCH"
	CodeUNZCountMismatch            Code = "UNZ_COUNT_MISMATCH"
	CodeInvalidSegmentID            Code = "INVALID_SEGMENT_ID"
	CodeUnsupportedSyntaxVersion    Code = "UNSUPPORTED_SYNTAX_VERSION"
)

// Generator structural-precondition codes (spec.md §5, §7): the generator
// checks these eagerly and refuses to emit partial output.
const (
	CodeDelimitersNotDistinct Code = "DELIMITERS_NOT_DISTINCT"
	CodeUNHReferenceRequired  Code = "UNH_REFERENCE_REQUIRED"
)

// Position locates a diagnostic in the raw input stream.
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d (offset %d)", p.Line, p.Column, p.Offset)
}

// Diagnostic is a single structural or semantic finding, always carrying a
// code, a human message, a position, an optional segment id, and a severity.
// Diagnostics are accumulated, never thrown (spec.md §7).
type Diagnostic struct {
	Code      Code
	Message   string
	Position  Position
	SegmentID string
	Severity  Severity
}

func (d Diagnostic) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s: %s", d.Severity, d.Code, d.Message)
	if d.SegmentID != "" {
		fmt.Fprintf(&b, " (segment %s)", d.SegmentID)
	}
	fmt.Fprintf(&b, " at %s", d.Position)
	return b.String()
}

// Diagnostics is an accumulated, severity-tagged list, grounded on the
// teacher's ValidationError accumulation in validation.go/check.go but
// generalized from "business rule violation" to "parse or validate finding".
type Diagnostics []Diagnostic

// Errors returns only the SeverityError entries.
func (d Diagnostics) Errors() Diagnostics {
	return d.filter(SeverityError)
}

// Warnings returns only the SeverityWarning entries.
func (d Diagnostics) Warnings() Diagnostics {
	return d.filter(SeverityWarning)
}

func (d Diagnostics) filter(sev Severity) Diagnostics {
	var out Diagnostics
	for _, diag := range d {
		if diag.Severity == sev {
			out = append(out, diag)
		}
	}
	return out
}

// HasCode reports whether any diagnostic carries the given code.
func (d Diagnostics) HasCode(code Code) bool {
	for _, diag := range d {
		if diag.Code == code {
			return true
		}
	}
	return false
}

// Format renders the diagnostic list as a multi-line human-readable report,
// grounded on the teacher's ValidationError.Error() summarization style.
func (d Diagnostics) Format() string {
	if len(d) == 0 {
		return "no diagnostics"
	}
	var b strings.Builder
	for i, diag := range d {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(diag.String())
	}
	return b.String()
}

// ValidationError aggregates Diagnostics of SeverityError into a single Go
// error value, grounded on the teacher's *ValidationError in validation.go.
// It is the single-error view returned by the generator's structural
// precondition check (envelope_generator.go) and by ValidateInterchange,
// the standalone validate entry point (validator.go).
type ValidationError struct {
	diagnostics Diagnostics
	sentinel    error
}

// NewValidationError wraps diagnostics as an error. Returns nil if there are
// no error-severity diagnostics.
func NewValidationError(diagnostics Diagnostics) *ValidationError {
	errs := diagnostics.Errors()
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{diagnostics: errs}
}

// Unwrap exposes the sentinel error this ValidationError was constructed
// with, if any, so callers can use errors.Is against a package sentinel
// (e.g. ErrInvariantViolation) without depending on the concrete type.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.sentinel
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e == nil || len(e.diagnostics) == 0 {
		return "validation failed with no diagnostics"
	}
	if len(e.diagnostics) == 1 {
		d := e.diagnostics[0]
		return fmt.Sprintf("validation failed: %s - %s", d.Code, d.Message)
	}
	return fmt.Sprintf("validation failed with %d diagnostics (first: %s - %s)",
		len(e.diagnostics), e.diagnostics[0].Code, e.diagnostics[0].Message)
}

// Diagnostics returns a copy of the wrapped diagnostics, preventing external
// mutation of the internal slice.
func (e *ValidationError) Diagnostics() Diagnostics {
	if e == nil {
		return nil
	}
	out := make(Diagnostics, len(e.diagnostics))
	copy(out, e.diagnostics)
	return out
}

// Count returns the number of wrapped diagnostics.
func (e *ValidationError) Count() int {
	if e == nil {
		return 0
	}
	return len(e.diagnostics)
}

// HasCode checks if a specific diagnostic code is present.
func (e *ValidationError) HasCode(code Code) bool {
	if e == nil {
		return false
	}
	return e.diagnostics.HasCode(code)
}
