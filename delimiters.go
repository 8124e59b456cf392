package edifact

import (
	"bytes"
)

// Delimiters is the five-byte delimiter set declared (or defaulted) for one
// interchange. Immutable for the lifetime of that interchange (spec.md §3).
type Delimiters struct {
	ComponentSeparator byte
	ElementSeparator   byte
	DecimalNotation    byte
	ReleaseCharacter   byte
	SegmentTerminator  byte
	// Reserved is carried only to reproduce UNA on output; defaults to space.
	Reserved byte
}

// DefaultDelimiters is the ISO 9735 reference profile (UNOA) delimiter set.
func DefaultDelimiters() Delimiters {
	return Delimiters{
		ComponentSeparator: ':',
		ElementSeparator:   '+',
		DecimalNotation:    '.',
		ReleaseCharacter:   '?',
		SegmentTerminator:  '\'',
		Reserved:           ' ',
	}
}

// Distinct reports whether the five significant delimiter bytes are pairwise
// distinct, a precondition required on output (spec.md §3) but not enforced
// on input.
func (d Delimiters) Distinct() bool {
	seen := map[byte]bool{}
	for _, b := range [...]byte{d.ComponentSeparator, d.ElementSeparator, d.DecimalNotation, d.ReleaseCharacter, d.SegmentTerminator} {
		if seen[b] {
			return false
		}
		seen[b] = true
	}
	return true
}

// special reports whether b is one of the four bytes that must be escaped
// on output or honored as an escape target on input.
func (d Delimiters) special(b byte) bool {
	return b == d.ComponentSeparator || b == d.ElementSeparator || b == d.SegmentTerminator || b == d.ReleaseCharacter
}

// HasUNA reports whether the first non-whitespace bytes of input are the
// literal service segment tag "UNA".
func HasUNA(input []byte) bool {
	trimmed := skipLeadingLayout(input)
	return len(trimmed) >= 3 && trimmed[0] == 'U' && trimmed[1] == 'N' && trimmed[2] == 'A'
}

func skipLeadingLayout(input []byte) []byte {
	i := 0
	for i < len(input) && (input[i] == '\r' || input[i] == '\n' || input[i] == ' ' || input[i] == '\t') {
		i++
	}
	return input[i:]
}

// ExtractDelimiters reads the UNA service string advice, if present, or
// falls back to DefaultDelimiters. Returns the number of bytes consumed by
// the UNA segment (0 if absent) along with the delimiters and diagnostics.
func ExtractDelimiters(input []byte) (Delimiters, int, Diagnostics) {
	if !HasUNA(input) {
		return DefaultDelimiters(), 0, nil
	}

	trimmed := skipLeadingLayout(input)
	consumedLayout := len(input) - len(trimmed)

	// UNA + six positional bytes = 9 bytes total.
	if len(trimmed) < 9 {
		return DefaultDelimiters(), 0, Diagnostics{{
			Code:     CodeUNATooShort,
			Message:  "UNA service string advice requires 9 bytes (tag + 6 delimiter positions)",
			Position: Position{Line: 1, Column: 1, Offset: 0},
		}}
	}

	d := Delimiters{
		ComponentSeparator: trimmed[3],
		ElementSeparator:   trimmed[4],
		DecimalNotation:    trimmed[5],
		ReleaseCharacter:   trimmed[6],
		Reserved:           trimmed[7],
		SegmentTerminator:  trimmed[8],
	}
	return d, consumedLayout + 9, nil
}

// Escape prefixes every occurrence of the four special bytes (component
// separator, element separator, segment terminator, release character) in
// value with the release byte, per spec.md §4.1.
func Escape(value string, d Delimiters) string {
	if value == "" {
		return value
	}
	var b bytes.Buffer
	b.Grow(len(value))
	for i := 0; i < len(value); i++ {
		c := value[i]
		if d.special(c) {
			b.WriteByte(d.ReleaseCharacter)
		}
		b.WriteByte(c)
	}
	return b.String()
}

// Unescape is the inverse of Escape: an occurrence of the release byte
// immediately before any delimiter byte, or before the release byte itself,
// is interpreted literally, and the release byte is discarded. A dangling
// release byte at the end of input is tolerated as a literal (spec.md §4.1).
func Unescape(value string, d Delimiters) string {
	if value == "" {
		return value
	}
	var b bytes.Buffer
	b.Grow(len(value))
	for i := 0; i < len(value); i++ {
		c := value[i]
		if c == d.ReleaseCharacter && i+1 < len(value) {
			next := value[i+1]
			if d.special(next) {
				b.WriteByte(next)
				i++
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}
