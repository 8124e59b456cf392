package edifact

// RawSegment is one tokenized segment: an identifier and its ordered,
// component-decomposed elements, still carrying its source Position for
// diagnostics (spec.md §4.1). Elements are already unescaped.
type RawSegment struct {
	Tag      string
	Elements [][]string
	Position Position
}

// Element returns the n-th element's components, or nil if absent. Trailing
// empty elements are elided by the generator but the parser must preserve
// "element absent" vs "present but empty" up to this point, so callers
// distinguish the two by checking n against len(Elements).
func (s RawSegment) Element(n int) []string {
	if n < 0 || n >= len(s.Elements) {
		return nil
	}
	return s.Elements[n]
}

// Value returns component 0 of element n, or "" if either is absent. This is
// the common case of a simple (non-composite) data element.
func (s RawSegment) Value(n int) string {
	e := s.Element(n)
	if len(e) == 0 {
		return ""
	}
	return e[0]
}

// Component returns component c of element n, or "" if absent.
func (s RawSegment) Component(n, c int) string {
	e := s.Element(n)
	if c < 0 || c >= len(e) {
		return ""
	}
	return e[c]
}

// Tokenize splits input into a RawSegment stream. If delimiters is nil the
// delimiter set is auto-detected from a leading UNA (or defaulted).
// Tokenize never returns a fatal error except UNA_TOO_SHORT; structurally
// malformed escapes are tolerated (spec.md §4.1).
func Tokenize(input []byte, delimiters *Delimiters) ([]RawSegment, Diagnostics) {
	var d Delimiters
	var consumed int
	var diags Diagnostics

	if delimiters != nil {
		d = *delimiters
		if HasUNA(input) {
			_, consumed, diags = ExtractDelimiters(input)
			if diags.HasCode(CodeUNATooShort) {
				return nil, diags
			}
		}
	} else {
		d, consumed, diags = ExtractDelimiters(input)
		if diags.HasCode(CodeUNATooShort) {
			return nil, diags
		}
	}

	remainder := input[consumed:]
	rawSegments, positions := splitSegments(remainder, d, consumed)

	segments := make([]RawSegment, 0, len(rawSegments))
	for i, raw := range rawSegments {
		seg := buildSegment(raw, d, positions[i])
		if seg.Tag == "" {
			continue
		}
		segments = append(segments, seg)
	}
	return segments, diags
}

// splitSegments performs the escape-aware segment split on segmentTerminator,
// tolerating interleaved CR/LF adjacent to terminators (spec.md §4.1, §6).
func splitSegments(data []byte, d Delimiters, baseOffset int) ([][]byte, []Position) {
	var segments [][]byte
	var positions []Position

	line, col, offset := 1, baseOffset+1, baseOffset
	segStart := 0
	segStartPos := Position{Line: line, Column: col, Offset: offset}

	flush := func(end int) {
		raw := trimLayout(data[segStart:end])
		if len(raw) > 0 {
			segments = append(segments, raw)
			positions = append(positions, segStartPos)
		}
	}

	i := 0
	for i < len(data) {
		c := data[i]
		if c == d.ReleaseCharacter && i+1 < len(data) && isSpecial(d, data[i+1]) {
			// escaped delimiter: advance past both bytes without splitting.
			advance(&i, &line, &col, &offset, data, 2)
			continue
		}
		if c == d.SegmentTerminator {
			flush(i)
			advance(&i, &line, &col, &offset, data, 1)
			// skip layout CR/LF immediately following the terminator
			for i < len(data) && (data[i] == '\r' || data[i] == '\n') {
				advance(&i, &line, &col, &offset, data, 1)
			}
			segStart = i
			segStartPos = Position{Line: line, Column: col, Offset: offset}
			continue
		}
		advance(&i, &line, &col, &offset, data, 1)
	}
	if segStart < len(data) {
		flush(len(data))
	}
	return segments, positions
}

func advance(i, line, col, offset *int, data []byte, n int) {
	for k := 0; k < n && *i < len(data); k++ {
		if data[*i] == '\n' {
			*line++
			*col = 1
		} else {
			*col++
		}
		*offset++
		*i++
	}
}

func trimLayout(b []byte) []byte {
	start, end := 0, len(b)
	for start < end && (b[start] == '\r' || b[start] == '\n') {
		start++
	}
	for end > start && (b[end-1] == '\r' || b[end-1] == '\n') {
		end--
	}
	return b[start:end]
}

func isSpecial(d Delimiters, b byte) bool {
	return d.special(b)
}

// buildSegment performs the element and component split passes for one raw
// segment (spec.md §4.1 steps 2-3).
func buildSegment(raw []byte, d Delimiters, pos Position) RawSegment {
	rawElements := splitEscaped(raw, d.ElementSeparator, d)
	if len(rawElements) == 0 {
		return RawSegment{Position: pos}
	}

	first := rawElements[0]
	tag := first
	var leadingExcess string
	if len(first) > 3 {
		tag = first[:3]
		leadingExcess = first[3:]
	}

	var body [][]byte
	if leadingExcess != "" {
		body = append(body, []byte(leadingExcess))
	}
	body = append(body, rawElements[1:]...)

	elements := make([][]string, 0, len(body))
	for _, rawElem := range body {
		comps := splitEscaped(rawElem, d.ComponentSeparator, d)
		values := make([]string, len(comps))
		for i, c := range comps {
			values[i] = Unescape(string(c), d)
		}
		elements = append(elements, values)
	}

	return RawSegment{Tag: string(Unescape(tag, d)), Elements: elements, Position: pos}
}

// splitEscaped splits data on sep. An occurrence of sep is only a split
// point when it is not the byte immediately following a release byte (i.e.
// not escaped). Any release+special pair is skipped as a unit.
func splitEscaped(data []byte, sep byte, d Delimiters) [][]byte {
	var parts [][]byte
	start := 0
	i := 0
	for i < len(data) {
		c := data[i]
		if c == d.ReleaseCharacter && i+1 < len(data) && isSpecial(d, data[i+1]) {
			i += 2
			continue
		}
		if c == sep {
			parts = append(parts, data[start:i])
			i++
			start = i
			continue
		}
		i++
	}
	parts = append(parts, data[start:])
	return parts
}
