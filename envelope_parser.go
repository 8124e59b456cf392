package edifact

import (
	"strconv"
	"strings"
)

// ParseResult is the outcome of Parse: a success flag, the interchange (if
// any structure could be recovered), and accumulated diagnostics. Parsing
// never throws (spec.md §4.2, §7).
type ParseResult struct {
	Success     bool
	Interchange *Interchange
	Errors      Diagnostics
	Warnings    Diagnostics
}

// Diagnostics returns errors and warnings concatenated, errors first.
func (r ParseResult) Diagnostics() Diagnostics {
	all := make(Diagnostics, 0, len(r.Errors)+len(r.Warnings))
	all = append(all, r.Errors...)
	all = append(all, r.Warnings...)
	return all
}

type parseState struct {
	tokens   []RawSegment
	errors   Diagnostics
	warnings Diagnostics
}

func (p *parseState) fail(code Code, msg string, pos Position, segID string) {
	p.errors = append(p.errors, Diagnostic{Code: code, Message: msg, Position: pos, SegmentID: segID, Severity: SeverityError})
}

func (p *parseState) warn(code Code, msg string, pos Position, segID string) {
	p.warnings = append(p.warnings, Diagnostic{Code: code, Message: msg, Position: pos, SegmentID: segID, Severity: SeverityWarning})
}

// Parse reconstructs the envelope tree from a raw EDIFACT document.
func Parse(input []byte) ParseResult {
	if len(strings.TrimSpace(string(input))) == 0 {
		return ParseResult{
			Errors: Diagnostics{{Code: CodeEmptyInput, Message: "input is empty or whitespace-only", Position: Position{Line: 1, Column: 1}, Severity: SeverityError}},
		}
	}

	delimiters, _, diags := ExtractDelimiters(input)
	if diags.HasCode(CodeUNATooShort) {
		return ParseResult{Errors: diags.Errors(), Warnings: diags.Warnings()}
	}

	tokens, lexDiags := Tokenize(input, &delimiters)
	p := &parseState{tokens: tokens}
	p.errors = append(p.errors, lexDiags.Errors()...)
	p.warnings = append(p.warnings, lexDiags.Warnings()...)

	if len(tokens) == 0 || tokens[0].Tag != "UNB" {
		pos := Position{Line: 1, Column: 1}
		if len(tokens) > 0 {
			pos = tokens[0].Position
		}
		p.fail(CodeInvalidUNB, "first segment must be UNB", pos, "")
		return ParseResult{Errors: p.errors, Warnings: p.warnings}
	}

	unbSeg := tokens[0]
	if len(unbSeg.Elements) < 4 {
		p.fail(CodeUNBElementCount, "UNB requires at least 4 data elements (S001-S004)", unbSeg.Position, "UNB")
		return ParseResult{Errors: p.errors, Warnings: p.warnings}
	}
	unb := parseUNB(unbSeg)

	unzIndex := -1
	for i := 1; i < len(tokens); i++ {
		if tokens[i].Tag == "UNZ" {
			unzIndex = i
		}
	}
	if unzIndex == -1 {
		p.fail(CodeMissingUNZ, "no UNZ trailer found", tokens[len(tokens)-1].Position, "")
		return ParseResult{Errors: p.errors, Warnings: p.warnings}
	}
	unzSeg := tokens[unzIndex]
	if len(unzSeg.Elements) < 2 {
		p.fail(CodeUNZElementCount, "UNZ requires 2 data elements", unzSeg.Position, "UNZ")
		return ParseResult{Errors: p.errors, Warnings: p.warnings}
	}
	unz := parseUNZ(unzSeg)

	hasUNG := false
	for i := 1; i < unzIndex; i++ {
		if tokens[i].Tag == "UNG" {
			hasUNG = true
			break
		}
	}

	ic := &Interchange{
		UNA:        ServiceStringAdvice{Present: HasUNA(input), Delimiters: delimiters},
		Header:     unb,
		Trailer:    unz,
		Delimiters: delimiters,
	}

	i := 1
	if hasUNG {
		for i < unzIndex {
			if tokens[i].Tag != "UNG" {
				i++
				continue
			}
			group, next, ok := p.parseGroup(i, unzIndex)
			if ok {
				ic.Groups = append(ic.Groups, group)
			}
			i = next
		}
	} else {
		for i < unzIndex {
			if tokens[i].Tag != "UNH" {
				i++
				continue
			}
			msg, next, ok := p.parseMessage(i, unzIndex)
			if ok {
				ic.Messages = append(ic.Messages, msg)
			}
			i = next
		}
	}

	if unz.ControlReference != unb.ControlReference {
		p.warn(CodeControlReferenceMismatch, "UNZ control reference does not match UNB control reference", unzSeg.Position, "UNZ")
	}

	groupCount := len(ic.Groups)
	msgCount := len(ic.AllMessages())
	if unz.ControlCount != groupCount && unz.ControlCount != msgCount {
		p.warn(CodeCountMismatch, "UNZ control count matches neither functional group count nor message count", unzSeg.Position, "UNZ")
	}

	return ParseResult{
		Success:     true,
		Interchange: ic,
		Errors:      p.errors,
		Warnings:    p.warnings,
	}
}

// parseGroup parses a UNG at index start, balancing nested UNG/UNE to find
// its matching UNE within [start, limit). Returns the group, the index just
// past the matched UNE (or limit on failure), and whether parsing succeeded.
func (p *parseState) parseGroup(start, limit int) (FunctionalGroup, int, bool) {
	ungSeg := p.tokens[start]
	if len(ungSeg.Elements) < 5 {
		p.fail(CodeUNGElementCount, "UNG requires at least 5 data elements", ungSeg.Position, "UNG")
		return FunctionalGroup{}, limit, false
	}
	ung := parseUNG(ungSeg)

	depth := 1
	uneIndex := -1
	for j := start + 1; j < limit; j++ {
		switch p.tokens[j].Tag {
		case "UNG":
			depth++
		case "UNE":
			depth--
			if depth == 0 {
				uneIndex = j
			}
		}
		if uneIndex != -1 {
			break
		}
	}
	if uneIndex == -1 {
		p.fail(CodeMissingUNE, "no matching UNE found for UNG", ungSeg.Position, "UNG")
		return FunctionalGroup{}, limit, false
	}

	group := FunctionalGroup{Header: ung}
	i := start + 1
	for i < uneIndex {
		if p.tokens[i].Tag != "UNH" {
			i++
			continue
		}
		msg, next, ok := p.parseMessage(i, uneIndex)
		if ok {
			group.Messages = append(group.Messages, msg)
		}
		i = next
	}

	uneSeg := p.tokens[uneIndex]
	if len(uneSeg.Elements) < 2 {
		p.fail(CodeUNEElementCount, "UNE requires 2 data elements", uneSeg.Position, "UNE")
		return group, uneIndex + 1, false
	}
	une := parseUNE(uneSeg)
	group.Trailer = une

	if une.ReferenceNumber != ung.ReferenceNumber {
		p.warn(CodeUNEReferenceMismatch, "UNE reference does not match UNG reference", uneSeg.Position, "UNE")
	}
	if une.MessageCount != len(group.Messages) {
		p.warn(CodeMessageCountMismatch, "UNE message count does not match number of parsed messages", uneSeg.Position, "UNE")
	}

	return group, uneIndex + 1, true
}

// parseMessage parses a UNH at index start, balancing nested UNH/UNT to find
// its matching UNT within [start, limit).
func (p *parseState) parseMessage(start, limit int) (Message, int, bool) {
	unhSeg := p.tokens[start]
	if len(unhSeg.Elements) < 2 {
		p.fail(CodeUNHElementCount, "UNH requires at least 2 data elements", unhSeg.Position, "UNH")
		return Message{}, limit, false
	}
	unh := parseUNH(unhSeg)

	depth := 1
	untIndex := -1
	for j := start + 1; j < limit; j++ {
		switch p.tokens[j].Tag {
		case "UNH":
			depth++
		case "UNT":
			depth--
			if depth == 0 {
				untIndex = j
			}
		}
		if untIndex != -1 {
			break
		}
	}
	if untIndex == -1 {
		p.fail(CodeMissingUNT, "no matching UNT found for UNH", unhSeg.Position, "UNH")
		return Message{}, limit, false
	}

	body := append([]Segment(nil), p.tokens[start+1:untIndex]...)

	untSeg := p.tokens[untIndex]
	if len(untSeg.Elements) < 2 {
		p.fail(CodeUNTElementCount, "UNT requires 2 data elements", untSeg.Position, "UNT")
		return Message{Header: unh, Body: body}, untIndex + 1, false
	}
	unt := parseUNT(untSeg)

	if unt.MessageReferenceNumber != unh.MessageReferenceNumber {
		p.warn(CodeUNTReferenceMismatch, "UNT reference does not match UNH reference", untSeg.Position, "UNT")
	}
	if unt.SegmentCount != len(body)+2 {
		p.warn(CodeSegmentCountMismatch, "UNT segment count does not match body length", untSeg.Position, "UNT")
	}

	return Message{Header: unh, Body: body, Trailer: unt}, untIndex + 1, true
}

func parsePartyID(comps []string) PartyID {
	return PartyID{
		ID:            at(comps, 0),
		CodeQualifier: at(comps, 1),
		InternalID:    at(comps, 2),
		InternalSubID: at(comps, 3),
	}
}

func at(s []string, i int) string {
	if i < 0 || i >= len(s) {
		return ""
	}
	return s[i]
}

func parseUNB(seg RawSegment) UNB {
	syntax := seg.Element(0)
	dateTime := seg.Element(3)
	recipientRef := seg.Element(5)

	return UNB{
		Syntax: SyntaxIdentifier{
			Identifier:                      at(syntax, 0),
			Version:                         at(syntax, 1),
			ServiceCodeListDirectoryVersion: at(syntax, 2),
			CharacterEncoding:               at(syntax, 3),
		},
		Sender:                      parsePartyID(seg.Element(1)),
		Recipient:                   parsePartyID(seg.Element(2)),
		Date:                        at(dateTime, 0),
		Time:                        at(dateTime, 1),
		ControlReference:            seg.Value(4),
		RecipientReferencePassword:  at(recipientRef, 0),
		RecipientReferenceQualifier: at(recipientRef, 1),
		ApplicationReference:        seg.Value(6),
		ProcessingPriority:          seg.Value(7),
		AckRequest:                  seg.Value(8),
		AgreementID:                 seg.Value(9),
		TestIndicator:               seg.Value(10),
	}
}

func parseUNZ(seg RawSegment) UNZ {
	count, _ := strconv.Atoi(seg.Value(0))
	return UNZ{ControlCount: count, ControlReference: seg.Value(1)}
}

func parseUNG(seg RawSegment) UNG {
	dateTime := seg.Element(3)
	version := seg.Element(6)
	return UNG{
		MessageGroupType:        seg.Value(0),
		ApplicationSender:       parsePartyID(seg.Element(1)),
		ApplicationRecipient:    parsePartyID(seg.Element(2)),
		Date:                    at(dateTime, 0),
		Time:                    at(dateTime, 1),
		ReferenceNumber:         seg.Value(4),
		ControllingAgency:       seg.Value(5),
		MessageVersion:          at(version, 0),
		MessageRelease:          at(version, 1),
		AssociationAssignedCode: seg.Value(7),
	}
}

func parseUNE(seg RawSegment) UNE {
	count, _ := strconv.Atoi(seg.Value(0))
	return UNE{MessageCount: count, ReferenceNumber: seg.Value(1)}
}

func parseUNH(seg RawSegment) UNH {
	ident := seg.Element(1)
	return UNH{
		MessageReferenceNumber:  seg.Value(0),
		MessageType:             at(ident, 0),
		MessageVersion:          at(ident, 1),
		MessageRelease:          at(ident, 2),
		ControllingAgency:       at(ident, 3),
		AssociationAssignedCode: at(ident, 4),
		CommonAccessReference:   seg.Value(2),
	}
}

func parseUNT(seg RawSegment) UNT {
	count, _ := strconv.Atoi(seg.Value(0))
	return UNT{SegmentCount: count, MessageReferenceNumber: seg.Value(1)}
}
