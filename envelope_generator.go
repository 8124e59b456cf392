package edifact

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvariantViolation is the sentinel wrapped by every *ValidationError the
// generator returns. The generator validates structural preconditions
// eagerly and never produces a partial output (spec.md §5, §7).
var ErrInvariantViolation = errors.New("edifact: generator invariant violation")

// invariantError builds the single-error view of a structural-precondition
// violation the generator refuses to paper over, e.g. a missing required
// field or a non-distinct delimiter set.
func invariantError(code Code, segmentID, format string, args ...any) *ValidationError {
	return &ValidationError{
		diagnostics: Diagnostics{{
			Code:      code,
			Message:   fmt.Sprintf(format, args...),
			SegmentID: segmentID,
			Severity:  SeverityError,
		}},
		sentinel: ErrInvariantViolation,
	}
}

// GenerateOptions controls envelope serialization (spec.md §4.3).
type GenerateOptions struct {
	Delimiters          *Delimiters
	LineBreaks          bool
	IncludeUNA          bool
	UseFunctionalGroups bool
}

// DefaultGenerateOptions returns the documented defaults: UNA included,
// no cosmetic line breaks, and no functional groups, so a grouped
// interchange is emitted as a flat message list (see resolveOrganization).
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{IncludeUNA: true}
}

// Generate serializes an Interchange to bytes. It is the strict inverse of
// Parse: given identical inputs (including the injected clock/RNG used to
// build the interchange), the output is byte-identical (spec.md §4.3, §5).
func Generate(ic Interchange, opts GenerateOptions) ([]byte, error) {
	d := ic.Delimiters
	if opts.Delimiters != nil {
		d = *opts.Delimiters
	}
	if d == (Delimiters{}) {
		d = DefaultDelimiters()
	}
	if !d.Distinct() {
		return nil, invariantError(CodeDelimitersNotDistinct, "UNA", "delimiters must be pairwise distinct")
	}
	if ic.Header.Sender.ID == "" {
		return nil, invariantError(CodeUNBSenderRequired, "UNB", "UNB sender id is required")
	}
	if ic.Header.Recipient.ID == "" {
		return nil, invariantError(CodeUNBRecipientRequired, "UNB", "UNB recipient id is required")
	}

	groups, messages, useGroups := resolveOrganization(ic, opts)
	for _, m := range messages {
		if m.Header.MessageReferenceNumber == "" {
			return nil, invariantError(CodeUNHReferenceRequired, "UNH", "UNH message reference number is required")
		}
	}
	for _, g := range groups {
		for _, m := range g.Messages {
			if m.Header.MessageReferenceNumber == "" {
				return nil, invariantError(CodeUNHReferenceRequired, "UNH", "UNH message reference number is required")
			}
		}
	}

	var segs []string
	if opts.IncludeUNA {
		segs = append(segs, writeUNA(d))
	}
	segs = append(segs, writeUNB(ic.Header, d))

	var groupCount, msgCount int
	if useGroups {
		for _, g := range groups {
			segs = append(segs, writeUNG(g.Header, d))
			for _, m := range g.Messages {
				segs = append(segs, writeMessage(m, d)...)
			}
			une := UNE{MessageCount: len(g.Messages), ReferenceNumber: g.Header.ReferenceNumber}
			segs = append(segs, writeUNE(une, d))
		}
		groupCount = len(groups)
		msgCount = groupCount
	} else {
		for _, m := range messages {
			segs = append(segs, writeMessage(m, d)...)
		}
		msgCount = len(messages)
	}

	unz := UNZ{ControlCount: msgCount, ControlReference: ic.Header.ControlReference}
	if useGroups {
		unz.ControlCount = groupCount
	}
	segs = append(segs, writeUNZ(unz, d))

	sep := ""
	if opts.LineBreaks {
		sep = "\n"
	}
	return []byte(strings.Join(segs, sep)), nil
}

// resolveOrganization decides, for this Generate call, whether to emit
// functional groups or a flat message list, honoring opts.UseFunctionalGroups
// even when it disagrees with how ic itself is currently organized: a
// flat interchange is auto-grouped by message type (first-seen order) when
// the option requests grouping; a grouped interchange is flattened,
// preserving traversal order, when the option asks for a flat list.
func resolveOrganization(ic Interchange, opts GenerateOptions) (groups []FunctionalGroup, messages []Message, useGroups bool) {
	if opts.UseFunctionalGroups {
		if len(ic.Groups) > 0 {
			return ic.Groups, nil, true
		}
		return groupMessagesByType(ic.Messages, ic.Header), nil, true
	}
	if len(ic.Groups) > 0 {
		var all []Message
		for _, g := range ic.Groups {
			all = append(all, g.Messages...)
		}
		return nil, all, false
	}
	return nil, ic.Messages, false
}

// groupMessagesByType buckets messages by their UNH message type, preserving
// insertion order inside each bucket and emission order by first-seen type
// (spec.md §4.3 buildInterchange rule).
func groupMessagesByType(messages []Message, header UNB) []FunctionalGroup {
	var order []string
	byType := map[string][]Message{}
	for _, m := range messages {
		t := m.Header.MessageType
		if _, seen := byType[t]; !seen {
			order = append(order, t)
		}
		byType[t] = append(byType[t], m)
	}

	groups := make([]FunctionalGroup, 0, len(order))
	for i, t := range order {
		msgs := byType[t]
		ref := strconv.Itoa(i + 1)
		first := msgs[0].Header
		groups = append(groups, FunctionalGroup{
			Header: UNG{
				MessageGroupType:     t,
				ApplicationSender:    header.Sender,
				ApplicationRecipient: header.Recipient,
				Date:                 header.Date,
				Time:                 header.Time,
				ReferenceNumber:      ref,
				ControllingAgency:    "UN",
				MessageVersion:       first.MessageVersion,
				MessageRelease:       first.MessageRelease,
			},
			Messages: msgs,
			Trailer:  UNE{MessageCount: len(msgs), ReferenceNumber: ref},
		})
	}
	return groups
}

// BuildOptions configures BuildInterchange.
type BuildOptions struct {
	Clock               Clock
	ReferenceGenerator  ReferenceGenerator
	UseFunctionalGroups bool
	SyntaxIdentifier    string
	SyntaxVersion       string
	TestIndicator       bool
	ControlReference    string
}

// BuildInterchange assembles a fresh Interchange from a flat message list and
// sender/recipient identities, using the injected clock/RNG for timestamps
// and control references, or their deterministic defaults (spec.md §4.3,
// §5). Grouping follows opts.UseFunctionalGroups exactly as Generate's own
// resolveOrganization would.
func BuildInterchange(messages []Message, sender, recipient PartyID, opts BuildOptions) Interchange {
	clock := opts.Clock
	if clock == nil {
		clock = defaultClock()
	}
	refGen := opts.ReferenceGenerator
	if refGen == nil {
		refGen = defaultReferenceGenerator()
	}

	now := clock.Now()
	syntaxID := opts.SyntaxIdentifier
	if syntaxID == "" {
		syntaxID = "UNOA"
	}
	syntaxVersion := opts.SyntaxVersion
	if syntaxVersion == "" {
		syntaxVersion = "4"
	}
	controlRef := opts.ControlReference
	if controlRef == "" {
		controlRef = refGen.Next()
	}
	testIndicator := ""
	if opts.TestIndicator {
		testIndicator = "1"
	}

	header := UNB{
		Syntax:           SyntaxIdentifier{Identifier: syntaxID, Version: syntaxVersion},
		Sender:           sender,
		Recipient:        recipient,
		Date:             now.Format("060102"),
		Time:             now.Format("1504"),
		ControlReference: controlRef,
		TestIndicator:    testIndicator,
	}

	ic := Interchange{
		UNA:        ServiceStringAdvice{Present: true, Delimiters: DefaultDelimiters()},
		Header:     header,
		Delimiters: DefaultDelimiters(),
		Trailer:    UNZ{ControlReference: controlRef},
	}

	if opts.UseFunctionalGroups {
		ic.Groups = groupMessagesByType(messages, header)
		ic.Trailer.ControlCount = len(ic.Groups)
	} else {
		ic.Messages = messages
		ic.Trailer.ControlCount = len(messages)
	}

	return ic
}

func writeUNA(d Delimiters) string {
	return "UNA" +
		string(d.ComponentSeparator) +
		string(d.ElementSeparator) +
		string(d.DecimalNotation) +
		string(d.ReleaseCharacter) +
		string(d.Reserved) +
		string(d.SegmentTerminator)
}

func writeUNB(h UNB, d Delimiters) string {
	elements := [][]string{
		{h.Syntax.Identifier, h.Syntax.Version, h.Syntax.ServiceCodeListDirectoryVersion, h.Syntax.CharacterEncoding},
		{h.Sender.ID, h.Sender.CodeQualifier, h.Sender.InternalID, h.Sender.InternalSubID},
		{h.Recipient.ID, h.Recipient.CodeQualifier, h.Recipient.InternalID, h.Recipient.InternalSubID},
		{h.Date, h.Time},
		{h.ControlReference},
		{h.RecipientReferencePassword, h.RecipientReferenceQualifier},
		{h.ApplicationReference},
		{h.ProcessingPriority},
		{h.AckRequest},
		{h.AgreementID},
		{h.TestIndicator},
	}
	return writeSegment("UNB", elements, d)
}

func writeUNZ(t UNZ, d Delimiters) string {
	elements := [][]string{
		{strconv.Itoa(t.ControlCount)},
		{t.ControlReference},
	}
	return writeSegment("UNZ", elements, d)
}

func writeUNG(h UNG, d Delimiters) string {
	elements := [][]string{
		{h.MessageGroupType},
		{h.ApplicationSender.ID, h.ApplicationSender.CodeQualifier, h.ApplicationSender.InternalID, h.ApplicationSender.InternalSubID},
		{h.ApplicationRecipient.ID, h.ApplicationRecipient.CodeQualifier, h.ApplicationRecipient.InternalID, h.ApplicationRecipient.InternalSubID},
		{h.Date, h.Time},
		{h.ReferenceNumber},
		{h.ControllingAgency},
		{h.MessageVersion, h.MessageRelease},
		{h.AssociationAssignedCode},
	}
	return writeSegment("UNG", elements, d)
}

func writeUNE(t UNE, d Delimiters) string {
	elements := [][]string{
		{strconv.Itoa(t.MessageCount)},
		{t.ReferenceNumber},
	}
	return writeSegment("UNE", elements, d)
}

func writeUNH(h UNH, d Delimiters) string {
	elements := [][]string{
		{h.MessageReferenceNumber},
		{h.MessageType, h.MessageVersion, h.MessageRelease, h.ControllingAgency, h.AssociationAssignedCode},
		{h.CommonAccessReference},
	}
	return writeSegment("UNH", elements, d)
}

func writeUNT(t UNT, d Delimiters) string {
	elements := [][]string{
		{strconv.Itoa(t.SegmentCount)},
		{t.MessageReferenceNumber},
	}
	return writeSegment("UNT", elements, d)
}

// writeMessage serializes UNH, the body segments, and UNT, recomputing
// UNT's segment count from the actual body length rather than trusting the
// caller-supplied value (spec.md §4.3: "the serializer is the source of
// truth for structural integrity").
func writeMessage(m Message, d Delimiters) []string {
	out := make([]string, 0, len(m.Body)+2)
	out = append(out, writeUNH(m.Header, d))
	for _, seg := range m.Body {
		out = append(out, writeSegment(seg.Tag, seg.Elements, d))
	}
	trailer := UNT{SegmentCount: len(m.Body) + 2, MessageReferenceNumber: m.Header.MessageReferenceNumber}
	out = append(out, writeUNT(trailer, d))
	return out
}

// writeSegment joins escaped, trailing-empty-elided elements behind tag and
// appends the segment terminator (spec.md §4.1, §4.3).
func writeSegment(tag string, elements [][]string, d Delimiters) string {
	body := joinElements(elements, d)
	if body == "" {
		return tag + string(d.SegmentTerminator)
	}
	return tag + string(d.ElementSeparator) + body + string(d.SegmentTerminator)
}

func joinElements(elements [][]string, d Delimiters) string {
	elements = trimTrailingEmptyElements(elements)
	parts := make([]string, len(elements))
	for i, e := range elements {
		parts[i] = joinComponents(e, d)
	}
	return strings.Join(parts, string(d.ElementSeparator))
}

func joinComponents(comps []string, d Delimiters) string {
	end := len(comps)
	for end > 0 && comps[end-1] == "" {
		end--
	}
	comps = comps[:end]
	parts := make([]string, len(comps))
	for i, c := range comps {
		parts[i] = Escape(c, d)
	}
	return strings.Join(parts, string(d.ComponentSeparator))
}

func trimTrailingEmptyElements(elements [][]string) [][]string {
	end := len(elements)
	for end > 0 && isEmptyElement(elements[end-1]) {
		end--
	}
	return elements[:end]
}

func isEmptyElement(e []string) bool {
	for _, c := range e {
		if c != "" {
			return false
		}
	}
	return true
}
