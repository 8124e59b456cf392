package edifact

// allowedSyntaxVersions is the version/release allow-list; anything outside
// it is tolerated with a warning, never rejected (spec.md §4.4 policy:
// "warn, do not reject").
var allowedSyntaxVersions = map[string]bool{
	"D:96A": true,
	"D:01B": true,
	"D:95B": true,
	"D:00A": true,
}

// Validate runs the envelope-invariant checks over an already-constructed
// Interchange (parsed or built programmatically) and returns a
// severity-tagged diagnostic list. It never mutates its input (spec.md §4.4).
func Validate(ic Interchange) Diagnostics {
	var diags Diagnostics

	if ic.Header.Sender.ID == "" {
		diags = append(diags, Diagnostic{
			Code: CodeUNBSenderRequired, Message: "UNB sender identification is required",
			SegmentID: "UNB", Severity: SeverityError,
		})
	}
	if ic.Header.Recipient.ID == "" {
		diags = append(diags, Diagnostic{
			Code: CodeUNBRecipientRequired, Message: "UNB recipient identification is required",
			SegmentID: "UNB", Severity: SeverityError,
		})
	}

	if ic.Trailer.ControlReference != ic.Header.ControlReference {
		diags = append(diags, Diagnostic{
			Code: CodeUNZControlReferenceMismatch, Message: "UNZ control reference does not match UNB control reference",
			SegmentID: "UNZ", Severity: SeverityError,
		})
	}

	groupCount := len(ic.Groups)
	msgCount := len(ic.AllMessages())
	if ic.Trailer.ControlCount != groupCount && ic.Trailer.ControlCount != msgCount {
		diags = append(diags, Diagnostic{
			Code: CodeUNZCountMismatch, Message: "UNZ control count matches neither functional group count nor message count",
			SegmentID: "UNZ", Severity: SeverityError,
		})
	}

	for _, g := range ic.Groups {
		if g.Trailer.ReferenceNumber != g.Header.ReferenceNumber {
			diags = append(diags, Diagnostic{
				Code: CodeUNEReferenceMismatch, Message: "UNE reference does not match UNG reference",
				SegmentID: "UNE", Severity: SeverityError,
			})
		}
		if g.Trailer.MessageCount != len(g.Messages) {
			diags = append(diags, Diagnostic{
				Code: CodeMessageCountMismatch, Message: "UNE message count does not match number of messages in group",
				SegmentID: "UNE", Severity: SeverityError,
			})
		}
		for _, m := range g.Messages {
			diags = append(diags, validateMessage(m)...)
		}
	}
	for _, m := range ic.Messages {
		diags = append(diags, validateMessage(m)...)
	}

	return diags
}

// ValidateInterchange is the standalone validate entry point: it runs the
// same checks as Validate but returns the single-error view, nil when the
// interchange has no error-severity diagnostics.
func ValidateInterchange(ic Interchange) error {
	ve := NewValidationError(Validate(ic))
	if ve == nil {
		return nil
	}
	return ve
}

func validateMessage(m Message) Diagnostics {
	var diags Diagnostics

	if m.Trailer.MessageReferenceNumber != m.Header.MessageReferenceNumber {
		diags = append(diags, Diagnostic{
			Code: CodeUNTReferenceMismatch, Message: "UNT reference does not match UNH reference",
			SegmentID: "UNT", Severity: SeverityError,
		})
	}
	if m.Trailer.SegmentCount != len(m.Body)+2 {
		diags = append(diags, Diagnostic{
			Code: CodeSegmentCountMismatch, Message: "UNT segment count does not match message body length",
			SegmentID: "UNT", Severity: SeverityError,
		})
	}

	msgVersion := m.Header.MessageVersion + ":" + m.Header.MessageRelease
	if m.Header.MessageVersion != "" && !allowedSyntaxVersions[msgVersion] {
		diags = append(diags, Diagnostic{
			Code: CodeUnsupportedSyntaxVersion, Message: "message version " + msgVersion + " is outside the known allow-list",
			SegmentID: "UNH", Severity: SeverityWarning,
		})
	}

	for _, seg := range m.Body {
		if !isValidSegmentID(seg.Tag) {
			diags = append(diags, Diagnostic{
				Code: CodeInvalidSegmentID, Message: "segment identifier must be exactly three uppercase ASCII letters, got " + seg.Tag,
				Position: seg.Position, SegmentID: seg.Tag, Severity: SeverityError,
			})
		}
	}

	return diags
}

func isValidSegmentID(tag string) bool {
	if len(tag) != 3 {
		return false
	}
	for _, c := range tag {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}
