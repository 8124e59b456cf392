package edifact

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DocumentHeader is the field set every message-type record shares
// (spec.md §3, §4.5): document scalars, the accumulated parties, and the
// line items parsed from the body's line section.
type DocumentHeader struct {
	MessageReferenceNumber string
	MessageType            string
	DocumentTypeCode       string
	DocumentNumber         string
	DocumentDate           string // ISO YYYY-MM-DD when derivable, else raw
	MessageFunctionCode    string
	Currency               string

	Parties           []Party
	Dates             []DateRef
	References        []Reference
	FreeTexts         []FreeText
	Taxes             []TaxInfo
	AllowancesCharges []AllowanceCharge
	Amounts           []Amount
	LineItems         []LineItem
}

// TransportInfo is one TDT entry (message-type extension shared by ORDERS'
// generator and DESADV's parser, spec.md §4.5, §4.6).
type TransportInfo struct {
	StageQualifier      string
	ConveyanceReference string
	ModeCode            string
	MeansDescription    string
	CarrierID           string
	CarrierName         string
}

// PaymentTerm is one PAT entry (spec.md §4.5 INVOIC extensions; also part
// of ORDERS' fixed generator segment order).
type PaymentTerm struct {
	TermTypeCode string
	NetDays      string
	Description  string
}

// PaymentInstruction is one FII entry, merged per spec.md §4.5's INVOIC
// extension ("FII merged into paymentInstructions").
type PaymentInstruction struct {
	PartyQualifier  string
	AccountHolderID string
	AccountNumber   string
	InstitutionID   string
	InstitutionName string
}

// section is the coarse scan state shared by every message-type parser
// (spec.md §4.5: "currentSection ∈ {header, line, summary}").
type section int

const (
	sectionHeader section = iota
	sectionLine
	sectionSummary
)

// scanCursor carries the mutable scan state threaded through a message's
// segment-by-segment dispatch.
type scanCursor struct {
	header       *DocumentHeader
	section      section
	currentLine  *LineItem
	currentParty *Party
	diags        Diagnostics
	notation     byte
}

func newScanCursor(h *DocumentHeader, d Delimiters) *scanCursor {
	return &scanCursor{header: h, section: sectionHeader, notation: d.DecimalNotation}
}

// closeLine appends the in-progress line item, if any, to the header.
func (c *scanCursor) closeLine() {
	if c.currentLine != nil {
		c.header.LineItems = append(c.header.LineItems, *c.currentLine)
		c.currentLine = nil
	}
}

// handleBGM populates document scalars from a BGM segment (spec.md §4.5).
func handleBGM(c *scanCursor, seg Segment) {
	c.header.DocumentTypeCode = seg.Value(0)
	c.header.DocumentNumber = seg.Value(1)
	c.header.MessageFunctionCode = seg.Value(2)
}

// handleDTM routes a DTM entry to the document or current line's date list,
// additionally lifting qualifier 137 (document date) to DocumentDate
// (spec.md §4.5).
func handleDTM(c *scanCursor, seg Segment) {
	qualifier := seg.Component(0, 0)
	value := seg.Component(0, 1)
	format := seg.Component(0, 2)
	ref := DateRef{Qualifier: qualifier, Value: value, Format: format}

	if c.section == sectionLine && c.currentLine != nil {
		c.currentLine.Dates = append(c.currentLine.Dates, ref)
		return
	}
	c.header.Dates = append(c.header.Dates, ref)
	if qualifier == "137" {
		c.header.DocumentDate = formatEdifactDate(value, format)
	}
}

// formatEdifactDate reformats a DTM value per its format qualifier (102,
// 203) to ISO shapes; any other format (or a too-short value) is preserved
// raw rather than guessed at (spec.md §9 open question).
func formatEdifactDate(value, format string) string {
	switch format {
	case "102":
		if len(value) != 8 {
			return value
		}
		return value[0:4] + "-" + value[4:6] + "-" + value[6:8]
	case "203":
		if len(value) != 12 {
			return value
		}
		return value[0:4] + "-" + value[4:6] + "-" + value[6:8] + "T" + value[8:10] + ":" + value[10:12]
	default:
		return value
	}
}

// handleRFF attaches a reference to the currently open party, then the
// current line when the scan is in the line section, and otherwise to the
// document (spec.md §4.5).
func handleRFF(c *scanCursor, seg Segment) Reference {
	ref := Reference{Qualifier: seg.Component(0, 0), Value: seg.Component(0, 1)}
	switch {
	case c.currentParty != nil:
		c.currentParty.References = append(c.currentParty.References, ref)
	case c.section == sectionLine && c.currentLine != nil:
		c.currentLine.References = append(c.currentLine.References, ref)
	default:
		c.header.References = append(c.header.References, ref)
	}
	return ref
}

// handleNAD opens a new party and arms it as the scan's current party
// (spec.md §4.5).
func handleNAD(c *scanCursor) *Party {
	party := &Party{}
	c.currentParty = party
	return party
}

func parseNADFields(seg Segment, party *Party) {
	party.FunctionCode = seg.Value(0)
	idComponents := seg.Element(1)
	party.ID = at(idComponents, 0)
	party.IDAgency = at(idComponents, 2)
	nameComponents := seg.Element(3)
	if len(nameComponents) == 0 {
		if v := seg.Value(3); v != "" {
			party.Name = []string{v}
		}
	} else {
		for _, n := range nameComponents {
			if n != "" {
				party.Name = append(party.Name, n)
			}
		}
	}
	addrComponents := seg.Element(4)
	if len(addrComponents) > 0 {
		addr := &Address{
			Street1:            at(addrComponents, 0),
			Street2:            at(addrComponents, 1),
			City:               seg.Value(5),
			CountrySubdivision: seg.Value(6),
			PostalCode:         seg.Value(7),
			CountryCode:        seg.Value(8),
		}
		party.Address = addr
	}
}

// consumeContacts builds a Contact from a CTA segment plus every COM
// segment immediately following it, returning the index of the last
// consumed segment so the caller can advance its scan cursor accordingly
// (spec.md §4.5: "the outer scan index is advanced accordingly").
func consumeContacts(body []Segment, i int, party *Party) int {
	seg := body[i]
	contact := Contact{FunctionCode: seg.Value(0), Name: seg.Value(1)}

	j := i + 1
	for j < len(body) && body[j].Tag == "COM" {
		com := body[j]
		contact.Communications = append(contact.Communications, Communication{
			Number:    com.Component(0, 0),
			Qualifier: com.Component(0, 1),
		})
		j++
	}
	party.Contacts = append(party.Contacts, contact)
	return j - 1
}

// handleCUX sets the document currency from the second component of the
// first composite (spec.md §4.5).
func handleCUX(c *scanCursor, seg Segment) {
	if v := seg.Component(0, 1); v != "" {
		c.header.Currency = v
	}
}

// consumeALC builds an AllowanceCharge from an ALC segment plus any
// immediately following PCD/MOA that belong to it, returning the index of
// the last consumed segment (spec.md §4.5).
func consumeALC(body []Segment, i int, notation byte) (AllowanceCharge, int) {
	seg := body[i]
	ac := AllowanceCharge{
		IsCharge:   seg.Value(0) == "C",
		ReasonCode: seg.Component(4, 0),
	}

	j := i + 1
	for j < len(body) {
		switch body[j].Tag {
		case "PCD":
			ac.Percentage = parseDecimal(body[j].Component(0, 1), notation)
		case "MOA":
			qualifier := body[j].Component(0, 0)
			amount := parseDecimal(body[j].Component(0, 1), notation)
			switch qualifier {
			case "23", "204":
				ac.Amount = amount
			case "25":
				ac.BasisAmount = amount
			default:
				j--
				goto done
			}
		default:
			j--
			goto done
		}
		j++
	}
	j--
done:
	return ac, j
}

// consumeTAX builds a TaxInfo from a TAX segment plus an optional trailing
// MOA (spec.md §4.5).
func consumeTAX(body []Segment, i int, notation byte) (TaxInfo, int) {
	seg := body[i]
	tax := TaxInfo{
		TypeCode:     seg.Component(0, 0),
		CategoryCode: seg.Component(1, 1),
		Rate:         parseDecimal(seg.Component(4, 3), notation),
	}

	j := i + 1
	if j < len(body) && body[j].Tag == "MOA" {
		qualifier := body[j].Component(0, 0)
		amount := parseDecimal(body[j].Component(0, 1), notation)
		switch qualifier {
		case "124", "176":
			tax.Amount = amount
			j++
		case "125":
			tax.Basis = amount
			j++
		}
	}
	return tax, j - 1
}

// handleLIN closes any open line item and opens a new one carrying the
// line number, action code, and first product id triple (spec.md §4.5).
func handleLIN(c *scanCursor, seg Segment) {
	c.closeLine()
	c.section = sectionLine
	c.currentParty = nil
	line := &LineItem{
		LineNumber: seg.Value(0),
		ActionCode: seg.Value(1),
	}
	if productID := seg.Element(2); len(productID) > 0 {
		line.Products = append(line.Products, ProductID{
			ID:       at(productID, 0),
			TypeCode: at(productID, 1),
			Agency:   at(productID, 2),
		})
	}
	c.currentLine = line
}

// handlePIA appends an additional product id triple to the current line.
func handlePIA(c *scanCursor, seg Segment) {
	if c.currentLine == nil {
		return
	}
	idComponents := seg.Element(1)
	if len(idComponents) == 0 {
		return
	}
	c.currentLine.Products = append(c.currentLine.Products, ProductID{
		ID:       at(idComponents, 0),
		TypeCode: at(idComponents, 1),
		Agency:   at(idComponents, 2),
	})
}

// handleIMD sets the current line's free-form description, preferring
// composite position 3:4 and falling back to 3:1 (1-based element:component,
// i.e. Component(2, 3) then Component(2, 0); spec.md §4.5).
func handleIMD(c *scanCursor, seg Segment) {
	if c.currentLine == nil {
		return
	}
	desc := seg.Component(2, 3)
	if desc == "" {
		desc = seg.Component(2, 0)
	}
	c.currentLine.Description = strings.TrimSpace(desc)
}

// handleQTY appends a quantity triple to the current line.
func handleQTY(c *scanCursor, seg Segment) {
	if c.currentLine == nil {
		return
	}
	q := Quantity{
		Qualifier: seg.Component(0, 0),
		Value:     parseDecimal(seg.Component(0, 1), c.notation),
		UnitCode:  seg.Component(0, 2),
	}
	if q.UnitCode == "" {
		q.UnitCode = "PCE"
	}
	c.currentLine.Quantities = append(c.currentLine.Quantities, q)
}

// handlePRI appends a price triple to the current line.
func handlePRI(c *scanCursor, seg Segment) {
	if c.currentLine == nil {
		return
	}
	c.currentLine.Prices = append(c.currentLine.Prices, Price{
		Qualifier: seg.Component(0, 0),
		Amount:    parseDecimal(seg.Component(0, 1), c.notation),
		Basis:     parseDecimal(seg.Component(0, 4), c.notation),
	})
}

// handleMOA appends an amount to the current line (lifting qualifier 203 to
// LineAmount) when in the line section, or otherwise records it to the
// header as a header-level amount (spec.md §4.5; summary MOA routing is
// message-type specific and handled by each parser's caller).
func handleMOA(c *scanCursor, seg Segment) Amount {
	amt := Amount{
		Qualifier: seg.Component(0, 0),
		Value:     parseDecimal(seg.Component(0, 1), c.notation),
		Currency:  seg.Component(0, 2),
	}
	if c.section == sectionLine && c.currentLine != nil {
		c.currentLine.Amounts = append(c.currentLine.Amounts, amt)
		if amt.Qualifier == "203" {
			c.currentLine.LineAmount = amt.Value
		}
	} else {
		c.header.Amounts = append(c.header.Amounts, amt)
	}
	return amt
}

// handleFTX appends a free-text entry to the current line, or the header
// if no line is open.
func handleFTX(c *scanCursor, seg Segment) {
	ft := FreeText{Qualifier: seg.Value(0)}
	for _, comp := range seg.Element(3) {
		if comp != "" {
			ft.Text = append(ft.Text, comp)
		}
	}
	if c.section == sectionLine && c.currentLine != nil {
		c.currentLine.FreeTexts = append(c.currentLine.FreeTexts, ft)
		return
	}
	c.header.FreeTexts = append(c.header.FreeTexts, ft)
}

// handleUNS closes the current line item and transitions to the summary
// section (spec.md §4.5).
func handleUNS(c *scanCursor) {
	c.closeLine()
	c.section = sectionSummary
	c.currentParty = nil
}

// parseDecimal tolerates a leading sign and, on failure, substitutes zero
// rather than aborting, per spec.md §4.5's deliberately lenient numeric
// parsing (preserved for round-trip fidelity, spec.md §9). notation is the
// interchange's declared decimal-notation byte (UNA's third delimiter
// position); when
// it isn't '.', every occurrence is rewritten to '.' before parsing so
// non-UNOA interchanges (e.g. ',' notation) don't silently parse to zero.
func parseDecimal(s string, notation byte) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	if notation != 0 && notation != '.' {
		s = strings.ReplaceAll(s, string(notation), ".")
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return v
}
