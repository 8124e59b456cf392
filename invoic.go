package edifact

import "github.com/shopspring/decimal"

// InvoiceTotals is the INVOIC summary-section MOA routing table (spec.md
// §4.5: qualifiers 77/86 invoice total, 79 line items total, 125
// taxable, 131 allowances, 176 tax, 259 charges, 9 amount due, 113
// prepaid). The two "or computed" fields track whether a summary MOA
// actually supplied them, so computeInvoiceTotals can tell a declared zero
// from an absent value.
type InvoiceTotals struct {
	InvoiceTotal    decimal.Decimal
	LineItemsTotal  decimal.Decimal
	TaxableAmount   decimal.Decimal
	TotalAllowances decimal.Decimal
	TotalTaxAmount  decimal.Decimal
	TotalCharges    decimal.Decimal
	AmountDue       decimal.Decimal
	PrepaidAmount   decimal.Decimal

	invoiceTotalSet   bool
	lineItemsTotalSet bool
}

// InvoicMessage is the parsed record for an INVOIC message.
type InvoicMessage struct {
	DocumentHeader
	InvoiceNumber       string
	InvoiceDate         string
	OrderReference      string // RFF+ON
	DespatchReference   string // RFF+DQ
	PaymentTerms        []PaymentTerm
	PaymentInstructions []PaymentInstruction
	Totals              InvoiceTotals
}

// ParseInvoic walks an INVOIC message's body segments, sharing the common
// dispatch with the other message types and adding spec.md §4.5's INVOIC
// extensions: PAT payment terms, FII merged into PaymentInstructions,
// first-qualifier QTY/PRI collapsing on each line, and summary-MOA
// routing into InvoiceTotals.
func ParseInvoic(m Message, d Delimiters) (InvoicMessage, Diagnostics) {
	rec := InvoicMessage{}
	rec.MessageReferenceNumber = m.Header.MessageReferenceNumber
	rec.MessageType = m.Header.MessageType

	c := newScanCursor(&rec.DocumentHeader, d)
	var partyPtrs []*Party

	for i := 0; i < len(m.Body); i++ {
		seg := m.Body[i]
		switch seg.Tag {
		case "BGM":
			handleBGM(c, seg)
		case "DTM":
			handleDTM(c, seg)
		case "FTX":
			handleFTX(c, seg)
		case "RFF":
			handleRFF(c, seg)
			if c.currentParty == nil {
				switch seg.Component(0, 0) {
				case "ON":
					rec.OrderReference = seg.Component(0, 1)
				case "DQ":
					rec.DespatchReference = seg.Component(0, 1)
				}
			}
		case "NAD":
			party := handleNAD(c)
			parseNADFields(seg, party)
			partyPtrs = append(partyPtrs, party)
		case "CTA":
			if c.currentParty != nil {
				i = consumeContacts(m.Body, i, c.currentParty)
			}
		case "CUX":
			handleCUX(c, seg)
		case "PAT":
			rec.PaymentTerms = append(rec.PaymentTerms, PaymentTerm{
				TermTypeCode: seg.Value(0),
				NetDays:      seg.Component(1, 1),
				Description:  seg.Value(2),
			})
		case "FII":
			rec.PaymentInstructions = append(rec.PaymentInstructions, PaymentInstruction{
				PartyQualifier:  seg.Value(0),
				AccountNumber:   seg.Component(1, 0),
				AccountHolderID: seg.Component(1, 2),
				InstitutionID:   seg.Component(2, 0),
				InstitutionName: seg.Component(2, 1),
			})
		case "ALC":
			ac, next := consumeALC(m.Body, i, d.DecimalNotation)
			appendAllowanceCharge(c, ac)
			i = next
		case "TAX":
			tax, next := consumeTAX(m.Body, i, d.DecimalNotation)
			appendTax(c, tax)
			i = next
		case "LIN":
			handleLIN(c, seg)
		case "PIA":
			handlePIA(c, seg)
		case "IMD":
			handleIMD(c, seg)
		case "QTY":
			handleQTY(c, seg)
			if c.currentLine != nil && len(c.currentLine.Quantities) == 1 {
				q := c.currentLine.Quantities[0]
				c.currentLine.Quantity = q.Value
				c.currentLine.UnitCode = q.UnitCode
			}
		case "PRI":
			handlePRI(c, seg)
			if c.currentLine != nil && len(c.currentLine.Prices) == 1 {
				c.currentLine.UnitPrice = c.currentLine.Prices[0].Amount
			}
		case "MOA":
			if c.section == sectionSummary {
				applyInvoiceTotal(&rec.Totals, seg, d.DecimalNotation)
			} else {
				handleMOA(c, seg)
			}
		case "UNS":
			handleUNS(c)
		}
	}
	c.closeLine()
	for _, p := range partyPtrs {
		rec.Parties = append(rec.Parties, *p)
	}

	rec.InvoiceNumber = rec.DocumentNumber
	rec.InvoiceDate = rec.DocumentDate

	computeInvoiceTotals(&rec)

	return rec, c.diags
}

func applyInvoiceTotal(t *InvoiceTotals, seg Segment, notation byte) {
	qualifier := seg.Component(0, 0)
	value := parseDecimal(seg.Component(0, 1), notation)
	switch qualifier {
	case "77", "86":
		t.InvoiceTotal = value
		t.invoiceTotalSet = true
	case "79":
		t.LineItemsTotal = value
		t.lineItemsTotalSet = true
	case "125":
		t.TaxableAmount = value
	case "131":
		t.TotalAllowances = value
	case "176":
		t.TotalTaxAmount = value
	case "259":
		t.TotalCharges = value
	case "9":
		t.AmountDue = value
	case "113":
		t.PrepaidAmount = value
	}
}

// computeInvoiceTotals fills in lineItemsTotal and invoiceTotal when the
// summary section didn't supply them (spec.md §4.5's totals fallback).
func computeInvoiceTotals(rec *InvoicMessage) {
	t := &rec.Totals
	if !t.lineItemsTotalSet {
		sum := decimal.Zero
		for _, l := range rec.LineItems {
			sum = sum.Add(l.LineAmount)
		}
		t.LineItemsTotal = sum
	}
	if !t.invoiceTotalSet {
		t.InvoiceTotal = t.LineItemsTotal.
			Sub(t.TotalAllowances).
			Add(t.TotalCharges).
			Add(t.TotalTaxAmount)
	}
}
