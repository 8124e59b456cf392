package edifact

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// OrdersMessage is the parsed record for an ORDERS message (spec.md §3,
// §4.5). DeliveryTerms/Transport/PaymentTerms are carried for generator
// parity with §4.6's fixed segment order even though the common parser
// rules don't enumerate TOD/TDT/PAT field extraction for ORDERS; they
// round-trip whatever a caller sets programmatically.
type OrdersMessage struct {
	DocumentHeader
	OrderNumber   string // convenience alias for DocumentNumber
	OrderDate     string // convenience alias for DocumentDate
	DeliveryTerms string
	Transport     *TransportInfo
	PaymentTerms  []PaymentTerm
}

// ParseOrders walks an ORDERS message's body segments per the shared
// section state machine (spec.md §4.5).
func ParseOrders(m Message, d Delimiters) (OrdersMessage, Diagnostics) {
	rec := OrdersMessage{}
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
		case "TOD":
			rec.DeliveryTerms = seg.Value(0)
		case "TDT":
			rec.Transport = parseTDT(seg)
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
		case "PRI":
			handlePRI(c, seg)
		case "MOA":
			handleMOA(c, seg)
		case "UNS":
			handleUNS(c)
		}
	}
	c.closeLine()
	for _, p := range partyPtrs {
		rec.Parties = append(rec.Parties, *p)
	}

	rec.OrderNumber = rec.DocumentNumber
	rec.OrderDate = rec.DocumentDate

	return rec, c.diags
}

func appendAllowanceCharge(c *scanCursor, ac AllowanceCharge) {
	if c.section == sectionLine && c.currentLine != nil {
		c.currentLine.AllowancesCharges = append(c.currentLine.AllowancesCharges, ac)
		return
	}
	c.header.AllowancesCharges = append(c.header.AllowancesCharges, ac)
}

func appendTax(c *scanCursor, tax TaxInfo) {
	if c.section == sectionLine && c.currentLine != nil {
		c.currentLine.Taxes = append(c.currentLine.Taxes, tax)
		return
	}
	c.header.Taxes = append(c.header.Taxes, tax)
}

func parseTDT(seg Segment) *TransportInfo {
	modeComp := seg.Element(2)
	meansComp := seg.Element(3)
	carrierComp := seg.Element(4)
	return &TransportInfo{
		StageQualifier:      seg.Value(0),
		ConveyanceReference: seg.Value(1),
		ModeCode:            at(modeComp, 0),
		MeansDescription:    at(meansComp, 1),
		CarrierID:           at(carrierComp, 0),
		CarrierName:         at(carrierComp, 1),
	}
}

// GenerateOrders is the inverse of ParseOrders: it emits ORDERS body
// segments in the fixed order of spec.md §4.6, applying the documented
// defaults for omitted scalars.
func GenerateOrders(rec OrdersMessage, version, release string) Message {
	var segs []Segment

	docType := rec.DocumentTypeCode
	if docType == "" {
		docType = "220"
	}
	functionCode := rec.MessageFunctionCode
	if functionCode == "" {
		functionCode = "9"
	}
	segs = append(segs, Segment{Tag: "BGM", Elements: [][]string{{docType}, {rec.OrderNumber}, {functionCode}}})

	if rec.OrderDate != "" {
		segs = append(segs, Segment{Tag: "DTM", Elements: [][]string{{"137", isoToEdifactDate(rec.OrderDate), "102"}}})
	}
	for _, d := range rec.Dates {
		if d.Qualifier == "137" {
			continue
		}
		segs = append(segs, Segment{Tag: "DTM", Elements: [][]string{{d.Qualifier, d.Value, d.Format}}})
	}
	for _, ft := range rec.FreeTexts {
		segs = append(segs, Segment{Tag: "FTX", Elements: [][]string{{ft.Qualifier}, {}, {}, ft.Text}})
	}
	for _, r := range rec.References {
		segs = append(segs, Segment{Tag: "RFF", Elements: [][]string{{r.Qualifier, r.Value}}})
	}

	for _, p := range rec.Parties {
		segs = append(segs, generateNAD(p))
		for _, r := range p.References {
			segs = append(segs, Segment{Tag: "RFF", Elements: [][]string{{r.Qualifier, r.Value}}})
		}
		for _, ct := range p.Contacts {
			segs = append(segs, generateCTAAndCOM(ct)...)
		}
	}

	if rec.Currency != "" {
		segs = append(segs, Segment{Tag: "CUX", Elements: [][]string{{"2", rec.Currency, "4"}}})
	}
	for _, pt := range rec.PaymentTerms {
		segs = append(segs, Segment{Tag: "PAT", Elements: [][]string{{pt.TermTypeCode}, {"", pt.NetDays}, {pt.Description}}})
	}
	if rec.DeliveryTerms != "" {
		segs = append(segs, Segment{Tag: "TOD", Elements: [][]string{{rec.DeliveryTerms}}})
	}
	if rec.Transport != nil {
		segs = append(segs, generateTDT(*rec.Transport))
	}
	for _, ac := range rec.AllowancesCharges {
		segs = append(segs, generateALC(ac)...)
	}
	for _, t := range rec.Taxes {
		segs = append(segs, generateTAX(t)...)
	}

	for i, line := range rec.LineItems {
		segs = append(segs, generateLineItem(line, i == 0)...)
	}

	segs = append(segs, Segment{Tag: "UNS", Elements: [][]string{{"S"}}})
	for _, amt := range rec.Amounts {
		segs = append(segs, Segment{Tag: "MOA", Elements: [][]string{{amt.Qualifier, amt.Value.String(), amt.Currency}}})
	}
	segs = append(segs, Segment{Tag: "CNT", Elements: [][]string{{"2", strconv.Itoa(len(rec.LineItems))}}})
	segs = append(segs, Segment{Tag: "CNT", Elements: [][]string{{"39", sumLineAmounts(rec.LineItems).String()}}})

	return Message{
		Header: UNH{
			MessageReferenceNumber: rec.MessageReferenceNumber,
			MessageType:            "ORDERS",
			MessageVersion:         version,
			MessageRelease:         release,
			ControllingAgency:      "UN",
		},
		Body:    segs,
		Trailer: UNT{SegmentCount: len(segs) + 2, MessageReferenceNumber: rec.MessageReferenceNumber},
	}
}

// generateNAD lays out NAD's composites positionally: 3035 qualifier,
// C082 party id, C058 free-text name/address (unused here), C080 party
// name, then C059 street / city / country-subdivision / postcode / country
// when an address is present.
func generateNAD(p Party) Segment {
	nameElement := p.Name
	if nameElement == nil {
		nameElement = []string{}
	}
	elements := [][]string{
		{p.FunctionCode},
		{p.ID, "", p.IDAgency},
		{},
		nameElement,
	}
	if p.Address != nil {
		elements = append(elements,
			[]string{p.Address.Street1, p.Address.Street2},
			[]string{p.Address.City},
			[]string{p.Address.CountrySubdivision},
			[]string{p.Address.PostalCode},
			[]string{p.Address.CountryCode},
		)
	}
	return Segment{Tag: "NAD", Elements: elements}
}

func generateCTAAndCOM(ct Contact) []Segment {
	segs := []Segment{{Tag: "CTA", Elements: [][]string{{ct.FunctionCode}, {ct.Name}}}}
	for _, com := range ct.Communications {
		segs = append(segs, Segment{Tag: "COM", Elements: [][]string{{com.Number, com.Qualifier}}})
	}
	return segs
}

func generateTDT(t TransportInfo) Segment {
	return Segment{
		Tag: "TDT",
		Elements: [][]string{
			{t.StageQualifier},
			{t.ConveyanceReference},
			{t.ModeCode},
			{"", t.MeansDescription},
			{t.CarrierID, t.CarrierName},
		},
	}
}

func generateALC(ac AllowanceCharge) []Segment {
	code := "A"
	if ac.IsCharge {
		code = "C"
	}
	segs := []Segment{{Tag: "ALC", Elements: [][]string{{code}, {}, {}, {}, {ac.ReasonCode}}}}
	if !ac.Percentage.IsZero() {
		segs = append(segs, Segment{Tag: "PCD", Elements: [][]string{{"1", ac.Percentage.String()}}})
	}
	if !ac.Amount.IsZero() {
		segs = append(segs, Segment{Tag: "MOA", Elements: [][]string{{"23", ac.Amount.String()}}})
	}
	if !ac.BasisAmount.IsZero() {
		segs = append(segs, Segment{Tag: "MOA", Elements: [][]string{{"25", ac.BasisAmount.String()}}})
	}
	return segs
}

func generateTAX(t TaxInfo) []Segment {
	segs := []Segment{{Tag: "TAX", Elements: [][]string{
		{t.TypeCode}, {"", t.CategoryCode}, {}, {}, {"", "", "", t.Rate.String()},
	}}}
	if !t.Amount.IsZero() {
		segs = append(segs, Segment{Tag: "MOA", Elements: [][]string{{"124", t.Amount.String()}}})
	}
	return segs
}

func generateLineItem(line LineItem, isFirst bool) []Segment {
	var segs []Segment

	typeCode := ""
	agency := ""
	productID := ""
	if len(line.Products) > 0 {
		productID = line.Products[0].ID
		typeCode = line.Products[0].TypeCode
	}
	if isFirst && typeCode == "" {
		typeCode = "SRV"
		agency = "9"
	}
	lin := Segment{Tag: "LIN", Elements: [][]string{{line.LineNumber}, {line.ActionCode}, {productID, typeCode, agency}}}
	segs = append(segs, lin)

	if len(line.Products) > 1 {
		for _, p := range line.Products[1:] {
			qualifier := p.TypeCode
			if qualifier == "" {
				qualifier = "5"
			}
			segs = append(segs, Segment{Tag: "PIA", Elements: [][]string{{qualifier}, {p.ID, p.TypeCode, p.Agency}}})
		}
	}
	if line.Description != "" {
		segs = append(segs, Segment{Tag: "IMD", Elements: [][]string{{"F"}, {}, {"", "", "", line.Description}}})
	}
	for _, q := range line.Quantities {
		unit := q.UnitCode
		if unit == "" {
			unit = "PCE"
		}
		segs = append(segs, Segment{Tag: "QTY", Elements: [][]string{{q.Qualifier, q.Value.String(), unit}}})
	}
	for _, d := range line.Dates {
		segs = append(segs, Segment{Tag: "DTM", Elements: [][]string{{d.Qualifier, d.Value, d.Format}}})
	}
	for _, p := range line.Prices {
		segs = append(segs, Segment{Tag: "PRI", Elements: [][]string{{p.Qualifier, p.Amount.String(), "", "", p.Basis.String()}}})
	}
	for _, r := range line.References {
		segs = append(segs, Segment{Tag: "RFF", Elements: [][]string{{r.Qualifier, r.Value}}})
	}
	for _, amt := range line.Amounts {
		segs = append(segs, Segment{Tag: "MOA", Elements: [][]string{{amt.Qualifier, amt.Value.String(), amt.Currency}}})
	}
	for _, t := range line.Taxes {
		segs = append(segs, generateTAX(t)...)
	}
	for _, ac := range line.AllowancesCharges {
		segs = append(segs, generateALC(ac)...)
	}

	return segs
}

func sumLineAmounts(lines []LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.LineAmount)
	}
	return sum
}

func isoToEdifactDate(iso string) string {
	if len(iso) != 10 {
		return iso
	}
	return iso[0:4] + iso[5:7] + iso[8:10]
}
