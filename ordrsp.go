package edifact

// OrdrspMessage is the parsed record for an ORDRSP (order response)
// message (spec.md §4.5). FunctionCode preserves BGM element 3 so a
// caller can distinguish confirmation (4) from not-accepted (27) from
// amended (29).
type OrdrspMessage struct {
	DocumentHeader
	OrderReference string // lifted from RFF+ON
	FunctionCode   string // BGM element 3
}

// ParseOrdrsp walks an ORDRSP message's body segments. It shares the
// section state machine and segment handlers with ParseOrders; the only
// ORDRSP-specific behavior is the RFF+ON lift to OrderReference and
// carrying BGM's function code, since LIN's action code is already
// captured on every LineItem by handleLIN.
func ParseOrdrsp(m Message, d Delimiters) (OrdrspMessage, Diagnostics) {
	rec := OrdrspMessage{}
	rec.MessageReferenceNumber = m.Header.MessageReferenceNumber
	rec.MessageType = m.Header.MessageType

	c := newScanCursor(&rec.DocumentHeader, d)
	var partyPtrs []*Party

	for i := 0; i < len(m.Body); i++ {
		seg := m.Body[i]
		switch seg.Tag {
		case "BGM":
			handleBGM(c, seg)
			rec.FunctionCode = seg.Value(2)
		case "DTM":
			handleDTM(c, seg)
		case "FTX":
			handleFTX(c, seg)
		case "RFF":
			handleRFF(c, seg)
			if c.currentParty == nil && seg.Component(0, 0) == "ON" {
				rec.OrderReference = seg.Component(0, 1)
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

	return rec, c.diags
}

// GenerateOrdrsp emits ORDRSP body segments. It reuses ORDERS's fixed
// segment order (spec.md §4.6 is defined for ORDERS, and ORDRSP shares
// the same header/line/summary shape) by delegating to an OrdersMessage
// projection that carries the ORDRSP-specific BGM function code, then
// relabels the message type as ORDRSP.
// OrderReference is a read-only convenience alias lifted from whatever
// RFF+ON entry already lives in DocumentHeader.References, so it is not
// re-emitted here to avoid a duplicate RFF.
func GenerateOrdrsp(rec OrdrspMessage, version, release string) Message {
	proj := OrdersMessage{DocumentHeader: rec.DocumentHeader}
	proj.MessageFunctionCode = rec.FunctionCode
	proj.OrderNumber = rec.DocumentNumber
	proj.OrderDate = rec.DocumentDate
	msg := GenerateOrders(proj, version, release)
	msg.Header.MessageType = "ORDRSP"
	return msg
}
