package edifact

// Equipment is one EQD entry (DESADV transport extension, spec.md §4.5).
type Equipment struct {
	TypeCode string
	ID       string
}

// DesadvMessage is the parsed record for a DESADV (despatch advice)
// message. Packages holds the CPS/PAC/PCI/GIN hierarchy flattened into a
// list; HierarchicalID/ParentHierarchicalID let a caller reconstruct the
// tree.
type DesadvMessage struct {
	DocumentHeader
	DespatchNumber string
	DespatchDate   string
	Transport      *TransportInfo
	Equipment      []Equipment
	Packages       []Package
}

// ParseDesadv walks a DESADV message's body segments, sharing the common
// dispatch with ORDERS/ORDRSP and adding TDT/EQD/CPS/PAC/PCI/GIN handling
// for transport and the packaging hierarchy (spec.md §4.5 DESADV
// extensions).
func ParseDesadv(m Message, d Delimiters) (DesadvMessage, Diagnostics) {
	rec := DesadvMessage{}
	rec.MessageReferenceNumber = m.Header.MessageReferenceNumber
	rec.MessageType = m.Header.MessageType

	c := newScanCursor(&rec.DocumentHeader, d)
	var partyPtrs []*Party
	var currentPackage *Package

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
		case "TDT":
			rec.Transport = parseTDT(seg)
		case "EQD":
			rec.Equipment = append(rec.Equipment, Equipment{
				TypeCode: seg.Value(0),
				ID:       seg.Component(1, 0),
			})
		case "CPS":
			if currentPackage != nil {
				rec.Packages = append(rec.Packages, *currentPackage)
			}
			currentPackage = &Package{
				HierarchicalID:       seg.Value(0),
				ParentHierarchicalID: seg.Value(1),
			}
		case "PAC":
			if currentPackage != nil {
				currentPackage.PackageCount = seg.Value(0)
				currentPackage.PackageTypeCode = seg.Component(1, 0)
			}
		case "PCI":
			if currentPackage != nil {
				currentPackage.ShippingMarks = seg.Value(1)
				if mark := seg.Value(0); mark != "" {
					currentPackage.MarksAndNumbers = append(currentPackage.MarksAndNumbers, mark)
				}
			}
		case "GIN":
			if currentPackage != nil && seg.Value(0) == "SN" {
				for n := 1; n < len(seg.Elements); n++ {
					if v := seg.Value(n); v != "" {
						currentPackage.SerialNumbers = append(currentPackage.SerialNumbers, v)
					}
				}
			}
		case "ALC":
			ac, next := consumeALC(m.Body, i, d.DecimalNotation)
			appendAllowanceCharge(c, ac)
			i = next
		case "TAX":
			tax, next := consumeTAX(m.Body, i, d.DecimalNotation)
			appendTax(c, tax)
			i = next
		case "LIN":
			if currentPackage != nil {
				rec.Packages = append(rec.Packages, *currentPackage)
				currentPackage = nil
			}
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
	if currentPackage != nil {
		rec.Packages = append(rec.Packages, *currentPackage)
	}
	c.closeLine()
	for _, p := range partyPtrs {
		rec.Parties = append(rec.Parties, *p)
	}

	rec.DespatchNumber = rec.DocumentNumber
	rec.DespatchDate = rec.DocumentDate

	return rec, c.diags
}
