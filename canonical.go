package edifact

import "github.com/shopspring/decimal"

// productIDTypeCodes translates EDIFACT item-number-type qualifiers (7143)
// into the canonical identifier kind (spec.md §4.7). A slice, not a map,
// since "gtin" has two source qualifiers (EN, UP) and the reverse mapping
// needs a deterministic preferred code.
var productIDTypeCodes = []struct{ code, kind string }{
	{"EN", "gtin"},
	{"UP", "gtin"},
	{"SA", "sku"},
	{"IN", "buyer-sku"},
	{"SRV", "service"},
}

func productIDKindFor(code string) (string, bool) {
	for _, e := range productIDTypeCodes {
		if e.code == code {
			return e.kind, true
		}
	}
	return "", false
}

func productIDCodeFor(kind string) (string, bool) {
	for _, e := range productIDTypeCodes {
		if e.kind == kind {
			return e.code, true
		}
	}
	return "", false
}

// unitOfMeasureCodes translates EDIFACT unit codes into canonical ones.
var unitOfMeasureCodes = []struct{ code, kind string }{
	{"PCE", "each"},
}

func unitKindFor(code string) (string, bool) {
	for _, e := range unitOfMeasureCodes {
		if e.code == code {
			return e.kind, true
		}
	}
	return "", false
}

func unitCodeFor(kind string) (string, bool) {
	for _, e := range unitOfMeasureCodes {
		if e.kind == kind {
			return e.code, true
		}
	}
	return "", false
}

// CanonicalLineItem is the vendor-neutral line shape the mapper produces
// for every document kind (spec.md §4.7).
type CanonicalLineItem struct {
	LineNumber    string
	ProductID     string
	ProductIDType string // gtin, sku, buyer-sku, service, or the raw qualifier when unrecognized
	Description   string
	Quantity      decimal.Decimal
	UnitCode      string // canonical unit when mapped, else the raw EDIFACT code
	UnitPrice     decimal.Decimal
	LineAmount    decimal.Decimal
}

// CanonicalParties holds the named roles every canonical document carries
// plus an overflow bucket for unrecognized NAD qualifiers (spec.md §4.7:
// "unknown qualifiers are preserved under otherParties").
type CanonicalParties struct {
	Buyer        *Party
	Seller       *Party
	ShipTo       *Party
	Invoicee     *Party
	OtherParties []Party
}

// Order is the canonical purchase-order shape, bidirectional with
// Edifact_ORDERS (spec.md §3, §4.7).
type Order struct {
	OrderType string // always "purchase_order"
	CanonicalParties
	OrderNumber string
	OrderDate   string
	Currency    string
	LineItems   []CanonicalLineItem
}

// OrderResponse is the canonical order-response shape, mapped one-way from
// Edifact_ORDRSP.
type OrderResponse struct {
	Order
	FunctionCode   string
	OrderReference string
}

// Shipment is the canonical despatch-advice shape, mapped one-way from
// Edifact_DESADV.
type Shipment struct {
	CanonicalParties
	DespatchNumber string
	DespatchDate   string
	Transport      *TransportInfo
	Equipment      []Equipment
	Packages       []Package
	LineItems      []CanonicalLineItem
}

// Invoice is the canonical invoice shape, mapped one-way from
// Edifact_INVOIC.
type Invoice struct {
	CanonicalParties
	InvoiceNumber     string
	InvoiceDate       string
	Currency          string
	OrderReference    string
	DespatchReference string
	LineItems         []CanonicalLineItem
	Totals            InvoiceTotals
}

// assignPartyRole routes a Party into its named canonical slot per its NAD
// function-code qualifier, or into OtherParties when the qualifier isn't
// one of the four named roles (spec.md §4.7).
func assignPartyRole(cp *CanonicalParties, p Party) {
	party := p
	switch p.FunctionCode {
	case "BY":
		cp.Buyer = &party
	case "SU":
		cp.Seller = &party
	case "DP":
		cp.ShipTo = &party
	case "IV":
		cp.Invoicee = &party
	default:
		cp.OtherParties = append(cp.OtherParties, party)
	}
}

func mapPartiesToCanonical(parties []Party) CanonicalParties {
	var cp CanonicalParties
	for _, p := range parties {
		assignPartyRole(&cp, p)
	}
	return cp
}

// partiesFromCanonical is the inverse of mapPartiesToCanonical, restoring
// the named roles' NAD function codes and appending any overflow parties
// unchanged.
func partiesFromCanonical(cp CanonicalParties) []Party {
	var parties []Party
	add := func(p *Party, code string) {
		if p == nil {
			return
		}
		party := *p
		party.FunctionCode = code
		parties = append(parties, party)
	}
	add(cp.Buyer, "BY")
	add(cp.Seller, "SU")
	add(cp.ShipTo, "DP")
	add(cp.Invoicee, "IV")
	parties = append(parties, cp.OtherParties...)
	return parties
}

func mapLineItemToCanonical(l LineItem) CanonicalLineItem {
	cl := CanonicalLineItem{
		LineNumber:  l.LineNumber,
		Description: l.Description,
		Quantity:    l.Quantity,
		UnitPrice:   l.UnitPrice,
		LineAmount:  l.LineAmount,
		UnitCode:    l.UnitCode,
	}
	if cl.Quantity.IsZero() && len(l.Quantities) > 0 {
		for _, q := range l.Quantities {
			if q.Qualifier == "21" {
				cl.Quantity = q.Value
				cl.UnitCode = q.UnitCode
				break
			}
		}
	}
	if unit, ok := unitKindFor(cl.UnitCode); ok {
		cl.UnitCode = unit
	}
	if len(l.Products) > 0 {
		p := l.Products[0]
		cl.ProductID = p.ID
		if kind, ok := productIDKindFor(p.TypeCode); ok {
			cl.ProductIDType = kind
		} else {
			cl.ProductIDType = p.TypeCode
		}
	}
	return cl
}

func lineItemFromCanonical(cl CanonicalLineItem) LineItem {
	typeCode := cl.ProductIDType
	if code, ok := productIDCodeFor(cl.ProductIDType); ok {
		typeCode = code
	}
	unit := cl.UnitCode
	if code, ok := unitCodeFor(cl.UnitCode); ok {
		unit = code
	}
	return LineItem{
		LineNumber:  cl.LineNumber,
		Description: cl.Description,
		LineAmount:  cl.LineAmount,
		UnitPrice:   cl.UnitPrice,
		Quantity:    cl.Quantity,
		UnitCode:    unit,
		Products:    []ProductID{{ID: cl.ProductID, TypeCode: typeCode}},
		Quantities:  []Quantity{{Qualifier: "21", Value: cl.Quantity, UnitCode: unit}},
		Amounts:     []Amount{{Qualifier: "203", Value: cl.LineAmount}},
	}
}

// ToCanonicalOrder maps a parsed ORDERS record to the canonical Order
// shape (spec.md §4.7).
func ToCanonicalOrder(rec OrdersMessage) Order {
	o := Order{
		OrderType:        "purchase_order",
		CanonicalParties: mapPartiesToCanonical(rec.Parties),
		OrderNumber:      rec.OrderNumber,
		OrderDate:        rec.OrderDate,
		Currency:         rec.Currency,
	}
	for _, l := range rec.LineItems {
		o.LineItems = append(o.LineItems, mapLineItemToCanonical(l))
	}
	return o
}

// FromCanonicalOrder maps a canonical Order back into an ORDERS record,
// the inverse half of spec.md §4.7's bidirectional ORDERS mapping.
func FromCanonicalOrder(o Order) OrdersMessage {
	rec := OrdersMessage{
		OrderNumber: o.OrderNumber,
		OrderDate:   o.OrderDate,
	}
	rec.Currency = o.Currency
	rec.Parties = partiesFromCanonical(o.CanonicalParties)
	for _, l := range o.LineItems {
		rec.LineItems = append(rec.LineItems, lineItemFromCanonical(l))
	}
	return rec
}

// ToCanonicalOrderResponse maps a parsed ORDRSP record one-way to the
// canonical OrderResponse shape.
func ToCanonicalOrderResponse(rec OrdrspMessage) OrderResponse {
	resp := OrderResponse{
		Order: Order{
			OrderType:        "purchase_order",
			CanonicalParties: mapPartiesToCanonical(rec.Parties),
			OrderNumber:      rec.DocumentNumber,
			OrderDate:        rec.DocumentDate,
			Currency:         rec.Currency,
		},
		FunctionCode:   rec.FunctionCode,
		OrderReference: rec.OrderReference,
	}
	for _, l := range rec.LineItems {
		resp.LineItems = append(resp.LineItems, mapLineItemToCanonical(l))
	}
	return resp
}

// ToCanonicalShipment maps a parsed DESADV record one-way to the
// canonical Shipment shape (spec.md §4.7).
func ToCanonicalShipment(rec DesadvMessage) Shipment {
	s := Shipment{
		CanonicalParties: mapPartiesToCanonical(rec.Parties),
		DespatchNumber:   rec.DespatchNumber,
		DespatchDate:     rec.DespatchDate,
		Transport:        rec.Transport,
		Equipment:        rec.Equipment,
		Packages:         rec.Packages,
	}
	for _, l := range rec.LineItems {
		s.LineItems = append(s.LineItems, mapLineItemToCanonical(l))
	}
	return s
}

// ToCanonicalInvoice maps a parsed INVOIC record one-way to the canonical
// Invoice shape (spec.md §4.7).
func ToCanonicalInvoice(rec InvoicMessage) Invoice {
	inv := Invoice{
		CanonicalParties:  mapPartiesToCanonical(rec.Parties),
		InvoiceNumber:     rec.InvoiceNumber,
		InvoiceDate:       rec.InvoiceDate,
		Currency:          rec.Currency,
		OrderReference:    rec.OrderReference,
		DespatchReference: rec.DespatchReference,
		Totals:            rec.Totals,
	}
	for _, l := range rec.LineItems {
		inv.LineItems = append(inv.LineItems, mapLineItemToCanonical(l))
	}
	return inv
}
