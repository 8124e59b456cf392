package edifact

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

// decimalCmpOpts compares decimal.Decimal by value rather than by internal
// representation, grounded on the teacher's assertInvoiceEqual helper in
// einvoice_test.go.
var decimalCmpOpts = cmp.Comparer(func(a, b decimal.Decimal) bool {
	return a.Equal(b)
})

// TestRoundTrip_Orders builds a full interchange through BuildInterchange
// and Generate, parses the resulting bytes back through Parse/ParseOrders,
// and asserts the reconstructed record is structurally equal to the one
// that produced it plus the header fields ParseOrders derives from BGM and
// DTM 137 (spec.md §8's parse(generate(x)) ~= x invariant),
// exercising party references, line references, and line amounts together
// so a stale scan-cursor party (spec.md §4.5) can't silently misroute a
// line-level RFF onto the wrong party.
func TestRoundTrip_Orders(t *testing.T) {
	rec := OrdersMessage{
		DocumentHeader: DocumentHeader{
			MessageReferenceNumber: "1",
			MessageType:            "ORDERS",
			DocumentTypeCode:       "220",
			MessageFunctionCode:    "9",
			Currency:               "EUR",
			Parties: []Party{
				{
					FunctionCode: "BY", ID: "BUYER123", IDAgency: "9", Name: []string{"Buyer Name"},
					References: []Reference{{Qualifier: "VN", Value: "VENDOR001"}},
				},
				{FunctionCode: "SU", ID: "SELLER456", IDAgency: "9"},
			},
			LineItems: []LineItem{
				{
					LineNumber: "1",
					Products:   []ProductID{{ID: "PRODUCT1", TypeCode: "EN"}},
					Quantities: []Quantity{{Qualifier: "21", Value: decimal.NewFromInt(10), UnitCode: "PCE"}},
					Amounts:    []Amount{{Qualifier: "203", Value: decimal.NewFromInt(100)}},
					References: []Reference{{Qualifier: "LI", Value: "LINEREF1"}},
					LineAmount: decimal.NewFromInt(100),
				},
				{
					LineNumber: "2",
					Products:   []ProductID{{ID: "PRODUCT2", TypeCode: "SA"}},
					Quantities: []Quantity{{Qualifier: "21", Value: decimal.NewFromInt(3), UnitCode: "PCE"}},
					Amounts:    []Amount{{Qualifier: "203", Value: decimal.NewFromInt(30)}},
					LineAmount: decimal.NewFromInt(30),
				},
			},
		},
		OrderNumber: "ORDER001",
		OrderDate:   "2023-01-01",
	}

	msg := GenerateOrders(rec, "D", "96A")

	ic := BuildInterchange(
		[]Message{msg},
		PartyID{ID: "SENDER"},
		PartyID{ID: "RECEIVER"},
		BuildOptions{
			Clock:              FixedClock{},
			ReferenceGenerator: NewCounterReferenceGenerator(),
		},
	)

	out, err := Generate(ic, DefaultGenerateOptions())
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	res := Parse(out)
	if !res.Success {
		t.Fatalf("reparse failed: %v", res.Errors)
	}
	msgs := res.Interchange.AllMessages()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}

	roundTripped, diags := ParseOrders(msgs[0], res.Interchange.Delimiters)
	if len(diags.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", diags)
	}

	// ParseOrders fills DocumentNumber/DocumentDate alongside their
	// OrderNumber/OrderDate aliases and keeps the DTM 137 entry in the
	// header date list, so those are part of the expected record.
	want := rec
	want.DocumentNumber = rec.OrderNumber
	want.DocumentDate = rec.OrderDate
	want.Dates = []DateRef{{Qualifier: "137", Value: "20230101", Format: "102"}}
	if diff := cmp.Diff(want, roundTripped, decimalCmpOpts); diff != "" {
		t.Errorf("ORDERS round-trip mismatch (-want +got):\n%s", diff)
	}
}

// TestRoundTrip_CanonicalOrder exercises the facade mapper verbs end to
// end: canonical Order -> ORDERS message -> wire bytes -> parsed ORDERS
// message -> canonical Order again, comparing the reconstructed Order
// structurally against what OrdersToOrder should have produced.
func TestRoundTrip_CanonicalOrder(t *testing.T) {
	order := Order{
		OrderType:   "purchase_order",
		OrderNumber: "ORDER002",
		OrderDate:   "2023-06-15",
		Currency:    "USD",
		CanonicalParties: CanonicalParties{
			Buyer:  &Party{ID: "BUYER1", IDAgency: "9"},
			Seller: &Party{ID: "SELLER1", IDAgency: "9"},
		},
		LineItems: []CanonicalLineItem{
			{LineNumber: "1", ProductID: "GTIN1", ProductIDType: "gtin", Quantity: decimal.NewFromInt(5), UnitCode: "each", LineAmount: decimal.NewFromInt(50)},
		},
	}

	rec := OrderToOrders(order)
	rec.MessageReferenceNumber = "1"
	msg := GenerateOrders(rec, "D", "96A")

	ic := BuildInterchange(
		[]Message{msg},
		PartyID{ID: "SENDER"},
		PartyID{ID: "RECEIVER"},
		BuildOptions{Clock: FixedClock{}, ReferenceGenerator: NewCounterReferenceGenerator()},
	)

	out, err := Generate(ic, DefaultGenerateOptions())
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	res := Parse(out)
	if !res.Success {
		t.Fatalf("reparse failed: %v", res.Errors)
	}
	reparsed, diags := ParseOrders(res.Interchange.AllMessages()[0], res.Interchange.Delimiters)
	if len(diags.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", diags)
	}

	back := OrdersToOrder(reparsed)
	want := Order{
		OrderType:   "purchase_order",
		OrderNumber: "ORDER002",
		OrderDate:   "2023-06-15",
		Currency:    "USD",
		CanonicalParties: CanonicalParties{
			Buyer:  &Party{FunctionCode: "BY", ID: "BUYER1", IDAgency: "9"},
			Seller: &Party{FunctionCode: "SU", ID: "SELLER1", IDAgency: "9"},
		},
		LineItems: []CanonicalLineItem{
			{LineNumber: "1", ProductID: "GTIN1", ProductIDType: "gtin", Quantity: decimal.NewFromInt(5), UnitCode: "each", LineAmount: decimal.NewFromInt(50)},
		},
	}

	if diff := cmp.Diff(want, back, decimalCmpOpts); diff != "" {
		t.Errorf("canonical order round-trip mismatch (-want +got):\n%s", diff)
	}
}
