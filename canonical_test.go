package edifact

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestToCanonicalOrder_PartyRolesAndProductTypes(t *testing.T) {
	rec := OrdersMessage{
		DocumentHeader: DocumentHeader{
			Currency: "EUR",
			Parties: []Party{
				{FunctionCode: "BY", ID: "BUYER1"},
				{FunctionCode: "SU", ID: "SELLER1"},
				{FunctionCode: "DP", ID: "SHIP1"},
				{FunctionCode: "XX", ID: "OTHER1"},
			},
			LineItems: []LineItem{
				{
					LineNumber: "1",
					Products:   []ProductID{{ID: "GTIN1", TypeCode: "EN"}},
					Quantities: []Quantity{{Qualifier: "21", Value: decimal.NewFromInt(5), UnitCode: "PCE"}},
				},
			},
		},
		OrderNumber: "ORDER001",
		OrderDate:   "2023-01-01",
	}

	order := ToCanonicalOrder(rec)
	if order.OrderType != "purchase_order" {
		t.Errorf("order type = %q", order.OrderType)
	}
	if order.Buyer == nil || order.Buyer.ID != "BUYER1" {
		t.Fatalf("buyer = %+v", order.Buyer)
	}
	if order.Seller == nil || order.Seller.ID != "SELLER1" {
		t.Fatalf("seller = %+v", order.Seller)
	}
	if order.ShipTo == nil || order.ShipTo.ID != "SHIP1" {
		t.Fatalf("ship to = %+v", order.ShipTo)
	}
	if len(order.OtherParties) != 1 || order.OtherParties[0].ID != "OTHER1" {
		t.Fatalf("other parties = %+v", order.OtherParties)
	}
	if len(order.LineItems) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(order.LineItems))
	}
	line := order.LineItems[0]
	if line.ProductIDType != "gtin" {
		t.Errorf("product id type = %q, want gtin", line.ProductIDType)
	}
	if line.UnitCode != "each" {
		t.Errorf("unit code = %q, want each", line.UnitCode)
	}
	if !line.Quantity.Equal(decimal.NewFromInt(5)) {
		t.Errorf("quantity = %s, want 5", line.Quantity)
	}
}

func TestFromCanonicalOrder_RoundTripsRoles(t *testing.T) {
	order := Order{
		OrderType:   "purchase_order",
		OrderNumber: "ORDER001",
		OrderDate:   "2023-01-01",
		Currency:    "EUR",
		CanonicalParties: CanonicalParties{
			Buyer:  &Party{ID: "BUYER1"},
			Seller: &Party{ID: "SELLER1"},
		},
		LineItems: []CanonicalLineItem{
			{LineNumber: "1", ProductID: "GTIN1", ProductIDType: "gtin", Quantity: decimal.NewFromInt(5), UnitCode: "each"},
		},
	}

	rec := FromCanonicalOrder(order)
	if len(rec.Parties) != 2 {
		t.Fatalf("expected 2 parties, got %d", len(rec.Parties))
	}
	if rec.Parties[0].FunctionCode != "BY" || rec.Parties[1].FunctionCode != "SU" {
		t.Fatalf("function codes = %+v", rec.Parties)
	}
	if len(rec.LineItems) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(rec.LineItems))
	}
	line := rec.LineItems[0]
	if line.Products[0].TypeCode != "EN" {
		t.Errorf("type code = %q, want EN", line.Products[0].TypeCode)
	}
	if line.Quantities[0].UnitCode != "PCE" {
		t.Errorf("unit code = %q, want PCE", line.Quantities[0].UnitCode)
	}
}

func TestToCanonicalShipment_CarriesPackages(t *testing.T) {
	rec := DesadvMessage{
		DocumentHeader: DocumentHeader{
			Parties: []Party{{FunctionCode: "SU", ID: "SELLER1"}},
		},
		DespatchNumber: "DESADV001",
		Packages:       []Package{{HierarchicalID: "1", PackageTypeCode: "BX"}},
	}
	shipment := ToCanonicalShipment(rec)
	if shipment.DespatchNumber != "DESADV001" {
		t.Errorf("despatch number = %q", shipment.DespatchNumber)
	}
	if shipment.Seller == nil || shipment.Seller.ID != "SELLER1" {
		t.Fatalf("seller = %+v", shipment.Seller)
	}
	if len(shipment.Packages) != 1 || shipment.Packages[0].PackageTypeCode != "BX" {
		t.Fatalf("packages = %+v", shipment.Packages)
	}
}

func TestToCanonicalInvoice_CarriesTotalsAndReferences(t *testing.T) {
	rec := InvoicMessage{
		DocumentHeader:    DocumentHeader{Currency: "EUR"},
		InvoiceNumber:     "INVOICE001",
		OrderReference:    "ORDER001",
		DespatchReference: "DESADV001",
		Totals:            InvoiceTotals{InvoiceTotal: decimal.NewFromInt(100)},
	}
	invoice := ToCanonicalInvoice(rec)
	if invoice.InvoiceNumber != "INVOICE001" {
		t.Errorf("invoice number = %q", invoice.InvoiceNumber)
	}
	if invoice.OrderReference != "ORDER001" || invoice.DespatchReference != "DESADV001" {
		t.Errorf("references = %+v", invoice)
	}
	if !invoice.Totals.InvoiceTotal.Equal(decimal.NewFromInt(100)) {
		t.Errorf("invoice total = %s", invoice.Totals.InvoiceTotal)
	}
}
