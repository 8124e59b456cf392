package codelists

import "testing"

func TestPartyFunction(t *testing.T) {
	tests := []struct{ code, want string }{
		{"BY", "Buyer"},
		{"SU", "Seller"},
		{"XX", "Unknown"},
		{"", "Unknown"},
	}
	for _, tt := range tests {
		if got := PartyFunction(tt.code); got != tt.want {
			t.Errorf("PartyFunction(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestDocumentName(t *testing.T) {
	if got := DocumentName("380"); got != "Commercial invoice" {
		t.Errorf("DocumentName(380) = %q", got)
	}
	if got := DocumentName("999"); got != "Unknown" {
		t.Errorf("DocumentName(999) = %q, want Unknown", got)
	}
}

func TestItemNumberType(t *testing.T) {
	if got := ItemNumberType("EN"); got != "EAN/GTIN" {
		t.Errorf("ItemNumberType(EN) = %q", got)
	}
}

func TestUnitOfMeasure_FallsBackToCode(t *testing.T) {
	if got := UnitOfMeasure("PCE"); got != "Piece" {
		t.Errorf("UnitOfMeasure(PCE) = %q", got)
	}
	if got := UnitOfMeasure("ZZZ"); got != "ZZZ" {
		t.Errorf("UnitOfMeasure(ZZZ) = %q, want passthrough", got)
	}
}

func TestMonetaryAmountType(t *testing.T) {
	if got := MonetaryAmountType("77"); got != "Invoice total amount" {
		t.Errorf("MonetaryAmountType(77) = %q", got)
	}
}

func TestQuantityQualifier(t *testing.T) {
	if got := QuantityQualifier("21"); got != "Ordered quantity" {
		t.Errorf("QuantityQualifier(21) = %q", got)
	}
}
