package edifact

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseInvoic_TotalsFromSummaryMOA(t *testing.T) {
	doc := "UNA:+.? '" +
		"UNB+UNOA:4+SENDER:ZZ+RECEIVER:ZZ+230101:1200+00000001'" +
		"UNH+1+INVOIC:D:96A:UN'" +
		"BGM+380+INVOICE001+9'" +
		"DTM+137:20230103:102'" +
		"RFF+ON:ORDER001'" +
		"RFF+DQ:DESADV001'" +
		"PAT+1++30 days net'" +
		"FII+BF+ACC123::NAME+BANK001:NAME'" +
		"LIN+1++PRODUCT1:EN:9'" +
		"QTY+47:10:PCE'" +
		"PRI+AAA:12.50'" +
		"MOA+203:125.00'" +
		"UNS+S'" +
		"MOA+79:125.00'" +
		"MOA+176:10.00'" +
		"MOA+77:135.00'" +
		"UNT+16+1'" +
		"UNZ+1+00000001'"
	res := Parse([]byte(doc))
	if !res.Success {
		t.Fatalf("parse failed: %v", res.Errors)
	}
	msgs := res.Interchange.AllMessages()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}

	rec, diags := ParseInvoic(msgs[0], res.Interchange.Delimiters)
	if len(diags.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", diags)
	}
	if rec.InvoiceNumber != "INVOICE001" {
		t.Errorf("invoice number = %q", rec.InvoiceNumber)
	}
	if rec.OrderReference != "ORDER001" {
		t.Errorf("order reference = %q", rec.OrderReference)
	}
	if rec.DespatchReference != "DESADV001" {
		t.Errorf("despatch reference = %q", rec.DespatchReference)
	}
	if len(rec.PaymentTerms) != 1 || rec.PaymentTerms[0].Description != "30 days net" {
		t.Fatalf("payment terms = %+v", rec.PaymentTerms)
	}
	if len(rec.PaymentInstructions) != 1 || rec.PaymentInstructions[0].AccountNumber != "ACC123" {
		t.Fatalf("payment instructions = %+v", rec.PaymentInstructions)
	}
	if len(rec.LineItems) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(rec.LineItems))
	}
	line := rec.LineItems[0]
	if !line.Quantity.Equal(decimal.NewFromInt(10)) {
		t.Errorf("line quantity = %s", line.Quantity)
	}
	if !line.UnitPrice.Equal(decimal.NewFromFloat(12.50)) {
		t.Errorf("line unit price = %s", line.UnitPrice)
	}
	if !line.LineAmount.Equal(decimal.NewFromFloat(125.00)) {
		t.Errorf("line amount = %s", line.LineAmount)
	}
	if !rec.Totals.LineItemsTotal.Equal(decimal.NewFromFloat(125.00)) {
		t.Errorf("line items total = %s", rec.Totals.LineItemsTotal)
	}
	if !rec.Totals.TotalTaxAmount.Equal(decimal.NewFromFloat(10.00)) {
		t.Errorf("total tax = %s", rec.Totals.TotalTaxAmount)
	}
	if !rec.Totals.InvoiceTotal.Equal(decimal.NewFromFloat(135.00)) {
		t.Errorf("invoice total = %s", rec.Totals.InvoiceTotal)
	}
}

func TestParseInvoic_ComputesMissingTotals(t *testing.T) {
	doc := "UNA:+.? '" +
		"UNB+UNOA:4+SENDER:ZZ+RECEIVER:ZZ+230101:1200+00000001'" +
		"UNH+1+INVOIC:D:96A:UN'" +
		"BGM+380+INVOICE002+9'" +
		"LIN+1++PRODUCT1:EN:9'" +
		"QTY+47:2:PCE'" +
		"PRI+AAA:50.00'" +
		"MOA+203:100.00'" +
		"UNS+S'" +
		"UNT+8+1'" +
		"UNZ+1+00000001'"
	res := Parse([]byte(doc))
	if !res.Success {
		t.Fatalf("parse failed: %v", res.Errors)
	}
	rec, diags := ParseInvoic(res.Interchange.AllMessages()[0], res.Interchange.Delimiters)
	if len(diags.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", diags)
	}
	if !rec.Totals.LineItemsTotal.Equal(decimal.NewFromFloat(100.00)) {
		t.Errorf("computed line items total = %s", rec.Totals.LineItemsTotal)
	}
	if !rec.Totals.InvoiceTotal.Equal(decimal.NewFromFloat(100.00)) {
		t.Errorf("computed invoice total = %s", rec.Totals.InvoiceTotal)
	}
}
