package edifact

import "testing"

func TestParseDesadv_PackageHierarchy(t *testing.T) {
	doc := "UNA:+.? '" +
		"UNB+UNOA:4+SENDER:ZZ+RECEIVER:ZZ+230101:1200+00000001'" +
		"UNH+1+DESADV:D:96A:UN'" +
		"BGM+351+DESADV001+9'" +
		"DTM+137:20230102:102'" +
		"TDT+20++30:Road Transport'" +
		"EQD+TE+CONTAINER1'" +
		"CPS+1'" +
		"PAC+2+BX'" +
		"PCI+AAA+Fragile'" +
		"GIN+SN+SERIAL1+SERIAL2'" +
		"CPS+2+1'" +
		"PAC+1+BX'" +
		"LIN+1++PRODUCT1:EN:9'" +
		"QTY+12:5:PCE'" +
		"UNS+S'" +
		"UNT+15+1'" +
		"UNZ+1+00000001'"
	res := Parse([]byte(doc))
	if !res.Success {
		t.Fatalf("parse failed: %v", res.Errors)
	}
	msgs := res.Interchange.AllMessages()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}

	rec, diags := ParseDesadv(msgs[0], res.Interchange.Delimiters)
	if len(diags.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", diags)
	}
	if rec.DespatchNumber != "DESADV001" {
		t.Errorf("despatch number = %q", rec.DespatchNumber)
	}
	if rec.Transport == nil || rec.Transport.ModeCode != "30" {
		t.Fatalf("transport = %+v", rec.Transport)
	}
	if len(rec.Equipment) != 1 || rec.Equipment[0].ID != "CONTAINER1" {
		t.Fatalf("equipment = %+v", rec.Equipment)
	}
	if len(rec.Packages) != 2 {
		t.Fatalf("expected 2 packages, got %d: %+v", len(rec.Packages), rec.Packages)
	}
	p0 := rec.Packages[0]
	if p0.HierarchicalID != "1" || p0.ParentHierarchicalID != "" {
		t.Errorf("package 0 hierarchy = %+v", p0)
	}
	if p0.PackageTypeCode != "BX" || p0.PackageCount != "2" {
		t.Errorf("package 0 pac = %+v", p0)
	}
	if len(p0.SerialNumbers) != 2 || p0.SerialNumbers[0] != "SERIAL1" {
		t.Errorf("package 0 serials = %+v", p0.SerialNumbers)
	}
	p1 := rec.Packages[1]
	if p1.HierarchicalID != "2" || p1.ParentHierarchicalID != "1" {
		t.Errorf("package 1 hierarchy = %+v", p1)
	}
	if len(rec.LineItems) != 1 || rec.LineItems[0].Products[0].ID != "PRODUCT1" {
		t.Fatalf("line items = %+v", rec.LineItems)
	}
}
