package edifact

import "testing"

func TestParseOrdrsp_ActionCodes(t *testing.T) {
	doc := "UNA:+.? '" +
		"UNB+UNOA:4+SENDER:ZZ+RECEIVER:ZZ+230101:1200+00000001'" +
		"UNH+1+ORDRSP:D:96A:UN'" +
		"BGM+231+ORDER001+4'" +
		"RFF+ON:ORDER001'" +
		"LIN+1+3+PRODUCT1:EN:9'" +
		"LIN+2+7+PRODUCT2:EN:9'" +
		"UNS+S'" +
		"UNT+7+1'" +
		"UNZ+1+00000001'"
	res := Parse([]byte(doc))
	if !res.Success {
		t.Fatalf("parse failed: %v", res.Errors)
	}
	msgs := res.Interchange.AllMessages()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}

	rec, diags := ParseOrdrsp(msgs[0], res.Interchange.Delimiters)
	if len(diags.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", diags)
	}
	if rec.FunctionCode != "4" {
		t.Errorf("function code = %q, want 4", rec.FunctionCode)
	}
	if rec.OrderReference != "ORDER001" {
		t.Errorf("order reference = %q, want ORDER001", rec.OrderReference)
	}
	if len(rec.LineItems) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(rec.LineItems))
	}
	if rec.LineItems[0].ActionCode != "3" {
		t.Errorf("line 0 action code = %q, want 3", rec.LineItems[0].ActionCode)
	}
	if rec.LineItems[1].ActionCode != "7" {
		t.Errorf("line 1 action code = %q, want 7", rec.LineItems[1].ActionCode)
	}
}

func TestGenerateOrdrsp_PreservesFunctionCodeAndType(t *testing.T) {
	rec := OrdrspMessage{
		DocumentHeader: DocumentHeader{
			MessageReferenceNumber: "1",
			DocumentTypeCode:       "231",
			DocumentNumber:         "ORDER001",
			References:             []Reference{{Qualifier: "ON", Value: "ORDER001"}},
			LineItems: []LineItem{
				{LineNumber: "1", ActionCode: "3"},
			},
		},
		OrderReference: "ORDER001",
		FunctionCode:   "4",
	}

	msg := GenerateOrdrsp(rec, "D", "96A")
	if msg.Header.MessageType != "ORDRSP" {
		t.Fatalf("message type = %q, want ORDRSP", msg.Header.MessageType)
	}

	bgm := msg.Body[0]
	if bgm.Tag != "BGM" || bgm.Value(2) != "4" {
		t.Errorf("BGM function code not preserved: %+v", bgm)
	}
}
