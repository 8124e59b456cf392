package edifact

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()
	if !cfg.IncludeUNA {
		t.Error("IncludeUNA should default true")
	}
	if cfg.SyntaxIdentifier != "UNOA" {
		t.Errorf("SyntaxIdentifier = %q, want UNOA", cfg.SyntaxIdentifier)
	}
	if cfg.SyntaxVersion != "4" {
		t.Errorf("SyntaxVersion = %q, want 4", cfg.SyntaxVersion)
	}
	if cfg.Version != "D" || cfg.Release != "96A" {
		t.Errorf("version/release = %s/%s, want D/96A", cfg.Version, cfg.Release)
	}
}

func TestNewConfig_Options(t *testing.T) {
	cfg := NewConfig(
		WithIncludeUNA(false),
		WithFunctionalGroups(true),
		WithVersionRelease("S", "4"),
	)
	if cfg.IncludeUNA {
		t.Error("IncludeUNA should be false")
	}
	if !cfg.UseFunctionalGroups {
		t.Error("UseFunctionalGroups should be true")
	}
	if cfg.Version != "S" || cfg.Release != "4" {
		t.Errorf("version/release = %s/%s, want S/4", cfg.Version, cfg.Release)
	}
}

const sampleOrders = "UNA:+.? '" +
	"UNB+UNOA:4+SENDER:ZZ+RECEIVER:ZZ+230101:1200+00000001'" +
	"UNH+1+ORDERS:D:96A:UN'" +
	"BGM+220+ORDER001+9'" +
	"DTM+137:20230101:102'" +
	"NAD+BY+BUYER1::9'" +
	"LIN+1++PRODUCT1:EN:9'" +
	"QTY+21:5:PCE'" +
	"UNS+S'" +
	"UNT+8+1'" +
	"UNZ+1+00000001'"

func TestCodec_ParseDocument_NilLoggerIsNoop(t *testing.T) {
	cd := NewCodec(nil)
	res := cd.ParseDocument([]byte(sampleOrders))
	if !res.Success {
		t.Fatalf("parse failed: %v", res.Errors)
	}
}

func TestCodec_ParseDocument_LogsWarnings(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	cd := NewCodec(logger)
	doc := strings.Replace(sampleOrders, "UNZ+1+00000001'", "UNZ+1+00000002'", 1)
	res := cd.ParseDocument([]byte(doc))
	if !res.Success {
		t.Fatalf("parse failed: %v", res.Errors)
	}
	if !strings.Contains(buf.String(), string(CodeControlReferenceMismatch)) {
		t.Errorf("expected a logged %s warning, got %q", CodeControlReferenceMismatch, buf.String())
	}
}

func TestParseAndExtractMessages_RoutesByType(t *testing.T) {
	_, byType, err := ParseAndExtractMessages([]byte(sampleOrders))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	orders, ok := byType["ORDERS"]
	if !ok || len(orders) != 1 {
		t.Fatalf("expected 1 ORDERS record, got %+v", byType)
	}
	rec, ok := orders[0].(OrdersMessage)
	if !ok {
		t.Fatalf("expected OrdersMessage, got %T", orders[0])
	}
	if rec.OrderNumber != "ORDER001" {
		t.Errorf("order number = %q", rec.OrderNumber)
	}
}

func TestGetMessageType_And_GetDocumentVersion(t *testing.T) {
	res := Parse([]byte(sampleOrders))
	if !res.Success {
		t.Fatalf("parse failed: %v", res.Errors)
	}
	m := res.Interchange.AllMessages()[0]
	if GetMessageType(m) != "ORDERS" {
		t.Errorf("message type = %q", GetMessageType(m))
	}
	if GetDocumentVersion(m) != "D:96A" {
		t.Errorf("document version = %q", GetDocumentVersion(m))
	}
}

func TestPeekSenderRecipient(t *testing.T) {
	sender, recipient, err := PeekSenderRecipient([]byte(sampleOrders))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sender != "SENDER" || recipient != "RECEIVER" {
		t.Errorf("sender/recipient = %s/%s", sender, recipient)
	}
}

func TestPeekInterchangeControlReference(t *testing.T) {
	ref, err := PeekInterchangeControlReference([]byte(sampleOrders))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref != "00000001" {
		t.Errorf("control reference = %q", ref)
	}
}

func TestMapperVerbAliases(t *testing.T) {
	res := Parse([]byte(sampleOrders))
	if !res.Success {
		t.Fatalf("parse failed: %v", res.Errors)
	}
	rec, _ := ParseOrders(res.Interchange.AllMessages()[0], res.Interchange.Delimiters)
	order := OrdersToOrder(rec)
	if order.Buyer == nil || order.Buyer.ID != "BUYER1" {
		t.Fatalf("buyer = %+v", order.Buyer)
	}
	back := OrderToOrders(order)
	if back.Parties[0].FunctionCode != "BY" {
		t.Errorf("function code = %q", back.Parties[0].FunctionCode)
	}
}
