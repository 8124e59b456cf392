// Package edifact implements a UN/EDIFACT interchange codec: tokenizing,
// envelope parsing/generation, structural validation, per-message-type
// record extraction, and a canonical document mapper for ORDERS, ORDRSP,
// DESADV, and INVOIC.
package edifact

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Config carries the enumerated configuration surface of spec.md §6.
// Functional options build one from the documented defaults, the way the
// teacher's cmd/einvoice subcommands assemble a flag struct from CLI
// input (profile_constants.go's scattered Code*Type option constants,
// gathered here into one place).
type Config struct {
	Delimiters          *Delimiters
	LineBreaks          bool
	IncludeUNA          bool
	UseFunctionalGroups bool
	TestIndicator       bool
	SyntaxIdentifier    string
	SyntaxVersion       string
	ControlReference    string
	Version             string
	Release             string
}

// Option configures a Config.
type Option func(*Config)

func WithDelimiters(d Delimiters) Option    { return func(c *Config) { c.Delimiters = &d } }
func WithLineBreaks(v bool) Option          { return func(c *Config) { c.LineBreaks = v } }
func WithIncludeUNA(v bool) Option          { return func(c *Config) { c.IncludeUNA = v } }
func WithFunctionalGroups(v bool) Option    { return func(c *Config) { c.UseFunctionalGroups = v } }
func WithTestIndicator(v bool) Option       { return func(c *Config) { c.TestIndicator = v } }
func WithSyntaxIdentifier(v string) Option  { return func(c *Config) { c.SyntaxIdentifier = v } }
func WithSyntaxVersion(v string) Option     { return func(c *Config) { c.SyntaxVersion = v } }
func WithControlReference(v string) Option  { return func(c *Config) { c.ControlReference = v } }
func WithVersionRelease(version, release string) Option {
	return func(c *Config) { c.Version = version; c.Release = release }
}

// NewConfig returns a Config seeded with spec.md §6's documented defaults,
// then applies opts.
func NewConfig(opts ...Option) Config {
	c := Config{
		IncludeUNA:       true,
		SyntaxIdentifier: "UNOA",
		SyntaxVersion:    "4",
		Version:          "D",
		Release:          "96A",
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c Config) generateOptions() GenerateOptions {
	return GenerateOptions{
		Delimiters:          c.Delimiters,
		LineBreaks:          c.LineBreaks,
		IncludeUNA:          c.IncludeUNA,
		UseFunctionalGroups: c.UseFunctionalGroups,
	}
}

// Codec is the facade entry point (spec.md §4.8). A nil Logger disables
// logging entirely, keeping the core pure per §5 ("no I/O occurs inside
// the core") — logging is a side effect the caller opts into.
type Codec struct {
	Logger *logrus.Logger
}

// NewCodec returns a Codec. Passing a nil logger is valid and disables
// diagnostic logging.
func NewCodec(logger *logrus.Logger) *Codec {
	return &Codec{Logger: logger}
}

func (cd *Codec) logResult(op string, res ParseResult) {
	if cd == nil || cd.Logger == nil {
		return
	}
	for _, w := range res.Warnings {
		cd.Logger.WithField("op", op).Warn(w.String())
	}
	for _, e := range res.Errors {
		cd.Logger.WithField("op", op).Error(e.String())
	}
}

// ParseDocument parses raw EDIFACT bytes into a ParseResult, logging any
// accumulated diagnostics at Warn/Error when a Logger is configured
// (spec.md §4.8).
func (cd *Codec) ParseDocument(input []byte) ParseResult {
	res := Parse(input)
	cd.logResult("parse", res)
	return res
}

// GenerateDocument serializes an Interchange using cfg's Delimiters,
// LineBreaks, IncludeUNA and UseFunctionalGroups. The other Config fields
// are not applied here; the UNB header is written from ic as given.
func (cd *Codec) GenerateDocument(ic Interchange, cfg Config) ([]byte, error) {
	out, err := Generate(ic, cfg.generateOptions())
	if err != nil && cd != nil && cd.Logger != nil {
		cd.Logger.WithField("op", "generate").Error(err.Error())
	}
	return out, err
}

// ValidateSyntax runs the structural validator over an already-parsed
// Interchange and logs its findings.
func (cd *Codec) ValidateSyntax(ic Interchange) Diagnostics {
	diags := Validate(ic)
	if cd == nil || cd.Logger == nil {
		return diags
	}
	for _, d := range diags {
		entry := cd.Logger.WithField("op", "validate")
		if d.Severity == SeverityWarning {
			entry.Warn(d.String())
		} else {
			entry.Error(d.String())
		}
	}
	return diags
}

// ParseAndExtractMessages parses input and returns every message's body
// decoded by the appropriate message-type parser, keyed by message type.
// Unrecognized message types are skipped (the message-type parsers are
// total over the four named types only).
func ParseAndExtractMessages(input []byte) (ParseResult, map[string][]any, error) {
	res := Parse(input)
	if !res.Success {
		return res, nil, fmt.Errorf("edifact: parse failed: %s", res.Errors.Format())
	}

	d := res.Interchange.Delimiters
	out := map[string][]any{}
	for _, m := range res.Interchange.AllMessages() {
		switch GetMessageType(m) {
		case "ORDERS":
			rec, _ := ParseOrders(m, d)
			out["ORDERS"] = append(out["ORDERS"], rec)
		case "ORDRSP":
			rec, _ := ParseOrdrsp(m, d)
			out["ORDRSP"] = append(out["ORDRSP"], rec)
		case "DESADV":
			rec, _ := ParseDesadv(m, d)
			out["DESADV"] = append(out["DESADV"], rec)
		case "INVOIC":
			rec, _ := ParseInvoic(m, d)
			out["INVOIC"] = append(out["INVOIC"], rec)
		}
	}
	return res, out, nil
}

// GetMessageType returns a Message's UNH message type (e.g. "ORDERS").
func GetMessageType(m Message) string {
	return m.Header.MessageType
}

// GetDocumentVersion returns a Message's UNH version:release pair (e.g.
// "D:96A").
func GetDocumentVersion(m Message) string {
	return m.Header.MessageVersion + ":" + m.Header.MessageRelease
}

// PeekSenderRecipient extracts UNB's sender and recipient ids without
// building a full Interchange, grounded on the teacher's ParseReader
// two-phase "detect root namespace, then parse" pattern in parser.go
// (spec.md §6 supplemented features).
func PeekSenderRecipient(input []byte) (sender, recipient string, err error) {
	delimiters, _, diags := ExtractDelimiters(input)
	if diags.HasCode(CodeUNATooShort) {
		return "", "", fmt.Errorf("edifact: %s", diags.Format())
	}
	tokens, _ := Tokenize(input, &delimiters)
	if len(tokens) == 0 || tokens[0].Tag != "UNB" {
		return "", "", fmt.Errorf("edifact: first segment must be UNB")
	}
	unb := tokens[0]
	return unb.Component(1, 0), unb.Component(2, 0), nil
}

// PeekInterchangeControlReference extracts UNB's control reference
// without building a full Interchange.
func PeekInterchangeControlReference(input []byte) (string, error) {
	delimiters, _, diags := ExtractDelimiters(input)
	if diags.HasCode(CodeUNATooShort) {
		return "", fmt.Errorf("edifact: %s", diags.Format())
	}
	tokens, _ := Tokenize(input, &delimiters)
	if len(tokens) == 0 || tokens[0].Tag != "UNB" {
		return "", fmt.Errorf("edifact: first segment must be UNB")
	}
	return tokens[0].Value(4), nil
}

// OrderToOrders is the canonical-to-wire half of the ORDERS mapping
// (spec.md §4.7, §4.8: orderToOrders).
func OrderToOrders(o Order) OrdersMessage { return FromCanonicalOrder(o) }

// OrdersToOrder is the wire-to-canonical half of the ORDERS mapping
// (spec.md §4.7, §4.8: ordersToOrder).
func OrdersToOrder(rec OrdersMessage) Order { return ToCanonicalOrder(rec) }

// DesadvToShipment maps a parsed DESADV record to the canonical Shipment
// shape (spec.md §4.7, §4.8: desadvToShipment).
func DesadvToShipment(rec DesadvMessage) Shipment { return ToCanonicalShipment(rec) }

// InvoicToInvoice maps a parsed INVOIC record to the canonical Invoice
// shape (spec.md §4.7, §4.8: invoicToInvoice).
func InvoicToInvoice(rec InvoicMessage) Invoice { return ToCanonicalInvoice(rec) }
