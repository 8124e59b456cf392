package edifact

import (
	"github.com/shopspring/decimal"
)

// Segment is a generic body segment inside a Message: an identifier and its
// element/component structure, as produced by the lexer (spec.md §3).
type Segment = RawSegment

// PartyID is the composite shape shared by UNB's sender/recipient (S002,
// S003) and UNG's application sender/recipient (S006, S007).
type PartyID struct {
	ID            string
	CodeQualifier string
	InternalID    string
	InternalSubID string
}

// SyntaxIdentifier is UNB composite S001.
type SyntaxIdentifier struct {
	Identifier                      string
	Version                         string
	ServiceCodeListDirectoryVersion string
	CharacterEncoding               string
}

// UNB is the interchange header.
type UNB struct {
	Syntax                      SyntaxIdentifier
	Sender                      PartyID
	Recipient                   PartyID
	Date                        string // S004/0017, YYMMDD
	Time                        string // S004/0019, HHMM
	ControlReference            string // 0020
	RecipientReferencePassword  string // S005/0022
	RecipientReferenceQualifier string // S005/0025
	ApplicationReference        string // 0026
	ProcessingPriority          string // 0029
	AckRequest                  string // 0031
	AgreementID                 string // 0032
	TestIndicator               string // 0035
}

// UNZ is the interchange trailer.
type UNZ struct {
	ControlCount     int
	ControlReference string
}

// UNG is a functional group header.
type UNG struct {
	MessageGroupType        string
	ApplicationSender       PartyID
	ApplicationRecipient    PartyID
	Date                    string
	Time                    string
	ReferenceNumber         string
	ControllingAgency       string
	MessageVersion          string
	MessageRelease          string
	AssociationAssignedCode string
}

// UNE is a functional group trailer.
type UNE struct {
	MessageCount    int
	ReferenceNumber string
}

// UNH is a message header.
type UNH struct {
	MessageReferenceNumber  string
	MessageType             string
	MessageVersion          string
	MessageRelease          string
	ControllingAgency       string
	AssociationAssignedCode string
	CommonAccessReference   string
}

// UNT is a message trailer.
type UNT struct {
	SegmentCount           int
	MessageReferenceNumber string
}

// Message owns a UNH/UNT pair and the ordered body segments between them,
// not including UNH/UNT themselves (spec.md §3).
type Message struct {
	Header  UNH
	Body    []Segment
	Trailer UNT
}

// FunctionalGroup owns a UNG/UNE pair and its messages (spec.md §3).
type FunctionalGroup struct {
	Header   UNG
	Messages []Message
	Trailer  UNE
}

// ServiceStringAdvice carries the UNA delimiters plus whether UNA was
// present, so the generator can reproduce it symmetrically.
type ServiceStringAdvice struct {
	Present    bool
	Delimiters Delimiters
}

// Interchange owns either FunctionalGroups or a flat Messages sequence,
// never both (spec.md §3).
type Interchange struct {
	UNA        ServiceStringAdvice
	Header     UNB
	Groups     []FunctionalGroup
	Messages   []Message
	Trailer    UNZ
	Delimiters Delimiters
}

// UsesFunctionalGroups reports whether this interchange is organized as
// functional groups rather than a flat message list.
func (ic Interchange) UsesFunctionalGroups() bool {
	return len(ic.Groups) > 0
}

// AllMessages flattens Groups (if any) or returns Messages, regardless of
// how the interchange is organized.
func (ic Interchange) AllMessages() []Message {
	if ic.UsesFunctionalGroups() {
		var all []Message
		for _, g := range ic.Groups {
			all = append(all, g.Messages...)
		}
		return all
	}
	return ic.Messages
}

// --- shared message-type building blocks (spec.md §3, §4.5) ---

// Address is the postal address carried by a Party, split from NAD
// composite element 5 on the component separator into Street1/Street2
// (spec.md §4.7).
type Address struct {
	Street1            string
	Street2            string
	City               string
	PostalCode         string
	CountryCode        string
	CountrySubdivision string
}

// Communication is one COM entry: a qualified contact channel.
type Communication struct {
	Qualifier string // e.g. TE, EM, FX
	Number    string
}

// Contact is one CTA entry together with the COM entries that follow it.
type Contact struct {
	FunctionCode   string
	Name           string
	Communications []Communication
}

// Reference is one RFF entry: a qualified document/record reference.
type Reference struct {
	Qualifier string
	Value     string
}

// Party is one NAD-opened party, with the CTA/COM/RFF that accumulate under
// it until the next NAD (spec.md §4.5).
type Party struct {
	FunctionCode string // NAD 3035, e.g. BY, SU, DP, IV
	ID           string
	IDAgency     string
	Name         []string // element 4 name lines
	Address      *Address
	Contacts     []Contact
	References   []Reference
}

// DateRef is one DTM entry.
type DateRef struct {
	Qualifier string // 2005
	Value     string // raw value, as given
	Format    string // 2380, e.g. 102, 203
}

// ProductID is one product identifier triple from LIN/PIA.
type ProductID struct {
	ID       string
	TypeCode string // 7143, e.g. EN, UP, SA, IN, SRV
	Agency   string
}

// Quantity is one QTY entry.
type Quantity struct {
	Qualifier string
	Value     decimal.Decimal
	UnitCode  string
}

// Price is one PRI entry.
type Price struct {
	Qualifier string // 5125
	Amount    decimal.Decimal
	Basis     decimal.Decimal
}

// Amount is one MOA entry.
type Amount struct {
	Qualifier string
	Value     decimal.Decimal
	Currency  string
}

// TaxInfo is one TAX entry.
type TaxInfo struct {
	TypeCode     string
	CategoryCode string
	Rate         decimal.Decimal
	Amount       decimal.Decimal
	Basis        decimal.Decimal
}

// AllowanceCharge is one ALC entry with its inline PCD/MOA.
type AllowanceCharge struct {
	IsCharge    bool // 5463: false=allowance (A), true=charge (C)
	Percentage  decimal.Decimal
	Amount      decimal.Decimal
	BasisAmount decimal.Decimal
	ReasonCode  string
}

// FreeText is one FTX entry.
type FreeText struct {
	Qualifier string
	Text      []string
}

// Package is one CPS-opened package in a DESADV packaging hierarchy
// (spec.md §4.5 DESADV extensions). HierarchicalID/ParentHierarchicalID
// let a caller reconstruct the tree; PAC/PCI/GIN data attaches to
// whichever package is open until the next CPS or LIN.
type Package struct {
	HierarchicalID       string
	ParentHierarchicalID string
	PackageTypeCode      string // PAC element 2
	PackageCount         string // PAC element 1
	MarksAndNumbers      []string
	ShippingMarks        string   // PCI element 2
	SerialNumbers        []string // GIN qualifier SN values
}

// LineItem is one LIN-opened line, with everything accumulated under it
// until the next LIN or UNS (spec.md §4.5).
type LineItem struct {
	LineNumber        string
	ActionCode        string // LIN element 2, set for every message type (ORDRSP action code)
	Products          []ProductID
	Description       string
	Quantities        []Quantity
	Prices            []Price
	Amounts           []Amount
	Dates             []DateRef
	References        []Reference
	Taxes             []TaxInfo
	AllowancesCharges []AllowanceCharge
	FreeTexts         []FreeText

	// Lifted convenience fields, populated per message-type rules.
	LineAmount decimal.Decimal // MOA 203
	UnitPrice  decimal.Decimal // INVOIC: collapsed PRI
	Quantity   decimal.Decimal // INVOIC: primary QTY qualifier
	UnitCode   string
}
