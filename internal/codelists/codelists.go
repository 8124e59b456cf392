// Package codelists provides human-readable descriptions for the UNTDID
// qualifier and code lists used across the four supported message types
// (party function, document name, item number type, unit of measure,
// allowance/charge, tax type, quantity qualifier).
package codelists

// PartyFunction returns the human-readable description for a UNTDID 3035
// party function code qualifier. Returns "Unknown" if the code is not
// found.
func PartyFunction(code string) string {
	if name, ok := partyFunctions[code]; ok {
		return name
	}
	return "Unknown"
}

var partyFunctions = map[string]string{
	"BY": "Buyer",
	"SU": "Seller",
	"DP": "Delivery party",
	"IV": "Invoicee",
	"CN": "Consignee",
	"CZ": "Consignor",
	"ST": "Ship to",
	"SF": "Ship from",
	"PR": "Payer",
	"II": "Issuer of invoice",
	"WH": "Warehouse",
}

// DocumentName returns the human-readable description for a UNTDID 1001
// document/message name code. Returns "Unknown" if the code is not found.
func DocumentName(code string) string {
	if name, ok := documentNames[code]; ok {
		return name
	}
	return "Unknown"
}

var documentNames = map[string]string{
	"220": "Order",
	"230": "Purchase order change request",
	"351": "Delivery note",
	"380": "Commercial invoice",
	"381": "Credit note",
	"383": "Debit note",
	"384": "Corrected invoice",
}

// MessageFunction returns the human-readable description for a UNTDID 1225
// message function code, most commonly seen in BGM element 3 and ORDRSP's
// action/status semantics. Returns "Unknown" if the code is not found.
func MessageFunction(code string) string {
	if name, ok := messageFunctions[code]; ok {
		return name
	}
	return "Unknown"
}

var messageFunctions = map[string]string{
	"1":  "Cancellation",
	"4":  "Confirmation",
	"5":  "Replace",
	"9":  "Original",
	"27": "Not accepted",
	"29": "Accepted with amendment",
}

// ItemNumberType returns the human-readable description for a UNTDID 7143
// item number type qualifier (LIN's C212 composite). Returns "Unknown" if
// the code is not found.
func ItemNumberType(code string) string {
	if name, ok := itemNumberTypes[code]; ok {
		return name
	}
	return "Unknown"
}

var itemNumberTypes = map[string]string{
	"EN":  "EAN/GTIN",
	"UP":  "UPC/GTIN",
	"SA":  "Supplier's article number",
	"IN":  "Buyer's item number",
	"SRV": "Service code",
}

// UnitOfMeasure returns the human-readable description for a UNECE Rec 20
// unit of measure code. Returns the original code if not found.
func UnitOfMeasure(code string) string {
	if name, ok := unitsOfMeasure[code]; ok {
		return name
	}
	return code
}

var unitsOfMeasure = map[string]string{
	"PCE": "Piece",
	"KGM": "Kilogram",
	"MTR": "Metre",
	"LTR": "Litre",
	"C62": "One (unit)",
	"EA":  "Each",
}

// AllowanceChargeQualifier returns the human-readable description for a
// UNTDID 5463 allowance/charge qualifier (ALC element 0). Returns
// "Unknown" if the code is not found.
func AllowanceChargeQualifier(code string) string {
	if name, ok := allowanceChargeQualifiers[code]; ok {
		return name
	}
	return "Unknown"
}

var allowanceChargeQualifiers = map[string]string{
	"A": "Allowance",
	"C": "Charge",
}

// TaxType returns the human-readable description for a UNTDID 5153 tax
// type code (TAX element 0). Returns "Unknown" if the code is not found.
func TaxType(code string) string {
	if name, ok := taxTypes[code]; ok {
		return name
	}
	return "Unknown"
}

var taxTypes = map[string]string{
	"VAT": "Value added tax",
	"FRE": "Free",
	"EXC": "Excise duty",
}

// QuantityQualifier returns the human-readable description for a UNTDID
// 6063 quantity qualifier (QTY element 0). Returns "Unknown" if the code
// is not found.
func QuantityQualifier(code string) string {
	if name, ok := quantityQualifiers[code]; ok {
		return name
	}
	return "Unknown"
}

var quantityQualifiers = map[string]string{
	"21": "Ordered quantity",
	"12": "Despatch quantity",
	"46": "Invoiced quantity",
	"47": "Invoice quantity",
}

// MonetaryAmountType returns the human-readable description for a UNTDID
// 5025 monetary amount type qualifier (MOA element 0). Returns "Unknown"
// if the code is not found.
func MonetaryAmountType(code string) string {
	if name, ok := monetaryAmountTypes[code]; ok {
		return name
	}
	return "Unknown"
}

var monetaryAmountTypes = map[string]string{
	"77":  "Invoice total amount",
	"86":  "Total amount payable",
	"79":  "Total line items amount",
	"125": "Taxable amount",
	"131": "Total allowance",
	"176": "Total tax amount",
	"203": "Line item amount",
	"259": "Total charge",
	"9":   "Amount due",
	"113": "Prepaid amount",
}
