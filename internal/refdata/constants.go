// Package refdata holds the read-only reference data used when assembling
// CIUS-RO documents: the country table and the fixed codes the national
// e-invoicing profile expects.
package refdata

// CIUS-RO profile identifiers
const (
	CustomizationID = "urn:cen.eu:en16931:2017#compliant#urn:efactura.mfinante.ro:CIUS-RO:1.0.1"

	// UBL 2.1 namespaces
	NamespaceInvoice = "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
	NamespaceCAC     = "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
	NamespaceCBC     = "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"
)

// Document defaults
const (
	DefaultCurrency    = "RON"
	DefaultUnitCode    = "EA" // UN/ECE Rec 20 "each"
	DefaultCountryName = "Romania"
	DefaultCountryCode = "RO"
	DefaultTaxPercent  = 19
	TaxSchemeVAT       = "VAT"
)

// UNCL1001 invoice type codes
const (
	TypeCodeCommercialInvoice = "380"
	TypeCodeCreditNote        = "381"
)

// UNCL4461 payment means
const (
	PaymentMeansCreditTransfer = "30"
)

// VAT exemption reason code (VATEX) for supplies outside the scope of VAT
const (
	ExemptionReasonOutsideScope = "VATEX-EU-O"
)
