package domain

// Currency is a currency supported for invoicing, keyed by its ISO 4217
// code. INR is seeded by migration; others are added on demand.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // e.g. "INR"
	Symbol       string `json:"symbol"`       // e.g. "₹"
	Name         string `json:"name"`         // e.g. "Indian Rupee"
	Precision    int    `json:"precision"`    // minor unit digits, 2 for INR
	AuditFields
}
