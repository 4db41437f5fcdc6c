package domain

import "github.com/shopspring/decimal"

// The GSTR structures below serialize to the exact field names and nesting the
// GST portal's offline upload format expects. Do not rename the JSON tags.

// GSTR1ItemDetail carries the rate and tax amounts of one line item bucket.
type GSTR1ItemDetail struct {
	Rt    float64 `json:"rt"`    // GST rate percent
	Txval float64 `json:"txval"` // Taxable value
	Camt  float64 `json:"camt"`  // Central tax
	Samt  float64 `json:"samt"`  // State tax
	Iamt  float64 `json:"iamt"`  // Integrated tax
	Csamt float64 `json:"csamt"` // Cess (always 0; cess is out of scope)
}

// GSTR1Item wraps an item detail with its serial number.
type GSTR1Item struct {
	Num    int             `json:"num"`
	ItmDet GSTR1ItemDetail `json:"itm_det"`
}

// GSTR1Invoice is one B2B invoice in the return.
type GSTR1Invoice struct {
	Inum   string      `json:"inum"`    // Invoice number
	Idt    string      `json:"idt"`     // Invoice date, dd-mm-yyyy
	Val    float64     `json:"val"`     // Invoice total value
	Pos    string      `json:"pos"`     // Place of supply state code
	RChrg  string      `json:"rchrg"`   // Reverse charge flag, "N"
	InvTyp string      `json:"inv_typ"` // "R" for regular
	Itms   []GSTR1Item `json:"itms"`
}

// GSTR1B2B groups a registered buyer's invoices under their GSTIN.
type GSTR1B2B struct {
	Ctin string         `json:"ctin"` // Counterparty GSTIN
	Inv  []GSTR1Invoice `json:"inv"`
}

// GSTR1B2CS is one rate bucket of consumer-sale aggregates.
type GSTR1B2CS struct {
	SplyTy string  `json:"sply_ty"` // INTRA or INTER
	Rt     float64 `json:"rt"`      // Effective rate percent
	Typ    string  `json:"typ"`     // "OE" (other than e-commerce)
	Pos    string  `json:"pos"`     // Place of supply state code
	Txval  float64 `json:"txval"`
	Camt   float64 `json:"camt"`
	Samt   float64 `json:"samt"`
	Iamt   float64 `json:"iamt"`
	Csamt  float64 `json:"csamt"`
}

// GSTR1Return is the outward-supply return payload.
type GSTR1Return struct {
	Gstin string      `json:"gstin"`
	Fp    string      `json:"fp"` // Filing period, MMYYYY
	Gt    float64     `json:"gt"` // Gross turnover of the period
	B2B   []GSTR1B2B  `json:"b2b"`
	B2CS  []GSTR1B2CS `json:"b2cs"`
}

// GSTR3BTaxHeads is the common {tax head -> amount} record used throughout 3B.
type GSTR3BTaxHeads struct {
	Txval float64 `json:"txval,omitempty"`
	Camt  float64 `json:"camt"`
	Samt  float64 `json:"samt"`
	Iamt  float64 `json:"iamt"`
	Csamt float64 `json:"csamt"`
}

// GSTR3BSupDetails is section 3.1 (outward supplies).
type GSTR3BSupDetails struct {
	OsupDet GSTR3BTaxHeads `json:"osup_det"` // 3.1(a) taxable outward supplies
}

// GSTR3BITCAvail is one row of section 4(A), eligible ITC.
type GSTR3BITCAvail struct {
	Ty   string  `json:"ty"` // "OTH" for all-other inward supplies
	Camt float64 `json:"camt"`
	Samt float64 `json:"samt"`
	Iamt float64 `json:"iamt"`
}

// GSTR3BITC is section 4, input tax credit.
type GSTR3BITC struct {
	ItcAvl []GSTR3BITCAvail `json:"itc_avl"`
}

// GSTR3BReturn is the summary return payload. TaxPay holds the net payable
// per head, floored at zero: excess ITC never shows as a negative liability.
type GSTR3BReturn struct {
	Gstin      string           `json:"gstin"`
	RetPeriod  string           `json:"ret_period"` // MMYYYY
	SupDetails GSTR3BSupDetails `json:"sup_details"`
	ItcElg     GSTR3BITC        `json:"itc_elg"`
	TaxPay     GSTR3BTaxHeads   `json:"tax_pay"`
}

// TDSSectionSummary aggregates TDS deducted under one section of the IT Act.
type TDSSectionSummary struct {
	Section     string          `json:"section"` // e.g. "194C"
	PayeeCount  int             `json:"payeeCount"`
	TotalPaid   decimal.Decimal `json:"totalPaid"` // Gross amounts the TDS was deducted from
	TDSDeducted decimal.Decimal `json:"tdsDeducted"`
}

// TDSReport is the period-wise TDS deduction report.
type TDSReport struct {
	WorkspaceID string              `json:"workspaceID"`
	PAN         string              `json:"pan"`
	Period      string              `json:"period"` // MMYYYY
	Sections    []TDSSectionSummary `json:"sections"`
	Total       decimal.Decimal     `json:"total"`
}
