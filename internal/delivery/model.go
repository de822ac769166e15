package delivery

import "strings"

// Quote is the deliverability verdict for one postcode. Amounts are
// minor currency units.
type Quote struct {
	Postcode           string `json:"postcode"`
	IsDeliverable      bool   `json:"is_deliverable"`
	FeeMinorUnits      int    `json:"fee,omitempty"`
	MinOrderMinorUnits int    `json:"min_order,omitempty"`
	Reason             string `json:"reason,omitempty"`
}

// NormalizePostcode uppercases and strips spaces so zone lookup and
// the checkout staleness tag compare the same form.
func NormalizePostcode(postcode string) string {
	return strings.ToUpper(strings.ReplaceAll(postcode, " ", ""))
}
