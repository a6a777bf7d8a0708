package enums

import "fmt"

// SaleLineKind distinguishes the four cart line variants. Only part lines
// carry stock and cost; credit settlement lines fold old unpaid invoices into
// the current bill.
type SaleLineKind string

const (
	SaleLineKindPart             SaleLineKind = "part"
	SaleLineKindService          SaleLineKind = "service"
	SaleLineKindCustom           SaleLineKind = "custom"
	SaleLineKindCreditSettlement SaleLineKind = "credit_settlement"
)

var validSaleLineKinds = []SaleLineKind{
	SaleLineKindPart,
	SaleLineKindService,
	SaleLineKindCustom,
	SaleLineKindCreditSettlement,
}

// IsValid reports whether the value matches the canonical sale line kind enum.
func (k SaleLineKind) IsValid() bool {
	for _, candidate := range validSaleLineKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseSaleLineKind converts the raw string to SaleLineKind.
func ParseSaleLineKind(value string) (SaleLineKind, error) {
	for _, candidate := range validSaleLineKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sale line kind %q", value)
}
