package handler

import "github.com/paperfi/backend/internal/domain/shared/valueobject"

// Currency renders ledger units in major units next to the raw amounts
type Currency struct {
	Decimals int32
	Symbol   string
}

// Format returns units as a display string, e.g. "0.001 SOL"
func (c Currency) Format(units uint64) string {
	return valueobject.NewMoney(units).Format(c.Decimals, c.Symbol)
}
