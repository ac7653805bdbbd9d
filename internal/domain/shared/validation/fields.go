// Package validation holds the field rules shared by every ledger record
// that stores caller-supplied text.
package validation

import (
	"github.com/paperfi/backend/internal/domain/shared"
)

// Maximum field sizes in bytes. A value must be strictly shorter.
const (
	MaxURILength   = 200
	MaxNameLength  = 48
	MaxTitleLength = 32
)

// UpdateOptionalText applies incoming to current when present.
// A present value must be shorter than maxLen bytes and non-empty.
// Nothing is written when the value is rejected.
func UpdateOptionalText(current *string, incoming *string, maxLen int) error {
	if incoming == nil {
		return nil
	}
	if err := CheckText(*incoming, maxLen); err != nil {
		return err
	}
	*current = *incoming
	return nil
}

// UpdateOptionalNumeric applies incoming to current when present
func UpdateOptionalNumeric[T ~int | ~int32 | ~int64 | ~uint8 | ~uint32 | ~uint64](current *T, incoming *T) {
	if incoming == nil {
		return
	}
	*current = *incoming
}

// UpdateOptionalBool applies incoming to current when present
func UpdateOptionalBool(current *bool, incoming *bool) {
	if incoming != nil {
		*current = *incoming
	}
}

// CheckText validates a text field's length and emptiness
func CheckText(value string, maxLen int) error {
	if len(value) >= maxLen {
		return shared.ErrInvalidFieldLength
	}
	if value == "" {
		return shared.ErrFieldIsEmpty
	}
	return nil
}

// CheckSymbols rejects text containing restricted symbols
func CheckSymbols(values ...string) error {
	for _, v := range values {
		if ContainsRestrictedSymbol(v) {
			return shared.ErrEmojisNotAllowed
		}
	}
	return nil
}

// CheckField validates a required text field end to end
func CheckField(value string, maxLen int) error {
	if err := CheckText(value, maxLen); err != nil {
		return err
	}
	return CheckSymbols(value)
}
