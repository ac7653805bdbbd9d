package persistence

import (
	"errors"
	"fmt"
	"strings"

	"github.com/paperfi/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// translateCreateError maps a failed insert to the domain error of the
// record kind. A unique violation on the derived key means the record
// already exists.
func translateCreateError(err error, exists *shared.DomainError) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return exists
	}
	return err
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// drivers without an error translator
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}

// checkVersioned turns an optimistic update that matched no row into
// CONCURRENCY_CONFLICT
func checkVersioned(result *gorm.DB, what string) error {
	if result.Error != nil {
		return fmt.Errorf("failed to update %s: %w", what, result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError(shared.ErrConcurrencyConflict.Code,
			fmt.Sprintf("%s was modified by another transaction", what))
	}
	return nil
}

// checkUpdated turns an update that matched no row into NOT_FOUND
func checkUpdated(result *gorm.DB, what string) error {
	if result.Error != nil {
		return fmt.Errorf("failed to update %s: %w", what, result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError(shared.ErrNotFound.Code, fmt.Sprintf("%s not found", what))
	}
	return nil
}

// first loads one row by primary key into dst. A missing row is reported
// as found=false with no error.
func first(db *gorm.DB, dst any, key string) (bool, error) {
	err := db.Where("record_key = ?", key).Take(dst).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
