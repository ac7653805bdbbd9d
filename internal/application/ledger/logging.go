package ledger

import (
	"errors"

	"github.com/paperfi/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// LogRejected logs a failed operation. Rule violations are expected traffic
// and go to Debug; anything else is an infrastructure failure.
func LogRejected(logger *zap.Logger, operation string, err error, fields ...zap.Field) {
	if logger == nil || err == nil {
		return
	}
	fields = append(fields, zap.String("operation", operation))

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		logger.Debug("Ledger operation rejected", append(fields, zap.String("code", domainErr.Code))...)
		return
	}
	logger.Error("Ledger operation failed", append(fields, zap.Error(err))...)
}
