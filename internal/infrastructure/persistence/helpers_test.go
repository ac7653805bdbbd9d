package persistence_test

import "github.com/paperfi/backend/internal/domain/shared/valueobject"

func valueOf(units uint64) valueobject.Money {
	return valueobject.NewMoney(units)
}
