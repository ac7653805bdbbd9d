// Package models contains the GORM persistence models of the ledger tables.
// Domain records carry no ORM tags; repositories map between the two.
//
// Amounts and paper ids are uint64 in the domain and numeric(20,0) columns
// here, since neither PostgreSQL nor SQLite has an unsigned 64-bit integer.
package models
