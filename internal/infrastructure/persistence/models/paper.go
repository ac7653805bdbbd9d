package models

import (
	"time"

	"github.com/paperfi/backend/internal/domain/paper"
	"github.com/paperfi/backend/internal/domain/purchase"
	"github.com/paperfi/backend/internal/domain/review"
	"github.com/paperfi/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaperModel is the persistence model for paper.Paper
type PaperModel struct {
	AggregateModel
	Owner           string          `gorm:"type:varchar(128);not null;index:idx_papers_owner"`
	PaperID         decimal.Decimal `gorm:"type:numeric(20,0);not null"`
	InfoURL         string          `gorm:"type:varchar(200);not null"`
	URI             string          `gorm:"type:varchar(200);not null"`
	PaperVersion    uint32          `gorm:"not null;default:1"`
	Price           decimal.Decimal `gorm:"type:numeric(20,0);not null"`
	Listed          bool            `gorm:"not null;default:false;index"`
	Sales           uint32          `gorm:"not null;default:0"`
	Reviews         uint32          `gorm:"not null;default:0"`
	Approved        uint64          `gorm:"not null;default:0"`
	Rejected        uint64          `gorm:"not null;default:0"`
	ReviewRequested uint64          `gorm:"not null;default:0"`
	Timestamp       time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PaperModel) TableName() string {
	return "papers"
}

// ToDomain converts the model to a domain Paper
func (m *PaperModel) ToDomain() (*paper.Paper, error) {
	id, err := FromUnits(m.PaperID)
	if err != nil {
		return nil, err
	}
	price, err := FromUnits(m.Price)
	if err != nil {
		return nil, err
	}
	return &paper.Paper{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Owner:             shared.Identity(m.Owner),
		ID:                id,
		InfoURL:           m.InfoURL,
		URI:               m.URI,
		PaperVersion:      m.PaperVersion,
		Price:             price,
		Listed:            m.Listed,
		Sales:             m.Sales,
		Reviews:           m.Reviews,
		Timestamp:         m.Timestamp,
		ReviewStatus: paper.ReviewStatus{
			Approved:        m.Approved,
			Rejected:        m.Rejected,
			ReviewRequested: m.ReviewRequested,
		},
	}, nil
}

// PaperModelFromDomain creates the model of p
func PaperModelFromDomain(p *paper.Paper) *PaperModel {
	m := &PaperModel{
		Owner:           p.Owner.String(),
		PaperID:         Units(p.ID),
		InfoURL:         p.InfoURL,
		URI:             p.URI,
		PaperVersion:    p.PaperVersion,
		Price:           Units(p.Price),
		Listed:          p.Listed,
		Sales:           p.Sales,
		Reviews:         p.Reviews,
		Approved:        p.ReviewStatus.Approved,
		Rejected:        p.ReviewStatus.Rejected,
		ReviewRequested: p.ReviewStatus.ReviewRequested,
		Timestamp:       p.Timestamp,
	}
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	return m
}

// AuthorModel is the persistence model for paper.AuthorRecord
type AuthorModel struct {
	BaseModel
	Author   string `gorm:"type:varchar(128);not null"`
	PaperKey string `gorm:"type:varchar(64);not null;index"`
	Verified bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (AuthorModel) TableName() string {
	return "paper_authors"
}

// ToDomain converts the model to a domain AuthorRecord
func (m *AuthorModel) ToDomain() *paper.AuthorRecord {
	return &paper.AuthorRecord{
		BaseEntity: m.BaseModel.ToDomain(),
		Author:     shared.Identity(m.Author),
		PaperKey:   m.PaperKey,
		Verified:   m.Verified,
	}
}

// AuthorModelFromDomain creates the model of a
func AuthorModelFromDomain(a *paper.AuthorRecord) *AuthorModel {
	m := &AuthorModel{Author: a.Author.String(), PaperKey: a.PaperKey, Verified: a.Verified}
	m.FromDomainBaseEntity(a.BaseEntity)
	return m
}

// ReviewModel is the persistence model for review.Review
type ReviewModel struct {
	BaseModel
	Reviewer  string    `gorm:"type:varchar(128);not null"`
	PaperKey  string    `gorm:"type:varchar(64);not null;index"`
	Verdict   string    `gorm:"type:varchar(20);not null"`
	URI       string    `gorm:"type:varchar(200);not null"`
	Timestamp time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ReviewModel) TableName() string {
	return "reviews"
}

// ToDomain converts the model to a domain Review
func (m *ReviewModel) ToDomain() *review.Review {
	return &review.Review{
		BaseEntity: m.BaseModel.ToDomain(),
		Reviewer:   shared.Identity(m.Reviewer),
		PaperKey:   m.PaperKey,
		Verdict:    paper.Verdict(m.Verdict),
		URI:        m.URI,
		Timestamp:  m.Timestamp,
	}
}

// ReviewModelFromDomain creates the model of r
func ReviewModelFromDomain(r *review.Review) *ReviewModel {
	m := &ReviewModel{
		Reviewer:  r.Reviewer.String(),
		PaperKey:  r.PaperKey,
		Verdict:   r.Verdict.String(),
		URI:       r.URI,
		Timestamp: r.Timestamp,
	}
	m.FromDomainBaseEntity(r.BaseEntity)
	return m
}

// PurchaseModel is the persistence model for purchase.Record
type PurchaseModel struct {
	BaseModel
	Buyer     string          `gorm:"type:varchar(128);not null;index"`
	PaperKey  string          `gorm:"type:varchar(64);not null;index"`
	Price     decimal.Decimal `gorm:"type:numeric(20,0);not null"`
	Fee       decimal.Decimal `gorm:"type:numeric(20,0);not null"`
	Timestamp time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PurchaseModel) TableName() string {
	return "purchases"
}

// ToDomain converts the model to a domain purchase Record
func (m *PurchaseModel) ToDomain() (*purchase.Record, error) {
	price, err := FromUnits(m.Price)
	if err != nil {
		return nil, err
	}
	fee, err := FromUnits(m.Fee)
	if err != nil {
		return nil, err
	}
	return &purchase.Record{
		BaseEntity: m.BaseModel.ToDomain(),
		Buyer:      shared.Identity(m.Buyer),
		PaperKey:   m.PaperKey,
		Price:      price,
		Fee:        fee,
		Timestamp:  m.Timestamp,
	}, nil
}

// PurchaseModelFromDomain creates the model of r
func PurchaseModelFromDomain(r *purchase.Record) *PurchaseModel {
	m := &PurchaseModel{
		Buyer:     r.Buyer.String(),
		PaperKey:  r.PaperKey,
		Price:     Units(r.Price),
		Fee:       Units(r.Fee),
		Timestamp: r.Timestamp,
	}
	m.FromDomainBaseEntity(r.BaseEntity)
	return m
}
