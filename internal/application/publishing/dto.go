package publishing

import (
	"time"

	"github.com/paperfi/backend/internal/domain/paper"
	"github.com/paperfi/backend/internal/domain/shared"
)

// PublishRequest carries the fields of a new paper
type PublishRequest struct {
	ID      uint64
	InfoURL string
	Price   uint64
	URI     string
}

// EditRequest carries the optional fields of an edit
type EditRequest struct {
	InfoURL *string
	Listed  *bool
	Price   *uint64
	Version *uint32
	URI     *string
}

// ListFilter selects a page of an owner's papers
type ListFilter struct {
	Listed   *bool
	Page     int
	PageSize int
}

// ReviewStatusResponse represents verdict counters in API responses
type ReviewStatusResponse struct {
	Approved        uint64 `json:"approved"`
	Rejected        uint64 `json:"rejected"`
	ReviewRequested uint64 `json:"review_requested"`
	RejectionRatio  uint64 `json:"rejection_ratio"`
}

// PaperResponse represents a paper in API responses
type PaperResponse struct {
	Key          string               `json:"key"`
	Owner        string               `json:"owner"`
	ID           uint64               `json:"id"`
	InfoURL      string               `json:"info_url"`
	URI          string               `json:"uri"`
	Version      uint32               `json:"version"`
	Price        uint64               `json:"price"`
	Listed       bool                 `json:"listed"`
	Sales        uint32               `json:"sales"`
	Reviews      uint32               `json:"reviews"`
	ReviewStatus ReviewStatusResponse `json:"review_status"`
	Timestamp    time.Time            `json:"timestamp"`
}

// AuthorResponse represents an author record in API responses
type AuthorResponse struct {
	Key      string `json:"key"`
	Author   string `json:"author"`
	PaperKey string `json:"paper_key"`
	Verified bool   `json:"verified"`
}

// ToPaperResponse converts a paper to its response
func ToPaperResponse(p *paper.Paper) PaperResponse {
	return PaperResponse{
		Key:     p.Key,
		Owner:   p.Owner.String(),
		ID:      p.ID,
		InfoURL: p.InfoURL,
		URI:     p.URI,
		Version: p.PaperVersion,
		Price:   p.Price,
		Listed:  p.Listed,
		Sales:   p.Sales,
		Reviews: p.Reviews,
		ReviewStatus: ReviewStatusResponse{
			Approved:        p.ReviewStatus.Approved,
			Rejected:        p.ReviewStatus.Rejected,
			ReviewRequested: p.ReviewStatus.ReviewRequested,
			RejectionRatio:  p.ReviewStatus.RejectionRatio(),
		},
		Timestamp: p.Timestamp,
	}
}

// ToAuthorResponse converts an author record to its response
func ToAuthorResponse(a *paper.AuthorRecord) AuthorResponse {
	return AuthorResponse{
		Key:      a.Key,
		Author:   a.Author.String(),
		PaperKey: a.PaperKey,
		Verified: a.Verified,
	}
}

func (f ListFilter) toDomain() paper.PaperFilter {
	base := shared.DefaultFilter()
	if f.Page > 0 {
		base.Page = f.Page
	}
	if f.PageSize > 0 {
		base.PageSize = f.PageSize
	}
	return paper.PaperFilter{Filter: base, Listed: f.Listed}
}
