package dto

// SignupRequest is the body of POST /accounts
type SignupRequest struct {
	Name  string `json:"name" binding:"required,nosymbol"`
	Title string `json:"title" binding:"required,nosymbol"`
}

// EditUserRequest is the body of PATCH /accounts/me
type EditUserRequest struct {
	Name  *string `json:"name" binding:"omitempty,nosymbol"`
	Title *string `json:"title" binding:"omitempty,nosymbol"`
}

// PublishPaperRequest is the body of POST /papers
type PublishPaperRequest struct {
	ID      uint64 `json:"id"`
	InfoURL string `json:"info_url" binding:"required,nosymbol"`
	Price   uint64 `json:"price"`
	URI     string `json:"uri" binding:"required,nosymbol"`
}

// EditPaperRequest is the body of PATCH /papers/:owner/:id
type EditPaperRequest struct {
	InfoURL *string `json:"info_url"`
	Listed  *bool   `json:"listed"`
	Price   *uint64 `json:"price"`
	Version *uint32 `json:"version"`
	URI     *string `json:"uri"`
}

// ListPapersRequest holds the query of GET /papers/:owner
type ListPapersRequest struct {
	Listed   *bool `form:"listed"`
	Page     int   `form:"page" binding:"omitempty,min=1"`
	PageSize int   `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// AddAuthorRequest is the body of POST /papers/:owner/:id/authors
type AddAuthorRequest struct {
	Author string `json:"author" binding:"required"`
}

// SubmitReviewRequest is the body of POST /papers/:owner/:id/reviews
type SubmitReviewRequest struct {
	Verdict string `json:"verdict" binding:"required,oneof=APPROVED REJECTED REVIEW_REQUESTED"`
	URI     string `json:"uri" binding:"required,nosymbol"`
}

// EditReviewRequest is the body of PATCH /papers/:owner/:id/reviews/me
type EditReviewRequest struct {
	Verdict string `json:"verdict" binding:"required,oneof=APPROVED REJECTED REVIEW_REQUESTED"`
}

// AddAdminRequest is the body of POST /platform/admins
type AddAdminRequest struct {
	Admin string `json:"admin" binding:"required"`
}

// SetFeeRequest is the body of PUT /platform/fee
type SetFeeRequest struct {
	FeePercent *uint8 `json:"fee_percent" binding:"required"`
}

// CreateCollectionRequest is the body of POST /badges/collections
type CreateCollectionRequest struct {
	Name string `json:"name" binding:"required,nosymbol"`
	URI  string `json:"uri" binding:"required,nosymbol"`
}

// MintBadgeRequest is the body of POST /badges/mint
type MintBadgeRequest struct {
	Collection  string `json:"collection" binding:"required"`
	Name        string `json:"name" binding:"required,nosymbol"`
	URI         string `json:"uri" binding:"required,nosymbol"`
	Achievement string `json:"achievement" binding:"required"`
	Record      uint32 `json:"record"`
}
