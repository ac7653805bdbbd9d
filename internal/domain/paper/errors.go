package paper

import "github.com/paperfi/backend/internal/domain/shared"

var (
	ErrPaperNotFound     = shared.NewDomainError("PAPER_NOT_FOUND", "Paper not found")
	ErrAuthorNotFound    = shared.NewDomainError("AUTHOR_NOT_FOUND", "Author record not found")
	ErrIncorrectPricing  = shared.NewDomainError("INCORRECT_PRICING", "Price must be zero or at least the minimum price")
	ErrInvalidAuthor     = shared.NewDomainError("INVALID_AUTHOR", "The paper owner cannot be registered as a co-author")
	ErrPaperExists       = shared.NewDomainError("ALREADY_EXISTS", "A paper with this id already exists for the owner")
	ErrAuthorExists      = shared.NewDomainError("ALREADY_EXISTS", "Author is already registered on this paper")
	ErrNotPaperOwner     = shared.NewDomainError("UNAUTHORIZED", "Only the paper owner may do this")
	ErrNotNamedAuthor    = shared.NewDomainError("UNAUTHORIZED", "Only the named author may verify authorship")
	ErrCounterOverflowed = shared.NewDomainError("MATH_OVERFLOW", "Paper counter overflowed")
)
