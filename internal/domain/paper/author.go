package paper

import (
	"time"

	"github.com/paperfi/backend/internal/domain/shared"
)

// AuthorRecord names a co-author of a paper. Verified only moves from
// false to true and only the named author can move it.
type AuthorRecord struct {
	shared.BaseEntity
	Author   shared.Identity
	PaperKey string
	Verified bool
}

// NewAuthorRecord registers author on p on behalf of caller
func NewAuthorRecord(p *Paper, caller, author shared.Identity, now time.Time) (*AuthorRecord, error) {
	if !p.IsOwnedBy(caller) {
		return nil, ErrNotPaperOwner
	}
	if author == p.Owner {
		return nil, ErrInvalidAuthor
	}
	if author.IsZero() {
		return nil, ErrInvalidAuthor
	}
	return &AuthorRecord{
		BaseEntity: shared.NewBaseEntity(shared.AuthorKey(author, p.Key), now),
		Author:     author,
		PaperKey:   p.Key,
	}, nil
}

// Verify confirms authorship. Verifying twice is a no-op.
func (a *AuthorRecord) Verify(caller shared.Identity, now time.Time) error {
	if caller != a.Author {
		return ErrNotNamedAuthor
	}
	if a.Verified {
		return nil
	}
	a.Verified = true
	a.Touch(now)
	return nil
}

// AuthorVerifiedEvent is raised when a co-author confirms authorship
type AuthorVerifiedEvent struct {
	shared.BaseDomainEvent
	Author   shared.Identity `json:"author"`
	PaperKey string          `json:"paper_key"`
}

// NewAuthorVerifiedEvent creates a new AuthorVerifiedEvent
func NewAuthorVerifiedEvent(a *AuthorRecord) *AuthorVerifiedEvent {
	return &AuthorVerifiedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAuthorVerified, "AuthorRecord", a.Key, a.UpdatedAt),
		Author:          a.Author,
		PaperKey:        a.PaperKey,
	}
}
