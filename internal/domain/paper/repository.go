package paper

import (
	"context"

	"github.com/paperfi/backend/internal/domain/shared"
)

// PaperFilter defines filtering options for paper queries
type PaperFilter struct {
	shared.Filter
	Listed *bool
}

// PaperRepository defines the interface for paper persistence.
// Lookups return (nil, false, nil) when the record does not exist.
type PaperRepository interface {
	// Get finds a paper by its ledger key
	Get(ctx context.Context, key string) (*Paper, bool, error)

	// Create inserts a new paper. A key collision returns ALREADY_EXISTS.
	Create(ctx context.Context, p *Paper) error

	// Save updates a paper with optimistic locking (version check)
	Save(ctx context.Context, p *Paper) error

	// ListByOwner returns one page of an owner's papers and the total count
	ListByOwner(ctx context.Context, owner shared.Identity, filter PaperFilter) ([]Paper, int64, error)
}

// AuthorRepository defines the interface for author record persistence
type AuthorRepository interface {
	// Get finds an author record by its ledger key
	Get(ctx context.Context, key string) (*AuthorRecord, bool, error)

	// Create inserts a new author record. A key collision returns ALREADY_EXISTS.
	Create(ctx context.Context, a *AuthorRecord) error

	// Save updates an author record
	Save(ctx context.Context, a *AuthorRecord) error
}
