package persistence

import (
	"context"
	"fmt"

	"github.com/paperfi/backend/internal/domain/paper"
	"github.com/paperfi/backend/internal/domain/shared"
	"github.com/paperfi/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPaperRepository implements paper.PaperRepository using GORM
type GormPaperRepository struct {
	db *gorm.DB
}

// NewGormPaperRepository creates a new GormPaperRepository
func NewGormPaperRepository(db *gorm.DB) *GormPaperRepository {
	return &GormPaperRepository{db: db}
}

// Get finds a paper by its ledger key
func (r *GormPaperRepository) Get(ctx context.Context, key string) (*paper.Paper, bool, error) {
	var model models.PaperModel
	found, err := first(r.db.WithContext(ctx), &model, key)
	if err != nil || !found {
		return nil, false, err
	}
	p, err := model.ToDomain()
	if err != nil {
		return nil, false, fmt.Errorf("failed to decode paper %s: %w", key, err)
	}
	return p, true, nil
}

// Create inserts a new paper
func (r *GormPaperRepository) Create(ctx context.Context, p *paper.Paper) error {
	model := models.PaperModelFromDomain(p)
	return translateCreateError(r.db.WithContext(ctx).Create(model).Error, paper.ErrPaperExists)
}

// Save writes every mutable column of p with optimistic locking
func (r *GormPaperRepository) Save(ctx context.Context, p *paper.Paper) error {
	model := models.PaperModelFromDomain(p)
	result := r.db.WithContext(ctx).
		Model(&models.PaperModel{}).
		Where("record_key = ? AND version = ?", p.Key, p.Version).
		Updates(map[string]any{
			"info_url":         model.InfoURL,
			"uri":              model.URI,
			"paper_version":    model.PaperVersion,
			"price":            model.Price,
			"listed":           model.Listed,
			"sales":            model.Sales,
			"reviews":          model.Reviews,
			"approved":         model.Approved,
			"rejected":         model.Rejected,
			"review_requested": model.ReviewRequested,
			"timestamp":        model.Timestamp,
			"updated_at":       model.UpdatedAt,
			"version":          gorm.Expr("version + 1"),
		})
	if err := checkVersioned(result, "paper"); err != nil {
		return err
	}
	p.IncrementVersion()
	return nil
}

// ListByOwner returns one page of an owner's papers and the owner's total
func (r *GormPaperRepository) ListByOwner(ctx context.Context, owner shared.Identity, filter paper.PaperFilter) ([]paper.Paper, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PaperModel{}).Where("owner = ?", owner.String())
	if filter.Listed != nil {
		query = query.Where("listed = ?", *filter.Listed)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy := ValidateSortField(filter.OrderBy, PaperSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	var rows []models.PaperModel
	if err := query.
		Order(orderBy + " " + orderDir).
		Order("record_key").
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	papers := make([]paper.Paper, 0, len(rows))
	for i := range rows {
		p, err := rows[i].ToDomain()
		if err != nil {
			return nil, 0, fmt.Errorf("failed to decode paper %s: %w", rows[i].Key, err)
		}
		papers = append(papers, *p)
	}
	return papers, total, nil
}

// GormAuthorRepository implements paper.AuthorRepository using GORM
type GormAuthorRepository struct {
	db *gorm.DB
}

// NewGormAuthorRepository creates a new GormAuthorRepository
func NewGormAuthorRepository(db *gorm.DB) *GormAuthorRepository {
	return &GormAuthorRepository{db: db}
}

// Get finds an author record by its ledger key
func (r *GormAuthorRepository) Get(ctx context.Context, key string) (*paper.AuthorRecord, bool, error) {
	var model models.AuthorModel
	found, err := first(r.db.WithContext(ctx), &model, key)
	if err != nil || !found {
		return nil, false, err
	}
	return model.ToDomain(), true, nil
}

// Create inserts a new author record
func (r *GormAuthorRepository) Create(ctx context.Context, a *paper.AuthorRecord) error {
	model := models.AuthorModelFromDomain(a)
	return translateCreateError(r.db.WithContext(ctx).Create(model).Error, paper.ErrAuthorExists)
}

// Save updates the verification flag
func (r *GormAuthorRepository) Save(ctx context.Context, a *paper.AuthorRecord) error {
	result := r.db.WithContext(ctx).
		Model(&models.AuthorModel{}).
		Where("record_key = ?", a.Key).
		Updates(map[string]any{
			"verified":   a.Verified,
			"updated_at": a.UpdatedAt,
		})
	return checkUpdated(result, "author record")
}

var (
	_ paper.PaperRepository  = (*GormPaperRepository)(nil)
	_ paper.AuthorRepository = (*GormAuthorRepository)(nil)
)
