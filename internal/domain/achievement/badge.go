package achievement

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/paperfi/backend/internal/domain/shared"
	"github.com/paperfi/backend/internal/domain/shared/validation"
)

var (
	ErrCollectionNotFound = shared.NewDomainError("COLLECTION_NOT_FOUND", "Badge collection not found")
	ErrCollectionExists   = shared.NewDomainError("ALREADY_EXISTS", "Badge collection already exists")
)

// Collection groups badges minted under one name
type Collection struct {
	shared.BaseEntity
	Name      string
	URI       string
	CreatedBy shared.Identity
}

// NewCollection creates a badge collection
func NewCollection(name, uri string, creator shared.Identity, now time.Time) (*Collection, error) {
	if err := validation.CheckField(name, validation.MaxNameLength); err != nil {
		return nil, err
	}
	if err := validation.CheckField(uri, validation.MaxURILength); err != nil {
		return nil, err
	}
	return &Collection{
		BaseEntity: shared.NewBaseEntity(shared.BadgeCollectionKey(name), now),
		Name:       name,
		URI:        uri,
		CreatedBy:  creator,
	}, nil
}

// Attribute is one trait recorded on a badge
type Attribute struct {
	Trait string `json:"trait_type"`
	Value string `json:"value"`
}

// Badge is a non-transferable asset proving an achievement
type Badge struct {
	AssetID       uuid.UUID
	Owner         shared.Identity
	CollectionKey string
	Name          string
	URI           string
	Attributes    []Attribute
	MintedAt      time.Time
}

// NewBadge builds the badge for an achievement that passed the gate
func NewBadge(owner shared.Identity, c *Collection, name, uri string, kind Kind, record uint32, now time.Time) (*Badge, error) {
	if err := validation.CheckField(name, validation.MaxNameLength); err != nil {
		return nil, err
	}
	if err := validation.CheckField(uri, validation.MaxURILength); err != nil {
		return nil, err
	}
	return &Badge{
		AssetID:       uuid.New(),
		Owner:         owner,
		CollectionKey: c.Key,
		Name:          name,
		URI:           uri,
		Attributes: []Attribute{
			{Trait: "achievement", Value: kind.String()},
			{Trait: "record", Value: strconv.FormatUint(uint64(record), 10)},
			{Trait: "timestamp", Value: strconv.FormatInt(now.Unix(), 10)},
		},
		MintedAt: now,
	}, nil
}

// AssetMinter issues badges outside the ledger records
type AssetMinter interface {
	Mint(ctx context.Context, badge *Badge) error
}

// BadgeRepository records minted badges on the ledger
type BadgeRepository interface {
	// Create inserts a minted badge
	Create(ctx context.Context, b *Badge) error

	// ListByOwner returns the badges held by owner, newest first
	ListByOwner(ctx context.Context, owner shared.Identity) ([]Badge, error)
}

// CollectionRepository defines the interface for collection persistence
type CollectionRepository interface {
	// Get finds a collection by its ledger key
	Get(ctx context.Context, key string) (*Collection, bool, error)

	// Create inserts a new collection. A key collision returns ALREADY_EXISTS.
	Create(ctx context.Context, c *Collection) error
}

// EventTypeBadgeMinted is the event type of BadgeMintedEvent
const EventTypeBadgeMinted = "BadgeMinted"

// BadgeMintedEvent is raised when a badge is issued
type BadgeMintedEvent struct {
	shared.BaseDomainEvent
	Owner       shared.Identity `json:"owner"`
	Collection  string          `json:"collection"`
	Name        string          `json:"name"`
	Achievement string          `json:"achievement"`
}

// NewBadgeMintedEvent creates a new BadgeMintedEvent
func NewBadgeMintedEvent(b *Badge) *BadgeMintedEvent {
	e := &BadgeMintedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBadgeMinted, "Badge", b.AssetID.String(), b.MintedAt),
		Owner:           b.Owner,
		Collection:      b.CollectionKey,
		Name:            b.Name,
	}
	for _, a := range b.Attributes {
		if a.Trait == "achievement" {
			e.Achievement = a.Value
		}
	}
	return e
}
