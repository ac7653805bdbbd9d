package paper

import (
	"strings"
	"testing"
	"time"

	"github.com/paperfi/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	t1 = t0.Add(time.Hour)
)

func ptr[T any](v T) *T { return &v }

func newTestPaper(t *testing.T, price uint64) *Paper {
	t.Helper()
	p, err := NewPaper("alice", 1, "https://info.example/1", price, "ar://paper-1", t0)
	require.NoError(t, err)
	p.ClearDomainEvents()
	return p
}

func TestNewPaper(t *testing.T) {
	t.Run("starts unlisted with zero counters", func(t *testing.T) {
		p, err := NewPaper("alice", 7, "https://info", MinPrice, "ar://x", t0)
		require.NoError(t, err)
		assert.Equal(t, shared.PaperKey("alice", 7), p.Key)
		assert.False(t, p.Listed)
		assert.Equal(t, uint32(1), p.PaperVersion)
		assert.Zero(t, p.Sales)
		assert.Zero(t, p.Reviews)
		assert.Equal(t, ReviewStatus{}, p.ReviewStatus)
		assert.Equal(t, t0, p.Timestamp)
		require.Len(t, p.GetDomainEvents(), 1)
		assert.Equal(t, EventTypePaperPublished, p.GetDomainEvents()[0].EventType())
	})

	tests := []struct {
		name    string
		info    string
		uri     string
		price   uint64
		wantErr error
	}{
		{"price below floor", "i", "u", 500_000, ErrIncorrectPricing},
		{"empty info url", "", "u", 0, shared.ErrFieldIsEmpty},
		{"uri too long", "i", strings.Repeat("u", 200), 0, shared.ErrInvalidFieldLength},
		{"emoji in uri", "i", "ar://🚀", 0, shared.ErrEmojisNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPaper("alice", 1, tt.info, tt.price, tt.uri, t0)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPaper_Edit(t *testing.T) {
	t.Run("applies present fields", func(t *testing.T) {
		p := newTestPaper(t, 0)
		err := p.Edit("alice", EditParams{
			InfoURL: ptr("https://info.example/v2"),
			Price:   ptr(uint64(2_000_000)),
			Version: ptr(uint32(2)),
			Listed:  ptr(true),
		}, t1)
		require.NoError(t, err)
		assert.Equal(t, "https://info.example/v2", p.InfoURL)
		assert.Equal(t, "ar://paper-1", p.URI)
		assert.Equal(t, uint64(2_000_000), p.Price)
		assert.Equal(t, uint32(2), p.PaperVersion)
		assert.True(t, p.Listed)
		assert.Equal(t, t1, p.Timestamp)
	})

	t.Run("rejects non-owner", func(t *testing.T) {
		p := newTestPaper(t, 0)
		err := p.Edit("mallory", EditParams{Listed: ptr(true)}, t1)
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
		assert.False(t, p.Listed)
	})

	t.Run("price below floor aborts every change", func(t *testing.T) {
		p := newTestPaper(t, 0)
		err := p.Edit("alice", EditParams{
			InfoURL: ptr("https://changed"),
			Price:   ptr(uint64(500_000)),
			Listed:  ptr(true),
		}, t1)
		assert.ErrorIs(t, err, ErrIncorrectPricing)
		assert.Equal(t, "https://info.example/1", p.InfoURL)
		assert.Equal(t, uint64(0), p.Price)
		assert.False(t, p.Listed)
		assert.Equal(t, t0, p.Timestamp)
		assert.Empty(t, p.GetDomainEvents())
	})

	t.Run("restricted symbols abort every change", func(t *testing.T) {
		p := newTestPaper(t, 0)
		err := p.Edit("alice", EditParams{URI: ptr("ar://😀"), Version: ptr(uint32(9))}, t1)
		assert.ErrorIs(t, err, shared.ErrEmojisNotAllowed)
		assert.Equal(t, uint32(1), p.PaperVersion)
	})

	t.Run("empty text field", func(t *testing.T) {
		p := newTestPaper(t, 0)
		err := p.Edit("alice", EditParams{InfoURL: ptr("")}, t1)
		assert.ErrorIs(t, err, shared.ErrFieldIsEmpty)
	})
}

func TestPaper_RecordReview(t *testing.T) {
	p := newTestPaper(t, 0)
	p.Listed = true

	for _, v := range []Verdict{VerdictApproved, VerdictApproved, VerdictApproved} {
		delisted, err := p.RecordReview(v, t1)
		require.NoError(t, err)
		assert.False(t, delisted)
	}
	assert.True(t, p.Listed)

	delisted, err := p.RecordReview(VerdictRejected, t1)
	require.NoError(t, err)
	assert.True(t, delisted, "ratio 25 exceeds 20")
	assert.False(t, p.Listed)
	assert.Equal(t, uint32(4), p.Reviews)
	assert.Equal(t, t1, p.Timestamp)
}

func TestPaper_ReviseVerdict(t *testing.T) {
	t.Run("review requested to approved", func(t *testing.T) {
		p := newTestPaper(t, 0)
		p.ReviewStatus = ReviewStatus{ReviewRequested: 1}

		require.NoError(t, p.ReviseVerdict(VerdictReviewRequested, VerdictApproved, t1))
		assert.Equal(t, ReviewStatus{Approved: 1}, p.ReviewStatus)
		assert.True(t, p.Listed, "approval lists the paper")
	})

	t.Run("approved to rejected keeps approved count", func(t *testing.T) {
		p := newTestPaper(t, 0)
		p.ReviewStatus = ReviewStatus{Approved: 1}

		require.NoError(t, p.ReviseVerdict(VerdictApproved, VerdictRejected, t1))
		assert.Equal(t, ReviewStatus{Approved: 1, Rejected: 1}, p.ReviewStatus)
	})

	t.Run("non approving revision recomputes the ratio", func(t *testing.T) {
		p := newTestPaper(t, 0)
		p.Listed = true
		p.ReviewStatus = ReviewStatus{Approved: 3, ReviewRequested: 1}

		require.NoError(t, p.ReviseVerdict(VerdictReviewRequested, VerdictRejected, t1))
		assert.Equal(t, ReviewStatus{Approved: 3, Rejected: 1}, p.ReviewStatus)
		assert.False(t, p.Listed)
	})

	t.Run("approving revision never delists", func(t *testing.T) {
		p := newTestPaper(t, 0)
		p.ReviewStatus = ReviewStatus{Rejected: 5}

		require.NoError(t, p.ReviseVerdict(VerdictRejected, VerdictApproved, t1))
		assert.True(t, p.Listed)
	})
}

func TestPaper_RecordSale(t *testing.T) {
	p := newTestPaper(t, 0)
	require.NoError(t, p.RecordSale(t1))
	assert.Equal(t, uint32(1), p.Sales)

	p.Sales = ^uint32(0)
	assert.ErrorIs(t, p.RecordSale(t1), shared.ErrMathOverflow)
}

func TestAuthorRecord(t *testing.T) {
	p := newTestPaper(t, 0)

	t.Run("owner cannot add themself", func(t *testing.T) {
		_, err := NewAuthorRecord(p, "alice", "alice", t0)
		assert.ErrorIs(t, err, ErrInvalidAuthor)
	})

	t.Run("only owner adds authors", func(t *testing.T) {
		_, err := NewAuthorRecord(p, "bob", "carol", t0)
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})

	t.Run("verify is idempotent and restricted to the author", func(t *testing.T) {
		a, err := NewAuthorRecord(p, "alice", "bob", t0)
		require.NoError(t, err)
		assert.Equal(t, shared.AuthorKey("bob", p.Key), a.Key)
		assert.False(t, a.Verified)

		assert.ErrorIs(t, a.Verify("alice", t1), shared.ErrUnauthorized)
		require.NoError(t, a.Verify("bob", t1))
		require.NoError(t, a.Verify("bob", t1))
		assert.True(t, a.Verified)
	})
}
