package review

import (
	"testing"
	"time"

	"github.com/paperfi/backend/internal/domain/paper"
	"github.com/paperfi/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

func testPaper(t *testing.T) *paper.Paper {
	t.Helper()
	p, err := paper.NewPaper("alice", 1, "https://info", paper.MinPrice, "ar://p", now)
	require.NoError(t, err)
	return p
}

func TestCheckEligibility(t *testing.T) {
	p := testPaper(t)

	tests := []struct {
		name     string
		reviewer shared.Identity
		e        Eligibility
		wantErr  error
	}{
		{"owner", "alice", Eligibility{HasPurchase: true}, ErrOwnPaper},
		{"co-author", "bob", Eligibility{IsAuthor: true, HasPurchase: true}, ErrAuthorCantReview},
		{"no purchase", "bob", Eligibility{}, ErrPurchaseRequired},
		{"buyer", "bob", Eligibility{HasPurchase: true}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckEligibility(p, tt.reviewer, tt.e)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewReview(t *testing.T) {
	p := testPaper(t)

	r, err := NewReview("bob", p, paper.VerdictReviewRequested, "ar://review", now)
	require.NoError(t, err)
	assert.Equal(t, shared.ReviewKey("bob", p.Key), r.Key)
	assert.Equal(t, now, r.Timestamp)

	_, err = NewReview("bob", p, paper.VerdictApproved, "", now)
	assert.ErrorIs(t, err, shared.ErrFieldIsEmpty)

	_, err = NewReview("bob", p, paper.Verdict("NOPE"), "ar://r", now)
	assert.ErrorIs(t, err, paper.ErrInvalidVerdict)
}

func TestReview_Revise(t *testing.T) {
	p := testPaper(t)
	r, err := NewReview("bob", p, paper.VerdictReviewRequested, "ar://review", now)
	require.NoError(t, err)

	later := now.Add(time.Minute)
	previous, err := r.Revise(paper.VerdictApproved, later)
	require.NoError(t, err)
	assert.Equal(t, paper.VerdictReviewRequested, previous)
	assert.Equal(t, paper.VerdictApproved, r.Verdict)
	assert.Equal(t, later, r.Timestamp)
}
