package paper

import (
	"math/bits"

	"github.com/paperfi/backend/internal/domain/shared"
)

// MaxRejectionRatio is the rejection percentage above which a paper is delisted
const MaxRejectionRatio uint64 = 20

// Verdict is the outcome a reviewer assigns to a paper
type Verdict string

const (
	VerdictApproved        Verdict = "APPROVED"
	VerdictRejected        Verdict = "REJECTED"
	VerdictReviewRequested Verdict = "REVIEW_REQUESTED"
)

// ErrInvalidVerdict is returned for unknown verdict values
var ErrInvalidVerdict = shared.NewDomainError("INVALID_VERDICT", "Verdict must be APPROVED, REJECTED or REVIEW_REQUESTED")

// IsValid checks if the verdict is one of the known values
func (v Verdict) IsValid() bool {
	switch v {
	case VerdictApproved, VerdictRejected, VerdictReviewRequested:
		return true
	}
	return false
}

// String returns the string representation of Verdict
func (v Verdict) String() string {
	return string(v)
}

// ParseVerdict converts a wire value into a Verdict
func ParseVerdict(s string) (Verdict, error) {
	v := Verdict(s)
	if !v.IsValid() {
		return "", ErrInvalidVerdict
	}
	return v, nil
}

// ReviewStatus counts the verdicts recorded against a paper
type ReviewStatus struct {
	Approved        uint64 `json:"approved"`
	Rejected        uint64 `json:"rejected"`
	ReviewRequested uint64 `json:"review_requested"`
}

// Update counts one more verdict
func (s *ReviewStatus) Update(v Verdict) error {
	switch v {
	case VerdictApproved:
		return incr(&s.Approved)
	case VerdictRejected:
		return incr(&s.Rejected)
	case VerdictReviewRequested:
		return incr(&s.ReviewRequested)
	}
	return ErrInvalidVerdict
}

// WithdrawReviewRequest removes one ReviewRequested verdict. It is the only
// way a counter ever goes down.
func (s *ReviewStatus) WithdrawReviewRequest() error {
	if s.ReviewRequested == 0 {
		return shared.ErrMathOverflow
	}
	s.ReviewRequested--
	return nil
}

// Total returns the number of counted verdicts
func (s ReviewStatus) Total() uint64 {
	return s.Approved + s.Rejected + s.ReviewRequested
}

// RejectionRatio returns rejected*100/total truncated, or 0 with no verdicts
func (s ReviewStatus) RejectionRatio() uint64 {
	total := s.Total()
	if total == 0 {
		return 0
	}
	hi, lo := bits.Mul64(s.Rejected, 100)
	if hi != 0 {
		return 100
	}
	return lo / total
}

// ExceedsRejectionLimit reports whether the paper must be delisted
func (s ReviewStatus) ExceedsRejectionLimit() bool {
	return s.RejectionRatio() > MaxRejectionRatio
}

func incr(n *uint64) error {
	if *n == ^uint64(0) {
		return shared.ErrMathOverflow
	}
	*n++
	return nil
}
