package valueobject

import (
	"math"
	"testing"

	"github.com/paperfi/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney_Add(t *testing.T) {
	t.Run("adds amounts", func(t *testing.T) {
		m, err := NewMoney(1_000_000).Add(NewMoney(20_000))
		require.NoError(t, err)
		assert.Equal(t, uint64(1_020_000), m.Units())
	})

	t.Run("reports overflow", func(t *testing.T) {
		_, err := NewMoney(math.MaxUint64).Add(NewMoney(1))
		assert.ErrorIs(t, err, shared.ErrMathOverflow)
	})
}

func TestMoney_Subtract(t *testing.T) {
	m, err := NewMoney(10).Subtract(NewMoney(4))
	require.NoError(t, err)
	assert.Equal(t, uint64(6), m.Units())

	_, err = NewMoney(3).Subtract(NewMoney(4))
	assert.ErrorIs(t, err, shared.ErrInsufficientBalance)
}

func TestMoney_Percent(t *testing.T) {
	tests := []struct {
		name    string
		units   uint64
		percent uint8
		want    uint64
		wantErr error
	}{
		{"two percent of minimum price", 1_000_000, 2, 20_000, nil},
		{"truncates toward zero", 1_000_049, 2, 20_000, nil},
		{"zero percent", 5_000_000, 0, 0, nil},
		{"full price", 5_000_000, 100, 5_000_000, nil},
		{"overflowing product", math.MaxUint64, 2, 0, shared.ErrMathOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewMoney(tt.units).Percent(tt.percent)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Units())
		})
	}
}

func TestMoney_Format(t *testing.T) {
	assert.Equal(t, "0.001000000 SOL", NewMoney(1_000_000).Format(9, "SOL"))
	assert.Equal(t, "12.50", NewMoney(1250).Format(2, ""))
	assert.Equal(t, "0.001", NewMoney(1_000_000).String())
}

func TestParseMoney(t *testing.T) {
	m, err := ParseMoney("0.001", 9)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_000_000), m.Units())

	_, err = ParseMoney("-1", 9)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = ParseMoney("0.0000000001", 9)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = ParseMoney("abc", 9)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = ParseMoney("100000000000", 9)
	assert.ErrorIs(t, err, shared.ErrMathOverflow)
}

func TestMoney_Comparisons(t *testing.T) {
	a, b := NewMoney(5), NewMoney(7)
	assert.True(t, a.LessThan(b))
	assert.True(t, b.GreaterThanOrEqual(a))
	assert.True(t, a.Equals(NewMoney(5)))
	assert.True(t, Zero().IsZero())
}
