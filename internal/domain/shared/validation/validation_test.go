package validation

import (
	"strings"
	"testing"

	"github.com/paperfi/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestUpdateOptionalText(t *testing.T) {
	tests := []struct {
		name     string
		incoming *string
		maxLen   int
		want     string
		wantErr  error
	}{
		{"absent leaves current", nil, 10, "old", nil},
		{"applies short value", ptr("new"), 10, "new", nil},
		{"rejects value at the limit", ptr(strings.Repeat("a", 10)), 10, "old", shared.ErrInvalidFieldLength},
		{"accepts value one below limit", ptr(strings.Repeat("a", 9)), 10, strings.Repeat("a", 9), nil},
		{"rejects empty", ptr(""), 10, "old", shared.ErrFieldIsEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current := "old"
			err := UpdateOptionalText(&current, tt.incoming, tt.maxLen)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, current)
		})
	}
}

func TestUpdateOptionalText_LengthIsBytes(t *testing.T) {
	current := "old"
	// three runes, six bytes
	err := UpdateOptionalText(&current, ptr("ééé"), 6)
	assert.ErrorIs(t, err, shared.ErrInvalidFieldLength)
}

func TestUpdateOptionalNumeric(t *testing.T) {
	price := uint64(1_000_000)
	UpdateOptionalNumeric(&price, nil)
	assert.Equal(t, uint64(1_000_000), price)

	UpdateOptionalNumeric(&price, ptr(uint64(2_000_000)))
	assert.Equal(t, uint64(2_000_000), price)

	listed := false
	UpdateOptionalBool(&listed, ptr(true))
	assert.True(t, listed)
}

func TestContainsRestrictedSymbol(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"plain ascii", "https://arweave.net/abc?x=1", false},
		{"latin accents", "Résumé naïve", false},
		{"grinning face", "great paper 😀", true},
		{"rocket", "🚀", true},
		{"snowman", "☃", true},
		{"dingbat check", "✔", true},
		{"watch", "⌚", true},
		{"star", "⭐", true},
		{"wavy dash", "〰", true},
		{"left right arrow", "↔", true},
		{"regional indicator", "🇺", true},
		{"mahjong tile", "🀄", true},
		{"circled M", "Ⓜ", true},
		{"cjk is caught by the enclosed range", "论文", true},
		{"just below enclosed range", string(rune(0x24C1)), false},
		{"general punctuation", "—", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsRestrictedSymbol(tt.text))
		})
	}
}

func TestCheckField(t *testing.T) {
	assert.NoError(t, CheckField("ipfs://paper", MaxURILength))
	assert.ErrorIs(t, CheckField("", MaxURILength), shared.ErrFieldIsEmpty)
	assert.ErrorIs(t, CheckField("ok 😀", MaxURILength), shared.ErrEmojisNotAllowed)
	assert.ErrorIs(t, CheckField(strings.Repeat("a", MaxNameLength), MaxNameLength), shared.ErrInvalidFieldLength)
}
