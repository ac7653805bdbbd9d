package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlatformConfig_AddAdmin(t *testing.T) {
	c, err := NewPlatformConfig("root", 2, now)
	require.NoError(t, err)
	assert.True(t, c.IsAdmin("root"))
	assert.Equal(t, uint8(2), c.FeePercent)

	assert.ErrorIs(t, c.AddAdmin("mallory", "mallory", now), ErrNotAdmin)
	assert.ErrorIs(t, c.AddAdmin("root", "root", now), ErrAdminAlreadyExists)

	require.NoError(t, c.AddAdmin("root", "ops", now))
	require.NoError(t, c.AddAdmin("ops", "audit", now))
	assert.ErrorIs(t, c.AddAdmin("root", "fourth", now), ErrTooManyAdmins)
	assert.Len(t, c.Admins, MaxAdmins)
}

func TestPlatformConfig_SetFee(t *testing.T) {
	c, err := NewPlatformConfig("root", 2, now)
	require.NoError(t, err)

	require.NoError(t, c.SetFee("root", 0, now))
	assert.Equal(t, uint8(0), c.FeePercent)
	require.NoError(t, c.SetFee("root", 100, now))

	assert.ErrorIs(t, c.SetFee("root", 101, now), ErrInvalidFee)
	assert.ErrorIs(t, c.SetFee("guest", 5, now), ErrNotAdmin)
	assert.Equal(t, uint8(100), c.FeePercent)

	_, err = NewPlatformConfig("root", 150, now)
	assert.ErrorIs(t, err, ErrInvalidFee)
}
