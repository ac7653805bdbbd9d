package storage

import (
	"context"
	"testing"

	"github.com/paperfi/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewS3ObjectStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("bucket is required", func(t *testing.T) {
		_, err := NewS3ObjectStorage(ctx, config.MinterConfig{Backend: "s3"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket is required")
	})

	t.Run("static credentials and custom endpoint", func(t *testing.T) {
		s, err := NewS3ObjectStorage(ctx, config.MinterConfig{
			Backend:      "s3",
			Bucket:       "badges",
			Endpoint:     "localhost:9000",
			AccessKey:    "key",
			SecretKey:    "secret",
			UsePathStyle: true,
		}, WithLogger(zaptest.NewLogger(t)))
		require.NoError(t, err)
		assert.Equal(t, "badges", s.Bucket())
		assert.Equal(t, "s3://badges/badges/a.json", s.URL("badges/a.json"))
	})
}

func TestS3ObjectStorage_RejectsEmptyKey(t *testing.T) {
	ctx := context.Background()
	s, err := NewS3ObjectStorage(ctx, config.MinterConfig{Bucket: "badges", AccessKey: "k", SecretKey: "s"})
	require.NoError(t, err)

	assert.ErrorIs(t, s.Upload(ctx, "", []byte("{}"), "application/json"), ErrEmptyKey)
	assert.ErrorIs(t, s.DeleteObject(ctx, ""), ErrEmptyKey)
	_, err = s.ObjectExists(ctx, "")
	assert.ErrorIs(t, err, ErrEmptyKey)
}

func TestMemoryObjectStorage(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryObjectStorage()

	data := []byte(`{"name":"Reviewer"}`)
	require.NoError(t, s.Upload(ctx, "badges/1.json", data, "application/json"))
	data[0] = 'X'

	obj, ok := s.Get("badges/1.json")
	require.True(t, ok)
	assert.Equal(t, `{"name":"Reviewer"}`, string(obj.Data), "stored copy is independent of the caller's slice")
	assert.Equal(t, "application/json", obj.ContentType)

	exists, err := s.ObjectExists(ctx, "badges/1.json")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, s.DeleteObject(ctx, "badges/1.json"))
	exists, err = s.ObjectExists(ctx, "badges/1.json")
	require.NoError(t, err)
	assert.False(t, exists)

	assert.ErrorIs(t, s.Upload(ctx, "", nil, ""), ErrEmptyKey)
	assert.Equal(t, "mem://badges/1.json", s.URL("badges/1.json"))
}
