package storage

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	t.Parallel()

	st, err := NewLocalStorage(filepath.Join(t.TempDir(), "static"), "/static/")
	require.NoError(t, err)

	ctx := context.Background()
	key := "mockups/m_1.jpg"

	ok, err := st.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, st.Put(ctx, key, bytes.NewReader([]byte("jpeg-bytes")), "image/jpeg"))

	ok, err = st.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)

	rc, err := st.Get(ctx, key)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	rc.Close()
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))

	assert.Equal(t, "/static/mockups/m_1.jpg", st.GetURL(key))

	require.NoError(t, st.Delete(ctx, key))
	require.NoError(t, st.Delete(ctx, key))

	_, err = st.Get(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStorageRejectsEscapingKeys(t *testing.T) {
	t.Parallel()

	st, err := NewLocalStorage(t.TempDir(), "/static")
	require.NoError(t, err)

	err = st.Put(context.Background(), "../outside.txt", bytes.NewReader(nil), "text/plain")
	assert.Error(t, err)
}

func TestNewSelectsDriver(t *testing.T) {
	t.Parallel()

	st, err := New(context.Background(), Config{LocalPath: t.TempDir(), LocalBaseURL: "/s"})
	require.NoError(t, err)
	assert.IsType(t, &LocalStorage{}, st)

	_, err = New(context.Background(), Config{Driver: "ftp"})
	assert.Error(t, err)

	_, err = New(context.Background(), Config{Driver: "s3"})
	assert.Error(t, err)
}

func TestS3StorageGetURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://cdn.test/mockups/a.jpg",
		(&S3Storage{bucket: "b", publicURL: "https://cdn.test"}).GetURL("mockups/a.jpg"))
	assert.Equal(t, "http://minio:9000/b/mockups/a.jpg",
		(&S3Storage{bucket: "b", endpoint: "http://minio:9000"}).GetURL("mockups/a.jpg"))
	assert.Equal(t, "https://b.s3.amazonaws.com/mockups/a.jpg",
		(&S3Storage{bucket: "b"}).GetURL("mockups/a.jpg"))
}
