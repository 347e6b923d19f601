package local

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_UploadAndFetchRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir, "http://localhost:8080/")
	require.NoError(t, err)

	id, url, err := s.Upload(context.Background(), "s1", []byte("%PDF data"), "application/pdf")
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, "http://localhost:8080/files/"+id+".pdf", url)

	data, err := s.Fetch(context.Background(), url)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF data"), data)
}

func TestStore_FetchByRelativeURL(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir, "")
	require.NoError(t, err)

	_, url, err := s.Upload(context.Background(), "s1", []byte("x"), "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/files/"), url)

	data, err := s.Fetch(context.Background(), url)
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), data)
}

func TestStore_FetchStripsDirectories(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir, "")
	require.NoError(t, err)

	secret := filepath.Join(dir, "..", "secret.pdf")
	require.NoError(t, os.WriteFile(secret, []byte("outside"), 0644))

	_, err = s.Fetch(context.Background(), "/files/../secret.pdf")
	assert.Error(t, err)
}

func TestStore_FetchUnknownFile(t *testing.T) {
	s, err := NewStore(t.TempDir(), "")
	require.NoError(t, err)

	_, err = s.Fetch(context.Background(), "/files/missing.pdf")
	assert.Error(t, err)
}

func TestStore_PathStaysInsideDir(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir, "")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "a.pdf"), s.Path("a.pdf"))
	assert.Equal(t, filepath.Join(dir, "a.pdf"), s.Path("../a.pdf"))
}
