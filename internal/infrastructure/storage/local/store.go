package local

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"pdf-agent/internal/application/port/output"
)

var _ output.StoragePort = (*Store)(nil)

// Store keeps uploaded and produced files on the local disk and serves
// them under /files/<name> relative to the configured base URL.
type Store struct {
	dir     string
	baseURL string
}

func NewStore(dir, baseURL string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Store{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (s *Store) Upload(_ context.Context, sessionID string, data []byte, contentType string) (string, string, error) {
	id := uuid.NewString()
	name := id + extensionFor(contentType)

	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0644); err != nil {
		return "", "", fmt.Errorf("write file for session %s: %w", sessionID, err)
	}

	return id, s.baseURL + "/files/" + name, nil
}

func (s *Store) Fetch(_ context.Context, url string) ([]byte, error) {
	// path.Base strips any directory the URL carries, so a crafted url
	// cannot escape the storage dir.
	name := path.Base(url)
	if name == "." || name == "/" || name == "" {
		return nil, fmt.Errorf("invalid file url %q", url)
	}

	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

// Path resolves a served file name to its on-disk location.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, path.Base(name))
}

func extensionFor(contentType string) string {
	switch contentType {
	case "", "application/pdf":
		return ".pdf"
	default:
		return ".bin"
	}
}
