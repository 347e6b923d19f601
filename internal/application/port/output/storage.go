package output

import "context"

// StoragePort is the file-storage collaborator boundary. The core only
// needs opaque upload/fetch; whether bytes land on disk or in a blob
// store is the adapter's business.
type StoragePort interface {
	Upload(ctx context.Context, sessionID string, data []byte, contentType string) (id, url string, err error)
	Fetch(ctx context.Context, url string) ([]byte, error)
}
