// Package storage provides the object-storage staging area used by the
// long-running recognition and video annotation jobs.
package storage

import "context"

// Stager uploads payloads to a staging area and deletes them after use.
// Deletion is best-effort; callers log failures instead of raising them.
type Stager interface {
	// Upload stores data and returns a URI consumable by the long-running
	// jobs (gs://bucket/object for the Google backends).
	Upload(ctx context.Context, data []byte, contentType string) (string, error)

	// Delete removes a previously uploaded object by its URI.
	Delete(ctx context.Context, uri string) error
}
