package archives

import (
	"context"

	"github.com/JaimeStill/promptvault/pkg/storage"
)

// System exports the library and manages stored snapshots. Every method
// except Snapshot returns ErrDisabled when no storage is configured.
type System interface {
	Handler(maxListSize int32) *Handler

	Snapshot(ctx context.Context) (*Snapshot, error)
	// Save stores a fresh snapshot under a new key and describes it.
	Save(ctx context.Context) (*Archive, error)
	List(ctx context.Context, marker string, maxResults int32) (*Listing, error)
	// Open streams a stored archive. The caller must close Body.
	Open(ctx context.Context, key string) (*storage.Blob, error)
	Exists(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, key string) error
}
