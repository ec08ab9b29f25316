package categories

import "context"

// System defines the public contract for category domain operations.
type System interface {
	Handler(maxBodyBytes int64) *Handler

	// List returns every category ordered by name.
	List(ctx context.Context) ([]Category, error)
	Find(ctx context.Context, id int64) (*Category, error)
	Create(ctx context.Context, cmd CreateCommand) (*Category, error)
	// Delete removes a category no prompt references. It returns ErrInUse
	// while any prompt carries the category's name.
	Delete(ctx context.Context, id int64) error
	// Seed inserts Defaults, skipping names that already exist.
	Seed(ctx context.Context) error
}
