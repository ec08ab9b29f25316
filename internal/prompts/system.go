package prompts

import (
	"context"

	"github.com/JaimeStill/promptvault/pkg/pagination"
)

// System defines the public contract for prompt domain operations.
type System interface {
	Handler(maxBodyBytes int64) *Handler

	// List returns every prompt matching filters, newest edit first.
	List(ctx context.Context, filters Filters) ([]Prompt, error)
	// Page returns one page of matching prompts. A nil filters.Search falls
	// back to page.Search.
	Page(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Prompt], error)
	// UpdatedToday counts prompts last edited on the current local day.
	UpdatedToday(ctx context.Context) (int, error)
	Stats(ctx context.Context) (*Stats, error)

	Find(ctx context.Context, id int64) (*Prompt, error)
	Create(ctx context.Context, cmd CreateCommand) (*Prompt, error)
	Update(ctx context.Context, id int64, cmd UpdateCommand) (*Prompt, error)
	Delete(ctx context.Context, id int64) error
}
