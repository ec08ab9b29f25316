package prompts

import (
	"database/sql"
	"net/url"
	"strings"

	"github.com/JaimeStill/promptvault/pkg/query"
	"github.com/JaimeStill/promptvault/pkg/repository"
)

var projection = query.
	NewProjectionMap("prompts", "p").
	Project("id", "id").
	Project("title", "title").
	Project("content", "content").
	Project("category", "category").
	Project("description", "description").
	Project("tags", "tags").
	ProjectFrom("c", "color", "categoryColor").
	Project("created_at", "createdAt").
	Project("updated_at", "updatedAt").
	Join("LEFT JOIN categories c ON c.name = p.category")

// Newest edits first; id breaks ties between prompts saved in the same instant.
var defaultSort = []query.SortField{
	{Field: "updatedAt", Descending: true},
	{Field: "id", Descending: true},
}

// searchFields are matched with OR by a search term.
var searchFields = []string{"title", "content", "description"}

// Filters narrows prompt queries. Search is a case-insensitive substring
// match over title, content and description. Category is an exact match.
// Nil fields are ignored.
type Filters struct {
	Search   *string `json:"search,omitempty"`
	Category *string `json:"category,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereSearch(f.Search, searchFields...).
		WhereEquals("category", f.Category)
}

// Normalize trims both fields and clears the ones left empty.
func (f *Filters) Normalize() {
	f.Search = trimmed(f.Search)
	f.Category = trimmed(f.Category)
}

// FiltersFromQuery extracts the search and category parameters.
func FiltersFromQuery(values url.Values) Filters {
	search := values.Get("search")
	category := values.Get("category")

	f := Filters{Search: &search, Category: &category}
	f.Normalize()
	return f
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func scanPrompt(s repository.Scanner) (Prompt, error) {
	var (
		p     Prompt
		color sql.NullString
	)
	err := s.Scan(
		&p.ID,
		&p.Title,
		&p.Content,
		&p.Category,
		&p.Description,
		&p.Tags,
		&color,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if color.Valid {
		p.CategoryColor = &color.String
	}
	return p, err
}
