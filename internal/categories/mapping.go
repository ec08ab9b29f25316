package categories

import (
	"github.com/JaimeStill/promptvault/pkg/query"
	"github.com/JaimeStill/promptvault/pkg/repository"
)

var projection = query.
	NewProjectionMap("categories", "c").
	Project("id", "id").
	Project("name", "name").
	Project("color", "color").
	Project("created_at", "createdAt")

var defaultSort = query.SortField{Field: "name"}

func scanCategory(s repository.Scanner) (Category, error) {
	var c Category
	err := s.Scan(&c.ID, &c.Name, &c.Color, &c.CreatedAt)
	return c, err
}
