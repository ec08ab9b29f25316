// Package categories manages the named, colored groups prompts reference by name.
package categories

import (
	"strings"
	"time"
)

// DefaultColor is assigned to categories created without a color.
const DefaultColor = "#6366f1"

// Category groups prompts. Prompts point at it through Name, so names are unique.
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCommand carries the fields of a new category.
type CreateCommand struct {
	Name  string `json:"name" validate:"required"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
}

func (c *CreateCommand) normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Color = strings.TrimSpace(c.Color)
}

// Defaults are the categories present on every startup.
var Defaults = []CreateCommand{
	{Name: "일반", Color: "#6366f1"},
	{Name: "개발", Color: "#10b981"},
	{Name: "문서작성", Color: "#f59e0b"},
	{Name: "분석", Color: "#8b5cf6"},
	{Name: "번역", Color: "#06b6d4"},
	{Name: "기타", Color: "#64748b"},
}
