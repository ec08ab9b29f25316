// Package prompts implements the prompt library: stored text templates with
// a category, optional description and tags, searchable by substring.
package prompts

import (
	"strings"
	"time"

	"github.com/samber/lo"
)

// Prompt is a stored prompt joined with its category's color.
// CategoryColor is nil when no category carries the prompt's category name.
type Prompt struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Category      string    `json:"category"`
	Description   string    `json:"description"`
	Tags          string    `json:"tags"`
	CategoryColor *string   `json:"category_color"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TagList splits Tags on commas, dropping blanks and repeats.
func (p Prompt) TagList() []string {
	return ParseTags(p.Tags)
}

// ParseTags splits a comma-separated tag string into trimmed, unique,
// non-empty tags in their original order.
func ParseTags(s string) []string {
	tags := lo.Map(strings.Split(s, ","), func(t string, _ int) string {
		return strings.TrimSpace(t)
	})
	return lo.Uniq(lo.Compact(tags))
}

// CreateCommand carries the fields of a new prompt. Title and Category are
// trimmed; Content, Description and Tags are stored exactly as given.
type CreateCommand struct {
	Title       string `json:"title" validate:"required"`
	Content     string `json:"content" validate:"notblank"`
	Category    string `json:"category" validate:"required"`
	Description string `json:"description"`
	Tags        string `json:"tags"`
}

// UpdateCommand replaces every editable field of an existing prompt.
type UpdateCommand CreateCommand

// Stats summarizes the library for the index page.
type Stats struct {
	Total        int `json:"total"`
	UpdatedToday int `json:"updated_today"`
}

func (c *CreateCommand) normalize() {
	c.Title = strings.TrimSpace(c.Title)
	c.Category = strings.TrimSpace(c.Category)
}
