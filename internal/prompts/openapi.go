package prompts

import "github.com/JaimeStill/promptvault/pkg/openapi"

var docTags = []string{"Prompts"}

// Schemas returns the component schemas referenced by the prompt routes.
func Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Prompt": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":             {Type: "integer", Format: "int64"},
				"title":          {Type: "string"},
				"content":        {Type: "string", Description: "Stored exactly as submitted"},
				"category":       {Type: "string", Description: "Name of the category"},
				"description":    {Type: "string", Description: "Markdown, stored as submitted"},
				"tags":           {Type: "string", Description: "Comma-separated, stored as submitted"},
				"category_color": {Type: "string", Description: "Color of the named category, null when none matches"},
				"created_at":     {Type: "string", Format: "date-time"},
				"updated_at":     {Type: "string", Format: "date-time"},
			},
		},
		"PromptCommand": {
			Type:     "object",
			Required: []string{"title", "content", "category"},
			Properties: map[string]*openapi.Schema{
				"title":       {Type: "string", Description: "Trimmed before saving"},
				"content":     {Type: "string", Description: "Must contain a non-space character"},
				"category":    {Type: "string", Description: "Trimmed before saving"},
				"description": {Type: "string"},
				"tags":        {Type: "string", Example: "go, review"},
			},
		},
		"PromptPage": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        openapi.ArrayOf("Prompt"),
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
		"PromptSearch": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"page":      {Type: "integer"},
				"page_size": {Type: "integer"},
				"search":    {Type: "string"},
				"sort":      {Type: "string"},
				"category":  {Type: "string", Description: "Exact category name"},
			},
		},
		"PromptStats": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"total":         {Type: "integer"},
				"updated_today": {Type: "integer", Description: "Prompts edited on the server's current local day"},
			},
		},
	}
}

var idParam = openapi.IDParam("Prompt id")

var docs = struct {
	List, Stats, Find, Create, Search, Update, Delete *openapi.Operation
}{
	List: &openapi.Operation{
		Summary:     "List prompts",
		Description: "Newest edits first. search matches title, content and description; category is exact.",
		Tags:        docTags,
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("page", "integer", "Page number (1-indexed)"),
			openapi.QueryParam("page_size", "integer", "Results per page"),
			openapi.QueryParam("search", "string", "Substring, matched literally"),
			openapi.QueryParam("category", "string", "Exact category name"),
			openapi.QueryParam("sort", "string", "Comma-separated fields, - for descending"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Page of prompts", openapi.SchemaRef("PromptPage")),
		},
	},
	Stats: &openapi.Operation{
		Summary: "Library totals",
		Tags:    docTags,
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Totals", openapi.SchemaRef("PromptStats")),
		},
	},
	Find: &openapi.Operation{
		Summary:    "Get a prompt",
		Tags:       docTags,
		Parameters: []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Prompt", openapi.SchemaRef("Prompt")),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Create: &openapi.Operation{
		Summary:     "Create a prompt",
		Tags:        docTags,
		RequestBody: openapi.RequestBodyJSON("PromptCommand"),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Created prompt", openapi.SchemaRef("Prompt")),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Search: &openapi.Operation{
		Summary:     "Search prompts",
		Description: "JSON body form of the list query.",
		Tags:        docTags,
		RequestBody: openapi.RequestBodyJSON("PromptSearch"),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Page of prompts", openapi.SchemaRef("PromptPage")),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Update: &openapi.Operation{
		Summary:     "Replace a prompt",
		Description: "Keeps id and created_at and refreshes updated_at.",
		Tags:        docTags,
		Parameters:  []*openapi.Parameter{idParam},
		RequestBody: openapi.RequestBodyJSON("PromptCommand"),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Updated prompt", openapi.SchemaRef("Prompt")),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Delete: &openapi.Operation{
		Summary:    "Delete a prompt",
		Tags:       docTags,
		Parameters: []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			204: openapi.NoContent("Deleted"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}
