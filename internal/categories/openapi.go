package categories

import "github.com/JaimeStill/promptvault/pkg/openapi"

var docTags = []string{"Categories"}

// Schemas returns the component schemas referenced by the category routes.
func Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Category": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":         {Type: "integer", Format: "int64"},
				"name":       {Type: "string"},
				"color":      {Type: "string", Example: DefaultColor},
				"created_at": {Type: "string", Format: "date-time"},
			},
		},
		"CategoryCommand": {
			Type:     "object",
			Required: []string{"name"},
			Properties: map[string]*openapi.Schema{
				"name":  {Type: "string", Description: "Unique, trimmed before saving"},
				"color": {Type: "string", Description: "Hex color", Default: DefaultColor},
			},
		},
	}
}

var idParam = openapi.IDParam("Category id")

var docs = struct {
	List, Find, Create, Delete *openapi.Operation
}{
	List: &openapi.Operation{
		Summary: "List categories",
		Tags:    docTags,
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Categories ordered by name", openapi.ArrayOf("Category")),
		},
	},
	Find: &openapi.Operation{
		Summary:    "Get a category",
		Tags:       docTags,
		Parameters: []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Category", openapi.SchemaRef("Category")),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Create: &openapi.Operation{
		Summary:     "Create a category",
		Tags:        docTags,
		RequestBody: openapi.RequestBodyJSON("CategoryCommand"),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Created category", openapi.SchemaRef("Category")),
			400: openapi.ResponseRef("BadRequest"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Delete: &openapi.Operation{
		Summary:     "Delete a category",
		Description: "Refused while any prompt references the category name.",
		Tags:        docTags,
		Parameters:  []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			204: openapi.NoContent("Deleted"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
}
