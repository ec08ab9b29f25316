package archives

import "github.com/JaimeStill/promptvault/pkg/openapi"

var docTags = []string{"Archives"}

// Schemas returns the component schemas referenced by the export and archive routes.
func Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Snapshot": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"version":     {Type: "integer"},
				"exported_at": {Type: "string", Format: "date-time"},
				"categories":  openapi.ArrayOf("Category"),
				"prompts":     openapi.ArrayOf("Prompt"),
			},
		},
		"Archive": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"key":        {Type: "string", Example: "archives/20260310-120000-1f0c.json"},
				"size":       {Type: "integer", Format: "int64"},
				"size_text":  {Type: "string", Example: "4.2 KB"},
				"created_at": {Type: "string", Format: "date-time"},
			},
		},
		"ArchiveListing": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"archives":    openapi.ArrayOf("Archive"),
				"next_marker": {Type: "string", Description: "Pass as marker to read the next page"},
			},
		},
	}
}

var keyParam = openapi.PathParam("key", "Archive key or bare file name")

var attachment = map[string]*openapi.Header{
	"Content-Disposition": {Schema: &openapi.Schema{Type: "string"}},
}

var docs = struct {
	Export, List, Save, Exists, Download, Delete *openapi.Operation
}{
	Export: &openapi.Operation{
		Summary: "Export the library",
		Tags:    docTags,
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Snapshot of every category and prompt",
				Headers:     attachment,
				Content: map[string]*openapi.MediaType{
					"application/json": {Schema: openapi.SchemaRef("Snapshot")},
				},
			},
		},
	},
	List: &openapi.Operation{
		Summary: "List stored archives",
		Tags:    docTags,
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("marker", "string", "Continuation marker from a previous page"),
			openapi.QueryParam("max_results", "integer", "Page size"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Archive page", openapi.SchemaRef("ArchiveListing")),
			400: openapi.ResponseRef("BadRequest"),
			503: openapi.ResponseRef("ServiceUnavailable"),
		},
	},
	Save: &openapi.Operation{
		Summary: "Store a snapshot",
		Tags:    docTags,
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Stored archive", openapi.SchemaRef("Archive")),
			503: openapi.ResponseRef("ServiceUnavailable"),
		},
	},
	Exists: &openapi.Operation{
		Summary:    "Check an archive",
		Tags:       docTags,
		Parameters: []*openapi.Parameter{keyParam},
		Responses: map[int]*openapi.Response{
			200: {Description: "Stored"},
			404: {Description: "Not stored"},
			503: {Description: "Storage not configured"},
		},
	},
	Download: &openapi.Operation{
		Summary:    "Download an archive",
		Tags:       docTags,
		Parameters: []*openapi.Parameter{keyParam},
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Archive body",
				Headers:     attachment,
				Content: map[string]*openapi.MediaType{
					"application/json": {Schema: openapi.SchemaRef("Snapshot")},
				},
			},
			404: openapi.ResponseRef("NotFound"),
			503: openapi.ResponseRef("ServiceUnavailable"),
		},
	},
	Delete: &openapi.Operation{
		Summary:    "Delete an archive",
		Tags:       docTags,
		Parameters: []*openapi.Parameter{keyParam},
		Responses: map[int]*openapi.Response{
			204: openapi.NoContent("Deleted"),
			404: openapi.ResponseRef("NotFound"),
			503: openapi.ResponseRef("ServiceUnavailable"),
		},
	},
}
