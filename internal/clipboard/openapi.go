package clipboard

import "github.com/JaimeStill/promptvault/pkg/openapi"

// Schemas returns the component schemas referenced by the copy route.
func Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"CopyResult": {
			Type:     "object",
			Required: []string{"success", "message"},
			Properties: map[string]*openapi.Schema{
				"success":   {Type: "boolean"},
				"message":   {Type: "string"},
				"content":   {Type: "string", Description: "Prompt text, present in headless mode"},
				"is_docker": {Type: "boolean", Description: "True when the browser must copy the content itself"},
			},
		},
	}
}

var copyDoc = &openapi.Operation{
	Summary:     "Copy a prompt",
	Description: "Writes the content to the host clipboard, or returns it when headless. Failures still answer 200 with success false.",
	Tags:        []string{"Clipboard"},
	Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Prompt id")},
	Responses: map[int]*openapi.Response{
		200: openapi.ResponseJSON("Copy outcome", openapi.SchemaRef("CopyResult")),
	},
}
