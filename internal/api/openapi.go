package api

import (
	"fmt"

	"github.com/brandforge/giftguide/internal/config"
	"github.com/brandforge/giftguide/pkg/openapi"
)

// buildSpec assembles the OpenAPI 3.1 document for the guide API.
func buildSpec(cfg *config.Config) *openapi.Spec {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)

	spec.Components.AddSchemas(map[string]*openapi.Schema{
		"GenerateRequest": {
			Type: "object",
			Required: []string{
				"companyName", "domain", "recipientEmail",
				"aeName", "aeEmail", "aePhone",
			},
			Properties: map[string]*openapi.Schema{
				"companyName":    {Type: "string", Example: "Nike"},
				"domain":         {Type: "string", Description: "Company web domain", Example: "nike.com"},
				"recipientEmail": {Type: "string", Format: "email"},
				"aeName":         {Type: "string", Description: "Account executive name"},
				"aeEmail":        {Type: "string", Format: "email"},
				"aePhone":        {Type: "string"},
			},
		},
		"GenerateResponse": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"success":        {Type: "boolean", Description: "True whenever a document was produced, including failed delivery"},
				"message":        {Type: "string"},
				"companyName":    {Type: "string"},
				"recipientEmail": {Type: "string"},
				"delivery":       {Type: "string", Enum: []any{"sent", "skipped", "failed"}},
				"guide":          openapi.SchemaRef("Guide"),
				"htmlPreview":    {Type: "string", Description: "Composed markup, included when preview=true"},
			},
		},
		"Guide": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":               {Type: "string", Format: "uuid"},
				"company_name":     {Type: "string"},
				"domain":           {Type: "string"},
				"recipient_email":  {Type: "string"},
				"ae_name":          {Type: "string"},
				"ae_email":         {Type: "string"},
				"ae_phone":         {Type: "string"},
				"logo_found":       {Type: "boolean"},
				"logo_url":         {Type: "string"},
				"primary_color":    {Type: "string", Example: "#0066CC"},
				"secondary_color":  {Type: "string", Example: "#999999"},
				"background_color": {Type: "string", Example: "#FFFFFF"},
				"accent_color":     {Type: "string"},
				"page_count":       {Type: "integer"},
				"size_bytes":       {Type: "integer"},
				"storage_key":      {Type: "string"},
				"delivery_status":  {Type: "string"},
				"delivery_id":      {Type: "string"},
				"delivery_detail":  {Type: "string"},
				"created_at":       {Type: "string", Format: "date-time"},
			},
		},
		"GuidePage": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        {Type: "array", Items: openapi.SchemaRef("Guide")},
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
	})

	spec.Paths["/guides"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary: "Generate a branded gift guide",
			Tags:    []string{"guides"},
			Parameters: []*openapi.Parameter{
				openapi.QueryParam("preview", "boolean", "Include composed markup in the response", false),
			},
			RequestBody: openapi.RequestBodyJSON("GenerateRequest", true),
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Guide generated; delivery outcome reported in the body", "GenerateResponse"),
				400: openapi.ResponseJSON("Validation failure", "GenerateResponse"),
				500: openapi.ResponseJSON("Generation failure", "GenerateResponse"),
			},
		},
		Get: &openapi.Operation{
			Summary: "List generated guides",
			Tags:    []string{"guides"},
			Parameters: []*openapi.Parameter{
				openapi.QueryParam("page", "integer", "Page number", false),
				openapi.QueryParam("page_size", "integer", "Results per page", false),
				openapi.QueryParam("search", "string", "Search company, domain, recipient", false),
				openapi.QueryParam("domain", "string", "Exact domain filter", false),
				openapi.QueryParam("delivery_status", "string", "Delivery status filter", false),
			},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Page of guide records", "GuidePage"),
			},
		},
	}

	spec.Paths["/guides/search"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Search guides with JSON criteria",
			Tags:        []string{"guides"},
			RequestBody: openapi.RequestBodyJSON("PageRequest", true),
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Page of guide records", "GuidePage"),
				400: openapi.ResponseRef("BadRequest"),
			},
		},
	}

	spec.Paths["/guides/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Find a guide record",
			Tags:       []string{"guides"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Guide identifier")},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Guide record", "Guide"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
		Delete: &openapi.Operation{
			Summary:    "Delete a guide and its artifact",
			Tags:       []string{"guides"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Guide identifier")},
			Responses: map[int]*openapi.Response{
				204: {Description: "Guide deleted"},
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/guides/{id}/document"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Download the rendered PDF",
			Tags:       []string{"guides"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Guide identifier")},
			Responses: map[int]*openapi.Response{
				200: {
					Description: "PDF document",
					Content: map[string]*openapi.MediaType{
						"application/pdf": {Schema: &openapi.Schema{Type: "string", Format: "binary"}},
					},
				},
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}

	return spec
}

// specBytes serializes the spec once at module construction.
func specBytes(cfg *config.Config) ([]byte, error) {
	data, err := openapi.MarshalJSON(buildSpec(cfg))
	if err != nil {
		return nil, fmt.Errorf("serialize openapi spec: %w", err)
	}
	return data, nil
}
