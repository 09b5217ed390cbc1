package api

import (
	"github.com/KHUSHI-P15/Hackout/internal/config"
	"github.com/KHUSHI-P15/Hackout/pkg/openapi"
)

// buildSpec assembles the OpenAPI document for the API module.
func buildSpec(cfg *config.Config) ([]byte, error) {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)

	spec.Components.AddSchemas(map[string]*openapi.Schema{
		"Report": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":          {Type: "string", Format: "uuid"},
				"title":       {Type: "string"},
				"description": {Type: "string"},
				"category":    {Type: "string"},
				"status":      {Type: "string", Example: "pending"},
				"media":       {Type: "array", Items: &openapi.Schema{Type: "string"}},
				"latitude":    {Type: "number"},
				"longitude":   {Type: "number"},
				"address":     {Type: "string"},
			},
		},
		"Validation": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":         {Type: "string", Format: "uuid"},
				"report_id":  {Type: "string", Format: "uuid"},
				"ai_result":  {Type: "string", Example: "mangrove_detected"},
				"confidence": {Type: "integer", Description: "Confidence as a 0-100 percentage"},
				"verified":   {Type: "boolean"},
				"is_active":  {Type: "boolean"},
			},
		},
		"ClassifyResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"locator":     {Type: "string"},
				"success":     {Type: "boolean"},
				"is_mangrove": {Type: "boolean"},
				"confidence":  {Type: "number"},
				"backend":     {Type: "string"},
			},
		},
	})

	addReportPaths(spec)
	addValidationPaths(spec)
	addClassifyPaths(spec)
	addStoragePaths(spec)

	return openapi.MarshalJSON(spec)
}

func addReportPaths(spec *openapi.Spec) {
	tag := []string{"reports"}

	spec.Paths["/reports"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List reports",
			Tags:    tag,
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Paginated reports", "Report"),
			},
		},
		Post: &openapi.Operation{
			Summary: "Create a report",
			Tags:    tag,
			Responses: map[int]*openapi.Response{
				201: openapi.ResponseJSON("Created report", "Report"),
				400: openapi.ResponseRef("BadRequest"),
			},
		},
	}

	spec.Paths["/reports/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Find a report",
			Tags:       tag,
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Report UUID")},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Report", "Report"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
		Delete: &openapi.Operation{
			Summary:    "Delete a report",
			Tags:       tag,
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Report UUID")},
			Responses: map[int]*openapi.Response{
				204: {Description: "Deleted"},
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/reports/{id}/media"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:    "Attach a media file to a report",
			Tags:       tag,
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Report UUID")},
			Responses: map[int]*openapi.Response{
				201: openapi.ResponseJSON("Report with new media locator", "Report"),
				404: openapi.ResponseRef("NotFound"),
				413: {Description: "File exceeds maximum upload size"},
			},
		},
	}

	spec.Paths["/reports/search"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary: "Search reports",
			Tags:    tag,
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Paginated reports", "Report"),
			},
		},
	}
}

func addValidationPaths(spec *openapi.Spec) {
	tag := []string{"validations"}

	spec.Paths["/validations"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List validation records",
			Tags:    tag,
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Paginated validations", "Validation"),
			},
		},
	}

	spec.Paths["/validations/stats"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "AI performance statistics",
			Tags:    tag,
			Responses: map[int]*openapi.Response{
				200: {Description: "Aggregate validation statistics"},
			},
		},
	}

	spec.Paths["/validations/report/{reportId}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Active validation record for a report",
			Tags:       tag,
			Parameters: []*openapi.Parameter{openapi.PathParam("reportId", "Report UUID")},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Validation record", "Validation"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/validations/report/{reportId}/analyze"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:    "Run AI triage over a report's images",
			Tags:       tag,
			Parameters: []*openapi.Parameter{openapi.PathParam("reportId", "Report UUID")},
			Responses: map[int]*openapi.Response{
				201: openapi.ResponseJSON("Validation record with full analysis", "Validation"),
				400: openapi.ResponseRef("BadRequest"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/validations/report/{reportId}/reconcile"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:    "Reconcile the active record with human feedback",
			Tags:       tag,
			Parameters: []*openapi.Parameter{openapi.PathParam("reportId", "Report UUID")},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Reconciled validation record", "Validation"),
				400: openapi.ResponseRef("BadRequest"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}
}

func addClassifyPaths(spec *openapi.Spec) {
	tag := []string{"classify"}

	spec.Paths["/classify"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary: "Classify a single image without audit side effects",
			Tags:    tag,
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Classification result", "ClassifyResult"),
				400: openapi.ResponseRef("BadRequest"),
			},
		},
	}

	spec.Paths["/classify/batch"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary: "Classify a batch of images without audit side effects",
			Tags:    tag,
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Batch results with summary", "ClassifyResult"),
				400: openapi.ResponseRef("BadRequest"),
			},
		},
	}
}

func addStoragePaths(spec *openapi.Spec) {
	tag := []string{"storage"}

	spec.Paths["/storage"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List media blobs",
			Tags:    tag,
			Responses: map[int]*openapi.Response{
				200: {Description: "One page of blob metadata"},
			},
		},
	}

	spec.Paths["/storage/download/{key}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "Download a media blob",
			Tags:    tag,
			Responses: map[int]*openapi.Response{
				200: {Description: "Blob content"},
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}
}
