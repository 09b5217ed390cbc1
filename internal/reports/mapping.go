package reports

import (
	"encoding/json"
	"net/url"

	"github.com/KHUSHI-P15/Hackout/pkg/query"
	"github.com/KHUSHI-P15/Hackout/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "reports", "r").
	Project("id", "ID").
	Project("title", "Title").
	Project("description", "Description").
	Project("category", "Category").
	Project("status", "Status").
	Project("media", "Media").
	Project("media_keys", "MediaKeys").
	Project("latitude", "Latitude").
	Project("longitude", "Longitude").
	Project("address", "Address").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for report queries.
// Nil fields are ignored. Category and Status use exact matching.
// Title and Address use case-insensitive contains matching.
type Filters struct {
	Category *string `json:"category,omitempty"`
	Status   *string `json:"status,omitempty"`
	Title    *string `json:"title,omitempty"`
	Address  *string `json:"address,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Category", f.Category).
		WhereEquals("Status", f.Status).
		WhereContains("Title", f.Title).
		WhereContains("Address", f.Address)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if c := values.Get("category"); c != "" {
		f.Category = &c
	}

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	if t := values.Get("title"); t != "" {
		f.Title = &t
	}

	if a := values.Get("address"); a != "" {
		f.Address = &a
	}

	return f
}

func scanReport(s repository.Scanner) (Report, error) {
	var (
		r         Report
		mediaRaw  []byte
		mediaKeys []byte
	)

	err := s.Scan(
		&r.ID,
		&r.Title,
		&r.Description,
		&r.Category,
		&r.Status,
		&mediaRaw,
		&mediaKeys,
		&r.Latitude,
		&r.Longitude,
		&r.Address,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		return r, err
	}

	if len(mediaRaw) > 0 {
		if err := json.Unmarshal(mediaRaw, &r.Media); err != nil {
			return r, err
		}
	}

	if len(mediaKeys) > 0 {
		if err := json.Unmarshal(mediaKeys, &r.MediaKeys); err != nil {
			return r, err
		}
	}

	return r, nil
}
