package backend

import (
	"encoding/json"
	"fmt"
)

// PageMeta is the canonical pagination envelope after normalization.
type PageMeta struct {
	TotalCount int
	TotalPages int
	Page       int
}

// rawEnvelope tolerates the two list shapes the platform serves: most
// endpoints return `elements`, a few older ones return `data`, and the count
// fields appear in both camelCase and snake_case.
type rawEnvelope struct {
	Elements json.RawMessage `json:"elements"`
	Data     json.RawMessage `json:"data"`

	TotalCount      *int `json:"totalCount"`
	TotalCountSnake *int `json:"total_count"`
	TotalPages      *int `json:"totalPages"`
	TotalPagesSnake *int `json:"total_pages"`
	Page            int  `json:"page"`
}

// normalizeEnvelope maps any observed list response shape into the items
// payload plus canonical pagination metadata.
func normalizeEnvelope(body []byte) (json.RawMessage, PageMeta, error) {
	var env rawEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, PageMeta{}, fmt.Errorf("failed to decode list envelope: %w", err)
	}

	items := env.Elements
	if items == nil {
		items = env.Data
	}
	if items == nil {
		return nil, PageMeta{}, fmt.Errorf("list envelope has neither elements nor data")
	}

	meta := PageMeta{
		TotalCount: firstInt(env.TotalCount, env.TotalCountSnake),
		TotalPages: firstInt(env.TotalPages, env.TotalPagesSnake),
		Page:       env.Page,
	}
	return items, meta, nil
}

func firstInt(values ...*int) int {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return 0
}
