// Package response maps raw service response envelopes into typed results.
//
// Every envelope carries a status token ("ok" or "error") and a version
// marker; the payload shape depends on which query type produced it. The
// shape is always selected by an explicit tag passed alongside the raw body,
// never inferred from the payload itself.
package response

import (
	"encoding/json"

	"github.com/spf13/cast"
)

// Shape identifies which response variant a raw body should decode into.
// The set is closed.
type Shape string

const (
	ShapeRows      Shape = "rows"
	ShapeSchema    Shape = "schema"
	ShapeFacets    Shape = "facets"
	ShapeCrosswalk Shape = "crosswalk"
	ShapeWriteAck  Shape = "write_ack"
	ShapeDiffs     Shape = "diffs"
	ShapeRaw       Shape = "raw"
)

// Raw is the transport-level result handed to the decoder: the HTTP status
// line, the exact request URL attempted and the unparsed body.
type Raw struct {
	StatusCode    int
	StatusMessage string
	URL           string
	Body          []byte
}

// envelope is the outer JSON object every response carries.
type envelope struct {
	Version   any             `json:"version"`
	Status    string          `json:"status"`
	Message   string          `json:"message"`
	ErrorType string          `json:"error_type"`
	Response  json.RawMessage `json:"response"`
}

// Header carries the envelope fields common to all typed responses.
type Header struct {
	Version string
	Status  string
}

func (e *envelope) header() Header {
	return Header{Version: cast.ToString(e.Version), Status: e.Status}
}

// Read is a row-list response.
type Read struct {
	Header
	IncludedRows  int
	TotalRowCount int // -1 when the query did not request a row count
	Data          []map[string]any
}

// Empty reports whether the response carried no rows.
func (r *Read) Empty() bool { return len(r.Data) == 0 }

// MapStrings collects the named field from every row as a string.
func (r *Read) MapStrings(field string) []string {
	out := make([]string, 0, len(r.Data))
	for _, row := range r.Data {
		out = append(out, cast.ToString(row[field]))
	}
	return out
}

// ColumnSchema describes one column of a table.
type ColumnSchema struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Datatype    string `json:"datatype"`
	Faceted     bool   `json:"faceted"`
	Sortable    bool   `json:"sortable"`
	Searchable  bool   `json:"searchable"`
}

// Schema is a table descriptor response.
type Schema struct {
	Header
	Title         string
	Description   string
	GeoEnabled    bool
	SearchEnabled bool
	Columns       []ColumnSchema
}

// Column returns the schema for the named column, or nil.
func (s *Schema) Column(name string) *ColumnSchema {
	for i := range s.Columns {
		if s.Columns[i].Name == name {
			return &s.Columns[i]
		}
	}
	return nil
}

// Facets is a facet histogram response keyed by field, then by value.
type Facets struct {
	Header
	TotalRowCount int
	Data          map[string]map[string]int64
}

// Counts returns the histogram for one faceted field.
func (f *Facets) Counts(field string) map[string]int64 { return f.Data[field] }

// CrosswalkRow is one third-party link for an entity.
type CrosswalkRow struct {
	EntityID    string `json:"entity_id"`
	Namespace   string `json:"namespace"`
	NamespaceID string `json:"namespace_id"`
	URL         string `json:"url"`
}

// Crosswalk is a crosswalk-link list response.
type Crosswalk struct {
	Header
	Data []CrosswalkRow
}

// WriteAck acknowledges a row-level write (suggest or flag).
type WriteAck struct {
	Header
	EntityID  string
	NewEntity bool
}

// Diffs is a change-feed response.
type Diffs struct {
	Header
	Data []map[string]any
}
