package query

import (
	"net/http"
	"strings"

	"github.com/spf13/cast"

	"github.com/tabular-io/tabular-go/pkg/filter"
	"github.com/tabular-io/tabular-go/pkg/response"
)

// Facet builds a facet histogram request: value counts for the selected
// fields, narrowed by the same filter/geo/search state a row query takes.
type Facet struct {
	facetFields  []string
	nodes        []filter.Node
	geo          filter.Geo
	search       string
	facetLimit   *int
	minCount     *int
	includeCount bool
	raw          []rawParam
}

// NewFacet creates a facet request over the named fields.
func NewFacet(fields ...string) *Facet {
	return &Facet{facetFields: fields}
}

// Field starts a filter criterion for the named field.
func (fc *Facet) Field(name string) *FacetField {
	return &FacetField{fc: fc, f: filter.Field(name)}
}

// Where appends already-built filter nodes to the implicit top-level AND.
func (fc *Facet) Where(nodes ...filter.Node) *Facet {
	fc.nodes = append(fc.nodes, nodes...)
	return fc
}

// And appends an explicit AND group over the given nodes.
func (fc *Facet) And(nodes ...filter.Node) *Facet {
	return fc.Where(filter.And(nodes...))
}

// Or appends an explicit OR group over the given nodes.
func (fc *Facet) Or(nodes ...filter.Node) *Facet {
	return fc.Where(filter.Or(nodes...))
}

// Select adds fields to facet on.
func (fc *Facet) Select(fields ...string) *Facet {
	fc.facetFields = append(fc.facetFields, fields...)
	return fc
}

// Search sets the full-text search term list.
func (fc *Facet) Search(terms string) *Facet {
	fc.search = terms
	return fc
}

// Within constrains the facet to a geo circle.
func (fc *Facet) Within(c filter.Circle) *Facet {
	fc.geo = c
	return fc
}

// FacetLimit caps the number of distinct values returned per field.
func (fc *Facet) FacetLimit(n int) *Facet {
	fc.facetLimit = &n
	return fc
}

// MinCount drops values with fewer than n matching rows.
func (fc *Facet) MinCount(n int) *Facet {
	fc.minCount = &n
	return fc
}

// IncludeRowCount asks the service to also return the total row count.
func (fc *Facet) IncludeRowCount() *Facet {
	fc.includeCount = true
	return fc
}

// SetParam sets a raw scalar wire parameter.
func (fc *Facet) SetParam(key string, value any) *Facet {
	fc.raw = append(fc.raw, rawParam{key: key, value: value})
	return fc
}

// SetJSONParam sets a raw JSON-encoded wire parameter.
func (fc *Facet) SetJSONParam(key string, value any) *Facet {
	fc.raw = append(fc.raw, rawParam{key: key, value: value, structured: true})
	return fc
}

// Path implements Request.
func (fc *Facet) Path(table string) string { return "t/" + table + "/facets" }

// Method implements Request.
func (fc *Facet) Method() string { return http.MethodGet }

// Shape implements Request.
func (fc *Facet) Shape() response.Shape { return response.ShapeFacets }

// Serialize implements Request.
func (fc *Facet) Serialize() (*Params, error) {
	params := NewParams()

	if len(fc.facetFields) > 0 {
		params.Set("select", strings.Join(fc.facetFields, ","))
	}
	filters, err := filter.Render(fc.nodes)
	if err != nil {
		return nil, err
	}
	if filters != nil {
		params.Set("filters", string(filters))
	}
	if fc.geo != nil {
		geo, err := fc.geo.EncodeGeoJSON()
		if err != nil {
			return nil, err
		}
		params.Set("geo", string(geo))
	}
	if fc.search != "" {
		params.Set("q", fc.search)
	}
	if fc.facetLimit != nil {
		params.Set("limit", cast.ToString(*fc.facetLimit))
	}
	if fc.minCount != nil {
		params.Set("min_count", cast.ToString(*fc.minCount))
	}
	if fc.includeCount {
		params.Set("include_count", "true")
	}
	if err := serializeRaw(params, fc.raw); err != nil {
		return nil, err
	}
	return params, nil
}

// FacetField finishes a filter criterion for one field of a Facet.
type FacetField struct {
	fc *Facet
	f  filter.FieldBuilder
}

func (ff *FacetField) append(c *filter.Criterion) *Facet {
	return ff.fc.Where(c)
}

// Equal appends an equality criterion.
func (ff *FacetField) Equal(value any) *Facet { return ff.append(ff.f.Equal(value)) }

// NotEqual appends an inequality criterion.
func (ff *FacetField) NotEqual(value any) *Facet { return ff.append(ff.f.NotEqual(value)) }

// BeginsWith appends a prefix criterion.
func (ff *FacetField) BeginsWith(prefix string) *Facet { return ff.append(ff.f.BeginsWith(prefix)) }

// In appends a membership criterion.
func (ff *FacetField) In(values ...any) *Facet { return ff.append(ff.f.In(values...)) }

// NotIn appends a negated membership criterion.
func (ff *FacetField) NotIn(values ...any) *Facet { return ff.append(ff.f.NotIn(values...)) }

// Blank appends an is-blank criterion.
func (ff *FacetField) Blank() *Facet { return ff.append(ff.f.Blank()) }

// NotBlank appends an is-not-blank criterion.
func (ff *FacetField) NotBlank() *Facet { return ff.append(ff.f.NotBlank()) }

// Search appends a field-scoped full-text criterion.
func (ff *FacetField) Search(terms string) *Facet { return ff.append(ff.f.Search(terms)) }
