// Package query provides the fluent request builders for the Tabular
// service: row reads, facet histograms, crosswalk lookups, entity
// resolution, change feeds, row-level writes and a raw pass-through.
//
// Each builder accumulates state through fluent mutators and serializes to
// an ordered wire parameter set. Builders are not safe for concurrent
// mutation; each request gets its own instance.
package query

import (
	"net/http"
	"strings"

	"github.com/spf13/cast"

	"github.com/tabular-io/tabular-go/internal/encode"
	"github.com/tabular-io/tabular-go/pkg/filter"
	"github.com/tabular-io/tabular-go/pkg/response"
)

// Request is one serializable service request.
type Request interface {
	// Path returns the resource path for the given table.
	Path(table string) string

	// Method returns the HTTP method the request is sent with.
	Method() string

	// Serialize converts accumulated state into wire parameters. The
	// output is byte-identical across calls on unmodified state.
	Serialize() (*Params, error)

	// Shape identifies the response variant the request decodes into.
	Shape() response.Shape
}

// rawParam is one escape-hatch override. Structured values are JSON-encoded
// at serialization time; scalars are coerced to their string form.
type rawParam struct {
	key        string
	value      any
	structured bool
}

// serializeRaw merges overrides last so they win over computed values.
func serializeRaw(params *Params, raw []rawParam) error {
	for _, rp := range raw {
		if rp.structured {
			encoded, err := encode.Marshal(rp.value)
			if err != nil {
				return err
			}
			params.Set(rp.key, string(encoded))
			continue
		}
		params.Set(rp.key, cast.ToString(rp.value))
	}
	return nil
}

// sortSpec is one (field, direction) sort pair.
type sortSpec struct {
	field string
	desc  bool
}

func serializeSorts(sorts []sortSpec) string {
	parts := make([]string, len(sorts))
	for i, s := range sorts {
		dir := "asc"
		if s.desc {
			dir = "desc"
		}
		parts[i] = s.field + ":" + dir
	}
	return strings.Join(parts, ",")
}

// Query builds a row read against a table: filters, geo, sort, paging,
// full-text search, field selection and a row-count flag.
type Query struct {
	nodes        []filter.Node
	sorts        []sortSpec
	limit        *int
	offset       *int
	search       string
	geo          filter.Geo
	selectFields []string
	includeCount bool
	raw          []rawParam
}

// New creates an empty row query.
func New() *Query {
	return &Query{}
}

// Field starts a criterion for the named field. The finished criterion is
// appended to the query's implicit top-level AND.
func (q *Query) Field(name string) *FieldQuery {
	return &FieldQuery{q: q, f: filter.Field(name)}
}

// Where appends already-built filter nodes to the implicit top-level AND.
// Use filter.Field for detached criteria and filter.And/filter.Or for
// explicit nesting; nodes passed here are appended exactly once.
func (q *Query) Where(nodes ...filter.Node) *Query {
	q.nodes = append(q.nodes, nodes...)
	return q
}

// And appends an explicit AND group over the given nodes.
func (q *Query) And(nodes ...filter.Node) *Query {
	return q.Where(filter.And(nodes...))
}

// Or appends an explicit OR group over the given nodes.
func (q *Query) Or(nodes ...filter.Node) *Query {
	return q.Where(filter.Or(nodes...))
}

// Search sets the full-text search term list (space or comma delimited; the
// service decides matching semantics).
func (q *Query) Search(terms string) *Query {
	q.search = terms
	return q
}

// Within constrains results to a geo circle.
func (q *Query) Within(c filter.Circle) *Query {
	q.geo = c
	return q
}

// Near constrains results to a radius around an address.
func (q *Query) Near(address string, meters int) *Query {
	q.geo = filter.NewNear(address, meters)
	return q
}

// SortAsc appends an ascending sort on field.
func (q *Query) SortAsc(field string) *Query {
	q.sorts = append(q.sorts, sortSpec{field: field})
	return q
}

// SortDesc appends a descending sort on field.
func (q *Query) SortDesc(field string) *Query {
	q.sorts = append(q.sorts, sortSpec{field: field, desc: true})
	return q
}

// Limit caps the number of returned rows.
func (q *Query) Limit(n int) *Query {
	q.limit = &n
	return q
}

// Offset skips the first n rows for paging.
func (q *Query) Offset(n int) *Query {
	q.offset = &n
	return q
}

// Select restricts returned rows to the named fields.
func (q *Query) Select(fields ...string) *Query {
	q.selectFields = append(q.selectFields, fields...)
	return q
}

// SelectFields returns the accumulated field-selection list.
func (q *Query) SelectFields() []string {
	out := make([]string, len(q.selectFields))
	copy(out, q.selectFields)
	return out
}

// IncludeRowCount asks the service to also return the total row count.
func (q *Query) IncludeRowCount() *Query {
	q.includeCount = true
	return q
}

// SetParam sets a raw scalar wire parameter. Raw parameters always win over
// builder-computed values for the same key.
func (q *Query) SetParam(key string, value any) *Query {
	q.raw = append(q.raw, rawParam{key: key, value: value})
	return q
}

// SetJSONParam sets a raw wire parameter whose value is JSON-encoded at
// serialization time.
func (q *Query) SetJSONParam(key string, value any) *Query {
	q.raw = append(q.raw, rawParam{key: key, value: value, structured: true})
	return q
}

// Path implements Request.
func (q *Query) Path(table string) string { return "t/" + table }

// Method implements Request.
func (q *Query) Method() string { return http.MethodGet }

// Shape implements Request.
func (q *Query) Shape() response.Shape { return response.ShapeRows }

// Serialize implements Request.
func (q *Query) Serialize() (*Params, error) {
	params := NewParams()

	filters, err := filter.Render(q.nodes)
	if err != nil {
		return nil, err
	}
	if filters != nil {
		params.Set("filters", string(filters))
	}
	if q.geo != nil {
		geo, err := q.geo.EncodeGeoJSON()
		if err != nil {
			return nil, err
		}
		params.Set("geo", string(geo))
	}
	if len(q.sorts) > 0 {
		params.Set("sort", serializeSorts(q.sorts))
	}
	if q.limit != nil {
		params.Set("limit", cast.ToString(*q.limit))
	}
	if q.offset != nil {
		params.Set("offset", cast.ToString(*q.offset))
	}
	if q.search != "" {
		params.Set("q", q.search)
	}
	if len(q.selectFields) > 0 {
		params.Set("select", strings.Join(q.selectFields, ","))
	}
	if q.includeCount {
		params.Set("include_count", "true")
	}
	if err := serializeRaw(params, q.raw); err != nil {
		return nil, err
	}
	return params, nil
}

// FieldQuery finishes a criterion for one field of a Query. Every operator
// method builds the detached criterion via filter.Field and explicitly
// appends it, then returns the query for chaining.
type FieldQuery struct {
	q *Query
	f filter.FieldBuilder
}

func (fq *FieldQuery) append(c *filter.Criterion) *Query {
	return fq.q.Where(c)
}

// Equal appends an equality criterion.
func (fq *FieldQuery) Equal(value any) *Query { return fq.append(fq.f.Equal(value)) }

// NotEqual appends an inequality criterion.
func (fq *FieldQuery) NotEqual(value any) *Query { return fq.append(fq.f.NotEqual(value)) }

// BeginsWith appends a prefix criterion.
func (fq *FieldQuery) BeginsWith(prefix string) *Query { return fq.append(fq.f.BeginsWith(prefix)) }

// NotBeginsWith appends a negated prefix criterion.
func (fq *FieldQuery) NotBeginsWith(prefix string) *Query {
	return fq.append(fq.f.NotBeginsWith(prefix))
}

// BeginsWithAny appends an any-prefix criterion.
func (fq *FieldQuery) BeginsWithAny(prefixes ...any) *Query {
	return fq.append(fq.f.BeginsWithAny(prefixes...))
}

// NotBeginsWithAny appends a negated any-prefix criterion.
func (fq *FieldQuery) NotBeginsWithAny(prefixes ...any) *Query {
	return fq.append(fq.f.NotBeginsWithAny(prefixes...))
}

// Includes appends a multi-value containment criterion.
func (fq *FieldQuery) Includes(value any) *Query { return fq.append(fq.f.Includes(value)) }

// Excludes appends a negated multi-value containment criterion.
func (fq *FieldQuery) Excludes(value any) *Query { return fq.append(fq.f.Excludes(value)) }

// In appends a membership criterion.
func (fq *FieldQuery) In(values ...any) *Query { return fq.append(fq.f.In(values...)) }

// NotIn appends a negated membership criterion.
func (fq *FieldQuery) NotIn(values ...any) *Query { return fq.append(fq.f.NotIn(values...)) }

// GreaterThan appends a greater-than criterion.
func (fq *FieldQuery) GreaterThan(value any) *Query { return fq.append(fq.f.GreaterThan(value)) }

// LessThan appends a less-than criterion.
func (fq *FieldQuery) LessThan(value any) *Query { return fq.append(fq.f.LessThan(value)) }

// GreaterOrEqual appends a greater-or-equal criterion.
func (fq *FieldQuery) GreaterOrEqual(value any) *Query { return fq.append(fq.f.GreaterOrEqual(value)) }

// LessOrEqual appends a less-or-equal criterion.
func (fq *FieldQuery) LessOrEqual(value any) *Query { return fq.append(fq.f.LessOrEqual(value)) }

// Blank appends an is-blank criterion.
func (fq *FieldQuery) Blank() *Query { return fq.append(fq.f.Blank()) }

// NotBlank appends an is-not-blank criterion.
func (fq *FieldQuery) NotBlank() *Query { return fq.append(fq.f.NotBlank()) }

// Search appends a field-scoped full-text criterion.
func (fq *FieldQuery) Search(terms string) *Query { return fq.append(fq.f.Search(terms)) }
