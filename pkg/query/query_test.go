package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabular-io/tabular-go/internal/encode"
	pkgerrors "github.com/tabular-io/tabular-go/pkg/errors"
	"github.com/tabular-io/tabular-go/pkg/filter"
	"github.com/tabular-io/tabular-go/pkg/query"
	"github.com/tabular-io/tabular-go/pkg/response"
)

func serialize(t *testing.T, req query.Request) *query.Params {
	t.Helper()
	params, err := req.Serialize()
	require.NoError(t, err)
	return params
}

func paramValue(t *testing.T, params *query.Params, key string) string {
	t.Helper()
	v, ok := params.Get(key)
	require.True(t, ok, "missing parameter %q", key)
	return v
}

func TestQueryFieldAppendsOnce(t *testing.T) {
	q := query.New().Field("country").Equal("US")

	params := serialize(t, q)
	assert.Equal(t, `{"country":{"$eq":"US"}}`, paramValue(t, params, "filters"))
}

func TestQueryWhereDetachedCriteria(t *testing.T) {
	country := filter.Field("country").Equal("US")
	region := filter.Field("region").In("CA", "NM", "FL")

	params := serialize(t, query.New().Where(country, region))
	assert.Equal(t,
		`{"country":{"$eq":"US"},"region":{"$in":["CA","NM","FL"]}}`,
		paramValue(t, params, "filters"))
}

func TestQueryMixedFiltersWrappedInAnd(t *testing.T) {
	q := query.New().
		Field("region").In("CA", "NM", "FL").
		Or(
			filter.Field("name").BeginsWith("Coffee"),
			filter.Field("name").BeginsWith("Star"),
		)

	params := serialize(t, q)
	assert.Equal(t,
		`{"$and":[{"region":{"$in":["CA","NM","FL"]}},{"$or":[{"name":{"$bw":"Coffee"}},{"name":{"$bw":"Star"}}]}]}`,
		paramValue(t, params, "filters"))
}

func TestQueryParameterOrder(t *testing.T) {
	q := query.New().
		Field("country").Equal("US").
		Within(filter.NewCircle(34.06018, -118.41835, 5000)).
		SortAsc("name").
		SortDesc("rating").
		Limit(10).
		Offset(20).
		Search("sushi").
		Select("name", "category").
		IncludeRowCount()

	params := serialize(t, q)
	assert.Equal(t,
		[]string{"filters", "geo", "sort", "limit", "offset", "q", "select", "include_count"},
		params.Keys())
	assert.Equal(t, "name:asc,rating:desc", paramValue(t, params, "sort"))
	assert.Equal(t, "10", paramValue(t, params, "limit"))
	assert.Equal(t, "20", paramValue(t, params, "offset"))
	assert.Equal(t, "sushi", paramValue(t, params, "q"))
	assert.Equal(t, "name,category", paramValue(t, params, "select"))
	assert.Equal(t, "true", paramValue(t, params, "include_count"))
	assert.Equal(t,
		`{"$circle":{"$center":[34.06018,-118.41835],"$meters":5000}}`,
		paramValue(t, params, "geo"))
}

func TestQuerySerializeDeterministic(t *testing.T) {
	q := query.New().
		Field("category").Includes("Food").
		Within(filter.NewCircle(40.73, -74.0, 1000)).
		SortDesc("rating").
		Limit(50)

	first := serialize(t, q).Encode()
	second := serialize(t, q).Encode()
	assert.Equal(t, first, second)
}

func TestQueryRawParamOverridesComputed(t *testing.T) {
	q := query.New().Limit(10).SetParam("limit", 25)

	params := serialize(t, q)
	assert.Equal(t, "25", paramValue(t, params, "limit"))
	// The key keeps its computed position.
	assert.Equal(t, []string{"limit"}, params.Keys())
}

func TestQuerySetJSONParam(t *testing.T) {
	params := serialize(t, query.New().SetJSONParam("hints", map[string]int{"b": 2, "a": 1}))
	assert.Equal(t, `{"a":1,"b":2}`, paramValue(t, params, "hints"))
}

func TestQueryInvalidFilterFailsSerialize(t *testing.T) {
	_, err := query.New().Field("region").In().Serialize()
	require.Error(t, err)
	assert.True(t, pkgerrors.IsInvalidQuery(err))
}

func TestQueryRequestIdentity(t *testing.T) {
	q := query.New()
	assert.Equal(t, "t/places", q.Path("places"))
	assert.Equal(t, "GET", q.Method())
	assert.Equal(t, response.ShapeRows, q.Shape())
}

// rebuildNodes reconstructs filter nodes from a parsed serialized form, so a
// serialized tree can be proven to round-trip structurally.
func rebuildNodes(t *testing.T, parsed map[string]any) []filter.Node {
	t.Helper()
	var nodes []filter.Node
	for key, value := range parsed {
		switch key {
		case "$and", "$or":
			children := []filter.Node{}
			for _, child := range value.([]any) {
				children = append(children, rebuildNodes(t, child.(map[string]any))...)
			}
			if key == "$and" {
				nodes = append(nodes, filter.And(children...))
			} else {
				nodes = append(nodes, filter.Or(children...))
			}
		default:
			for op, v := range value.(map[string]any) {
				nodes = append(nodes, &filter.Criterion{Field: key, Op: filter.Op(op), Value: v})
			}
		}
	}
	return nodes
}

func TestQueryFiltersRoundTrip(t *testing.T) {
	q := query.New().Where(
		filter.Field("region").In("CA", "NM"),
		filter.Or(
			filter.Field("name").BeginsWith("Coffee"),
			filter.And(
				filter.Field("rating").GreaterThan(3),
				filter.Field("website").NotBlank(),
			),
		),
	)
	original := paramValue(t, serialize(t, q), "filters")

	var parsed map[string]any
	require.NoError(t, encode.Unmarshal([]byte(original), &parsed))
	rebuilt, err := filter.Render(rebuildNodes(t, parsed))
	require.NoError(t, err)

	var a, b any
	require.NoError(t, encode.Unmarshal([]byte(original), &a))
	require.NoError(t, encode.Unmarshal(rebuilt, &b))
	assert.Equal(t, a, b)
}
