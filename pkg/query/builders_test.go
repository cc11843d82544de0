package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tabular-io/tabular-go/pkg/filter"
	"github.com/tabular-io/tabular-go/pkg/query"
	"github.com/tabular-io/tabular-go/pkg/response"
)

func TestFacetSerialize(t *testing.T) {
	f := query.NewFacet("region", "category").
		Field("country").Equal("US").
		Search("coffee").
		FacetLimit(20).
		MinCount(2).
		IncludeRowCount()

	params := serialize(t, f)
	assert.Equal(t,
		[]string{"select", "filters", "q", "limit", "min_count", "include_count"},
		params.Keys())
	assert.Equal(t, "region,category", paramValue(t, params, "select"))
	assert.Equal(t, `{"country":{"$eq":"US"}}`, paramValue(t, params, "filters"))
	assert.Equal(t, "coffee", paramValue(t, params, "q"))
	assert.Equal(t, "20", paramValue(t, params, "limit"))
	assert.Equal(t, "2", paramValue(t, params, "min_count"))

	assert.Equal(t, "t/places/facets", f.Path("places"))
	assert.Equal(t, "GET", f.Method())
	assert.Equal(t, response.ShapeFacets, f.Shape())
}

func TestFacetGeo(t *testing.T) {
	f := query.NewFacet("category").Within(filter.NewCircle(34.06018, -118.41835, 5000))
	params := serialize(t, f)
	assert.Equal(t,
		`{"$circle":{"$center":[34.06018,-118.41835],"$meters":5000}}`,
		paramValue(t, params, "geo"))
}

func TestCrosswalkByEntityID(t *testing.T) {
	c := query.NewCrosswalk().EntityID("97598010-433f-4946-8fd5-4a6dd1639d77").
		Only("loopt", "foursquare").
		Limit(5)

	params := serialize(t, c)
	assert.Equal(t, []string{"entity_id", "only", "limit"}, params.Keys())
	assert.Equal(t, "97598010-433f-4946-8fd5-4a6dd1639d77", paramValue(t, params, "entity_id"))
	assert.Equal(t, "loopt,foursquare", paramValue(t, params, "only"))
	assert.Equal(t, "5", paramValue(t, params, "limit"))
	assert.Equal(t, "t/places/crosswalk", c.Path("places"))
	assert.Equal(t, response.ShapeCrosswalk, c.Shape())
}

func TestCrosswalkByNamespace(t *testing.T) {
	c := query.NewCrosswalk().Namespace("foursquare").NamespaceID("215159")
	params := serialize(t, c)
	assert.Equal(t, "foursquare", paramValue(t, params, "namespace"))
	assert.Equal(t, "215159", paramValue(t, params, "namespace_id"))
}

func TestResolveSerialize(t *testing.T) {
	r := query.NewResolve().
		Add("name", "McDonalds").
		Add("address", "10451 Santa Monica Blvd").
		Add("region", "CA")

	params := serialize(t, r)
	assert.Equal(t,
		`{"name":"McDonalds","address":"10451 Santa Monica Blvd","region":"CA"}`,
		paramValue(t, params, "values"))
	assert.Equal(t, "t/places/resolve", r.Path("places"))
	assert.Equal(t, response.ShapeRows, r.Shape())
}

func TestResolveReAddOverwritesInPlace(t *testing.T) {
	r := query.NewResolve().Add("name", "first").Add("city", "LA").Add("name", "second")
	params := serialize(t, r)
	assert.Equal(t, `{"name":"second","city":"LA"}`, paramValue(t, params, "values"))
}

func TestSuggestNewEntity(t *testing.T) {
	s := query.NewSuggest().
		SetValue("name", "Starbucks").
		SetValue("latitude", 34.06018).
		Metadata(query.NewMetadata("test_driver_user"))

	params := serialize(t, s)
	assert.Equal(t, `{"name":"Starbucks","latitude":34.06018}`, paramValue(t, params, "values"))
	assert.Equal(t, "test_driver_user", paramValue(t, params, "user"))
	assert.Equal(t, "t/places/suggest", s.Path("places"))
	assert.Equal(t, "POST", s.Method())
	assert.Equal(t, response.ShapeWriteAck, s.Shape())
}

func TestSuggestExistingEntityAndBlank(t *testing.T) {
	s := query.NewSuggest().For("21EC5").MakeBlank("website")
	params := serialize(t, s)
	assert.Equal(t, `{"website":null}`, paramValue(t, params, "values"))
	assert.Equal(t, "t/places/21EC5/suggest", s.Path("places"))
}

func TestFlagSerialize(t *testing.T) {
	f := query.Duplicate("21EC5").
		Metadata(query.NewMetadata("test_driver_user").
			Comment("saw this twice").
			Reference("http://example.com/proof").
			Debug())

	params := serialize(t, f)
	assert.Equal(t, "duplicate", paramValue(t, params, "problem"))
	assert.Equal(t, "test_driver_user", paramValue(t, params, "user"))
	assert.Equal(t, "saw this twice", paramValue(t, params, "comment"))
	assert.Equal(t, "http://example.com/proof", paramValue(t, params, "reference"))
	assert.Equal(t, "true", paramValue(t, params, "debug"))
	assert.Equal(t, "t/places/21EC5/flag", f.Path("places"))
	assert.Equal(t, "POST", f.Method())
}

func TestDiffsSerialize(t *testing.T) {
	d := query.NewDiffs(1318890505254).Until(1318890516892)
	params := serialize(t, d)
	assert.Equal(t, "1318890505254", paramValue(t, params, "start"))
	assert.Equal(t, "1318890516892", paramValue(t, params, "end"))
	assert.Equal(t, "t/places/diffs", d.Path("places"))
	assert.Equal(t, response.ShapeDiffs, d.Shape())
}

func TestCustomPassThrough(t *testing.T) {
	c := query.NewCustom().SetParam("select", "name").SetParam("limit", 3)
	params := serialize(t, c)
	assert.Equal(t, "select=name&limit=3", params.Encode())
	assert.Equal(t, "t/places", c.Path("t/places"))
	assert.Equal(t, response.ShapeRaw, c.Shape())
}
