package response_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabular-io/tabular-go/pkg/errors"
	"github.com/tabular-io/tabular-go/pkg/response"
)

func okRaw(body string) *response.Raw {
	return &response.Raw{
		StatusCode:    200,
		StatusMessage: "OK",
		URL:           "https://api.v3.tabular.dev/t/places?limit=10",
		Body:          []byte(body),
	}
}

func TestDecodeRows(t *testing.T) {
	body := `{
		"version": 3,
		"status": "ok",
		"response": {
			"data": [
				{"name": "Starbucks", "country": "US"},
				{"name": "Coffee Bean", "country": "US"}
			],
			"included_rows": 2,
			"total_row_count": 512
		}
	}`
	v, err := response.Decode(okRaw(body), response.ShapeRows)
	require.NoError(t, err)

	read := v.(*response.Read)
	assert.Equal(t, "3", read.Version)
	assert.Equal(t, "ok", read.Status)
	assert.Equal(t, 2, read.IncludedRows)
	assert.Equal(t, 512, read.TotalRowCount)
	assert.False(t, read.Empty())
	assert.Equal(t, []string{"Starbucks", "Coffee Bean"}, read.MapStrings("name"))
}

func TestDecodeRowsWithoutRowCount(t *testing.T) {
	body := `{"version":3,"status":"ok","response":{"data":[],"included_rows":0}}`
	v, err := response.Decode(okRaw(body), response.ShapeRows)
	require.NoError(t, err)

	read := v.(*response.Read)
	assert.Equal(t, -1, read.TotalRowCount)
	assert.True(t, read.Empty())
}

func TestDecodeUnauthorized(t *testing.T) {
	raw := &response.Raw{
		StatusCode:    401,
		StatusMessage: "Unauthorized",
		URL:           "https://api.v3.tabular.dev/t/places?limit=10",
		Body:          []byte(`{"version":3,"status":"error","error_type":"Auth","message":"Unauthorized access"}`),
	}
	_, err := response.Decode(raw, response.ShapeRows)
	require.Error(t, err)

	apiErr, ok := errors.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 401, apiErr.StatusCode)
	assert.Equal(t, "Unauthorized", apiErr.StatusMessage)
	assert.Equal(t, "Auth", apiErr.ErrorType)
	assert.Equal(t, "Unauthorized access", apiErr.Message)
	assert.Equal(t, "https://api.v3.tabular.dev/t/places?limit=10", apiErr.URL)
}

func TestDecodeErrorEnvelopeOn2xx(t *testing.T) {
	// The service can report errors inside an HTTP 200.
	body := `{"version":3,"status":"error","error_type":"InvalidArgument","message":"bad filter"}`
	_, err := response.Decode(okRaw(body), response.ShapeRows)
	require.Error(t, err)

	apiErr, ok := errors.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 200, apiErr.StatusCode)
	assert.Equal(t, "InvalidArgument", apiErr.ErrorType)
	assert.Equal(t, "bad filter", apiErr.Message)
}

func TestDecodeNon2xxUnparseableBody(t *testing.T) {
	raw := &response.Raw{
		StatusCode:    500,
		StatusMessage: "Internal Server Error",
		URL:           "https://api.v3.tabular.dev/t/places",
		Body:          []byte("<html>boom</html>"),
	}
	_, err := response.Decode(raw, response.ShapeRows)
	require.Error(t, err)

	apiErr, ok := errors.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 500, apiErr.StatusCode)
	assert.Empty(t, apiErr.Message)
}

func TestDecodeMalformedBodyOn2xx(t *testing.T) {
	_, err := response.Decode(okRaw("not json"), response.ShapeRows)
	require.Error(t, err)
	assert.True(t, errors.IsDecode(err))
}

func TestDecodeShapeMismatch(t *testing.T) {
	body := `{"version":3,"status":"ok","response":{"data":"oops"}}`
	_, err := response.Decode(okRaw(body), response.ShapeRows)
	require.Error(t, err)
	assert.True(t, errors.IsDecode(err))
}

func TestDecodeSchema(t *testing.T) {
	body := `{
		"version": 3,
		"status": "ok",
		"response": {
			"view": {
				"title": "Places",
				"description": "Points of interest",
				"geo_enabled": true,
				"search_enabled": true,
				"fields": [
					{"name": "name", "datatype": "string", "searchable": true},
					{"name": "rating", "datatype": "number", "sortable": true}
				]
			}
		}
	}`
	v, err := response.Decode(okRaw(body), response.ShapeSchema)
	require.NoError(t, err)

	schema := v.(*response.Schema)
	assert.Equal(t, "Places", schema.Title)
	assert.True(t, schema.GeoEnabled)
	require.Len(t, schema.Columns, 2)

	col := schema.Column("rating")
	require.NotNil(t, col)
	assert.Equal(t, "number", col.Datatype)
	assert.True(t, col.Sortable)
	assert.Nil(t, schema.Column("nope"))
}

func TestDecodeFacets(t *testing.T) {
	body := `{
		"version": 3,
		"status": "ok",
		"response": {
			"data": {
				"region": {"CA": 120, "NM": 30},
				"category": {"Food": 80}
			},
			"total_row_count": 150
		}
	}`
	v, err := response.Decode(okRaw(body), response.ShapeFacets)
	require.NoError(t, err)

	facets := v.(*response.Facets)
	assert.Equal(t, 150, facets.TotalRowCount)
	assert.Equal(t, map[string]int64{"CA": 120, "NM": 30}, facets.Counts("region"))
	assert.Nil(t, facets.Counts("missing"))
}

func TestDecodeCrosswalk(t *testing.T) {
	body := `{
		"version": 3,
		"status": "ok",
		"response": {
			"data": [
				{"entity_id": "97598010", "namespace": "foursquare", "namespace_id": "215159", "url": "https://foursquare.com/v/215159"}
			]
		}
	}`
	v, err := response.Decode(okRaw(body), response.ShapeCrosswalk)
	require.NoError(t, err)

	cw := v.(*response.Crosswalk)
	require.Len(t, cw.Data, 1)
	assert.Equal(t, "foursquare", cw.Data[0].Namespace)
	assert.Equal(t, "215159", cw.Data[0].NamespaceID)
}

func TestDecodeWriteAck(t *testing.T) {
	body := `{"version":3,"status":"ok","response":{"entity_id":"21EC5","new_entity":true}}`
	v, err := response.Decode(okRaw(body), response.ShapeWriteAck)
	require.NoError(t, err)

	ack := v.(*response.WriteAck)
	assert.Equal(t, "21EC5", ack.EntityID)
	assert.True(t, ack.NewEntity)
}

func TestDecodeDiffs(t *testing.T) {
	body := `{"version":3,"status":"ok","response":{"data":[{"type":"update","entity_id":"21EC5"}]}}`
	v, err := response.Decode(okRaw(body), response.ShapeDiffs)
	require.NoError(t, err)

	diffs := v.(*response.Diffs)
	require.Len(t, diffs.Data, 1)
	assert.Equal(t, "update", diffs.Data[0]["type"])
}

func TestDecodeRawPassThrough(t *testing.T) {
	body := `{"anything":"goes"}`
	v, err := response.Decode(okRaw(body), response.ShapeRaw)
	require.NoError(t, err)
	assert.Equal(t, []byte(body), v.([]byte))
}

func TestDecodeRawNon2xx(t *testing.T) {
	raw := &response.Raw{StatusCode: 404, StatusMessage: "Not Found", URL: "u"}
	_, err := response.Decode(raw, response.ShapeRaw)
	require.Error(t, err)
	apiErr, ok := errors.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 404, apiErr.StatusCode)
}
