package response

import (
	"fmt"

	"github.com/tabular-io/tabular-go/internal/encode"
	"github.com/tabular-io/tabular-go/pkg/errors"
)

// Decode maps a raw envelope into the typed response variant named by shape.
//
// A non-2xx HTTP status or an error-status envelope produces an *APIError
// carrying the HTTP status code, status message and the request URL; callers
// must check the error before touching payload fields. A body that does not
// match the expected shape produces a DecodeError.
func Decode(raw *Raw, shape Shape) (any, error) {
	if shape == ShapeRaw {
		if err := apiError(raw); err != nil {
			return nil, err
		}
		return raw.Body, nil
	}

	var env envelope
	parseErr := encode.Unmarshal(raw.Body, &env)

	if err := apiErrorWithEnvelope(raw, &env, parseErr); err != nil {
		return nil, err
	}
	if parseErr != nil {
		return nil, errors.NewDecode(string(shape), parseErr)
	}

	switch shape {
	case ShapeRows:
		return decodeRead(&env)
	case ShapeSchema:
		return decodeSchema(&env)
	case ShapeFacets:
		return decodeFacets(&env)
	case ShapeCrosswalk:
		return decodeCrosswalk(&env)
	case ShapeWriteAck:
		return decodeWriteAck(&env)
	case ShapeDiffs:
		return decodeDiffs(&env)
	default:
		return nil, errors.NewDecode(string(shape), fmt.Errorf("unknown shape"))
	}
}

// apiError converts a non-2xx transport result into an *APIError.
func apiError(raw *Raw) error {
	if raw.StatusCode >= 200 && raw.StatusCode < 300 {
		return nil
	}
	return &errors.APIError{
		StatusCode:    raw.StatusCode,
		StatusMessage: raw.StatusMessage,
		URL:           raw.URL,
	}
}

// apiErrorWithEnvelope additionally folds in the service's error message
// when the envelope parsed, and treats a parsed non-ok status as an API
// error even on a 2xx transport status.
func apiErrorWithEnvelope(raw *Raw, env *envelope, parseErr error) error {
	ok := raw.StatusCode >= 200 && raw.StatusCode < 300
	if ok && (parseErr != nil || env.Status == "ok") {
		return nil
	}
	apiErr := &errors.APIError{
		StatusCode:    raw.StatusCode,
		StatusMessage: raw.StatusMessage,
		URL:           raw.URL,
	}
	if parseErr == nil {
		apiErr.ErrorType = env.ErrorType
		apiErr.Message = env.Message
	}
	return apiErr
}

func decodeRead(env *envelope) (*Read, error) {
	var payload struct {
		Data          []map[string]any `json:"data"`
		IncludedRows  int              `json:"included_rows"`
		TotalRowCount *int             `json:"total_row_count"`
	}
	if err := encode.Unmarshal(env.Response, &payload); err != nil {
		return nil, errors.NewDecode(string(ShapeRows), err)
	}
	read := &Read{
		Header:        env.header(),
		IncludedRows:  payload.IncludedRows,
		TotalRowCount: -1,
		Data:          payload.Data,
	}
	if payload.TotalRowCount != nil {
		read.TotalRowCount = *payload.TotalRowCount
	}
	return read, nil
}

func decodeSchema(env *envelope) (*Schema, error) {
	var payload struct {
		View struct {
			Title         string         `json:"title"`
			Description   string         `json:"description"`
			GeoEnabled    bool           `json:"geo_enabled"`
			SearchEnabled bool           `json:"search_enabled"`
			Fields        []ColumnSchema `json:"fields"`
		} `json:"view"`
	}
	if err := encode.Unmarshal(env.Response, &payload); err != nil {
		return nil, errors.NewDecode(string(ShapeSchema), err)
	}
	return &Schema{
		Header:        env.header(),
		Title:         payload.View.Title,
		Description:   payload.View.Description,
		GeoEnabled:    payload.View.GeoEnabled,
		SearchEnabled: payload.View.SearchEnabled,
		Columns:       payload.View.Fields,
	}, nil
}

func decodeFacets(env *envelope) (*Facets, error) {
	var payload struct {
		Data          map[string]map[string]int64 `json:"data"`
		TotalRowCount *int                        `json:"total_row_count"`
	}
	if err := encode.Unmarshal(env.Response, &payload); err != nil {
		return nil, errors.NewDecode(string(ShapeFacets), err)
	}
	facets := &Facets{Header: env.header(), TotalRowCount: -1, Data: payload.Data}
	if payload.TotalRowCount != nil {
		facets.TotalRowCount = *payload.TotalRowCount
	}
	return facets, nil
}

func decodeCrosswalk(env *envelope) (*Crosswalk, error) {
	var payload struct {
		Data []CrosswalkRow `json:"data"`
	}
	if err := encode.Unmarshal(env.Response, &payload); err != nil {
		return nil, errors.NewDecode(string(ShapeCrosswalk), err)
	}
	return &Crosswalk{Header: env.header(), Data: payload.Data}, nil
}

func decodeWriteAck(env *envelope) (*WriteAck, error) {
	var payload struct {
		EntityID  string `json:"entity_id"`
		NewEntity bool   `json:"new_entity"`
	}
	if err := encode.Unmarshal(env.Response, &payload); err != nil {
		return nil, errors.NewDecode(string(ShapeWriteAck), err)
	}
	return &WriteAck{
		Header:    env.header(),
		EntityID:  payload.EntityID,
		NewEntity: payload.NewEntity,
	}, nil
}

func decodeDiffs(env *envelope) (*Diffs, error) {
	var payload struct {
		Data []map[string]any `json:"data"`
	}
	if err := encode.Unmarshal(env.Response, &payload); err != nil {
		return nil, errors.NewDecode(string(ShapeDiffs), err)
	}
	return &Diffs{Header: env.header(), Data: payload.Data}, nil
}
