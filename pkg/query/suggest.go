package query

import (
	"net/http"

	"github.com/tabular-io/tabular-go/internal/encode"
	"github.com/tabular-io/tabular-go/pkg/response"
)

// Suggest builds a row-level write: proposed field values for a new entity,
// or edits (including blanking) against an existing one.
type Suggest struct {
	entityID string
	names    []string
	values   map[string]any
	meta     *Metadata
	raw      []rawParam
}

// NewSuggest creates an empty suggestion for a new entity.
func NewSuggest() *Suggest {
	return &Suggest{values: make(map[string]any)}
}

// For targets an existing entity instead of creating a new one.
func (s *Suggest) For(entityID string) *Suggest {
	s.entityID = entityID
	return s
}

// SetValue proposes a value for the named field. Insertion order is
// preserved in the serialized form.
func (s *Suggest) SetValue(name string, value any) *Suggest {
	if _, ok := s.values[name]; !ok {
		s.names = append(s.names, name)
	}
	s.values[name] = value
	return s
}

// MakeBlank proposes clearing the named field. Serialized as a null value.
func (s *Suggest) MakeBlank(name string) *Suggest {
	return s.SetValue(name, nil)
}

// Metadata attributes the write; required by the service.
func (s *Suggest) Metadata(m *Metadata) *Suggest {
	s.meta = m
	return s
}

// SetParam sets a raw scalar wire parameter.
func (s *Suggest) SetParam(key string, value any) *Suggest {
	s.raw = append(s.raw, rawParam{key: key, value: value})
	return s
}

// Path implements Request.
func (s *Suggest) Path(table string) string {
	if s.entityID != "" {
		return "t/" + table + "/" + s.entityID + "/suggest"
	}
	return "t/" + table + "/suggest"
}

// Method implements Request.
func (s *Suggest) Method() string { return http.MethodPost }

// Shape implements Request.
func (s *Suggest) Shape() response.Shape { return response.ShapeWriteAck }

// Serialize implements Request.
func (s *Suggest) Serialize() (*Params, error) {
	params := NewParams()
	obj := new(encode.Object)
	for _, name := range s.names {
		obj.Field(name, s.values[name])
	}
	values, err := obj.Bytes()
	if err != nil {
		return nil, err
	}
	params.Set("values", string(values))
	if s.meta != nil {
		s.meta.apply(params)
	}
	if err := serializeRaw(params, s.raw); err != nil {
		return nil, err
	}
	return params, nil
}
