package query

import (
	"net/http"

	"github.com/tabular-io/tabular-go/internal/encode"
	"github.com/tabular-io/tabular-go/pkg/response"
)

// Resolve builds an entity-resolution request: known attribute values for a
// row, for which the service returns its best-matching entities.
type Resolve struct {
	names  []string
	values map[string]any
	raw    []rawParam
}

// NewResolve creates an empty resolution request.
func NewResolve() *Resolve {
	return &Resolve{values: make(map[string]any)}
}

// Add records a known attribute value. Insertion order is preserved in the
// serialized form; re-adding a name overwrites its value in place.
func (r *Resolve) Add(name string, value any) *Resolve {
	if _, ok := r.values[name]; !ok {
		r.names = append(r.names, name)
	}
	r.values[name] = value
	return r
}

// SetParam sets a raw scalar wire parameter.
func (r *Resolve) SetParam(key string, value any) *Resolve {
	r.raw = append(r.raw, rawParam{key: key, value: value})
	return r
}

// Path implements Request.
func (r *Resolve) Path(table string) string { return "t/" + table + "/resolve" }

// Method implements Request.
func (r *Resolve) Method() string { return http.MethodGet }

// Shape implements Request.
func (r *Resolve) Shape() response.Shape { return response.ShapeRows }

// Serialize implements Request.
func (r *Resolve) Serialize() (*Params, error) {
	params := NewParams()
	if len(r.names) > 0 {
		obj := new(encode.Object)
		for _, name := range r.names {
			obj.Field(name, r.values[name])
		}
		values, err := obj.Bytes()
		if err != nil {
			return nil, err
		}
		params.Set("values", string(values))
	}
	if err := serializeRaw(params, r.raw); err != nil {
		return nil, err
	}
	return params, nil
}
