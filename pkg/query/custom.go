package query

import (
	"net/http"

	"github.com/tabular-io/tabular-go/pkg/response"
)

// Custom builds a raw pass-through request: nothing but escape-hatch
// parameters against a caller-supplied path. The response body is returned
// undecoded.
type Custom struct {
	raw []rawParam
}

// NewCustom creates an empty pass-through request.
func NewCustom() *Custom {
	return &Custom{}
}

// SetParam sets a raw scalar wire parameter.
func (c *Custom) SetParam(key string, value any) *Custom {
	c.raw = append(c.raw, rawParam{key: key, value: value})
	return c
}

// SetJSONParam sets a raw JSON-encoded wire parameter.
func (c *Custom) SetJSONParam(key string, value any) *Custom {
	c.raw = append(c.raw, rawParam{key: key, value: value, structured: true})
	return c
}

// Path implements Request. The caller's path is used as-is.
func (c *Custom) Path(path string) string { return path }

// Method implements Request.
func (c *Custom) Method() string { return http.MethodGet }

// Shape implements Request.
func (c *Custom) Shape() response.Shape { return response.ShapeRaw }

// Serialize implements Request.
func (c *Custom) Serialize() (*Params, error) {
	params := NewParams()
	if err := serializeRaw(params, c.raw); err != nil {
		return nil, err
	}
	return params, nil
}
