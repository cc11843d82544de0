package query

import (
	"net/http"

	"github.com/spf13/cast"

	"github.com/tabular-io/tabular-go/pkg/response"
)

// Diffs builds a change-feed read: every row change in a table since a
// millisecond timestamp, optionally bounded by an end timestamp.
type Diffs struct {
	start int64
	end   *int64
	raw   []rawParam
}

// NewDiffs creates a change-feed read starting at a millisecond timestamp.
func NewDiffs(startMillis int64) *Diffs {
	return &Diffs{start: startMillis}
}

// Until bounds the feed at a millisecond timestamp.
func (d *Diffs) Until(endMillis int64) *Diffs {
	d.end = &endMillis
	return d
}

// SetParam sets a raw scalar wire parameter.
func (d *Diffs) SetParam(key string, value any) *Diffs {
	d.raw = append(d.raw, rawParam{key: key, value: value})
	return d
}

// Path implements Request.
func (d *Diffs) Path(table string) string { return "t/" + table + "/diffs" }

// Method implements Request.
func (d *Diffs) Method() string { return http.MethodGet }

// Shape implements Request.
func (d *Diffs) Shape() response.Shape { return response.ShapeDiffs }

// Serialize implements Request.
func (d *Diffs) Serialize() (*Params, error) {
	params := NewParams()
	params.Set("start", cast.ToString(d.start))
	if d.end != nil {
		params.Set("end", cast.ToString(*d.end))
	}
	if err := serializeRaw(params, d.raw); err != nil {
		return nil, err
	}
	return params, nil
}
