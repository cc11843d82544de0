package query

import (
	"net/http"

	"github.com/tabular-io/tabular-go/pkg/response"
)

// Problem is a closed set of reasons a row can be flagged.
type Problem string

const (
	ProblemSpam          Problem = "spam"
	ProblemDuplicate     Problem = "duplicate"
	ProblemInaccurate    Problem = "inaccurate"
	ProblemInappropriate Problem = "inappropriate"
	ProblemNonExistent   Problem = "nonexistent"
	ProblemClosed        Problem = "closed"
	ProblemOther         Problem = "other"
)

// Flag builds a row-level problem report against an entity.
type Flag struct {
	entityID string
	problem  Problem
	meta     *Metadata
	raw      []rawParam
}

// NewFlag creates a flag reporting the given problem for an entity.
func NewFlag(entityID string, problem Problem) *Flag {
	return &Flag{entityID: entityID, problem: problem}
}

// Spam is shorthand for a spam flag.
func Spam(entityID string) *Flag { return NewFlag(entityID, ProblemSpam) }

// Duplicate is shorthand for a duplicate flag.
func Duplicate(entityID string) *Flag { return NewFlag(entityID, ProblemDuplicate) }

// Inaccurate is shorthand for an inaccurate flag.
func Inaccurate(entityID string) *Flag { return NewFlag(entityID, ProblemInaccurate) }

// Metadata attributes the flag; required by the service.
func (f *Flag) Metadata(m *Metadata) *Flag {
	f.meta = m
	return f
}

// SetParam sets a raw scalar wire parameter.
func (f *Flag) SetParam(key string, value any) *Flag {
	f.raw = append(f.raw, rawParam{key: key, value: value})
	return f
}

// Path implements Request.
func (f *Flag) Path(table string) string {
	return "t/" + table + "/" + f.entityID + "/flag"
}

// Method implements Request.
func (f *Flag) Method() string { return http.MethodPost }

// Shape implements Request.
func (f *Flag) Shape() response.Shape { return response.ShapeWriteAck }

// Serialize implements Request.
func (f *Flag) Serialize() (*Params, error) {
	params := NewParams()
	params.Set("problem", string(f.problem))
	if f.meta != nil {
		f.meta.apply(params)
	}
	if err := serializeRaw(params, f.raw); err != nil {
		return nil, err
	}
	return params, nil
}
