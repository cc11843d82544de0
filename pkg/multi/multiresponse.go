package multi

import (
	"github.com/tabular-io/tabular-go/pkg/errors"
	"github.com/tabular-io/tabular-go/pkg/response"
)

// Slot is one demultiplexed sub-response: either a decoded typed value or
// that slot's own error. A failed slot never affects its siblings.
type Slot struct {
	Shape response.Shape
	Value any
	Err   error
}

// MultiResponse holds the per-request results of one flushed batch, in
// original enqueue order. Its length always equals the queue length at
// dispatch time.
type MultiResponse struct {
	slots []Slot
}

// Len reports the number of slots.
func (m *MultiResponse) Len() int { return len(m.slots) }

// At returns the decoded value for a handle, or the slot's error.
func (m *MultiResponse) At(h Handle) (any, error) {
	s, err := m.slot(h)
	if err != nil {
		return nil, err
	}
	return s.Value, s.Err
}

// ReadAt returns the slot as a row-list response.
func (m *MultiResponse) ReadAt(h Handle) (*response.Read, error) {
	v, err := m.At(h)
	if err != nil {
		return nil, err
	}
	read, ok := v.(*response.Read)
	if !ok {
		return nil, errors.NewDecode(string(response.ShapeRows), errors.ErrDecode)
	}
	return read, nil
}

// FacetsAt returns the slot as a facet histogram response.
func (m *MultiResponse) FacetsAt(h Handle) (*response.Facets, error) {
	v, err := m.At(h)
	if err != nil {
		return nil, err
	}
	facets, ok := v.(*response.Facets)
	if !ok {
		return nil, errors.NewDecode(string(response.ShapeFacets), errors.ErrDecode)
	}
	return facets, nil
}

// CrosswalkAt returns the slot as a crosswalk-link response.
func (m *MultiResponse) CrosswalkAt(h Handle) (*response.Crosswalk, error) {
	v, err := m.At(h)
	if err != nil {
		return nil, err
	}
	cw, ok := v.(*response.Crosswalk)
	if !ok {
		return nil, errors.NewDecode(string(response.ShapeCrosswalk), errors.ErrDecode)
	}
	return cw, nil
}

func (m *MultiResponse) slot(h Handle) (*Slot, error) {
	if int(h) < 0 || int(h) >= len(m.slots) {
		return nil, errors.ErrNoSlot
	}
	return &m.slots[int(h)], nil
}
