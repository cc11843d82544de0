// Package multi implements batched dispatch: a queue of serialized
// requests, a dispatcher that sends them as one multiplexed call, and the
// per-slot demultiplexed response.
package multi

import (
	"github.com/tabular-io/tabular-go/pkg/query"
	"github.com/tabular-io/tabular-go/pkg/response"
)

// Handle identifies one queued request's position within a batch and
// addresses its slot in the resulting MultiResponse.
type Handle int

// entry is one queued request: resource path, wire parameters serialized at
// enqueue time, and the shape its response decodes into.
type entry struct {
	path   string
	params *query.Params
	shape  response.Shape
}

// Queue accumulates requests awaiting batched dispatch.
//
// A queue is owned by exactly one batch-building session at a time;
// concurrent use requires external synchronization.
type Queue struct {
	entries []entry
}

// NewQueue creates an empty request queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Enqueue serializes the request against the given table and appends it,
// returning the handle for its position. Serialization errors (an invalid
// filter tree, a bad override value) surface here, before any dispatch.
func (q *Queue) Enqueue(table string, req query.Request) (Handle, error) {
	params, err := req.Serialize()
	if err != nil {
		return 0, err
	}
	q.entries = append(q.entries, entry{
		path:   req.Path(table),
		params: params,
		shape:  req.Shape(),
	})
	return Handle(len(q.entries) - 1), nil
}

// Len reports the number of queued requests.
func (q *Queue) Len() int { return len(q.entries) }

// drain removes and returns all queued entries, leaving the queue ready
// for a new batch.
func (q *Queue) drain() []entry {
	entries := q.entries
	q.entries = nil
	return entries
}
