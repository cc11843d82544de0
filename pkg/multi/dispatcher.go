package multi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tabular-io/tabular-go/internal/encode"
	"github.com/tabular-io/tabular-go/pkg/errors"
	"github.com/tabular-io/tabular-go/pkg/response"
	"github.com/tabular-io/tabular-go/pkg/transport"
)

// multiPath is the multiplexed-read resource.
const multiPath = "multi"

// Dispatcher flushes a Queue as one multiplexed transport call and
// demultiplexes the combined response back into per-request slots.
type Dispatcher struct {
	transport transport.Transport
}

// NewDispatcher creates a dispatcher over the given transport.
func NewDispatcher(t transport.Transport) *Dispatcher {
	return &Dispatcher{transport: t}
}

// Flush sends every queued request as a single call and returns one slot
// per request, in enqueue order. An empty queue returns an empty
// MultiResponse without any transport call. The queue is empty afterwards.
//
// A transport failure or a non-ok multiplexed envelope fails the whole
// batch; a malformed fragment fails only its own slot.
func (d *Dispatcher) Flush(ctx context.Context, q *Queue) (*MultiResponse, error) {
	entries := q.drain()
	if len(entries) == 0 {
		return &MultiResponse{}, nil
	}

	// Sub-requests ride in one queries parameter: an object keyed by
	// position whose values are encoded relative URLs. The service
	// guarantees response order matches request order within one call;
	// pairing is positional, never content-based.
	obj := new(encode.Object)
	for i, e := range entries {
		obj.Field(key(i), "/"+e.path+"?"+e.params.Encode())
	}
	queries, err := obj.Bytes()
	if err != nil {
		return nil, err
	}

	raw, err := d.transport.Send(ctx, http.MethodGet, multiPath,
		"queries="+url.QueryEscape(string(queries)))
	if err != nil {
		return nil, err
	}
	if raw.StatusCode < 200 || raw.StatusCode >= 300 {
		return nil, &errors.APIError{
			StatusCode:    raw.StatusCode,
			StatusMessage: raw.StatusMessage,
			URL:           raw.URL,
		}
	}

	var fragments map[string]json.RawMessage
	if err := encode.Unmarshal(raw.Body, &fragments); err != nil {
		return nil, errors.NewDecode("multi", err)
	}

	slots := make([]Slot, len(entries))
	for i, e := range entries {
		fragment, ok := fragments[key(i)]
		if !ok {
			slots[i] = Slot{
				Shape: e.shape,
				Err:   errors.NewDecode(string(e.shape), errors.ErrNoSlot),
			}
			continue
		}
		value, err := response.Decode(&response.Raw{
			StatusCode:    raw.StatusCode,
			StatusMessage: raw.StatusMessage,
			URL:           raw.URL,
			Body:          fragment,
		}, e.shape)
		slots[i] = Slot{Shape: e.shape, Value: value, Err: err}
	}
	return &MultiResponse{slots: slots}, nil
}

func key(i int) string { return "q" + strconv.Itoa(i) }
