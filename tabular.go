// Package tabular provides a Go driver for the Tabular tabular/geospatial
// data service: fluent query construction, single and batched dispatch, and
// typed response decoding.
package tabular

import (
	"context"

	"github.com/tabular-io/tabular-go/pkg/config"
	"github.com/tabular-io/tabular-go/pkg/multi"
	"github.com/tabular-io/tabular-go/pkg/query"
	"github.com/tabular-io/tabular-go/pkg/response"
	"github.com/tabular-io/tabular-go/pkg/transport"
)

// Client is the service entry point. Reads and writes go through fetch
// methods; QueueFetch/Flush batch several reads into one call.
//
// A Client is safe for concurrent fetches, but the built-in batch queue is
// a single batch-building session; concurrent queueing needs external
// synchronization or separate multi.Queue instances.
type Client struct {
	transport  transport.Transport
	queue      *multi.Queue
	dispatcher *multi.Dispatcher
}

// New creates a client with default configuration for the credentials.
func New(key, secret string) *Client {
	return NewWithConfig(config.Default(key, secret))
}

// NewWithConfig creates a client from an explicit configuration.
func NewWithConfig(cfg *config.Config) *Client {
	return NewWithTransport(cfg, transport.NewHTTP(cfg))
}

// NewWithTransport creates a client over a caller-supplied transport,
// which tests use to substitute a mock.
func NewWithTransport(_ *config.Config, t transport.Transport) *Client {
	return &Client{
		transport:  t,
		queue:      multi.NewQueue(),
		dispatcher: multi.NewDispatcher(t),
	}
}

// send serializes one request, dispatches it and decodes the response into
// the request's shape.
func (c *Client) send(ctx context.Context, table string, req query.Request) (any, error) {
	params, err := req.Serialize()
	if err != nil {
		return nil, err
	}
	raw, err := c.transport.Send(ctx, req.Method(), req.Path(table), params.Encode())
	if err != nil {
		return nil, err
	}
	return response.Decode(raw, req.Shape())
}

// Fetch runs a row query against a table.
func (c *Client) Fetch(ctx context.Context, table string, q *query.Query) (*response.Read, error) {
	v, err := c.send(ctx, table, q)
	if err != nil {
		return nil, err
	}
	return v.(*response.Read), nil
}

// Schema fetches a table's descriptor.
func (c *Client) Schema(ctx context.Context, table string) (*response.Schema, error) {
	v, err := c.send(ctx, table, schemaRequest{})
	if err != nil {
		return nil, err
	}
	return v.(*response.Schema), nil
}

// FetchFacets runs a facet histogram query against a table.
func (c *Client) FetchFacets(ctx context.Context, table string, f *query.Facet) (*response.Facets, error) {
	v, err := c.send(ctx, table, f)
	if err != nil {
		return nil, err
	}
	return v.(*response.Facets), nil
}

// FetchCrosswalk looks up third-party links for entities of a table.
func (c *Client) FetchCrosswalk(ctx context.Context, table string, cw *query.Crosswalk) (*response.Crosswalk, error) {
	v, err := c.send(ctx, table, cw)
	if err != nil {
		return nil, err
	}
	return v.(*response.Crosswalk), nil
}

// Resolve finds the entities best matching known attribute values.
func (c *Client) Resolve(ctx context.Context, table string, r *query.Resolve) (*response.Read, error) {
	v, err := c.send(ctx, table, r)
	if err != nil {
		return nil, err
	}
	return v.(*response.Read), nil
}

// FetchDiffs reads a table's change feed.
func (c *Client) FetchDiffs(ctx context.Context, table string, d *query.Diffs) (*response.Diffs, error) {
	v, err := c.send(ctx, table, d)
	if err != nil {
		return nil, err
	}
	return v.(*response.Diffs), nil
}

// Suggest submits proposed row values, attributed by metadata.
func (c *Client) Suggest(ctx context.Context, table string, s *query.Suggest, m *query.Metadata) (*response.WriteAck, error) {
	s.Metadata(m)
	v, err := c.send(ctx, table, s)
	if err != nil {
		return nil, err
	}
	return v.(*response.WriteAck), nil
}

// Flag reports a problem with a row, attributed by metadata.
func (c *Client) Flag(ctx context.Context, table string, f *query.Flag, m *query.Metadata) (*response.WriteAck, error) {
	f.Metadata(m)
	v, err := c.send(ctx, table, f)
	if err != nil {
		return nil, err
	}
	return v.(*response.WriteAck), nil
}

// FetchRaw runs a pass-through request against an explicit path and
// returns the undecoded body.
func (c *Client) FetchRaw(ctx context.Context, path string, cq *query.Custom) (string, error) {
	v, err := c.send(ctx, path, cq)
	if err != nil {
		return "", err
	}
	return string(v.([]byte)), nil
}

// QueueFetch adds a read to the client's batch queue. The handle addresses
// the matching slot of the MultiResponse returned by Flush.
func (c *Client) QueueFetch(table string, req query.Request) (multi.Handle, error) {
	return c.queue.Enqueue(table, req)
}

// Flush dispatches every queued read as one multiplexed call and returns
// the per-request results in enqueue order. Flushing an empty queue makes
// no network call.
func (c *Client) Flush(ctx context.Context) (*multi.MultiResponse, error) {
	return c.dispatcher.Flush(ctx, c.queue)
}

// schemaRequest is the parameterless table-descriptor read.
type schemaRequest struct{}

func (schemaRequest) Path(table string) string { return "t/" + table + "/schema" }

func (schemaRequest) Method() string { return "GET" }

func (schemaRequest) Serialize() (*query.Params, error) { return query.NewParams(), nil }

func (schemaRequest) Shape() response.Shape { return response.ShapeSchema }
