package query

import (
	"net/http"
	"strings"

	"github.com/spf13/cast"

	"github.com/tabular-io/tabular-go/pkg/response"
)

// Crosswalk builds a crosswalk lookup: the third-party namespace links for
// an entity, addressed either by entity id or by (namespace, namespace id).
type Crosswalk struct {
	entityID    string
	namespace   string
	namespaceID string
	only        []string
	limit       *int
	raw         []rawParam
}

// NewCrosswalk creates an empty crosswalk lookup.
func NewCrosswalk() *Crosswalk {
	return &Crosswalk{}
}

// EntityID addresses the lookup by the service's own entity id.
func (c *Crosswalk) EntityID(id string) *Crosswalk {
	c.entityID = id
	return c
}

// Namespace addresses the lookup by a third-party namespace.
func (c *Crosswalk) Namespace(ns string) *Crosswalk {
	c.namespace = ns
	return c
}

// NamespaceID sets the third-party id within the namespace.
func (c *Crosswalk) NamespaceID(id string) *Crosswalk {
	c.namespaceID = id
	return c
}

// Only restricts returned links to the named namespaces.
func (c *Crosswalk) Only(namespaces ...string) *Crosswalk {
	c.only = append(c.only, namespaces...)
	return c
}

// Limit caps the number of returned links.
func (c *Crosswalk) Limit(n int) *Crosswalk {
	c.limit = &n
	return c
}

// SetParam sets a raw scalar wire parameter.
func (c *Crosswalk) SetParam(key string, value any) *Crosswalk {
	c.raw = append(c.raw, rawParam{key: key, value: value})
	return c
}

// Path implements Request.
func (c *Crosswalk) Path(table string) string { return "t/" + table + "/crosswalk" }

// Method implements Request.
func (c *Crosswalk) Method() string { return http.MethodGet }

// Shape implements Request.
func (c *Crosswalk) Shape() response.Shape { return response.ShapeCrosswalk }

// Serialize implements Request.
func (c *Crosswalk) Serialize() (*Params, error) {
	params := NewParams()
	if c.entityID != "" {
		params.Set("entity_id", c.entityID)
	}
	if c.namespace != "" {
		params.Set("namespace", c.namespace)
	}
	if c.namespaceID != "" {
		params.Set("namespace_id", c.namespaceID)
	}
	if len(c.only) > 0 {
		params.Set("only", strings.Join(c.only, ","))
	}
	if c.limit != nil {
		params.Set("limit", cast.ToString(*c.limit))
	}
	if err := serializeRaw(params, c.raw); err != nil {
		return nil, err
	}
	return params, nil
}
