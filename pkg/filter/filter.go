// Package filter implements the row-filter expression tree: single
// field/operator/value criteria, AND/OR logic groups over them, and geo
// constraints. Nodes are pure values with no side effects; appending a node
// to a query's top-level filter is always an explicit operation on the query.
package filter

import (
	"reflect"

	"github.com/tabular-io/tabular-go/internal/encode"
	"github.com/tabular-io/tabular-go/pkg/errors"
)

// Op is a row-filter comparison operator wire token.
type Op string

// Comparison operators understood by the service.
const (
	OpEqual            Op = "$eq"
	OpNotEqual         Op = "$neq"
	OpBeginsWith       Op = "$bw"
	OpNotBeginsWith    Op = "$nbw"
	OpBeginsWithAny    Op = "$bwin"
	OpNotBeginsWithAny Op = "$nbwin"
	OpIncludes         Op = "$includes"
	OpExcludes         Op = "$excludes"
	OpIn               Op = "$in"
	OpNotIn            Op = "$nin"
	OpGreaterThan      Op = "$gt"
	OpLessThan         Op = "$lt"
	OpGreaterOrEqual   Op = "$gte"
	OpLessOrEqual      Op = "$lte"
	OpBlank            Op = "$blank"
	OpSearch           Op = "$search"
)

// sequenceOps take a non-empty list value; every other operator takes a
// single scalar ($blank carries a bool).
var sequenceOps = map[Op]bool{
	OpIn:               true,
	OpNotIn:            true,
	OpBeginsWithAny:    true,
	OpNotBeginsWithAny: true,
}

// GroupOp is a boolean combinator wire token.
type GroupOp string

const (
	GroupAnd GroupOp = "$and"
	GroupOr  GroupOp = "$or"
)

// Node is one element of a filter tree: a Criterion, a Group or a Circle.
// The set is closed; serialization is a single dispatch over it.
type Node interface {
	// EncodeJSON returns the node's canonical JSON representation.
	EncodeJSON() ([]byte, error)

	isNode()
}

// Criterion is a single field comparison. It is immutable once constructed.
type Criterion struct {
	Field string
	Op    Op
	Value any // scalar, or []any for sequence operators
}

func (*Criterion) isNode() {}

// EncodeJSON serializes the criterion as {"field":{"$op":value}}.
func (c *Criterion) EncodeJSON() ([]byte, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	inner, err := new(encode.Object).Field(string(c.Op), c.Value).Bytes()
	if err != nil {
		return nil, errors.NewInvalidQuery(c.Field, string(c.Op), err)
	}
	return new(encode.Object).FieldRaw(c.Field, inner).Bytes()
}

func (c *Criterion) validate() error {
	isSeq := false
	if c.Value != nil {
		k := reflect.TypeOf(c.Value).Kind()
		isSeq = k == reflect.Slice || k == reflect.Array
	}
	if sequenceOps[c.Op] {
		if !isSeq || reflect.ValueOf(c.Value).Len() == 0 {
			return errors.NewInvalidQuery(c.Field, string(c.Op), errors.ErrSequenceValue)
		}
		return nil
	}
	if isSeq {
		return errors.NewInvalidQuery(c.Field, string(c.Op), errors.ErrScalarValue)
	}
	return nil
}

// Group combines child nodes under a boolean operator. Serialization
// preserves exact structural nesting; nested groups are never flattened.
type Group struct {
	Op       GroupOp
	Children []Node
}

func (*Group) isNode() {}

// EncodeJSON serializes the group as {"$and":[...]} or {"$or":[...]}.
func (g *Group) EncodeJSON() ([]byte, error) {
	if len(g.Children) == 0 {
		return nil, errors.NewInvalidQuery("", string(g.Op), errors.ErrEmptyGroup)
	}
	out := []byte{'['}
	for i, child := range g.Children {
		raw, err := child.EncodeJSON()
		if err != nil {
			return nil, err
		}
		if i > 0 {
			out = append(out, ',')
		}
		out = append(out, raw...)
	}
	out = append(out, ']')
	return new(encode.Object).FieldRaw(string(g.Op), out).Bytes()
}

// And combines nodes under a boolean AND.
func And(nodes ...Node) *Group {
	return &Group{Op: GroupAnd, Children: nodes}
}

// Or combines nodes under a boolean OR.
func Or(nodes ...Node) *Group {
	return &Group{Op: GroupOr, Children: nodes}
}

// Render serializes a sequence of top-level nodes, which the query builder
// combines under an implicit AND:
//
//   - no nodes: nil, nil (the filters parameter is omitted)
//   - one criterion: the bare {field:{op:value}} object
//   - several criteria on distinct fields, no groups: one merged object
//   - anything else: {"$and":[...]} with each node its own element, in
//     insertion order
//
// Criteria sharing a field name are never merged into one object since the
// later key would silently replace the earlier one.
func Render(nodes []Node) ([]byte, error) {
	switch len(nodes) {
	case 0:
		return nil, nil
	case 1:
		return nodes[0].EncodeJSON()
	}
	if criteria, ok := mergeableCriteria(nodes); ok {
		obj := new(encode.Object)
		for _, c := range criteria {
			if err := c.validate(); err != nil {
				return nil, err
			}
			inner, err := new(encode.Object).Field(string(c.Op), c.Value).Bytes()
			if err != nil {
				return nil, errors.NewInvalidQuery(c.Field, string(c.Op), err)
			}
			obj.FieldRaw(c.Field, inner)
		}
		return obj.Bytes()
	}
	return And(nodes...).EncodeJSON()
}

// mergeableCriteria reports whether every node is a criterion and no two of
// them target the same field.
func mergeableCriteria(nodes []Node) ([]*Criterion, bool) {
	criteria := make([]*Criterion, 0, len(nodes))
	seen := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		c, ok := n.(*Criterion)
		if !ok || seen[c.Field] {
			return nil, false
		}
		seen[c.Field] = true
		criteria = append(criteria, c)
	}
	return criteria, true
}
