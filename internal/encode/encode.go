// Package encode provides deterministic JSON encoding helpers shared by the
// query builders and the response decoder.
//
// Serialized queries must be byte-identical for identical builder state so
// they can be used as cache keys and compared in tests. encoding/json and
// sonic's std config sort map keys, which covers leaf values, but the filter
// tree and the multi envelope need objects whose keys appear in insertion
// order. Object is a minimal writer for that.
package encode

import (
	"bytes"

	"github.com/bytedance/sonic"
)

// api is configured for encoding/json compatibility. Sorted map keys keep
// user-supplied maps deterministic.
var api = sonic.ConfigStd

// Marshal encodes v as canonical JSON.
func Marshal(v any) ([]byte, error) {
	return api.Marshal(v)
}

// Unmarshal decodes JSON data into v.
func Unmarshal(data []byte, v any) error {
	return api.Unmarshal(data, v)
}

// Object accumulates a JSON object whose keys appear in the order they were
// added. The first error sticks and is reported by Bytes.
type Object struct {
	buf bytes.Buffer
	n   int
	err error
}

// Field adds key with a marshalled value.
func (o *Object) Field(key string, v any) *Object {
	if o.err != nil {
		return o
	}
	raw, err := Marshal(v)
	if err != nil {
		o.err = err
		return o
	}
	return o.FieldRaw(key, raw)
}

// FieldRaw adds key with an already-encoded JSON value.
func (o *Object) FieldRaw(key string, raw []byte) *Object {
	if o.err != nil {
		return o
	}
	if o.n == 0 {
		o.buf.WriteByte('{')
	} else {
		o.buf.WriteByte(',')
	}
	k, err := Marshal(key)
	if err != nil {
		o.err = err
		return o
	}
	o.buf.Write(k)
	o.buf.WriteByte(':')
	o.buf.Write(raw)
	o.n++
	return o
}

// Len reports the number of fields added so far.
func (o *Object) Len() int { return o.n }

// Bytes closes the object and returns its encoding, or the first error
// encountered while adding fields.
func (o *Object) Bytes() ([]byte, error) {
	if o.err != nil {
		return nil, o.err
	}
	if o.n == 0 {
		return []byte("{}"), nil
	}
	out := make([]byte, 0, o.buf.Len()+1)
	out = append(out, o.buf.Bytes()...)
	out = append(out, '}')
	return out, nil
}
