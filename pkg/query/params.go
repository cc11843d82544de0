package query

import (
	"net/url"
	"strings"
)

// Params is an ordered wire parameter set. Keys keep their first insertion
// position; setting an existing key replaces the value in place, so repeated
// serialization of unmodified state is byte-identical.
type Params struct {
	keys []string
	vals map[string]string
}

// NewParams creates an empty parameter set.
func NewParams() *Params {
	return &Params{vals: make(map[string]string)}
}

// Set stores a key/value pair, preserving the key's original position when
// it already exists.
func (p *Params) Set(key, value string) {
	if _, ok := p.vals[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.vals[key] = value
}

// Get returns the value for key and whether it is present.
func (p *Params) Get(key string) (string, bool) {
	v, ok := p.vals[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (p *Params) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Len reports the number of parameters.
func (p *Params) Len() int { return len(p.keys) }

// Encode renders the set as a percent-encoded query string in insertion
// order.
func (p *Params) Encode() string {
	var b strings.Builder
	for i, k := range p.keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.vals[k]))
	}
	return b.String()
}
