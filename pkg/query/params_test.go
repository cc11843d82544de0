package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tabular-io/tabular-go/pkg/query"
)

func TestParamsInsertionOrder(t *testing.T) {
	p := query.NewParams()
	p.Set("filters", `{"country":{"$eq":"US"}}`)
	p.Set("limit", "10")
	p.Set("offset", "20")

	assert.Equal(t, []string{"filters", "limit", "offset"}, p.Keys())
	assert.Equal(t, 3, p.Len())
}

func TestParamsOverwriteKeepsPosition(t *testing.T) {
	p := query.NewParams()
	p.Set("limit", "10")
	p.Set("q", "sushi")
	p.Set("limit", "25")

	assert.Equal(t, []string{"limit", "q"}, p.Keys())
	v, ok := p.Get("limit")
	assert.True(t, ok)
	assert.Equal(t, "25", v)
}

func TestParamsEncodeEscapes(t *testing.T) {
	p := query.NewParams()
	p.Set("q", "fried chicken")
	p.Set("filters", `{"name":{"$bw":"Star"}}`)

	assert.Equal(t,
		"q=fried+chicken&filters=%7B%22name%22%3A%7B%22%24bw%22%3A%22Star%22%7D%7D",
		p.Encode())
}

func TestParamsEncodeEmpty(t *testing.T) {
	assert.Equal(t, "", query.NewParams().Encode())
}
