package filter

import "github.com/tabular-io/tabular-go/internal/encode"

// Geo is a geographic constraint serialized into the geo wire parameter.
type Geo interface {
	// EncodeGeoJSON returns the constraint's canonical JSON representation.
	EncodeGeoJSON() ([]byte, error)
}

// Circle constrains rows to a radius in meters around a lat/long center.
//
// Circle also satisfies Node so that wrapping it in And/Or is accepted: the
// service ignores geo constraints inside row filters, but the original
// behavior is an explicit non-error and the tree serializes it inline.
type Circle struct {
	Lat    float64
	Long   float64
	Meters int
}

// NewCircle creates a circle constraint centered on lat/long.
func NewCircle(lat, long float64, meters int) Circle {
	return Circle{Lat: lat, Long: long, Meters: meters}
}

func (Circle) isNode() {}

// EncodeJSON lets a circle appear inside a logic group.
func (c Circle) EncodeJSON() ([]byte, error) { return c.EncodeGeoJSON() }

// EncodeGeoJSON serializes as {"$circle":{"$center":[lat,long],"$meters":N}}.
func (c Circle) EncodeGeoJSON() ([]byte, error) {
	inner, err := new(encode.Object).
		Field("$center", [2]float64{c.Lat, c.Long}).
		Field("$meters", c.Meters).
		Bytes()
	if err != nil {
		return nil, err
	}
	return new(encode.Object).FieldRaw("$circle", inner).Bytes()
}

// Near constrains rows to a radius in meters around a free-form address,
// leaving geocoding to the service.
type Near struct {
	Address string
	Meters  int
}

// NewNear creates a constraint around an address the service will geocode.
func NewNear(address string, meters int) Near {
	return Near{Address: address, Meters: meters}
}

// EncodeGeoJSON serializes as {"$circle":{"$center":"addr","$meters":N}}.
func (n Near) EncodeGeoJSON() ([]byte, error) {
	inner, err := new(encode.Object).
		Field("$center", n.Address).
		Field("$meters", n.Meters).
		Bytes()
	if err != nil {
		return nil, err
	}
	return new(encode.Object).FieldRaw("$circle", inner).Bytes()
}
