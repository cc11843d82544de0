// Package mocks provides mock implementations of the driver's boundary
// interfaces for consumer tests.
//
// MockTransport stands in for the HTTP transport so query construction,
// dispatch and decoding can be exercised without a network:
//
//	mockT := new(mocks.MockTransport)
//	mockT.On("Send", mock.Anything, "GET", "t/places", mock.Anything).
//	    Return(&response.Raw{StatusCode: 200, Body: body}, nil)
//
//	client := tabular.NewWithTransport(cfg, mockT)
//	resp, err := client.Fetch(ctx, "places", q)
//
//	mockT.AssertExpectations(t)
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/tabular-io/tabular-go/pkg/response"
)

// MockTransport is a testify mock for transport.Transport.
type MockTransport struct {
	mock.Mock
}

// Send implements transport.Transport.
func (m *MockTransport) Send(ctx context.Context, method, path, query string) (*response.Raw, error) {
	args := m.Called(ctx, method, path, query)
	if raw := args.Get(0); raw != nil {
		return raw.(*response.Raw), args.Error(1)
	}
	return nil, args.Error(1)
}
