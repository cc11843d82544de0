// Package transport performs the signed HTTP round-trips for the driver.
//
// The Transport interface is the seam the query and batch layers depend on;
// HTTPTransport is the production implementation. Timeout and retry policy
// live in the injected http.Client, not here.
package transport

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tabular-io/tabular-go/pkg/config"
	"github.com/tabular-io/tabular-go/pkg/errors"
	"github.com/tabular-io/tabular-go/pkg/response"
)

// Transport sends one signed request and returns the raw result. The query
// string is pre-encoded by the caller; for POST requests it is carried as a
// form body.
type Transport interface {
	Send(ctx context.Context, method, path, query string) (*response.Raw, error)
}

// HTTPTransport is the OAuth-signed HTTP implementation of Transport.
type HTTPTransport struct {
	base   string
	client *http.Client
	signer *signer
	logger *logrus.Logger
	debug  bool
}

// NewHTTP creates a transport from the given configuration.
func NewHTTP(cfg *config.Config) *HTTPTransport {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &HTTPTransport{
		base:   strings.TrimSuffix(cfg.BaseURL, "/") + "/",
		client: client,
		signer: newSigner(cfg.Key, cfg.Secret),
		logger: logger,
		debug:  cfg.Debug,
	}
}

// Send implements Transport.
func (t *HTTPTransport) Send(ctx context.Context, method, path, query string) (*response.Raw, error) {
	baseURL := t.base + strings.TrimPrefix(path, "/")
	fullURL := baseURL
	var body io.Reader
	if query != "" {
		if method == http.MethodPost {
			body = strings.NewReader(query)
		} else {
			fullURL = baseURL + "?" + query
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, &errors.TransportError{URL: fullURL, Err: err}
	}
	auth, err := t.signer.header(method, baseURL, query)
	if err != nil {
		return nil, &errors.TransportError{URL: fullURL, Err: err}
	}
	req.Header.Set("Authorization", auth)
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	start := time.Now()
	resp, err := t.client.Do(req)
	if err != nil {
		return nil, &errors.TransportError{URL: fullURL, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &errors.TransportError{URL: fullURL, Err: err}
	}

	if t.debug {
		t.logger.WithFields(logrus.Fields{
			"method":   method,
			"url":      fullURL,
			"status":   resp.StatusCode,
			"bytes":    len(raw),
			"duration": time.Since(start),
		}).Debug("tabular request")
	}

	return &response.Raw{
		StatusCode:    resp.StatusCode,
		StatusMessage: statusMessage(resp),
		URL:           fullURL,
		Body:          raw,
	}, nil
}

// statusMessage extracts the reason phrase from the status line, falling
// back to the standard text for the code.
func statusMessage(resp *http.Response) string {
	msg := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return msg
}
