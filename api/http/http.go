package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kardolus/onchain-agent/api"
	"go.uber.org/zap"
)

const (
	contentType              = "application/json"
	defaultTimeout           = 60 * time.Second
	defaultUserAgent         = "onchain-agent"
	errFailedToRead          = "failed to read response: %w"
	errFailedToCreateRequest = "failed to create request: %w"
	errFailedToMakeRequest   = "failed to make request: %w"
	errHTTP                  = "http status %d: %s"
	errHTTPStatus            = "http status: %d"
	headerContentType        = "Content-Type"
	headerUserAgent          = "User-Agent"
)

type Caller interface {
	Post(ctx context.Context, url string, body []byte) ([]byte, error)
	Get(ctx context.Context, url string) ([]byte, error)
}

type RestCaller struct {
	client          *http.Client
	authHeader      string
	authTokenPrefix string
	apiKey          string
	userAgent       string
}

// Ensure RestCaller implements Caller interface
var _ Caller = &RestCaller{}

type Option func(*RestCaller)

// WithAuth sends "<header>: <prefix><key>" on every request when key is set.
func WithAuth(header, prefix, key string) Option {
	return func(r *RestCaller) {
		r.authHeader = header
		r.authTokenPrefix = prefix
		r.apiKey = key
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(r *RestCaller) { r.client.Timeout = timeout }
}

func WithHTTPClient(client *http.Client) Option {
	return func(r *RestCaller) {
		if client != nil {
			r.client = client
		}
	}
}

func WithUserAgent(userAgent string) Option {
	return func(r *RestCaller) { r.userAgent = userAgent }
}

func New(opts ...Option) *RestCaller {
	r := &RestCaller{
		client:    &http.Client{Timeout: defaultTimeout},
		userAgent: defaultUserAgent,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

func (r *RestCaller) Get(ctx context.Context, url string) ([]byte, error) {
	return r.doRequest(ctx, http.MethodGet, url, nil)
}

func (r *RestCaller) Post(ctx context.Context, url string, body []byte) ([]byte, error) {
	return r.doRequest(ctx, http.MethodPost, url, body)
}

func (r *RestCaller) doRequest(ctx context.Context, method, url string, body []byte) ([]byte, error) {
	req, err := r.newRequest(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf(errFailedToCreateRequest, err)
	}

	zap.S().Debugf("%s %s", method, url)

	response, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf(errFailedToMakeRequest, err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		errorResponse, err := io.ReadAll(response.Body)
		if err != nil {
			return nil, fmt.Errorf(errHTTPStatus, response.StatusCode)
		}

		var errorData api.ErrorResponse
		if err := json.Unmarshal(errorResponse, &errorData); err != nil || errorData.Error.Message == "" {
			return nil, fmt.Errorf(errHTTPStatus, response.StatusCode)
		}

		return errorResponse, fmt.Errorf(errHTTP, response.StatusCode, errorData.Error.Message)
	}

	result, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf(errFailedToRead, err)
	}

	return result, nil
}

func (r *RestCaller) newRequest(ctx context.Context, method, url string, body []byte) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}

	if r.apiKey != "" {
		req.Header.Set(r.authHeader, r.authTokenPrefix+r.apiKey)
	}
	if body != nil {
		req.Header.Set(headerContentType, contentType)
	}
	req.Header.Set(headerUserAgent, r.userAgent)

	return req, nil
}
