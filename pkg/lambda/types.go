package lambda

import (
	"context"
	"encoding/json"
	"strings"
)

// Request represents a generic HTTP request for serverless functions
type Request struct {
	Method      string            `json:"method"`
	Path        string            `json:"path"`
	Headers     map[string]string `json:"headers"`
	QueryParams map[string]string `json:"query_params"`
	Body        []byte            `json:"body"`
	PathParams  map[string]string `json:"path_params"`
	RequestID   string            `json:"request_id"`

	// CallerID is set by handlers once the caller identity is resolved
	CallerID int64 `json:"-"`
}

// Header returns the value of the named header. Header names are matched
// case-insensitively, as gateways differ in how they normalize them.
func (r *Request) Header(name string) string {
	if v, ok := r.Headers[name]; ok {
		return v
	}
	for k, v := range r.Headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

// Query returns the value of the named query parameter
func (r *Request) Query(name string) string {
	return r.QueryParams[name]
}

// Response represents a generic HTTP response for serverless functions
type Response struct {
	StatusCode int               `json:"status_code"`
	Headers    map[string]string `json:"headers"`
	Body       []byte            `json:"body"`
}

// HandlerFunc is a framework-agnostic handler interface
type HandlerFunc func(ctx context.Context, req *Request) (*Response, error)

// NewJSONResponse encodes body as JSON. A nil body produces an empty payload.
func NewJSONResponse(statusCode int, body interface{}, headers map[string]string) (*Response, error) {
	resp := &Response{
		StatusCode: statusCode,
		Headers:    map[string]string{"Content-Type": "application/json"},
	}
	for k, v := range headers {
		resp.Headers[k] = v
	}

	if body == nil {
		return resp, nil
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	resp.Body = data
	return resp, nil
}
