package api

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/botdesk/botdesk/internal/logger"
)

// RequestInterceptor transforms an outgoing request before it is sent.
// Interceptors run in registration order; an error aborts the request
// without an attempt being made.
type RequestInterceptor func(*http.Request) error

// ResponseInterceptor observes a response before classification. Interceptors
// run in registration order; an error fails the attempt as a network error.
type ResponseInterceptor func(*http.Response) error

// Use appends a request interceptor to the pipeline.
func (c *Client) Use(in RequestInterceptor) {
	c.reqInterceptors = append(c.reqInterceptors, in)
}

// UseResponse appends a response interceptor to the pipeline.
func (c *Client) UseResponse(in ResponseInterceptor) {
	c.respInterceptors = append(c.respInterceptors, in)
}

const headerRequestID = "X-Request-ID"

// RequestIDInterceptor propagates the request ID from the context, minting a
// new one when absent, so backend logs correlate with client logs.
func RequestIDInterceptor() RequestInterceptor {
	return func(req *http.Request) error {
		id := logger.RequestID(req.Context())
		if id == "" {
			id = uuid.NewString()
		}
		req.Header.Set(headerRequestID, id)
		return nil
	}
}
