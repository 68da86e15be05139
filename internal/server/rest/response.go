// Package rest exposes the ShareBites services over HTTP.
package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/MethuParoi/share-bites-server-codebase/internal/common"
)

const maxBodyBytes = 1 << 20

// Response is what a handler returns. A non-nil Error decides the status
// code unless Code is set explicitly.
type Response struct {
	Code    int
	Message string
	Data    any
	Error   error
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func OK(data any) Response {
	return Response{Code: http.StatusOK, Data: data}
}

func Created(data any) Response {
	return Response{Code: http.StatusCreated, Data: data}
}

func Fail(err error) Response {
	return Response{Error: err}
}

// StatusCode resolves the HTTP status of the response.
func (r Response) StatusCode() int {
	if r.Code != 0 {
		return r.Code
	}
	if r.Error != nil {
		return statusFor(r.Error)
	}
	return http.StatusOK
}

// Encode writes the response as a JSON envelope. Server errors are reported
// with a generic message; the cause is only logged.
func (r Response) Encode(w http.ResponseWriter) error {
	code := r.StatusCode()

	body := envelope{Success: r.Error == nil && code < http.StatusBadRequest, Message: r.Message, Data: r.Data}
	if r.Error != nil && body.Message == "" {
		if code >= http.StatusInternalServerError {
			body.Message = http.StatusText(code)
		} else {
			body.Message = r.Error.Error()
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(body)
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrMissingToken):
		return http.StatusForbidden
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, common.ErrInvalidIdentifier),
		errors.Is(err, common.ErrInvalidRequest),
		errors.Is(err, common.ErrEmptyPatch):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// HTTPHandler adapts a Response-returning function to http.Handler. Errors
// are logged once here with the request-scoped logger.
type HTTPHandler func(w http.ResponseWriter, r *http.Request) Response

func (fn HTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	res := fn(w, r)
	ctx := r.Context()
	logger := loggerFrom(ctx)

	if res.Error != nil {
		if code := res.StatusCode(); code >= http.StatusInternalServerError {
			logger.Error(ctx, "request failed", "status", code, "error", res.Error)
		} else {
			logger.Debug(ctx, "request rejected", "status", code, "error", res.Error)
		}
	}

	if err := res.Encode(w); err != nil {
		logger.Error(ctx, "encode response", "error", err)
	}
}

// decodeJSON reads a JSON body into v. Any decoding failure is reported as
// common.ErrInvalidRequest.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", common.ErrInvalidRequest)
		}
		return fmt.Errorf("%w: %v", common.ErrInvalidRequest, err)
	}
	return nil
}
