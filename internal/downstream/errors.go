package downstream

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var (
	ErrTimeout      = errors.New("downstream_timeout")
	ErrUnavailable  = errors.New("downstream_unavailable")
	ErrCanceled     = errors.New("downstream_canceled")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("resource_not_found")
)

// TransportError is a request that never produced an HTTP response:
// network failure, timeout or cancellation. Kind is one of ErrTimeout,
// ErrUnavailable or ErrCanceled.
type TransportError struct {
	Kind error
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

func (e *TransportError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// StatusError is a non-2xx answer from the backend.
type StatusError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("downstream error [%d] %s: %s", e.StatusCode, e.Code, e.Message)
}

// Is lets callers match well-known statuses with errors.Is.
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// StatusCode extracts the HTTP status from err, or 0 if there is none.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

const maxErrorBody = 64 << 10

// decodeError drains and closes the body. It understands the unified
// {"error":{...}} envelope as well as {"detail": ...} and {"message": ...}.
func decodeError(resp *http.Response) error {
	defer resp.Body.Close()

	se := &StatusError{
		StatusCode: resp.StatusCode,
		Code:       defaultCode(resp.StatusCode),
		Message:    fmt.Sprintf("unexpected status: %d", resp.StatusCode),
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(body) == 0 {
		return se
	}

	var payload struct {
		Error *struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return se
	}

	switch {
	case payload.Error != nil && payload.Error.Code != "":
		se.Code = payload.Error.Code
		se.Message = payload.Error.Message
	case len(payload.Detail) > 0:
		var detail string
		if err := json.Unmarshal(payload.Detail, &detail); err == nil {
			se.Message = detail
		} else {
			se.Message = strings.TrimSpace(string(payload.Detail))
		}
	case payload.Message != "":
		se.Message = payload.Message
	}
	return se
}

func defaultCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "resource_not_found"
	case http.StatusConflict:
		return "conflict_state"
	case http.StatusUnprocessableEntity:
		return "validation_failed"
	default:
		return "downstream_error"
	}
}
