package api

import (
	"errors"
	"fmt"
)

// ErrorKind names one platform failure class. Kinds map one-to-one onto the
// HTTP status codes the AlgoBulls backend uses.
type ErrorKind string

const (
	ErrBadRequest          ErrorKind = "BadRequest"          // 400
	ErrUnauthorized        ErrorKind = "Unauthorized"        // 401
	ErrInsufficientBalance ErrorKind = "InsufficientBalance" // 402
	ErrForbidden           ErrorKind = "Forbidden"           // 403
	ErrResourceNotFound    ErrorKind = "ResourceNotFound"    // 404
	ErrInternalServer      ErrorKind = "InternalServerError" // 500
	ErrGatewayTimeout      ErrorKind = "GatewayTimeout"      // 504
	ErrUnknown             ErrorKind = "Unknown"             // anything else
)

var statusKinds = map[int]ErrorKind{
	400: ErrBadRequest,
	401: ErrUnauthorized,
	402: ErrInsufficientBalance,
	403: ErrForbidden,
	404: ErrResourceNotFound,
	500: ErrInternalServer,
	504: ErrGatewayTimeout,
}

// classifyStatus returns the kind for a status code. ok is false for codes
// outside the documented contract.
func classifyStatus(status int) (ErrorKind, bool) {
	kind, ok := statusKinds[status]
	return kind, ok
}

// APIError is a classified platform failure. It carries enough context to
// reproduce the failing call; Body is the raw response text, never parsed,
// so malformed failure payloads stay inspectable.
type APIError struct {
	Kind       ErrorKind
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("algobulls api %s: %s %s returned %d: %s",
		e.Kind, e.Method, e.URL, e.StatusCode, e.Body)
}

func newAPIError(kind ErrorKind, method, url string, status int, body []byte) *APIError {
	return &APIError{
		Kind:       kind,
		Method:     method,
		URL:        url,
		StatusCode: status,
		Body:       string(body),
	}
}

// IsKind reports whether err is an APIError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}
