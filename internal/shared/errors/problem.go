// Package errors provides RFC 7807 Problem Details for HTTP APIs.
package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ProblemDetail represents an RFC 7807 Problem Details response.
// See: https://www.rfc-editor.org/rfc/rfc7807
type ProblemDetail struct {
	// Type is a URI reference that identifies the problem type.
	Type string `json:"type"`
	// Title is a short, human-readable summary of the problem type.
	Title string `json:"title"`
	// Status is the HTTP status code for this occurrence.
	Status int `json:"status"`
	// Detail is a human-readable explanation specific to this occurrence.
	Detail string `json:"detail,omitempty"`
	// Instance is a URI reference that identifies the specific occurrence.
	Instance string `json:"instance,omitempty"`
	// Extensions holds additional problem-specific properties. They are
	// serialized as top-level members alongside the standard fields.
	Extensions map[string]any `json:"-"`
}

// MarshalJSON flattens extension members into the problem object.
// Standard members take precedence over extensions with the same name.
func (p ProblemDetail) MarshalJSON() ([]byte, error) {
	body := make(map[string]any, len(p.Extensions)+5)
	for key, value := range p.Extensions {
		body[key] = value
	}
	body["type"] = p.Type
	body["title"] = p.Title
	body["status"] = p.Status
	if p.Detail != "" {
		body["detail"] = p.Detail
	}
	if p.Instance != "" {
		body["instance"] = p.Instance
	}
	return json.Marshal(body)
}

// Error implements the error interface.
func (p ProblemDetail) Error() string {
	if p.Detail != "" {
		return fmt.Sprintf("%s: %s", p.Title, p.Detail)
	}
	return p.Title
}

// WithDetail returns a copy with the given detail message.
func (p ProblemDetail) WithDetail(detail string) ProblemDetail {
	p.Detail = detail
	return p
}

// WithExtension returns a copy with an additional extension property.
func (p ProblemDetail) WithExtension(key string, value any) ProblemDetail {
	extensions := make(map[string]any, len(p.Extensions)+1)
	for k, v := range p.Extensions {
		extensions[k] = v
	}
	extensions[key] = value
	p.Extensions = extensions
	return p
}

// Problem type URI references used by the marketplace API.
const (
	TypeValidation = "/problems/validation-error"
	TypeNotFound   = "/problems/not-found"
	TypeConflict   = "/problems/conflict"
	TypeInternal   = "/problems/internal-error"
	TypeBadRequest = "/problems/bad-request"
)

var (
	// ErrNotFound reports an unknown store or order.
	ErrNotFound = ProblemDetail{
		Type:   TypeNotFound,
		Title:  "Resource Not Found",
		Status: http.StatusNotFound,
	}

	// ErrValidation reports a rejected order payload.
	ErrValidation = ProblemDetail{
		Type:   TypeValidation,
		Title:  "Validation Error",
		Status: http.StatusBadRequest,
	}

	// ErrBadRequest reports a malformed body or an unusable parameter.
	ErrBadRequest = ProblemDetail{
		Type:   TypeBadRequest,
		Title:  "Bad Request",
		Status: http.StatusBadRequest,
	}

	// ErrConflict reports an Idempotency-Key reused for a different order.
	ErrConflict = ProblemDetail{
		Type:   TypeConflict,
		Title:  "Conflict",
		Status: http.StatusConflict,
	}

	ErrInternal = ProblemDetail{
		Type:   TypeInternal,
		Title:  "Internal Server Error",
		Status: http.StatusInternalServerError,
	}
)

// NewNotFoundProblem reports a missing resource, e.g. "Store not found".
func NewNotFoundProblem(resource string) ProblemDetail {
	return ErrNotFound.WithDetail(resource + " not found")
}

// NewValidationListProblem reports every violation found in a request body
// under the "details" member.
func NewValidationListProblem(detail string, violations []string) ProblemDetail {
	if violations == nil {
		violations = []string{}
	}
	return ErrValidation.WithDetail(detail).WithExtension("details", violations)
}

// NewInvalidValueProblem rejects a value outside a closed set, listing the
// accepted ones under "allowed".
func NewInvalidValueProblem(detail string, allowed []string) ProblemDetail {
	return ErrBadRequest.WithDetail(detail).WithExtension("allowed", allowed)
}
