package errors

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the media type for Problem Details responses.
const ContentTypeProblemJSON = "application/problem+json"

// internalDetail replaces the message of unmapped errors so internals never reach clients.
const internalDetail = "An unexpected error occurred"

// ErrorMapper turns a domain or application error into a problem. It returns
// false when the error is not its concern.
type ErrorMapper func(err error) (ProblemDetail, bool)

// Responder writes problem documents, resolving errors through its mappers in order.
type Responder struct {
	baseURI string
	mappers []ErrorMapper
}

// NewResponder creates a responder. A non-empty baseURI prefixes relative problem types.
func NewResponder(baseURI string, mappers ...ErrorMapper) *Responder {
	return &Responder{baseURI: baseURI, mappers: mappers}
}

// Respond writes problem with the problem+json content type. The request
// path becomes the instance when none is set.
func (r *Responder) Respond(c *gin.Context, problem ProblemDetail) {
	if r.baseURI != "" && len(problem.Type) > 0 && problem.Type[0] == '/' {
		problem.Type = r.baseURI + problem.Type
	}
	if problem.Instance == "" {
		problem.Instance = c.Request.URL.Path
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.JSON(problem.Status, problem)
}

// RespondError answers with the first matching mapper, a ProblemDetail
// carried by err, or a generic 500.
func (r *Responder) RespondError(c *gin.Context, err error) {
	for _, mapper := range r.mappers {
		if problem, ok := mapper(err); ok {
			r.Respond(c, problem)
			return
		}
	}
	var problem ProblemDetail
	if errors.As(err, &problem) {
		r.Respond(c, problem)
		return
	}
	_ = c.Error(err)
	r.Respond(c, ErrInternal.WithDetail(internalDetail))
}
