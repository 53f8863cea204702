package errors

import (
	"github.com/gin-gonic/gin"
)

// envelope is the wire shape every handler responds with.
type envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *wireError `json:"error,omitempty"`
}

type wireError struct {
	Kind    Kind           `json:"kind"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorMapper translates service-level errors into Failures before
// rendering. Returning false passes the error to the next mapper.
type ErrorMapper func(err error) (*Failure, bool)

// Responder renders success/failure envelopes for gin handlers.
type Responder struct {
	mappers []ErrorMapper
}

// NewResponder creates a responder with optional custom error mappers.
func NewResponder(mappers ...ErrorMapper) *Responder {
	return &Responder{mappers: mappers}
}

// AddMapper appends an error mapper to the chain.
func (r *Responder) AddMapper(mapper ErrorMapper) {
	r.mappers = append(r.mappers, mapper)
}

// OK sends a success envelope with the given payload.
func (r *Responder) OK(c *gin.Context, status int, data any) {
	c.JSON(status, envelope{Success: true, Data: data})
}

// Fail maps err through the chain and sends a failure envelope.
func (r *Responder) Fail(c *gin.Context, err error) {
	failure := r.mapError(err)
	c.JSON(HTTPStatus(failure.Kind), envelope{
		Success: false,
		Error: &wireError{
			Kind:    failure.Kind,
			Message: failure.Message,
			Details: failure.Details,
		},
	})
}

func (r *Responder) mapError(err error) *Failure {
	for _, mapper := range r.mappers {
		if failure, ok := mapper(err); ok {
			return failure
		}
	}
	return AsFailure(err)
}
