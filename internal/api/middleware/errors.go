package middleware

import (
	"errors"
	"net/http"

	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog/log"
)

var (
	ErrMissingQuestion = errors.New("question query parameter is required")
	ErrQuestionTooLong = errors.New("question exceeds maximum length")
	ErrCacheDisabled   = errors.New("sql cache is not configured")
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Details string `json:"details,omitempty"`
}

// HandleError writes err as an ErrorResponse with the given status. For 5xx
// statuses the error text is moved to Details behind a generic message.
func HandleError(resp *restful.Response, err error, status int) {
	body := ErrorResponse{
		Error: err.Error(),
		Code:  status,
	}
	if status >= http.StatusInternalServerError {
		body.Error = "system error"
		body.Details = err.Error()
	}

	if writeErr := resp.WriteHeaderAndEntity(status, body); writeErr != nil {
		log.Error().Err(writeErr).Msg("Failed to write error response")
	}
}
