package opshubsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error kinds returned in the "error" field of failed responses.
const (
	ErrorCodeValidation   = "validation_error"
	ErrorCodeNotFound     = "not_found"
	ErrorCodeConflict     = "conflict"
	ErrorCodeInvalidState = "invalid_state"
	ErrorCodeRateLimited  = "rate_limit_exceeded"
	ErrorCodeServerError  = "server_error"
)

// APIError is a non-2xx response decoded from the error body.
type APIError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *APIError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("opshub: %d %s", e.StatusCode, e.Code)
	}
	return fmt.Sprintf("opshub: %d %s: %s", e.StatusCode, e.Code, e.Description)
}

// IsCode reports whether err is an APIError with the given error code.
func IsCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

// parseErrorResponse turns a failed response into an *APIError, falling back
// to the status text when the body is not an ErrorResponse.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
