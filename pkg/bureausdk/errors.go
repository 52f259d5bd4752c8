package bureausdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error codes returned in ErrorResponse.Error.
const (
	ErrorCodeInvalidRequest     = "invalid_request"
	ErrorCodeNotFound           = "not_found"
	ErrorCodeInvalidTransition  = "invalid_transition"
	ErrorCodeInvalidToken       = "invalid_token"
	ErrorCodeTokenExpired       = "token_expired"
	ErrorCodeTokenAlreadyUsed   = "token_already_used"
	ErrorCodeAccountExists      = "account_exists"
	ErrorCodeInvalidCredentials = "invalid_credentials"
	ErrorCodeMFARequired        = "mfa_required"
	ErrorCodeInvalidOTP         = "invalid_otp"
	ErrorCodeConflict           = "conflict"
	ErrorCodeInsufficientScope  = "insufficient_scope"
	ErrorCodeRateLimited        = "rate_limit_exceeded"
	ErrorCodeServerError        = "server_error"
)

// APIError is a non-2xx response.
type APIError struct {
	StatusCode int
	ErrorResponse
}

func (e *APIError) Error() string {
	if e.ErrorDescription == "" {
		return fmt.Sprintf("%d %s", e.StatusCode, e.ErrorResponse.Error)
	}
	return fmt.Sprintf("%d %s: %s", e.StatusCode, e.ErrorResponse.Error, e.ErrorDescription)
}

// IsCode reports whether err is an APIError carrying code.
func IsCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.ErrorResponse.Error == code
}

func parseErrorResponse(resp *http.Response, body []byte) error {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{StatusCode: resp.StatusCode, ErrorResponse: errResp}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		ErrorResponse: ErrorResponse{
			Error:            ErrorCodeServerError,
			ErrorDescription: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
		},
	}
}
