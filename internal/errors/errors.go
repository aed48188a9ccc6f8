package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCode is returned when an OTP is missing, expired, or wrong.
	ErrInvalidCode = errors.New("invalid or expired verification code")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrPasswordNotSet is returned when logging in before a password was ever set.
	ErrPasswordNotSet = errors.New("no password set for this account, use email verification")
	// ErrPasswordPolicy is returned when a new password is too short or confirm mismatches.
	ErrPasswordPolicy = errors.New("password must be at least 6 characters and match confirmation")
	// ErrForbidden is returned when the subject's role does not permit the action.
	ErrForbidden = errors.New("forbidden")
	// ErrUserNotFound is returned when a user record is missing.
	ErrUserNotFound = errors.New("user not found")
	// ErrClubNotFound is returned when a club record is missing or inactive.
	ErrClubNotFound = errors.New("club not found")
	// ErrEventNotFound is returned when an announcement record is missing or inactive.
	ErrEventNotFound = errors.New("event not found")
	// ErrRegistrationNotEnabled is returned when the announcement has no registration policy.
	ErrRegistrationNotEnabled = errors.New("registration is not enabled for this event")
	// ErrDeadlinePassed is returned when registering after the deadline.
	ErrDeadlinePassed = errors.New("registration deadline has passed")
	// ErrEventFull is returned when the event reached its registration capacity.
	ErrEventFull = errors.New("event is full")
	// ErrAlreadyRegistered is returned when the user already holds an active registration.
	ErrAlreadyRegistered = errors.New("already registered for this event")
	// ErrRegistrationNotFound is returned when cancelling without an active registration.
	ErrRegistrationNotFound = errors.New("no active registration found")
	// ErrCommentNotFound is returned when a comment record is missing.
	ErrCommentNotFound = errors.New("comment not found")
	// ErrNoPendingRequest is returned when approving or rejecting a user
	// without a pending admin request.
	ErrNoPendingRequest = errors.New("no pending admin request for this user")
	// ErrMailDelivery is returned when the OTP email could not be delivered.
	ErrMailDelivery = errors.New("failed to deliver verification email")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidCode):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_CODE")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrPasswordNotSet):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "PASSWORD_NOT_SET")
	case errors.Is(err, ErrPasswordPolicy):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "PASSWORD_POLICY")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrClubNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "CLUB_NOT_FOUND")
	case errors.Is(err, ErrEventNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "EVENT_NOT_FOUND")
	case errors.Is(err, ErrRegistrationNotEnabled):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "REGISTRATION_NOT_ENABLED")
	case errors.Is(err, ErrDeadlinePassed):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "DEADLINE_PASSED")
	case errors.Is(err, ErrEventFull):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EVENT_FULL")
	case errors.Is(err, ErrAlreadyRegistered):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "ALREADY_REGISTERED")
	case errors.Is(err, ErrRegistrationNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "REGISTRATION_NOT_FOUND")
	case errors.Is(err, ErrCommentNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "COMMENT_NOT_FOUND")
	case errors.Is(err, ErrNoPendingRequest):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "NO_PENDING_REQUEST")
	case errors.Is(err, ErrMailDelivery):
		return NewHTTPError(http.StatusInternalServerError, err.Error(), "MAIL_DELIVERY_FAILED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
