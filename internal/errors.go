package internal

import "errors"

var (
	// ErrRemoteUnavailable covers transport failures and 5xx responses from
	// the remote store. Retries are always user-initiated.
	ErrRemoteUnavailable = errors.New("remote store unavailable")

	// ErrNotFound means the update/delete target no longer exists remotely,
	// which implies the local view is stale.
	ErrNotFound = errors.New("report not found")

	// ErrAlreadyInProgress is returned when a create/update is attempted
	// while another one is still in flight.
	ErrAlreadyInProgress = errors.New("submission already in progress")

	// ErrValidation signals that a draft failed field validation and the
	// mutation was blocked before reaching the remote store.
	ErrValidation = errors.New("draft validation failed")
)

type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string { return e.Message }

func NewAppError(code int, msg string) *AppError {
	return &AppError{Code: code, Message: msg}
}
