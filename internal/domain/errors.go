package domain

import "fmt"

// AppError is the base domain error type. Award rejections are returned to the
// caller as a structured (code, message) pair, never as a bare string.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Cause   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Cause }

// Award pipeline error constructors, one per rejection kind.

func ErrInvalidScore(msg string) *AppError {
	return &AppError{Code: "INVALID_SCORE", Message: msg, Status: 400}
}

func ErrUnknownGame(gameID string) *AppError {
	return &AppError{Code: "UNKNOWN_GAME", Message: fmt.Sprintf("unknown game %q", gameID), Status: 400}
}

func ErrDailyGameLimit() *AppError {
	return &AppError{Code: "DAILY_GAME_LIMIT", Message: "max 10 games per type per day", Status: 429}
}

func ErrDailyCoinCap() *AppError {
	return &AppError{Code: "DAILY_COIN_CAP", Message: "max 3000 coins per day reached", Status: 429}
}

func ErrCooldownActive() *AppError {
	return &AppError{Code: "COOLDOWN_ACTIVE", Message: "wait 30 seconds between games", Status: 429}
}

func ErrAccountNotFound(id string) *AppError {
	return &AppError{Code: "ACCOUNT_NOT_FOUND", Message: fmt.Sprintf("account %s not found", id), Status: 404}
}

func ErrAwardApplyFailed(cause error) *AppError {
	return &AppError{Code: "AWARD_APPLY_FAILED", Message: "award could not be applied", Status: 500, Cause: cause}
}

func ErrStorageUnavailable(cause error) *AppError {
	return &AppError{Code: "STORAGE_UNAVAILABLE", Message: "storage unavailable", Status: 503, Cause: cause}
}

// Standard domain error constructors.

func ErrNotFound(entity, id string) *AppError {
	return &AppError{Code: "NOT_FOUND", Message: fmt.Sprintf("%s %s not found", entity, id), Status: 404}
}

func ErrConflict(msg string) *AppError {
	return &AppError{Code: "CONFLICT", Message: msg, Status: 409}
}

func ErrValidation(msg string) *AppError {
	return &AppError{Code: "VALIDATION_ERROR", Message: msg, Status: 400}
}

func ErrUnauthorized(msg string) *AppError {
	return &AppError{Code: "UNAUTHORIZED", Message: msg, Status: 401}
}

func ErrRateLimited(msg string) *AppError {
	return &AppError{Code: "RATE_LIMITED", Message: msg, Status: 429}
}

func ErrInternal(msg string, cause error) *AppError {
	return &AppError{Code: "INTERNAL_ERROR", Message: msg, Status: 500, Cause: cause}
}
