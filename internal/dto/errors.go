package dto

// BaseError: единый формат ошибки API.
// Code машинный (snake_case), Details заполняется только вне production.
type BaseError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details string       `json:"details,omitempty"`
	Fields  []FieldError `json:"fields,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Семантические алиасы для @Failure в swagger; по JSON все одинаковы.

// ValidationErrorResponse 400, code "validation_error"
type ValidationErrorResponse BaseError

// InvalidCredentialsErrorResponse 400, code "invalid_credentials"
type InvalidCredentialsErrorResponse BaseError

// UploadErrorResponse 400, code "upload_error"
type UploadErrorResponse BaseError

// UnauthorizedErrorResponse 401, code "unauthorized"
type UnauthorizedErrorResponse BaseError

// NotFoundErrorResponse 404, code "not_found"
type NotFoundErrorResponse BaseError

// ConflictErrorResponse 409, code "conflict"
type ConflictErrorResponse BaseError

// InvalidTransitionErrorResponse 409, code "invalid_transition"
type InvalidTransitionErrorResponse BaseError

// InternalErrorResponse 500, code "internal_error"
type InternalErrorResponse BaseError

func NewValidationError(msg string, fields []FieldError) ValidationErrorResponse {
	return ValidationErrorResponse(BaseError{Code: "validation_error", Message: msg, Fields: fields})
}
func NewInvalidCredentialsError(msg string) InvalidCredentialsErrorResponse {
	return InvalidCredentialsErrorResponse(BaseError{Code: "invalid_credentials", Message: msg})
}
func NewUploadError(msg string) UploadErrorResponse {
	return UploadErrorResponse(BaseError{Code: "upload_error", Message: msg})
}
func NewUnauthorizedError(msg string) UnauthorizedErrorResponse {
	return UnauthorizedErrorResponse(BaseError{Code: "unauthorized", Message: msg})
}
func NewNotFoundError(msg string) NotFoundErrorResponse {
	return NotFoundErrorResponse(BaseError{Code: "not_found", Message: msg})
}
func NewConflictError(msg string) ConflictErrorResponse {
	return ConflictErrorResponse(BaseError{Code: "conflict", Message: msg})
}
func NewInvalidTransitionError(msg string) InvalidTransitionErrorResponse {
	return InvalidTransitionErrorResponse(BaseError{Code: "invalid_transition", Message: msg})
}
func NewInternalError(details string) InternalErrorResponse {
	return InternalErrorResponse(BaseError{Code: "internal_error", Message: "internal server error", Details: details})
}
