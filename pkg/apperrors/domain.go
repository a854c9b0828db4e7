package apperrors

import (
	"net/http"
)

// Predefined errors and factories for the marketplace domain.

// --- Resources ---

func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// --- Auth & user status ---

var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password is too weak. Minimum 8 characters required.",
	http.StatusBadRequest,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrEmailBanned = New(
	CodeForbidden,
	"auth",
	"Registration is not allowed for this email address",
	http.StatusForbidden,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid token",
	http.StatusUnauthorized,
)

var ErrUserSuspended = New(
	CodeForbidden,
	"auth",
	"Your account has been suspended",
	http.StatusForbidden,
)

var ErrUserDeleted = New(
	CodeForbidden,
	"auth",
	"This account no longer exists",
	http.StatusForbidden,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

var ErrCannotModifySelf = New(
	CodeForbidden,
	"business_logic",
	"Operation on self is not allowed",
	http.StatusForbidden,
)

// --- Profiles ---

var ErrProfileAlreadyExists = New(
	CodeAlreadyExists,
	"profile",
	"A profile already exists for this user",
	http.StatusConflict,
)

var ErrProfileIncomplete = New(
	CodeValidationFailed,
	"profile",
	"Profile needs at least one service, one region, one availability period and one contact method",
	http.StatusBadRequest,
)

// --- Reviews ---

var ErrSelfReviewNotAllowed = New(
	CodeInvalidOperation,
	"review",
	"You cannot review your own profile",
	http.StatusBadRequest,
)

// --- Jobs & uploads ---

var ErrJobNotEditable = New(
	CodeForbidden,
	"job",
	"Only the owner or an administrator may modify this listing",
	http.StatusForbidden,
)

var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"validation",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge,
)

var ErrTooManyFiles = New(
	CodeLimitExceeded,
	"validation",
	"Too many files in a single upload",
	http.StatusBadRequest,
)

var ErrInvalidFileType = New(
	CodeValidationFailed,
	"validation",
	"The provided file type is not allowed",
	http.StatusUnsupportedMediaType,
)

// --- Favorites ---

var ErrAlreadyFavorited = New(
	CodeAlreadyExists,
	"favorite",
	"Profile is already in your favorites",
	http.StatusConflict,
)
