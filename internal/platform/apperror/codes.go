package apperror

// ErrorCode is the broad error category.
type ErrorCode string

const (
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeUnauthorized     ErrorCode = "UNAUTHORIZED"
	CodeForbidden        ErrorCode = "FORBIDDEN"
	CodeInternalError    ErrorCode = "INTERNAL_ERROR"
	CodePayloadTooLarge  ErrorCode = "PAYLOAD_TOO_LARGE"
	CodeUnsupportedMedia ErrorCode = "UNSUPPORTED_MEDIA"
)

// BusinessCode is the specific reason. Each value has an entry in the
// i18n catalog.
type BusinessCode string

const (
	BusinessCodeGeneral       BusinessCode = "GENERAL"
	BusinessCodeInvalidFormat BusinessCode = "INVALID_FORMAT"
	BusinessCodeInvalidBody   BusinessCode = "INVALID_BODY"

	// auth
	BusinessCodeInvalidCredentials BusinessCode = "INVALID_CREDENTIALS"
	BusinessCodeTokenMissing       BusinessCode = "TOKEN_MISSING"
	BusinessCodeTokenInvalid       BusinessCode = "TOKEN_INVALID"
	BusinessCodeTokenExpired       BusinessCode = "TOKEN_EXPIRED"
	BusinessCodeSessionRevoked     BusinessCode = "SESSION_REVOKED"
	BusinessCodeWeakPassword       BusinessCode = "WEAK_PASSWORD"

	// users
	BusinessCodeUserNotFound    BusinessCode = "USER_NOT_FOUND"
	BusinessCodeEmailTaken      BusinessCode = "EMAIL_TAKEN"
	BusinessCodeUsernameTaken   BusinessCode = "USERNAME_TAKEN"
	BusinessCodeInvalidEmail    BusinessCode = "INVALID_EMAIL"
	BusinessCodeInvalidUsername BusinessCode = "INVALID_USERNAME"

	// images
	BusinessCodeImageNotFound       BusinessCode = "IMAGE_NOT_FOUND"
	BusinessCodeNoFiles             BusinessCode = "NO_FILES"
	BusinessCodeTooManyFiles        BusinessCode = "TOO_MANY_FILES"
	BusinessCodeFileTooLarge        BusinessCode = "FILE_TOO_LARGE"
	BusinessCodeUnsupportedFileType BusinessCode = "UNSUPPORTED_FILE_TYPE"
	BusinessCodeCorruptImage        BusinessCode = "CORRUPT_IMAGE"

	// albums
	BusinessCodeAlbumNotFound    BusinessCode = "ALBUM_NOT_FOUND"
	BusinessCodeInvalidAlbumName BusinessCode = "INVALID_ALBUM_NAME"
	BusinessCodeImageNotInAlbum  BusinessCode = "IMAGE_NOT_IN_ALBUM"
	BusinessCodeSlugExhausted    BusinessCode = "SLUG_EXHAUSTED"
)
