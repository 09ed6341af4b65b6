package utils

import "errors"

var (
	ErrInvalidPage     = errors.New("invalid page parameter")
	ErrInvalidPageSize = errors.New("invalid page size parameter")
	ErrDatabaseError   = errors.New("database error")

	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")

	ErrPlanNotFound             = errors.New("saved plan not found")
	ErrNothingToSave            = errors.New("nothing to save, generate a plan first")
	ErrNothingToExport          = errors.New("nothing to export, generate a plan first")
	ErrUnsupportedSharePlatform = errors.New("unsupported share platform")
	ErrExportFailed             = errors.New("could not generate export")

	ErrInvalidContactMessage = errors.New("invalid contact message")
)
