package blob

import "errors"

var (
	ErrInvalidConfig      = errors.New("invalid storage configuration")
	ErrFailedToLoadConfig = errors.New("failed to load AWS config")
	ErrUploadFailed       = errors.New("failed to upload object")
	ErrDeleteFailed       = errors.New("failed to delete object")
	ErrAccessDenied       = errors.New("access denied")
)
