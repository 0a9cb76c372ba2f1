package core

import "errors"

// Common errors.
var (
	ErrReadOnly         = errors.New("store is in read-only mode")
	ErrValidation       = errors.New("note content cannot be empty")
	ErrKeyNotFound      = errors.New("key not found")
	ErrImportFormat     = errors.New("invalid backup format")
	ErrImageTooLarge    = errors.New("image exceeds the size limit")
	ErrImageType        = errors.New("file is not an image")
	ErrWatchUnsupported = errors.New("storage does not support watching")
)
