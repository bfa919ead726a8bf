package domain

import "errors"

// ============================================================================
// Input Errors
// ============================================================================

var (
	ErrEmptyQuestion  = errors.New("question is required")
	ErrUploadTooLarge = errors.New("uploaded file exceeds size limit")
)

// ============================================================================
// Archive Errors
// ============================================================================

var (
	ErrInvalidArchive      = errors.New("invalid ZIP file")
	ErrEmptyArchive        = errors.New("ZIP file is empty")
	ErrUnsupportedFileType = errors.New("no supported table file (.csv, .xlsx) found in ZIP")
	ErrMalformedTable      = errors.New("table file is malformed or empty")
	ErrEntryTooLarge       = errors.New("archive entry exceeds size limit")
)

// ============================================================================
// Answer Lookup Errors
// ============================================================================

var (
	ErrColumnNotFound = errors.New("column not found in table")
	ErrEmptyTable     = errors.New("table has no rows")
)

// ============================================================================
// Inference Errors
// ============================================================================

var (
	ErrMissingCredential           = errors.New("inference API token not configured")
	ErrInferenceService            = errors.New("inference service error")
	ErrInferenceServiceUnavailable = errors.New("service temporarily unavailable")
	ErrBackendUnavailable          = errors.New("inference backend is not reachable, please start the service")
	ErrModelNotInstalled           = errors.New("model is not installed, please install the model")
)
