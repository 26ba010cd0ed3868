package services

import "errors"

var (
	ErrBoardNotFound = errors.New("board not found")
	ErrItemNotFound  = errors.New("detected item not found")

	// ErrVisionUnavailable covers network, timeout and upstream failures of the model call
	ErrVisionUnavailable = errors.New("vision model unavailable")
	// ErrVisionParse is returned when the model answered with text that is not valid JSON
	ErrVisionParse = errors.New("vision model returned unparsable content")
	// ErrVisionNotConfigured is returned when no API key was provided at startup
	ErrVisionNotConfigured = errors.New("vision model not configured")

	// ErrBoardUpdateDrift means items were stored but the board status/count update failed.
	// The next reconciliation run repairs the count.
	ErrBoardUpdateDrift = errors.New("board status update failed after items were stored")

	ErrInvalidImageURL = errors.New("invalid image url")
	ErrImageTooLarge   = errors.New("image exceeds size limit")
	ErrImageFetch      = errors.New("failed to fetch image")
)
