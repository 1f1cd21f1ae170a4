package domain

import "errors"

var (
	ErrNotFound          = errors.New("resource not found")
	ErrConflict          = errors.New("resource conflict")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidGoalType   = errors.New("invalid goal type")
	ErrUnknownCategory   = errors.New("unknown health tips category")
	ErrSessionNotFound   = errors.New("dashboard session not found")
	ErrInvalidRange      = errors.New("unsupported time range")
	ErrIncompletePayload = errors.New("incomplete analysis payload")
)
