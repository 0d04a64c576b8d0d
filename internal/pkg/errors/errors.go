package errors

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrInvalid             = errors.New("invalid")
	ErrConflict            = errors.New("conflict")
	ErrInternal            = errors.New("internal")
	ErrManualNotGenerated  = errors.New("manual has no generated content")
	ErrIndexMissing        = errors.New("manual has no embeddings")
	ErrInsufficientContext = errors.New("no manual context retrieved")
	ErrAIUnavailable       = errors.New("ai provider unavailable")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}
