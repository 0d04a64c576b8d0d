package errcode

const (
	ErrUnknown = 10000000 + iota
	ErrNotFound
	ErrInvalid
	ErrConflict
	ErrInternal
	ErrInvalidFile
	ErrManualNotGenerated
	ErrIndexMissing
	ErrInsufficientContext
	ErrAIUnavailable
	ErrUploadFailed
)
