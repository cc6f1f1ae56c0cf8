package face

import "errors"

var (
	ErrInvalidRequest    = errors.New("invalid request")
	ErrNoFacesDetected   = errors.New("no faces detected")
	ErrExtractionFailure = errors.New("extraction failure")
	ErrComparisonFailure = errors.New("comparison failure")
)

// Caller visible messages. These are part of the wire contract.
const (
	MsgNoImagePaths     = "No image paths provided"
	MsgNoFacesDetected  = "No faces detected in any of the provided images"
	MsgMissingEmbedding = "Missing embeddings"
)

// Error carries a taxonomy kind together with the message sent back to callers.
type Error struct {
	Kind    error
	Message string
	Cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func newError(kind error, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func wrapError(kind error, cause error) *Error {
	return &Error{Kind: kind, Message: cause.Error(), Cause: cause}
}
