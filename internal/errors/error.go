package errors

import "errors"

var (
	ErrNoDocument      = errors.New("no document")
	ErrDocumentParse   = errors.New("document parse error")
	ErrIllegalMove     = errors.New("illegal move")
	ErrCodec           = errors.New("malformed share token")
	ErrInvalidPath     = errors.New("navigation path does not exist in tree")
	ErrLineNotFound    = errors.New("line not found")
	ErrStorageDisabled = errors.New("line storage is not configured")
	ErrInternal        = errors.New("internal error")
)
