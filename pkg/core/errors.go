package core

import "errors"

// Common errors.
var (
	ErrUnknownRecordType  = errors.New("unknown record type")
	ErrMalformedTimestamp = errors.New("malformed timestamp")
	ErrFieldType          = errors.New("field has the wrong type")
	ErrKeyMismatch        = errors.New("key does not match record type and id")
	ErrNotFound           = errors.New("no instance found")
	ErrReadOnly           = errors.New("storage is in read-only mode")
)
