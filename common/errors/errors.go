package errors

import "errors"

var (
	ErrWriterClosed    = errors.New("writer is already closed")
	ErrSchemaNotMatch  = errors.New("schema not match")
	ErrNilDescriptor   = errors.New("descriptor is nil")
	ErrMissingBuffer   = errors.New("missing mandatory buffer")
	ErrEmptyArray      = errors.New("array length is zero")
	ErrUnsupportedType = errors.New("unsupported data type")
	ErrChildOutOfRange = errors.New("child descriptor out of range")
	ErrNoEndpoint      = errors.New("endpoint not set")
)
