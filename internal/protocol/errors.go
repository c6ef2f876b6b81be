package protocol

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedVersion        = errors.New("protocol: malformed version")
	ErrInvalidVersionComponent = errors.New("protocol: invalid version component")
	ErrTooLong                 = errors.New("protocol: string exceeds 255 bytes")
	ErrInvalidUTF8             = errors.New("protocol: string is not valid utf-8")
	ErrMalformedVarint         = errors.New("protocol: malformed varint")
	ErrUTF8Decode              = errors.New("protocol: utf-8 decode failed")
	ErrUnexpectedEOF           = errors.New("protocol: unexpected end of input")
	ErrIO                      = errors.New("protocol: io failure")
	ErrNilMessage              = errors.New("protocol: nil message")
)

// VersionComponentError names the version part that failed to parse.
type VersionComponentError struct {
	Component string
}

func (e *VersionComponentError) Error() string {
	return fmt.Sprintf("protocol: invalid version component %q", e.Component)
}

func (e *VersionComponentError) Is(target error) bool {
	return target == ErrInvalidVersionComponent
}

// FieldError records which message field a decode failure happened in.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%v (field %s)", e.Err, e.Field)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
