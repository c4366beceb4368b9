// Package nferrors defines the sentinel error kinds the core surfaces,
// per the error taxonomy: IO, Format, Codec, Resource, Precondition.
package nferrors

import "errors"

var (
	// ErrShortRead is returned when fewer bytes were read than a fixed-size
	// structure requires, other than the clean end-of-stream case at the
	// start of a block header.
	ErrShortRead = errors.New("nfcompress: short read")

	// ErrShortWrite is returned when fewer bytes were written than requested.
	ErrShortWrite = errors.New("nfcompress: short write")

	// ErrFormat covers missing blocks versus a declared count, or an
	// unrecognized compression value.
	ErrFormat = errors.New("nfcompress: format error")

	// ErrCodec covers any codec status other than success or the
	// recoverable undersized-buffer sentinel.
	ErrCodec = errors.New("nfcompress: codec error")

	// ErrResource covers allocation failure of a payload or work buffer.
	ErrResource = errors.New("nfcompress: resource error")

	// ErrPrecondition covers calling an operation on a block or file that
	// is not in the state the operation requires.
	ErrPrecondition = errors.New("nfcompress: precondition violated")
)
