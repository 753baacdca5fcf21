package llm

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is checks. The struct types below carry the detail
// and match their sentinel.
var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrMissingFile       = errors.New("missing file")
	ErrPayloadTooLarge   = errors.New("payload too large")
	ErrEmptyPrompt       = errors.New("promp is required")
)

// UnsupportedFormatError is returned when an upload's type is not one we
// forward. Kind is "image", "document" or "audio"; Format is the
// extension or media type that was rejected.
type UnsupportedFormatError struct {
	Kind   string
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("Unsupported %s format: %s", e.Kind, e.Format)
}

func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

// MissingFileError means the multipart field holding the upload was absent.
type MissingFileError struct {
	Field string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("No file uploaded in field %q", e.Field)
}

func (e *MissingFileError) Is(target error) bool {
	return target == ErrMissingFile
}

// PayloadTooLargeError is returned before encoding when an upload exceeds
// the configured limit. Size is -1 when the body was cut off while reading.
type PayloadTooLargeError struct {
	Size  int64
	Limit int64
}

func (e *PayloadTooLargeError) Error() string {
	if e.Size < 0 {
		return fmt.Sprintf("Payload exceeds the %d byte limit", e.Limit)
	}
	return fmt.Sprintf("Payload of %d bytes exceeds the %d byte limit", e.Size, e.Limit)
}

func (e *PayloadTooLargeError) Is(target error) bool {
	return target == ErrPayloadTooLarge
}

// IOError wraps a failure to read, write or delete a scratch file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("could not %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ModelError is any failure of the remote model call. Network errors,
// quota errors and rejected requests all end up here.
type ModelError struct {
	Message string
	Err     error
}

func (e *ModelError) Error() string { return e.Message }

func (e *ModelError) Unwrap() error { return e.Err }

// clientMessage picks the text shown to API clients for err. Typed errors
// report their own message, without the wrapping added on the way up.
func clientMessage(err error) string {
	var (
		modelErr       *ModelError
		unsupportedErr *UnsupportedFormatError
		missingErr     *MissingFileError
		tooLargeErr    *PayloadTooLargeError
		ioErr          *IOError
	)
	switch {
	case errors.As(err, &modelErr):
		return modelErr.Error()
	case errors.As(err, &unsupportedErr):
		return unsupportedErr.Error()
	case errors.As(err, &missingErr):
		return missingErr.Error()
	case errors.As(err, &tooLargeErr):
		return tooLargeErr.Error()
	case errors.As(err, &ioErr):
		return ioErr.Error()
	case errors.Is(err, ErrEmptyPrompt):
		return ErrEmptyPrompt.Error()
	}
	return err.Error()
}
