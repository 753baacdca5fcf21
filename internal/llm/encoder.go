package llm

import (
	"encoding/base64"
	"os"
)

// Encoder turns a scratch file into an inline ContentPart.
type Encoder struct {
	maxBytes int64
}

// NewEncoder creates an encoder that refuses files larger than maxBytes.
// A non-positive limit disables the check.
func NewEncoder(maxBytes int64) *Encoder {
	return &Encoder{maxBytes: maxBytes}
}

// Encode reads the whole file at path and returns it as a base64 inline
// part tagged with mimeType. The size is checked before anything is read.
func (e *Encoder) Encode(path, mimeType string) (ContentPart, error) {
	info, err := os.Stat(path)
	if err != nil {
		return ContentPart{}, &IOError{Op: "stat", Path: path, Err: err}
	}
	if e.maxBytes > 0 && info.Size() > e.maxBytes {
		return ContentPart{}, &PayloadTooLargeError{Size: info.Size(), Limit: e.maxBytes}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return ContentPart{}, &IOError{Op: "read", Path: path, Err: err}
	}
	return InlinePart(mimeType, base64.StdEncoding.EncodeToString(data)), nil
}
