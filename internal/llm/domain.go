package llm

import "mime/multipart"

// PartKind tells the two kinds of ContentPart apart.
type PartKind int

const (
	// PartText is plain prompt text.
	PartText PartKind = iota
	// PartInline is a base64 encoded payload tagged with a MIME type.
	PartInline
)

// ContentPart is one unit of model input. The fields are unexported so a
// part cannot change once it has been built; use TextPart or InlinePart.
type ContentPart struct {
	kind     PartKind
	text     string
	mimeType string
	data     string
}

// TextPart builds a plain text part.
func TextPart(text string) ContentPart {
	return ContentPart{kind: PartText, text: text}
}

// InlinePart builds an inline payload part. data must already be base64.
func InlinePart(mimeType, data string) ContentPart {
	return ContentPart{kind: PartInline, mimeType: mimeType, data: data}
}

func (p ContentPart) Kind() PartKind   { return p.kind }
func (p ContentPart) Text() string     { return p.text }
func (p ContentPart) MIMEType() string { return p.mimeType }

// Data returns the base64 payload of an inline part.
func (p ContentPart) Data() string { return p.data }

// UploadedFile is a request scoped reference to an upload that has been
// written to the scratch directory. The handler that received it must
// release it before the request ends.
type UploadedFile struct {
	// Path is where the blob lives on disk.
	Path string
	// OriginalName is the filename the client sent.
	OriginalName string
	// ContentType is the type the client declared for the part.
	ContentType string
	// Size is the byte length of the blob.
	Size int64

	form *multipart.Form
}
