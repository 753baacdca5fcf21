package llm

import (
	"mime"
	"path/filepath"
	"strings"
)

var imageTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
}

// ResolveImageMIME maps an image filename to its MIME type by extension.
// Anything other than png, jpg, jpeg and webp is rejected.
func ResolveImageMIME(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	mimeType, ok := imageTypes[ext]
	if !ok {
		return "", &UnsupportedFormatError{Kind: "image", Format: ext}
	}
	return mimeType, nil
}

// Declared content types we accept for documents and audio. Keys are bare
// media types and are matched after parameters are stripped.
var (
	documentTypes = allowList{
		"application/pdf":        {".pdf"},
		"text/plain":             {".txt"},
		"text/markdown":          {".md", ".markdown"},
		"text/csv":               {".csv"},
		"text/html":              {".html", ".htm"},
		"text/xml":               {".xml"},
		"text/rtf":               {".rtf"},
		"application/json":       {".json"},
		"application/javascript": {".js"},
	}

	audioTypes = allowList{
		"audio/wav":  {".wav"},
		"audio/mp3":  nil,
		"audio/mpeg": {".mp3"},
		"audio/aiff": {".aiff", ".aif"},
		"audio/aac":  {".aac"},
		"audio/ogg":  {".ogg", ".oga"},
		"audio/flac": {".flac"},
		"audio/webm": {".weba"},
		"audio/mp4":  {".m4a"},
	}

	// Aliases that browsers and multipart clients commonly send.
	mediaTypeAliases = map[string]string{
		"audio/x-wav":     "audio/wav",
		"audio/wave":      "audio/wav",
		"audio/vnd.wave":  "audio/wav",
		"audio/x-aiff":    "audio/aiff",
		"audio/x-flac":    "audio/flac",
		"audio/x-m4a":     "audio/mp4",
		"audio/m4a":       "audio/mp4",
		"application/xml": "text/xml",
		"application/rtf": "text/rtf",
		"text/javascript": "application/javascript",
	}
)

// allowList maps a media type to the extensions that imply it.
type allowList map[string][]string

func (a allowList) byExtension(ext string) (string, bool) {
	for mediaType, exts := range a {
		for _, e := range exts {
			if e == ext {
				return mediaType, true
			}
		}
	}
	return "", false
}

// ResolveDocumentMIME validates the declared type of a document upload.
func ResolveDocumentMIME(filename, declared string) (string, error) {
	return resolveDeclared("document", documentTypes, filename, declared)
}

// ResolveAudioMIME validates the declared type of an audio upload.
func ResolveAudioMIME(filename, declared string) (string, error) {
	return resolveDeclared("audio", audioTypes, filename, declared)
}

// resolveDeclared trusts the client's declared content type when it is on
// the allow list. A missing or generic declared type falls back to the
// filename extension, checked against the same list.
func resolveDeclared(kind string, allowed allowList, filename, declared string) (string, error) {
	mediaType := normalizeMediaType(declared)
	if mediaType == "" || mediaType == "application/octet-stream" {
		ext := strings.ToLower(filepath.Ext(filename))
		if resolved, ok := allowed.byExtension(ext); ok {
			return resolved, nil
		}
		if ext == "" {
			ext = "(none)"
		}
		return "", &UnsupportedFormatError{Kind: kind, Format: ext}
	}
	if _, ok := allowed[mediaType]; !ok {
		return "", &UnsupportedFormatError{Kind: kind, Format: mediaType}
	}
	return mediaType, nil
}

func normalizeMediaType(declared string) string {
	declared = strings.TrimSpace(declared)
	if declared == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(declared)
	if err != nil {
		// Fall back to everything before the first parameter.
		mediaType, _, _ = strings.Cut(declared, ";")
	}
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	if alias, ok := mediaTypeAliases[mediaType]; ok {
		return alias
	}
	return mediaType
}
