package llm

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const (
	// formOverheadBytes is the room left for multipart headers and the
	// text fields on top of the payload limit.
	formOverheadBytes = 1 << 20
	// formMemoryBytes is how much of a multipart body is kept in memory
	// before the standard library spools it to disk.
	formMemoryBytes = 8 << 20
)

// UploadStore materializes multipart uploads into a scratch directory.
// Each upload gets its own uuid named file, so concurrent requests never
// share one.
type UploadStore struct {
	dir      string
	maxBytes int64
}

// NewUploadStore creates the scratch directory if needed.
func NewUploadStore(dir string, maxBytes int64) (*UploadStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, &IOError{Op: "create", Path: dir, Err: err}
	}
	return &UploadStore{dir: dir, maxBytes: maxBytes}, nil
}

// Save writes the file in the multipart field to the scratch directory.
// An absent field yields a *MissingFileError before anything is written.
func (s *UploadStore) Save(w http.ResponseWriter, r *http.Request, field string) (*UploadedFile, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBytes+formOverheadBytes)
	if err := r.ParseMultipartForm(formMemoryBytes); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return nil, &PayloadTooLargeError{Size: -1, Limit: s.maxBytes}
		case errors.Is(err, http.ErrNotMultipart), errors.Is(err, http.ErrMissingBoundary):
			return nil, &MissingFileError{Field: field}
		}
		return nil, fmt.Errorf("could not parse multipart form: %w", err)
	}

	src, header, err := r.FormFile(field)
	if err != nil {
		r.MultipartForm.RemoveAll()
		if errors.Is(err, http.ErrMissingFile) {
			return nil, &MissingFileError{Field: field}
		}
		return nil, fmt.Errorf("could not open upload %q: %w", field, err)
	}
	defer src.Close()

	path := filepath.Join(s.dir, uuid.NewString())
	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		r.MultipartForm.RemoveAll()
		return nil, &IOError{Op: "create", Path: path, Err: err}
	}

	n, err := io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		r.MultipartForm.RemoveAll()
		return nil, &IOError{Op: "write", Path: path, Err: err}
	}

	return &UploadedFile{
		Path:         path,
		OriginalName: header.Filename,
		ContentType:  header.Header.Get("Content-Type"),
		Size:         n,
		form:         r.MultipartForm,
	}, nil
}

// Release deletes the scratch file and any spool files the multipart
// parser created. A file that is already gone is not an error.
func (s *UploadStore) Release(file *UploadedFile) error {
	if file == nil {
		return nil
	}
	if file.form != nil {
		if err := file.form.RemoveAll(); err != nil {
			log.Printf("upload: could not remove multipart spool files: %v", err)
		}
	}
	if err := os.Remove(file.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return &IOError{Op: "delete", Path: file.Path, Err: err}
	}
	return nil
}
