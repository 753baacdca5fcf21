package llm

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Handler is the http api layer for the Gemini gateway.
type Handler struct {
	service Service
	uploads *UploadStore
}

// NewHandler creates a new handler injecting the service and upload store.
func NewHandler(s Service, uploads *UploadStore) *Handler {
	return &Handler{
		service: s,
		uploads: uploads,
	}
}

// RegisterRoutes attaches the generate endpoints to the router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/generate-text", h.handleGenerateText)
	r.Post("/generate-from-image", h.handleGenerateFromImage)
	r.Post("/generate-from-document", h.handleGenerateFromDocument)
	r.Post("/generate-from-audio", h.handleGenerateFromAudio)
}

// --- DTOs ---

// generateTextRequest is the body of /generate-text. The field really is
// named "promp"; clients depend on it.
type generateTextRequest struct {
	Promp string `json:"promp"`
}

// generateResponse is what every endpoint returns on success.
type generateResponse struct {
	Output string `json:"output"`
}

// --- Handlers ---

func (h *Handler) handleGenerateText(w http.ResponseWriter, r *http.Request) {
	var req generateTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusInternalServerError, "Invalid request payload")
		return
	}

	output, err := h.service.GenerateText(r.Context(), req.Promp)
	h.respond(w, r, output, err)
}

func (h *Handler) handleGenerateFromImage(w http.ResponseWriter, r *http.Request) {
	output, err := h.withUpload(w, r, "image", func(ctx context.Context, file *UploadedFile) (string, error) {
		return h.service.GenerateFromImage(ctx, r.FormValue("prompt"), file)
	})
	h.respond(w, r, output, err)
}

func (h *Handler) handleGenerateFromDocument(w http.ResponseWriter, r *http.Request) {
	output, err := h.withUpload(w, r, "document", h.service.GenerateFromDocument)
	h.respond(w, r, output, err)
}

func (h *Handler) handleGenerateFromAudio(w http.ResponseWriter, r *http.Request) {
	output, err := h.withUpload(w, r, "audio", h.service.GenerateFromAudio)
	h.respond(w, r, output, err)
}

// withUpload saves the upload in field, runs fn on it and releases the
// scratch file on every path, before the response is written.
func (h *Handler) withUpload(w http.ResponseWriter, r *http.Request, field string,
	fn func(ctx context.Context, file *UploadedFile) (string, error)) (output string, err error) {
	file, err := h.uploads.Save(w, r, field)
	if err != nil {
		return "", err
	}
	defer func() {
		if rerr := h.uploads.Release(file); rerr != nil {
			log.Printf("[%s] %v", middleware.GetReqID(r.Context()), rerr)
			if err == nil {
				output, err = "", rerr
			}
		}
	}()
	return fn(r.Context(), file)
}

// respond writes either the model output or the error. All failures use
// the same server error status.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, output string, err error) {
	if err != nil {
		log.Printf("[%s] %s failed: %v", middleware.GetReqID(r.Context()), r.URL.Path, err)
		writeError(w, http.StatusInternalServerError, clientMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, generateResponse{Output: output})
}

// writeJSON is a helper function for sending json responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError is a helper for sending a standardized json error.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
