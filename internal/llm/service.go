package llm

//go:generate mockgen -destination=./service_mock_test.go -package=llm -source=service.go Service

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Prompts sent along with uploads.
const (
	DefaultImagePrompt  = "Describe the image"
	documentInstruction = "Please summarize the following document in clear bullet points:"
	audioInstruction    = "Transcribe or analyze the following audio:"
)

// Service defines the business logic for the Gemini gateway. Each method
// builds the content parts for one kind of request and forwards them.
type Service interface {
	// GenerateText sends a bare prompt.
	GenerateText(ctx context.Context, prompt string) (string, error)

	// GenerateFromImage sends a prompt and an image. An empty prompt
	// becomes DefaultImagePrompt.
	GenerateFromImage(ctx context.Context, prompt string, file *UploadedFile) (string, error)

	// GenerateFromDocument asks for a bullet point summary of a document.
	GenerateFromDocument(ctx context.Context, file *UploadedFile) (string, error)

	// GenerateFromAudio asks for a transcription or analysis of audio.
	GenerateFromAudio(ctx context.Context, file *UploadedFile) (string, error)
}

// service is the concrete implementation of the Service interface.
type service struct {
	gateway Gateway
	encoder *Encoder
}

// NewService is the constructor for the gateway service.
func NewService(gateway Gateway, encoder *Encoder) Service {
	return &service{
		gateway: gateway,
		encoder: encoder,
	}
}

// GenerateText implements the Service interface.
func (s *service) GenerateText(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyPrompt
	}
	return s.generate(ctx, []ContentPart{TextPart(prompt)})
}

// GenerateFromImage implements the Service interface. The MIME type comes
// from the original filename, not from the declared content type.
func (s *service) GenerateFromImage(ctx context.Context, prompt string, file *UploadedFile) (string, error) {
	if prompt == "" {
		prompt = DefaultImagePrompt
	}
	mimeType, err := ResolveImageMIME(file.OriginalName)
	if err != nil {
		return "", err
	}
	return s.generateWithFile(ctx, prompt, file, mimeType)
}

// GenerateFromDocument implements the Service interface.
func (s *service) GenerateFromDocument(ctx context.Context, file *UploadedFile) (string, error) {
	mimeType, err := ResolveDocumentMIME(file.OriginalName, file.ContentType)
	if err != nil {
		return "", err
	}
	return s.generateWithFile(ctx, documentInstruction, file, mimeType)
}

// GenerateFromAudio implements the Service interface.
func (s *service) GenerateFromAudio(ctx context.Context, file *UploadedFile) (string, error) {
	mimeType, err := ResolveAudioMIME(file.OriginalName, file.ContentType)
	if err != nil {
		return "", err
	}
	return s.generateWithFile(ctx, audioInstruction, file, mimeType)
}

func (s *service) generateWithFile(ctx context.Context, prompt string, file *UploadedFile, mimeType string) (string, error) {
	payload, err := s.encoder.Encode(file.Path, mimeType)
	if err != nil {
		return "", fmt.Errorf("could not encode upload %q: %w", file.OriginalName, err)
	}
	return s.generate(ctx, []ContentPart{TextPart(prompt), payload})
}

func (s *service) generate(ctx context.Context, parts []ContentPart) (string, error) {
	output, err := s.gateway.Generate(ctx, parts)
	if err != nil {
		var modelErr *ModelError
		if !errors.As(err, &modelErr) {
			err = &ModelError{Message: err.Error(), Err: err}
		}
		return "", fmt.Errorf("gemini gateway failed: %w", err)
	}
	return output, nil
}
