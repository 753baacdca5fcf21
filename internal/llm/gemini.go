package llm

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"strings"
	"sync"

	"google.golang.org/genai"
)

// GeminiConfig is the immutable configuration of the Gemini gateway.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// contentGenerator is the slice of *genai.Models the gateway uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content,
		config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// geminiGateway is the real Gateway backed by the Gemini API.
type geminiGateway struct {
	model     string
	generator func() (contentGenerator, error)
}

// NewGeminiGateway creates a Gateway for the Gemini API. The SDK client is
// built on the first call, so a missing API key is only reported then.
func NewGeminiGateway(cfg GeminiConfig) Gateway {
	return newGeminiGateway(cfg.Model, sync.OnceValues(func() (contentGenerator, error) {
		client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
			APIKey:  cfg.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, err
		}
		return client.Models, nil
	}))
}

func newGeminiGateway(model string, generator func() (contentGenerator, error)) *geminiGateway {
	return &geminiGateway{model: model, generator: generator}
}

// Generate implements the Gateway interface.
func (g *geminiGateway) Generate(ctx context.Context, parts []ContentPart) (string, error) {
	generator, err := g.generator()
	if err != nil {
		return "", &ModelError{Message: err.Error(), Err: err}
	}

	genaiParts, err := toGenaiParts(parts)
	if err != nil {
		return "", &ModelError{Message: err.Error(), Err: err}
	}
	contents := []*genai.Content{genai.NewContentFromParts(genaiParts, genai.RoleUser)}

	resp, err := generator.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		log.Printf("gemini: generate content with %s failed: %v", g.model, err)
		return "", &ModelError{Message: err.Error(), Err: err}
	}
	return replyText(resp)
}

// toGenaiParts converts our parts to SDK parts. Inline data is decoded
// back to raw bytes because the SDK does its own encoding on the wire.
func toGenaiParts(parts []ContentPart) ([]*genai.Part, error) {
	if len(parts) == 0 {
		return nil, fmt.Errorf("request has no content parts")
	}
	out := make([]*genai.Part, 0, len(parts))
	for i, p := range parts {
		switch p.Kind() {
		case PartText:
			out = append(out, genai.NewPartFromText(p.Text()))
		case PartInline:
			raw, err := base64.StdEncoding.DecodeString(p.Data())
			if err != nil {
				return nil, fmt.Errorf("part %d has malformed inline data: %w", i, err)
			}
			out = append(out, genai.NewPartFromBytes(raw, p.MIMEType()))
		default:
			return nil, fmt.Errorf("part %d has unknown kind %d", i, p.Kind())
		}
	}
	return out, nil
}

// replyText joins the text parts of the first candidate, skipping thoughts.
func replyText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", &ModelError{Message: fmt.Sprintf("prompt blocked: %s", resp.PromptFeedback.BlockReason)}
		}
		return "", &ModelError{Message: "model returned no candidates"}
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return "", &ModelError{Message: fmt.Sprintf("model returned no content (finish reason %s)", candidate.FinishReason)}
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		b.WriteString(part.Text)
	}
	return b.String(), nil
}
