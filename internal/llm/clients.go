package llm

//go:generate mockgen -destination=./clients_mock_test.go -package=llm -source=clients.go

import (
	"context"
	"strings"
)

// Gateway is the contract for the remote generative model. Implementations
// hold no per request state. Every failure is reported as a *ModelError.
type Gateway interface {
	// Generate sends the parts, in order, as one request and returns the
	// text of the reply.
	Generate(ctx context.Context, parts []ContentPart) (string, error)
}

// echoGateway is a fake Gateway that answers with the request's own text.
type echoGateway struct{}

// NewEchoGateway creates a gateway that needs no network access. It is
// used for local runs with MODEL_BACKEND=echo.
func NewEchoGateway() Gateway {
	return &echoGateway{}
}

func (g *echoGateway) Generate(ctx context.Context, parts []ContentPart) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &ModelError{Message: err.Error(), Err: err}
	}
	var texts []string
	for _, p := range parts {
		if p.Kind() == PartText {
			texts = append(texts, p.Text())
		}
	}
	return strings.Join(texts, "\n"), nil
}
