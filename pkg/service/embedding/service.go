package embedding

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/almalink/almalink/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
)

// client implements Service interface
type client struct {
	llmClient gollem.LLMClient
	dimension int
}

// Option is a functional option for client configuration
type Option func(*client)

// WithDimension overrides the embedding vector dimension
func WithDimension(dimension int) Option {
	return func(c *client) {
		c.dimension = dimension
	}
}

// New creates a new embedding generation service with the provided LLM client
func New(llmClient gollem.LLMClient, opts ...Option) (Service, error) {
	if llmClient == nil {
		return nil, goerr.New("LLM client is required")
	}

	c := &client{
		llmClient: llmClient,
		dimension: model.DefaultEmbeddingDimension,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.dimension <= 0 {
		return nil, goerr.New("embedding dimension must be positive", goerr.V("dimension", c.dimension))
	}

	return c, nil
}

// Generate produces an embedding for a profile summary via one constrained
// completion call. Only the structured (schema-conformant) response is
// accepted; free text is rejected. The result is L2-normalized unless its
// raw magnitude is zero.
func (c *client) Generate(ctx context.Context, profileText string) ([]float32, error) {
	session, err := c.llmClient.NewSession(ctx,
		gollem.WithSessionContentType(gollem.ContentTypeJSON),
		gollem.WithSessionResponseSchema(c.buildResponseSchema()),
		gollem.WithSessionSystemPrompt(c.buildSystemPrompt()),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create LLM session")
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(buildUserPrompt(profileText)))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate embedding content")
	}

	if resp == nil || len(resp.Texts) == 0 {
		return nil, goerr.Wrap(ErrGenerationFailed, "no structured output in response")
	}

	var out llmResponse
	if err := json.Unmarshal([]byte(resp.Texts[0]), &out); err != nil {
		return nil, goerr.Wrap(ErrGenerationFailed, "response is not a structured vector",
			goerr.V("response", resp.Texts[0]))
	}

	if len(out.Embedding) == 0 {
		return nil, goerr.Wrap(ErrGenerationFailed, "empty embedding in response")
	}
	if len(out.Embedding) != c.dimension {
		return nil, goerr.Wrap(ErrGenerationFailed, "unexpected embedding dimension",
			goerr.V("expected", c.dimension),
			goerr.V("actual", len(out.Embedding)))
	}

	vector := make([]float32, len(out.Embedding))
	for i, v := range out.Embedding {
		vector[i] = float32(v)
	}

	return model.NormalizeVector(vector), nil
}

func (c *client) buildSystemPrompt() string {
	var sb strings.Builder

	sb.WriteString("You are a profile embedding generator for an alumni matching system.\n\n")
	fmt.Fprintf(&sb, "Given a structured profile summary, produce a %d-dimensional numeric embedding vector that captures the profile's semantic content: skills, industry, seniority, and interests.\n\n", c.dimension)
	sb.WriteString("## Rules:\n\n")
	fmt.Fprintf(&sb, "1. The embedding must contain exactly %d floating point values.\n", c.dimension)
	sb.WriteString("2. Every value must be within [-1, 1].\n")
	sb.WriteString("3. Semantically similar profiles must produce directionally similar vectors.\n")
	sb.WriteString("4. Respond only with the structured embedding, never with prose.\n")

	return sb.String()
}

func buildUserPrompt(profileText string) string {
	var sb strings.Builder

	sb.WriteString("## Profile summary:\n\n")
	sb.WriteString(profileText)
	sb.WriteString("\n")

	return sb.String()
}

// buildResponseSchema creates the JSON schema for structured output
func (c *client) buildResponseSchema() *gollem.Parameter {
	return &gollem.Parameter{
		Title:       "StoreEmbedding",
		Description: "Structured embedding vector for the given profile",
		Type:        gollem.TypeObject,
		Properties: map[string]*gollem.Parameter{
			"embedding": {
				Type:        gollem.TypeArray,
				Description: fmt.Sprintf("Embedding vector of exactly %d floats in [-1, 1]", c.dimension),
				Items: &gollem.Parameter{
					Type: gollem.TypeNumber,
				},
			},
		},
		Required: []string{"embedding"},
	}
}
