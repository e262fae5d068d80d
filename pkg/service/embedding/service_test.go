package embedding_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gt"

	"github.com/almalink/almalink/pkg/service/embedding"
)

// mockLLMSession is a mock gollem Session for testing
type mockLLMSession struct {
	generateContentFn func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error)
}

func (s *mockLLMSession) GenerateContent(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
	if s.generateContentFn != nil {
		return s.generateContentFn(ctx, input...)
	}
	return &gollem.Response{Texts: []string{`{"embedding": [0.5, 0.5]}`}}, nil
}

func (s *mockLLMSession) GenerateStream(ctx context.Context, input ...gollem.Input) (<-chan *gollem.Response, error) {
	return nil, nil
}

func (s *mockLLMSession) History() (*gollem.History, error) {
	return nil, nil
}

func (s *mockLLMSession) AppendHistory(*gollem.History) error {
	return nil
}

func (s *mockLLMSession) CountToken(ctx context.Context, input ...gollem.Input) (int, error) {
	return 0, nil
}

// mockLLMClient is a mock gollem LLMClient for testing
type mockLLMClient struct {
	newSessionFn func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error)
}

func (c *mockLLMClient) NewSession(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
	if c.newSessionFn != nil {
		return c.newSessionFn(ctx, options...)
	}
	return &mockLLMSession{}, nil
}

func (c *mockLLMClient) GenerateEmbedding(ctx context.Context, dimension int, input []string) ([][]float64, error) {
	return nil, nil
}

func sessionReturning(text string) *mockLLMClient {
	return &mockLLMClient{
		newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
			return &mockLLMSession{
				generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
					return &gollem.Response{Texts: []string{text}}, nil
				},
			}, nil
		},
	}
}

func TestNew(t *testing.T) {
	t.Run("nil client rejected", func(t *testing.T) {
		_, err := embedding.New(nil)
		gt.Error(t, err)
	})

	t.Run("non-positive dimension rejected", func(t *testing.T) {
		_, err := embedding.New(&mockLLMClient{}, embedding.WithDimension(0))
		gt.Error(t, err)
	})
}

func TestGenerate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid response is normalized", func(t *testing.T) {
		raw := make([]float64, 64)
		for i := range raw {
			raw[i] = 0.5
		}
		data, err := json.Marshal(map[string]any{"embedding": raw})
		gt.NoError(t, err)

		svc, err := embedding.New(sessionReturning(string(data)))
		gt.NoError(t, err).Required()

		vector, err := svc.Generate(ctx, "Skills: Go")
		gt.NoError(t, err).Required()
		gt.Array(t, vector).Length(64)

		var sum float64
		for _, v := range vector {
			sum += float64(v) * float64(v)
		}
		gt.Bool(t, math.Abs(math.Sqrt(sum)-1) < 1e-6).True()
	})

	t.Run("custom dimension is enforced", func(t *testing.T) {
		svc, err := embedding.New(sessionReturning(`{"embedding": [0.6, 0.8]}`), embedding.WithDimension(2))
		gt.NoError(t, err).Required()

		vector, err := svc.Generate(ctx, "Skills: Go")
		gt.NoError(t, err).Required()
		gt.Array(t, vector).Length(2)
	})

	t.Run("prose response rejected", func(t *testing.T) {
		svc, err := embedding.New(sessionReturning("here is your embedding: [0.1, 0.2]"))
		gt.NoError(t, err).Required()

		_, err = svc.Generate(ctx, "Skills: Go")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, embedding.ErrGenerationFailed)).True()
	})

	t.Run("empty embedding rejected", func(t *testing.T) {
		svc, err := embedding.New(sessionReturning(`{"embedding": []}`))
		gt.NoError(t, err).Required()

		_, err = svc.Generate(ctx, "Skills: Go")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, embedding.ErrGenerationFailed)).True()
	})

	t.Run("wrong dimension rejected", func(t *testing.T) {
		svc, err := embedding.New(sessionReturning(`{"embedding": [0.1, 0.2, 0.3]}`), embedding.WithDimension(2))
		gt.NoError(t, err).Required()

		_, err = svc.Generate(ctx, "Skills: Go")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, embedding.ErrGenerationFailed)).True()
	})

	t.Run("empty response rejected", func(t *testing.T) {
		client := &mockLLMClient{
			newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
				return &mockLLMSession{
					generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
						return &gollem.Response{}, nil
					},
				}, nil
			},
		}
		svc, err := embedding.New(client)
		gt.NoError(t, err).Required()

		_, err = svc.Generate(ctx, "Skills: Go")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, embedding.ErrGenerationFailed)).True()
	})

	t.Run("upstream error is passed through", func(t *testing.T) {
		upstream := fmt.Errorf("rate limit exceeded")
		client := &mockLLMClient{
			newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
				return &mockLLMSession{
					generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
						return nil, upstream
					},
				}, nil
			},
		}
		svc, err := embedding.New(client)
		gt.NoError(t, err).Required()

		_, err = svc.Generate(ctx, "Skills: Go")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, upstream)).True()
	})
}
