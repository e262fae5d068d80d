package usecase

import (
	"errors"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// classifyLLMError maps provider failures onto the usecase error taxonomy
// so the HTTP layer can translate them to meaningful status codes. Errors
// that match nothing pass through unchanged.
func classifyLLMError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 429:
			return goerr.Wrap(ErrRateLimited, "LLM API rate limit exceeded", goerr.V("cause", err))
		case 402:
			return goerr.Wrap(ErrQuotaExhausted, "LLM API quota exhausted", goerr.V("cause", err))
		}
	}

	if st, ok := status.FromError(err); ok && st.Code() == codes.ResourceExhausted {
		if containsAny(st.Message(), "quota", "credit") {
			return goerr.Wrap(ErrQuotaExhausted, "LLM API quota exhausted", goerr.V("cause", err))
		}
		return goerr.Wrap(ErrRateLimited, "LLM API rate limit exceeded", goerr.V("cause", err))
	}

	// Some SDK paths flatten provider errors into strings
	msg := err.Error()
	switch {
	case containsAny(msg, "quota", "credit"):
		return goerr.Wrap(ErrQuotaExhausted, "LLM API quota exhausted", goerr.V("cause", err))
	case containsAny(msg, "rate limit", "429"):
		return goerr.Wrap(ErrRateLimited, "LLM API rate limit exceeded", goerr.V("cause", err))
	}

	return err
}

func containsAny(s string, subs ...string) bool {
	s = strings.ToLower(s)
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
