package llm

import (
	"context"

	"github.com/cenkalti/backoff/v4"
)

// retryProvider retries transient Generate failures with exponential backoff.
// IsConfigured is passed through untouched.
type retryProvider struct {
	inner      Provider
	maxRetries uint64
}

// WithRetry wraps a provider so each Generate call is attempted up to
// 1+maxRetries times. Backoff stops early when the context is done.
func WithRetry(inner Provider, maxRetries int) Provider {
	if maxRetries <= 0 {
		return inner
	}
	return &retryProvider{inner: inner, maxRetries: uint64(maxRetries)}
}

func (r *retryProvider) Generate(ctx context.Context, req Request) (string, error) {
	var out string
	op := func() error {
		text, err := r.inner.Generate(ctx, req)
		if err != nil {
			return err
		}
		out = text
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), r.maxRetries), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		return "", err
	}
	return out, nil
}

func (r *retryProvider) IsConfigured() bool {
	return r.inner.IsConfigured()
}
