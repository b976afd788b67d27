package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fireproofed/quotelens/internal/common"
)

var providerRetryOpts = common.RetryOptions{
	MaxAttempts:  3,
	InitialDelay: time.Second,
	MaxDelay:     15 * time.Second,
	Multiplier:   2.0,
}

// postWithRetry executes an API request with retry on transient failures.
// The request is rebuilt per attempt so its body reader is fresh. Rate
// limits back off to the full delay; 4xx responses other than 429 are not
// retried.
func postWithRetry(ctx context.Context, client *http.Client, build func() (*http.Request, error)) ([]byte, error) {
	var body []byte

	err := common.WithRetry(ctx, func() error {
		req, err := build()
		if err != nil {
			return &common.RetryableError{Err: err, Retryable: false}
		}

		resp, err := client.Do(req)
		if err != nil {
			return &common.RetryableError{Err: err, Retryable: true}
		}
		defer func() { _ = resp.Body.Close() }()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return &common.RetryableError{Err: err, Retryable: true}
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			body = data
			return nil
		case resp.StatusCode == http.StatusTooManyRequests:
			return fmt.Errorf("%w: %s", common.ErrRateLimit, data)
		case resp.StatusCode >= 500:
			return &common.RetryableError{
				Err:       fmt.Errorf("server error (status %d): %s", resp.StatusCode, data),
				Retryable: true,
			}
		default:
			return &common.RetryableError{
				Err:       fmt.Errorf("API error (status %d): %s", resp.StatusCode, data),
				Retryable: false,
			}
		}
	}, providerRetryOpts)
	if err != nil {
		return nil, err
	}

	return body, nil
}
