package clio

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

const (
	defaultPollInterval = 3 * time.Second
	defaultPollMaxWait  = 30 * time.Second
)

// PollOption configures document polling behavior.
type PollOption func(*pollConfig)

type pollConfig struct {
	interval time.Duration
	maxWait  time.Duration
}

// WithPollInterval overrides the delay between metadata fetches.
func WithPollInterval(d time.Duration) PollOption {
	return func(c *pollConfig) {
		c.interval = d
	}
}

// WithPollMaxWait overrides the total time to wait before giving up.
func WithPollMaxWait(d time.Duration) PollOption {
	return func(c *pollConfig) {
		c.maxWait = d
	}
}

// PollDocumentVersion re-fetches document metadata until the binary version
// materializes. A timeout is an expected outcome and returns (nil, nil) so
// the caller can fall back to local generation; errors are reserved for
// failed metadata fetches and context cancellation.
func PollDocumentVersion(ctx context.Context, client Client, documentID int64, opts ...PollOption) (*Document, error) {
	cfg := pollConfig{
		interval: defaultPollInterval,
		maxWait:  defaultPollMaxWait,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	deadline := time.Now().Add(cfg.maxWait)
	for {
		doc, err := client.GetDocument(ctx, documentID)
		if err != nil {
			return nil, eris.Wrap(err, "clio: poll document version")
		}
		if doc.Ready() {
			return doc, nil
		}

		if time.Now().Add(cfg.interval).After(deadline) {
			zap.L().Warn("document version not ready, giving up",
				zap.Int64("document_id", documentID),
				zap.Duration("max_wait", cfg.maxWait),
			)
			return nil, nil
		}

		select {
		case <-ctx.Done():
			return nil, eris.Wrap(ctx.Err(), "clio: poll document version")
		case <-time.After(cfg.interval):
		}
	}
}
