package main

import (
	"net/http"
	"time"

	"github.com/richards-law/intake-cli/internal/extraction"
	"github.com/richards-law/intake-cli/internal/mailer"
	"github.com/richards-law/intake-cli/internal/pipeline"
	"github.com/richards-law/intake-cli/pkg/clio"
)

// initClio builds the Clio client from config: explicit tokens when present,
// otherwise the on-disk token cache written by the OAuth callback.
func initClio() clio.Client {
	app := clio.OAuthApp{
		ClientID:     cfg.Clio.ClientID,
		ClientSecret: cfg.Clio.ClientSecret,
		RedirectURI:  cfg.Clio.RedirectURI,
	}

	opts := []clio.Option{
		clio.WithBaseURL(cfg.Clio.BaseURL),
		clio.WithTokenStore(clio.NewFileTokenStore(cfg.Clio.TokensPath)),
	}
	if cfg.Clio.AccessToken != "" || cfg.Clio.RefreshToken != "" {
		opts = append(opts, clio.WithTokens(cfg.Clio.AccessToken, cfg.Clio.RefreshToken))
	}
	if cfg.Clio.RateLimitRPS > 0 {
		opts = append(opts, clio.WithRateLimit(cfg.Clio.RateLimitRPS))
	}
	if cfg.Clio.TimeoutSecs > 0 {
		opts = append(opts, clio.WithHTTPClient(&http.Client{
			Timeout: time.Duration(cfg.Clio.TimeoutSecs) * time.Second,
		}))
	}

	return clio.NewClient(app, opts...)
}

func initExtractor() extraction.Extractor {
	client := extraction.NewClient(cfg.Anthropic.Key)
	return extraction.NewExtractor(client, cfg.Anthropic.Model, cfg.Anthropic.MaxTokens)
}

// initPipeline wires the pipeline onto an already-built Clio client so
// token state (including credentials obtained through the serve-mode OAuth
// callback) is shared with every other caller of that client.
func initPipeline(client clio.Client) *pipeline.Pipeline {
	return pipeline.New(client, mailer.NewMailer(cfg.SMTP), cfg)
}
