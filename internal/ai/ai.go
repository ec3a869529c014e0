// Package ai generates commit descriptions and file groupings through
// GitHub Models, OpenAI or the GitHub Copilot CLI.
package ai

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/commitwiz/commit-wizard/internal/changes"
	"github.com/commitwiz/commit-wizard/internal/config"
)

var (
	ErrNoToken       = errors.New("no API token found")
	ErrAIUnavailable = errors.New("no AI provider available")
)

// Provider is one AI backend.
type Provider interface {
	Name() string
	Model() string
	// GenerateCommitMessage returns a description and an optional body for
	// the group.
	GenerateCommitMessage(ctx context.Context, group *changes.ChangeGroup, files []changes.ChangedFile, diff string) (string, string, error)
	// Complete sends a raw prompt and returns the reply text.
	Complete(ctx context.Context, prompt string) (string, error)
}

// Client guards a Provider with a per-call timeout and a circuit breaker so
// a failing backend stops being contacted for a while.
type Client struct {
	provider Provider
	breaker  *gobreaker.CircuitBreaker
	timeout  time.Duration
}

func NewClient(p Provider, timeout time.Duration) *Client {
	settings := gobreaker.Settings{
		Name:        p.Name(),
		MaxRequests: 1,
		Timeout:     time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			zap.L().Warn("ai circuit breaker changed state",
				zap.String("provider", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}
	return &Client{
		provider: p,
		breaker:  gobreaker.NewCircuitBreaker(settings),
		timeout:  timeout,
	}
}

func (c *Client) Provider() string {
	return c.provider.Name()
}

func (c *Client) GenerateCommitMessage(ctx context.Context, group *changes.ChangeGroup, files []changes.ChangedFile, diff string) (string, string, error) {
	type result struct{ description, body string }
	out, err := c.execute(ctx, func(ctx context.Context) (any, error) {
		d, b, err := c.provider.GenerateCommitMessage(ctx, group, files, diff)
		if err != nil {
			return nil, err
		}
		if d == "" {
			return nil, errors.Newf("%s returned an empty description", c.provider.Name())
		}
		return result{d, b}, nil
	})
	if err != nil {
		return "", "", err
	}
	r := out.(result)
	return r.description, r.body, nil
}

func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	out, err := c.execute(ctx, func(ctx context.Context) (any, error) {
		return c.provider.Complete(ctx, prompt)
	})
	if err != nil {
		return "", err
	}
	return out.(string), nil
}

func (c *Client) execute(ctx context.Context, fn func(context.Context) (any, error)) (any, error) {
	out, err := c.breaker.Execute(func() (any, error) {
		if c.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, c.timeout)
			defer cancel()
		}
		return fn(ctx)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, errors.WithHint(
			errors.Wrapf(err, "%s is temporarily disabled", c.provider.Name()),
			"the last requests failed; wait a minute before trying again",
		)
	}
	return out, err
}

// New picks a provider according to cfg.Provider. With "auto" a GitHub
// token wins over an OpenAI key, and the Copilot CLI is used when neither
// is set. A .env file in repoRoot is read first when enabled; it never
// overrides variables already present.
func New(cfg config.AIConfig, repoRoot string) (*Client, error) {
	if cfg.LoadDotenv && repoRoot != "" {
		loadDotenv(filepath.Join(repoRoot, ".env"))
	}

	var (
		p   Provider
		err error
	)
	switch strings.ToLower(cfg.Provider) {
	case "", "auto":
		p, err = autoProvider(cfg)
	case "github":
		p, err = newGitHubProvider(cfg)
	case "openai":
		p, err = newOpenAIProvider(cfg)
	case "copilot":
		if !Available(cfg.CopilotCommand) {
			err = errors.WithHint(
				errors.Wrapf(ErrAIUnavailable, "%s not found", cfg.CopilotCommand),
				"install it with: npm install -g @github/copilot",
			)
			break
		}
		p = NewCopilotProvider(cfg)
	default:
		err = errors.Newf("unknown AI provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	zap.L().Info("ai provider selected", zap.String("provider", p.Name()), zap.String("model", p.Model()))
	return NewClient(p, cfg.Timeout()), nil
}

func autoProvider(cfg config.AIConfig) (Provider, error) {
	if githubToken() != "" {
		return newGitHubProvider(cfg)
	}
	if openAIToken() != "" {
		return newOpenAIProvider(cfg)
	}
	if Available(cfg.CopilotCommand) {
		return NewCopilotProvider(cfg), nil
	}
	return nil, errors.WithHint(ErrAIUnavailable,
		"set GITHUB_TOKEN or GH_TOKEN (GitHub Models), OPENAI_API_KEY (OpenAI), or install the GitHub Copilot CLI")
}

func loadDotenv(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := godotenv.Load(path); err != nil {
		zap.L().Warn("failed to load .env", zap.String("path", path), zap.Error(err))
		return
	}
	zap.L().Debug("loaded .env", zap.String("path", path))
}

func envNonEmpty(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}

func githubToken() string {
	return envNonEmpty("GITHUB_TOKEN", "GH_TOKEN")
}

func openAIToken() string {
	return envNonEmpty("OPENAI_API_KEY")
}
