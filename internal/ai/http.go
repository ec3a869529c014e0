package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/commitwiz/commit-wizard/internal/changes"
	"github.com/commitwiz/commit-wizard/internal/config"
	"github.com/commitwiz/commit-wizard/internal/logging"
)

// ChatProvider talks to an OpenAI compatible chat completions endpoint.
type ChatProvider struct {
	name        string
	url         string
	model       string
	token       string
	tokensField string
	temperature float64
	maxTokens   int
	maxDiff     int
	client      *http.Client
}

func newGitHubProvider(cfg config.AIConfig) (Provider, error) {
	token := githubToken()
	if token == "" {
		return nil, errors.WithHint(
			errors.Wrap(ErrNoToken, "GitHub Models"),
			"set GITHUB_TOKEN or GH_TOKEN; create one at https://github.com/settings/tokens",
		)
	}
	model := envNonEmpty("GITHUB_COPILOT_MODEL")
	if model == "" {
		model = cfg.GitHubModel
	}
	return NewChatProvider("GitHub Models", cfg.GitHubURL, model, token, "max_tokens", cfg), nil
}

func newOpenAIProvider(cfg config.AIConfig) (Provider, error) {
	token := openAIToken()
	if token == "" {
		return nil, errors.WithHint(
			errors.Wrap(ErrNoToken, "OpenAI"),
			"set OPENAI_API_KEY; create one at https://platform.openai.com/api-keys",
		)
	}
	model := envNonEmpty("OPENAI_MODEL")
	if model == "" {
		model = cfg.OpenAIModel
	}
	return NewChatProvider("OpenAI", cfg.OpenAIURL, model, token, "max_completion_tokens", cfg), nil
}

// NewChatProvider builds a provider for url. tokensField names the request
// field carrying the completion limit, which differs between APIs.
func NewChatProvider(name, url, model, token, tokensField string, cfg config.AIConfig) *ChatProvider {
	return &ChatProvider{
		name:        name,
		url:         url,
		model:       model,
		token:       token,
		tokensField: tokensField,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		maxDiff:     cfg.MaxDiffChars,
		client:      &http.Client{Timeout: cfg.Timeout()},
	}
}

func (p *ChatProvider) Name() string  { return p.name }
func (p *ChatProvider) Model() string { return p.model }

func (p *ChatProvider) GenerateCommitMessage(ctx context.Context, group *changes.ChangeGroup, files []changes.ChangedFile, diff string) (string, string, error) {
	reply, err := p.chat(ctx, systemPrompt, BuildPrompt(group, files, diff, p.maxDiff))
	if err != nil {
		return "", "", err
	}
	d, b := ParseCommitMessage(reply)
	return d, b, nil
}

func (p *ChatProvider) Complete(ctx context.Context, prompt string) (string, error) {
	return p.chat(ctx, "", prompt)
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (p *ChatProvider) payload(system, prompt string) map[string]any {
	var messages []chatMessage
	if system != "" {
		messages = append(messages, chatMessage{Role: "system", Content: system})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})
	return map[string]any{
		"model":       p.model,
		"messages":    messages,
		"temperature": p.temperature,
		p.tokensField: p.maxTokens,
	}
}

func (p *ChatProvider) chat(ctx context.Context, system, prompt string) (string, error) {
	body, err := json.Marshal(p.payload(system, prompt))
	if err != nil {
		return "", errors.Wrap(err, "encoding request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "creating request")
	}
	req.Header.Set("Authorization", "Bearer "+p.token)
	req.Header.Set("Content-Type", "application/json")

	logging.LogAPIRequest(p.name, p.model, len(prompt))
	resp, err := p.client.Do(req)
	if err != nil {
		logging.LogAPIResponse(p.name, false, 0)
		return "", errors.Wrapf(err, "failed to send request to %s API", p.name)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		logging.LogAPIResponse(p.name, false, 0)
		return "", errors.Wrapf(err, "reading %s response", p.name)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logging.LogAPIResponse(p.name, false, 0)
		return "", errors.Newf("%s API returned error %d: %s", p.name, resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		logging.LogAPIResponse(p.name, false, 0)
		return "", errors.Wrapf(err, "failed to parse %s API response", p.name)
	}
	if len(parsed.Choices) == 0 {
		logging.LogAPIResponse(p.name, false, 0)
		return "", errors.Newf("no response from %s API", p.name)
	}
	content := parsed.Choices[0].Message.Content
	logging.LogAPIResponse(p.name, true, len(content))
	if ce := zap.L().Check(zap.DebugLevel, "ai reply"); ce != nil {
		ce.Write(zap.String("provider", p.name), zap.String("content", content))
	}
	return content, nil
}
