package ai

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commitwiz/commit-wizard/internal/changes"
	"github.com/commitwiz/commit-wizard/internal/config"
)

type fakeProvider struct {
	calls int
	desc  string
	body  string
	err   error
	reply string
}

func (f *fakeProvider) Name() string  { return "fake" }
func (f *fakeProvider) Model() string { return "fake-1" }

func (f *fakeProvider) GenerateCommitMessage(context.Context, *changes.ChangeGroup, []changes.ChangedFile, string) (string, string, error) {
	f.calls++
	return f.desc, f.body, f.err
}

func (f *fakeProvider) Complete(context.Context, string) (string, error) {
	f.calls++
	return f.reply, f.err
}

func clearAIEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"GITHUB_TOKEN", "GH_TOKEN", "OPENAI_API_KEY", "GITHUB_COPILOT_MODEL", "OPENAI_MODEL"} {
		t.Setenv(k, "")
	}
}

func aiConfig() config.AIConfig {
	cfg := config.Current.AI
	cfg.CopilotCommand = "commit-wizard-no-such-copilot"
	cfg.LoadDotenv = false
	return cfg
}

func TestNew_PrefersGitHubToken(t *testing.T) {
	clearAIEnv(t)
	t.Setenv("GH_TOKEN", "gh")
	t.Setenv("OPENAI_API_KEY", "sk")
	t.Setenv("GITHUB_COPILOT_MODEL", "gpt-4o")

	c, err := New(aiConfig(), "")

	require.NoError(t, err)
	assert.Equal(t, "GitHub Models", c.Provider())
	assert.Equal(t, "gpt-4o", c.provider.Model())
}

func TestNew_FallsBackToOpenAI(t *testing.T) {
	clearAIEnv(t)
	t.Setenv("GITHUB_TOKEN", "   ")
	t.Setenv("OPENAI_API_KEY", "sk")

	c, err := New(aiConfig(), "")

	require.NoError(t, err)
	assert.Equal(t, "OpenAI", c.Provider())
	assert.Equal(t, "gpt-4.1-2025-04-14", c.provider.Model())
}

func TestNew_FallsBackToCopilot(t *testing.T) {
	clearAIEnv(t)
	cfg := aiConfig()
	cfg.CopilotCommand = fakeCopilot(t, okScript)

	c, err := New(cfg, "")

	require.NoError(t, err)
	assert.Equal(t, "Copilot CLI", c.Provider())
}

func TestNew_NothingAvailable(t *testing.T) {
	clearAIEnv(t)

	_, err := New(aiConfig(), "")

	assert.True(t, errors.Is(err, ErrAIUnavailable))
	assert.NotEmpty(t, errors.GetAllHints(err))
}

func TestNew_ExplicitProviderWithoutToken(t *testing.T) {
	clearAIEnv(t)
	cfg := aiConfig()

	cfg.Provider = "github"
	_, err := New(cfg, "")
	assert.True(t, errors.Is(err, ErrNoToken))

	cfg.Provider = "openai"
	_, err = New(cfg, "")
	assert.True(t, errors.Is(err, ErrNoToken))

	cfg.Provider = "copilot"
	_, err = New(cfg, "")
	assert.True(t, errors.Is(err, ErrAIUnavailable))

	cfg.Provider = "bard"
	_, err = New(cfg, "")
	assert.ErrorContains(t, err, `unknown AI provider "bard"`)
}

func TestNew_LoadsDotenvWithoutOverriding(t *testing.T) {
	clearAIEnv(t)
	require.NoError(t, os.Unsetenv("OPENAI_API_KEY"))
	t.Setenv("OPENAI_MODEL", "from-env")
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".env"), []byte("OPENAI_API_KEY=from-dotenv\nOPENAI_MODEL=from-file\n"), 0o600))
	cfg := aiConfig()
	cfg.LoadDotenv = true

	c, err := New(cfg, root)

	require.NoError(t, err)
	assert.Equal(t, "OpenAI", c.Provider())
	assert.Equal(t, "from-dotenv", os.Getenv("OPENAI_API_KEY"))
	assert.Equal(t, "from-env", c.provider.Model())
}

func TestClient_GenerateCommitMessage(t *testing.T) {
	p := &fakeProvider{desc: "add login", body: "- check token"}
	c := NewClient(p, 0)
	group, files := sampleGroup()

	d, b, err := c.GenerateCommitMessage(context.Background(), group, files, "")

	require.NoError(t, err)
	assert.Equal(t, "add login", d)
	assert.Equal(t, "- check token", b)
}

func TestClient_EmptyDescriptionIsAnError(t *testing.T) {
	c := NewClient(&fakeProvider{}, 0)
	group, files := sampleGroup()

	_, _, err := c.GenerateCommitMessage(context.Background(), group, files, "")

	assert.ErrorContains(t, err, "empty description")
}

func TestClient_BreakerOpensAfterRepeatedFailures(t *testing.T) {
	p := &fakeProvider{err: errors.New("503")}
	c := NewClient(p, 0)

	for range 3 {
		_, err := c.Complete(context.Background(), "x")
		assert.ErrorContains(t, err, "503")
	}
	_, err := c.Complete(context.Background(), "x")

	assert.True(t, errors.Is(err, gobreaker.ErrOpenState))
	assert.Contains(t, err.Error(), "fake is temporarily disabled")
	assert.Equal(t, 3, p.calls)
}
