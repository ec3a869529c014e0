package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/commitwiz/commit-wizard/internal/ai"
	"github.com/commitwiz/commit-wizard/internal/changes"
	"github.com/commitwiz/commit-wizard/internal/config"
	"github.com/commitwiz/commit-wizard/internal/inference"
	"github.com/commitwiz/commit-wizard/internal/logging"
	"github.com/commitwiz/commit-wizard/internal/ui"
	"github.com/commitwiz/commit-wizard/internal/ui/state"
	"github.com/commitwiz/commit-wizard/internal/vcs"
)

const totalSteps = 3

var ErrNoChanges = errors.New("no changes found in repository")

type screenFunc func(s *state.AppState, repo ui.Repository, generator ui.Generator, opts ui.Options) error

func runScreen(s *state.AppState, repo ui.Repository, generator ui.Generator, opts ui.Options) error {
	return ui.Run(s, repo, generator, opts)
}

// diag prints progress details to stderr in verbose mode.
type diag struct {
	w       io.Writer
	verbose bool
}

func (d diag) printf(format string, args ...any) {
	if d.verbose {
		fmt.Fprintf(d.w, format+"\n", args...)
	}
}

func run(ctx context.Context, opts options, std streams, screen screenFunc) error {
	if err := config.Load(); err != nil {
		return err
	}

	logPath, closeLog, err := logging.Init(logging.Options{
		Enabled: opts.log,
		Local:   opts.logLocal,
		Verbose: opts.verbose,
	})
	if err != nil {
		return err
	}
	defer closeLog()

	d := diag{w: std.err, verbose: opts.verbose}
	if logPath != "" {
		d.printf("Logging to: %s", logPath)
	}
	zap.L().Info("commit-wizard starting", zap.String("version", Version))
	d.printf("Repository path: %s", opts.repo)

	repo, err := vcs.Open(opts.repo)
	if err != nil {
		logging.LogError("failed to open repository", err)
		return err
	}

	ticket := detectTicket(repo, d)

	sp := StartSpinner(std.err, std.stderrTTY, 1, totalSteps, "Collecting changed files...")
	files, err := repo.ChangedFiles(false)
	if err != nil {
		sp.Stop()
		return errors.Wrap(err, "collecting changed files")
	}
	untracked, err := repo.UntrackedFiles()
	sp.Stop()
	if err != nil {
		return errors.Wrap(err, "collecting untracked files")
	}
	zap.L().Info("collected changed files", zap.Int("tracked", len(files)), zap.Int("untracked", len(untracked)))

	selected, err := chooseUntracked(opts.untracked, std, untracked)
	if err != nil {
		return err
	}
	files = append(files, selected...)
	if len(files) == 0 {
		zap.L().Warn("no changes found")
		return errors.WithHint(ErrNoChanges, "modify some files or create new ones to get started")
	}
	d.printf("Found %d changed file(s)", len(files))

	sp = StartSpinner(std.err, std.stderrTTY, 2, totalSteps, "Checking AI availability...")
	client := newAIClient(opts, repo.Root(), d)
	sp.Stop()

	sp = StartSpinner(std.err, std.stderrTTY, 3, totalSteps, "Creating commit groups...")
	var completer ai.Completer
	var diffs map[string]string
	if client != nil {
		completer = client
		diffs = repo.FileDiffs(paths(files))
	}
	groups, aiUsed, err := buildGroups(ctx, completer, files, ticket, diffs, d)
	sp.Stop()
	if err != nil {
		return err
	}
	logging.LogGroupingResult(len(files), len(groups), aiUsed)
	d.printf("Final: %d commit group(s)", len(groups))

	s, err := state.New(groups)
	if err != nil {
		return err
	}

	var generator ui.Generator
	if client != nil {
		generator = client
	}
	return screen(s, repo, generator, ui.Options{AIEnabled: client != nil})
}

func detectTicket(repo *vcs.Repository, d diag) string {
	branch, err := repo.CurrentBranch()
	if err != nil {
		zap.L().Warn("cannot read current branch", zap.Error(err))
		d.printf("Cannot read current branch: %v", err)
		return ""
	}
	zap.L().Info("current branch", zap.String("branch", branch))
	d.printf("Current branch: %s", branch)

	ticket := vcs.ExtractTicket(branch)
	if ticket == "" {
		zap.L().Debug("no ticket in branch name")
		d.printf("No ticket detected in branch name")
		return ""
	}
	zap.L().Info("detected ticket", zap.String("ticket", ticket))
	d.printf("Detected ticket: %s", ticket)
	return ticket
}

// chooseUntracked applies the --untracked mode. Asking needs an interactive
// stdin; without one every untracked file is included.
func chooseUntracked(mode string, std streams, untracked []changes.ChangedFile) ([]changes.ChangedFile, error) {
	if len(untracked) == 0 {
		return nil, nil
	}
	switch strings.ToLower(mode) {
	case UntrackedNone:
		zap.L().Info("untracked files excluded", zap.Int("count", len(untracked)))
		return nil, nil
	case UntrackedAll:
		return untracked, nil
	}
	if !std.stdinTTY {
		zap.L().Info("stdin is not a terminal, including all untracked files")
		return untracked, nil
	}
	selected, err := SelectUntracked(std.in, std.out, untracked)
	if err != nil {
		return nil, err
	}
	zap.L().Info("untracked files selected", zap.Int("selected", len(selected)), zap.Int("found", len(untracked)))
	return selected, nil
}

func newAIClient(opts options, repoRoot string, d diag) *ai.Client {
	if opts.noAI {
		zap.L().Info("AI disabled by flag")
		d.printf("AI mode disabled by --no-ai flag, using heuristic grouping")
		return nil
	}
	client, err := ai.New(config.Current.AI, repoRoot)
	if err != nil {
		zap.L().Info("AI unavailable", zap.Error(err))
		d.printf("AI not available: %v", err)
		if hint := errors.FlattenHints(err); hint != "" {
			d.printf("  %s", hint)
		}
		d.printf("Falling back to heuristic grouping")
		return nil
	}
	d.printf("AI mode enabled, using %s for grouping and messages", client.Provider())
	return client
}

// buildGroups asks the AI for a grouping when a completer is given and falls
// back to the path heuristics otherwise or when the AI fails.
func buildGroups(ctx context.Context, completer ai.Completer, files []changes.ChangedFile, ticket string, diffs map[string]string, d diag) ([]*changes.ChangeGroup, bool, error) {
	if completer != nil {
		groups, err := ai.GroupFiles(ctx, completer, files, ticket, diffs, config.Current.AI.MaxDiffChars)
		if err == nil {
			d.printf("AI created %d commit group(s)", len(groups))
			return groups, true, nil
		}
		logging.LogError("AI grouping failed", err)
		d.printf("AI grouping failed: %v", err)
		d.printf("Falling back to heuristic grouping")
	}
	groups, err := inference.BuildGroups(files, ticket)
	if err != nil {
		return nil, false, err
	}
	return groups, false, nil
}

func paths(files []changes.ChangedFile) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Path)
	}
	return out
}
