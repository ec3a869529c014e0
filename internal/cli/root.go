// Package cli is the commit-wizard command line: it collects the changed
// files, groups them and hands the groups to the commit screen.
package cli

import (
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Version is set at build time with -ldflags.
var Version = "dev"

const (
	UntrackedAsk  = "ask"
	UntrackedAll  = "all"
	UntrackedNone = "none"
)

type options struct {
	repo      string
	noAI      bool
	untracked string
	log       bool
	logLocal  bool
	verbose   bool
}

func (o options) validate() error {
	switch strings.ToLower(o.untracked) {
	case UntrackedAsk, UntrackedAll, UntrackedNone:
		return nil
	}
	return errors.WithHint(
		errors.Newf("invalid --untracked value %q", o.untracked),
		"use one of: ask, all, none",
	)
}

// streams are the terminal handles the command talks to before the screen
// takes over.
type streams struct {
	in        io.Reader
	out       io.Writer
	err       io.Writer
	stdinTTY  bool
	stderrTTY bool
}

func stdStreams() streams {
	return streams{
		in:        os.Stdin,
		out:       os.Stdout,
		err:       os.Stderr,
		stdinTTY:  term.IsTerminal(int(os.Stdin.Fd())),
		stderrTTY: term.IsTerminal(int(os.Stderr.Fd())),
	}
}

func NewRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "commit-wizard",
		Short: "Interactive tool for creating conventional commits",
		Long: "Commit Wizard groups your changes by type and scope, proposes a\n" +
			"conventional commit message for each group and lets you review,\n" +
			"edit and commit them one by one.",
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			return run(cmd.Context(), opts, stdStreams(), runScreen)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.repo, "repo", "r", ".", "Path to the git repository")
	flags.BoolVar(&opts.noAI, "no-ai", false, "Disable AI and use heuristic grouping")
	flags.StringVar(&opts.untracked, "untracked", UntrackedAsk, "Untracked files to include: ask, all or none")
	flags.BoolVar(&opts.log, "log", false, "Enable logging to file")
	flags.BoolVar(&opts.logLocal, "log-local", false, "Write the log to the current directory")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose output (also enables debug logging)")
	return cmd
}

func Execute() error {
	return NewRootCmd().Execute()
}
