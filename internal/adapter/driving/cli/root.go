// Package cli implements the prcomment command line using cobra.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/prcomment/internal/application"
	"github.com/ericfisherdev/prcomment/internal/config"
)

const version = "1.0.0"

// Process exit codes.
const (
	ExitSuccess   = 0
	ExitArgument  = 1
	ExitConfig    = 2
	ExitAPI       = 3
	ExitTransport = 4
)

// IO bundles the streams the commands read from and write to.
type IO struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// app carries per-invocation state shared by the commands.
type app struct {
	stdio  IO
	level  *slog.LevelVar
	dedup  bool
	dryRun bool
}

// Execute runs the command line with args (excluding the program name) and
// returns the process exit code.
func Execute(ctx context.Context, args []string, stdio IO) int {
	a := &app{stdio: stdio, level: new(slog.LevelVar)}
	slog.SetDefault(slog.New(slog.NewTextHandler(stdio.Err, &slog.HandlerOptions{Level: a.level})))

	root := a.newRootCommand()
	// A non-nil slice keeps cobra from falling back to os.Args.
	root.SetArgs(append([]string{}, normalizeArgs(args)...))
	root.SetIn(stdio.In)
	root.SetOut(stdio.Out)
	root.SetErr(stdio.Err)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stdio.Err, "Error: %v\n", err)
		return ExitCode(err)
	}
	return ExitSuccess
}

// ExitCode maps an error returned by a command to a process exit code.
// Errors that are not a *application.PostError come from cobra's own flag and
// argument handling and are treated as usage errors.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var postErr *application.PostError
	if !errors.As(err, &postErr) {
		return ExitArgument
	}

	switch postErr.Kind {
	case application.ErrorKindConfig:
		return ExitConfig
	case application.ErrorKindAPI:
		return ExitAPI
	case application.ErrorKindTransport:
		return ExitTransport
	default:
		return ExitArgument
	}
}

func (a *app) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "prcomment [flags] " + postUsage,
		Short: "Post a review comment to a GitHub pull request",
		Long: "prcomment posts a single line or range review comment to the pull request\n" +
			"named by GITHUB_REPOSITORY and GITHUB_EVENT_NUMBER. Invoked without a\n" +
			"subcommand it behaves like \"prcomment post\".",
		Args:          postArgs,
		RunE:          a.runPost,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	a.addPostFlags(root)

	root.AddCommand(a.newPostCommand())
	root.AddCommand(a.newLocateCommand())
	root.AddCommand(a.newPreviewCommand())
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print prcomment version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "prcomment version %s\n", version)
		},
	})

	return root
}

// loadConfig reads the environment and applies the configured log level.
// Only commands that talk to GitHub call it.
func (a *app) loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, application.NewError(application.ErrorKindConfig, err)
	}
	a.level.Set(cfg.LogLevel)
	return cfg, nil
}
