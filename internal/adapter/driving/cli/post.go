package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	githubadapter "github.com/ericfisherdev/prcomment/internal/adapter/driven/github"
	"github.com/ericfisherdev/prcomment/internal/application"
	"github.com/ericfisherdev/prcomment/internal/domain/model"
	"github.com/ericfisherdev/prcomment/internal/domain/port/driven"
)

const postUsage = "comment_body commit_id file_path start_line line start_side side"

var errInsufficientArgs = errors.New("insufficient arguments. Expected: comment_body, commit_id, file_path, start_line, line, start_side, side")

func (a *app) newPostCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "post [flags] " + postUsage,
		Short: "Post one review comment",
		Long: "Post one review comment. When start_line equals line a single-line comment\n" +
			"is created; otherwise the comment spans start_line..line. Literal \\n in the\n" +
			"body becomes a newline and \\t+ becomes four spaces.",
		Args: postArgs,
		RunE: a.runPost,
	}
	a.addPostFlags(cmd)
	return cmd
}

func (a *app) addPostFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&a.dedup, "dedup", false, "skip posting when an identical comment already exists (overrides PRCOMMENT_DEDUPLICATE)")
	cmd.Flags().BoolVar(&a.dryRun, "dry-run", false, "build the comment but do not post it")
}

// postArgs rejects invocations with fewer than seven positional arguments
// before any configuration is loaded or network call is made.
func postArgs(_ *cobra.Command, args []string) error {
	if len(args) < 7 {
		return application.NewError(application.ErrorKindArgument, errInsufficientArgs)
	}
	return nil
}

func (a *app) runPost(cmd *cobra.Command, args []string) error {
	req, err := parseCommentArgs(args)
	if err != nil {
		return application.NewError(application.ErrorKindArgument, err)
	}
	if len(args) > 7 {
		slog.Warn("ignoring extra arguments", "extra", args[7:])
	}

	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.RequireGitHub(); err != nil {
		return application.NewError(application.ErrorKindConfig, err)
	}

	client, err := githubadapter.NewClient(cfg.GitHubToken, cfg.APIURL)
	if err != nil {
		return application.NewError(application.ErrorKindConfig, err)
	}

	dedup := cfg.Deduplicate
	if cmd.Flags().Changed("dedup") {
		dedup = a.dedup
	}

	poster := application.NewCommentPoster(client,
		driven.PullRequestRef{Owner: cfg.Owner, Repo: cfg.Repo, Number: cfg.PRNumber},
		application.PostOptions{Deduplicate: dedup, DryRun: a.dryRun},
	)

	outcome, err := poster.Post(cmd.Context(), req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case outcome.Created:
		fmt.Fprintf(out, "comment %d created %s\n", outcome.Comment.ID, outcome.Comment.HTMLURL)
	case outcome.Skipped:
		fmt.Fprintln(out, "comment already exists, skipping")
	case outcome.DryRun:
		fmt.Fprintln(out, "dry run: comment not posted")
	}
	return nil
}

// parseCommentArgs converts the seven positional arguments into a
// CommentRequest. Line numbers and sides are parsed once here so the rest of
// the program compares typed values.
func parseCommentArgs(args []string) (model.CommentRequest, error) {
	startLine, err := parseLine("start_line", args[3])
	if err != nil {
		return model.CommentRequest{}, err
	}
	line, err := parseLine("line", args[4])
	if err != nil {
		return model.CommentRequest{}, err
	}
	startSide, err := model.ParseSide(args[5])
	if err != nil {
		return model.CommentRequest{}, fmt.Errorf("start_side: %w", err)
	}
	side, err := model.ParseSide(args[6])
	if err != nil {
		return model.CommentRequest{}, fmt.Errorf("side: %w", err)
	}

	return model.CommentRequest{
		Body:      args[0],
		CommitID:  args[1],
		Path:      args[2],
		StartLine: startLine,
		Line:      line,
		StartSide: startSide,
		Side:      side,
	}, nil
}

func parseLine(name, raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", name, raw)
	}
	return n, nil
}
