package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/prcomment/internal/application"
	"github.com/ericfisherdev/prcomment/internal/diffhunk"
)

func (a *app) newLocateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "locate [diff-file]",
		Short: "Print start_line line start_side side for a diff hunk",
		Long: "Read a unified diff from diff-file or stdin and print the coordinates of its\n" +
			"last hunk in the order the post command expects them.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var src io.Reader = a.stdio.In
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return application.NewError(application.ErrorKindArgument, err)
				}
				defer f.Close()
				src = f
			}

			diff, err := io.ReadAll(src)
			if err != nil {
				return application.NewError(application.ErrorKindArgument, fmt.Errorf("reading diff: %w", err))
			}

			r, err := diffhunk.Locate(string(diff))
			if err != nil {
				return application.NewError(application.ErrorKindArgument, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d %d %s %s\n", r.StartLine, r.Line, r.StartSide, r.Side)
			return nil
		},
	}
}
