package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/prcomment/internal/domain/model"
	"github.com/ericfisherdev/prcomment/internal/markdown"
)

func (a *app) newPreviewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "preview comment_body",
		Short: "Render a comment body to sanitized HTML without posting it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), markdown.Render(model.NormalizeBody(args[0])))
			return nil
		},
	}
}
