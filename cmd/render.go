package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gabesw/confluence-readme-sync/internal/pagesync"
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Print the Confluence storage format of a markdown file",
		Long: `Render converts a markdown file exactly as sync would and prints the result.

Local images that exist are turned into attachment references, but nothing is
uploaded and no Confluence credentials are needed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			// Prepare never touches the client
			syncer := pagesync.New(nil, pagesync.Options{
				FilePath:         args[0],
				MaxImageWidth:    cfg.MaxImageWidth,
				WorkspaceRoot:    cfg.Workspace,
				StripFrontMatter: cfg.StripFrontMatter,
			})
			prepared, err := syncer.Prepare(args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), prepared.Markup)
			return nil
		},
	}

	return cmd
}
