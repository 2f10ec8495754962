package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gabesw/confluence-readme-sync/internal/confluence"
	"github.com/gabesw/confluence-readme-sync/internal/pagesync"
	"github.com/gabesw/confluence-readme-sync/internal/syncerr"
)

func newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Replace the marked region of the Confluence page with the markdown file",
		Example: `  # Run locally
  confluence-readme-sync sync --filepath README.md \
    --url https://example.atlassian.net/wiki/spaces/TEAM/pages/123/Readme \
    --username me@example.com --token "$CONFLUENCE_TOKEN" \
    --insert-start-text "README START" --insert-end-text "README END"

  # Preview the new page body without uploading anything
  confluence-readme-sync sync --dry-run --report sync-report.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				slog.Error("Invalid configuration", "error", err)
				return err
			}

			client := confluence.NewClient(cfg.Domain, cfg.Username, cfg.Token)
			syncer := pagesync.New(client, pagesync.Options{
				PageID:           cfg.PageID,
				FilePath:         cfg.FilePath,
				StartMarker:      cfg.StartMarker,
				EndMarker:        cfg.EndMarker,
				MaxImageWidth:    cfg.MaxImageWidth,
				WorkspaceRoot:    cfg.Workspace,
				StripFrontMatter: cfg.StripFrontMatter,
				DryRun:           cfg.DryRun,
				VersionMessage:   confluence.DefaultVersionMessage,
			})

			report, err := syncer.Run(cmd.Context())
			if cfg.Report != "" {
				if werr := report.WriteYAML(cfg.Report); werr != nil {
					slog.Error("Failed to write report", "path", cfg.Report, "error", werr)
				} else {
					slog.Info("Report saved", "path", cfg.Report)
				}
			}
			if err != nil {
				switch {
				case syncerr.IsConfig(err):
					slog.Error("Sync aborted, check the configured markers", "error", err)
				case syncerr.IsRemote(err):
					slog.Error("Sync failed on the Confluence side", "error", err)
				default:
					slog.Error("Sync failed", "error", err)
				}
				return err
			}

			if cfg.DryRun {
				fmt.Fprintln(cmd.OutOrStdout(), report.Body)
			}
			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "Convert and splice but do not upload images or update the page")
	cmd.Flags().String("report", "", "Write a YAML report of the run to this path")

	return cmd
}
