package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gabesw/confluence-readme-sync/internal/confluence"
)

func newPageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "page",
		Short: "Print the configured Confluence page as JSON",
		Long: `Page fetches the page named by --url (or INPUT_URL) and prints its id, status,
title, version and storage format body. Useful for finding marker text.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := cfg.ValidateConnection(); err != nil {
				return err
			}

			client := confluence.NewClient(cfg.Domain, cfg.Username, cfg.Token)
			page, err := client.GetPage(cmd.Context(), cfg.PageID)
			if err != nil {
				return fmt.Errorf("failed to get page: %w", err)
			}

			data, err := json.MarshalIndent(page, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal page: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	return cmd
}
