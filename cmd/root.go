package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/gabesw/confluence-readme-sync/internal/config"
)

func NewRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "confluence-readme-sync",
		Short: "Sync a markdown file into a Confluence page",
		Long: `confluence-readme-sync converts a markdown file to Confluence storage format
and replaces the part of a Confluence page between two marker strings with it.

Local images are uploaded as page attachments. Every parameter can be given as a
flag or as an INPUT_<NAME> environment variable, which is how GitHub passes
action inputs (INPUT_FILEPATH, INPUT_URL, INPUT_INSERT_START_TEXT, ...).`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
			setupLogging(verbose)
		},
	}

	flags := cmd.PersistentFlags()
	flags.BoolVar(&verbose, "verbose", false, "Verbose logging")
	flags.String("config", "", "Optional config file (yaml, json or toml)")
	flags.String("filepath", "", "Markdown file to sync")
	flags.String("url", "", "URL of the Confluence page")
	flags.String("username", "", "Confluence username")
	flags.String("token", "", "Confluence API token")
	flags.String("insert-start-text", "", "Text in the page after which the markdown is inserted")
	flags.String("insert-end-text", "", "Text in the page before which the inserted markdown ends")
	flags.String("max-image-width", "", "Maximum displayed image width in pixels")
	flags.Bool("strip-front-matter", false, "Remove a leading front matter block before converting")
	flags.String("workspace", "", "Repository root used to resolve image paths (defaults to GITHUB_WORKSPACE)")

	cmd.AddCommand(newSyncCmd())
	cmd.AddCommand(newRenderCmd())
	cmd.AddCommand(newPageCmd())

	return cmd
}

// setupLogging logs to stderr so render and page output stays clean on stdout
func setupLogging(verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := config.New()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return nil, err
	}
	configFile, _ := cmd.Flags().GetString("config")
	return config.Load(v, configFile)
}
