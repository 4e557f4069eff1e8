// Package cli defines the command-line interface for preview-comment.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/previewops/preview-comment/internal/config"
	"github.com/previewops/preview-comment/internal/logging"
)

// Options carries the loaded configuration and logger between commands.
type Options struct {
	Config *config.Config
	Logger *slog.Logger
}

// Execute builds the root command and runs it with the provided args.
func Execute(args []string) error {
	opts := &Options{
		Logger: logging.NewLogger(os.Stderr, logging.LevelInfo),
	}

	rootCmd := newRootCommand(opts)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

// newRootCommand constructs the root cobra.Command with global flags and
// subcommands.
func newRootCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview-comment",
		Short: "preview-comment posts and maintains a sticky deploy-preview comment on a pull request",
		Long: "preview-comment renders a branded Markdown status comment for a deploy preview " +
			"and keeps exactly one such comment per pull request up to date, identified by a " +
			"hidden marker pair in the comment body.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := logging.ParseLevel(cmd.Flag("log-level").Value.String())
			opts.Logger = logging.NewLogger(os.Stderr, level)

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			opts.Config = cfg
			return nil
		},
	}

	cmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newPostCommand(opts),
		newDeleteCommand(opts),
		newRenderCommand(opts),
		newServeCommand(opts),
	)

	return cmd
}
