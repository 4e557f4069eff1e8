package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/previewops/preview-comment/internal/markdown"
)

// newRenderCommand prints the rendered body to stdout without touching any
// remote store. Useful for local inspection and workflow dry runs.
func newRenderCommand(opts *Options) *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the comment body to stdout without posting it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			renderOpts := renderOptions(opts.Config)
			if debug {
				renderOpts.Debug = true
			}
			fmt.Fprintln(cmd.OutOrStdout(), markdown.Render(opts.Config.PreviewURL, renderOpts))
			return nil
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "Render every banner in the pool instead of the weighted pick")

	return cmd
}
