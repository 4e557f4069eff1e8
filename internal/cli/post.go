package cli

import (
	"github.com/spf13/cobra"

	"github.com/previewops/preview-comment/internal/comment"
	"github.com/previewops/preview-comment/internal/markdown"
)

// newPostCommand renders the comment body and reconciles it onto the PR.
func newPostCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "post",
		Short: "Render the status comment and create or update the sticky comment on the PR",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := opts.Config
			logger := opts.Logger

			store, ref, err := newStore(cfg)
			if err != nil {
				return err
			}

			body := markdown.Render(cfg.PreviewURL, renderOptions(cfg))

			reconciler := comment.New(store, logger)
			posted, err := reconciler.Sync(cmd.Context(), ref, cfg.Number, body, comment.SyncOptions{
				Header:      cfg.Header,
				Prefix:      cfg.Prefix,
				Author:      cfg.Author,
				Append:      cfg.Append,
				HideDetails: cfg.HideDetails,
				Recreate:    cfg.Recreate,
			})
			if err != nil {
				return err
			}

			if posted != nil {
				logger.Info("sticky comment reconciled",
					"repo", ref.String(), "number", cfg.Number, "id", posted.ID)
			}
			return nil
		},
	}
}
