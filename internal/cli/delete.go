package cli

import (
	"github.com/spf13/cobra"

	"github.com/previewops/preview-comment/internal/comment"
)

// newDeleteCommand removes (or minimizes) the sticky comment.
func newDeleteCommand(opts *Options) *cobra.Command {
	var (
		minimize   bool
		classifier string
	)

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the sticky comment from the PR, or minimize it with --minimize",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := opts.Config
			logger := opts.Logger

			store, ref, err := newStore(cfg)
			if err != nil {
				return err
			}

			reconciler := comment.New(store, logger)
			previous, err := reconciler.FindPrevious(cmd.Context(), ref, cfg.Number, cfg.Header, cfg.Author, cfg.Prefix)
			if err != nil {
				return err
			}
			if previous == nil {
				logger.Info("no sticky comment found, nothing to do",
					"repo", ref.String(), "number", cfg.Number)
				return nil
			}

			if minimize {
				if err := reconciler.Minimize(cmd.Context(), previous.NodeID, classifier); err != nil {
					return err
				}
				logger.Info("sticky comment minimized", "id", previous.ID, "classifier", classifier)
				return nil
			}

			if err := reconciler.Delete(cmd.Context(), previous.ID); err != nil {
				return err
			}
			logger.Info("sticky comment deleted", "id", previous.ID)
			return nil
		},
	}

	cmd.Flags().BoolVar(&minimize, "minimize", false, "Minimize the comment instead of deleting it")
	cmd.Flags().StringVar(&classifier, "classifier", comment.ClassifierOutdated, "Minimize classifier (OUTDATED, RESOLVED, ...)")

	return cmd
}
