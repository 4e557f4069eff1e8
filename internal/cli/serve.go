package cli

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"

	"github.com/previewops/preview-comment/internal/web"
)

// newServeCommand starts a local HTTP server that shows the rendered comment
// and the full banner pool for visual QA.
func newServeCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve a local HTML preview of the rendered comment",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := opts.Config

			router := mux.NewRouter()
			handler := web.NewHandler(cfg.PreviewURL, renderOptions(cfg))
			handler.RegisterRoutes(router)

			addr := fmt.Sprintf(":%d", cfg.Port)
			opts.Logger.Info("preview server listening", "addr", addr)
			return http.ListenAndServe(addr, router)
		},
	}
}
