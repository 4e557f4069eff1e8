package cli

import (
	"fmt"

	"github.com/previewops/preview-comment/internal/comment"
	"github.com/previewops/preview-comment/internal/config"
	"github.com/previewops/preview-comment/internal/github"
	"github.com/previewops/preview-comment/internal/markdown"
)

// renderOptions assembles the renderer inputs from the action configuration.
func renderOptions(cfg *config.Config) markdown.Options {
	return markdown.Options{
		Debug:             cfg.Debug,
		Seed:              cfg.Seed,
		FirstContribution: cfg.FirstContribution,
		Status:            cfg.Status,
		Branding:          branding(cfg),
	}
}

// branding maps the INPUT_BRANDING_* fields; all-empty branding collapses to
// nil so the renderer skips every optional section.
func branding(cfg *config.Config) *markdown.Branding {
	b := markdown.Branding{
		Title:        cfg.BrandingTitle,
		Message:      cfg.BrandingMessage,
		Author:       cfg.BrandingAuthor,
		ShareText:    cfg.BrandingShareText,
		ShareURL:     cfg.BrandingShareURL,
		DocsURL:      cfg.BrandingDocsURL,
		CommunityURL: cfg.BrandingCommunityURL,
		SocialHandle: cfg.BrandingSocialHandle,
		Footer:       cfg.BrandingFooter,
	}
	if b == (markdown.Branding{}) {
		return nil
	}
	return &b
}

// newStore wires the comment store for the configured repository and
// credentials.
func newStore(cfg *config.Config) (*github.Store, comment.RepoRef, error) {
	ref := comment.RepoRef{Owner: cfg.Owner(), Name: cfg.Name()}

	if err := cfg.RequireCredentials(); err != nil {
		return nil, ref, err
	}
	if cfg.Repository == "" {
		return nil, ref, fmt.Errorf("GITHUB_REPOSITORY is required")
	}
	if cfg.Number <= 0 {
		return nil, ref, fmt.Errorf("INPUT_NUMBER is required")
	}

	var tokens github.TokenSource
	if cfg.GitHubToken != "" {
		tokens = github.StaticToken(cfg.GitHubToken)
	} else {
		tokens = &github.AppAuth{
			AppID:      cfg.GitHubAppID,
			PrivateKey: cfg.GitHubPrivateKey,
			Repo:       cfg.Repository,
		}
	}

	return github.NewStore(tokens, ref), ref, nil
}
