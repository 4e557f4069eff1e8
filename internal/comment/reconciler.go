// Package comment manages the single sticky status comment on a pull
// request: it locates the marker-identified comment, composes bodies in
// replace or append mode, and keeps updates idempotent via content equality.
package comment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Comment is the store's view of a PR comment.
type Comment struct {
	ID          int64
	NodeID      string
	Author      string
	Body        string
	IsMinimized bool
}

// Page is one slice of a paginated comment listing.
type Page struct {
	Comments    []Comment
	EndCursor   string
	HasNextPage bool
}

// RepoRef identifies a repository.
type RepoRef struct {
	Owner string
	Name  string
}

func (r RepoRef) String() string { return r.Owner + "/" + r.Name }

// Store is the remote comment store the reconciler drives. Implementations
// own transport concerns (auth, timeouts); errors propagate unwrapped policy
// decisions to the caller.
type Store interface {
	ListComments(ctx context.Context, ref RepoRef, number int, cursor string) (*Page, error)
	Viewer(ctx context.Context) (string, error)
	CreateComment(ctx context.Context, ref RepoRef, number int, body string) (*Comment, error)
	UpdateComment(ctx context.Context, id int64, body string) error
	DeleteComment(ctx context.Context, id int64) error
	MinimizeComment(ctx context.Context, nodeID, classifier string) error
}

const (
	// maxPages bounds pagination so a store that never reports the last
	// page cannot loop forever. 100 comments per page.
	maxPages = 50

	// ClassifierOutdated is the default reason when minimizing.
	ClassifierOutdated = "OUTDATED"
)

// Reconciler binds a store and a warning sink. Zero state is kept between
// calls; the remote comment is the single source of truth.
type Reconciler struct {
	store  Store
	logger *slog.Logger
}

// New creates a reconciler. A nil logger falls back to slog.Default.
func New(store Store, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{store: store, logger: logger}
}

// normalizeLogin strips the bot suffix, trims, and lower-cases a login so
// "my-app[bot]" and "My-App" compare equal.
func normalizeLogin(login string) string {
	login = strings.TrimSuffix(strings.TrimSpace(login), "[bot]")
	return strings.ToLower(strings.TrimSpace(login))
}

// FindPrevious pages through the PR's comments until it finds the sticky
// comment: author matches (explicit login, or the store's own identity when
// empty), not minimized, and body contains the derived start marker. Returns
// nil when no page yields a match.
func (r *Reconciler) FindPrevious(ctx context.Context, ref RepoRef, number int, header, authorLogin, prefix string) (*Comment, error) {
	expected := authorLogin
	if expected == "" {
		viewer, err := r.store.Viewer(ctx)
		if err != nil {
			return nil, fmt.Errorf("resolve viewer login: %w", err)
		}
		expected = viewer
	}
	expected = normalizeLogin(expected)
	start, _ := markers(header, prefix)

	cursor := ""
	for page := 0; page < maxPages; page++ {
		p, err := r.store.ListComments(ctx, ref, number, cursor)
		if err != nil {
			return nil, fmt.Errorf("list comments for %s#%d: %w", ref, number, err)
		}
		for _, c := range p.Comments {
			if c.IsMinimized {
				continue
			}
			if normalizeLogin(c.Author) != expected {
				continue
			}
			if strings.Contains(c.Body, start) {
				found := c
				return &found, nil
			}
		}
		if !p.HasNextPage {
			return nil, nil
		}
		cursor = p.EndCursor
	}

	r.logger.Warn("comment pagination hit the page cap, giving up the search",
		"repo", ref.String(), "number", number, "pages", maxPages)
	return nil, nil
}

// composeBody wraps body with markers, prepending the managed content of
// previousBody when one is supplied (append semantics).
func composeBody(body, header, previousBody, prefix string) string {
	if previousBody == "" {
		return WrapBody(body, header, prefix)
	}
	return WrapBody(UnwrapBody(previousBody, header, prefix)+"\n"+body, header, prefix)
}

func blank(body, previousBody string) bool {
	return strings.TrimSpace(body) == "" && strings.TrimSpace(previousBody) == ""
}

// Update edits the comment in place. A blank body with no previous body is a
// guarded no-op: it warns instead of posting an empty comment.
func (r *Reconciler) Update(ctx context.Context, id int64, body, header, previousBody, prefix string) error {
	if blank(body, previousBody) {
		r.logger.Warn("comment update skipped: both body and previous body are empty", "id", id)
		return nil
	}
	return r.store.UpdateComment(ctx, id, composeBody(body, header, previousBody, prefix))
}

// Create posts a new sticky comment and returns the store's response. The
// blank guard mirrors Update: warn and return nil without a remote call.
func (r *Reconciler) Create(ctx context.Context, ref RepoRef, number int, body, header, previousBody, prefix string) (*Comment, error) {
	if blank(body, previousBody) {
		r.logger.Warn("comment creation skipped: both body and previous body are empty",
			"repo", ref.String(), "number", number)
		return nil, nil
	}
	return r.store.CreateComment(ctx, ref, number, composeBody(body, header, previousBody, prefix))
}

// Delete removes the comment unconditionally.
func (r *Reconciler) Delete(ctx context.Context, id int64) error {
	return r.store.DeleteComment(ctx, id)
}

// Minimize hides the comment under the given classifier (OUTDATED when
// empty) without deleting it.
func (r *Reconciler) Minimize(ctx context.Context, nodeID, classifier string) error {
	if classifier == "" {
		classifier = ClassifierOutdated
	}
	return r.store.MinimizeComment(ctx, nodeID, classifier)
}

// SyncOptions configures one reconciliation pass.
type SyncOptions struct {
	Header      string
	Prefix      string
	Author      string // expected sticky-comment author; empty = viewer
	Append      bool   // keep prior managed content beneath the new body
	HideDetails bool   // collapse expanded <details> from the prior body
	Recreate    bool   // delete and re-post instead of editing in place
}

// Sync is the full reconciliation pass: find the sticky comment, then create
// it, update it, or leave it alone when the managed content is unchanged.
// Returns the comment the PR ends up with (nil when the blank guard fired on
// a missing comment).
func (r *Reconciler) Sync(ctx context.Context, ref RepoRef, number int, body string, opts SyncOptions) (*Comment, error) {
	previous, err := r.FindPrevious(ctx, ref, number, opts.Header, opts.Author, opts.Prefix)
	if err != nil {
		return nil, err
	}

	if previous == nil {
		return r.Create(ctx, ref, number, body, opts.Header, "", opts.Prefix)
	}

	if !opts.Append && Equal(body, previous.Body, opts.Header, opts.Prefix) {
		r.logger.Info("comment already up to date", "id", previous.ID)
		return previous, nil
	}

	if opts.Recreate {
		if err := r.Delete(ctx, previous.ID); err != nil {
			return nil, fmt.Errorf("delete comment %d before recreate: %w", previous.ID, err)
		}
		prevBody, _ := BodyOf(previous, opts.Append, opts.HideDetails)
		return r.Create(ctx, ref, number, body, opts.Header, prevBody, opts.Prefix)
	}

	prevBody, _ := BodyOf(previous, opts.Append, opts.HideDetails)
	if err := r.Update(ctx, previous.ID, body, opts.Header, prevBody, opts.Prefix); err != nil {
		return nil, err
	}
	return previous, nil
}
