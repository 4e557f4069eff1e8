// Package github implements the comment store against the GitHub API:
// cursor-paginated comment listing and minimization over GraphQL, comment
// mutations over REST, with token or GitHub App authentication.
package github

import (
	"context"
	"fmt"
	"net/http"

	gh "github.com/google/go-github/v66/github"

	"github.com/previewops/preview-comment/internal/comment"
)

// Store implements comment.Store. Listing and minimization go through
// GraphQL (REST exposes neither isMinimized nor the minimize mutation);
// create/update/delete use the REST API via go-github.
type Store struct {
	graphql *GraphQLClient
	rest    *gh.Client
	ref     comment.RepoRef // bound repo for id-only mutations
}

// NewStore builds a store for one repository, authenticating every call
// with tokens.
func NewStore(tokens TokenSource, ref comment.RepoRef) *Store {
	return &Store{
		graphql: NewGraphQLClient(tokens),
		rest:    gh.NewClient(&http.Client{Transport: &authTransport{tokens: tokens}}),
		ref:     ref,
	}
}

// authTransport injects a bearer token from the TokenSource into each REST
// request, so App installation tokens refresh transparently.
type authTransport struct {
	tokens TokenSource
	base   http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := t.tokens.Token(req.Context())
	if err != nil {
		return nil, fmt.Errorf("failed to get token: %w", err)
	}

	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+token)

	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(clone)
}

const listCommentsQuery = `query Comments($owner: String!, $repo: String!, $number: Int!, $cursor: String) {
  repository(owner: $owner, name: $repo) {
    pullRequest(number: $number) {
      comments(first: 100, after: $cursor) {
        nodes {
          id
          databaseId
          body
          author { login }
          isMinimized
        }
        pageInfo { endCursor hasNextPage }
      }
    }
  }
}`

const viewerQuery = `query { viewer { login } }`

const minimizeMutation = `mutation Minimize($id: ID!, $classifier: ReportedContentClassifiers!) {
  minimizeComment(input: {subjectId: $id, classifier: $classifier}) {
    minimizedComment { isMinimized }
  }
}`

type commentNode struct {
	ID         string `json:"id"`
	DatabaseID int64  `json:"databaseId"`
	Body       string `json:"body"`
	Author     struct {
		Login string `json:"login"`
	} `json:"author"`
	IsMinimized bool `json:"isMinimized"`
}

type listCommentsResponse struct {
	Repository struct {
		PullRequest struct {
			Comments struct {
				Nodes    []commentNode `json:"nodes"`
				PageInfo struct {
					EndCursor   string `json:"endCursor"`
					HasNextPage bool   `json:"hasNextPage"`
				} `json:"pageInfo"`
			} `json:"comments"`
		} `json:"pullRequest"`
	} `json:"repository"`
}

// ListComments fetches one page of the PR's comments. An empty cursor starts
// from the first page.
func (s *Store) ListComments(ctx context.Context, ref comment.RepoRef, number int, cursor string) (*comment.Page, error) {
	variables := map[string]any{
		"owner":  ref.Owner,
		"repo":   ref.Name,
		"number": number,
	}
	if cursor != "" {
		variables["cursor"] = cursor
	}

	var resp listCommentsResponse
	if err := s.graphql.Do(ctx, listCommentsQuery, variables, &resp); err != nil {
		return nil, fmt.Errorf("fetch comments: %w", err)
	}

	conn := resp.Repository.PullRequest.Comments
	page := &comment.Page{
		Comments:    make([]comment.Comment, 0, len(conn.Nodes)),
		EndCursor:   conn.PageInfo.EndCursor,
		HasNextPage: conn.PageInfo.HasNextPage,
	}
	for _, n := range conn.Nodes {
		page.Comments = append(page.Comments, comment.Comment{
			ID:          n.DatabaseID,
			NodeID:      n.ID,
			Author:      n.Author.Login,
			Body:        n.Body,
			IsMinimized: n.IsMinimized,
		})
	}
	return page, nil
}

// Viewer returns the login of the authenticated identity; it is the default
// author filter when the caller does not name one.
func (s *Store) Viewer(ctx context.Context) (string, error) {
	var resp struct {
		Viewer struct {
			Login string `json:"login"`
		} `json:"viewer"`
	}
	if err := s.graphql.Do(ctx, viewerQuery, nil, &resp); err != nil {
		return "", fmt.Errorf("fetch viewer: %w", err)
	}
	return resp.Viewer.Login, nil
}

// CreateComment posts a new comment on the issue/PR.
func (s *Store) CreateComment(ctx context.Context, ref comment.RepoRef, number int, body string) (*comment.Comment, error) {
	created, _, err := s.rest.Issues.CreateComment(ctx, ref.Owner, ref.Name, number, &gh.IssueComment{Body: &body})
	if err != nil {
		return nil, fmt.Errorf("create comment on %s#%d: %w", ref, number, err)
	}
	return &comment.Comment{
		ID:     created.GetID(),
		NodeID: created.GetNodeID(),
		Author: created.GetUser().GetLogin(),
		Body:   created.GetBody(),
	}, nil
}

// UpdateComment replaces a comment's body.
func (s *Store) UpdateComment(ctx context.Context, id int64, body string) error {
	_, _, err := s.rest.Issues.EditComment(ctx, s.ref.Owner, s.ref.Name, id, &gh.IssueComment{Body: &body})
	if err != nil {
		return fmt.Errorf("update comment %d: %w", id, err)
	}
	return nil
}

// DeleteComment removes a comment.
func (s *Store) DeleteComment(ctx context.Context, id int64) error {
	if _, err := s.rest.Issues.DeleteComment(ctx, s.ref.Owner, s.ref.Name, id); err != nil {
		return fmt.Errorf("delete comment %d: %w", id, err)
	}
	return nil
}

// MinimizeComment hides a comment under the given classifier.
func (s *Store) MinimizeComment(ctx context.Context, nodeID, classifier string) error {
	variables := map[string]any{
		"id":         nodeID,
		"classifier": classifier,
	}
	if err := s.graphql.Do(ctx, minimizeMutation, variables, nil); err != nil {
		return fmt.Errorf("minimize comment %s: %w", nodeID, err)
	}
	return nil
}
