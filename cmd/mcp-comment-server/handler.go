package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/previewops/preview-comment/internal/comment"
	"github.com/previewops/preview-comment/internal/github"
)

// UpsertCommentParams defines the input for the upsert tool.
type UpsertCommentParams struct {
	Body   string `json:"body" jsonschema:"The Markdown body for the sticky comment"`
	Append bool   `json:"append,omitempty" jsonschema:"Append below the existing managed content instead of replacing it"`
}

// DeleteCommentParams defines the input for the delete tool.
type DeleteCommentParams struct {
	Minimize bool `json:"minimize,omitempty" jsonschema:"Minimize the comment as outdated instead of deleting it"`
}

// reconcilerFromEnv wires a reconciler from the server's environment.
func reconcilerFromEnv() (*comment.Reconciler, comment.RepoRef, int, error) {
	repo := os.Getenv("GITHUB_REPOSITORY")
	owner, name, found := cutRepo(repo)
	if !found {
		return nil, comment.RepoRef{}, 0, fmt.Errorf("invalid GITHUB_REPOSITORY: %q", repo)
	}

	number, err := strconv.Atoi(os.Getenv("PR_NUMBER"))
	if err != nil {
		return nil, comment.RepoRef{}, 0, fmt.Errorf("invalid PR_NUMBER: %w", err)
	}

	ref := comment.RepoRef{Owner: owner, Name: name}
	store := github.NewStore(github.StaticToken(os.Getenv("GITHUB_TOKEN")), ref)
	return comment.New(store, nil), ref, number, nil
}

func cutRepo(repo string) (owner, name string, ok bool) {
	owner, name, ok = strings.Cut(repo, "/")
	return owner, name, ok && owner != "" && name != ""
}

// HandleUpsertComment creates or updates the sticky comment with the given
// body.
func HandleUpsertComment(ctx context.Context, req *mcp.CallToolRequest, params UpsertCommentParams) (*mcp.CallToolResult, any, error) {
	log.Printf("[MCP Comment Server] Received upsert_preview_comment request")

	if params.Body == "" {
		return nil, nil, fmt.Errorf("body parameter is required")
	}

	reconciler, ref, number, err := reconcilerFromEnv()
	if err != nil {
		return nil, nil, err
	}

	posted, err := reconciler.Sync(ctx, ref, number, params.Body, comment.SyncOptions{
		Header: os.Getenv("COMMENT_HEADER"),
		Prefix: os.Getenv("COMMENT_PREFIX"),
		Append: params.Append,
	})
	if err != nil {
		log.Printf("[MCP Comment Server] Failed to upsert comment: %v", err)
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Error: %v", err)}},
			IsError: true,
		}, nil, nil
	}

	if posted == nil {
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: "Error: comment body is blank, nothing was posted"}},
			IsError: true,
		}, nil, nil
	}

	resultText := fmt.Sprintf(`{
  "success": true,
  "repository": "%s",
  "pr_number": %d,
  "comment_id": %d,
  "body_length": %d
}`, ref, number, posted.ID, len(params.Body))

	log.Printf("[MCP Comment Server] Successfully reconciled comment #%d", posted.ID)
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: resultText}},
	}, nil, nil
}

// HandleDeleteComment removes or minimizes the sticky comment.
func HandleDeleteComment(ctx context.Context, req *mcp.CallToolRequest, params DeleteCommentParams) (*mcp.CallToolResult, any, error) {
	log.Printf("[MCP Comment Server] Received delete_preview_comment request")

	reconciler, ref, number, err := reconcilerFromEnv()
	if err != nil {
		return nil, nil, err
	}

	previous, err := reconciler.FindPrevious(ctx, ref, number, os.Getenv("COMMENT_HEADER"), "", os.Getenv("COMMENT_PREFIX"))
	if err != nil {
		return nil, nil, err
	}
	if previous == nil {
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: `{"success": true, "found": false}`}},
		}, nil, nil
	}

	if params.Minimize {
		err = reconciler.Minimize(ctx, previous.NodeID, comment.ClassifierOutdated)
	} else {
		err = reconciler.Delete(ctx, previous.ID)
	}
	if err != nil {
		log.Printf("[MCP Comment Server] Failed to remove comment: %v", err)
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Error: %v", err)}},
			IsError: true,
		}, nil, nil
	}

	log.Printf("[MCP Comment Server] Removed comment #%d (minimize=%v)", previous.ID, params.Minimize)
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf(`{"success": true, "found": true, "comment_id": %d}`, previous.ID)}},
	}, nil, nil
}
