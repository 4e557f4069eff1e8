package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	requiredEnv := []string{"GITHUB_TOKEN", "GITHUB_REPOSITORY", "PR_NUMBER"}
	for _, env := range requiredEnv {
		if os.Getenv(env) == "" {
			log.Fatalf("[MCP Comment Server] Missing required environment variable: %s", env)
		}
	}

	log.Println("[MCP Comment Server] Starting Preview Comment MCP Server")
	log.Printf("[MCP Comment Server] Repository: %s", os.Getenv("GITHUB_REPOSITORY"))
	log.Printf("[MCP Comment Server] PR number: %s", os.Getenv("PR_NUMBER"))

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "preview-comment-server",
		Version: "v1.0.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "upsert_preview_comment",
		Description: "Create or update the sticky preview comment on the configured pull request",
	}, HandleUpsertComment)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_preview_comment",
		Description: "Delete or minimize the sticky preview comment on the configured pull request",
	}, HandleDeleteComment)

	log.Println("[MCP Comment Server] Registered tools: upsert_preview_comment, delete_preview_comment")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("[MCP Comment Server] Received shutdown signal")
		cancel()
	}()

	log.Println("[MCP Comment Server] Starting on stdio transport...")
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatalf("[MCP Comment Server] Server error: %v", err)
	}
	log.Println("[MCP Comment Server] Server stopped gracefully")
}
