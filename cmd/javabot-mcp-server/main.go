package main

import (
	"context"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"chatbots/internal/config"
	"chatbots/internal/responder"
	"chatbots/internal/vocab"
)

// ExplainParams is the input of explain_java_keyword.
type ExplainParams struct {
	Question string `json:"question" mcp:"free-text question about a Java keyword, e.g. 'what is a for loop?'"`
}

type ListParams struct{}

// JavaBotMCPServer exposes the canned responder as MCP tools.
type JavaBotMCPServer struct {
	responder *responder.Responder
}

func NewJavaBotMCPServer(r *responder.Responder) *JavaBotMCPServer {
	return &JavaBotMCPServer{responder: r}
}

func textResult(text string, isError bool) *mcp.CallToolResultFor[any] {
	return &mcp.CallToolResultFor[any]{
		IsError: isError,
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

// Explain answers a question with the phrase resolver.
func (s *JavaBotMCPServer) Explain(ctx context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[ExplainParams]) (*mcp.CallToolResultFor[any], error) {
	q := strings.TrimSpace(params.Arguments.Question)
	if q == "" {
		return textResult("question is required", true), nil
	}
	log.Printf("MCP Server: explaining %q", q)
	if responder.IsFarewell(q) {
		return textResult(s.responder.Farewell(), false), nil
	}
	return textResult(s.responder.Respond(q), false), nil
}

// ListKeywords returns the known tags, one per line, without the general ones.
func (s *JavaBotMCPServer) ListKeywords(ctx context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[ListParams]) (*mcp.CallToolResultFor[any], error) {
	tags := s.responder.Table().Tags()
	if len(tags) > responder.DefaultSampleSkip {
		tags = tags[responder.DefaultSampleSkip:]
	}
	return textResult(strings.Join(tags, "\n"), false), nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.NewResponder()
	table, err := vocab.Load(cfg.VocabPath)
	if err != nil {
		log.Fatalf("failed to load vocabulary: %v", err)
	}
	javaServer := NewJavaBotMCPServer(responder.New(table, cfg.FuzzyRatio))

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "javabot-mcp",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "explain_java_keyword",
		Description: "Explains a Java keyword mentioned in a free-text question",
	}, javaServer.Explain)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_java_keywords",
		Description: "Lists the Java keywords the bot can explain",
	}, javaServer.ListKeywords)

	log.Printf("Starting javabot MCP server on stdin/stdout...")
	transport := mcp.NewStdioTransport()
	if err := server.Run(context.Background(), transport); err != nil {
		log.Fatalf("javabot MCP server failed: %v", err)
	}
}
