package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newFakeOllama(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model    string `json:"model"`
			Stream   bool   `json:"stream"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.Stream {
			w.Header().Set("Content-Type", "text/event-stream")
			for _, part := range []string{"Hel", "lo"} {
				fmt.Fprintf(w, "data: {\"id\":\"1\",\"object\":\"chat.completion.chunk\",\"created\":1,\"model\":%q,\"choices\":[{\"index\":0,\"delta\":{\"content\":%q}}]}\n\n", req.Model, part)
			}
			fmt.Fprint(w, "data: {\"id\":\"1\",\"object\":\"chat.completion.chunk\",\"created\":1,\"model\":\"llama3.2\",\"choices\":[],\"usage\":{\"prompt_tokens\":3,\"completion_tokens\":2,\"total_tokens\":5}}\n\n")
			fmt.Fprint(w, "data: [DONE]\n\n")
			return
		}
		last := req.Messages[len(req.Messages)-1].Content
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id":"1","object":"chat.completion","created":1,"model":%q,"choices":[{"index":0,"message":{"role":"assistant","content":%q},"finish_reason":"stop"}],"usage":{"prompt_tokens":4,"completion_tokens":7,"total_tokens":11}}`, req.Model, "echo: "+last)
	})
	mux.HandleFunc("/v1/models", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"object":"list","data":[{"id":"llama3.2","object":"model","created":1700000000,"owned_by":"library"}]}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAIClientGenerate(t *testing.T) {
	srv := newFakeOllama(t)
	c := NewOpenAI("ollama", srv.URL+"/v1")

	resp, err := c.Generate(context.Background(), Request{
		Model:    "llama3.2",
		Messages: []Message{{Role: RoleSystem, Content: "be brief"}, {Role: RoleUser, Content: "hi"}},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if resp.Content != "echo: hi" {
		t.Fatalf("unexpected content: %q", resp.Content)
	}
	if resp.Model != "llama3.2" || resp.CompletionTokens != 7 || resp.TotalTokens != 11 {
		t.Fatalf("unexpected metadata: %+v", resp)
	}
}

func TestOpenAIClientStream(t *testing.T) {
	srv := newFakeOllama(t)
	c := NewOpenAI("ollama", srv.URL+"/v1")

	s, err := c.GenerateStream(context.Background(), Request{Model: "llama3.2", Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	if err != nil {
		t.Fatalf("stream: %v", err)
	}
	var parts []string
	resp, err := Collect(s, func(p string) { parts = append(parts, p) })
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if resp.Content != "Hello" || strings.Join(parts, "|") != "Hel|lo" {
		t.Fatalf("unexpected stream content: %q parts=%v", resp.Content, parts)
	}
	if resp.Model != "llama3.2" || resp.CompletionTokens != 2 {
		t.Fatalf("unexpected stream metadata: %+v", resp)
	}
}

func TestOpenAIClientListModels(t *testing.T) {
	srv := newFakeOllama(t)
	c := NewOpenAI("ollama", srv.URL+"/v1")

	models, err := c.ListModels(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(models) != 1 || models[0].Name != "llama3.2" || models[0].Owner != "library" {
		t.Fatalf("unexpected models: %+v", models)
	}
	if models[0].ModifiedAt.Unix() != 1700000000 {
		t.Fatalf("unexpected created time: %v", models[0].ModifiedAt)
	}
}

func TestOpenAIClientUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewOpenAI("ollama", url+"/v1")
	if _, err := c.ListModels(context.Background()); err == nil {
		t.Fatalf("expected error for unreachable backend")
	}
}
