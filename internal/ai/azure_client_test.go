package ai

import (
	"AzureOpenAIStudio/internal/config"
	"AzureOpenAIStudio/internal/dto"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

// chatResponseJSON и imageResponseJSON собирают ответы сервиса из тех же dto, что описывают протокол.
func chatResponseJSON(t *testing.T, content string) string {
	t.Helper()
	return mustJSON(t, dto.ChatResponse{Choices: []dto.ChatChoice{{Message: dto.Message{Role: "assistant", Content: content}}}})
}

func imageResponseJSON(t *testing.T, url string) string {
	t.Helper()
	return mustJSON(t, dto.ImageResponse{Data: []dto.ImageData{{URL: url}}})
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal %T: %v", v, err)
	}
	return string(b)
}

type capturedRequest struct {
	method string
	path   string
	header http.Header
	body   []byte
}

// stubService подменяет оба эндпоинта и запоминает каждый входящий запрос.
type stubService struct {
	mu       sync.Mutex
	requests []capturedRequest
	status   int
	response string
}

func (s *stubService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	s.mu.Lock()
	s.requests = append(s.requests, capturedRequest{method: r.Method, path: r.URL.Path, header: r.Header.Clone(), body: body})
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(s.status)
	_, _ = io.WriteString(w, s.response)
}

func (s *stubService) captured() []capturedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]capturedRequest(nil), s.requests...)
}

func newAzureTestClient(t *testing.T, stub *stubService) *AzureClient {
	t.Helper()
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)

	cfg := config.Defaults()
	cfg.APIKey = "test-key"
	cfg.ChatEndpoint = srv.URL + "/openai/deployments/gpt-4/chat/completions"
	cfg.ImageEndpoint = srv.URL + "/openai/deployments/dall-e-3/images/generations"
	return NewAzureClient(cfg, zaptest.NewLogger(t).Sugar())
}

func TestChatCompleteSendsPromptVerbatim(t *testing.T) {
	prompts := []string{"Tell me a joke!", "", "  spaces, \"quotes\" and <tags> & ünïcødé\n"}

	for _, prompt := range prompts {
		stub := &stubService{status: http.StatusOK, response: chatResponseJSON(t, "hello")}
		client := newAzureTestClient(t, stub)

		got, err := client.ChatComplete(context.Background(), prompt)
		if err != nil {
			t.Fatalf("ChatComplete(%q) returned error: %v", prompt, err)
		}
		if got != "hello" {
			t.Fatalf("expected %q, got %q", "hello", got)
		}

		reqs := stub.captured()
		if len(reqs) != 1 {
			t.Fatalf("expected exactly one request, got %d", len(reqs))
		}
		req := reqs[0]
		if req.method != http.MethodPost || req.path != "/openai/deployments/gpt-4/chat/completions" {
			t.Fatalf("unexpected request %s %s", req.method, req.path)
		}

		var sent dto.ChatRequest
		if err := json.Unmarshal(req.body, &sent); err != nil {
			t.Fatalf("request body is not a chat request: %v", err)
		}
		if sent.UserPrompt() != prompt {
			t.Fatalf("expected user content %q, got %q", prompt, sent.UserPrompt())
		}
		if len(sent.Messages) != 2 || sent.Messages[0].Role != "system" || sent.Messages[0].Content != "You are a helpful assistant." {
			t.Fatalf("unexpected messages %+v", sent.Messages)
		}
		if sent.Temperature != 0.7 || sent.TopP != 0.95 || sent.MaxTokens != 800 {
			t.Fatalf("unexpected sampling params %+v", sent)
		}
	}
}

func TestGenerateImageSendsPromptVerbatim(t *testing.T) {
	stub := &stubService{status: http.StatusOK, response: imageResponseJSON(t, "https://x/y.png")}
	client := newAzureTestClient(t, stub)

	got, err := client.GenerateImage(context.Background(), "A futuristic city skyline at sunset.")
	if err != nil {
		t.Fatalf("GenerateImage returned error: %v", err)
	}
	if got != "https://x/y.png" {
		t.Fatalf("expected %q, got %q", "https://x/y.png", got)
	}

	reqs := stub.captured()
	if len(reqs) != 1 {
		t.Fatalf("expected exactly one request, got %d", len(reqs))
	}
	if reqs[0].path != "/openai/deployments/dall-e-3/images/generations" {
		t.Fatalf("unexpected path %s", reqs[0].path)
	}

	var sent dto.ImageRequest
	if err := json.Unmarshal(reqs[0].body, &sent); err != nil {
		t.Fatalf("request body is not an image request: %v", err)
	}
	want := dto.ImageRequest{Prompt: "A futuristic city skyline at sunset.", N: 1, Size: "1024x1024", Model: "dall-e-3"}
	if sent != want {
		t.Fatalf("expected %+v, got %+v", want, sent)
	}
}

func TestRequestsCarryFixedHeaders(t *testing.T) {
	stub := &stubService{status: http.StatusOK, response: imageResponseJSON(t, "https://x/y.png")}
	client := newAzureTestClient(t, stub)

	if _, err := client.GenerateImage(context.Background(), "cat"); err != nil {
		t.Fatalf("GenerateImage returned error: %v", err)
	}

	h := stub.captured()[0].header
	if got := h.Get("api-key"); got != "test-key" {
		t.Fatalf("expected api-key header, got %q", got)
	}
	if got := h.Get("Content-Type"); got != "application/json" {
		t.Fatalf("expected json content type, got %q", got)
	}
}

func TestServerErrorBecomesErrorResult(t *testing.T) {
	stub := &stubService{status: http.StatusInternalServerError, response: `{"error":{"message":"boom"}}`}
	client := newAzureTestClient(t, stub)
	ctx := context.Background()

	for _, kind := range []Kind{KindChat, KindImage} {
		res := Run(ctx, client, kind, "prompt")
		if !res.Failed() {
			t.Fatalf("%s: expected failure for 500 response", kind)
		}
		var apiErr *dto.APIError
		if !errors.As(res.Err, &apiErr) || apiErr.Code != http.StatusInternalServerError {
			t.Fatalf("%s: expected APIError with code 500, got %v", kind, res.Err)
		}
		if !strings.HasPrefix(res.Display(), "Error: ") {
			t.Fatalf("%s: expected inline error string, got %q", kind, res.Display())
		}
	}
	if n := len(stub.captured()); n != 2 {
		t.Fatalf("expected one request per call and no retries, got %d", n)
	}
}

func TestTransportFailureBecomesErrorResult(t *testing.T) {
	cfg := config.Defaults()
	client := NewAzureClient(cfg, zaptest.NewLogger(t).Sugar())

	res := Run(context.Background(), client, KindChat, "hi")
	if !res.Failed() {
		t.Fatalf("expected failure when endpoint is not configured")
	}
	if !strings.HasPrefix(res.Display(), "Error: ") {
		t.Fatalf("expected inline error string, got %q", res.Display())
	}
}

func TestMalformedSuccessResponse(t *testing.T) {
	cases := []struct {
		name     string
		kind     Kind
		response string
	}{
		{name: "chat without choices", kind: KindChat, response: mustJSON(t, dto.ChatResponse{Choices: []dto.ChatChoice{}})},
		{name: "chat with null content", kind: KindChat, response: `{"choices":[{"message":{"content":null}}]}`},
		{name: "image without data", kind: KindImage, response: mustJSON(t, dto.ImageResponse{Data: []dto.ImageData{}})},
		{name: "not json", kind: KindImage, response: `<html>ok</html>`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubService{status: http.StatusOK, response: tc.response}
			client := newAzureTestClient(t, stub)

			res := Run(context.Background(), client, tc.kind, "prompt")
			if !errors.Is(res.Err, ErrMalformedResponse) {
				t.Fatalf("expected ErrMalformedResponse, got %v", res.Err)
			}
		})
	}
}

func TestDebugLogDoesNotLeakAPIKey(t *testing.T) {
	const secret = "SECRET-KEY-123"
	stub := &stubService{status: http.StatusOK, response: chatResponseJSON(t, "hello")}
	srv := httptest.NewServer(stub)
	defer srv.Close()

	core, logs := observer.New(zapcore.DebugLevel)
	cfg := config.Defaults()
	cfg.DebugMode = true
	cfg.APIKey = secret
	cfg.ChatEndpoint = srv.URL + "/chat"
	client := NewAzureClient(cfg, zap.New(core).Sugar())

	if _, err := client.ChatComplete(context.Background(), "hi"); err != nil {
		t.Fatalf("ChatComplete returned error: %v", err)
	}

	if got := stub.captured()[0].header.Get("api-key"); got != secret {
		t.Fatalf("expected the real key on the wire, got %q", got)
	}
	if logs.Len() == 0 {
		t.Fatalf("expected debug dump in log")
	}
	for _, e := range logs.All() {
		if strings.Contains(e.Message, secret) {
			t.Fatalf("api key leaked into log entry (level %s): %s", e.Level, e.Message)
		}
		for k, v := range e.ContextMap() {
			if strings.Contains(fmt.Sprint(v), secret) {
				t.Fatalf("api key leaked into log field %q", k)
			}
		}
	}
}
