package investigate

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// ============================================================================
// CLIENT TESTS
// ============================================================================

func TestClientComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("missing bearer token: %q", got)
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Temperature != 0 {
			t.Errorf("temperature should be pinned to 0, got %v", req.Temperature)
		}
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
			t.Errorf("expected a single user message, got %+v", req.Messages)
		}
		if !strings.Contains(req.Messages[0].Content, "Organisation: RTE") {
			t.Errorf("prompt not forwarded: %q", req.Messages[0].Content)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"{\"organisation\":\"RTE\"}"}}]}`))
	}))
	defer srv.Close()

	client := NewClient(Config{APIKey: "test-key", Endpoint: srv.URL})
	answer, err := client.Complete(BuildPrompt(Organisation{Name: "RTE"}, []string{"PLEXOS"}))
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if answer != `{"organisation":"RTE"}` {
		t.Errorf("unexpected answer: %q", answer)
	}
}

func TestClientSurfacesAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited","type":"rate_limit"}}`))
	}))
	defer srv.Close()

	client := NewClient(Config{APIKey: "k", Endpoint: srv.URL})
	_, err := client.Complete("prompt")
	if err == nil {
		t.Fatal("expected an error for a 429 response")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("error should carry the status code: %v", err)
	}
}
