package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/agent/query" {
			t.Errorf("path = %s, want /agent/query", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}

		var req struct {
			Query string `json:"query"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if req.Query != "how much does Alice owe?" {
			t.Errorf("query = %q", req.Query)
		}

		_ = json.NewEncoder(w).Encode(map[string]string{"response": "Alice owes 12.50 in total."})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	answer, err := client.Query(context.Background(), "how much does Alice owe?")
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if answer != "Alice owes 12.50 in total." {
		t.Errorf("answer = %q", answer)
	}
}

func TestClientQueryUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	_, err := client.Query(context.Background(), "anything")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("error = %v, want ErrUnavailable", err)
	}
}

func TestClientQueryUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(srv.URL, time.Second)
	_, err := client.Query(context.Background(), "anything")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("error = %v, want ErrUnavailable", err)
	}
}
