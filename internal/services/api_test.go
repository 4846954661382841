package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/desertthunder/friendbook/internal/shared"
	tu "github.com/desertthunder/friendbook/internal/testing"
	"github.com/google/uuid"
)

func TestAPIService(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		t.Run("With Custom BaseURL and Client", func(t *testing.T) {
			customClient := &http.Client{}
			srv := NewAPIService("http://example.com/api/", customClient)

			if srv.baseURL != "http://example.com/api" {
				t.Errorf("expected trailing slash to be trimmed, got %s", srv.baseURL)
			}
			if srv.httpClient != customClient {
				t.Error("expected custom client to be used")
			}
			if srv.limiter != nil {
				t.Error("expected no limiter by default")
			}
		})

		t.Run("With Empty BaseURL", func(t *testing.T) {
			srv := NewAPIService("", nil)

			if srv.baseURL != "http://localhost:8080/api" {
				t.Errorf("expected default baseURL 'http://localhost:8080/api', got %s", srv.baseURL)
			}
		})

		t.Run("With Nil Client", func(t *testing.T) {
			srv := NewAPIService("http://example.com", nil)

			if srv.httpClient != http.DefaultClient {
				t.Error("expected http.DefaultClient to be used")
			}
		})

		t.Run("With Rate Limit", func(t *testing.T) {
			if srv := NewAPIService("", nil, WithRateLimit(2)); srv.limiter == nil {
				t.Error("expected limiter to be set")
			}
			if srv := NewAPIService("", nil, WithRateLimit(0)); srv.limiter != nil {
				t.Error("expected zero rate to disable the limiter")
			}
		})
	})

	t.Run("Post", func(t *testing.T) {
		t.Run("Sends JSON With Request ID", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("expected POST method, got %s", r.Method)
				}
				if r.Header.Get("Content-Type") != "application/json" {
					t.Errorf("expected Content-Type 'application/json', got %s", r.Header.Get("Content-Type"))
				}
				if _, err := uuid.Parse(r.Header.Get(RequestIDHeader)); err != nil {
					t.Errorf("expected uuid request id, got %q", r.Header.Get(RequestIDHeader))
				}

				body, _ := io.ReadAll(r.Body)
				var data map[string]string
				if err := json.Unmarshal(body, &data); err != nil {
					t.Errorf("failed to unmarshal request body: %v", err)
				}
				if data["test"] != "data" {
					t.Errorf("expected request data 'test:data', got %v", data)
				}

				w.Header().Set("X-Custom-Header", "test-value")
				w.WriteHeader(http.StatusCreated)
				w.Write([]byte(`{"id":"123"}`))
			}))
			defer server.Close()

			srv := NewAPIService(server.URL, nil)
			resp, err := srv.PostJSON(context.Background(), "/test", map[string]string{"test": "data"})

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if resp.StatusCode != http.StatusCreated || !resp.OK() {
				t.Errorf("expected status 201, got %d", resp.StatusCode)
			}
			if string(resp.Body) != `{"id":"123"}` {
				t.Errorf("unexpected body %s", resp.Body)
			}
			if resp.Headers.Get("X-Custom-Header") != "test-value" {
				t.Errorf("expected custom header 'test-value', got %s", resp.Headers.Get("X-Custom-Header"))
			}
		})

		t.Run("Failed Payload Encoding", func(t *testing.T) {
			srv := NewAPIService("http://example.com", nil)
			_, err := srv.PostJSON(context.Background(), "/test", make(chan int))

			if err == nil || !strings.Contains(err.Error(), "failed to encode request") {
				t.Errorf("expected encode error, got %v", err)
			}
		})

		t.Run("Failed Request Creation", func(t *testing.T) {
			srv := NewAPIService("http://example.com", nil)
			_, err := srv.Post(context.Background(), "/test\x00invalid", []byte("data"))

			if err == nil {
				t.Fatal("expected error for invalid URL")
			}
			if !strings.Contains(err.Error(), "failed to create request") {
				t.Errorf("expected 'failed to create request' error, got %v", err)
			}
		})

		t.Run("Failed HTTP Request", func(t *testing.T) {
			rt := tu.NewMockRoundTripper(nil, errors.New("connection failed"))
			srv := NewAPIService("http://example.com", &http.Client{Transport: rt})
			_, err := srv.Post(context.Background(), "/test", []byte("data"))

			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
			if rt.Calls() != 1 {
				t.Errorf("expected exactly one attempt, got %d", rt.Calls())
			}
		})

		t.Run("Failed Response Body Read", func(t *testing.T) {
			client := &http.Client{
				Transport: tu.NewMockRoundTripper(&http.Response{
					StatusCode: http.StatusOK,
					Body:       &tu.FCloser{},
					Header:     http.Header{},
				}, nil),
			}

			srv := NewAPIService("http://example.com", client)
			_, err := srv.Post(context.Background(), "/test", []byte("data"))

			if err == nil {
				t.Fatal("expected error for failed body read")
			}
			if !strings.Contains(err.Error(), "failed to read response") {
				t.Errorf("expected 'failed to read response' error, got %v", err)
			}
		})

		t.Run("With Canceled Context", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			srv := NewAPIService(server.URL, nil)
			if _, err := srv.Post(ctx, "/test", nil); err == nil {
				t.Error("expected error for canceled context")
			}
		})

		t.Run("Rate Limit Delays Requests", func(t *testing.T) {
			var hits atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				hits.Add(1)
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			srv := NewAPIService(server.URL, nil, WithRateLimit(20))
			start := time.Now()
			for range 3 {
				if _, err := srv.Post(context.Background(), "/test", nil); err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
			}

			if elapsed := time.Since(start); elapsed < 90*time.Millisecond {
				t.Errorf("expected throttled requests to take at least 90ms, took %v", elapsed)
			}
			if hits.Load() != 3 {
				t.Errorf("expected 3 requests, got %d", hits.Load())
			}
		})
	})
}

func TestAPIResponseMessage(t *testing.T) {
	tc := []struct {
		name string
		body string
		want string
	}{
		{"json message", `{"message":"bad credentials"}`, "bad credentials"},
		{"json message with other fields", `{"error":"x","message":"email taken"}`, "email taken"},
		{"json empty message", `{"message":""}`, `{"message":""}`},
		{"json non-string message", `{"message":42}`, `{"message":42}`},
		{"json without message", `{"error":"nope"}`, `{"error":"nope"}`},
		{"plain text", "User exists\n", "User exists"},
		{"empty body", "", "fallback"},
		{"whitespace body", "  \n", "fallback"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			resp := &APIResponse{StatusCode: http.StatusBadRequest, Body: []byte(tt.body)}
			if got := resp.Message("fallback"); got != tt.want {
				t.Errorf("Message() = %q, want %q", got, tt.want)
			}
		})
	}
}
