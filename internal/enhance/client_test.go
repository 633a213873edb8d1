package enhance

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestRun(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.URL.Path != "/v1/enhance" {
			t.Errorf("path = %s, want /v1/enhance", r.URL.Path)
		}
		var wire struct {
			Tool    string `json:"tool"`
			Payload string `json:"payload"`
		}
		if err := json.NewDecoder(r.Body).Decode(&wire); err != nil {
			t.Errorf("request not decodable: %v", err)
		}
		if wire.Tool != "upscale" {
			t.Errorf("tool = %q, want upscale", wire.Tool)
		}
		if wire.Payload == "" {
			t.Error("payload missing")
		}
		_ = json.NewEncoder(w).Encode(Result{Success: true, OutputURL: "http://cdn/out.mp4"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret-token")
	result, err := c.Run(context.Background(), Request{Tool: "upscale", Payload: []byte("frame")})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !result.Success || result.OutputURL != "http://cdn/out.mp4" {
		t.Errorf("Run() = %+v, want success with output URL", result)
	}
	if gotAuth != "Bearer secret-token" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
}

func TestRunServerError(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	if _, err := c.Run(context.Background(), Request{Tool: "upscale"}); err == nil {
		t.Error("Run() = nil error on HTTP 503")
	}
	// No retry policy in the client.
	if calls.Load() != 1 {
		t.Errorf("client called the service %d times, want exactly 1", calls.Load())
	}
}

func TestRunReportsProviderFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(Result{Success: false, Error: "content policy"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	result, err := c.Run(context.Background(), Request{Tool: "generate", Prompt: "a cat"})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if result.Success || result.Error != "content policy" {
		t.Errorf("Run() = %+v, want provider failure surfaced in Result", result)
	}
}
