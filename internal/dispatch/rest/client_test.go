// internal/dispatch/rest/client_test.go
package rest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSend_PostJSONBody(t *testing.T) {
	var (
		gotMethod string
		gotType   string
		gotBody   map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotType = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotBody)
	}))
	defer srv.Close()

	c, err := New(Config{Method: http.MethodPost, Endpoint: srv.URL})
	if err != nil {
		t.Fatalf("New err=%v", err)
	}

	err = c.Send(context.Background(), "/health", map[string]any{"bri": 102, "xy": []int{1, 2}})
	if err != nil {
		t.Fatalf("Send err=%v", err)
	}

	if gotMethod != http.MethodPost {
		t.Fatalf("method: got=%s", gotMethod)
	}
	if gotType != "application/json" {
		t.Fatalf("content-type: got=%q", gotType)
	}
	if gotBody["bri"] != float64(102) {
		t.Fatalf("body bri: got=%v", gotBody["bri"])
	}
}

func TestSend_GetQueryParams(t *testing.T) {
	var got map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
	}))
	defer srv.Close()

	c, err := New(Config{Method: http.MethodGet, Endpoint: srv.URL + "/lights?fixed=1"})
	if err != nil {
		t.Fatalf("New err=%v", err)
	}

	err = c.Send(context.Background(), "/ult", map[string]any{"on": 1, "rgb": []int{255, 0, 0}})
	if err != nil {
		t.Fatalf("Send err=%v", err)
	}

	if got["fixed"][0] != "1" {
		t.Fatalf("existing query lost: %v", got)
	}
	if got["on"][0] != "1" {
		t.Fatalf("on: got=%v", got["on"])
	}
	if len(got["rgb"]) != 3 || got["rgb"][0] != "255" {
		t.Fatalf("rgb: got=%v", got["rgb"])
	}
}

func TestSend_Non2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c, _ := New(Config{Method: http.MethodPost, Endpoint: srv.URL})
	if err := c.Send(context.Background(), "/x", nil); err == nil {
		t.Fatalf("expected error on 502")
	}
}

func TestSend_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, _ := New(Config{Method: http.MethodGet, Endpoint: url})
	if err := c.Send(context.Background(), "/x", map[string]any{"a": 1}); err == nil {
		t.Fatalf("expected transport error")
	}
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(Config{Method: http.MethodPost}); err == nil {
		t.Fatalf("expected endpoint error")
	}
	if _, err := New(Config{Method: "PUT", Endpoint: "http://x"}); err == nil {
		t.Fatalf("expected method error")
	}
}
