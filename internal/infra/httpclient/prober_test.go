package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

func TestProbeFallsBackToGet(t *testing.T) {
	var (
		mu      sync.Mutex
		methods []string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		methods = append(methods, r.Method)
		mu.Unlock()
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if r.Header.Get("User-Agent") != userAgent {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	res := NewProber().Probe(context.Background(), server.URL+"/?q=x")
	if !res.OK() || res.Status != http.StatusOK {
		t.Fatalf("expected OK result, got %+v", res)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(methods) != 2 || methods[0] != http.MethodHead || methods[1] != http.MethodGet {
		t.Fatalf("unexpected methods %v", methods)
	}
}

func TestProbeReportsStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	res := NewProber().Probe(context.Background(), server.URL)
	if res.OK() || res.Status != http.StatusNotFound || res.Error != "" {
		t.Fatalf("expected 404 without error, got %+v", res)
	}
}

func TestProbeTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	res := NewProber(WithTimeout(20 * time.Millisecond)).Probe(context.Background(), server.URL)
	if res.OK() || res.Error == "" {
		t.Fatalf("expected timeout error, got %+v", res)
	}
}

func TestProbeInvalidURL(t *testing.T) {
	res := NewProber().Probe(context.Background(), "://nope")
	if res.Error == "" {
		t.Fatalf("expected error for invalid url")
	}
}
