package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPFetcher_Fetch(t *testing.T) {
	payload := []byte{0x00, 0x00, 0x01, 0x00, 0x01, 0x00}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/x-icon")
		w.Write(payload)
	}))
	defer srv.Close()

	fetcher := NewHTTPFetcher(srv.Client(), nil)
	res, err := fetcher.Fetch(context.Background(), srv.URL+"/favicon.ico")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if string(res.Body) != string(payload) {
		t.Errorf("body mismatch: got %d bytes", len(res.Body))
	}
	if res.ContentType != "image/x-icon" {
		t.Errorf("content type = %q", res.ContentType)
	}
}

func TestHTTPFetcher_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	fetcher := NewHTTPFetcher(srv.Client(), nil)
	if _, err := fetcher.Fetch(context.Background(), srv.URL); !errors.Is(err, ErrBadStatus) {
		t.Errorf("got %v, want ErrBadStatus", err)
	}
}

func TestHTTPFetcher_EmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	fetcher := NewHTTPFetcher(srv.Client(), nil)
	if _, err := fetcher.Fetch(context.Background(), srv.URL); !errors.Is(err, ErrEmptyBody) {
		t.Errorf("got %v, want ErrEmptyBody", err)
	}
}

func TestHTTPFetcher_TooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(make([]byte, DefaultMaxBytes+1))
	}))
	defer srv.Close()

	fetcher := NewHTTPFetcher(srv.Client(), nil)
	if _, err := fetcher.Fetch(context.Background(), srv.URL); !errors.Is(err, ErrTooLarge) {
		t.Errorf("got %v, want ErrTooLarge", err)
	}
}

func TestHTTPFetcher_Alive(t *testing.T) {
	var sawHead bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			sawHead = true
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	fetcher := NewHTTPFetcher(srv.Client(), nil)
	if err := fetcher.Alive(context.Background(), srv.URL); err != nil {
		t.Errorf("Alive failed: %v", err)
	}
	if !sawHead {
		t.Error("Alive should probe with HEAD first")
	}
}

func TestHTTPFetcher_AliveFallsBackToGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	fetcher := NewHTTPFetcher(srv.Client(), nil)
	if err := fetcher.Alive(context.Background(), srv.URL); err != nil {
		t.Errorf("Alive should fall back to GET: %v", err)
	}
}

func TestHTTPFetcher_AliveGone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	fetcher := NewHTTPFetcher(srv.Client(), nil)
	if err := fetcher.Alive(context.Background(), srv.URL); !errors.Is(err, ErrBadStatus) {
		t.Errorf("got %v, want ErrBadStatus", err)
	}
}
