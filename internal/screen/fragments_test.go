package screen

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFragmentCaching(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if r.URL.Path != "/screen/fragments/lobby" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		_, _ = w.Write([]byte("<div>lobby</div>"))
	}))
	defer srv.Close()

	source := NewFragmentSource(srv.URL, time.Second)
	for i := 0; i < 3; i++ {
		html, err := source.Fragment(context.Background(), "lobby")
		if err != nil {
			t.Fatalf("fetch %d: %v", i, err)
		}
		if html != "<div>lobby</div>" {
			t.Fatalf("fetch %d: %q", i, html)
		}
	}
	if hits != 1 {
		t.Fatalf("server hit %d times, want 1", hits)
	}
}

func TestFragmentErrorNotCached(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits == 1 {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	source := NewFragmentSource(srv.URL, time.Second)
	if _, err := source.Fragment(context.Background(), "question"); err == nil {
		t.Fatal("expected error on 500")
	}
	html, err := source.Fragment(context.Background(), "question")
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if html != "ok" || hits != 2 {
		t.Fatalf("html = %q, hits = %d", html, hits)
	}
}
