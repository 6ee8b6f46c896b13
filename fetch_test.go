package mdwrap

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetchFormat(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("unexpected method %s", r.Method)
		}
		_, _ = w.Write([]byte("alpha beta gamma delta\n"))
	}))
	defer srv.Close()

	var out bytes.Buffer
	err := FetchFormat(context.Background(), FetchRequest{
		URL:    srv.URL,
		Client: srv.Client(),
		Writer: &out,
		Width:  11,
	})
	if err != nil {
		t.Fatalf("FetchFormat: %v", err)
	}
	if got, want := out.String(), "alpha beta\ngamma delta\n"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestFetchFormatErrors(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	var out bytes.Buffer
	tests := []struct {
		name string
		req  FetchRequest
		want string
	}{
		{"missing url", FetchRequest{Writer: &out}, "URL is required"},
		{"missing writer", FetchRequest{URL: srv.URL}, "writer is nil"},
		{"bad scheme", FetchRequest{URL: "ftp://example.com/a.md", Writer: &out}, "unsupported scheme"},
		{"status", FetchRequest{URL: srv.URL, Writer: &out}, "404"},
	}
	for _, tc := range tests {
		err := FetchFormat(context.Background(), tc.req)
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: expected error containing %q, got %v", tc.name, tc.want, err)
		}
	}
	if out.Len() != 0 {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestFetchFormatHonorsContext(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	if err := FetchFormat(ctx, FetchRequest{URL: srv.URL, Writer: &out}); err == nil {
		t.Fatalf("expected error for canceled context")
	}
}
