package mdwrap

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// FetchRequest configures FetchFormat.
type FetchRequest struct {
	URL     string
	Client  *http.Client
	Writer  io.Writer
	Width   int
	Options []FormatOption
}

// FetchFormat downloads a Markdown document over HTTP(S) and writes the
// formatted document to Writer.
func FetchFormat(ctx context.Context, req FetchRequest) error {
	if req.URL == "" {
		return fmt.Errorf("fetch: URL is required")
	}
	if req.Writer == nil {
		return fmt.Errorf("fetch: writer is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	client := req.Client
	if client == nil {
		client = http.DefaultClient
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return fmt.Errorf("fetch: build request: %w", err)
	}
	if httpReq.URL.Scheme != "http" && httpReq.URL.Scheme != "https" {
		return fmt.Errorf("fetch: unsupported scheme %q", httpReq.URL.Scheme)
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("fetch: request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("fetch: status %s", resp.Status)
	}
	return Format(FormatRequest{
		Reader:  resp.Body,
		Writer:  req.Writer,
		Width:   req.Width,
		Options: req.Options,
	})
}
