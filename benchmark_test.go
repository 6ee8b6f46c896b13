package mdwrap

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
)

func BenchmarkFormatGuide(b *testing.B) {
	data := mustReadSample(b, "testdata/guide.md")
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	for i := 0; i < b.N; i++ {
		if _, err := FormatBytes(data); err != nil {
			b.Fatalf("format: %v", err)
		}
	}
}

func BenchmarkFormatSamples(b *testing.B) {
	samples := map[string][]byte{
		"guide":   mustReadSample(b, "testdata/guide.md"),
		"unicode": mustReadSample(b, "testdata/unicode.md"),
		"edge":    mustReadSample(b, "testdata/edge.md"),
	}
	widths := []int{40, 80, 120}
	for name, data := range samples {
		data := data
		b.Run(name, func(b *testing.B) {
			for _, width := range widths {
				width := width
				b.Run(intToWidthLabel(width), func(b *testing.B) {
					b.ReportAllocs()
					b.ResetTimer()
					reader := bytes.NewReader(data)
					for i := 0; i < b.N; i++ {
						reader.Reset(data)
						_ = Format(FormatRequest{
							Reader: reader,
							Writer: io.Discard,
							Width:  width,
						})
					}
				})
			}
		})
	}
}

func BenchmarkFormatLargeParagraphs(b *testing.B) {
	data := bytes.Repeat([]byte("alpha beta gamma delta epsilon zeta eta theta iota kappa lambda\n"), 2000)
	lines := SplitLines(string(data))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = FormatLines(lines)
	}
}

func BenchmarkFetchFormat(b *testing.B) {
	data := mustReadSample(b, "testdata/guide.md")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}))
	defer server.Close()

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if err := FetchFormat(context.Background(), FetchRequest{
			URL:    server.URL,
			Writer: io.Discard,
		}); err != nil {
			b.Fatalf("fetch format: %v", err)
		}
	}
}

func mustReadSample(b *testing.B, path string) []byte {
	b.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		b.Fatalf("read %s: %v", path, err)
	}
	return data
}

func intToWidthLabel(width int) string {
	return "w" + strconv.Itoa(width)
}
