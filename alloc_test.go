package mdwrap

import (
	"os"
	"testing"
)

func TestFormatAllocations(t *testing.T) {
	src, err := os.ReadFile("testdata/guide.md")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	allocs := testing.AllocsPerRun(100, func() {
		_, _ = FormatBytes(src)
	})
	if allocs > 2000 {
		t.Fatalf("too many allocations per FormatBytes: got %.2f", allocs)
	}
}

func TestClassifyDoesNotAllocate(t *testing.T) {
	lines := []string{"# heading", "- item", "> quote", "| a | b |", "plain text", "    code"}
	allocs := testing.AllocsPerRun(100, func() {
		for _, line := range lines {
			_ = Classify(line, false)
		}
	})
	if allocs != 0 {
		t.Fatalf("Classify allocated %.2f times", allocs)
	}
}
