package mdwrap

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"
)

var formatterPool = sync.Pool{
	New: func() any {
		return &formatter{}
	},
}

// FormatRequest configures Format.
type FormatRequest struct {
	Reader  io.Reader
	Writer  io.Writer
	Width   int
	Options []FormatOption
}

// Format reads a whole Markdown document from Reader and writes the formatted
// document to Writer. Nothing is written when the input fails validation.
func Format(req FormatRequest) error {
	if req.Reader == nil {
		return fmt.Errorf("format: reader is nil")
	}
	if req.Writer == nil {
		return fmt.Errorf("format: writer is nil")
	}
	src, err := io.ReadAll(req.Reader)
	if err != nil {
		return fmt.Errorf("format: read: %w", err)
	}
	opts := req.Options
	if req.Width > 0 {
		opts = append(opts[:len(opts):len(opts)], WithWidth(req.Width))
	}
	out, err := FormatBytes(src, opts...)
	if err != nil {
		return err
	}
	if _, err := req.Writer.Write(out); err != nil {
		return fmt.Errorf("format: write: %w", err)
	}
	return nil
}

// FormatBytes validates and formats a Markdown document held in memory. The
// result always ends with exactly one newline.
func FormatBytes(src []byte, opts ...FormatOption) ([]byte, error) {
	if err := ValidateInput(src); err != nil {
		return nil, fmt.Errorf("format: %w", err)
	}
	lines := FormatLines(SplitLines(string(src)), opts...)
	var buf bytes.Buffer
	size := len(lines)
	for _, line := range lines {
		size += len(line)
	}
	buf.Grow(size)
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// FormatString is FormatBytes for strings.
func FormatString(src string, opts ...FormatOption) (string, error) {
	out, err := FormatBytes([]byte(src), opts...)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// SplitLines splits a document into lines. A single trailing newline ends the
// last line rather than starting an empty one, and a carriage return before a
// newline is dropped.
func SplitLines(src string) []string {
	src = strings.TrimSuffix(src, "\n")
	lines := strings.Split(src, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// FormatLines formats a document given as lines and returns the output lines.
func FormatLines(lines []string, opts ...FormatOption) []string {
	f := formatterPool.Get().(*formatter)
	f.reset(buildConfig(opts))
	out := f.run(lines)
	f.reset(formatConfig{})
	formatterPool.Put(f)
	return out
}

type formatter struct {
	cfg   formatConfig
	out   []string
	kinds []Kind

	para      []string
	paraFirst string
	paraCont  string
	paraBrk   bool
	table     []string
	scratchP  [64]string
	scratchT  [64]string
	scratchK  [512]Kind
}

func (f *formatter) reset(cfg formatConfig) {
	f.cfg = cfg
	f.out = nil
	f.kinds = f.scratchK[:0]
	f.para = f.scratchP[:0]
	f.paraFirst = ""
	f.paraCont = ""
	f.paraBrk = false
	f.table = f.scratchT[:0]
}

func (f *formatter) run(lines []string) []string {
	f.out = make([]string, 0, len(lines)+len(lines)/4)
	f.kinds = classifyLines(f.kinds, lines, f.cfg.frontMatter)
	for i, line := range lines {
		kind := f.kinds[i]
		if kind != KindTableRow && kind != KindTableSeparator {
			f.flushTable()
		}
		if kind != KindText {
			f.flushParagraph()
		}
		switch kind {
		case KindTableRow, KindTableSeparator:
			f.table = append(f.table, line)
		case KindBlockquote:
			f.emitQuote(line)
		case KindListItem:
			n, _ := listPrefix(line)
			if strings.TrimSpace(line[n:]) == "" {
				f.out = append(f.out, trimTrailing(line))
				continue
			}
			f.startParagraph(line[:n], spaces(n))
			f.addParagraphLine(line[n:])
		case KindText:
			if len(f.para) == 0 {
				indent := spaces(leadingSpace(line))
				f.startParagraph(indent, indent)
			}
			f.addParagraphLine(line)
		default:
			f.out = append(f.out, line)
		}
	}
	f.flushTable()
	f.flushParagraph()
	return f.out
}

// emitQuote keeps a blockquote line that fits and rewraps one that does not,
// repeating the full marker prefix on every continuation line.
func (f *formatter) emitQuote(line string) {
	if len(line) <= f.cfg.width {
		f.out = append(f.out, line)
		return
	}
	n, _ := quotePrefix(line)
	f.out = append(f.out, wrapBlock(line[:n], line[:n], line[n:], f.cfg.width, endsWithHardBreak(line))...)
}

func (f *formatter) startParagraph(first, cont string) {
	f.paraFirst = first
	f.paraCont = cont
}

// addParagraphLine buffers a line of the open paragraph. A hard line break
// closes the paragraph right away.
func (f *formatter) addParagraphLine(line string) {
	f.para = append(f.para, line)
	switch {
	case endsWithHardBreak(line):
		f.paraBrk = true
		f.flushParagraph()
	case strings.HasSuffix(line, "\\"):
		f.flushParagraph()
	}
}

func (f *formatter) flushParagraph() {
	if len(f.para) == 0 {
		return
	}
	text := strings.Join(f.para, " ")
	f.out = append(f.out, wrapBlock(f.paraFirst, f.paraCont, text, f.cfg.width, f.paraBrk)...)
	f.para = f.para[:0]
	f.paraBrk = false
}

func (f *formatter) flushTable() {
	if len(f.table) == 0 {
		return
	}
	f.out = appendTable(f.out, f.table, f.cfg.width, f.cfg.tables)
	f.table = f.table[:0]
}
