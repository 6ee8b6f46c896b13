package mdwrap

// LongLine is a line that is still wider than the limit after formatting.
type LongLine struct {
	Line  int
	Kind  Kind
	Bytes int
	Text  string
}

// Overlong returns the lines of src wider than width bytes. Run it on
// formatted output to list what the formatter leaves alone on purpose:
// headings, code, narrow-enough tables and single words longer than the limit.
func Overlong(src []byte, width int, opts ...FormatOption) []LongLine {
	cfg := buildConfig(append(opts[:len(opts):len(opts)], WithWidth(width)))
	lines := SplitLines(string(src))
	kinds := classifyLines(make([]Kind, 0, len(lines)), lines, cfg.frontMatter)
	var long []LongLine
	for i, line := range lines {
		if len(line) <= cfg.width {
			continue
		}
		long = append(long, LongLine{
			Line:  i + 1,
			Kind:  kinds[i],
			Bytes: len(line),
			Text:  line,
		})
	}
	return long
}
