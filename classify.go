package mdwrap

import "strings"

// Kind is the structural class assigned to a source line.
type Kind uint8

const (
	// KindText is plain paragraph text.
	KindText Kind = iota
	// KindFence is a code fence marker line that opens or closes a fence.
	KindFence
	// KindFenced is a line inside a code fence.
	KindFenced
	// KindTableRow is a pipe table row.
	KindTableRow
	// KindTableSeparator is a pipe table delimiter row such as |---|:--:|.
	KindTableSeparator
	// KindHeading is an ATX heading.
	KindHeading
	// KindHTML is a line that opens with an HTML tag, comment or declaration.
	KindHTML
	// KindBreak is a thematic break or setext heading underline.
	KindBreak
	// KindBlockquote is a blockquote line.
	KindBlockquote
	// KindListItem is a bullet or ordered list item.
	KindListItem
	// KindIndentedCode is a line indented by a tab or four or more spaces.
	KindIndentedCode
	// KindBlank is an empty or whitespace-only line.
	KindBlank
	// KindFrontMatter is a line of the leading front matter block.
	KindFrontMatter
)

var kindNames = [...]string{
	KindText:           "text",
	KindFence:          "fence",
	KindFenced:         "fenced",
	KindTableRow:       "table-row",
	KindTableSeparator: "table-separator",
	KindHeading:        "heading",
	KindHTML:           "html",
	KindBreak:          "break",
	KindBlockquote:     "blockquote",
	KindListItem:       "list-item",
	KindIndentedCode:   "indented-code",
	KindBlank:          "blank",
	KindFrontMatter:    "front-matter",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Verbatim reports whether lines of this kind are always emitted unchanged.
func (k Kind) Verbatim() bool {
	switch k {
	case KindFence, KindFenced, KindHeading, KindHTML, KindBreak, KindIndentedCode, KindFrontMatter:
		return true
	}
	return false
}

// Classify returns the kind of a single line. inFence reports whether the line
// sits between fence markers. Rules are checked most specific first, so an
// indented bullet is a list item and a row with pipes is never paragraph text.
func Classify(line string, inFence bool) Kind {
	if isFence(line) {
		return KindFence
	}
	if inFence {
		return KindFenced
	}
	if isTableSeparator(line) {
		return KindTableSeparator
	}
	if strings.Count(line, "|") >= 2 {
		return KindTableRow
	}
	if isHeading(line) {
		return KindHeading
	}
	if isHTMLLine(line) {
		return KindHTML
	}
	if isBreak(line) {
		return KindBreak
	}
	if _, ok := quotePrefix(line); ok {
		return KindBlockquote
	}
	if _, ok := listPrefix(line); ok {
		return KindListItem
	}
	if strings.HasPrefix(line, "\t") || strings.HasPrefix(line, "    ") {
		return KindIndentedCode
	}
	if strings.TrimSpace(line) == "" {
		return KindBlank
	}
	return KindText
}

// classifyLines assigns a kind to every line of a document, tracking fence
// state and the optional leading front matter block.
func classifyLines(dst []Kind, lines []string, frontMatter bool) []Kind {
	dst = dst[:0]
	start := 0
	if frontMatter {
		start = frontMatterEnd(lines)
		for i := 0; i < start; i++ {
			dst = append(dst, KindFrontMatter)
		}
	}
	inFence := false
	for _, line := range lines[start:] {
		kind := Classify(line, inFence)
		if kind == KindFence {
			inFence = !inFence
		}
		dst = append(dst, kind)
	}
	return dst
}

func leadingSpace(s string) int {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return i
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t'
}

func isFence(line string) bool {
	return strings.HasPrefix(line[leadingSpace(line):], "```")
}

// isTableSeparator matches a delimiter row. Like any table line it needs at
// least two pipes, so "- |" stays a list item.
func isTableSeparator(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	dash := false
	pipes := 0
	for i := 0; i < len(trimmed); i++ {
		switch trimmed[i] {
		case '-':
			dash = true
		case '|':
			pipes++
		case ':', ' ', '\t':
		default:
			return false
		}
	}
	return dash && pipes >= 2
}

func isHeading(line string) bool {
	rest := line[leadingSpace(line):]
	n := 0
	for n < len(rest) && rest[n] == '#' {
		n++
	}
	if n == 0 || n > 6 {
		return false
	}
	return n == len(rest) || isSpace(rest[n])
}

func isHTMLLine(line string) bool {
	rest := line[leadingSpace(line):]
	if len(rest) < 2 || rest[0] != '<' {
		return false
	}
	switch c := rest[1]; {
	case c == '!' || c == '?':
		return true
	case c == '/':
		rest = rest[1:]
	}
	if len(rest) < 2 || !isASCIILetter(rest[1]) {
		return false
	}
	i := 2
	for i < len(rest) && (isASCIILetter(rest[i]) || isDigit(rest[i]) || rest[i] == '-') {
		i++
	}
	return i == len(rest) || isSpace(rest[i]) || rest[i] == '>' || rest[i] == '/'
}

// isBreak matches thematic breaks and setext underlines. A single '-' is an
// empty list item, so dashes need two.
func isBreak(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	marker := trimmed[0]
	var need int
	switch marker {
	case '=':
		need = 1
	case '-':
		need = 2
	case '*', '_':
		need = 3
	default:
		return false
	}
	count := 0
	for i := 0; i < len(trimmed); i++ {
		switch trimmed[i] {
		case marker:
			count++
		case ' ', '\t':
		default:
			return false
		}
	}
	return count >= need
}

// quotePrefix returns the length of the blockquote marker prefix: leading
// whitespace plus every '>' marker, each followed by whitespace or the end of
// the line.
func quotePrefix(line string) (int, bool) {
	i := leadingSpace(line)
	if i >= len(line) || line[i] != '>' {
		return 0, false
	}
	start := i
	j := i
	for j < len(line) && (line[j] == '>' || isSpace(line[j])) {
		j++
	}
	for j > start && j < len(line) && line[j-1] == '>' {
		j--
	}
	if j == start {
		return 0, false
	}
	return j, true
}

// listPrefix returns the length of the list marker prefix: leading
// whitespace, the bullet or ordinal marker and the whitespace after it. A
// marker that ends the line is an empty item.
func listPrefix(line string) (int, bool) {
	i := leadingSpace(line)
	if i >= len(line) {
		return 0, false
	}
	j := i
	switch line[j] {
	case '-', '*', '+':
		j++
	default:
		for j < len(line) && j-i < 9 && isDigit(line[j]) {
			j++
		}
		if j == i || j >= len(line) || (line[j] != '.' && line[j] != ')') {
			return 0, false
		}
		j++
	}
	if j == len(line) {
		return j, true
	}
	if !isSpace(line[j]) {
		return 0, false
	}
	for j < len(line) && isSpace(line[j]) {
		j++
	}
	return j, true
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
