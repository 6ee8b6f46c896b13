package mdwrap

import "strings"

// hardBreak is the trailing marker of a Markdown hard line break.
const hardBreak = "  "

var spaceString = strings.Repeat(" ", 256)

func spaces(n int) string {
	if n <= len(spaceString) {
		return spaceString[:n]
	}
	return strings.Repeat(" ", n)
}

// wrapPrefixed reflows the words of text into lines no longer than width
// bytes. The first line starts with first and every later line with cont.
//
// A first word that does not fit after a list marker moves to a continuation
// line and leaves the bare marker behind. A word that cannot fit even on a
// fresh line is emitted alone and unsplit, which keeps multi-byte characters
// intact. Words that would change the class of a continuation line (a leading
// "#", "-", "```" and so on) stay glued to the word before them.
//
// A line never collects a second pipe, since it would read back as a table
// row.
func wrapPrefixed(first, cont, text string, width int) []string {
	words := wrapUnits(first, cont, strings.Fields(text))
	if len(words) == 0 {
		return []string{trimTrailing(first)}
	}
	lines := make([]string, 0, len(text)/max(width, 1)+2)
	if first != cont && len(first)+len(words[0]) > width &&
		Classify(cont+words[0]+" x", false) == Classify(cont+"x", false) {
		lines = append(lines, trimTrailing(first))
		first = cont
	}
	var b strings.Builder
	b.Grow(max(width, 0) + len(first))
	b.WriteString(first)
	b.WriteString(words[0])
	pipes := strings.Count(words[0], "|")
	for _, w := range words[1:] {
		wp := strings.Count(w, "|")
		if b.Len()+1+len(w) > width || pipes+wp >= 2 {
			lines = append(lines, trimTrailing(b.String()))
			b.Reset()
			b.WriteString(cont)
			b.WriteString(w)
			pipes = wp
			continue
		}
		b.WriteByte(' ')
		b.WriteString(w)
		pipes += wp
	}
	return append(lines, trimTrailing(b.String()))
}

// wrapBlock is wrapPrefixed with hard line break handling: a block whose source
// ended in a hard break keeps the break after its last word. When the break
// does not fit, the last line alone is refilled two bytes narrower, so the
// lines before it wrap exactly as they would without the break.
func wrapBlock(first, cont, text string, width int, brk bool) []string {
	lines := wrapPrefixed(first, cont, text, width)
	if !brk {
		return lines
	}
	last := len(lines) - 1
	if len(lines[last])+len(hardBreak) > width {
		prefix := cont
		if last == 0 {
			prefix = first
		}
		if strings.HasPrefix(lines[last], prefix) {
			tail := wrapPrefixed(prefix, cont, lines[last][len(prefix):], width-len(hardBreak))
			lines = append(lines[:last], tail...)
		}
	}
	lines[len(lines)-1] += hardBreak
	return lines
}

// wrapUnits merges every word that must not start a line into the unit before
// it: words that would change the class of a continuation line, and runs of
// thematic break characters. A unit that would change class when it ends up
// alone on its line takes the next word too. The result only depends on the
// prefixes and the words, so the same paragraph always wraps the same way.
func wrapUnits(first, cont string, words []string) []string {
	if len(words) < 2 {
		return words
	}
	natural := Classify(cont+"x", false)
	units := words[:1:1]
	prefix := first
	for _, w := range words[1:] {
		last := units[len(units)-1]
		if isMarkRun(w) || Classify(cont+w+" x", false) != natural ||
			Classify(prefix+last, false) != Classify(prefix+last+" x", false) {
			units[len(units)-1] = last + " " + w
			continue
		}
		units = append(units, w)
		prefix = cont
	}
	return units
}

// isMarkRun reports whether w repeats a single thematic break or setext
// character, like "---" or "==".
func isMarkRun(w string) bool {
	if w == "" || strings.IndexByte("-*_=", w[0]) < 0 {
		return false
	}
	for i := 1; i < len(w); i++ {
		if w[i] != w[0] {
			return false
		}
	}
	return true
}

func trimTrailing(s string) string {
	return strings.TrimRight(s, " \t")
}

// endsWithHardBreak reports whether a line ends with two or more spaces after
// non-space content.
func endsWithHardBreak(line string) bool {
	return strings.HasSuffix(line, hardBreak) && strings.TrimSpace(line) != ""
}
