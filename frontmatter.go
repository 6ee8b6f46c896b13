package mdwrap

import "strings"

// frontMatterEnd returns the number of leading lines that form a front matter
// block, or 0 when the document does not open with one. The opening line must
// be a YAML (---), TOML (+++) or JSON (;;;) delimiter, the next line must look
// like metadata and a matching closing delimiter must follow.
func frontMatterEnd(lines []string) int {
	if len(lines) < 3 {
		return 0
	}
	delim, ok := parseOpeningFrontMatterDelimiter(lines[0])
	if !ok {
		return 0
	}
	if !frontMatterMetadataLikely(lines[1]) {
		return 0
	}
	for i := 2; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == delim {
			return i + 1
		}
	}
	return 0
}

func parseOpeningFrontMatterDelimiter(line string) (string, bool) {
	trimmed := strings.TrimSpace(trimBOM(line))
	switch trimmed {
	case "---", "+++", ";;;":
		return trimmed, true
	default:
		return "", false
	}
}

func frontMatterMetadataLikely(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return true
	}
	return strings.Contains(trimmed, ":") || strings.Contains(trimmed, "=")
}

func trimBOM(s string) string {
	return strings.TrimPrefix(s, "\ufeff")
}
