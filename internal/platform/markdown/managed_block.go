package markdown

import "strings"

func blockMarkers(name string) (string, string) {
	return "<!-- worktime:" + name + ":begin -->", "<!-- worktime:" + name + ":end -->"
}

// ReplaceBlock swaps the generated text between the named markers, or
// appends a new block when the markers are missing. Text outside the
// markers is preserved.
func ReplaceBlock(body, name, generated string) string {
	begin, end := blockMarkers(name)
	block := begin + "\n" + strings.TrimRight(generated, "\n") + "\n" + end

	if start := strings.Index(body, begin); start >= 0 {
		if stop := strings.Index(body[start:], end); stop >= 0 {
			stop += start + len(end)
			return body[:start] + block + body[stop:]
		}
	}

	switch {
	case strings.TrimSpace(body) == "":
		return block + "\n"
	case strings.HasSuffix(body, "\n"):
		return body + "\n" + block + "\n"
	default:
		return body + "\n\n" + block + "\n"
	}
}
