package openai

import "strings"

// cleanResponse reduces a raw chat completion to the bare rewritten text.
// Markdown code fences, bracketed annotations, and one layer of surrounding
// quotes are removed, and whitespace runs collapse to single spaces.
func cleanResponse(s string) string {
	s = strings.TrimSpace(s)

	// Strip markdown code fences if present
	s = strings.TrimPrefix(s, "```text")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	s = stripAnnotations(s)

	// Strip one layer of surrounding quotes
	for _, q := range []byte{'"', '\'', '`'} {
		if len(s) >= 2 && s[0] == q && s[len(s)-1] == q {
			s = s[1 : len(s)-1]
			break
		}
	}

	return strings.Join(strings.Fields(s), " ")
}

// stripAnnotations removes parenthesized and square-bracketed spans.
// A bracket with no closer is kept as ordinary text.
func stripAnnotations(s string) string {
	if !strings.ContainsAny(s, "([") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		var closer byte
		switch c {
		case '(':
			closer = ')'
		case '[':
			closer = ']'
		default:
			b.WriteByte(c)
			continue
		}
		end := strings.IndexByte(s[i+1:], closer)
		if end < 0 {
			b.WriteByte(c)
			continue
		}
		i += end + 1
	}
	return b.String()
}
