package xmldoc

import (
	"regexp"
	"strings"
)

// Element is one top-level tag of a documentation comment.
type Element struct {
	Name  string
	Attrs map[string]string
	// Content is the inner text with whitespace runs collapsed to one space.
	// Nested tags are kept verbatim.
	Content string
}

// Attr returns the named attribute or "".
func (e Element) Attr(name string) string {
	return e.Attrs[name]
}

var attrPattern = regexp.MustCompile(`([A-Za-z_][\w:-]*)\s*=\s*"([^"]*)"`)

// StripPrefix removes the leading `///` (and one following space) from each
// line and joins them with newlines.
func StripPrefix(lines []string) string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, Prefix)
		line = strings.TrimPrefix(line, " ")
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// Parse reads the top-level elements of documentation text. It is lenient:
// stray text is ignored and an unterminated element takes the rest of the
// input as its content.
func Parse(text string) []Element {
	var out []Element
	i := 0
	for i < len(text) {
		start := strings.IndexByte(text[i:], '<')
		if start < 0 {
			break
		}
		start += i
		end := strings.IndexByte(text[start:], '>')
		if end < 0 {
			break
		}
		end += start

		tag := text[start+1 : end]
		if tag == "" || tag[0] == '/' || tag[0] == '!' || tag[0] == '?' {
			i = end + 1
			continue
		}

		selfClosing := strings.HasSuffix(tag, "/")
		name, attrs := parseTag(strings.TrimSuffix(tag, "/"))
		if name == "" {
			i = end + 1
			continue
		}
		if selfClosing {
			out = append(out, Element{Name: name, Attrs: attrs})
			i = end + 1
			continue
		}

		closing := "</" + name + ">"
		ci := strings.Index(text[end+1:], closing)
		if ci < 0 {
			out = append(out, Element{Name: name, Attrs: attrs, Content: collapse(text[end+1:])})
			break
		}
		ci += end + 1
		out = append(out, Element{Name: name, Attrs: attrs, Content: collapse(text[end+1 : ci])})
		i = ci + len(closing)
	}
	return out
}

func parseTag(tag string) (string, map[string]string) {
	tag = strings.TrimSpace(tag)
	name := tag
	rest := ""
	if idx := strings.IndexAny(tag, " \t\n"); idx >= 0 {
		name, rest = tag[:idx], tag[idx+1:]
	}
	attrs := map[string]string{}
	for _, m := range attrPattern.FindAllStringSubmatch(rest, -1) {
		attrs[m[1]] = m[2]
	}
	return name, attrs
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Find returns the elements named name, in document order.
func Find(elements []Element, name string) []Element {
	var out []Element
	for _, e := range elements {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}
