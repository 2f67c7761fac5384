// Package format turns the light markup used in CV descriptions into HTML.
package format

import (
	"html"
	"regexp"
	"strings"

	"github.com/Zachkp/cv-site/internal/content"
)

// Bullet markers. The API data carries the middle dot mis-encoded as "Â·".
const (
	bulletMojibake = "Â·"
	bullet         = "·"
	subBullet      = ">"
)

// Description renders a multi-line description. Lines starting with a
// bullet become list items, lines starting with ">" become items of a
// sub-list nested in the current item, anything else is a paragraph.
//
// A sub-bullet before any bullet opens a nested list with no parent item.
func Description(s string) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	inList, inSubList := false, false

	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if text, ok := cutBullet(line); ok {
			if inSubList {
				b.WriteString("</ul>")
				inSubList = false
			}
			if !inList {
				b.WriteString("<ul>")
				inList = true
			} else {
				b.WriteString("</li>")
			}
			b.WriteString("<li>" + html.EscapeString(text))
			continue
		}

		if text, ok := strings.CutPrefix(line, subBullet); ok {
			if !inSubList {
				b.WriteString(`<ul class="indented">`)
				inSubList = true
			}
			b.WriteString("<li>" + html.EscapeString(strings.TrimSpace(text)) + "</li>")
			continue
		}

		if inSubList {
			b.WriteString("</ul>")
			inSubList = false
		}
		if inList {
			b.WriteString("</li></ul>")
			inList = false
		}
		b.WriteString("<p>" + html.EscapeString(line) + "</p>")
	}

	if inSubList {
		b.WriteString("</ul>")
	}
	if inList {
		b.WriteString("</li></ul>")
	}
	return b.String()
}

func cutBullet(line string) (string, bool) {
	for _, marker := range []string{bulletMojibake, bullet} {
		if rest, ok := strings.CutPrefix(line, marker); ok {
			return strings.TrimSpace(rest), true
		}
	}
	return "", false
}

// Items splits a "·"-delimited skill list.
func Items(s string) []string {
	return content.SplitList(strings.ReplaceAll(s, bulletMojibake, bullet), bullet)
}

// Tags splits a ";"-delimited tag list.
func Tags(s string) []string {
	return content.SplitList(s, ";")
}

var emphasis = regexp.MustCompile(`\*([^*]+)\*`)

// Emphasis escapes s and turns *text* into an emphasis paragraph.
func Emphasis(s string) string {
	return emphasis.ReplaceAllString(html.EscapeString(s), `<p class="project-em">$1</p>`)
}
