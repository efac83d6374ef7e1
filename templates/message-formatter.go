package templates

import (
	"html/template"
	"net/url"
	"regexp"
	"strings"
)

var (
	urlPattern     = regexp.MustCompile(`((?:https?://)[\w\.\/\%\-\:\=\#\?\&;]+)`)
	mentionPattern = regexp.MustCompile(`(^|\s)@(\w{1,30})`)
)

// FormatMessage escapes a warble and turns links and @mentions into anchors.
func FormatMessage(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = formatLine(line)
	}
	return strings.Join(lines, "<br>")
}

func formatLine(line string) string {
	escaped := template.HTMLEscapeString(line)
	escaped = urlPattern.ReplaceAllString(escaped, `<a href="$1" rel="nofollow noopener" target="_blank">$1</a>`)
	return mentionPattern.ReplaceAllStringFunc(escaped, func(match string) string {
		parts := mentionPattern.FindStringSubmatch(match)
		return parts[1] + `<a href="/users?q=` + url.QueryEscape(parts[2]) + `" class="mention">@` + parts[2] + `</a>`
	})
}
