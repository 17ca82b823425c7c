package document

import (
	"html/template"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	linesPolicyOnce sync.Once
	linesPolicy     *bluemonday.Policy
)

// linesSanitizer allows line breaks and nothing else.
func linesSanitizer() *bluemonday.Policy {
	linesPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("br")
		linesPolicy = policy
	})
	return linesPolicy
}

// joinLines escapes each line and joins them with <br>. The result goes through
// the sanitizer so only escaped text and <br> can reach the page.
func joinLines(lines []string) template.HTML {
	escaped := make([]string, len(lines))
	for i, line := range lines {
		escaped[i] = template.HTMLEscapeString(line)
	}
	// #nosec G203 -- output is escaped text and <br> only
	return template.HTML(linesSanitizer().Sanitize(strings.Join(escaped, "<br>")))
}
