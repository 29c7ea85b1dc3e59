// Package sanitize strips HTML markup and script-injection vectors from
// free-text fields before they are stored or displayed.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	tagRe     = regexp.MustCompile(`(?s)<[^>]*>`)
	jsURIRe   = regexp.MustCompile(`(?i)javascript\s*:`)
	handlerRe = regexp.MustCompile(`(?i)\bon\w+\s*=`)

	quoteReplacer = strings.NewReplacer("<", "", ">", "", `"`, "", "'", "", "`", "")
)

// Strip removes HTML tags, leftover angle brackets and quotes,
// javascript: URIs and inline on*= handler fragments, then trims
// surrounding whitespace. Removal runs to a fixpoint so that nested
// payloads ("jajavascript:vascript:") cannot survive one pass, which also
// makes Strip idempotent.
func Strip(s string) string {
	for {
		next := stripOnce(s)
		if next == s {
			break
		}
		s = next
	}
	return strings.TrimSpace(s)
}

func stripOnce(s string) string {
	s = tagRe.ReplaceAllString(s, "")
	s = quoteReplacer.Replace(s)
	s = jsURIRe.ReplaceAllString(s, "")
	s = handlerRe.ReplaceAllString(s, "")
	return s
}
