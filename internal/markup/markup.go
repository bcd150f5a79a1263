// Package markup renders the restricted markdown subset used by assistant
// messages (bold, italic, line breaks) into display-ready HTML.
package markup

import "regexp"

// Order matters: bold must be resolved before italic, otherwise the single
// asterisks inside **...** would be consumed as emphasis markers.
var (
	boldRe   = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicRe = regexp.MustCompile(`\*(.*?)\*`)
	nlRe     = regexp.MustCompile(`\n`)
	tagRe    = regexp.MustCompile(`<[^>]*>`)
)

// Render applies the three ordered substitutions. It is idempotent: the
// output contains no asterisks or newlines, so a second application is a
// no-op and already-wrapped text is never wrapped again.
func Render(text string) string {
	out := boldRe.ReplaceAllString(text, `<strong class="font-bold">$1</strong>`)
	out = italicRe.ReplaceAllString(out, `<em class="italic">$1</em>`)
	out = nlRe.ReplaceAllString(out, "<br/>")
	return out
}

// StripTags removes HTML tags from raw model output. It runs once at the
// gateway boundary, before text enters a conversation, so that Render only
// ever emits the three permitted substitutions. Must not run on rendered
// output, which contains the tags Render produced.
func StripTags(text string) string {
	return tagRe.ReplaceAllString(text, "")
}
