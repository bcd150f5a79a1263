// Package prompt builds the single text payload sent to the inference
// endpoint: a bounded document excerpt, the serialized conversation history,
// the new question, and a fixed instruction block.
package prompt

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"auditease-backend/internal/models"
)

// MaxExcerptChars bounds how much document text is embedded in a payload.
// The endpoint is stateless, so the excerpt is re-sent on every call.
const MaxExcerptChars = 20000

const instructions = `You are a legal AI assistant. Answer the user's question specifically based on the document provided.
If the answer is not in the document, say so.
Be professional, concise, and helpful.
Cite specific sections if possible.`

// Excerpt returns the prefix of text used as grounding context. Truncation
// is silent; the static notice in the composed payload is the only hint.
// The cut backs off to the previous rune boundary so a multi-byte character
// straddling the limit is dropped whole instead of leaving invalid UTF-8.
func Excerpt(text string) string {
	if len(text) <= MaxExcerptChars {
		return text
	}
	cut := MaxExcerptChars
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

// Compose serializes one submission into the four-section payload. History
// must exclude the seed welcome turn; the caller passes the turns that
// preceded the new question.
func Compose(documentName, excerpt string, history []models.Turn, question string) string {
	var b strings.Builder

	b.WriteString("\nContext:\n")
	fmt.Fprintf(&b, "One of the user's documents named %q contains the following text:\n", documentName)
	b.WriteString("\"\"\"\n")
	b.WriteString(excerpt)
	b.WriteString("\n\"\"\" ... (truncated if too long)\n")

	b.WriteString("\nHistory:\n")
	for i, t := range history {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s: %s", t.Role.Label(), t.Content)
	}
	b.WriteByte('\n')

	fmt.Fprintf(&b, "\nUser Question: %s\n", question)

	b.WriteString("\nInstructions:\n")
	b.WriteString(instructions)
	b.WriteByte('\n')

	return b.String()
}
