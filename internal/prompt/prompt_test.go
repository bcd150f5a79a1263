package prompt

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auditease-backend/internal/models"
)

func TestExcerptShortTextUnchanged(t *testing.T) {
	text := "Either party may terminate with 30 days written notice."
	assert.Equal(t, text, Excerpt(text))
}

func TestExcerptTruncatesToPrefix(t *testing.T) {
	long := strings.Repeat("a", MaxExcerptChars+5000)
	got := Excerpt(long)

	require.LessOrEqual(t, len(got), MaxExcerptChars)
	assert.True(t, strings.HasPrefix(long, got), "excerpt must be a prefix of the source")
	assert.Len(t, got, MaxExcerptChars)
}

func TestExcerptNeverSplitsMultibyteRune(t *testing.T) {
	// A euro sign straddles the byte limit; the cut must back off to the
	// rune boundary rather than emit invalid UTF-8.
	long := strings.Repeat("a", MaxExcerptChars-1) + "€" + strings.Repeat("b", 100)
	got := Excerpt(long)

	assert.True(t, utf8.ValidString(got), "excerpt must stay valid UTF-8")
	assert.True(t, strings.HasPrefix(long, got), "excerpt must be a prefix of the source")
	assert.Len(t, got, MaxExcerptChars-1, "the straddling rune is dropped whole")

	// An all-multibyte document truncates cleanly too.
	section := strings.Repeat("§", MaxExcerptChars)
	got = Excerpt(section)
	assert.True(t, utf8.ValidString(got))
	assert.True(t, strings.HasPrefix(section, got))
	assert.LessOrEqual(t, len(got), MaxExcerptChars)
}

func TestComposeSectionOrder(t *testing.T) {
	payload := Compose("MSA.pdf", "some text", nil, "What about liability?")

	ctxIdx := strings.Index(payload, "Context:")
	histIdx := strings.Index(payload, "History:")
	qIdx := strings.Index(payload, "User Question:")
	instIdx := strings.Index(payload, "Instructions:")

	require.NotEqual(t, -1, ctxIdx)
	require.NotEqual(t, -1, histIdx)
	require.NotEqual(t, -1, qIdx)
	require.NotEqual(t, -1, instIdx)
	assert.True(t, ctxIdx < histIdx && histIdx < qIdx && qIdx < instIdx,
		"sections must appear in fixed order")
}

func TestComposeContainsExcerptVerbatim(t *testing.T) {
	excerpt := "Either party may terminate with 30 days written notice."
	payload := Compose("Service Agreement", excerpt, nil, "What is the termination notice period?")

	assert.Contains(t, payload, excerpt)
	assert.Contains(t, payload, `documents named "Service Agreement"`)
	assert.Contains(t, payload, "User Question: What is the termination notice period?")
}

func TestComposeHistoryRendering(t *testing.T) {
	history := []models.Turn{
		models.NewTurn(models.RoleUser, "What is the liability cap?"),
		models.NewTurn(models.RoleAssistant, "The cap is $100,000."),
	}
	payload := Compose("MSA.pdf", "text", history, "And the term?")

	assert.Contains(t, payload, "User: What is the liability cap?\nAssistant: The cap is $100,000.")
}

func TestComposeEmptyExcerptAndHistory(t *testing.T) {
	// Both sections are still emitted with empty bodies; the instruction
	// block still applies.
	payload := Compose("Empty.pdf", "", nil, "Anything here?")

	assert.Contains(t, payload, "Context:")
	assert.Contains(t, payload, "History:")
	assert.Contains(t, payload, "Instructions:")
	assert.Contains(t, payload, "If the answer is not in the document, say so.")
}
