package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderBold(t *testing.T) {
	out := Render("This clause is **critical** to review.")
	assert.Equal(t, `This clause is <strong class="font-bold">critical</strong> to review.`, out)
}

func TestRenderItalic(t *testing.T) {
	out := Render("See *Section 4.2* for details.")
	assert.Equal(t, `See <em class="italic">Section 4.2</em> for details.`, out)
}

func TestRenderNewlines(t *testing.T) {
	out := Render("First line.\nSecond line.")
	assert.Equal(t, "First line.<br/>Second line.", out)
}

func TestRenderBoldBeforeItalic(t *testing.T) {
	// If italic ran first, the asterisk pairs inside ** ** would be consumed
	// as emphasis markers.
	out := Render("**bold** and *italic*")
	assert.Equal(t, `<strong class="font-bold">bold</strong> and <em class="italic">italic</em>`, out)
}

func TestRenderIdempotent(t *testing.T) {
	cases := []string{
		"**x**",
		"*y*",
		"line one\nline two",
		"**bold** with *italic*\nand a second line",
	}
	for _, in := range cases {
		once := Render(in)
		twice := Render(once)
		assert.Equal(t, once, twice, "input %q", in)
	}
}

func TestRenderNoDoubleWrap(t *testing.T) {
	out := Render(Render("**x**"))
	assert.Equal(t, `<strong class="font-bold">x</strong>`, out)
}

func TestStripTags(t *testing.T) {
	assert.Equal(t, "alert('hi')", StripTags("<script>alert('hi')</script>"))
	assert.Equal(t, "plain **markdown** survives", StripTags("plain **markdown** survives"))
	assert.Equal(t, "text", StripTags(`<a href="https://example.com">text</a>`))
}
