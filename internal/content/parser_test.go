package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractMentions(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{"no mentions", "just plain text", nil},
		{"single mention", "cc @alice please review", []string{"alice"}},
		{"mention at start", "@bob hello", []string{"bob"}},
		{"source order preserved", "ping @zoe then @adam then @mike", []string{"zoe", "adam", "mike"}},
		{"duplicates kept", "@alice and again @alice", []string{"alice", "alice"}},
		{"email is not a mention", "mail me at someone@example.com", nil},
		{"punctuation boundary", "thanks, @carol!", []string{"carol"}},
		{"single char too short", "a @x b", nil},
		{"underscores allowed", "hey @big_bird", []string{"big_bird"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractMentions(tt.source))
		})
	}
}

func TestMarkdownParserRendersHTML(t *testing.T) {
	p := NewMarkdownParser()

	res := p.Parse("# Hello\n\nsome **bold** text")
	assert.Contains(t, res.HTML, "<h1>Hello</h1>")
	assert.Contains(t, res.HTML, "<strong>bold</strong>")
	assert.Empty(t, res.Mentions)
}

func TestMarkdownParserNeverFails(t *testing.T) {
	p := NewMarkdownParser()

	// Malformed or hostile markup degrades to best-effort output, never to
	// an empty result
	inputs := []string{
		"**unclosed bold",
		"[broken link](",
		"``` no closing fence",
		"<div>raw html</div>",
		strings.Repeat(">", 500) + " deep quote",
	}
	for _, in := range inputs {
		res := p.Parse(in)
		assert.NotEmpty(t, res.HTML, "input %q", in)
	}
}

func TestMarkdownParserExtractsMentionsFromSource(t *testing.T) {
	p := NewMarkdownParser()

	res := p.Parse("cc @alice and @bob\n\n> quoted @carol")
	assert.Equal(t, []string{"alice", "bob", "carol"}, res.Mentions)
}
