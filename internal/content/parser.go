package content

import (
	"bytes"
	"html"
	"regexp"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Parser converts raw markup into rendered HTML plus the list of @mentions
// found in the source, in encounter order. Parsing has no side effects and
// never fails: malformed markup degrades to literal text.
type Parser interface {
	Parse(source string) ParseResult
}

// ParseResult is the output of a single parse pass
type ParseResult struct {
	HTML     string
	Mentions []string // mentioned usernames, left to right as they occur in the source
}

// A mention is "@" followed by a username, at the start of the text or after
// a non-word character, so email addresses don't count.
var mentionPattern = regexp.MustCompile(`(?:^|[^\w@])@([A-Za-z0-9_]{2,50})`)

// MarkdownParser implements Parser for CommonMark markup
type MarkdownParser struct {
	md goldmark.Markdown
}

// NewMarkdownParser creates a new MarkdownParser
func NewMarkdownParser() *MarkdownParser {
	return &MarkdownParser{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
		),
	}
}

// Parse renders the source to HTML and extracts mentions
func (p *MarkdownParser) Parse(source string) ParseResult {
	return ParseResult{
		HTML:     p.render(source),
		Mentions: ExtractMentions(source),
	}
}

func (p *MarkdownParser) render(source string) string {
	var buf bytes.Buffer
	if err := p.md.Convert([]byte(source), &buf); err != nil {
		// Renderer errors degrade to the escaped source, never to a failure
		return "<p>" + html.EscapeString(source) + "</p>"
	}
	return buf.String()
}

// ExtractMentions scans raw text for @username references in source order.
// Duplicates are kept; de-duplication is the consumer's call.
func ExtractMentions(source string) []string {
	matches := mentionPattern.FindAllStringSubmatch(source, -1)
	if len(matches) == 0 {
		return nil
	}
	mentions := make([]string, 0, len(matches))
	for _, m := range matches {
		mentions = append(mentions, m[1])
	}
	return mentions
}
