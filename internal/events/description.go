package events

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"ivarberg/internal/models"
)

// ExcerptLength is the cut-off for collapsed descriptions.
const ExcerptLength = 300

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// RenderDescription returns the description as HTML. Raw HTML inside
// markdown is not passed through.
func RenderDescription(description string, format models.DescriptionFormat) (string, error) {
	if strings.TrimSpace(description) == "" {
		return "", nil
	}
	if format == models.FormatPlain {
		escaped := html.EscapeString(description)
		return "<p>" + strings.ReplaceAll(escaped, "\n", "<br>\n") + "</p>\n", nil
	}

	var buf bytes.Buffer
	if err := markdown.Convert([]byte(description), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

var (
	markdownLink   = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	markdownSyntax = regexp.MustCompile("[#*_`>\\[\\]]")
	whitespaceRun  = regexp.MustCompile(`[ \t]+`)
)

// PlainText strips markdown markup for contexts that only take text.
func PlainText(description string, format models.DescriptionFormat) string {
	if format == models.FormatPlain {
		return strings.TrimSpace(description)
	}
	text := markdownLink.ReplaceAllString(description, "$1")
	text = markdownSyntax.ReplaceAllString(text, "")
	text = whitespaceRun.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// Excerpt shortens text to ExcerptLength characters followed by an ellipsis.
func Excerpt(text string) string {
	runes := []rune(text)
	if len(runes) <= ExcerptLength {
		return text
	}
	return string(runes[:ExcerptLength]) + "..."
}
