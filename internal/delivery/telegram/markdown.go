package telegram

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var markdownParser = goldmark.New().Parser()

// markdownV2 converts CommonMark rule text into Telegram MarkdownV2. Only the
// subset used by the catalog is kept: paragraphs, emphasis, code spans and
// lists. Everything else degrades to escaped plain text.
func markdownV2(src string) string {
	source := []byte(src)
	doc := markdownParser.Parse(text.NewReader(source))

	var sb strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.Paragraph, *ast.TextBlock:
			if !entering && blockHasNext(n) {
				sb.WriteString("\n\n")
			}

		case *ast.Heading:
			sb.WriteString("*")
			if !entering && blockHasNext(n) {
				sb.WriteString("\n\n")
			}

		case *ast.List:
			if !entering && n.NextSibling() != nil {
				sb.WriteString("\n\n")
			}

		case *ast.ListItem:
			if entering {
				sb.WriteString("• ")
			} else if n.NextSibling() != nil {
				sb.WriteString("\n")
			}

		case *ast.Emphasis:
			mark := "_"
			if node.Level >= 2 {
				mark = "*"
			}
			sb.WriteString(mark)

		case *ast.CodeSpan:
			if entering {
				var code strings.Builder
				for c := node.FirstChild(); c != nil; c = c.NextSibling() {
					if t, ok := c.(*ast.Text); ok {
						code.Write(t.Segment.Value(source))
					}
				}
				sb.WriteString("`" + escapeCode(code.String()) + "`")
			}
			return ast.WalkSkipChildren, nil

		case *ast.Text:
			if entering {
				sb.WriteString(md(string(node.Segment.Value(source))))
				if node.SoftLineBreak() || node.HardLineBreak() {
					sb.WriteString("\n")
				}
			}

		case *ast.String:
			if entering {
				sb.WriteString(md(string(node.Value)))
			}
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(sb.String())
}

// blockHasNext reports whether a block is followed by another block in a
// loose context. Paragraphs inside tight list items are separated by the
// list item itself.
func blockHasNext(n ast.Node) bool {
	if n.NextSibling() == nil {
		return false
	}
	_, inItem := n.Parent().(*ast.ListItem)
	return !inItem
}

// escapeCode escapes the characters MarkdownV2 reserves inside code spans.
func escapeCode(s string) string {
	return strings.NewReplacer("\\", "\\\\", "`", "\\`").Replace(s)
}
