// Package writer renders the aggregation tree into a single markdown
// document and writes it out.
package writer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lc/srcmd/pkg/types"
)

const (
	// TopAnchor is the link target placed under the document title.
	TopAnchor = "document-top"
	// TOCAnchor is the link target placed under the table of contents.
	TOCAnchor = "table-of-contents"
	// maxHeadingLevel clamps deeply nested nodes to the largest heading
	// rank markdown supports.
	maxHeadingLevel = 6
)

// BackLink is the navigation line emitted after every rendered file.
var BackLink = fmt.Sprintf("[Back to Top](#%s) • [Back to TOC](#%s)", TopAnchor, TOCAnchor)

// Render produces the ordered lines of the whole document: title, top
// anchor, table of contents (only when at least one entry exists), then
// the pre-order body. Headings must already be assigned.
//
// File content is read fully per node; invalid UTF-8 is replaced with the
// Unicode replacement character so one undecodable file cannot block the
// run. Read failures themselves are propagated.
func Render(root *types.Node, title string) ([]string, error) {
	lines := []string{
		"# " + title,
		fmt.Sprintf("<a id=%q></a>", TopAnchor),
		"",
	}

	toc := renderTOC(root)
	if len(toc) > 0 {
		lines = append(lines, "## Table of Contents", fmt.Sprintf("<a id=%q></a>", TOCAnchor), "")
		lines = append(lines, toc...)
		lines = append(lines, "")
	}

	for _, child := range root.Children {
		var err error
		lines, err = renderNode(lines, child)
		if err != nil {
			return nil, err
		}
	}
	return lines, nil
}

// renderTOC emits one bullet per headed node, indented by nesting level,
// with directories recursing immediately after their own bullet so the
// table mirrors the tree.
func renderTOC(node *types.Node) []string {
	var lines []string
	for _, child := range node.Children {
		if child.Anchor != "" && child.HeadingText != "" {
			indent := strings.Repeat("  ", max(child.Depth-1, 0))
			lines = append(lines, fmt.Sprintf("%s- [%s](#%s)", indent, child.HeadingText, child.Anchor))
		}
		if child.IsDir {
			lines = append(lines, renderTOC(child)...)
		}
	}
	return lines
}

func renderNode(lines []string, node *types.Node) ([]string, error) {
	level := min(node.Depth+1, maxHeadingLevel)
	if node.HeadingText != "" {
		lines = append(lines, strings.Repeat("#", level)+" "+node.HeadingText)
		if node.Anchor != "" {
			lines = append(lines, fmt.Sprintf("<a id=%q></a>", node.Anchor))
		}
	}
	lines = append(lines, "")

	if node.IsDir {
		for _, child := range node.Children {
			var err error
			lines, err = renderNode(lines, child)
			if err != nil {
				return nil, err
			}
		}
		return lines, nil
	}

	content, err := readLossy(node.Path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", node.Rel, err)
	}

	if node.IsMarkdown {
		// Embedded, not fenced, so the file's own heading structure
		// survives.
		lines = append(lines, fmt.Sprintf("<!-- Begin %s -->", node.Rel))
		if content != "" {
			lines = append(lines, content)
		}
		lines = append(lines, fmt.Sprintf("<!-- End %s -->", node.Rel), BackLink, "")
		return lines, nil
	}

	lang := LanguageHint(filepath.Ext(node.Path))
	lines = append(lines, "```"+lang, content, "```", BackLink, "")
	return lines, nil
}

// readLossy reads a file fully, substitutes invalid UTF-8 sequences with
// U+FFFD and trims trailing newlines.
func readLossy(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	content := strings.ToValidUTF8(string(data), "�")
	return strings.TrimRight(content, "\n"), nil
}

// Write joins the rendered lines and writes them to path as UTF-8 with a
// trailing newline, creating parent directories as needed.
func Write(path string, lines []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	doc := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	return nil
}
