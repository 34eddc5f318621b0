package writer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/lc/srcmd/internal/anchor"
	"github.com/lc/srcmd/internal/filter"
	"github.com/lc/srcmd/internal/tree"
	"github.com/lc/srcmd/pkg/types"
)

func renderFixture(t *testing.T, files map[string]string, extensions []string) []string {
	t.Helper()
	tmpDir := t.TempDir()
	for path, content := range files {
		fullPath := filepath.Join(tmpDir, path)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
			t.Fatalf("Failed to create directory: %v", err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
	}

	f := filter.New(tmpDir, filepath.Join(tmpDir, "out.md"), types.FilterOptions{Extensions: extensions})
	root := tree.NewBuilder(f).Build(tmpDir)
	if root == nil {
		t.Fatal("expected surviving tree")
	}
	tree.AssignHeadings(root, anchor.NewRegistry())

	lines, err := Render(root, "Test Archive")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return lines
}

func TestRenderHeader(t *testing.T) {
	lines := renderFixture(t, map[string]string{"main.go": "package main"}, []string{".go"})

	want := []string{
		"# Test Archive",
		`<a id="document-top"></a>`,
		"",
		"## Table of Contents",
		`<a id="table-of-contents"></a>`,
		"",
		"- [main.go](#maingo)",
		"",
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %q, want %q", i, lines[i], w)
		}
	}
}

func TestRenderFencedFile(t *testing.T) {
	lines := renderFixture(t, map[string]string{"hello.py": "print('hi')\n\n"}, []string{".py"})
	doc := strings.Join(lines, "\n")

	for _, want := range []string{
		"## hello.py\n<a id=\"hellopy\"></a>\n",
		"```python\nprint('hi')\n```",
		BackLink,
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q\n%s", want, doc)
		}
	}
}

func TestRenderMarkdownEmbedded(t *testing.T) {
	content := "## Inner Heading\n\nbody text\n"
	lines := renderFixture(t, map[string]string{"notes.md": content}, []string{".go"})
	doc := strings.Join(lines, "\n")

	if strings.Contains(doc, "```") {
		t.Error("markdown files must not be fenced")
	}
	want := "<!-- Begin notes.md -->\n## Inner Heading\n\nbody text\n<!-- End notes.md -->\n" + BackLink
	if !strings.Contains(doc, want) {
		t.Errorf("document missing embedded markdown block:\n%s", doc)
	}
}

func TestRenderEmptyMarkdownFile(t *testing.T) {
	lines := renderFixture(t, map[string]string{"empty.md": "\n\n"}, []string{".go"})
	doc := strings.Join(lines, "\n")

	// No content line between the markers for an empty file.
	if !strings.Contains(doc, "<!-- Begin empty.md -->\n<!-- End empty.md -->") {
		t.Errorf("unexpected embed for empty markdown file:\n%s", doc)
	}
}

func TestRenderUnknownExtensionUntagged(t *testing.T) {
	lines := renderFixture(t, map[string]string{"weird.xyz": "???"}, []string{".xyz"})
	doc := strings.Join(lines, "\n")
	if !strings.Contains(doc, "```\n???\n```") {
		t.Errorf("unknown extension should produce an untagged fence:\n%s", doc)
	}
}

func TestRenderHeadingDepthClamped(t *testing.T) {
	lines := renderFixture(t, map[string]string{
		"a/b/c/d/e/f/deep.go": "package deep",
	}, []string{".go"})

	var got []string
	for _, l := range lines {
		if strings.HasPrefix(l, "#") && strings.Contains(l, " ") {
			got = append(got, strings.SplitN(l, " ", 2)[0])
		}
	}
	// Title, ToC heading, then depths 1..7 clamped at 6 hashes.
	want := []string{"#", "##", "##", "###", "####", "#####", "######", "######", "######"}
	if len(got) != len(want) {
		t.Fatalf("heading markers = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("heading markers = %v, want %v", got, want)
		}
	}
}

func TestRenderLossyContent(t *testing.T) {
	lines := renderFixture(t, map[string]string{
		"bad.go": "package main // caf\xe9 \xff\xfe end",
	}, []string{".go"})
	doc := strings.Join(lines, "\n")

	if !strings.Contains(doc, "�") {
		t.Error("invalid bytes should be substituted with the replacement character")
	}
	if !strings.Contains(doc, "end") {
		t.Error("valid content around invalid bytes must survive")
	}
}

func TestRenderIdempotent(t *testing.T) {
	files := map[string]string{
		"a/x.py": "print()",
		"a/y.md": "# y",
		"z.go":   "package z",
	}
	first := strings.Join(renderFixture(t, files, []string{".py", ".go"}), "\n")
	second := strings.Join(renderFixture(t, files, []string{".py", ".go"}), "\n")
	if first != second {
		t.Error("rendering the same tree twice must produce identical output")
	}
}

// TestRenderCorrespondence parses the rendered document and checks that
// table-of-contents entries and body headings are in 1:1 correspondence:
// same order, same text, same anchors.
func TestRenderCorrespondence(t *testing.T) {
	lines := renderFixture(t, map[string]string{
		"pkg/alpha.go":     "package alpha",
		"pkg/beta.go":      "package beta",
		"pkg/sub/gamma.go": "package gamma",
		"top.py":           "print()",
		"readme.md":        "plain text, no headings",
	}, []string{".go", ".py"})
	source := []byte(strings.Join(lines, "\n") + "\n")

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(source))

	var tocTexts, tocDests, headingTexts []string
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.Link:
			dest := string(v.Destination)
			label := nodeText(v, source)
			if strings.HasPrefix(dest, "#") && label != "Back to Top" && label != "Back to TOC" {
				tocTexts = append(tocTexts, label)
				tocDests = append(tocDests, strings.TrimPrefix(dest, "#"))
			}
		case *ast.Heading:
			txt := nodeText(v, source)
			if v.Level >= 2 && txt != "Table of Contents" {
				headingTexts = append(headingTexts, txt)
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatalf("walking document: %v", err)
	}

	if len(tocTexts) == 0 {
		t.Fatal("no table-of-contents links found")
	}
	if len(tocTexts) != len(headingTexts) {
		t.Fatalf("ToC has %d entries, body has %d headings", len(tocTexts), len(headingTexts))
	}
	for i := range tocTexts {
		if tocTexts[i] != headingTexts[i] {
			t.Errorf("entry %d: ToC text %q != heading %q", i, tocTexts[i], headingTexts[i])
		}
	}

	// Every ToC destination must have a matching anchor marker, in the
	// same order, after the two document-level anchors.
	var ids []string
	for _, line := range lines {
		if strings.HasPrefix(line, `<a id="`) {
			id := strings.TrimSuffix(strings.TrimPrefix(line, `<a id="`), `"></a>`)
			ids = append(ids, id)
		}
	}
	if len(ids) < 2 || ids[0] != TopAnchor || ids[1] != TOCAnchor {
		t.Fatalf("document-level anchors missing: %v", ids)
	}
	bodyIDs := ids[2:]
	if len(bodyIDs) != len(tocDests) {
		t.Fatalf("ToC has %d destinations, body has %d anchors", len(tocDests), len(bodyIDs))
	}
	for i := range tocDests {
		if tocDests[i] != bodyIDs[i] {
			t.Errorf("entry %d: ToC dest %q != body anchor %q", i, tocDests[i], bodyIDs[i])
		}
	}
}

func nodeText(n ast.Node, source []byte) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			sb.Write(t.Segment.Value(source))
		}
	}
	return sb.String()
}

func TestLanguageHint(t *testing.T) {
	tests := []struct {
		ext  string
		want string
	}{
		{".py", "python"},
		{".PY", "python"},
		{".go", "go"},
		{".sh", "bash"},
		{".yml", "yaml"},
		{".xyz", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := LanguageHint(tt.ext); got != tt.want {
			t.Errorf("LanguageHint(%q) = %q, want %q", tt.ext, got, tt.want)
		}
	}
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.md")
	if err := Write(path, []string{"# Title", "", "body"}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output file: %v", err)
	}
	if string(data) != "# Title\n\nbody\n" {
		t.Errorf("output = %q", string(data))
	}
}
