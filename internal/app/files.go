package app

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rivo/tview"
	"github.com/sahilm/fuzzy"

	"github.com/lc/srcmd/pkg/types"
)

const previewMaxLines = 1000

func (p *Picker) toggleSelection(idx int) {
	if idx < 0 || idx >= len(p.files) {
		return
	}

	currentItem := p.fileList.GetCurrentItem()
	p.selected[idx] = !p.selected[idx]

	if p.selected[idx] {
		p.updateStatus(fmt.Sprintf("Added %s", p.files[idx].Rel))
	} else {
		p.updateStatus(fmt.Sprintf("Removed %s", p.files[idx].Rel))
	}

	p.updateFileList()

	// Restore the cursor position
	if currentItem >= 0 && currentItem < p.fileList.GetItemCount() {
		p.fileList.SetCurrentItem(currentItem)
	}
}

// handleSearch filters the list as the search text changes.
func (p *Picker) handleSearch(text string) {
	p.searchString = text
	p.updateFileList()

	if len(p.filteredIdx) == 0 {
		p.preview.Clear()
		p.status.SetText("No matches found")
		return
	}
	p.handleSelection(0)
}

func (p *Picker) updateFileList() {
	p.fileList.Clear()
	p.filteredIdx = p.filteredIdx[:0]

	if p.searchString == "" {
		for i, f := range p.files {
			p.filteredIdx = append(p.filteredIdx, i)
			p.fileList.AddItem(p.formatListItem(f, p.selected[i]), "", 0, nil)
		}
		return
	}

	// Perform fuzzy search over the relative paths
	patterns := make([]string, len(p.files))
	for i, f := range p.files {
		patterns[i] = f.Rel
	}

	matches := fuzzy.Find(p.searchString, patterns)
	for _, match := range matches {
		p.filteredIdx = append(p.filteredIdx, match.Index)
		p.fileList.AddItem(p.formatListItem(p.files[match.Index], p.selected[match.Index]), "", 0, nil)
	}
}

func (p *Picker) formatListItem(f *types.Node, selected bool) string {
	prefix := map[bool]string{true: "[x]", false: "[ ]"}[selected]
	return fmt.Sprintf("%s %s", prefix, f.Rel)
}

func (p *Picker) handleSelection(index int) {
	if index >= 0 && index < len(p.filteredIdx) {
		p.showPreview(p.files[p.filteredIdx[index]])
	}
}

func (p *Picker) updateStatus(msg string) {
	p.status.SetText(msg)
}

// showPreview renders up to previewMaxLines of the file with line numbers,
// highlighting lines that contain the current search string.
func (p *Picker) showPreview(f *types.Node) {
	file, err := os.Open(f.Path)
	if err != nil {
		p.preview.SetText(fmt.Sprintf("Error opening file: %v", err))
		return
	}
	defer file.Close()

	var lines []string
	reader := bufio.NewReader(file)
	for len(lines) < previewMaxLines {
		line, err := reader.ReadString('\n')
		if line != "" {
			lines = append(lines, strings.TrimRight(line, "\n"))
		}
		if err != nil {
			if err != io.EOF {
				p.preview.SetText(fmt.Sprintf("Error reading file: %v", err))
				return
			}
			break
		}
	}

	var preview strings.Builder
	fmt.Fprintf(&preview, "[yellow]%s (%d lines)[white]\n", f.Rel, len(lines))
	for i, line := range lines {
		line = tview.Escape(line)
		if p.searchString != "" && strings.Contains(
			strings.ToLower(line),
			strings.ToLower(p.searchString)) {
			line = fmt.Sprintf("[red]%s[white]", line)
		}
		fmt.Fprintf(&preview, "[dimgray]%4d[white] %s\n", i+1, line)
	}
	p.preview.SetText(preview.String())
	p.preview.ScrollTo(0, 0)
}
