package app

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

func (p *Picker) setupUI() {
	// Configure search field
	p.search.SetLabel("Search: ").
		SetChangedFunc(p.handleSearch)

	// Configure file list
	p.fileList.ShowSecondaryText(false).
		SetBorder(true).
		SetTitle("Files (↑/↓ to move, Space to toggle, Enter to write, q to quit)")

	// Configure preview pane
	p.preview.SetBorder(true)
	p.preview.SetTitle("Preview")
	p.preview.SetDynamicColors(true)
	p.preview.SetWrap(true)

	// Configure status bar
	p.status.SetBorder(true).
		SetTitle("Status")

	// Create layout
	mainFlex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(p.search, 1, 0, true).
		AddItem(tview.NewFlex().
			AddItem(p.fileList, 0, 2, false).
			AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
				AddItem(p.preview, 0, 3, false).
				AddItem(p.status, 3, 1, false), 0, 3, false),
			0, 1, false)

	// Set up key handlers
	p.fileList.SetInputCapture(p.handleInput)
	p.search.SetInputCapture(p.handleSearchInput)

	// Update the preview as the cursor moves
	p.fileList.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		p.handleSelection(index)
	})

	p.SetRoot(mainFlex, true)
}

func (p *Picker) handleInput(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyRune:
		switch event.Rune() {
		case 'q':
			p.abort()
			return nil
		case 'w':
			p.confirm()
			return nil
		case ' ':
			if idx := p.fileList.GetCurrentItem(); idx >= 0 && idx < len(p.filteredIdx) {
				p.toggleSelection(p.filteredIdx[idx])
			}
			return nil
		}
	case tcell.KeyEnter:
		p.confirm()
		return nil
	case tcell.KeyCtrlC:
		p.abort()
		return nil
	case tcell.KeyEscape:
		p.SetFocus(p.search)
		return nil
	}
	return event
}

func (p *Picker) handleSearchInput(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyDown:
		p.SetFocus(p.fileList)
		return nil
	case tcell.KeyCtrlC:
		p.abort()
		return nil
	case tcell.KeyEnter:
		if len(p.filteredIdx) > 0 {
			p.SetFocus(p.fileList)
			return nil
		}
	}
	return event
}
