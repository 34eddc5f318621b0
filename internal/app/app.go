// Package app provides the interactive file picker shown with
// --interactive. It sits outside the deterministic aggregation core: the
// batch path never constructs it.
package app

import (
	"errors"

	"github.com/rivo/tview"

	"github.com/lc/srcmd/internal/config"
	"github.com/lc/srcmd/pkg/types"
)

// ErrAborted reports that the user quit the picker without confirming a
// selection.
var ErrAborted = errors.New("selection aborted")

// Picker is a terminal UI over the pruned tree's file nodes. It implements
// types.Selector.
type Picker struct {
	*tview.Application
	config       *config.Config
	themeManager *themeManager

	// UI components
	fileList *tview.List
	preview  *tview.TextView
	status   *tview.TextView
	search   *tview.InputField

	// State
	files        []*types.Node
	selected     []bool
	filteredIdx  []int
	searchString string
	confirmed    bool
}

// NewPicker creates a Picker styled from the UI section of cfg.
func NewPicker(cfg *config.Config) *Picker {
	p := &Picker{
		Application: tview.NewApplication(),
		config:      cfg,
		fileList:    tview.NewList(),
		preview:     tview.NewTextView(),
		status:      tview.NewTextView(),
		search:      tview.NewInputField(),
	}

	p.themeManager = newThemeManager(p)
	theme := config.DefaultTheme()
	if cfg.UI.Theme != "default" && len(cfg.UI.CustomTheme) > 0 {
		theme = cfg.UI.CustomTheme
	}
	p.themeManager.applyTheme(theme)

	p.setupUI()
	return p
}

// Select shows the picker over files, all selected initially, and blocks
// until the user confirms or quits. It returns the set of absolute paths
// to keep, or ErrAborted when the user backed out.
func (p *Picker) Select(files []*types.Node) (map[string]bool, error) {
	p.files = files
	p.selected = make([]bool, len(files))
	for i := range p.selected {
		p.selected[i] = true
	}

	p.updateFileList()
	if len(p.filteredIdx) > 0 {
		p.showPreview(p.files[p.filteredIdx[0]])
	}
	p.updateStatus("Space to toggle, Enter to write, q to quit")

	if err := p.Application.Run(); err != nil {
		return nil, err
	}
	if !p.confirmed {
		return nil, ErrAborted
	}
	return p.selection(), nil
}

// selection returns the absolute paths currently toggled on.
func (p *Picker) selection() map[string]bool {
	keep := make(map[string]bool, len(p.files))
	for i, f := range p.files {
		if p.selected[i] {
			keep[f.Path] = true
		}
	}
	return keep
}

// confirm finalizes the selection and stops the event loop.
func (p *Picker) confirm() {
	p.confirmed = true
	p.Application.Stop()
}

// abort stops the event loop without confirming.
func (p *Picker) abort() {
	p.confirmed = false
	p.Application.Stop()
}
