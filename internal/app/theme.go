package app

import (
	"github.com/gdamore/tcell/v2"
)

// themeManager handles the picker's visual styling.
type themeManager struct {
	picker *Picker
	colors map[string]tcell.Color
}

func newThemeManager(p *Picker) *themeManager {
	return &themeManager{
		picker: p,
		colors: make(map[string]tcell.Color),
	}
}

// applyTheme applies the given theme colors to all UI components.
func (tm *themeManager) applyTheme(theme map[string]string) {
	for key, colorName := range theme {
		tm.colors[key] = tcell.GetColor(colorName)
	}

	tm.applyListColors()
	tm.applyPreviewColors()
	tm.applyStatusColors()
	tm.applySearchColors()
}

func (tm *themeManager) applyListColors() {
	list := tm.picker.fileList
	list.SetBackgroundColor(tm.getColor("background", tcell.ColorDefault))
	list.SetMainTextColor(tm.getColor("foreground", tcell.ColorWhite))
	list.SetSelectedBackgroundColor(tm.getColor("selection", tcell.ColorBlue))
	list.SetSelectedTextColor(tm.getColor("foreground", tcell.ColorWhite))
}

func (tm *themeManager) applyPreviewColors() {
	tm.picker.preview.SetBackgroundColor(tm.getColor("background", tcell.ColorDefault))
	tm.picker.preview.SetTextColor(tm.getColor("foreground", tcell.ColorWhite))
}

func (tm *themeManager) applyStatusColors() {
	tm.picker.status.SetBackgroundColor(tm.getColor("background", tcell.ColorDefault))
	tm.picker.status.SetTextColor(tm.getColor("status", tcell.ColorGreen))
}

func (tm *themeManager) applySearchColors() {
	search := tm.picker.search
	search.SetBackgroundColor(tm.getColor("background", tcell.ColorDefault))
	search.SetFieldBackgroundColor(tm.getColor("background", tcell.ColorDefault))
	search.SetFieldTextColor(tm.getColor("foreground", tcell.ColorWhite))
	search.SetLabelColor(tm.getColor("foreground", tcell.ColorWhite))
}

// getColor safely retrieves a color from the theme map with a fallback.
func (tm *themeManager) getColor(key string, fallback tcell.Color) tcell.Color {
	if color, ok := tm.colors[key]; ok {
		return color
	}
	return fallback
}
