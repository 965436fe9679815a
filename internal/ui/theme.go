// Package ui provides the CrackLeaf graphical user interface using Fyne.
package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// PanelColor is the warm paper background of the window.
var PanelColor = color.NRGBA{R: 0xFC, G: 0xF5, B: 0xEA, A: 0xFF}

// LeafTheme is a light theme with a large CJK font and the paper background.
type LeafTheme struct {
	font fyne.Resource
}

var _ fyne.Theme = (*LeafTheme)(nil)

// NewLeafTheme creates the theme. A nil font keeps Fyne's default.
func NewLeafTheme(font fyne.Resource) fyne.Theme {
	return &LeafTheme{font: font}
}

// Color returns the color for the specified name. The window is always light.
func (t *LeafTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground, theme.ColorNameOverlayBackground, theme.ColorNameMenuBackground:
		return PanelColor
	case theme.ColorNameForeground:
		return color.NRGBA{R: 0x2B, G: 0x22, B: 0x18, A: 0xFF}
	case theme.ColorNameButton:
		return color.NRGBA{R: 0xF1, G: 0xE6, B: 0xD3, A: 0xFF}
	default:
		return theme.DefaultTheme().Color(name, theme.VariantLight)
	}
}

// Font returns the bundled font for every style when available.
func (t *LeafTheme) Font(style fyne.TextStyle) fyne.Resource {
	if t.font != nil && !style.Monospace && !style.Symbol {
		return t.font
	}
	return theme.DefaultTheme().Font(style)
}

// Icon returns the icon resource for the specified name.
func (t *LeafTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns the size for the specified name.
func (t *LeafTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 22
	case theme.SizeNameHeadingText:
		return 24
	case theme.SizeNameCaptionText:
		return 20
	case theme.SizeNamePadding:
		return 6
	default:
		return theme.DefaultTheme().Size(name)
	}
}
