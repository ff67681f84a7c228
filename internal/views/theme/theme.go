// Package theme holds the two colour palettes of the application and the
// fyne.Theme built from a palette. Palettes are plain values: switching the
// look means selecting a different palette, never editing one.
package theme

import (
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	fynetheme "fyne.io/fyne/v2/theme"
)

type Palette struct {
	Name    string
	Variant fyne.ThemeVariant

	Background color.NRGBA
	Surface    color.NRGBA
	Foreground color.NRGBA
	Muted      color.NRGBA
	Primary    color.NRGBA
	Accent     color.NRGBA
	Completed  color.NRGBA
	Success    color.NRGBA
	Error      color.NRGBA
	Border     color.NRGBA
}

func rgb(r, g, b uint8) color.NRGBA { return color.NRGBA{R: r, G: g, B: b, A: 0xff} }

var Light = Palette{
	Name:       "light",
	Variant:    fynetheme.VariantLight,
	Background: rgb(245, 247, 250),
	Surface:    rgb(255, 255, 255),
	Foreground: rgb(40, 42, 53),
	Muted:      rgb(120, 124, 140),
	Primary:    rgb(64, 115, 255),
	Accent:     rgb(100, 220, 180),
	Completed:  rgb(160, 170, 190),
	Success:    rgb(50, 200, 120),
	Error:      rgb(255, 90, 90),
	Border:     rgb(80, 80, 80),
}

var Dark = Palette{
	Name:       "dark",
	Variant:    fynetheme.VariantDark,
	Background: rgb(18, 20, 24),
	Surface:    rgb(30, 32, 38),
	Foreground: rgb(230, 235, 240),
	Muted:      rgb(160, 165, 170),
	Primary:    rgb(100, 150, 255),
	Accent:     rgb(50, 220, 180),
	Completed:  rgb(130, 140, 150),
	Success:    rgb(80, 220, 130),
	Error:      rgb(255, 120, 120),
	Border:     rgb(70, 70, 70),
}

// ByName returns the palette called name, falling back to Light.
func ByName(name string) Palette {
	if strings.EqualFold(strings.TrimSpace(name), Dark.Name) {
		return Dark
	}
	return Light
}

// Other returns the palette a toggle switches to.
func (p Palette) Other() Palette {
	if p.Name == Dark.Name {
		return Light
	}
	return Dark
}

// ToggleLabel is the caption of the button that switches away from p.
func (p Palette) ToggleLabel() string {
	if p.Name == Dark.Name {
		return "Light Mode"
	}
	return "Dark Mode"
}

// Theme renders one palette. Anything the palette does not define comes
// from the default Fyne theme in the palette's variant.
type Theme struct {
	palette Palette
}

var _ fyne.Theme = Theme{}

func New(p Palette) Theme {
	return Theme{palette: p}
}

func (t Theme) Palette() Palette { return t.palette }

func (t Theme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	p := t.palette
	switch name {
	case fynetheme.ColorNameBackground:
		return p.Background
	case fynetheme.ColorNameForeground:
		return p.Foreground
	case fynetheme.ColorNamePrimary, fynetheme.ColorNameFocus:
		return p.Primary
	case fynetheme.ColorNameButton, fynetheme.ColorNameInputBackground,
		fynetheme.ColorNameHeaderBackground, fynetheme.ColorNameMenuBackground,
		fynetheme.ColorNameOverlayBackground:
		return p.Surface
	case fynetheme.ColorNamePlaceHolder, fynetheme.ColorNameDisabled:
		return p.Muted
	case fynetheme.ColorNameSuccess:
		return p.Success
	case fynetheme.ColorNameError:
		return p.Error
	case fynetheme.ColorNameInputBorder, fynetheme.ColorNameSeparator:
		return p.Border
	}
	return fynetheme.DefaultTheme().Color(name, p.Variant)
}

func (t Theme) Font(style fyne.TextStyle) fyne.Resource {
	return fynetheme.DefaultTheme().Font(style)
}

func (t Theme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return fynetheme.DefaultTheme().Icon(name)
}

func (t Theme) Size(name fyne.ThemeSizeName) float32 {
	return fynetheme.DefaultTheme().Size(name)
}
