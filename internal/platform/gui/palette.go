package gui

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/colorswitch/internal/colorswitch"
	"github.com/vovakirdan/colorswitch/internal/config"
	"github.com/vovakirdan/colorswitch/internal/core"
)

// Palette holds the window colors.
type Palette struct {
	Colors     [colorswitch.NumColors]color.RGBA
	Background color.RGBA
	Text       color.RGBA
	Dim        color.RGBA
}

// Of returns the color for c, or the text color for an invalid one.
func (p Palette) Of(c colorswitch.Color) color.RGBA {
	if !c.Valid() {
		return p.Text
	}
	return p.Colors[c]
}

// WithAlpha scales a color by alpha in [0, 1], premultiplied.
func WithAlpha(c color.RGBA, alpha float64) color.RGBA {
	alpha = core.ClampF(alpha, 0, 1)
	return color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: uint8(float64(c.A) * alpha),
	}
}

// ParsePalette reads the hex colors from the config.
func ParsePalette(cfg config.PaletteConfig) (Palette, error) {
	var (
		p    Palette
		errs []error
	)
	parse := func(name, hex string) color.RGBA {
		c, err := colorful.Hex(hex)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			return color.RGBA{A: 0xff}
		}
		r, g, b := c.RGB255()
		return color.RGBA{R: r, G: g, B: b, A: 0xff}
	}

	p.Colors[colorswitch.Red] = parse("red", cfg.Red)
	p.Colors[colorswitch.Yellow] = parse("yellow", cfg.Yellow)
	p.Colors[colorswitch.Green] = parse("green", cfg.Green)
	p.Colors[colorswitch.Blue] = parse("blue", cfg.Blue)
	p.Background = parse("background", cfg.Background)

	bg, _ := colorful.MakeColor(p.Background)
	p.Text = textOn(bg)
	p.Dim = dimOn(bg)

	if err := errors.Join(errs...); err != nil {
		return Palette{}, fmt.Errorf("gui: palette: %w", err)
	}
	return p, nil
}

// textOn picks white or near-black text, whichever reads better on bg.
func textOn(bg colorful.Color) color.RGBA {
	_, _, l := bg.Hsl()
	if l > 0.6 {
		return color.RGBA{R: 0x1e, G: 0x1e, B: 0x1e, A: 0xff}
	}
	return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
}

// dimOn blends the text color halfway into the background.
func dimOn(bg colorful.Color) color.RGBA {
	fg, _ := colorful.MakeColor(textOn(bg))
	r, g, b := fg.BlendRgb(bg, 0.5).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
