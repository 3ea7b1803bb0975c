// Package snapshot renders the widget as it would appear on screen to a
// PNG image, without a display server.
package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// Options describes what to draw.
type Options struct {
	Text    string
	Width   int
	Height  int
	Opacity float64 // applied to the background only
	Dark    bool
	Scale   float64 // 0 means 1
}

type palette struct {
	bg, fg, border, button, buttonText color.Color
}

var (
	lightPalette = palette{
		bg:         color.RGBA{0xfa, 0xfa, 0xfa, 0xff},
		fg:         color.RGBA{0x24, 0x1f, 0x31, 0xff},
		border:     color.RGBA{0xd0, 0xd0, 0xd0, 0xff},
		button:     color.RGBA{0xe0, 0xe0, 0xe0, 0xff},
		buttonText: color.RGBA{0x24, 0x1f, 0x31, 0xff},
	}
	darkPalette = palette{
		bg:         color.RGBA{0x24, 0x24, 0x24, 0xff},
		fg:         color.RGBA{0xf6, 0xf5, 0xf4, 0xff},
		border:     color.RGBA{0x44, 0x44, 0x44, 0xff},
		button:     color.RGBA{0x3a, 0x3a, 0x3a, 0xff},
		buttonText: color.RGBA{0xf6, 0xf5, 0xf4, 0xff},
	}
)

const (
	margin       = 8.0
	radius       = 10.0
	fontSize     = 13.0
	buttonHeight = 24.0
	buttonPad    = 10.0
	lineSpacing  = 1.3
)

// Render draws the widget card.
func Render(opts Options) (image.Image, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid size %dx%d", opts.Width, opts.Height)
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}

	face, err := loadFace(fontSize * scale)
	if err != nil {
		return nil, err
	}
	defer func() { _ = face.Close() }()

	w, h := float64(opts.Width)*scale, float64(opts.Height)*scale
	dc := gg.NewContext(int(w), int(h))
	dc.SetFontFace(face)

	pal := lightPalette
	if opts.Dark {
		pal = darkPalette
	}

	// Background with window opacity
	alpha := opts.Opacity
	if alpha <= 0 || alpha > 1 {
		alpha = 1
	}
	dc.DrawRoundedRectangle(0.5, 0.5, w-1, h-1, radius*scale)
	dc.SetColor(withAlpha(pal.bg, alpha))
	dc.FillPreserve()
	dc.SetColor(withAlpha(pal.border, alpha))
	dc.SetLineWidth(1)
	dc.Stroke()

	m := margin * scale
	bh := buttonHeight * scale

	// Label area above the button row
	text := strings.TrimRight(opts.Text, "\r\n")
	dc.SetColor(pal.fg)
	dc.DrawStringWrapped(text, m, m, 0, 0, w-2*m, lineSpacing, gg.AlignLeft)

	// Buttons: Previous at the start, Next at the end
	by := h - m - bh
	drawButton(dc, pal, "Previous", m, by, bh, scale, false)
	drawButton(dc, pal, "Next", w-m, by, bh, scale, true)

	return dc.Image(), nil
}

// drawButton draws a labelled button. With alignEnd, x is its right edge.
func drawButton(dc *gg.Context, pal palette, label string, x, y, h, scale float64, alignEnd bool) {
	tw, _ := dc.MeasureString(label)
	bw := tw + 2*buttonPad*scale
	if alignEnd {
		x -= bw
	}
	dc.DrawRoundedRectangle(x, y, bw, h, 4*scale)
	dc.SetColor(pal.button)
	dc.Fill()
	dc.SetColor(pal.buttonText)
	dc.DrawStringAnchored(label, x+bw/2, y+h/2, 0.5, 0.35)
}

// Encode renders the widget and writes it as PNG.
func Encode(w io.Writer, opts Options) error {
	img, err := Render(opts)
	if err != nil {
		return err
	}
	dc := gg.NewContextForImage(img)
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// Save renders the widget to a PNG file at path.
func Save(path string, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := Encode(f, opts); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func loadFace(size float64) (font.Face, error) {
	ttf, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

func withAlpha(c color.Color, alpha float64) color.Color {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
		A: uint8(alpha*255 + 0.5),
	}
}
