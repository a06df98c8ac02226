package barcode

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	bc "github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// WriterOptions controls the raster output of an Encoder. Lengths are in
// millimetres.
type WriterOptions struct {
	ModuleWidth  float64
	ModuleHeight float64
	FontSize     float64
	DPI          float64
	QuietZone    float64
	TextDistance float64
}

// DefaultWriterOptions returns the settings used for label sheets
func DefaultWriterOptions() WriterOptions {
	return WriterOptions{
		ModuleWidth:  0.3,
		ModuleHeight: 40,
		FontSize:     1,
		DPI:          300,
		QuietZone:    6.5,
		TextDistance: 5,
	}
}

// Encoder turns a code into a raster image written next to basePath.
// Implementations append the file extension and return the written path.
type Encoder interface {
	Save(code, basePath string, opts WriterOptions) (string, error)
}

// Code128Encoder renders Code 128 symbols as PNG with a human-readable
// strip below the bars.
type Code128Encoder struct{}

// NewCode128Encoder creates a Code 128 encoder
func NewCode128Encoder() *Code128Encoder {
	return &Code128Encoder{}
}

// Save encodes code and writes basePath + ".png"
func (e *Code128Encoder) Save(code, basePath string, opts WriterOptions) (string, error) {
	img, err := e.Encode(code, opts)
	if err != nil {
		return "", err
	}
	path := basePath + ".png"
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", path, err)
	}
	return path, nil
}

// Encode builds the symbol image in memory
func (e *Code128Encoder) Encode(code string, opts WriterOptions) (image.Image, error) {
	if code == "" {
		return nil, fmt.Errorf("empty code")
	}
	symbol, err := code128.Encode(code)
	if err != nil {
		return nil, fmt.Errorf("code128 rejected %q: %w", code, err)
	}

	modulePx := mmToPx(opts.ModuleWidth, opts.DPI)
	barsW := symbol.Bounds().Dx() * modulePx
	barsH := mmToPx(opts.ModuleHeight, opts.DPI)
	scaled, err := bc.Scale(symbol, barsW, barsH)
	if err != nil {
		return nil, fmt.Errorf("failed to scale symbol: %w", err)
	}

	quiet := mmToPx(opts.QuietZone, opts.DPI)
	top := mmToPx(1, opts.DPI)
	gap := mmToPx(opts.TextDistance, opts.DPI)
	face := basicfont.Face7x13
	textH := face.Metrics().Height.Ceil()

	// The strip sits below the bars; the bottom margin keeps it in the lower half.
	width := barsW + 2*quiet
	height := top + barsH + gap + textH
	if height < 2*(top+barsH) {
		height = 2 * (top + barsH)
	}

	canvas := image.NewGray(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(canvas, image.Rect(quiet, top, quiet+barsW, top+barsH), scaled, image.Point{}, draw.Src)

	// FontSize 0 disables the strip; any positive size uses the fixed 7x13 face.
	if opts.FontSize > 0 {
		d := &font.Drawer{
			Dst:  canvas,
			Src:  image.NewUniform(color.Black),
			Face: face,
		}
		textW := d.MeasureString(code).Ceil()
		d.Dot = fixed.P((width-textW)/2, top+barsH+gap+face.Metrics().Ascent.Ceil())
		d.DrawString(code)
	}

	return canvas, nil
}

func mmToPx(mm, dpi float64) int {
	px := int(math.Round(mm * dpi / 25.4))
	if px < 1 {
		return 1
	}
	return px
}
