package pagination

import (
	"errors"
	"fmt"
)

// Config holds the fixed geometry of a label sheet. All values are in points
// in PDF user space (origin bottom-left, y up).
type Config struct {
	PageSize PageSize

	// MarginLeft is the x of every label; the grid has a single column
	MarginLeft float64
	// MarginTop is the distance from the top edge to the first row's baseline
	MarginTop float64
	// RowGap is the vertical pitch between rows
	RowGap      float64
	RowsPerPage int

	// Barcode image draw size
	BarcodeWidth  float64
	BarcodeHeight float64
	// ImageOffsetY lifts the image above the row baseline
	ImageOffsetY float64

	FontFamily string
	FontStyle  string
	FontSize   float64
	// TextOffsetY places the text baseline relative to the row baseline
	TextOffsetY float64
	// CharWidth is the per-character width estimate used to centre the text
	CharWidth float64
}

// DefaultConfig returns the standard US Letter sheet with seven labels per page
func DefaultConfig() Config {
	return Config{
		PageSize:      PageSizeLetter,
		MarginLeft:    20,
		MarginTop:     100,
		RowGap:        100,
		RowsPerPage:   7,
		BarcodeWidth:  250,
		BarcodeHeight: 50,
		ImageOffsetY:  20,
		FontFamily:    "Helvetica",
		FontStyle:     "B",
		FontSize:      28,
		TextOffsetY:   -12,
		CharWidth:     7,
	}
}

// InitialTopY is the row-0 baseline of every page
func (c Config) InitialTopY() float64 {
	return c.PageSize.Height - c.MarginTop
}

// Validate checks that the grid fits on the page
func (c Config) Validate() error {
	if c.PageSize.Width <= 0 || c.PageSize.Height <= 0 {
		return fmt.Errorf("invalid page size %.2fx%.2f", c.PageSize.Width, c.PageSize.Height)
	}
	if c.RowsPerPage < 1 {
		return fmt.Errorf("rows per page must be at least 1, got %d", c.RowsPerPage)
	}
	if c.BarcodeWidth <= 0 || c.BarcodeHeight <= 0 {
		return errors.New("barcode draw size must be positive")
	}
	if c.FontSize <= 0 {
		return errors.New("font size must be positive")
	}
	if c.RowGap < 0 {
		return errors.New("row gap must not be negative")
	}
	top := c.InitialTopY() + c.ImageOffsetY + c.BarcodeHeight
	if top > c.PageSize.Height {
		return fmt.Errorf("first row image top %.2f exceeds page height %.2f", top, c.PageSize.Height)
	}
	bottom := c.InitialTopY() - float64(c.RowsPerPage-1)*c.RowGap + c.TextOffsetY
	if bottom < 0 {
		return fmt.Errorf("%d rows with gap %.2f do not fit on the page", c.RowsPerPage, c.RowGap)
	}
	return nil
}
