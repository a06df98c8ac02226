package pagination

import "unicode/utf8"

// PageSize represents standard page sizes
type PageSize struct {
	Width  float64
	Height float64
	Name   string
}

// Standard page sizes in points (1/72 inch)
var (
	PageSizeA4     = PageSize{Width: 595.28, Height: 841.89, Name: "A4"}
	PageSizeLetter = PageSize{Width: 612.00, Height: 792.00, Name: "Letter"}
	PageSizeLegal  = PageSize{Width: 612.00, Height: 1008.00, Name: "Legal"}
	PageSizeA3     = PageSize{Width: 841.89, Height: 1190.55, Name: "A3"}
	PageSizeA5     = PageSize{Width: 419.53, Height: 595.28, Name: "A5"}
)

// PageSizeByName looks up a standard page size, case-sensitively
func PageSizeByName(name string) (PageSize, bool) {
	for _, s := range []PageSize{PageSizeA4, PageSizeLetter, PageSizeLegal, PageSizeA3, PageSizeA5} {
		if s.Name == name {
			return s, true
		}
	}
	return PageSize{}, false
}

// Cursor is the position of the next free cell. Page is 0-based.
type Cursor struct {
	Page int
	Row  int
	TopY float64
}

// NewCursor returns the cursor for the first cell of the first page
func NewCursor(cfg Config) Cursor {
	return Cursor{Page: 0, Row: 0, TopY: cfg.InitialTopY()}
}

// Advance moves to the next cell. When the page is full the cursor rolls over
// to row 0 of the next page at the initial top coordinate.
func Advance(c Cursor, cfg Config) Cursor {
	c.Row++
	if c.Row >= cfg.RowsPerPage {
		c.Page++
		c.Row = 0
		c.TopY = cfg.InitialTopY()
	}
	return c
}

// Rect is an axis-aligned box anchored at its bottom-left corner
type Rect struct {
	X, Y, W, H float64
}

// Point is a text baseline origin
type Point struct {
	X, Y float64
}

// Placement is where one label lands
type Placement struct {
	Page  int
	Row   int
	Index int
	Code  string
	Image Rect
	Text  Point
}

// Place computes the placement of code at the cursor
func Place(c Cursor, cfg Config, index int, code string) Placement {
	x := cfg.MarginLeft
	y := c.TopY - float64(c.Row)*cfg.RowGap
	chars := float64(utf8.RuneCountInString(code))
	return Placement{
		Page:  c.Page,
		Row:   c.Row,
		Index: index,
		Code:  code,
		Image: Rect{X: x, Y: y + cfg.ImageOffsetY, W: cfg.BarcodeWidth, H: cfg.BarcodeHeight},
		Text:  Point{X: x + cfg.BarcodeWidth/2 - chars*cfg.CharWidth, Y: y + cfg.TextOffsetY},
	}
}

// CellOf returns the page and row of the k-th placed label (1-based)
func CellOf(k int, cfg Config) (page, row int) {
	return (k - 1) / cfg.RowsPerPage, (k - 1) % cfg.RowsPerPage
}

// PageCount returns the number of pages needed for n placed labels.
// An empty sheet still has one page.
func PageCount(n int, cfg Config) int {
	if n <= 0 {
		return 1
	}
	return (n + cfg.RowsPerPage - 1) / cfg.RowsPerPage
}
