package pdf

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"codeberg.org/go-pdf/fpdf"
	"github.com/gompdf/labelsheet/internal/pagination"
	"go.uber.org/zap"
)

// RenderOptions contains options for rendering
type RenderOptions struct {
	Title        string
	Author       string
	Subject      string
	Keywords     string
	Creator      string
	Producer     string
	Orientation  string // "P" for portrait, "L" for landscape
	CreationDate time.Time
	// DebugDrawBoxes outlines every drawn image
	DebugDrawBoxes bool
}

// Canvas draws label sheets onto an fpdf document. Coordinates passed in are
// PDF user space (origin bottom-left); fpdf's top-left origin is hidden here.
type Canvas struct {
	pdf        *fpdf.Fpdf
	pageHeight float64
	debugBoxes bool
	sealed     bool
	logger     *zap.Logger
}

// NewCanvas creates an empty document of the given page size
func NewCanvas(size pagination.PageSize, options RenderOptions, logger *zap.Logger) *Canvas {
	if logger == nil {
		logger = zap.NewNop()
	}

	orient := options.Orientation
	if orient == "" {
		orient = "P" // Default to portrait if not specified
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: orient,
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: size.Width, Ht: size.Height},
	})

	// Rows are placed explicitly; an automatic break would split a label.
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(options.Title, true)
	pdf.SetAuthor(options.Author, true)
	pdf.SetSubject(options.Subject, true)
	pdf.SetKeywords(options.Keywords, true)
	pdf.SetCreator(options.Creator, true)
	pdf.SetProducer(options.Producer, true)
	if !options.CreationDate.IsZero() {
		pdf.SetCreationDate(options.CreationDate)
		pdf.SetModificationDate(options.CreationDate)
	}
	registerFonts(pdf)

	_, h := pdf.GetPageSize()
	return &Canvas{
		pdf:        pdf,
		pageHeight: h,
		debugBoxes: options.DebugDrawBoxes,
		logger:     logger,
	}
}

// registerFonts registers fonts with the PDF document
func registerFonts(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "", 12)
}

// AddPage starts a new page
func (c *Canvas) AddPage() {
	c.pdf.AddPage()
	c.logger.Debug("page added", zap.Int("page", c.pdf.PageNo()))
}

// PageCount returns the number of pages started so far
func (c *Canvas) PageCount() int {
	return c.pdf.PageCount()
}

// SetFont selects a core font, e.g. ("Helvetica", "B", 28)
func (c *Canvas) SetFont(family, style string, size float64) {
	c.pdf.SetFont(family, style, size)
}

// DrawImage places the image file at r, scaled to r's size. A file that cannot
// be read or parsed is reported and leaves the document usable.
func (c *Canvas) DrawImage(path string, r pagination.Rect) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("image %s is not readable: %w", path, err)
	}

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	c.pdf.RegisterImageOptions(path, opts)
	if err := c.takeError(); err != nil {
		return fmt.Errorf("failed to register image %s: %w", filepath.Base(path), err)
	}

	top := c.pageHeight - r.Y - r.H
	c.pdf.ImageOptions(path, r.X, top, r.W, r.H, false, opts, 0, "")
	if err := c.takeError(); err != nil {
		return fmt.Errorf("failed to draw image %s: %w", filepath.Base(path), err)
	}

	if c.debugBoxes {
		c.pdf.SetDrawColor(200, 0, 0)
		c.pdf.SetLineWidth(0.5)
		c.pdf.Rect(r.X, top, r.W, r.H, "D")
	}
	return nil
}

// DrawText writes text with its baseline starting at p
func (c *Canvas) DrawText(p pagination.Point, text string) {
	c.pdf.SetTextColor(0, 0, 0)
	c.pdf.Text(p.X, c.pageHeight-p.Y, text)
}

// Close seals the document and writes it to w. A document always has at
// least one page. Close may be called once.
func (c *Canvas) Close(w io.Writer) error {
	if c.sealed {
		return fmt.Errorf("document already sealed")
	}
	c.sealed = true
	if c.pdf.PageCount() == 0 {
		c.pdf.AddPage()
	}
	if err := c.pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

// takeError returns and clears the document's sticky error
func (c *Canvas) takeError() error {
	if c.pdf.Ok() {
		return nil
	}
	err := c.pdf.Error()
	c.pdf.ClearError()
	return err
}
