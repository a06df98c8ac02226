package api

import (
	"time"

	"go.uber.org/zap"
)

// Options represents configuration options for the label sheet generator
type Options struct {
	// Page dimensions
	PageWidth  float64
	PageHeight float64

	// Grid geometry; the sheet has a single column at MarginLeft
	MarginLeft    float64
	MarginTop     float64
	RowGap        float64
	RowsPerPage   int
	BarcodeWidth  float64
	BarcodeHeight float64
	FontSize      float64

	// MaxCount rejects larger batches; 0 means unlimited
	MaxCount int

	// WorkDir holds the barcode images of a run
	WorkDir string
	// RunScoping gives each run its own directory under WorkDir. Without it,
	// concurrent runs with overlapping codes overwrite each other's images.
	RunScoping bool
	// KeepArtifacts leaves the run directory on disk after the document is sealed
	KeepArtifacts bool

	// DebugDrawBoxes outlines every barcode image
	DebugDrawBoxes bool

	// Document metadata; an empty Title becomes "Barcodes <location>"
	Title        string
	Author       string
	Subject      string
	Keywords     string
	CreationDate time.Time

	Logger *zap.Logger
}

// Option is a function that modifies Options
type Option func(*Options)

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		// US Letter (612 x 792 points)
		PageWidth:  PageSizeLetterWidth,
		PageHeight: PageSizeLetterHeight,

		MarginLeft:    20,
		MarginTop:     100,
		RowGap:        100,
		RowsPerPage:   7,
		BarcodeWidth:  250,
		BarcodeHeight: 50,
		FontSize:      28,

		MaxCount: 0,

		WorkDir:       "static",
		RunScoping:    true,
		KeepArtifacts: false,
	}
}

// WithPageSize sets the page size
func WithPageSize(width, height float64) Option {
	return func(o *Options) {
		o.PageWidth = width
		o.PageHeight = height
	}
}

// WithMargins sets the left and top margins
func WithMargins(left, top float64) Option {
	return func(o *Options) {
		o.MarginLeft = left
		o.MarginTop = top
	}
}

// WithRowsPerPage sets how many labels fit on a page
func WithRowsPerPage(rows int) Option {
	return func(o *Options) {
		o.RowsPerPage = rows
	}
}

// WithRowGap sets the vertical pitch between labels
func WithRowGap(gap float64) Option {
	return func(o *Options) {
		o.RowGap = gap
	}
}

// WithBarcodeSize sets the drawn size of each barcode image
func WithBarcodeSize(width, height float64) Option {
	return func(o *Options) {
		o.BarcodeWidth = width
		o.BarcodeHeight = height
	}
}

// WithFontSize sets the label text size
func WithFontSize(size float64) Option {
	return func(o *Options) {
		o.FontSize = size
	}
}

// WithMaxCount limits the batch size
func WithMaxCount(n int) Option {
	return func(o *Options) {
		o.MaxCount = n
	}
}

// WithWorkDir sets the directory for barcode images
func WithWorkDir(dir string) Option {
	return func(o *Options) {
		o.WorkDir = dir
	}
}

// WithRunScoping toggles per-run subdirectories
func WithRunScoping(enabled bool) Option {
	return func(o *Options) {
		o.RunScoping = enabled
	}
}

// WithKeepArtifacts keeps barcode images after generation
func WithKeepArtifacts(keep bool) Option {
	return func(o *Options) {
		o.KeepArtifacts = keep
	}
}

// WithDebugDrawBoxes outlines barcode images
func WithDebugDrawBoxes(enabled bool) Option {
	return func(o *Options) {
		o.DebugDrawBoxes = enabled
	}
}

// WithTitle sets the document title
func WithTitle(title string) Option {
	return func(o *Options) {
		o.Title = title
	}
}

// WithAuthor sets the document author
func WithAuthor(author string) Option {
	return func(o *Options) {
		o.Author = author
	}
}

// WithCreationDate fixes the document timestamps
func WithCreationDate(t time.Time) Option {
	return func(o *Options) {
		o.CreationDate = t
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// Standard page sizes in points (1/72 inch)
const (
	PageSizeA4Width  = 595.28
	PageSizeA4Height = 841.89
	PageSizeA5Width  = 419.53
	PageSizeA5Height = 595.28

	// US Letter and Legal
	PageSizeLetterWidth  = 612
	PageSizeLetterHeight = 792
	PageSizeLegalWidth   = 612
	PageSizeLegalHeight  = 1008
)

// WithPageSizeA4 sets the page size to A4
func WithPageSizeA4() Option {
	return WithPageSize(PageSizeA4Width, PageSizeA4Height)
}

// WithPageSizeLetter sets the page size to US Letter
func WithPageSizeLetter() Option {
	return WithPageSize(PageSizeLetterWidth, PageSizeLetterHeight)
}

// WithPageSizeLegal sets the page size to US Legal
func WithPageSizeLegal() Option {
	return WithPageSize(PageSizeLegalWidth, PageSizeLegalHeight)
}
