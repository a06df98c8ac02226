package labelsheet

import (
	"github.com/gompdf/labelsheet/pkg/api"
)

type Generator = api.Generator
type Options = api.Options
type Option = api.Option
type Summary = api.Summary
type Skip = api.Skip
type Placement = api.Placement

func New() *Generator                           { return api.New() }
func NewWithOptions(options Options) *Generator { return api.NewWithOptions(options) }
func DefaultOptions() Options                   { return api.DefaultOptions() }

var (
	ErrInvalidRequest = api.ErrInvalidRequest
	ErrGeneration     = api.ErrGeneration
)

var (
	WithPageSize       = api.WithPageSize
	WithMargins        = api.WithMargins
	WithRowsPerPage    = api.WithRowsPerPage
	WithRowGap         = api.WithRowGap
	WithBarcodeSize    = api.WithBarcodeSize
	WithFontSize       = api.WithFontSize
	WithMaxCount       = api.WithMaxCount
	WithWorkDir        = api.WithWorkDir
	WithRunScoping     = api.WithRunScoping
	WithKeepArtifacts  = api.WithKeepArtifacts
	WithDebugDrawBoxes = api.WithDebugDrawBoxes
	WithTitle          = api.WithTitle
	WithAuthor         = api.WithAuthor
	WithCreationDate   = api.WithCreationDate
	WithLogger         = api.WithLogger
	WithPageSizeA4     = api.WithPageSizeA4
	WithPageSizeLetter = api.WithPageSizeLetter
	WithPageSizeLegal  = api.WithPageSizeLegal
)

const (
	PageSizeA4Width  = api.PageSizeA4Width
	PageSizeA4Height = api.PageSizeA4Height
	PageSizeA5Width  = api.PageSizeA5Width
	PageSizeA5Height = api.PageSizeA5Height

	PageSizeLetterWidth  = api.PageSizeLetterWidth
	PageSizeLetterHeight = api.PageSizeLetterHeight
	PageSizeLegalWidth   = api.PageSizeLegalWidth
	PageSizeLegalHeight  = api.PageSizeLegalHeight
)
