package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gompdf/labelsheet/internal/barcode"
	"github.com/gompdf/labelsheet/internal/compose"
	"github.com/gompdf/labelsheet/internal/pagination"
	"github.com/gompdf/labelsheet/internal/render/pdf"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrInvalidRequest marks a request rejected before generation started
	ErrInvalidRequest = errors.New("invalid request")
	// ErrGeneration marks a failure of the whole document
	ErrGeneration = errors.New("document generation failed")
)

// Summary accounts for the placed and skipped labels of one run
type Summary = compose.Summary

// Skip describes one label left out of the document
type Skip = compose.Skip

// Placement is where one label was drawn
type Placement = pagination.Placement

// Generator is the main API for producing label sheets
type Generator struct {
	options Options
	encoder barcode.Encoder
}

// New creates a generator with default options
func New() *Generator {
	return NewWithOptions(DefaultOptions())
}

// NewWithOptions creates a generator with the specified options
func NewWithOptions(options Options) *Generator {
	return &Generator{options: options}
}

// Options returns a copy of the generator's options
func (g *Generator) Options() Options {
	return g.options
}

// Generate renders labels location1..locationN and writes the sealed PDF to
// output. Nothing is written to output unless the whole document succeeded.
func (g *Generator) Generate(location string, count int, output io.Writer) (*Summary, error) {
	var buf bytes.Buffer
	summary, err := g.generate(location, count, &buf)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(output, &buf); err != nil {
		return nil, fmt.Errorf("%w: failed to copy PDF to output: %w", ErrGeneration, err)
	}
	return summary, nil
}

// GenerateBytes returns the sealed PDF as bytes
func (g *Generator) GenerateBytes(location string, count int) ([]byte, *Summary, error) {
	var buf bytes.Buffer
	summary, err := g.generate(location, count, &buf)
	if err != nil {
		return nil, nil, err
	}
	return buf.Bytes(), summary, nil
}

// GenerateToFile writes the sealed PDF to outputPath. The file only appears
// once the document is complete.
func (g *Generator) GenerateToFile(location string, count int, outputPath string) (*Summary, error) {
	outputDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: failed to create output directory: %w", ErrGeneration, err)
	}

	tempFile, err := os.CreateTemp(outputDir, ".labelsheet-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create temporary file: %w", ErrGeneration, err)
	}
	defer os.Remove(tempFile.Name())

	summary, err := g.generate(location, count, tempFile)
	if closeErr := tempFile.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("%w: failed to close temporary file: %w", ErrGeneration, closeErr)
	}
	if err != nil {
		return nil, err
	}

	if err := os.Rename(tempFile.Name(), outputPath); err != nil {
		return nil, fmt.Errorf("%w: failed to move PDF into place: %w", ErrGeneration, err)
	}
	return summary, nil
}

func (g *Generator) generate(location string, count int, w io.Writer) (*Summary, error) {
	o := g.options
	logger := o.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if count < 0 {
		return nil, fmt.Errorf("%w: count must not be negative, got %d", ErrInvalidRequest, count)
	}
	if o.MaxCount > 0 && count > o.MaxCount {
		return nil, fmt.Errorf("%w: count %d exceeds the limit of %d", ErrInvalidRequest, count, o.MaxCount)
	}

	layout := g.layout()
	if err := layout.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid layout: %w", ErrGeneration, err)
	}

	runDir := o.WorkDir
	if o.RunScoping {
		runDir = filepath.Join(o.WorkDir, uuid.NewString())
	}
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: failed to create work directory: %w", ErrGeneration, err)
	}
	if o.RunScoping && !o.KeepArtifacts {
		defer os.RemoveAll(runDir)
	}
	logger = logger.With(zap.String("location", location), zap.String("work_dir", runDir))

	renderer := barcode.NewRenderer(filepath.Join(runDir, "barcodes"), g.encoder, logger)

	title := o.Title
	if title == "" {
		title = "Barcodes " + location
	}
	canvas := pdf.NewCanvas(layout.PageSize, pdf.RenderOptions{
		Title:          title,
		Author:         o.Author,
		Subject:        o.Subject,
		Keywords:       o.Keywords,
		Creator:        "labelsheet",
		Producer:       "labelsheet",
		CreationDate:   o.CreationDate,
		DebugDrawBoxes: o.DebugDrawBoxes,
	}, logger)

	summary, err := compose.NewCompositor(layout, renderer, logger).Compose(location, count, canvas, w)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	return summary, nil
}

func (g *Generator) layout() pagination.Config {
	o := g.options
	cfg := pagination.DefaultConfig()
	cfg.PageSize = pagination.PageSize{Width: o.PageWidth, Height: o.PageHeight, Name: "Custom"}
	for _, std := range []pagination.PageSize{pagination.PageSizeLetter, pagination.PageSizeA4, pagination.PageSizeLegal, pagination.PageSizeA3, pagination.PageSizeA5} {
		if std.Width == o.PageWidth && std.Height == o.PageHeight {
			cfg.PageSize = std
		}
	}
	cfg.MarginLeft = o.MarginLeft
	cfg.MarginTop = o.MarginTop
	cfg.RowGap = o.RowGap
	cfg.RowsPerPage = o.RowsPerPage
	cfg.BarcodeWidth = o.BarcodeWidth
	cfg.BarcodeHeight = o.BarcodeHeight
	cfg.FontSize = o.FontSize
	return cfg
}

// WithOptions returns a new generator with the specified options
func (g *Generator) WithOptions(options Options) *Generator {
	return &Generator{options: options, encoder: g.encoder}
}

// WithOption returns a new generator with the specified option set
func (g *Generator) WithOption(option Option) *Generator {
	newOptions := g.options
	option(&newOptions)
	return g.WithOptions(newOptions)
}

// SetRowsPerPage sets the number of labels per page
func (g *Generator) SetRowsPerPage(rows int) *Generator {
	return g.WithOption(WithRowsPerPage(rows))
}

// SetWorkDir sets the work directory
func (g *Generator) SetWorkDir(dir string) *Generator {
	return g.WithOption(WithWorkDir(dir))
}

// SetLogger sets the logger
func (g *Generator) SetLogger(logger *zap.Logger) *Generator {
	return g.WithOption(WithLogger(logger))
}

// SetTitle sets the document title
func (g *Generator) SetTitle(title string) *Generator {
	return g.WithOption(WithTitle(title))
}
