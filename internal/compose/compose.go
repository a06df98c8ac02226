package compose

import (
	"fmt"
	"io"

	"github.com/gompdf/labelsheet/internal/label"
	"github.com/gompdf/labelsheet/internal/pagination"
	"go.uber.org/zap"
)

// Renderer produces the image for one code
type Renderer interface {
	Render(code string) label.Artifact
}

// Canvas is the page-drawing engine the compositor draws onto
type Canvas interface {
	AddPage()
	SetFont(family, style string, size float64)
	DrawImage(path string, r pagination.Rect) error
	DrawText(p pagination.Point, text string)
	Close(w io.Writer) error
}

// Skip records a label that was left out of the document
type Skip struct {
	Index  int
	Code   string
	Kind   label.FailureKind
	Reason string
}

// Summary accounts for every requested label: each one is either placed
// once or skipped once.
type Summary struct {
	Location   string
	Requested  int
	Placements []pagination.Placement
	Skipped    []Skip
	Pages      int
}

// Placed returns the codes in placement order
func (s *Summary) Placed() []string {
	codes := make([]string, len(s.Placements))
	for i, p := range s.Placements {
		codes[i] = p.Code
	}
	return codes
}

// Compositor lays rendered labels out in a single-column grid
type Compositor struct {
	config   pagination.Config
	renderer Renderer
	logger   *zap.Logger
}

// NewCompositor creates a compositor
func NewCompositor(config pagination.Config, renderer Renderer, logger *zap.Logger) *Compositor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Compositor{
		config:   config,
		renderer: renderer,
		logger:   logger,
	}
}

// Compose renders labels locationPrefix1..locationPrefixN in order, places
// each success in the next free cell and seals the document into w. Failed
// labels are skipped without reserving a cell. Only an invalid layout or a
// sealing failure is returned as an error.
func (c *Compositor) Compose(locationPrefix string, count int, canvas Canvas, w io.Writer) (*Summary, error) {
	if err := c.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid layout: %w", err)
	}
	if count < 0 {
		count = 0
	}

	summary := &Summary{Location: locationPrefix, Requested: count}
	cursor := pagination.NewCursor(c.config)
	opened := -1

	for i := 1; i <= count; i++ {
		code := label.NewRequest(locationPrefix, i).Code()
		art := c.renderer.Render(code)
		if !art.OK() {
			c.skip(summary, i, code, failureOf(art))
			continue
		}

		if cursor.Page != opened {
			canvas.AddPage()
			canvas.SetFont(c.config.FontFamily, c.config.FontStyle, c.config.FontSize)
			opened = cursor.Page
		}

		p := pagination.Place(cursor, c.config, i, code)
		if err := canvas.DrawImage(art.Image.Path, p.Image); err != nil {
			c.skip(summary, i, code, label.Fail(label.IOFailure, err))
			continue
		}
		canvas.DrawText(p.Text, code)

		summary.Placements = append(summary.Placements, p)
		cursor = pagination.Advance(cursor, c.config)
	}

	if opened < 0 {
		canvas.AddPage()
		opened = 0
	}
	summary.Pages = opened + 1

	if err := canvas.Close(w); err != nil {
		return nil, fmt.Errorf("failed to seal document: %w", err)
	}

	c.logger.Info("document composed",
		zap.String("location", locationPrefix),
		zap.Int("requested", count),
		zap.Int("placed", len(summary.Placements)),
		zap.Int("skipped", len(summary.Skipped)),
		zap.Int("pages", summary.Pages))
	return summary, nil
}

func (c *Compositor) skip(s *Summary, index int, code string, f *label.Failure) {
	s.Skipped = append(s.Skipped, Skip{
		Index:  index,
		Code:   code,
		Kind:   f.Kind,
		Reason: f.Error(),
	})
	c.logger.Warn("label skipped",
		zap.Int("index", index),
		zap.String("code", code),
		zap.Stringer("kind", f.Kind),
		zap.Error(f.Err))
}

// failureOf never returns nil, even for an artifact with neither half set
func failureOf(art label.Artifact) *label.Failure {
	if art.Failure != nil {
		return art.Failure
	}
	return label.Fail(label.ArtifactMissing, fmt.Errorf("renderer returned no image for %s", art.Code))
}
