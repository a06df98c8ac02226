package barcode

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/gompdf/labelsheet/internal/label"
	"go.uber.org/zap"
	"golang.org/x/image/draw"
)

// Renderer produces cropped label images on disk. Every failure is returned
// as a failed label.Artifact; Render never panics or returns an error.
type Renderer struct {
	Dir     string
	Encoder Encoder
	Options WriterOptions

	logger *zap.Logger
}

// NewRenderer creates a renderer writing into dir
func NewRenderer(dir string, encoder Encoder, logger *zap.Logger) *Renderer {
	if encoder == nil {
		encoder = NewCode128Encoder()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{
		Dir:     dir,
		Encoder: encoder,
		Options: DefaultWriterOptions(),
		logger:  logger,
	}
}

// BasePath is the extension-less artifact path for code. The same code always
// maps to the same path, and no code can name a file outside Dir.
func (r *Renderer) BasePath(code string) string {
	name := url.PathEscape(code)
	if strings.HasPrefix(name, ".") {
		name = "%2E" + name[1:]
	}
	return filepath.Join(r.Dir, name)
}

// ImagePath is where the cropped PNG for code is stored
func (r *Renderer) ImagePath(code string) string {
	return r.BasePath(code) + ".png"
}

// Render encodes code, keeps the top half of the image and stores it as PNG
func (r *Renderer) Render(code string) (art label.Artifact) {
	defer func() {
		if v := recover(); v != nil {
			art = label.Failed(code, label.EncodingFailure, fmt.Errorf("encoder panic: %v", v))
		}
	}()

	if err := os.MkdirAll(r.Dir, 0755); err != nil {
		return label.Failed(code, label.IOFailure, fmt.Errorf("failed to create artifact directory: %w", err))
	}

	base := r.BasePath(code)
	expected := base + ".png"
	written, err := r.Encoder.Save(code, base, r.Options)
	if err != nil {
		return label.Failed(code, label.EncodingFailure, err)
	}
	if written != expected {
		r.logger.Debug("encoder reported unexpected path",
			zap.String("code", code),
			zap.String("expected", expected),
			zap.String("written", written))
	}

	if _, err := os.Stat(expected); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return label.Failed(code, label.ArtifactMissing, fmt.Errorf("file %s was not created", expected))
		}
		return label.Failed(code, label.IOFailure, err)
	}

	w, h, err := cropTopHalf(expected)
	if err != nil {
		return label.Failed(code, label.IOFailure, err)
	}

	r.logger.Debug("rendered label",
		zap.String("code", code),
		zap.String("path", expected),
		zap.Int("width", w),
		zap.Int("height", h))
	return label.Succeeded(code, label.Image{Path: expected, Width: w, Height: h})
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// cropTopHalf replaces the image at path with its top half, width unchanged
func cropTopHalf(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	src, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	b := src.Bounds()
	h := int(float64(b.Dy()) * 0.5)
	if h < 1 || b.Dx() < 1 {
		return 0, 0, fmt.Errorf("image %s is too small to crop (%dx%d)", path, b.Dx(), b.Dy())
	}
	rect := image.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Min.Y+h)

	var cropped image.Image
	if si, ok := src.(subImager); ok {
		cropped = si.SubImage(rect)
	} else {
		dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
		draw.Copy(dst, image.Point{}, src, rect, draw.Src, nil)
		cropped = dst
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".crop-*.png")
	if err != nil {
		return 0, 0, fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := png.Encode(tmp, cropped); err != nil {
		tmp.Close()
		return 0, 0, fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return 0, 0, fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return 0, 0, fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return rect.Dx(), rect.Dy(), nil
}
