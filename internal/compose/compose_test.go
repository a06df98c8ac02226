package compose

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/gompdf/labelsheet/internal/barcode"
	"github.com/gompdf/labelsheet/internal/label"
	"github.com/gompdf/labelsheet/internal/pagination"
	"github.com/gompdf/labelsheet/internal/render/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeRenderer struct {
	fail  map[string]label.FailureKind
	calls []string
}

func (r *fakeRenderer) Render(code string) label.Artifact {
	r.calls = append(r.calls, code)
	if kind, ok := r.fail[code]; ok {
		return label.Failed(code, kind, fmt.Errorf("cannot render %s", code))
	}
	return label.Succeeded(code, label.Image{Path: "/img/" + code + ".png", Width: 10, Height: 5})
}

type drawn struct {
	page  int
	path  string
	rect  pagination.Rect
	text  string
	point pagination.Point
}

type recordingCanvas struct {
	pages    int
	font     string
	draws    []drawn
	badPaths map[string]bool
	closeErr error
	closed   int
}

func (c *recordingCanvas) AddPage() { c.pages++ }

func (c *recordingCanvas) SetFont(family, style string, size float64) {
	c.font = fmt.Sprintf("%s-%s-%.0f", family, style, size)
}

func (c *recordingCanvas) DrawImage(path string, r pagination.Rect) error {
	if c.badPaths[path] {
		return errors.New("unreadable image")
	}
	c.draws = append(c.draws, drawn{page: c.pages - 1, path: path, rect: r})
	return nil
}

func (c *recordingCanvas) DrawText(p pagination.Point, text string) {
	last := &c.draws[len(c.draws)-1]
	last.text = text
	last.point = p
}

func (c *recordingCanvas) Close(w io.Writer) error {
	c.closed++
	if c.closeErr != nil {
		return c.closeErr
	}
	_, err := io.WriteString(w, "sealed")
	return err
}

func rows(n int) pagination.Config {
	cfg := pagination.DefaultConfig()
	cfg.RowsPerPage = n
	return cfg
}

func cells(s *Summary) [][2]int {
	out := make([][2]int, len(s.Placements))
	for i, p := range s.Placements {
		out[i] = [2]int{p.Page, p.Row}
	}
	return out
}

func TestComposeSinglePage(t *testing.T) {
	r := &fakeRenderer{}
	canvas := &recordingCanvas{}
	var buf bytes.Buffer

	s, err := NewCompositor(rows(6), r, nil).Compose("A", 3, canvas, &buf)
	require.NoError(t, err)

	assert.Equal(t, []string{"A1", "A2", "A3"}, s.Placed())
	assert.Equal(t, [][2]int{{0, 0}, {0, 1}, {0, 2}}, cells(s))
	assert.Equal(t, 1, s.Pages)
	assert.Equal(t, 1, canvas.pages)
	assert.Equal(t, 1, canvas.closed)
	assert.Equal(t, "sealed", buf.String())
	assert.Equal(t, "Helvetica-B-28", canvas.font)

	require.Len(t, canvas.draws, 3)
	for i, d := range canvas.draws {
		assert.Equal(t, s.Placements[i].Code, d.text)
		assert.Equal(t, "/img/"+d.text+".png", d.path)
		assert.Equal(t, s.Placements[i].Image, d.rect)
		assert.Equal(t, s.Placements[i].Text, d.point)
	}
}

func TestComposeRollsOverToSecondPage(t *testing.T) {
	canvas := &recordingCanvas{}
	s, err := NewCompositor(rows(6), &fakeRenderer{}, nil).Compose("B", 8, canvas, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, []string{"B1", "B2", "B3", "B4", "B5", "B6", "B7", "B8"}, s.Placed())
	assert.Equal(t, [][2]int{
		{0, 0}, {0, 1}, {0, 2}, {0, 3}, {0, 4}, {0, 5},
		{1, 0}, {1, 1},
	}, cells(s))
	assert.Equal(t, 2, s.Pages)
	assert.Equal(t, 2, canvas.pages)

	// the first two rows of page 2 reuse the coordinates of page 1
	assert.Equal(t, s.Placements[0].Image, s.Placements[6].Image)
	assert.Equal(t, s.Placements[1].Text, s.Placements[7].Text)
	assert.Equal(t, 1, canvas.draws[6].page)
}

func TestComposeSkipDoesNotReserveCell(t *testing.T) {
	r := &fakeRenderer{fail: map[string]label.FailureKind{"C2": label.EncodingFailure}}
	s, err := NewCompositor(rows(6), r, nil).Compose("C", 3, &recordingCanvas{}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, []string{"C1", "C3"}, s.Placed())
	assert.Equal(t, [][2]int{{0, 0}, {0, 1}}, cells(s))
	require.Len(t, s.Skipped, 1)
	assert.Equal(t, Skip{Index: 2, Code: "C2", Kind: label.EncodingFailure, Reason: "encoding_failure: cannot render C2"}, s.Skipped[0])
	assert.Equal(t, []string{"C1", "C2", "C3"}, r.calls)
}

func TestComposeZeroCount(t *testing.T) {
	canvas := &recordingCanvas{}
	var buf bytes.Buffer
	s, err := NewCompositor(rows(6), &fakeRenderer{}, nil).Compose("Z", 0, canvas, &buf)
	require.NoError(t, err)

	assert.Empty(t, s.Placements)
	assert.Empty(t, s.Skipped)
	assert.Equal(t, 1, s.Pages)
	assert.Equal(t, 1, canvas.pages, "an empty sheet is one blank page")
	assert.Equal(t, "sealed", buf.String())
}

func TestComposeAllFail(t *testing.T) {
	r := &fakeRenderer{fail: map[string]label.FailureKind{
		"F1": label.EncodingFailure,
		"F2": label.ArtifactMissing,
		"F3": label.IOFailure,
	}}
	canvas := &recordingCanvas{}
	s, err := NewCompositor(rows(6), r, nil).Compose("F", 3, canvas, io.Discard)
	require.NoError(t, err)

	assert.Empty(t, s.Placements)
	require.Len(t, s.Skipped, 3)
	assert.Equal(t, label.ArtifactMissing, s.Skipped[1].Kind)
	assert.Equal(t, 1, canvas.pages)
	assert.Equal(t, 1, canvas.closed)
}

func TestComposeExactMultipleHasNoTrailingPage(t *testing.T) {
	canvas := &recordingCanvas{}
	s, err := NewCompositor(rows(3), &fakeRenderer{}, nil).Compose("E", 6, canvas, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Pages)
	assert.Equal(t, 2, canvas.pages)
}

func TestComposeDrawFailureIsSkipped(t *testing.T) {
	canvas := &recordingCanvas{badPaths: map[string]bool{"/img/D1.png": true}}
	s, err := NewCompositor(rows(6), &fakeRenderer{}, nil).Compose("D", 2, canvas, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, []string{"D2"}, s.Placed())
	assert.Equal(t, [][2]int{{0, 0}}, cells(s))
	require.Len(t, s.Skipped, 1)
	assert.Equal(t, label.IOFailure, s.Skipped[0].Kind)
}

func TestComposeAccountsForEveryLabel(t *testing.T) {
	fail := map[string]label.FailureKind{}
	for i := 3; i <= 40; i += 4 {
		fail[fmt.Sprintf("K%d", i)] = label.EncodingFailure
	}
	s, err := NewCompositor(rows(7), &fakeRenderer{fail: fail}, nil).Compose("K", 40, &recordingCanvas{}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, 40, len(s.Placements)+len(s.Skipped))
	prev := 0
	for k, p := range s.Placements {
		assert.Greater(t, p.Index, prev, "ascending order")
		prev = p.Index
		page, row := pagination.CellOf(k+1, rows(7))
		assert.Equal(t, [2]int{page, row}, [2]int{p.Page, p.Row})
	}
	assert.Equal(t, pagination.PageCount(len(s.Placements), rows(7)), s.Pages)
}

func TestComposeSealFailure(t *testing.T) {
	canvas := &recordingCanvas{closeErr: errors.New("disk full")}
	_, err := NewCompositor(rows(6), &fakeRenderer{}, nil).Compose("S", 2, canvas, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestComposeInvalidLayout(t *testing.T) {
	r := &fakeRenderer{}
	_, err := NewCompositor(rows(0), r, nil).Compose("X", 2, &recordingCanvas{}, io.Discard)
	require.Error(t, err)
	assert.Empty(t, r.calls)
}

func TestComposeLogsSkips(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	r := &fakeRenderer{fail: map[string]label.FailureKind{"L1": label.EncodingFailure}}
	_, err := NewCompositor(rows(6), r, zap.New(core)).Compose("L", 1, &recordingCanvas{}, io.Discard)
	require.NoError(t, err)

	entries := logs.FilterMessage("label skipped").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "L1", entries[0].ContextMap()["code"])
}

func TestComposeWithRealCollaborators(t *testing.T) {
	dir := t.TempDir()
	renderer := barcode.NewRenderer(filepath.Join(dir, "barcodes"), nil, nil)
	canvas := pdf.NewCanvas(pagination.PageSizeLetter, pdf.RenderOptions{Title: "Barcodes R"}, nil)

	out := filepath.Join(dir, "sheet.pdf")
	f, err := os.Create(out)
	require.NoError(t, err)
	s, err := NewCompositor(pagination.DefaultConfig(), renderer, nil).Compose("R", 9, canvas, f)
	require.NoError(t, f.Close())
	require.NoError(t, err)

	assert.Len(t, s.Placements, 9)
	assert.Equal(t, 2, s.Pages)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.FileExists(t, filepath.Join(dir, "barcodes", "R9.png"))
}
