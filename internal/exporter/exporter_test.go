package exporter

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgrid/go-ledanim/internal/colormap"
	"github.com/ledgrid/go-ledanim/internal/player"
	"github.com/ledgrid/go-ledanim/internal/traversal"
)

func writePNG(t *testing.T, path string, w, h int, shade uint8) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: shade, G: uint8(x * 10), B: uint8(y * 10), A: 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

func makeFrames(t *testing.T, dir string, n, w, h int) []string {
	t.Helper()
	files := make([]string, n)
	for i := 0; i < n; i++ {
		files[i] = filepath.Join(dir, fmt.Sprintf("frame_%02d.png", i))
		writePNG(t, files[i], w, h, uint8(i*20))
	}
	return files
}

func tempFiles(t *testing.T, dir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, ".ledanim-*"))
	require.NoError(t, err)
	return matches
}

func TestExportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	files := makeFrames(t, dir, 3, 4, 3)
	out := filepath.Join(dir, "anim.leda")

	var processed []string
	e := New(context.Background(), nil)
	e.OnFrameProcessed = func(f string) { processed = append(processed, f) }
	done := false
	e.OnComplete = func() { done = true }

	err := e.Export(files, out, Options{
		Format: colormap.GRB,
		Corner: traversal.TopLeft,
		Order:  traversal.Horizontal,
	})
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, files, processed)

	fi, err := os.Stat(out)
	require.NoError(t, err)
	assert.Equal(t, int64(9+3*4*3*3), fi.Size())
	assert.Empty(t, tempFiles(t, dir))

	cont, err := player.LoadFile(out)
	require.NoError(t, err)
	assert.Equal(t, 3, cont.FrameCount())
	assert.Equal(t, colormap.GRB, cont.Header.Format)

	// straight wiring, so decoded frame 1 equals the source pixels
	rgb, err := cont.Frame(1)
	require.NoError(t, err)
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			off := (y*4 + x) * 3
			assert.Equal(t, uint8(20), rgb[off], "r at %d,%d", x, y)
			assert.Equal(t, uint8(x*10), rgb[off+1], "g at %d,%d", x, y)
			assert.Equal(t, uint8(y*10), rgb[off+2], "b at %d,%d", x, y)
		}
	}
}

func TestExportInconsistentDimensions(t *testing.T) {
	dir := t.TempDir()
	small := filepath.Join(dir, "a.png")
	big := filepath.Join(dir, "b.png")
	writePNG(t, small, 10, 10, 0)
	writePNG(t, big, 20, 20, 0)
	out := filepath.Join(dir, "anim.leda")

	e := New(context.Background(), nil)
	err := e.Export([]string{small, big}, out, Options{
		Corner: traversal.TopLeft,
		Order:  traversal.Horizontal,
	})

	var dimErr *InconsistentDimensionsError
	require.ErrorAs(t, err, &dimErr)
	require.Len(t, dimErr.Groups, 2)
	assert.Contains(t, err.Error(), "10x10")
	assert.Contains(t, err.Error(), "20x20")

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "no output file may exist")
	assert.Empty(t, tempFiles(t, dir))
}

func TestExportIllegalWiring(t *testing.T) {
	dir := t.TempDir()
	files := makeFrames(t, dir, 1, 4, 4)
	out := filepath.Join(dir, "anim.leda")

	e := New(context.Background(), nil)
	err := e.Export(files, out, Options{
		Corner: traversal.BottomRight,
		Order:  traversal.Horizontal,
	})

	var cfgErr *traversal.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
	assert.Empty(t, tempFiles(t, dir))
}

func TestExportCancel(t *testing.T) {
	dir := t.TempDir()
	files := makeFrames(t, dir, 5, 8, 8)
	out := filepath.Join(dir, "anim.leda")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	e := New(ctx, nil)
	processed := 0
	e.OnFrameProcessed = func(string) {
		processed++
		if processed == 2 {
			cancel()
		}
	}
	cancelled := false
	e.OnCancelled = func() { cancelled = true }

	err := e.Export(files, out, Options{
		Corner: traversal.TopLeft,
		Order:  traversal.Horizontal,
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.True(t, cancelled)
	assert.Equal(t, 2, processed)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "no output file may exist after cancel")
	assert.Empty(t, tempFiles(t, dir), "temp file must be cleaned up")
}

// a file that is not an image at all is rejected by the pre-export
// probe, before any output byte is written
func TestExportGarbageFrame(t *testing.T) {
	dir := t.TempDir()
	files := makeFrames(t, dir, 2, 4, 4)
	bad := filepath.Join(dir, "broken.png")
	require.NoError(t, os.WriteFile(bad, []byte("not a png"), 0o644))
	out := filepath.Join(dir, "anim.leda")

	e := New(context.Background(), nil)
	err := e.Export(append(files, bad), out, Options{
		Corner: traversal.TopLeft,
		Order:  traversal.Horizontal,
	})
	require.Error(t, err)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
	assert.Empty(t, tempFiles(t, dir))
}

// writeTruncatedPNG writes a png whose header is intact but whose body
// is cut short: it probes fine and fails only when a worker decodes it.
func writeTruncatedPNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	// keep the signature and IHDR chunk, drop the pixel data
	require.Greater(t, buf.Len(), 50)
	require.NoError(t, os.WriteFile(path, buf.Bytes()[:50], 0o644))
}

// a frame that survives validation but fails to decode must abort the
// whole export after frames were already written, and the temp file
// must not survive it
func TestExportDecodeFailureAborts(t *testing.T) {
	dir := t.TempDir()
	files := makeFrames(t, dir, 3, 8, 8)
	truncated := filepath.Join(dir, "frame_01.png")
	writeTruncatedPNG(t, truncated, 8, 8)
	out := filepath.Join(dir, "anim.leda")

	e := New(context.Background(), nil)
	processed := 0
	e.OnFrameProcessed = func(string) { processed++ }

	err := e.Export(files, out, Options{
		Corner: traversal.TopLeft,
		Order:  traversal.Horizontal,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frame_01.png")
	assert.Less(t, processed, 3)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "no output file may exist after a failed export")
	assert.Empty(t, tempFiles(t, dir), "temp file must be cleaned up")
}

func TestExportNoFrames(t *testing.T) {
	e := New(context.Background(), nil)
	err := e.Export(nil, filepath.Join(t.TempDir(), "x.leda"), Options{})
	require.Error(t, err)
}
