package imaging

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Image is a decoded source frame, row-major canonical RGBA.
type Image struct {
	Pix      []byte
	Width    int
	Height   int
	Channels int
}

// Info is the cheap pre-export probe of a source file, decoded header
// only, no pixel data.
type Info struct {
	Width  int
	Height int
	Type   string
}

// Decode loads a source image and flattens it to a packed NRGBA
// buffer, 4 bytes per pixel, stride equals width.
func Decode(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Error opening image %q: %w", path, err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("Error decoding image %q: %w", path, err)
	}

	bounds := src.Bounds()
	rgba := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, bounds.Min, draw.Src)

	return &Image{
		Pix:      rgba.Pix,
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		Channels: 4,
	}, nil
}

// Probe reads just enough of the file to report dimensions and type.
func Probe(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("Error opening image %q: %w", path, err)
	}
	defer f.Close()

	cfg, typ, err := image.DecodeConfig(f)
	if err != nil {
		return Info{}, fmt.Errorf("Error probing image %q: %w", path, err)
	}
	return Info{Width: cfg.Width, Height: cfg.Height, Type: typ}, nil
}

// ListFrames scans a folder for source images and returns them in
// lexical order, which is the animation frame order.
func ListFrames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("Error reading frames dir %q: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".png", ".jpg", ".jpeg", ".gif":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
