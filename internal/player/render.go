package player

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/ledgrid/go-ledanim/internal/config"
	"github.com/ledgrid/go-ledanim/internal/logger"
)

// RenderPNGs decodes every frame and writes it to dir as a png. The
// output shows frames as encoded, storage order equals display order,
// original image geometry is not reconstructed.
func (c *Container) RenderPNGs(dir string) error {
	log := logger.Log.WithField("scope", "render")

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("Error creating render dir %q: %w", dir, err)
	}

	w, h := int(c.Header.Width), int(c.Header.Height)
	for i := 0; i < c.FrameCount(); i++ {
		rgb, err := c.Frame(i)
		if err != nil {
			return err
		}

		img := image.NewNRGBA(image.Rect(0, 0, w, h))
		for p := 0; p < w*h; p++ {
			img.Pix[p*4] = rgb[p*3]
			img.Pix[p*4+1] = rgb[p*3+1]
			img.Pix[p*4+2] = rgb[p*3+2]
			img.Pix[p*4+3] = 0xff
		}

		name := filepath.Join(dir, fmt.Sprintf("%s%04d.png", config.RenderFilePrefix, i))
		f, err := os.Create(name)
		if err != nil {
			return fmt.Errorf("Error creating %q: %w", name, err)
		}
		if err := png.Encode(f, img); err != nil {
			f.Close()
			return fmt.Errorf("Error encoding %q: %w", name, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("Error closing %q: %w", name, err)
		}
		log.Debugf("rendered frame %d/%d", i+1, c.FrameCount())
	}
	return nil
}
