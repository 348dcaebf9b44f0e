package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli"

	"github.com/ledgrid/go-ledanim/internal/colormap"
	"github.com/ledgrid/go-ledanim/internal/config"
	"github.com/ledgrid/go-ledanim/internal/exporter"
	"github.com/ledgrid/go-ledanim/internal/frame"
	"github.com/ledgrid/go-ledanim/internal/imaging"
	"github.com/ledgrid/go-ledanim/internal/logger"
	"github.com/ledgrid/go-ledanim/internal/pattern"
	"github.com/ledgrid/go-ledanim/internal/player"
	"github.com/ledgrid/go-ledanim/internal/traversal"
	"github.com/ledgrid/go-ledanim/internal/tui"
)

var app = cli.NewApp()
var log = logger.Log

var wiringFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "color-order",
		Usage: "channel order the device expects: rgb, rbg, bgr, brg, grb, gbr",
		Value: "rgb",
	},
	cli.StringFlag{
		Name:  "corner",
		Usage: "matrix corner where the data line starts: topLeft, topRight, bottomLeft, bottomRight",
		Value: "topLeft",
	},
	cli.StringFlag{
		Name:  "order",
		Usage: "wiring pattern: horizontal, vertical, horizontalAlternate, verticalAlternate",
		Value: "horizontal",
	},
}

func init() {
	app.Name = "ledanim"
	app.Usage = "An image sequence to LED matrix animation converter"
	app.UsageText = "ledanim [command] [options] path"
	app.HideHelp = true
	app.HideVersion = true
	app.Commands = []cli.Command{
		{
			Name:    "export",
			Aliases: []string{"e"},
			Usage:   "Encode a folder of images into a .leda container",
			Flags: append([]cli.Flag{
				cli.StringFlag{Name: "out, o", Usage: "output file"},
				cli.BoolFlag{Name: "flip-h", Usage: "mirror frames horizontally before encoding"},
				cli.BoolFlag{Name: "flip-v", Usage: "mirror frames vertically before encoding"},
			}, wiringFlags...),
			Action: cmdExport,
		},
		{
			Name:    "info",
			Aliases: []string{"i"},
			Usage:   "Print container header and size check",
			Action:  cmdInfo,
		},
		{
			Name:    "render",
			Aliases: []string{"r"},
			Usage:   "Decode a container back into png frames",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "out, o", Usage: "output folder", Value: "frames"},
			},
			Action: cmdRender,
		},
		{
			Name:    "stream",
			Aliases: []string{"s"},
			Usage:   "Play a container to a device over mqtt",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "config, c", Usage: "YAML device config", Value: "config.yaml"},
				cli.IntFlag{Name: "fps", Usage: "frame rate, overrides the config file"},
				cli.BoolFlag{Name: "loop", Usage: "loop the animation"},
			},
			Action: cmdStream,
		},
		{
			Name:    "pattern",
			Aliases: []string{"p"},
			Usage:   "Generate a test animation: gradient or pulse",
			Flags: append([]cli.Flag{
				cli.StringFlag{Name: "out, o", Usage: "output file", Value: "pattern.leda"},
				cli.IntFlag{Name: "width", Value: 16},
				cli.IntFlag{Name: "height", Value: 16},
				cli.IntFlag{Name: "frames", Value: 60},
				cli.StringFlag{Name: "color", Usage: "pulse color", Value: "#ff2000"},
			}, wiringFlags...),
			Action: cmdPattern,
		},
	}
}

func getPath(c *cli.Context) (string, error) {
	p := c.Args().Get(0)
	if p == "" {
		return "", fmt.Errorf("Path is required")
	}
	return p, nil
}

func parseWiring(c *cli.Context) (colormap.Format, traversal.Corner, traversal.Order, error) {
	format, err := colormap.Parse(c.String("color-order"))
	if err != nil {
		return 0, 0, 0, err
	}
	corner, err := traversal.ParseCorner(c.String("corner"))
	if err != nil {
		return 0, 0, 0, err
	}
	order, err := traversal.ParseOrder(c.String("order"))
	if err != nil {
		return 0, 0, 0, err
	}
	if !traversal.Legal(corner, order) {
		return 0, 0, 0, &traversal.ConfigurationError{Corner: corner, Order: order}
	}
	return format, corner, order, nil
}

func cmdExport(c *cli.Context) error {
	dir, err := getPath(c)
	if err != nil {
		return err
	}
	format, corner, order, err := parseWiring(c)
	if err != nil {
		return err
	}
	out := c.String("out")
	if out == "" {
		out = strings.TrimSuffix(dir, "/") + config.ContainerExt
	}

	files, err := imaging.ListFrames(dir)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	eventsCh := make(chan tui.Event)
	go tui.New(ctx, eventsCh).Run()

	e := exporter.New(ctx, eventsCh)
	err = e.Export(files, out, exporter.Options{
		Format: format,
		Corner: corner,
		Order:  order,
		Flip: frame.FlipOptions{
			Horizontal: c.Bool("flip-h"),
			Vertical:   c.Bool("flip-v"),
		},
	})
	if err == context.Canceled {
		log.Info("Export cancelled")
		return nil
	}
	return err
}

func cmdInfo(c *cli.Context) error {
	path, err := getPath(c)
	if err != nil {
		return err
	}
	cont, err := player.LoadFile(path)
	if err != nil {
		return err
	}
	h := cont.Header
	fmt.Printf("frames:      %d\n", h.FrameCount)
	fmt.Printf("size:        %dx%d\n", h.Width, h.Height)
	fmt.Printf("color order: %s\n", h.Format)
	fmt.Printf("frame bytes: %d\n", h.FrameSize())

	fi, err := os.Stat(path)
	if err != nil {
		return err
	}
	if fi.Size() != h.TotalSize() {
		return fmt.Errorf("container is %d bytes, header implies %d", fi.Size(), h.TotalSize())
	}
	fmt.Printf("total bytes: %d (ok)\n", h.TotalSize())
	return nil
}

func cmdRender(c *cli.Context) error {
	path, err := getPath(c)
	if err != nil {
		return err
	}
	cont, err := player.LoadFile(path)
	if err != nil {
		return err
	}
	if err := cont.RenderPNGs(c.String("out")); err != nil {
		return err
	}
	log.Infof("Rendered %d frames to %s", cont.FrameCount(), c.String("out"))
	return nil
}

func cmdStream(c *cli.Context) error {
	path, err := getPath(c)
	if err != nil {
		return err
	}
	cfg, err := config.LoadStream(c.String("config"))
	if err != nil {
		return err
	}
	overrideFPS(cfg, c.Int("fps"))
	cont, err := player.LoadFile(path)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err = player.NewStreamer(cfg, cont, c.Bool("loop")).Run(ctx)
	if err == context.Canceled {
		return nil
	}
	return err
}

// overrideFPS lets the --fps flag win over the config file value.
func overrideFPS(cfg *config.Stream, fps int) {
	if fps > 0 {
		cfg.FPS = fps
	}
}

func cmdPattern(c *cli.Context) error {
	kind, err := getPath(c)
	if err != nil {
		return err
	}
	format, corner, order, err := parseWiring(c)
	if err != nil {
		return err
	}
	opts := pattern.Options{
		Width:  c.Int("width"),
		Height: c.Int("height"),
		Frames: c.Int("frames"),
		Format: format,
		Corner: corner,
		Order:  order,
	}

	var data []byte
	switch kind {
	case "gradient":
		data, err = pattern.Gradient(opts)
	case "pulse":
		data, err = pattern.Pulse(opts, c.String("color"))
	default:
		return fmt.Errorf("unknown pattern %q", kind)
	}
	if err != nil {
		return err
	}

	out := c.String("out")
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("Error writing %q: %w", out, err)
	}
	log.Infof("Wrote %s pattern to %s", kind, out)
	return nil
}

func main() {
	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
