package exporter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/ledgrid/go-ledanim/internal/colormap"
	"github.com/ledgrid/go-ledanim/internal/config"
	"github.com/ledgrid/go-ledanim/internal/container"
	"github.com/ledgrid/go-ledanim/internal/frame"
	"github.com/ledgrid/go-ledanim/internal/logger"
	"github.com/ledgrid/go-ledanim/internal/traversal"
	"github.com/ledgrid/go-ledanim/internal/tui"
)

// Options selects the device wiring the container is encoded for.
type Options struct {
	Format colormap.Format
	Corner traversal.Corner
	Order  traversal.Order
	Flip   frame.FlipOptions
}

// Exporter turns an ordered list of source images into one container
// file. Single use, one export at a time owns its temp output file.
type Exporter struct {
	ctx      context.Context
	eventsCh chan tui.Event

	// integration points for observers outside the tui
	OnFrameProcessed func(file string)
	OnComplete       func()
	OnCancelled      func()
}

func New(ctx context.Context, eventsCh chan tui.Event) *Exporter {
	return &Exporter{
		ctx:      ctx,
		eventsCh: eventsCh,
	}
}

// Export validates the sources, encodes every frame in order and
// atomically materializes the container at out. On cancellation or
// any frame failure the temp file is removed and out never appears.
func (e *Exporter) Export(files []string, out string, opts Options) error {
	log := logger.Log.WithField("scope", "exporter")

	if len(files) == 0 {
		return fmt.Errorf("no source frames given")
	}

	e.emit(tui.NewEventSpin("Validating frames..."))
	desc, err := validateFrames(files)
	if err != nil {
		return err
	}
	log.Debugf("validated %d frames, %s %dx%d", len(files), desc.Type, desc.Width, desc.Height)

	plan, err := traversal.Plan(desc.Width, desc.Height, opts.Corner, opts.Order)
	if err != nil {
		return err
	}
	header, err := container.WriteHeader(len(files), desc.Width, desc.Height, opts.Format)
	if err != nil {
		return err
	}
	codec := frame.NewCodec(desc.Width, desc.Height, opts.Format)

	// temp file next to the final path so the rename stays on one fs
	tmp, err := os.CreateTemp(filepath.Dir(out), config.TempFilePattern)
	if err != nil {
		return fmt.Errorf("Error creating temp file: %w", err)
	}
	discard := func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}

	if _, err := tmp.Write(header); err != nil {
		discard()
		return fmt.Errorf("Error writing header: %w", err)
	}

	// encode frames on all cores, results land in per-index channels
	// so the single writer can append them in source order
	resChs := make([]chan encodeResult, len(files))
	for i := range resChs {
		resChs[i] = make(chan encodeResult, 1)
	}
	jobs := make(chan encodeJob, runtime.NumCPU())
	for i := 0; i < runtime.NumCPU(); i++ {
		go e.workerEncode(i+1, codec, plan, opts.Flip, jobs, resChs)
	}
	go func() {
		defer close(jobs)
		for i, f := range files {
			select {
			case <-e.ctx.Done():
				return
			case jobs <- encodeJob{File: f, Idx: i}:
			}
		}
	}()

	for i := range resChs {
		// cancellation is checked at frame boundaries only, an
		// in-flight frame always finishes
		if err := e.ctx.Err(); err != nil {
			log.Debug("export cancelled, discarding temp file")
			discard()
			if e.OnCancelled != nil {
				e.OnCancelled()
			}
			return err
		}

		var res encodeResult
		select {
		case <-e.ctx.Done():
			discard()
			if e.OnCancelled != nil {
				e.OnCancelled()
			}
			return e.ctx.Err()
		case res = <-resChs[i]:
		}
		if res.Err != nil {
			discard()
			return fmt.Errorf("frame %d (%s): %w", i, files[i], res.Err)
		}

		if _, err := tmp.Write(res.Data); err != nil {
			discard()
			return fmt.Errorf("Error writing frame %d: %w", i, err)
		}

		e.emit(tui.NewEventBar(
			fmt.Sprintf("Encoding frames... %d/%d", i+1, len(files)),
			float64(i+1)/float64(len(files)),
		))
		if e.OnFrameProcessed != nil {
			e.OnFrameProcessed(files[i])
		}
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("Error closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), out); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("Error saving container: %w", err)
	}

	e.emit(tui.NewEventText(fmt.Sprintf("Exported %d frames to %s", len(files), out)))
	if e.OnComplete != nil {
		e.OnComplete()
	}
	log.Debugf("export done, %d frames", len(files))
	return nil
}

func (e *Exporter) emit(ev tui.Event) {
	if e.eventsCh == nil {
		return
	}
	select {
	case e.eventsCh <- ev:
	case <-e.ctx.Done():
	}
}
