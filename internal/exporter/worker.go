package exporter

import (
	"fmt"

	"github.com/ledgrid/go-ledanim/internal/frame"
	"github.com/ledgrid/go-ledanim/internal/imaging"
	"github.com/ledgrid/go-ledanim/internal/logger"
	"github.com/ledgrid/go-ledanim/internal/traversal"
)

type encodeJob struct {
	File string
	Idx  int
}

type encodeResult struct {
	Data []byte
	Err  error
}

// workerEncode decodes source images and encodes them to device byte
// order, posting each result to the channel matching its frame index.
func (e *Exporter) workerEncode(id int, codec *frame.Codec, plan []traversal.Point, flip frame.FlipOptions, jobs <-chan encodeJob, resChs []chan encodeResult) {
	log := logger.Log.WithField("scope", fmt.Sprintf("encode worker #%d", id))
	log.Debug("started")
	defer log.Debug("finished")

	for {
		select {
		case <-e.ctx.Done():
			return
		case j, ok := <-jobs:
			if !ok {
				return
			}
			log.Debugf("got frame %d - %s", j.Idx, j.File)

			img, err := imaging.Decode(j.File)
			if err != nil {
				resChs[j.Idx] <- encodeResult{Err: err}
				continue
			}
			data, err := codec.Encode(img.Pix, img.Channels, flip, plan)
			resChs[j.Idx] <- encodeResult{Data: data, Err: err}
			log.Debugf("sent frame %d, %d bytes", j.Idx, len(data))
		}
	}
}
