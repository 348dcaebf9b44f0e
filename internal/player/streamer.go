package player

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/schollz/progressbar/v3"

	"github.com/ledgrid/go-ledanim/internal/config"
	"github.com/ledgrid/go-ledanim/internal/logger"
)

// Streamer plays a container to a device over mqtt, one frame per
// tick. Frames go out exactly as stored, the device applies no
// reprocessing.
type Streamer struct {
	client mqtt.Client
	cont   *Container
	topic  string
	fps    int
	loop   bool
}

func NewStreamer(cfg *config.Stream, cont *Container, loop bool) *Streamer {
	options := mqtt.NewClientOptions().
		AddBroker(cfg.Mqtt.URL).
		SetClientID(cfg.Mqtt.ClientID).
		SetUsername(cfg.Mqtt.Username).
		SetPassword(cfg.Mqtt.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second)

	return &Streamer{
		client: mqtt.NewClient(options),
		cont:   cont,
		topic:  cfg.Mqtt.Topic,
		fps:    cfg.FPS,
		loop:   loop,
	}
}

// Run connects and publishes frames until the animation ends or the
// context is cancelled. With loop set it wraps around forever.
func (s *Streamer) Run(ctx context.Context) error {
	log := logger.Log.WithField("scope", "streamer")

	if token := s.client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("Error connecting to broker: %w", token.Error())
	}
	defer s.client.Disconnect(250)
	log.Debugf("connected, streaming %d frames at %d fps", s.cont.FrameCount(), s.fps)

	total := int64(s.cont.FrameCount())
	if s.loop {
		total = -1 // spinner mode
	}
	bar := progressbar.Default(total, "Streaming... ")

	ticker := time.NewTicker(time.Second / time.Duration(s.fps))
	defer ticker.Stop()

	i := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.sendFrame(i); err != nil {
				return err
			}
			_ = bar.Add(1)
			i++
			if i < s.cont.FrameCount() {
				continue
			}
			if !s.loop {
				return nil
			}
			i = 0
		}
	}
}

// sendFrame publishes frame i: uint16 LE pixel count followed by the
// raw stored triples, the wire format ledrx class devices expect.
func (s *Streamer) sendFrame(i int) error {
	raw, err := s.cont.Raw(i)
	if err != nil {
		return err
	}
	numPixels := int(s.cont.Header.Width) * int(s.cont.Header.Height)

	payload := make([]byte, 2, 2+len(raw))
	binary.LittleEndian.PutUint16(payload, uint16(numPixels))
	payload = append(payload, raw...)

	token := s.client.Publish(s.topic, 2, false, payload)
	token.Wait()
	return token.Error()
}
