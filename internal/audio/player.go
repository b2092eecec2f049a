// Package audio plays a stereo float32 stream through the system output.
package audio

import (
	"time"

	oto "github.com/ebitengine/oto/v3"
)

// Player owns the output device and one playing stream.
type Player struct {
	context    *oto.Context
	player     *oto.Player
	sampleRate int
	frames     int
	stopChan   chan struct{}
}

// NewPlayer opens the default output at sampleRate. frames is the number of
// stereo frames requested from the source per fill; buffer is the device
// latency target.
func NewPlayer(sampleRate, frames int, buffer time.Duration) (*Player, error) {
	otoContext, readyChan, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   buffer,
	})
	if err != nil {
		return nil, err
	}

	<-readyChan

	return &Player{
		context:    otoContext,
		sampleRate: sampleRate,
		frames:     frames,
		stopChan:   make(chan struct{}),
	}, nil
}

// Start begins playback, pulling audio from src on the device goroutine.
func (p *Player) Start(src Source) {
	p.player = p.context.NewPlayer(NewStream(src, p.frames, p.stopChan))
	p.player.Play()
}

// Stop pauses playback. The stream ends after the current fill.
func (p *Player) Stop() {
	select {
	case <-p.stopChan:
		return
	default:
	}

	close(p.stopChan)
	if p.player != nil {
		p.player.Pause()
	}
}

// Close stops playback and releases the stream.
func (p *Player) Close() error {
	p.Stop()
	if p.player != nil {
		return p.player.Close()
	}
	return nil
}
