package media

import (
	"fmt"
	"os"
	"path"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
)

// Player drives the audio backend and reports its position to the
// playback clock. All streamer access happens under the speaker lock.
type Player struct {
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	started  bool
}

func decode(f *os.File, ext string) (beep.StreamSeekCloser, beep.Format, error) {
	switch ext {
	case ".mp3":
		return mp3.Decode(f)
	case ".ogg":
		return vorbis.Decode(f)
	case ".wav":
		return wav.Decode(f)
	}
	return nil, beep.Format{}, fmt.Errorf("unsupported audio format %v", ext)
}

func Open(file string) (*Player, error) {
	f, err := os.Open(file)
	if nil != err {
		return nil, err
	}
	streamer, format, err := decode(f, path.Ext(file))
	if nil != err {
		return nil, fmt.Errorf("unable to decode %v: %w", file, err)
	}
	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/30)); nil != err {
		return nil, fmt.Errorf("unable to init speaker: %w", err)
	}
	return &Player{
		streamer: streamer,
		format:   format,
		ctrl:     &beep.Ctrl{Streamer: streamer},
	}, nil
}

func (p *Player) Play() {
	if !p.started {
		p.started = true
		speaker.Play(p.ctrl)
		return
	}
	speaker.Lock()
	p.ctrl.Paused = false
	speaker.Unlock()
}

func (p *Player) Pause() {
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
}

func (p *Player) Playing() bool {
	speaker.Lock()
	defer speaker.Unlock()
	return p.started && !p.ctrl.Paused && p.streamer.Position() < p.streamer.Len()
}

func (p *Player) Position() time.Duration {
	speaker.Lock()
	defer speaker.Unlock()
	return p.format.SampleRate.D(p.streamer.Position())
}

// Rewind steps the track back, used to give a short lead-in on resume.
func (p *Player) Rewind(d time.Duration) error {
	speaker.Lock()
	defer speaker.Unlock()
	pos := p.streamer.Position() - p.format.SampleRate.N(d)
	if pos < 0 {
		pos = 0
	}
	return p.streamer.Seek(pos)
}

func (p *Player) Duration() time.Duration {
	return p.format.SampleRate.D(p.streamer.Len())
}

func (p *Player) Close() error {
	return p.streamer.Close()
}
