package audio

import (
	"fmt"
	"io"
	"math"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"

	"github.com/desertthunder/chapters/internal/shared"
)

const (
	DefaultVolume     = 0.3
	DefaultSampleRate = 44100
)

// Options configures a BeepPlayer.
type Options struct {
	Path       string  // WAV file; empty synthesizes a drone
	Volume     float64 // 0.0-1.0
	SampleRate int
	Logger     *log.Logger
}

// BeepPlayer loops a track through the system speaker.
type BeepPlayer struct {
	mu     sync.Mutex
	ctrl   *beep.Ctrl
	closer io.Closer
	logger *log.Logger
	closed bool
}

// NewBeepPlayer initializes the speaker and queues the loop, paused.
//
// Errors wrap [shared.ErrAudioUnavailable]; callers fall back to [Silent].
func NewBeepPlayer(opts Options) (*BeepPlayer, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.SampleRate <= 0 {
		opts.SampleRate = DefaultSampleRate
	}
	sr := beep.SampleRate(opts.SampleRate)

	src, closer, err := source(opts.Path, sr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAudioUnavailable, err)
	}

	if err := speaker.Init(sr, sr.N(time.Second/10)); err != nil {
		if closer != nil {
			closer.Close()
		}
		return nil, fmt.Errorf("%w: failed to initialize speaker: %v", shared.ErrAudioUnavailable, err)
	}

	p := &BeepPlayer{
		ctrl:   &beep.Ctrl{Streamer: withVolume(src, opts.Volume), Paused: true},
		closer: closer,
		logger: opts.Logger,
	}
	speaker.Play(p.ctrl)
	p.logger.Debug("audio ready", "path", opts.Path, "volume", opts.Volume, "sample_rate", opts.SampleRate)
	return p, nil
}

func (p *BeepPlayer) Mute()   { p.setPaused(true) }
func (p *BeepPlayer) Unmute() { p.setPaused(false) }

func (p *BeepPlayer) Muted() bool {
	speaker.Lock()
	defer speaker.Unlock()
	return p.ctrl.Paused
}

func (p *BeepPlayer) setPaused(paused bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = paused
	speaker.Unlock()
}

// Close stops playback and releases the speaker and the track file.
func (p *BeepPlayer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true

	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
	speaker.Clear()
	speaker.Close()

	if p.closer != nil {
		return p.closer.Close()
	}
	return nil
}

// source returns an endless stream: the WAV at path resampled to sr, or a drone.
func source(path string, sr beep.SampleRate) (beep.Streamer, io.Closer, error) {
	if path == "" {
		s, err := Drone(sr)
		return s, nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open track: %w", err)
	}
	s, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	var out beep.Streamer = beep.Loop(-1, s)
	if format.SampleRate != sr {
		out = beep.Resample(4, format.SampleRate, sr, out)
	}
	return out, s, nil
}

// Drone synthesizes a quiet open fifth with a slow swell.
func Drone(sr beep.SampleRate) (beep.Streamer, error) {
	var tones []beep.Streamer
	for _, freq := range []float64{110, 165, 220} {
		s, err := generators.SineTone(sr, freq)
		if err != nil {
			return nil, fmt.Errorf("failed to create tone: %w", err)
		}
		tones = append(tones, s)
	}
	return &swell{
		Streamer: &effects.Gain{Streamer: beep.Mix(tones...), Gain: -1 + 1.0/float64(len(tones))},
		period:   sr.N(8 * time.Second),
	}, nil
}

// swell modulates amplitude between 0.5 and 1 over period samples.
type swell struct {
	beep.Streamer
	period int
	pos    int
}

func (s *swell) Stream(samples [][2]float64) (int, bool) {
	n, ok := s.Streamer.Stream(samples)
	for i := range samples[:n] {
		phase := float64(s.pos%s.period) / float64(s.period)
		amp := 0.75 + 0.25*math.Sin(2*math.Pi*phase)
		samples[i][0] *= amp
		samples[i][1] *= amp
		s.pos++
	}
	return n, ok
}

// withVolume scales s to the linear volume v.
func withVolume(s beep.Streamer, v float64) beep.Streamer {
	if v >= 1 {
		return s
	}
	vol := &effects.Volume{Streamer: s, Base: 2}
	if v <= 0 {
		vol.Silent = true
		return vol
	}
	vol.Volume = math.Log2(v)
	return vol
}
