// Package audio plays the match sound.
package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Player plays game sounds. Implementations must not block.
type Player interface {
	PlayMatch()
	Close()
}

// Nop is a silent Player.
type Nop struct{}

func (Nop) PlayMatch() {}
func (Nop) Close()     {}

// Speaker plays sounds through the default output device.
type Speaker struct {
	mu        sync.Mutex
	mixer     *beep.Mixer
	frequency float64
	volume    float64
	closed    bool
	logger    *log.Logger
	warned    bool
}

// NewSpeaker checks the tone and initializes the output device. A nil
// logger discards playback errors.
func NewSpeaker(frequency, volume float64, logger *log.Logger) (*Speaker, error) {
	if err := CheckTone(frequency); err != nil {
		return nil, err
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("audio: cannot init speaker: %w", err)
	}
	s := &Speaker{
		mixer:     &beep.Mixer{},
		frequency: frequency,
		volume:    volume,
		logger:    logger,
	}
	speaker.Play(s.mixer)
	return s, nil
}

// PlayMatch queues the bling on the mixer and returns immediately.
func (s *Speaker) PlayMatch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	st, err := Bling(sampleRate, s.frequency, s.volume)
	if err != nil {
		if !s.warned && s.logger != nil {
			s.logger.Warn("match sound failed", "frequency", s.frequency, "err", err)
		}
		s.warned = true
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// Close silences the mixer.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	speaker.Clear()
}

// CheckTone reports whether the bling can be built at frequency.
func CheckTone(frequency float64) error {
	_, err := Bling(sampleRate, frequency, 0)
	return err
}

// Bling is a short two-note chime: freq, then a fifth above, each decaying.
func Bling(sr beep.SampleRate, freq, volume float64) (beep.Streamer, error) {
	first, err := note(sr, freq, 70*time.Millisecond)
	if err != nil {
		return nil, err
	}
	second, err := note(sr, freq*1.5, 140*time.Millisecond)
	if err != nil {
		return nil, err
	}
	return withVolume(beep.Seq(first, second), volume), nil
}

func note(sr beep.SampleRate, freq float64, d time.Duration) (beep.Streamer, error) {
	tone, err := generators.SineTone(sr, freq)
	if err != nil {
		return nil, fmt.Errorf("audio: tone %.1fHz: %w", freq, err)
	}
	return decay(beep.Take(sr.N(d), tone), sr.N(d)), nil
}

// decay fades s linearly to silence over total samples.
func decay(s beep.Streamer, total int) beep.Streamer {
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		n, ok := s.Stream(samples)
		for i := range n {
			gain := 1 - float64(pos)/float64(total)
			if gain < 0 {
				gain = 0
			}
			samples[i][0] *= gain
			samples[i][1] *= gain
			pos++
		}
		return n, ok
	})
}

// withVolume maps a linear volume onto effects.Volume; 0 is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(math.Min(vol, 1))}
}
