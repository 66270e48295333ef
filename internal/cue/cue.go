// Package cue plays the optional spin sounds: a click whenever a segment
// boundary passes the pointer and a short phrase when the wheel settles.
package cue

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
	// clicks queued per frame; faster crossings are merged
	maxClicks = 3
)

// Player receives spin events.
type Player interface {
	Click(n int)
	Settle(winner bool)
	Close()
}

// Silent is the player used when sound is off.
type Silent struct{}

func (Silent) Click(int)   {}
func (Silent) Settle(bool) {}
func (Silent) Close()      {}

// Speaker mixes cue streamers into the default audio device.
type Speaker struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	volume float64
	closed bool
}

// NewSpeaker initializes the audio device. volume is in beep's base-2
// exponent units: 0 keeps the level, -1 halves it.
func NewSpeaker(volume float64) (*Speaker, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return nil, err
	}
	s := &Speaker{mixer: &beep.Mixer{}, volume: volume}
	speaker.Play(s.mixer)
	return s, nil
}

func (s *Speaker) Click(n int) {
	if n <= 0 {
		return
	}
	if n > maxClicks {
		n = maxClicks
	}
	s.add(ClickPhrase(sampleRate, n))
}

func (s *Speaker) Settle(winner bool) {
	s.add(SettlePhrase(sampleRate, winner))
}

func (s *Speaker) add(st beep.Streamer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	vol := &effects.Volume{Streamer: st, Base: 2, Volume: s.volume}
	speaker.Lock()
	s.mixer.Add(vol)
	speaker.Unlock()
}

func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
}

// ClickPhrase is n short ticks spaced so they stay distinct within a frame.
func ClickPhrase(rate beep.SampleRate, n int) beep.Streamer {
	parts := make([]beep.Streamer, 0, 2*n)
	for i := 0; i < n; i++ {
		if i > 0 {
			parts = append(parts, beep.Silence(rate.N(4*time.Millisecond)))
		}
		parts = append(parts, NewTone(rate, 1800, 6*time.Millisecond, 400))
	}
	return beep.Seq(parts...)
}

// SettlePhrase rises for a win and falls otherwise.
func SettlePhrase(rate beep.SampleRate, winner bool) beep.Streamer {
	notes := []float64{330, 220}
	if winner {
		notes = []float64{523.25, 659.25, 783.99}
	}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, f := range notes {
		parts = append(parts, NewTone(rate, f, 140*time.Millisecond, 6))
	}
	return beep.Seq(parts...)
}
