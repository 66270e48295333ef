package cue

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Tone is a sine burst with an exponential decay envelope.
type Tone struct {
	freq     float64
	decay    float64
	phase    float64
	position int
	duration int
	rate     beep.SampleRate
}

// NewTone creates a tone of the given frequency and length. decay is the
// envelope rate in 1/s; larger values sound more like a click.
func NewTone(rate beep.SampleRate, freq float64, d time.Duration, decay float64) *Tone {
	return &Tone{
		freq:     freq,
		decay:    decay,
		duration: rate.N(d),
		rate:     rate,
	}
}

func (t *Tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.duration {
			return i, i > 0
		}
		secs := float64(t.position) / float64(t.rate)
		val := math.Sin(2*math.Pi*t.phase) * math.Exp(-t.decay*secs)
		samples[i][0] = val
		samples[i][1] = val

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *Tone) Err() error { return nil }

// Len is the tone length in samples.
func (t *Tone) Len() int { return t.duration }
