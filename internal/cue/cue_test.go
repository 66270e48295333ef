package cue

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func drain(s beep.Streamer) [][2]float64 {
	var out [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
}

func TestTone_LengthAndEnvelope(t *testing.T) {
	rate := beep.SampleRate(44100)
	tone := NewTone(rate, 440, 100*time.Millisecond, 20)

	samples := drain(tone)
	if len(samples) != rate.N(100*time.Millisecond) {
		t.Fatalf("expected %d samples, got %d", rate.N(100*time.Millisecond), len(samples))
	}

	peak := func(from, to int) float64 {
		m := 0.0
		for _, s := range samples[from:to] {
			m = math.Max(m, math.Abs(s[0]))
		}
		return m
	}
	quarter := len(samples) / 4
	if head, tail := peak(0, quarter), peak(3*quarter, len(samples)); tail >= head {
		t.Errorf("envelope should decay: head %.3f tail %.3f", head, tail)
	}
	for i, s := range samples {
		if s[0] != s[1] {
			t.Fatalf("sample %d not mono: %v", i, s)
		}
		if math.Abs(s[0]) > 1 {
			t.Fatalf("sample %d clips: %v", i, s[0])
		}
	}
}

func TestTone_ExhaustedStreamStops(t *testing.T) {
	tone := NewTone(beep.SampleRate(8000), 1000, time.Millisecond, 0)
	drain(tone)
	if n, ok := tone.Stream(make([][2]float64, 16)); n != 0 || ok {
		t.Errorf("exhausted tone returned n=%d ok=%v", n, ok)
	}
	if tone.Err() != nil {
		t.Error("tone should never report an error")
	}
}

func TestPhrases(t *testing.T) {
	rate := beep.SampleRate(44100)
	one := len(drain(ClickPhrase(rate, 1)))
	three := len(drain(ClickPhrase(rate, 3)))
	if three <= 2*one {
		t.Errorf("three clicks (%d samples) should be longer than two single clicks (%d)", three, one)
	}

	win := len(drain(SettlePhrase(rate, true)))
	lose := len(drain(SettlePhrase(rate, false)))
	if win <= lose {
		t.Errorf("winning phrase (%d) should be longer than losing phrase (%d)", win, lose)
	}
}

func TestSilent(t *testing.T) {
	var p Player = Silent{}
	p.Click(5)
	p.Settle(true)
	p.Close()
}
