package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func drain(t *testing.T, s beep.Streamer) (total int, peak float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	for range 1000 {
		n, ok := s.Stream(buf)
		for i := range n {
			for _, v := range buf[i] {
				peak = max(peak, v, -v)
			}
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatal("stream did not terminate")
	return 0, 0
}

func TestBlingIsShortAndBounded(t *testing.T) {
	rate := beep.SampleRate(44100)
	s, err := Bling(rate, 1318.51, 0.6)
	if err != nil {
		t.Fatalf("Bling() failed: %v", err)
	}

	total, peak := drain(t, s)
	want := rate.N(70*time.Millisecond) + rate.N(140*time.Millisecond)
	if total != want {
		t.Errorf("streamed %d samples, expected %d", total, want)
	}
	if peak > 1.0 || peak == 0 {
		t.Errorf("peak amplitude %f, expected in (0, 1]", peak)
	}
}

func TestBlingMuted(t *testing.T) {
	s, err := Bling(beep.SampleRate(8000), 440, 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, peak := drain(t, s); peak != 0 {
		t.Errorf("muted bling peak = %f, expected 0", peak)
	}
}

func TestBlingRejectsBadFrequency(t *testing.T) {
	// Above Nyquist.
	if _, err := Bling(beep.SampleRate(8000), 10000, 1); err == nil {
		t.Error("expected error for frequency above Nyquist")
	}
}

func TestCheckTone(t *testing.T) {
	if err := CheckTone(1318.51); err != nil {
		t.Errorf("CheckTone(1318.51) failed: %v", err)
	}
	if err := CheckTone(30000); err == nil {
		t.Error("expected error for frequency above Nyquist")
	}
}

func TestNewSpeakerRejectsBadFrequencyBeforeDevice(t *testing.T) {
	sp, err := NewSpeaker(30000, 0.6, nil)
	if err == nil || sp != nil {
		t.Fatalf("NewSpeaker(30000) = %v, %v; expected an error", sp, err)
	}
}

func TestNopPlayer(t *testing.T) {
	var p Player = Nop{}
	p.PlayMatch()
	p.Close()
}
