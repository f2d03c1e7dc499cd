package audio

import (
	"math"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// waveform selects the oscillator shape.
type waveform int

const (
	waveSine waveform = iota
	waveSquare
	waveSaw
	waveNoise
)

// tone is a finite oscillator burst.
type tone struct {
	rate  beep.SampleRate
	wave  waveform
	freq  float64
	phase float64
	left  int
}

func newTone(rate beep.SampleRate, wave waveform, freq float64, d time.Duration) *tone {
	return &tone{rate: rate, wave: wave, freq: freq, left: rate.N(d)}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.left <= 0 {
			return i, i > 0
		}
		var v float64
		switch t.wave {
		case waveSine:
			v = math.Sin(2 * math.Pi * t.phase)
		case waveSquare:
			if t.phase < 0.5 {
				v = 1
			} else {
				v = -1
			}
		case waveSaw:
			v = 2*t.phase - 1
		case waveNoise:
			v = rand.Float64()*2 - 1
		}
		samples[i][0] = v
		samples[i][1] = v

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.left--
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// shape applies a linear attack and release to a finite streamer.
type shape struct {
	s       beep.Streamer
	pos     int
	attack  int
	release int
	total   int
}

func shaped(s beep.Streamer, rate beep.SampleRate, total, attack, release time.Duration) beep.Streamer {
	return &shape{
		s:       s,
		attack:  rate.N(attack),
		release: rate.N(release),
		total:   rate.N(total),
	}
}

func (e *shape) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.s.Stream(samples)
	for i := range n {
		gain := 1.0
		if e.attack > 0 && e.pos < e.attack {
			gain = float64(e.pos) / float64(e.attack)
		}
		if tail := e.total - e.pos; e.release > 0 && tail < e.release {
			if g := float64(tail) / float64(e.release); g < gain {
				gain = g
			}
		}
		if gain < 0 {
			gain = 0
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.pos++
	}
	return n, ok
}

func (e *shape) Err() error { return e.s.Err() }

// atVolume scales a streamer to a 0..1 level on beep's exponential
// scale. Zero is fully silent rather than log2(0).
func atVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// burst is the common effect recipe: an enveloped tone at a level.
func burst(rate beep.SampleRate, wave waveform, freq float64, d, attack, release time.Duration, level float64) beep.Streamer {
	return atVolume(shaped(newTone(rate, wave, freq, d), rate, d, attack, release), level)
}

func fireSound(rate beep.SampleRate, vol float64) beep.Streamer {
	return atVolume(beep.Mix(
		burst(rate, waveSquare, 180, 160*time.Millisecond, 2*time.Millisecond, 110*time.Millisecond, 0.8),
		burst(rate, waveNoise, 0, 120*time.Millisecond, time.Millisecond, 100*time.Millisecond, 0.5),
	), vol)
}

func enemyFireSound(rate beep.SampleRate, vol float64) beep.Streamer {
	return atVolume(beep.Mix(
		burst(rate, waveSquare, 130, 150*time.Millisecond, 2*time.Millisecond, 110*time.Millisecond, 0.5),
		burst(rate, waveNoise, 0, 110*time.Millisecond, time.Millisecond, 90*time.Millisecond, 0.35),
	), vol)
}

func explosionSound(rate beep.SampleRate, vol float64) beep.Streamer {
	return atVolume(beep.Mix(
		burst(rate, waveNoise, 0, 700*time.Millisecond, 4*time.Millisecond, 550*time.Millisecond, 0.9),
		burst(rate, waveSine, 55, 700*time.Millisecond, 4*time.Millisecond, 600*time.Millisecond, 0.8),
	), vol)
}

func playerHitSound(rate beep.SampleRate, vol float64) beep.Streamer {
	return atVolume(beep.Mix(
		burst(rate, waveSaw, 70, 900*time.Millisecond, 3*time.Millisecond, 750*time.Millisecond, 0.8),
		burst(rate, waveNoise, 0, 900*time.Millisecond, 3*time.Millisecond, 800*time.Millisecond, 0.8),
	), vol)
}

func pingSound(rate beep.SampleRate, vol float64) beep.Streamer {
	return atVolume(beep.Mix(
		burst(rate, waveSine, 1240, 90*time.Millisecond, time.Millisecond, 70*time.Millisecond, 0.5),
		burst(rate, waveSine, 2480, 90*time.Millisecond, time.Millisecond, 80*time.Millisecond, 0.15),
	), vol)
}

func extraLifeSound(rate beep.SampleRate, vol float64) beep.Streamer {
	return atVolume(beep.Seq(
		burst(rate, waveSquare, 880, 120*time.Millisecond, 2*time.Millisecond, 60*time.Millisecond, 0.35),
		burst(rate, waveSquare, 1318.5, 180*time.Millisecond, 2*time.Millisecond, 120*time.Millisecond, 0.35),
	), vol)
}

const humBase = 48.0

// engineHum is an endless drone whose pitch follows the tank throttle.
// The pitch is written from the game loop and read on the speaker
// goroutine, hence the atomic.
type engineHum struct {
	rate  beep.SampleRate
	freq  atomic.Uint64
	phase float64
}

func newEngineHum(rate beep.SampleRate) *engineHum {
	h := &engineHum{rate: rate}
	h.setPitch(0)
	return h
}

func (h *engineHum) setPitch(throttle float64) {
	f := humBase + math.Abs(throttle)*60
	h.freq.Store(math.Float64bits(f))
}

func (h *engineHum) Stream(samples [][2]float64) (int, bool) {
	freq := math.Float64frombits(h.freq.Load())
	for i := range samples {
		v := 0.5 * math.Sin(2*math.Pi*h.phase)
		// A rough square an octave up reads as tread rattle.
		if math.Mod(h.phase*2, 1) < 0.5 {
			v += 0.12
		} else {
			v -= 0.12
		}
		samples[i][0] = v * 0.3
		samples[i][1] = v * 0.3

		h.phase += freq / float64(h.rate)
		h.phase -= math.Floor(h.phase)
	}
	return len(samples), true
}

func (h *engineHum) Err() error { return nil }
