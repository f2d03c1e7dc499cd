package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

const testRate = beep.SampleRate(44100)

// drain streams until the source reports done, returning every sample.
func drain(t *testing.T, s beep.Streamer) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 512)
	for range 10000 {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
	t.Fatal("streamer never finished")
	return nil
}

func TestToneLengthAndRange(t *testing.T) {
	d := 50 * time.Millisecond
	tn := newTone(testRate, waveSine, 440, d)

	out := drain(t, tn)
	if want := testRate.N(d); len(out) != want {
		t.Fatalf("streamed %d samples, want %d", len(out), want)
	}
	for i, s := range out {
		if s[0] < -1 || s[0] > 1 || s[1] < -1 || s[1] > 1 {
			t.Fatalf("sample %d out of range: %v", i, s)
		}
		if s[0] != s[1] {
			t.Fatalf("sample %d is not mono in both channels: %v", i, s)
		}
	}
	if tn.Err() != nil {
		t.Errorf("tone reported error: %v", tn.Err())
	}
}

func TestToneSquareValues(t *testing.T) {
	tn := newTone(testRate, waveSquare, 220, 10*time.Millisecond)
	for _, s := range drain(t, tn) {
		if s[0] != 1 && s[0] != -1 {
			t.Fatalf("square sample = %v, want +/-1", s[0])
		}
	}
}

func TestToneDrainContract(t *testing.T) {
	tn := newTone(testRate, waveSine, 440, time.Millisecond)
	buf := make([][2]float64, 8)
	for range 100 {
		if _, ok := tn.Stream(buf); !ok {
			break
		}
	}
	// Once drained, further calls must report (0, false).
	n, ok := tn.Stream(buf)
	if n != 0 || ok {
		t.Errorf("drained tone streamed (%d, %v), want (0, false)", n, ok)
	}
}

func TestShapeEnvelope(t *testing.T) {
	d := 100 * time.Millisecond
	attack := 20 * time.Millisecond
	release := 30 * time.Millisecond

	// A DC-like source makes the envelope directly observable: a very
	// low frequency sine stays near zero, so use the square instead and
	// take absolute values.
	src := newTone(testRate, waveSquare, 100, d)
	out := drain(t, shaped(src, testRate, d, attack, release))

	if want := testRate.N(d); len(out) != want {
		t.Fatalf("streamed %d samples, want %d", len(out), want)
	}
	if v := math.Abs(out[0][0]); v > 1e-9 {
		t.Errorf("first sample = %v, want silence at attack start", v)
	}
	attackEnd := testRate.N(attack)
	if v := math.Abs(out[attackEnd][0]); v < 0.99 {
		t.Errorf("sample after attack = %v, want full level", v)
	}
	if v := math.Abs(out[len(out)-1][0]); v > 0.01 {
		t.Errorf("last sample = %v, want faded out", v)
	}
}

func TestEffectStreamersFinite(t *testing.T) {
	makers := map[string]func(beep.SampleRate, float64) beep.Streamer{
		"fire":      fireSound,
		"enemyFire": enemyFireSound,
		"explosion": explosionSound,
		"playerHit": playerHitSound,
		"ping":      pingSound,
		"extraLife": extraLifeSound,
	}
	for name, mk := range makers {
		s := mk(testRate, 0.8)
		if s == nil {
			t.Fatalf("%s: nil streamer", name)
		}
		out := drain(t, s)
		if len(out) == 0 {
			t.Errorf("%s: streamed no samples", name)
		}
		for i, v := range out {
			if math.Abs(v[0]) > 1.5 {
				t.Errorf("%s: sample %d clips hard at %v", name, i, v[0])
				break
			}
		}
	}
}

func TestEngineHumEndless(t *testing.T) {
	h := newEngineHum(testRate)
	buf := make([][2]float64, 256)
	for range 50 {
		n, ok := h.Stream(buf)
		if n != len(buf) || !ok {
			t.Fatalf("hum streamed (%d, %v), want full buffers forever", n, ok)
		}
	}
}

func TestEngineHumPitchFollowsThrottle(t *testing.T) {
	h := newEngineHum(testRate)
	idle := math.Float64frombits(h.freq.Load())

	h.setPitch(1)
	full := math.Float64frombits(h.freq.Load())
	if full <= idle {
		t.Errorf("full throttle pitch %v not above idle %v", full, idle)
	}

	h.setPitch(-1)
	rev := math.Float64frombits(h.freq.Load())
	if rev != full {
		t.Errorf("reverse pitch %v differs from forward %v", rev, full)
	}
}

func TestAtVolumeSilentAtZero(t *testing.T) {
	src := newTone(testRate, waveSine, 440, 10*time.Millisecond)
	for _, s := range drain(t, atVolume(src, 0)) {
		if s[0] != 0 || s[1] != 0 {
			t.Fatalf("zero volume produced sample %v", s)
		}
	}
}
