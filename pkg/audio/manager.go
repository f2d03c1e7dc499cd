// Package audio synthesizes the battle's sound effects and plays them
// through the system speaker. Every sound is generated at startup
// volume from oscillators; no sample files ship with the binary.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/jhericks/battle-zone/pkg/game"
)

const sampleRate = beep.SampleRate(44100)

// Manager owns the speaker and turns game events into sounds.
type Manager struct {
	mu     sync.Mutex
	rate   beep.SampleRate
	mixer  *beep.Mixer
	hum    *engineHum
	humCtl *beep.Ctrl
	volume float64
	muted  bool
	ready  bool
}

// NewManager creates a silent manager. Nothing plays until Start.
func NewManager(volume float64) *Manager {
	if volume < 0 {
		volume = 0
	} else if volume > 1 {
		volume = 1
	}
	return &Manager{rate: sampleRate, mixer: &beep.Mixer{}, volume: volume}
}

// Start opens the speaker and begins the idle engine drone. On failure
// the manager stays silent and the game runs without sound.
func (m *Manager) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ready {
		return nil
	}
	if err := speaker.Init(m.rate, m.rate.N(100*time.Millisecond)); err != nil {
		return err
	}
	m.hum = newEngineHum(m.rate)
	m.humCtl = &beep.Ctrl{Streamer: atVolume(m.hum, m.volume*0.6), Paused: true}
	m.mixer.Add(m.humCtl)
	speaker.Play(m.mixer)
	m.ready = true
	return nil
}

// Close shuts the speaker down.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.ready {
		return
	}
	speaker.Close()
	m.ready = false
}

// Update reacts to one frame of game output: queues a sound per event
// and keeps the engine drone tracking the throttle. Mixer mutations
// happen under the speaker lock because the playback goroutine streams
// from it concurrently.
func (m *Manager) Update(events []game.Event, mode game.Mode, throttle float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.ready {
		return
	}

	m.hum.setPitch(throttle)
	speaker.Lock()
	m.humCtl.Paused = m.muted || mode != game.ModePlaying
	speaker.Unlock()

	if m.muted {
		return
	}
	for _, ev := range events {
		if s := m.soundFor(ev.Kind); s != nil {
			speaker.Lock()
			m.mixer.Add(s)
			speaker.Unlock()
		}
	}
}

func (m *Manager) soundFor(kind game.EventKind) beep.Streamer {
	switch kind {
	case game.EventFire:
		return fireSound(m.rate, m.volume)
	case game.EventEnemyFire:
		return enemyFireSound(m.rate, m.volume)
	case game.EventExplosion:
		return explosionSound(m.rate, m.volume)
	case game.EventPlayerHit:
		return playerHitSound(m.rate, m.volume)
	case game.EventRadarPing:
		return pingSound(m.rate, m.volume)
	case game.EventExtraLife:
		return extraLifeSound(m.rate, m.volume)
	}
	return nil
}

// ToggleMute flips mute and reports whether sound is now audible.
func (m *Manager) ToggleMute() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = !m.muted
	if m.ready && m.muted {
		speaker.Lock()
		m.humCtl.Paused = true
		speaker.Unlock()
	}
	return !m.muted
}

// Muted reports the current mute state.
func (m *Manager) Muted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.muted
}
