package terminal

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Sound is played when the goal is reached.
type Sound interface {
	Play()
}

type note struct {
	freq     float64
	duration time.Duration
}

var winMelody = []note{
	{freq: 660, duration: 120 * time.Millisecond},
	{freq: 880, duration: 120 * time.Millisecond},
	{freq: 1320, duration: 240 * time.Millisecond},
}

// Chime plays a short rising arpeggio on the default audio device.
type Chime struct {
	mu          sync.Mutex
	initialized bool
}

// NewChime opens the speaker. The returned Chime is silent when that fails.
func NewChime() (*Chime, error) {
	c := &Chime{}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return c, err
	}
	c.initialized = true
	return c, nil
}

// Play queues the melody without waiting for it.
func (c *Chime) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.initialized {
		return
	}
	s, err := melody(sampleRate, winMelody)
	if err != nil {
		return
	}
	speaker.Play(s)
}

// Close releases the speaker.
func (c *Chime) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.initialized {
		speaker.Close()
		c.initialized = false
	}
}

func melody(sr beep.SampleRate, notes []note) (beep.Streamer, error) {
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		tone, err := generators.SineTone(sr, n.freq)
		if err != nil {
			return nil, err
		}
		parts = append(parts, beep.Take(sr.N(n.duration), tone))
	}
	return beep.Seq(parts...), nil
}
