package terminal

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMelodyLength(t *testing.T) {
	sr := beep.SampleRate(8000)
	s, err := melody(sr, winMelody)
	require.NoError(t, err)

	want := 0
	for _, n := range winMelody {
		want += sr.N(n.duration)
	}

	buf := make([][2]float64, 256)
	got := 0
	for {
		n, ok := s.Stream(buf)
		got += n
		if !ok {
			break
		}
	}
	assert.Equal(t, want, got)
}

func TestMelodyRejectsUnplayableNotes(t *testing.T) {
	sr := beep.SampleRate(8000)
	// Anything at or above Nyquist cannot be generated.
	_, err := melody(sr, []note{{freq: 4000, duration: time.Millisecond}})
	assert.Error(t, err)
}

func TestSilentChime(t *testing.T) {
	c := &Chime{}
	assert.NotPanics(t, c.Play)
	assert.NotPanics(t, c.Close)
}
