package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	t.Run("Rejects nil writer", func(t *testing.T) {
		l, err := New("APP", "", nil)
		assert.ErrorIs(t, err, ErrNilWriter)
		assert.Nil(t, l)
	})

	t.Run("Writes prefix and level", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := New("SESSION", "\033[36m", &buf)
		require.NoError(t, err)

		l.Info("started")
		l.Warning("slow subscriber")
		l.Error("boom")

		out := buf.String()
		assert.Contains(t, out, "[SESSION]")
		assert.Contains(t, out, "[INFO]"+colorReset+" started")
		assert.Contains(t, out, "[WARNING]"+colorReset+" slow subscriber")
		assert.Contains(t, out, "[ERROR]"+colorReset+" boom")
	})
}
