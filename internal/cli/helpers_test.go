package cli

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/aretw0/diagtree/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignalContext_CapturesSignal(t *testing.T) {
	sc := NewSignalContext(context.Background())
	defer sc.Cancel()
	assert.Nil(t, sc.Signal())

	sc.sigCh <- os.Interrupt

	require.Eventually(t, func() bool { return sc.Err() != nil }, time.Second, 10*time.Millisecond)
	assert.Equal(t, os.Interrupt, sc.Signal())
	assert.Equal(t, os.Interrupt, signalOf(sc))
}

func TestLogInterruption(t *testing.T) {
	sc := NewSignalContext(context.Background())
	defer sc.Cancel()
	sc.sigCh <- os.Interrupt
	require.Eventually(t, func() bool { return sc.Signal() != nil }, time.Second, 10*time.Millisecond)

	var logs, out bytes.Buffer
	logInterruption(sc, logging.NewJSON(&logs, slog.LevelInfo), &out, false)

	assert.Contains(t, logs.String(), `"msg":"Session interrupted"`)
	assert.Contains(t, logs.String(), `"signal":"interrupt"`)
	assert.Equal(t, ">>> Interrupted by interrupt.\n", out.String())

	out.Reset()
	logInterruption(sc, logging.NewNop(), &out, true)
	assert.Empty(t, out.String(), "quiet output stays machine-readable")
}

func TestLogInterruption_NoSignal(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	logInterruption(ctx, logging.NewNop(), &out, false)
	assert.Nil(t, signalOf(ctx))
	assert.Empty(t, out.String())
}
