package main

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AnatoleLucet/sigcore"
)

func testLogger() *slog.Logger {
	return newLogger(io.Discard, false)
}

func TestDemo(t *testing.T) {
	t.Run("runs the selected scenarios", func(t *testing.T) {
		var out bytes.Buffer
		cmd := demoCmd(testLogger)
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"--only", "subscribe,batch"})

		assert.NoError(t, cmd.Execute())
		assert.Equal(t, "== subscribe\nlog=[1 2]\n"+
			"== batch\neffect a=1 b=2\neffect a=10 b=20\nruns=2\n", out.String())
	})

	t.Run("rejects unknown scenarios", func(t *testing.T) {
		cmd := demoCmd(testLogger)
		cmd.SetOut(io.Discard)
		cmd.SetArgs([]string{"--only", "nope"})

		assert.EqualError(t, cmd.Execute(), `unknown scenario "nope"`)
	})
}

func TestBench(t *testing.T) {
	t.Run("fan-out graph", func(t *testing.T) {
		result := runBench(sigcore.NewRuntime(), benchConfig{
			Signals:   4,
			Computeds: 2,
			Effects:   2,
			Rounds:    3,
			Batch:     true,
		})

		assert.Equal(t, uint64(12), result.Stats.Writes)
		assert.Equal(t, uint64(3), result.Stats.Flushes)
		assert.Equal(t, 8, result.EffectRuns)
	})

	t.Run("prints metrics", func(t *testing.T) {
		var out bytes.Buffer
		cmd := benchCmd(testLogger)
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"--signals", "2", "--computeds", "1", "--effects", "1", "--rounds", "2"})

		assert.NoError(t, cmd.Execute())
		assert.Contains(t, out.String(), "writes:      4")
		assert.Contains(t, out.String(), "# TYPE sigcore_signal_writes_total counter")
		assert.Contains(t, out.String(), "sigcore_signal_writes_total 4")
		assert.Contains(t, out.String(), `sigcore_callbacks_total{kind="effect"} 2`)
	})

	t.Run("rejects empty graphs", func(t *testing.T) {
		cmd := benchCmd(testLogger)
		cmd.SetOut(io.Discard)
		cmd.SetArgs([]string{"--signals", "0"})

		assert.Error(t, cmd.Execute())
	})
}
