package engine

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/spaghettifunk/ember/engine/core"
	"github.com/stretchr/testify/assert"
)

type recordingPump struct {
	polls int
	waits int
	open  bool
}

func (p *recordingPump) PumpMessages() bool {
	p.polls++
	return p.open
}

func (p *recordingPump) WaitMessages() bool {
	p.waits++
	return p.open
}

func TestEngineWaitsForEventsWhileMinimized(t *testing.T) {
	pump := &recordingPump{open: true}
	e := &Engine{gameInstance: &Game{}, messages: pump, width: 1280, height: 720}

	assert.True(t, e.processMessages())
	assert.Equal(t, 1, pump.polls)
	assert.Zero(t, pump.waits)

	assert.True(t, e.onResized(core.EVENT_CODE_RESIZED, core.EventContext{Width: 0, Height: 0}))
	assert.True(t, e.isSuspended)
	assert.True(t, e.processMessages())
	assert.True(t, e.processMessages())
	assert.Equal(t, 1, pump.polls)
	assert.Equal(t, 2, pump.waits)

	resized := [2]int{}
	e.gameInstance.FnOnResize = func(width, height int) error {
		resized = [2]int{width, height}
		return nil
	}
	assert.True(t, e.onResized(core.EVENT_CODE_RESIZED, core.EventContext{Width: 800, Height: 600}))
	assert.False(t, e.isSuspended)
	assert.Equal(t, [2]int{800, 600}, resized)
	assert.True(t, e.processMessages())
	assert.Equal(t, 2, pump.polls)

	pump.open = false
	assert.False(t, e.processMessages())
}

func TestEngineLogsFPSAtInfo(t *testing.T) {
	var buf bytes.Buffer
	core.SetLogOutput(&buf)
	core.SetLogLevel(core.LogLevelInfo)
	t.Cleanup(func() {
		core.SetLogOutput(os.Stderr)
		core.SetLogLevel(core.LogLevelDebug)
	})

	e := &Engine{metrics: core.NewMetrics()}
	for i := 0; i < 9; i++ {
		e.recordFrame(100 * time.Millisecond)
	}
	assert.Empty(t, buf.String())

	e.recordFrame(100 * time.Millisecond)
	assert.Contains(t, buf.String(), "FPS: 10")
}
