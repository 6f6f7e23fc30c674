package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventFireStopsAtFirstHandler(t *testing.T) {
	EventShutdown()
	defer EventShutdown()

	var calls []string
	EventRegister(EVENT_CODE_RESIZED, func(code SystemEventCode, data EventContext) bool {
		calls = append(calls, "first")
		assert.Equal(t, 800, data.Width)
		return true
	})
	EventRegister(EVENT_CODE_RESIZED, func(SystemEventCode, EventContext) bool {
		calls = append(calls, "second")
		return false
	})

	assert.True(t, EventFire(EVENT_CODE_RESIZED, EventContext{Width: 800, Height: 600}))
	assert.Equal(t, []string{"first"}, calls)
}

func TestEventUnregister(t *testing.T) {
	EventShutdown()
	defer EventShutdown()

	fired := 0
	id := EventRegister(EVENT_CODE_APPLICATION_QUIT, func(SystemEventCode, EventContext) bool {
		fired++
		return true
	})
	assert.False(t, EventUnregister(EVENT_CODE_RESIZED, id))
	assert.True(t, EventUnregister(EVENT_CODE_APPLICATION_QUIT, id))
	assert.False(t, EventUnregister(EVENT_CODE_APPLICATION_QUIT, id))

	assert.False(t, EventFire(EVENT_CODE_APPLICATION_QUIT, EventContext{}))
	assert.Zero(t, fired)
}
