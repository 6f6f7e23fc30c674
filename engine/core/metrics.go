package core

import (
	"time"

	"github.com/spaghettifunk/ember/engine/containers"
)

const AVG_COUNT = 30

// Metrics tracks frames per second and a rolling average of the last
// AVG_COUNT frame times.
type Metrics struct {
	frameTimes       *containers.RingQueue[time.Duration]
	frameTimeSum     time.Duration
	frames           int
	accumulatedFrame time.Duration
	fps              int
}

func NewMetrics() *Metrics {
	return &Metrics{
		frameTimes: containers.NewRingQueue[time.Duration](AVG_COUNT),
	}
}

// Update records one frame. It reports true whenever a full second has
// accumulated and FPS has been refreshed.
func (m *Metrics) Update(frameElapsed time.Duration) bool {
	if evicted, ok := m.frameTimes.Push(frameElapsed); ok {
		m.frameTimeSum -= evicted
	}
	m.frameTimeSum += frameElapsed

	m.frames++
	m.accumulatedFrame += frameElapsed
	if m.accumulatedFrame >= time.Second {
		m.fps = m.frames
		m.accumulatedFrame -= time.Second
		m.frames = 0
		return true
	}
	return false
}

func (m *Metrics) FPS() int {
	return m.fps
}

// FrameTime returns the average frame time over the recorded window.
func (m *Metrics) FrameTime() time.Duration {
	if m.frameTimes.IsEmpty() {
		return 0
	}
	return m.frameTimeSum / time.Duration(m.frameTimes.Len())
}
