package game

import (
	"sync"
	"time"
)

// Clock is the recurring 1 Hz tick source for a session. It carries no
// game logic: the engine starts it when play begins or resumes, stops
// it when the session pauses or ends, and every fire becomes a Tick
// event.
type Clock interface {
	Start(onTick func())
	Stop()
}

// TickerClock is the production Clock backed by time.Ticker.
type TickerClock struct {
	interval time.Duration

	mu   sync.Mutex
	stop chan struct{}
}

// NewTickerClock creates a clock firing at the given interval. Game
// sessions use one second.
func NewTickerClock(interval time.Duration) *TickerClock {
	if interval <= 0 {
		interval = time.Second
	}
	return &TickerClock{interval: interval}
}

// Start begins ticking. A running clock is restarted.
func (c *TickerClock) Start(onTick func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()

	stop := make(chan struct{})
	c.stop = stop

	go func() {
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				onTick()
			case <-stop:
				return
			}
		}
	}()
}

// Stop halts the clock. Safe to call when already stopped.
func (c *TickerClock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

func (c *TickerClock) stopLocked() {
	if c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
}
