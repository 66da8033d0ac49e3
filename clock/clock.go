// Package clock implements the playback-clock controller: the
// authoritative mapping between host-reported positions, wall time,
// playback rate, switching, and the value observed as "current
// playback time" by the renderer.
//
// A reference position is sampled at a reference wall-clock instant,
// advanced by elapsed wall time only while playing, and rebased on
// every state or rate transition so the interpolated value never
// jumps.
package clock

import (
	"errors"
	"math"
	"sync"
	"time"
)

// ErrInvalidRate is returned by [PlaybackClock.OnRate] when the
// requested rate falls outside the range last reported by
// [PlaybackClock.OnRateRange]. Per spec.md §7, this is a client-side
// rejection: the clock keeps its previous rate and the caller must
// not forward the request to the host.
var ErrInvalidRate = errors.New("clock: rate outside [slowest, fastest] range")

// PlaybackClock tracks lastPos, lastPosWall, playbackRate, isSwitching
// and state to expose an interpolated CurrentTime and a wall-clock
// derived Timestamp, per spec.md §3.
type PlaybackClock struct {
	mu sync.Mutex
	wc WallClock

	lastPos     float64 // seconds
	lastPosWall time.Time

	haveTimestamp     bool
	lastTimestamp     float64 // ms since epoch
	lastTimestampWall time.Time

	rate        float64
	slowest     float64
	fastest     float64
	haveRange   bool
	state       PlayState
	isSwitching bool
	duration    float64 // seconds; may be +Inf or NaN
}

// New creates a [PlaybackClock] in its default state: stopped,
// position 0, rate 1, duration NaN (unknown), using [Real] as the
// wall clock.
func New() *PlaybackClock {
	return NewWithWallClock(Real{})
}

// NewWithWallClock creates a [PlaybackClock] backed by the given
// [WallClock], for injecting a [Virtual] clock in tests.
func NewWithWallClock(wc WallClock) *PlaybackClock {
	c := &PlaybackClock{wc: wc}
	c.reset()
	return c
}

func (c *PlaybackClock) reset() {
	now := c.wc.Now()
	c.lastPos = 0
	c.lastPosWall = now
	c.haveTimestamp = false
	c.lastTimestamp = 0
	c.lastTimestampWall = now
	c.rate = 1
	c.state = Stopped
	c.isSwitching = false
	c.duration = math.NaN()
}

// CurrentTime returns the interpolated playback position in seconds.
//
// currentTime = isSwitching || state != playing ? lastPos :
//
//	lastPos + (now - lastPosWall)/1000 * rate
func (c *PlaybackClock) CurrentTime() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentTimeLocked(c.wc.Now())
}

func (c *PlaybackClock) currentTimeLocked(now time.Time) float64 {
	if c.isSwitching || c.state != Playing {
		return c.lastPos
	}
	elapsed := now.Sub(c.lastPosWall).Seconds()
	return c.lastPos + elapsed*c.rate
}

// Timestamp returns the interpolated ms-since-epoch timestamp, using
// the same invariant shape as CurrentTime. It returns (0, false) if no
// timestamp notification has ever been received.
func (c *PlaybackClock) Timestamp() (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.haveTimestamp {
		return 0, false
	}
	return c.timestampLocked(c.wc.Now()), true
}

func (c *PlaybackClock) timestampLocked(now time.Time) float64 {
	if c.isSwitching || c.state != Playing {
		return c.lastTimestamp
	}
	elapsed := now.Sub(c.lastTimestampWall).Seconds() * 1000
	return c.lastTimestamp + elapsed*c.rate
}

// Duration returns the last reported media duration: a finite number
// of seconds, +Inf for an unbounded live source, or NaN if unknown.
func (c *PlaybackClock) Duration() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.duration
}

// State returns the current playback state.
func (c *PlaybackClock) State() PlayState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// IsSwitching reports whether a source switch is in progress.
func (c *PlaybackClock) IsSwitching() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isSwitching
}

// Rate returns the current playback rate.
func (c *PlaybackClock) Rate() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rate
}

// OnPosition handles the host's `position` notification. It updates
// lastTimestamp by the position delta, rebases lastTimestampWall, then
// sets lastPos := newPos, lastPosWall := now (spec.md §4.1).
func (c *PlaybackClock) OnPosition(newPos float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.wc.Now()

	if c.haveTimestamp {
		delta := newPos - c.lastPos
		c.lastTimestamp += delta * 1000
		c.lastTimestampWall = now
	}

	c.lastPos = newPos
	c.lastPosWall = now
}

// OnState handles the host's `state` notification. The interpolated
// position (and timestamp) under the old state is sampled into lastPos
// (and lastTimestamp), then the wall times are rebased to now, so
// leaving playing keeps the time elapsed since the last position update
// and a paused->playing transition never leaks elapsed pause time into
// CurrentTime.
func (c *PlaybackClock) OnState(newState PlayState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.wc.Now()

	// Sample the interpolated values under the OLD state before
	// switching, so leaving "playing" doesn't lose the time that
	// elapsed since the last position update.
	c.lastPos = c.currentTimeLocked(now)
	if c.haveTimestamp {
		c.lastTimestamp = c.timestampLocked(now)
	}
	c.lastPosWall = now
	c.lastTimestampWall = now
	c.state = newState
}

// OnRateRange handles the host's `rate-range` notification, recording
// the bounds subsequent [PlaybackClock.OnRate] calls are validated
// against.
func (c *PlaybackClock) OnRateRange(slowest, fastest float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slowest, c.fastest = slowest, fastest
	c.haveRange = true
}

// OnRate handles the host's `rate` notification. Per spec.md §4.1, the
// current interpolated CurrentTime/Timestamp are sampled into
// lastPos/lastTimestamp first, wall times are rebased, and only then
// is the new rate stored — so the position right before and right
// after the rate change is identical.
//
// If newRate falls outside the last reported rate-range,
// [ErrInvalidRate] is returned and the rate is left unchanged; this
// must not be forwarded to the host (spec.md §7).
func (c *PlaybackClock) OnRate(newRate float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.haveRange && (newRate < c.slowest || newRate > c.fastest) {
		return ErrInvalidRate
	}

	now := c.wc.Now()
	c.lastPos = c.currentTimeLocked(now)
	if c.haveTimestamp {
		c.lastTimestamp = c.timestampLocked(now)
	}
	c.lastPosWall = now
	c.lastTimestampWall = now
	c.rate = newRate
	return nil
}

// OnDuration handles the host's `duration` notification. A nil
// duration (unknown) is represented as NaN.
func (c *PlaybackClock) OnDuration(duration *float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if duration == nil {
		c.duration = math.NaN()
		return
	}
	c.duration = *duration
}

// OnTimestamp handles the host's `timestamp` notification (ms since
// epoch), rebasing the timestamp interpolation the same way OnPosition
// rebases the position interpolation.
func (c *PlaybackClock) OnTimestamp(ms float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.wc.Now()
	c.lastTimestamp = ms
	c.lastTimestampWall = now
	c.haveTimestamp = true
}

// OnSwitchingStarted handles the host's `switching-started`
// notification: it snapshots the current interpolated values into
// lastPos/lastTimestamp so CurrentTime/Timestamp freeze immediately.
func (c *PlaybackClock) OnSwitchingStarted() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.wc.Now()
	c.lastPos = c.currentTimeLocked(now)
	if c.haveTimestamp {
		c.lastTimestamp = c.timestampLocked(now)
	}
	c.lastPosWall = now
	c.lastTimestampWall = now
	c.isSwitching = true
}

// OnSwitchingEnded handles the host's `switching-ended` notification,
// resuming interpolation from the frozen position.
func (c *PlaybackClock) OnSwitchingEnded() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.wc.Now()
	c.lastPosWall = now
	c.lastTimestampWall = now
	c.isSwitching = false
}

// OnSource handles the host's `source` notification: it resets every
// field to its default (lastPos=0, duration=NaN, rate=1, stopped,
// not switching).
func (c *PlaybackClock) OnSource() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}
