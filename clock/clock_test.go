package clock_test

import (
	"math"
	"testing"
	"time"

	"github.com/aznhe21/tavoo-go/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentTimeFrozenWithoutPlaying(t *testing.T) {
	vc := clock.NewVirtual(time.Unix(1000, 0))
	c := clock.NewWithWallClock(vc)

	c.OnPosition(12.5)
	vc.Advance(5 * time.Second)
	assert.Equal(t, 12.5, c.CurrentTime(), "no state=playing transition: currentTime must equal last-known position")

	c.OnState(clock.Paused)
	vc.Advance(5 * time.Second)
	assert.Equal(t, 12.5, c.CurrentTime())
}

func TestCurrentTimeAdvancesWithRateWhenPlaying(t *testing.T) {
	vc := clock.NewVirtual(time.Unix(1000, 0))
	c := clock.NewWithWallClock(vc)
	c.OnRateRange(0.5, 2.0)
	require.NoError(t, c.OnRate(2.0))
	c.OnPosition(10)
	c.OnState(clock.Playing)

	t0 := c.CurrentTime()
	vc.Advance(3 * time.Second)
	t1 := c.CurrentTime()
	assert.InDelta(t, 2.0*3, t1-t0, 1e-9)
}

func TestStateTransitionDoesNotLeakPauseTime(t *testing.T) {
	vc := clock.NewVirtual(time.Unix(1000, 0))
	c := clock.NewWithWallClock(vc)
	c.OnPosition(0)
	c.OnState(clock.Playing)
	vc.Advance(2 * time.Second)
	c.OnState(clock.Paused)
	paused := c.CurrentTime()
	assert.InDelta(t, 2.0, paused, 1e-9)

	// Pause for a long time: this elapsed wall time must not appear
	// once we resume playing.
	vc.Advance(60 * time.Second)
	c.OnState(clock.Playing)
	resumed := c.CurrentTime()
	assert.InDelta(t, paused, resumed, 1e-9)
}

func TestRateChangeIsContinuous(t *testing.T) {
	vc := clock.NewVirtual(time.Unix(1000, 0))
	c := clock.NewWithWallClock(vc)
	c.OnRateRange(0.25, 4.0)
	c.OnPosition(0)
	c.OnState(clock.Playing)

	vc.Advance(2 * time.Second) // currentTime == 2 at rate 1
	before := c.CurrentTime()
	require.NoError(t, c.OnRate(2.0))
	after := c.CurrentTime()
	assert.InDelta(t, before, after, 1e-9, "rate change must not jump currentTime")

	vc.Advance(1 * time.Second)
	assert.InDelta(t, before+2.0, c.CurrentTime(), 1e-9)
}

func TestOnRateRejectsOutOfRange(t *testing.T) {
	c := clock.New()
	c.OnRateRange(0.5, 2.0)
	err := c.OnRate(4.0)
	assert.ErrorIs(t, err, clock.ErrInvalidRate)
	assert.Equal(t, 1.0, c.Rate(), "rejected rate must not be applied")
}

func TestSwitchingFreezesAndResumes(t *testing.T) {
	vc := clock.NewVirtual(time.Unix(1000, 0))
	c := clock.NewWithWallClock(vc)
	c.OnPosition(5)
	c.OnState(clock.Playing)
	vc.Advance(1 * time.Second)

	c.OnSwitchingStarted()
	frozen := c.CurrentTime()
	vc.Advance(10 * time.Second)
	assert.Equal(t, frozen, c.CurrentTime(), "switching must freeze currentTime")

	c.OnSwitchingEnded()
	vc.Advance(1 * time.Second)
	assert.InDelta(t, frozen+1.0, c.CurrentTime(), 1e-9)
}

func TestOnSourceResetsEverything(t *testing.T) {
	c := clock.New()
	c.OnPosition(42)
	c.OnState(clock.Playing)
	d := 123.0
	c.OnDuration(&d)

	c.OnSource()
	assert.Equal(t, 0.0, c.CurrentTime())
	assert.True(t, math.IsNaN(c.Duration()))
	assert.Equal(t, clock.Stopped, c.State())
	assert.False(t, c.IsSwitching())
}

func TestDurationAcceptsNilAsNaN(t *testing.T) {
	c := clock.New()
	c.OnDuration(nil)
	assert.True(t, math.IsNaN(c.Duration()))

	d := 600.0
	c.OnDuration(&d)
	assert.Equal(t, 600.0, c.Duration())
}

func TestTimestampTracksSameShapeAsPosition(t *testing.T) {
	vc := clock.NewVirtual(time.Unix(1000, 0))
	c := clock.NewWithWallClock(vc)

	_, ok := c.Timestamp()
	assert.False(t, ok, "no timestamp notification received yet")

	c.OnTimestamp(1_700_000_000_000)
	c.OnState(clock.Playing)
	vc.Advance(2 * time.Second)
	ts, ok := c.Timestamp()
	require.True(t, ok)
	assert.InDelta(t, 1_700_000_002_000, ts, 1)
}
