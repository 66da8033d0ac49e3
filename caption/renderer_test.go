package caption

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRendererDefersCaptionWhenNotYetDue(t *testing.T) {
	r := NewRenderer(false)
	r.SetPlaying(true)
	r.HandleCaption(true, 10.0, 5.0, managementPacket(GroupA, FormatQHDHorz, 0x01))

	assert.Equal(t, 1, r.Caption.queue.Len())
	assert.False(t, r.Caption.sm.established)

	r.Tick(10.0)
	assert.Equal(t, 0, r.Caption.queue.Len())
	assert.True(t, r.Caption.sm.established)
}

func TestRendererRendersLateCaptionImmediatelyWhenPlaying(t *testing.T) {
	r := NewRenderer(false)
	r.SetPlaying(true)
	r.HandleCaption(true, 3.0, 5.0, managementPacket(GroupA, FormatQHDHorz, 0x01))

	assert.Equal(t, 0, r.Caption.queue.Len())
	assert.True(t, r.Caption.sm.established)
}

func TestRendererDiscardsCaptionMissingPos(t *testing.T) {
	r := NewRenderer(false)
	r.HandleCaption(false, 0, 5.0, managementPacket(GroupA, FormatQHDHorz, 0x01))
	assert.Equal(t, 0, r.Caption.queue.Len())
	assert.False(t, r.Caption.sm.established)
}

func TestRendererSuperimposeAlwaysRendersImmediately(t *testing.T) {
	r := NewRenderer(false)
	r.HandleSuperimpose(5.0, managementPacket(GroupA, FormatQHDHorz, 0x01))
	assert.Equal(t, 0, r.Superimpose.queue.Len())
	assert.True(t, r.Superimpose.sm.established)
}

func TestRendererResetAllClearsBothInstances(t *testing.T) {
	r := NewRenderer(false)
	r.SetPlaying(true)
	r.HandleCaption(true, 3.0, 5.0, managementPacket(GroupA, FormatQHDHorz, 0x01))
	r.HandleSuperimpose(5.0, managementPacket(GroupB, FormatQHDHorz, 0x01))

	r.ResetAll()
	assert.False(t, r.Caption.sm.established)
	assert.False(t, r.Superimpose.sm.established)
	assert.Equal(t, 0, r.Caption.queue.Len())
	assert.Equal(t, 0, r.Superimpose.queue.Len())
}

func TestRendererSeekCompletedValidatesThenTicks(t *testing.T) {
	r := NewRenderer(false)
	r.SetPlaying(true)
	require.Nil(t, r.Caption.sm.Process(0, managementPacket(GroupA, FormatQHDHorz, 0x01)))
	r.Caption.queue.Defer(500.0, dataPacket(GroupA, 0x01, stringStatement("A"))) // stale, dropped by Validate
	r.Caption.queue.Defer(4.0, dataPacket(GroupA, 0x01, stringStatement("B")))   // due at now=5.0

	r.SeekCompleted(5.0)
	assert.Equal(t, 0, r.Caption.queue.Len())
	require.Len(t, r.Caption.sm.Surface().Glyphs, 1)
	assert.Equal(t, 'B', r.Caption.sm.Surface().Glyphs[0].Rune)
}

func TestRendererIdleExpirationResetsInstance(t *testing.T) {
	r := NewRenderer(false)
	r.SetPlaying(true)
	r.HandleCaption(true, 3.0, 5.0, managementPacket(GroupA, FormatQHDHorz, 0x01))
	require.True(t, r.Caption.sm.established)

	r.Tick(5.0 + idleExpiration + 1)
	assert.False(t, r.Caption.sm.established)
}
