package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aznhe21/tavoo-go/clock"
)

func TestDecodeNotificationUnknownKind(t *testing.T) {
	_, err := DecodeNotification([]byte(`{"notification":"bogus"}`))
	require.Error(t, err)
	var unknown *ErrUnknownNotification
	assert.ErrorAs(t, err, &unknown)
	assert.Equal(t, "bogus", unknown.Kind)
}

func TestDecodeNotificationState(t *testing.T) {
	n, err := DecodeNotification([]byte(`{"notification":"state","state":"playing"}`))
	require.NoError(t, err)
	assert.Equal(t, NotificationState, n.Kind)
	assert.Equal(t, clock.Playing, n.State)
}

func TestDecodeNotificationStateRejectsUnknownValue(t *testing.T) {
	_, err := DecodeNotification([]byte(`{"notification":"state","state":"sleeping"}`))
	assert.Error(t, err)
}

func TestDecodeNotificationPosition(t *testing.T) {
	n, err := DecodeNotification([]byte(`{"notification":"position","position":12.5}`))
	require.NoError(t, err)
	assert.Equal(t, 12.5, n.Position)
}

func TestDecodeNotificationCaptionMissingPosIsFlagged(t *testing.T) {
	n, err := DecodeNotification([]byte(`{"notification":"caption","caption":{}}`))
	require.NoError(t, err)
	assert.False(t, n.HasPosition())
}

func TestDecodeNotificationCaptionWithPos(t *testing.T) {
	n, err := DecodeNotification([]byte(`{"notification":"caption","pos":3.5,"caption":{}}`))
	require.NoError(t, err)
	assert.True(t, n.HasPosition())
	assert.Equal(t, 3.5, n.Position)
}

func TestDecodeNotificationDualMonoModeNull(t *testing.T) {
	n, err := DecodeNotification([]byte(`{"notification":"dual-mono-mode","mode":null}`))
	require.NoError(t, err)
	assert.Nil(t, n.Mode)
}

func TestDecodeNotificationMalformedJSON(t *testing.T) {
	_, err := DecodeNotification([]byte(`not json`))
	assert.Error(t, err)
}

func TestDecodeNotificationSeekCompletedHasNoFields(t *testing.T) {
	n, err := DecodeNotification([]byte(`{"notification":"seek-completed"}`))
	require.NoError(t, err)
	assert.Equal(t, NotificationSeekCompleted, n.Kind)
}
