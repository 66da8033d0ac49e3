package caption

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingQueueDeferKeepsNonDecreasingOrder(t *testing.T) {
	var q PendingQueue
	q.Defer(5.0, CaptionPacket{})
	q.Defer(1.0, CaptionPacket{})
	q.Defer(3.0, CaptionPacket{})

	require.Equal(t, 3, q.Len())
	assert.Equal(t, 1.0, q.entries[0].Pos)
	assert.Equal(t, 3.0, q.entries[1].Pos)
	assert.Equal(t, 5.0, q.entries[2].Pos)
}

func TestPendingQueueDeferIsFIFOForEqualPos(t *testing.T) {
	var q PendingQueue
	first := CaptionPacket{LanguageTag: 1}
	second := CaptionPacket{LanguageTag: 2}
	q.Defer(2.0, first)
	q.Defer(2.0, second)

	require.Len(t, q.entries, 2)
	assert.Equal(t, uint(1), q.entries[0].Caption.LanguageTag)
	assert.Equal(t, uint(2), q.entries[1].Caption.LanguageTag)
}

func TestPendingQueueTickPopsDueEntriesInOrder(t *testing.T) {
	var q PendingQueue
	q.Defer(1.0, CaptionPacket{LanguageTag: 1})
	q.Defer(2.0, CaptionPacket{LanguageTag: 2})
	q.Defer(3.0, CaptionPacket{LanguageTag: 3})

	due := q.Tick(2.0)
	require.Len(t, due, 2)
	assert.Equal(t, uint(1), due[0].Caption.LanguageTag)
	assert.Equal(t, uint(2), due[1].Caption.LanguageTag)
	assert.Equal(t, 1, q.Len())
}

func TestPendingQueueTickReturnsNilWhenNothingDue(t *testing.T) {
	var q PendingQueue
	q.Defer(10.0, CaptionPacket{})
	assert.Nil(t, q.Tick(1.0))
	assert.Equal(t, 1, q.Len())
}

func TestPendingQueueValidateDropsStaleEntries(t *testing.T) {
	var q PendingQueue
	q.Defer(0.0, CaptionPacket{})   // 20 away from now=20 -> dropped
	q.Defer(15.0, CaptionPacket{})  // 5 away -> kept
	q.Defer(25.0, CaptionPacket{})  // 5 away -> kept
	q.Defer(100.0, CaptionPacket{}) // far future -> dropped

	q.Validate(20.0)
	require.Equal(t, 2, q.Len())
	for _, e := range q.entries {
		d := e.Pos - 20.0
		if d < 0 {
			d = -d
		}
		assert.Less(t, d, staleWindow)
	}
}

func TestPendingQueueResetEmptiesQueue(t *testing.T) {
	var q PendingQueue
	q.Defer(1.0, CaptionPacket{})
	q.Defer(2.0, CaptionPacket{})
	q.Reset()
	assert.Equal(t, 0, q.Len())
	assert.Nil(t, q.Tick(100.0))
}
