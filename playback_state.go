package tavoo

import "github.com/aznhe21/tavoo-go/clock"

// PlaybackState mirrors the `state` field of the host's `state`
// notification (spec.md §6): [OpenPending], [Playing], [Paused],
// [Stopped] or [Closed]. It is an alias of [clock.PlayState], which
// owns the canonical definition so that clock.PlaybackClock doesn't
// need to import the root package.
type PlaybackState = clock.PlayState

const (
	Stopped     = clock.Stopped
	Playing     = clock.Playing
	Paused      = clock.Paused
	OpenPending = clock.OpenPending
	Closed      = clock.Closed
)
