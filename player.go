// Package tavoo implements the ARIB STD-B24 caption rendering core of
// an ISDB transport-stream player: a playback-clock controller, a
// caption scheduler with rewind/skip invalidation, an ARIB caption
// state machine, and the typed event bus tying them to a host.
//
// TS demuxing, ARIB table parsing, and the native media decode/
// playback engine are the host's responsibility and are reached only
// through the [bus.Bus] notification/command surface.
package tavoo

import (
	"context"

	"github.com/aznhe21/tavoo-go/bus"
	"github.com/aznhe21/tavoo-go/caption"
	"github.com/aznhe21/tavoo-go/clock"
)

// Player is the top-level façade wiring the Playback Clock, the
// Renderer Façade, and the Event Bus together (spec.md §2's
// dataflow): host notifications → Event Bus → Playback Clock updates
// and Renderer Façade packet dispatch; a per-frame [Player.Tick]
// drains each Renderer Façade instance's pending queue.
type Player struct {
	cfg      Config
	clock    *clock.PlaybackClock
	renderer *caption.Renderer
	bus      *bus.Bus
}

// NewPlayer creates a Player wired per cfg. The caller must run
// p.Bus().Run(ctx) to start notification dispatch.
func NewPlayer(cfg Config) *Player {
	p := &Player{
		cfg:      cfg,
		clock:    clock.New(),
		renderer: caption.NewRenderer(cfg.OneSeg),
	}
	p.renderer.SetUseSubLang(cfg.UseSubLang)
	p.bus = bus.New(p.handleNotification)
	p.bus.SetLogger(pkgLogger)
	return p
}

// Bus returns the event bus; callers start its dispatch loop and read
// [bus.Bus.Commands] for outbound host commands.
func (p *Player) Bus() *bus.Bus {
	return p.bus
}

// Clock returns the playback clock for direct interpolated-time
// queries (e.g. driving an external UI clock display).
func (p *Player) Clock() *clock.PlaybackClock {
	return p.clock
}

// Dispatch is a convenience wrapper posting an already-decoded
// [bus.Notification] onto the bus; it is equivalent to calling
// [bus.Bus.Dispatch] on [Player.Bus].
func (p *Player) Dispatch(ctx context.Context, n bus.Notification) error {
	return p.bus.Dispatch(ctx, n)
}

// Tick drives both renderer instances off the per-frame host refresh
// callback, sampling [clock.PlaybackClock.CurrentTime] once and
// reusing it for the whole tick (spec.md §5: "Playback-clock reads
// are consistent within a single tick").
func (p *Player) Tick() {
	p.renderer.Tick(p.clock.CurrentTime())
}

// CaptionSurface returns the closed-caption renderer instance's
// accumulated drawable primitives for this tick.
func (p *Player) CaptionSurface() *caption.Surface {
	return p.renderer.Caption.Surface()
}

// SuperimposeSurface returns the superimpose renderer instance's
// accumulated drawable primitives for this tick.
func (p *Player) SuperimposeSurface() *caption.Surface {
	return p.renderer.Superimpose.Surface()
}

// CaptionDrcsCache returns the closed-caption renderer instance's DRCS
// font cache, for resolving the drawable handle behind a
// [caption.DrcsImage] primitive from [Player.CaptionSurface].
func (p *Player) CaptionDrcsCache() *caption.DrcsFontCache {
	return p.renderer.Caption.DrcsCache()
}

// SuperimposeDrcsCache returns the superimpose renderer instance's
// DRCS font cache, for resolving the drawable handle behind a
// [caption.DrcsImage] primitive from [Player.SuperimposeSurface].
func (p *Player) SuperimposeDrcsCache() *caption.DrcsFontCache {
	return p.renderer.Superimpose.DrcsCache()
}

// CaptionDMFPlayback returns the closed-caption renderer instance's
// currently selected language's raw DMF playback-mode bits
// (spec.md §4.2).
func (p *Player) CaptionDMFPlayback() uint8 {
	return p.renderer.Caption.DMFPlayback()
}

// Play posts a play command to the host; the resulting state change
// arrives back asynchronously as a `state` notification rather than
// as a direct return value.
func (p *Player) Play() {
	p.bus.PostCommand(bus.Command{Kind: bus.CommandPlay})
}

// Pause posts a pause command to the host.
func (p *Player) Pause() {
	p.bus.PostCommand(bus.Command{Kind: bus.CommandPause})
}

// Stop posts a stop command to the host.
func (p *Player) Stop() {
	p.bus.PostCommand(bus.Command{Kind: bus.CommandStop})
}

// Close posts a close command to the host, tearing down the
// underlying media source.
func (p *Player) Close() {
	p.bus.PostCommand(bus.Command{Kind: bus.CommandClose})
}

// Seek posts a set-position command; the caption queues are
// revalidated once the host confirms with a seek-completed
// notification (spec.md §4.5).
func (p *Player) Seek(position float64) {
	p.bus.PostCommand(bus.Command{Kind: bus.CommandSetPosition, Position: position})
}

// SetVolume posts a set-volume command.
func (p *Player) SetVolume(volume float64) {
	p.bus.PostCommand(bus.Command{Kind: bus.CommandSetVolume, Volume: volume})
}

// SetMuted posts a set-muted command.
func (p *Player) SetMuted(muted bool) {
	p.bus.PostCommand(bus.Command{Kind: bus.CommandSetMuted, Muted: muted})
}

// SetRate posts a set-rate command; the host is expected to reject
// rates outside the last reported rate-range notification.
func (p *Player) SetRate(rate float64) {
	p.bus.PostCommand(bus.Command{Kind: bus.CommandSetRate, Rate: rate})
}

// isOneSegVideoComponentTag reports whether tag identifies a one-seg
// (profile-c) video component, per ARIB STD-B10's reservation of
// component_tag 0x87/0x88 for the mobile/one-seg video stream — the
// "service metadata" spec.md §4.6 says a service-changed notification
// should derive isOneseg from.
func isOneSegVideoComponentTag(tag uint8) bool {
	return tag == 0x87 || tag == 0x88
}

// handleNotification is the Bus's Handler: it applies each
// notification to the clock and/or renderer per spec.md §4.6's
// dispatch table.
func (p *Player) handleNotification(n bus.Notification) {
	switch n.Kind {
	case bus.NotificationSource:
		p.clock.OnSource()
		p.renderer.ResetAll()
	case bus.NotificationRateRange:
		p.clock.OnRateRange(n.Slowest, n.Fastest)
	case bus.NotificationDuration:
		p.clock.OnDuration(n.Duration)
	case bus.NotificationState:
		p.clock.OnState(n.State)
		p.renderer.SetPlaying(n.State == clock.Playing)
		if n.State == clock.Stopped {
			p.renderer.ResetAll()
		}
	case bus.NotificationPosition:
		p.clock.OnPosition(n.Position)
	case bus.NotificationSeekCompleted:
		p.renderer.SeekCompleted(p.clock.CurrentTime())
	case bus.NotificationRate:
		if err := p.clock.OnRate(n.Rate); err != nil {
			pkgLogger.Printf("tavoo: rejecting rate notification: %v", err)
		}
	case bus.NotificationTimestamp:
		p.clock.OnTimestamp(float64(n.Timestamp))
	case bus.NotificationSwitchingStart:
		p.clock.OnSwitchingStarted()
	case bus.NotificationSwitchingEnd:
		p.clock.OnSwitchingEnded()
	case bus.NotificationServiceChanged:
		p.renderer.SetOneSeg(isOneSegVideoComponentTag(n.VideoComponentTag))
		p.renderer.ResetAll()
	case bus.NotificationCaption:
		p.renderer.HandleCaption(n.HasPosition(), n.Position, p.clock.CurrentTime(), n.Caption)
	case bus.NotificationSuperimpose:
		p.renderer.HandleSuperimpose(p.clock.CurrentTime(), n.Caption)
	}
}
