package caption

// idleExpiration is the 3-minute idle timeout that resets a renderer
// instance when nothing has arrived for it in that long (spec.md
// §4.5, "the tick ... still runs the expiration check").
const idleExpiration = 180.0 // seconds

// rendererInstance pairs one [StateMachine] with its [PendingQueue]
// and tracks the last time either received a packet, for the 3-minute
// idle expiration (spec.md §4.5).
type rendererInstance struct {
	sm        *StateMachine
	queue     PendingQueue
	lastTouch float64
	touched   bool
}

func newRendererInstance(oneSeg bool) *rendererInstance {
	return &rendererInstance{sm: NewStateMachine(oneSeg)}
}

// Surface returns this instance's accumulated drawable primitives for
// the current tick.
func (r *rendererInstance) Surface() *Surface {
	return r.sm.Surface()
}

// DrcsCache returns this instance's DRCS font cache, for resolving the
// drawable handle behind a [DrcsImage] primitive.
func (r *rendererInstance) DrcsCache() *DrcsFontCache {
	return r.sm.DrcsCache()
}

// DMFPlayback returns this instance's selected-language DMF
// playback-mode bits.
func (r *rendererInstance) DMFPlayback() uint8 {
	return r.sm.DMFPlayback()
}

func (r *rendererInstance) reset() {
	r.sm.Reset()
	r.queue.Reset()
	r.touched = false
}

// dispatch feeds pkt through the state machine and, if it requeues a
// postponed tail, re-defers it onto the same instance's queue.
func (r *rendererInstance) dispatch(pos float64, pkt CaptionPacket) {
	if req := r.sm.Process(pos, pkt); req != nil {
		r.queue.Defer(req.Pos, req.Packet)
	}
}

func (r *rendererInstance) tick(now float64) {
	for _, e := range r.queue.Tick(now) {
		r.dispatch(e.Pos, e.Caption)
	}
	if r.touched && now-r.lastTouch > idleExpiration {
		r.reset()
	}
}

// Renderer is the Renderer Façade (C4): two independent instances —
// caption and superimpose — each owning its own state machine and
// pending queue, with the filtering/dispatch logic spec.md §4.5
// describes around them.
type Renderer struct {
	Caption     *rendererInstance
	Superimpose *rendererInstance

	isOneSeg bool
	playing  bool
}

// NewRenderer creates a Renderer with both instances pinned to
// one-seg defaults if oneSeg is true.
func NewRenderer(oneSeg bool) *Renderer {
	return &Renderer{
		Caption:     newRendererInstance(oneSeg),
		Superimpose: newRendererInstance(oneSeg),
		isOneSeg:    oneSeg,
	}
}

// ResetAll clears both instances (spec.md §4.5, on source/
// service-changed/state→stopped).
func (r *Renderer) ResetAll() {
	r.Caption.reset()
	r.Superimpose.reset()
}

// SetOneSeg updates the one-seg pinning used for any instance reset
// from here on (spec.md §4.2's filtering exception for one-seg), and
// propagates it to both instances' state machines immediately
// (spec.md §4.6, "source, service-changed: set isOneseg from service
// metadata").
func (r *Renderer) SetOneSeg(oneSeg bool) {
	r.isOneSeg = oneSeg
	r.Caption.sm.SetOneSeg(oneSeg)
	r.Superimpose.sm.SetOneSeg(oneSeg)
}

// SetUseSubLang controls which management-data language both
// instances select when ≥2 are carried (spec.md §4.2, "Language
// selection").
func (r *Renderer) SetUseSubLang(use bool) {
	r.Caption.sm.SetUseSubLang(use)
	r.Superimpose.sm.SetUseSubLang(use)
}

// SetPlaying controls whether an arriving caption with pos ≤
// currentTime is rendered immediately or deferred (spec.md §4.5:
// "if playing and pos ≤ currentTime, render immediately").
func (r *Renderer) SetPlaying(playing bool) {
	r.playing = playing
}

// HandleCaption routes an incoming closed-caption notification
// (spec.md §4.5): discarded if pos is missing (NaN), rendered
// immediately if due, otherwise deferred.
func (r *Renderer) HandleCaption(hasPos bool, pos, currentTime float64, caption CaptionPacket) {
	if !hasPos {
		return
	}
	r.Caption.lastTouch, r.Caption.touched = currentTime, true
	if r.playing && pos <= currentTime {
		r.Caption.dispatch(pos, caption)
		return
	}
	r.Caption.queue.Defer(pos, caption)
}

// HandleSuperimpose routes an incoming superimpose notification:
// always rendered immediately at currentTime regardless of pos
// (spec.md §4.5: "superimpose is treated as 'now' display").
func (r *Renderer) HandleSuperimpose(currentTime float64, caption CaptionPacket) {
	r.Superimpose.lastTouch, r.Superimpose.touched = currentTime, true
	r.Superimpose.dispatch(currentTime, caption)
}

// Tick drives both instances off the per-frame host refresh callback
// (spec.md §4.5): dispatches due entries, in non-decreasing pos order,
// and runs the idle-expiration check even when nothing was due.
func (r *Renderer) Tick(now float64) {
	r.Caption.tick(now)
	r.Superimpose.tick(now)
}

// SeekCompleted validates both queues against the new position, then
// immediately ticks them (spec.md §4.5: "seek-completed: validate
// (currentTime) then tick(currentTime) on both instances").
func (r *Renderer) SeekCompleted(currentTime float64) {
	r.Caption.queue.Validate(currentTime)
	r.Superimpose.queue.Validate(currentTime)
	r.Tick(currentTime)
}
