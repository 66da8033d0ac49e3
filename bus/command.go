package bus

// CommandKind discriminates the [Command] tagged union the bus posts
// outward to the host (spec.md §6).
type CommandKind string

const (
	CommandOpenDevTools       CommandKind = "open-dev-tools"
	CommandSetVideoBounds     CommandKind = "set-video-bounds"
	CommandPlay               CommandKind = "play"
	CommandPause              CommandKind = "pause"
	CommandStop               CommandKind = "stop"
	CommandClose              CommandKind = "close"
	CommandSetPosition        CommandKind = "set-position"
	CommandSetVolume          CommandKind = "set-volume"
	CommandSetMuted           CommandKind = "set-muted"
	CommandSetRate            CommandKind = "set-rate"
	CommandSetDualMonoMode    CommandKind = "set-dual-mono-mode"
	CommandSelectService      CommandKind = "select-service"
	CommandSelectVideoStream  CommandKind = "select-video-stream"
	CommandSelectAudioStream  CommandKind = "select-audio-stream"
)

// Command is the tagged-variant outbound message spec.md §6 names.
// No in-band response is ever expected (spec.md §4.6).
type Command struct {
	Kind CommandKind

	// set-video-bounds
	Left, Top, Right, Bottom float64

	// set-position
	Position float64

	// set-volume
	Volume float64

	// set-muted
	Muted bool

	// set-rate
	Rate float64

	// set-dual-mono-mode
	Mode DualMonoMode

	// select-service (nil = deselect)
	ServiceID *uint

	// select-video-stream / select-audio-stream
	ComponentTag uint8
}
