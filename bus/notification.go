// Package bus is the typed Event Bus (C6): it decodes host
// notifications into a closed set of Go types and carries outbound
// commands back to the host, matching spec.md §4.6 and §6.
package bus

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/aznhe21/tavoo-go/caption"
	"github.com/aznhe21/tavoo-go/clock"
)

// NotificationKind discriminates the [Notification] tagged union
// (spec.md §6).
type NotificationKind string

const (
	NotificationSource          NotificationKind = "source"
	NotificationVolume          NotificationKind = "volume"
	NotificationRateRange       NotificationKind = "rate-range"
	NotificationDuration        NotificationKind = "duration"
	NotificationState           NotificationKind = "state"
	NotificationPosition        NotificationKind = "position"
	NotificationSeekCompleted   NotificationKind = "seek-completed"
	NotificationRate            NotificationKind = "rate"
	NotificationVideoSize       NotificationKind = "video-size"
	NotificationAudioChannels   NotificationKind = "audio-channels"
	NotificationDualMonoMode    NotificationKind = "dual-mono-mode"
	NotificationSwitchingStart  NotificationKind = "switching-started"
	NotificationSwitchingEnd    NotificationKind = "switching-ended"
	NotificationServices        NotificationKind = "services"
	NotificationService         NotificationKind = "service"
	NotificationEvent           NotificationKind = "event"
	NotificationServiceChanged  NotificationKind = "service-changed"
	NotificationStreamChanged   NotificationKind = "stream-changed"
	NotificationCaption         NotificationKind = "caption"
	NotificationSuperimpose     NotificationKind = "superimpose"
	NotificationTimestamp       NotificationKind = "timestamp"
	NotificationError           NotificationKind = "error"
)

// DualMonoMode is the dual-mono audio routing mode (spec.md §6).
type DualMonoMode string

const (
	DualMonoLeft   DualMonoMode = "left"
	DualMonoRight  DualMonoMode = "right"
	DualMonoStereo DualMonoMode = "stereo"
	DualMonoMix    DualMonoMode = "mix"
)

// Service describes one ISDB service as carried by `services`/
// `service`/`service-changed` notifications. spec.md §6 names the
// notification shapes but not Service's own fields; this follows
// ARIB STD-B10's service/component model (the fields every consumer
// of `service-changed{videoComponentTag, audioComponentTag}` needs to
// resolve against).
type Service struct {
	ServiceID         uint
	Name              string
	VideoComponentTag uint8
	AudioComponentTag uint8
}

// EventInfo is the payload of an `event` notification (spec.md §6):
// an EPG-style present/following event for one service.
type EventInfo struct {
	EventID   uint
	Name      string
	StartTime int64 // ms since epoch
	Duration  int64 // ms
}

// Notification is the tagged-variant host→player message spec.md §6
// enumerates, flattened into one struct (the same "tagged variant
// replaces inheritance" idiom as [caption.CaptionPacket]).
type Notification struct {
	Kind NotificationKind

	// source
	Path *string

	// volume
	Volume float64
	Muted  bool

	// rate-range
	Slowest, Fastest float64

	// duration (nil = unknown/live)
	Duration *float64

	// state
	State clock.PlayState

	// position / caption / superimpose (NaN when a caption or
	// superimpose notification carried no pos)
	Position float64

	// rate
	Rate float64

	// video-size
	Width, Height int

	// audio-channels
	NumChannels int

	// dual-mono-mode (nil = not dual-mono)
	Mode *DualMonoMode

	// services
	Services []Service
	// service
	ServiceInfo Service

	// service-changed / stream-changed
	NewServiceID      uint
	VideoComponentTag uint8
	AudioComponentTag uint8

	// event
	ServiceID uint
	IsPresent bool
	Event     EventInfo

	// caption / superimpose
	Caption caption.CaptionPacket

	// timestamp
	Timestamp int64 // ms since epoch

	// error
	Message string
}

// ErrUnknownNotification is returned by [DecodeNotification] when the
// discriminator doesn't match any known notification kind (spec.md
// §7: "Unknown-notification → log and continue; never fatal").
type ErrUnknownNotification struct {
	Kind string
}

func (e *ErrUnknownNotification) Error() string {
	return fmt.Sprintf("bus: unknown notification %q", e.Kind)
}

// wireNotification is the over-the-wire JSON shape: a discriminator
// plus every variant's fields as optional members (spec.md §9,
// "Host callback boundary": "model the JSON-like notification enum
// with explicit deserializers that validate the discriminator").
type wireNotification struct {
	Notification string `json:"notification"`

	Path *string `json:"path"`

	Volume float64 `json:"volume"`
	Muted  bool    `json:"muted"`

	Slowest float64 `json:"slowest"`
	Fastest float64 `json:"fastest"`

	DurationSec *float64 `json:"duration"`

	State string `json:"state"`

	Position float64 `json:"position"`

	Rate float64 `json:"rate"`

	Width  int `json:"width"`
	Height int `json:"height"`

	NumChannels int `json:"numChannels"`

	Mode *string `json:"mode"`

	Services []Service `json:"services"`
	ServiceObj Service  `json:"service"`

	NewServiceID      uint  `json:"newServiceId"`
	VideoComponentTag uint8 `json:"videoComponentTag"`
	AudioComponentTag uint8 `json:"audioComponentTag"`

	ServiceID uint      `json:"serviceId"`
	IsPresent bool      `json:"isPresent"`
	Event     EventInfo `json:"event"`

	Pos     *float64              `json:"pos"`
	Caption caption.CaptionPacket `json:"caption"`

	Timestamp int64 `json:"timestamp"`

	Message string `json:"message"`
}

var playStateByName = map[string]clock.PlayState{
	"open-pending": clock.OpenPending,
	"playing":      clock.Playing,
	"paused":       clock.Paused,
	"stopped":      clock.Stopped,
	"closed":       clock.Closed,
}

// DecodeNotification validates the discriminator and decodes raw into
// a [Notification]. An unrecognized discriminator yields
// [ErrUnknownNotification] rather than a decode error, matching
// spec.md §7's "log and continue" policy for unknown notifications.
func DecodeNotification(raw []byte) (Notification, error) {
	var wire wireNotification
	if err := json.Unmarshal(raw, &wire); err != nil {
		return Notification{}, fmt.Errorf("bus: malformed notification: %w", err)
	}

	kind := NotificationKind(wire.Notification)
	switch kind {
	case NotificationSource:
		return Notification{Kind: kind, Path: wire.Path}, nil
	case NotificationVolume:
		return Notification{Kind: kind, Volume: wire.Volume, Muted: wire.Muted}, nil
	case NotificationRateRange:
		return Notification{Kind: kind, Slowest: wire.Slowest, Fastest: wire.Fastest}, nil
	case NotificationDuration:
		return Notification{Kind: kind, Duration: wire.DurationSec}, nil
	case NotificationState:
		state, ok := playStateByName[wire.State]
		if !ok {
			return Notification{}, fmt.Errorf("bus: unknown playback state %q", wire.State)
		}
		return Notification{Kind: kind, State: state}, nil
	case NotificationPosition:
		return Notification{Kind: kind, Position: wire.Position}, nil
	case NotificationSeekCompleted:
		return Notification{Kind: kind}, nil
	case NotificationRate:
		return Notification{Kind: kind, Rate: wire.Rate}, nil
	case NotificationVideoSize:
		return Notification{Kind: kind, Width: wire.Width, Height: wire.Height}, nil
	case NotificationAudioChannels:
		return Notification{Kind: kind, NumChannels: wire.NumChannels}, nil
	case NotificationDualMonoMode:
		var mode *DualMonoMode
		if wire.Mode != nil {
			m := DualMonoMode(*wire.Mode)
			mode = &m
		}
		return Notification{Kind: kind, Mode: mode}, nil
	case NotificationSwitchingStart, NotificationSwitchingEnd:
		return Notification{Kind: kind}, nil
	case NotificationServices:
		return Notification{Kind: kind, Services: wire.Services}, nil
	case NotificationService:
		return Notification{Kind: kind, ServiceInfo: wire.ServiceObj}, nil
	case NotificationEvent:
		return Notification{Kind: kind, ServiceID: wire.ServiceID, IsPresent: wire.IsPresent, Event: wire.Event}, nil
	case NotificationServiceChanged:
		return Notification{
			Kind: kind, NewServiceID: wire.NewServiceID,
			VideoComponentTag: wire.VideoComponentTag, AudioComponentTag: wire.AudioComponentTag,
		}, nil
	case NotificationStreamChanged:
		return Notification{
			Kind: kind, VideoComponentTag: wire.VideoComponentTag, AudioComponentTag: wire.AudioComponentTag,
		}, nil
	case NotificationCaption, NotificationSuperimpose:
		n := Notification{Kind: kind, Caption: wire.Caption}
		if wire.Pos != nil {
			n.Position = *wire.Pos
		} else {
			n.Position = math.NaN()
		}
		return n, nil
	case NotificationTimestamp:
		return Notification{Kind: kind, Timestamp: wire.Timestamp}, nil
	case NotificationError:
		return Notification{Kind: kind, Message: wire.Message}, nil
	default:
		return Notification{}, &ErrUnknownNotification{Kind: wire.Notification}
	}
}

// HasPosition reports whether a caption/superimpose notification
// carried a pos field on the wire (spec.md §4.5: "caption: if pos is
// missing, discard"). Missing pos decodes to NaN.
func (n Notification) HasPosition() bool {
	return !math.IsNaN(n.Position)
}
