package caption

// Polarity selects whether foreground/background colors are swapped
// when drawing (spec.md §4.2's POL opcode).
type Polarity uint8

const (
	PolarityNormal Polarity = iota
	PolarityInverted1
)

// FlashMode is the flashing attribute attached to emitted glyph/DRCS
// primitives for the compositor to animate (spec.md §4.2's FLC
// opcode).
type FlashMode uint8

const (
	FlashNone FlashMode = iota
	FlashNormal
	FlashInverted
	FlashStop
)

// RendererState is the mutable per-instance state spec.md §3 names:
// cursor, current SECTION_CONFIG, color/polarity/flashing/underline/
// highlight attributes, palette index, display extents, character
// composition dot size, spacing, repeat count and wrap flag. It is
// reset on every clear-screen and on every call to [StateMachine.Reset].
type RendererState struct {
	CursorX, CursorY int

	Format  DisplayFormat
	Section CharSize

	ViewBoxW, ViewBoxH         int
	DisplayLeft, DisplayTop    int
	DisplayWidth, DisplayHeight int

	CharCompW, CharCompH int // character composition dot size
	HSpaceBase, VSpaceBase int // display-format base spacing (pre section-config)

	SectionCfg sectionMultipliers
	FontWidth, FontHeight int
	LeftSpace, LowerSpace int
	CharW, CharH int // advance cell size

	Foreground, Background uint8 // color codes: paletteIndex<<4 | p1
	PaletteIndex            uint8
	Hemming                  *uint8 // nil = undefined (defaults to effective background)
	Polarity                 Polarity
	Underline                bool
	Highlight                uint8 // HLC 4-bit mask: bit3 left, bit2 top, bit1 right, bit0 bottom
	Flashing                 FlashMode

	// RepeatCharacter stores the pending RPC count: nil = no pending
	// repeat, a non-nil 0 means "repeat until wrap", a positive value
	// is a fixed count (spec.md §4.2, "Repeat").
	RepeatCharacter *int

	// Wrapped is set by the last cursor advance that crossed the
	// right edge; it suppresses the next redundant APR newline
	// (spec.md §4.2, "Cursor advance").
	Wrapped bool
}

// newRendererState creates a RendererState reset to the given display
// format's defaults.
func newRendererState(f DisplayFormat) *RendererState {
	s := &RendererState{}
	s.applyDisplayFormat(f)
	return s
}

// effectiveForeground returns the foreground color to paint with,
// accounting for polarity inversion (spec.md §4.2: "the effective
// foreground and background swap when polarity=inverted-1").
func (s *RendererState) effectiveForeground() uint8 {
	if s.Polarity == PolarityInverted1 {
		return s.Background
	}
	return s.Foreground
}

// effectiveBackground is the polarity-aware background color.
func (s *RendererState) effectiveBackground() uint8 {
	if s.Polarity == PolarityInverted1 {
		return s.Foreground
	}
	return s.Background
}

// effectiveHemming returns the hemming color, defaulting to the
// effective background when ORN has not set one explicitly (spec.md
// §4.2).
func (s *RendererState) effectiveHemming() uint8 {
	if s.Hemming != nil {
		return *s.Hemming
	}
	return s.effectiveBackground()
}
