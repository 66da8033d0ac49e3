package caption

// sectionMultipliers holds the multipliers a char-size opcode selects
// (spec.md §4.2, "Character-size (SECTION_CONFIG) derivation"): font
// width/height factors, horizontal/vertical space factors, and the
// left/lower space factors emission actually offsets a glyph by
// (§4.2's character-emission semantics names only leftSpace and
// lowerSpace). All downstream cell geometry (fontWidth = charCompW·fwf,
// etc.) is truncated toward zero from these.
//
// The exact multiplier values are ARIB STD-B24 standard semantics
// (SSZ/MSZ/NSZ and their double-height/width/size variants), which
// spec.md names but doesn't spell out numerically; §8 scenario 1 and
// 4 both exercise "normal" only, and normal's values (1.0 for the four
// size/space factors, 0 for the left/lower offsets) are pinned by those
// scenarios' expected pixel geometry.
type sectionMultipliers struct {
	FontWidthFactor, FontHeightFactor float64
	HSpaceFactor, VSpaceFactor        float64
	LeftSpaceFactor, LowerSpaceFactor float64
}

var sectionConfigTable = [...]sectionMultipliers{
	CharSizeSmall:   {0.5, 0.5, 0.5, 0.5, 0, 0},
	CharSizeMedium:  {1.0, 0.5, 1.0, 0.5, 0, 0},
	CharSizeNormal:  {1.0, 1.0, 1.0, 1.0, 0, 0},
	CharSizeHeightW: {1.0, 2.0, 1.0, 2.0, 0, 0},
	CharSizeWidthW:  {2.0, 1.0, 2.0, 1.0, 0, 0},
	CharSizeSizeW:   {2.0, 2.0, 2.0, 2.0, 0, 0},
}

func sectionConfigFor(size CharSize) sectionMultipliers {
	if int(size) >= len(sectionConfigTable) {
		return sectionConfigTable[CharSizeNormal]
	}
	return sectionConfigTable[size]
}

// displayFormatSpec is one row of spec.md §4.2's display-format reset
// table.
type displayFormatSpec struct {
	ViewBoxW, ViewBoxH       int
	DisplayW, DisplayH       int
	HSpace, VSpace           int
	CharCompW, CharCompH     int
	Vertical                 bool // cursor init column differs for *-vert formats
	ForceDefaultHemming      bool // profile-c forces a default hemming color
}

var displayFormatTable = [...]displayFormatSpec{
	FormatQHDHorz: {ViewBoxW: 960, ViewBoxH: 540, DisplayW: 960, DisplayH: 540, HSpace: 4, VSpace: 24, CharCompW: 36, CharCompH: 36},
	FormatQHDVert: {ViewBoxW: 960, ViewBoxH: 540, DisplayW: 960, DisplayH: 540, HSpace: 12, VSpace: 24, CharCompW: 36, CharCompH: 36, Vertical: true},
	FormatSDHorz:  {ViewBoxW: 960, ViewBoxH: 480, DisplayW: 720, DisplayH: 480, HSpace: 4, VSpace: 16, CharCompW: 36, CharCompH: 36},
	FormatSDVert:  {ViewBoxW: 720, ViewBoxH: 480, DisplayW: 720, DisplayH: 480, HSpace: 8, VSpace: 24, CharCompW: 36, CharCompH: 36, Vertical: true},
	FormatProfileC: {ViewBoxW: 330, ViewBoxH: 180, DisplayW: 320, DisplayH: 180, HSpace: 2, VSpace: 6, CharCompW: 18, CharCompH: 18, ForceDefaultHemming: true},
}

func displayFormatSpecFor(f DisplayFormat) displayFormatSpec {
	if int(f) >= len(displayFormatTable) {
		return displayFormatTable[FormatQHDHorz]
	}
	return displayFormatTable[f]
}

// DefaultHemmingColorOneSeg is the hemming color forced on profile-c
// (one-seg) display-format resets (spec.md §4.2's "default hemming
// color forced"). Palette index 8 is ARIB STD-B24's default hemming
// color (black); see DESIGN.md's Open Question ledger.
const DefaultHemmingColorOneSeg uint8 = 8

func truncGeom(v float64) int {
	return int(v) // Go's float->int conversion already truncates toward zero.
}

// applyDisplayFormat resets every geometry-dependent field of s to the
// defaults of format f (spec.md §4.2's reset table, applied on
// clear-screen, set-writing-format-init with p1∈{7,8,9,10}, and on
// management-data). It is the single code path all four of those
// triggers funnel through, resolving the "does SWF discard a prior
// SDF/SDP" open question (DESIGN.md): yes, because this is the only
// reset path any of them invoke.
func (s *RendererState) applyDisplayFormat(f DisplayFormat) {
	spec := displayFormatSpecFor(f)

	s.Format = f
	s.ViewBoxW, s.ViewBoxH = spec.ViewBoxW, spec.ViewBoxH
	s.DisplayLeft, s.DisplayTop = 0, 0
	s.DisplayWidth, s.DisplayHeight = spec.DisplayW, spec.DisplayH
	s.HSpaceBase, s.VSpaceBase = spec.HSpace, spec.VSpace
	s.CharCompW, s.CharCompH = spec.CharCompW, spec.CharCompH

	s.Section = CharSizeNormal
	s.SectionCfg = sectionConfigFor(CharSizeNormal)
	s.recomputeCellSize()

	s.Foreground = 7
	s.Background = 8
	s.PaletteIndex = 0
	if spec.ForceDefaultHemming {
		h := DefaultHemmingColorOneSeg
		s.Hemming = &h
	} else {
		s.Hemming = nil
	}
	s.Polarity = PolarityNormal
	s.Underline = false
	s.Highlight = 0
	s.Flashing = FlashNone
	s.RepeatCharacter = nil
	s.Wrapped = false

	if spec.Vertical {
		s.CursorX = s.DisplayLeft + s.DisplayWidth - s.CharW
	} else {
		s.CursorX = s.DisplayLeft
	}
	if f == FormatProfileC {
		s.CursorY = s.DisplayTop + s.DisplayHeight - 2*s.CharH
	} else {
		s.CursorY = s.DisplayTop + s.CharH
	}
}

// recomputeCellSize derives CharW/CharH from the current char
// composition dot size, the active SECTION_CONFIG, and the
// display-format's base spacing (spec.md §4.2).
func (s *RendererState) recomputeCellSize() {
	cfg := s.SectionCfg
	fontW := truncGeom(float64(s.CharCompW) * cfg.FontWidthFactor)
	fontH := truncGeom(float64(s.CharCompH) * cfg.FontHeightFactor)
	hSpace := truncGeom(float64(s.HSpaceBase) * cfg.HSpaceFactor)
	vSpace := truncGeom(float64(s.VSpaceBase) * cfg.VSpaceFactor)
	s.FontWidth, s.FontHeight = fontW, fontH
	s.LeftSpace = truncGeom(float64(hSpace) * cfg.LeftSpaceFactor)
	s.LowerSpace = truncGeom(float64(vSpace) * cfg.LowerSpaceFactor)
	s.CharW = fontW + hSpace
	s.CharH = fontH + vSpace
}

// setCharSize applies a char-size opcode (spec.md §4.2): it recomputes
// the cell geometry in place without touching any other reset field
// (distinct from applyDisplayFormat, which resets everything).
func (s *RendererState) setCharSize(size CharSize) {
	s.Section = size
	s.SectionCfg = sectionConfigFor(size)
	s.recomputeCellSize()
}
