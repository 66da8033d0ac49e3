package caption

// reestablishWindow is the 3-minute rewind/gap tolerance spec.md §4.2
// names: a data packet whose position has drifted more than this far
// past the last management-data position forces a full reset, as does
// any rewind below it.
const reestablishWindow = 180.0 // seconds

// PostponedRequeue is what [StateMachine.Process] returns when a
// statement hits a wait-for-process (TIME) opcode: the remaining
// statement tail, packaged as a postponed [CaptionPacket], to be
// re-inserted into the pending queue at Pos (spec.md §4.2).
type PostponedRequeue struct {
	Pos    float64
	Packet CaptionPacket
}

// StateMachine is one Caption State Machine instance (C2): cursor and
// attribute state, a DRCS font cache, and the accumulated drawing
// surface for the current tick (spec.md §4.2).
type StateMachine struct {
	state *RendererState
	drcs  *DrcsFontCache
	surface Surface

	oneSeg bool

	established       bool
	group             Group
	languageTag       uint
	dmfPlayback       uint8
	useSubLang        bool
	lastManagementPos float64
}

// NewStateMachine creates a state machine instance. oneSeg pins
// display format/mode/group/languageTag to profile-c/selectable/A/0
// without waiting for a management-data packet (spec.md §4.2,
// "Filtering and lifecycle").
func NewStateMachine(oneSeg bool) *StateMachine {
	sm := &StateMachine{
		oneSeg: oneSeg,
		drcs:   NewDrcsFontCache(),
	}
	sm.Reset()
	return sm
}

// SetUseSubLang controls which of ≥2 management-data languages is
// selected (spec.md §4.2, "Language selection").
func (sm *StateMachine) SetUseSubLang(use bool) {
	sm.useSubLang = use
}

// SetOneSeg updates the profile-c pinning applied on the next [Reset]
// (spec.md §4.6, "source, service-changed: set isOneseg from service
// metadata").
func (sm *StateMachine) SetOneSeg(oneSeg bool) {
	sm.oneSeg = oneSeg
}

// Surface returns the primitives accumulated since the surface was last
// cleared, either by [Reset] or by a display reset (clear-screen, a
// format-switching SWF, or management-data). Apart from those, the
// state machine never clears it, so multiple packets in one tick
// accumulate onto a single surface.
func (sm *StateMachine) Surface() *Surface {
	return &sm.surface
}

// DMFPlayback returns the raw DMF playback-mode bits carried by the
// currently selected language's management-data entry (spec.md §4.2),
// for a host that wants to honor e.g. a fixed-rollup hint the standard
// doesn't otherwise require interpreting.
func (sm *StateMachine) DMFPlayback() uint8 {
	return sm.dmfPlayback
}

// DrcsCache returns the font cache backing this instance's emitted
// [DrcsImage] primitives, so a host compositor can resolve
// (Set, Key, W, H) to a drawable handle via [DrcsFontCache.Get].
func (sm *StateMachine) DrcsCache() *DrcsFontCache {
	return sm.drcs
}

// Reset fully clears cursor/attribute/display state, the DRCS cache,
// and the management-data context (spec.md §3, "Lifecycle"). If
// one-seg, the context is immediately re-pinned rather than left
// unestablished.
func (sm *StateMachine) Reset() {
	format := FormatQHDHorz
	if sm.oneSeg {
		format = FormatProfileC
	}
	sm.state = newRendererState(format)
	sm.drcs.Reset()
	sm.surface.Reset()

	sm.established = false
	sm.group = GroupA
	sm.languageTag = 0
	sm.dmfPlayback = 0
	sm.lastManagementPos = 0

	if sm.oneSeg {
		sm.established = true
	}
}

// Process consumes one [CaptionPacket] at playback position pos,
// mutating cursor/attribute state and appending primitives to the
// surface (spec.md §4.2). It returns a non-nil [PostponedRequeue] iff
// the packet's statement hit a wait-for-process opcode.
func (sm *StateMachine) Process(pos float64, pkt CaptionPacket) *PostponedRequeue {
	switch pkt.Kind {
	case PacketManagementData:
		if sm.established && !sm.oneSeg && pkt.Group != sm.group {
			sm.Reset()
		}
		return sm.applyManagementData(pos, pkt)

	case PacketData:
		if !sm.established {
			return nil
		}
		if !sm.oneSeg && (pkt.Group != sm.group || pkt.LanguageTag != sm.languageTag) {
			return nil
		}
		if pos < sm.lastManagementPos || pos-sm.lastManagementPos > reestablishWindow {
			sm.Reset()
			return nil
		}
		return sm.processDataUnits(pos, pkt.DataUnits)

	case PacketPostponed:
		if !sm.established {
			return nil
		}
		return sm.processStatement(pos, pkt.StatementTail)
	}
	return nil
}

func selectLanguage(langs []LangInfo, useSubLang bool) *LangInfo {
	if len(langs) == 0 {
		return nil
	}
	idx := 0
	if useSubLang && len(langs) >= 2 {
		idx = 1
	}
	return &langs[idx]
}

func (sm *StateMachine) applyManagementData(pos float64, pkt CaptionPacket) *PostponedRequeue {
	sm.established = true
	sm.group = pkt.Group
	sm.lastManagementPos = pos

	if !sm.oneSeg {
		if lang := selectLanguage(pkt.Languages, sm.useSubLang); lang != nil {
			sm.languageTag = lang.LanguageTag
			sm.dmfPlayback = lang.DMFPlayback
			sm.resetDisplay(lang.Format)
		}
	}

	return sm.processDataUnits(pos, pkt.DataUnits)
}

func (sm *StateMachine) processDataUnits(pos float64, units []DataUnit) *PostponedRequeue {
	for _, u := range units {
		switch u.Kind {
		case DataUnitStatementBody:
			if req := sm.processStatement(pos, u.Statement); req != nil {
				return req
			}
		case DataUnitDRCS:
			for _, code := range u.DRCS {
				sm.drcs.Load(code)
			}
		case DataUnitBitmap:
			// Never rendered (spec.md §1 Non-goals).
		}
	}
	return nil
}

// processStatement walks a decoded statement token by token, emitting
// primitives and mutating state, stopping immediately and packaging
// the remainder as a postponed packet if it hits a wait-for-process
// opcode (spec.md §4.2).
func (sm *StateMachine) processStatement(pos float64, stmt Statement) *PostponedRequeue {
	for i, ch := range stmt {
		if ch.Kind == CharRune {
			sm.emitRepeated(func() { sm.emitChar(ch.Rune) })
			continue
		}

		switch ch.Opcode {
		case OpWaitForProcess:
			delaySec := float64(paramAt(ch.Params, 0)) / 10
			return &PostponedRequeue{
				Pos: pos + delaySec,
				Packet: CaptionPacket{
					Kind:          PacketPostponed,
					StatementTail: append(Statement(nil), stmt[i+1:]...),
				},
			}
		case OpSpace:
			sm.emitRepeated(sm.emitSpace)
		case OpDelete:
			sm.emitRepeated(sm.emitDelete)
		case OpDrcs:
			setIdx := uint8(paramAt(ch.Params, 0))
			key := drcsKeyFromParams(ch.Params)
			sm.emitRepeated(func() { sm.emitDrcs(setIdx, key) })
		case OpRepeatCharacter:
			n := paramAt(ch.Params, 0)
			sm.state.RepeatCharacter = &n
		default:
			if handler, ok := opcodeHandlers[ch.Opcode]; ok {
				handler(sm, ch.Params)
			}
		}
	}
	return nil
}

func drcsKeyFromParams(params []int) uint32 {
	if len(params) >= 3 {
		return (uint32(params[1]) << 8) | uint32(params[2])
	}
	return uint32(paramAt(params, 1))
}

// emitRepeated runs emit once, or, if a repeat-character count is
// pending, the number of times that count specifies (spec.md §4.2,
// "Repeat"): a fixed count repeats exactly that many times; a count of
// 0 repeats until the cursor wraps, with the loop body always running
// at least once (checking wrapped only after each emission, so a
// repeat requested while already wrapped still emits one character —
// see DESIGN.md's Open Question decision). The count is consumed
// (cleared) whether or not it was used.
func (sm *StateMachine) emitRepeated(emit func()) {
	n := sm.state.RepeatCharacter
	sm.state.RepeatCharacter = nil
	if n == nil {
		emit()
		return
	}
	if *n == 0 {
		for {
			emit()
			if sm.state.Wrapped {
				break
			}
		}
		return
	}
	for i := 0; i < *n; i++ {
		emit()
	}
}

func (sm *StateMachine) emitChar(r rune) {
	s := sm.state
	sm.surface.addRectangle(Rectangle{
		X: float64(s.CursorX), Y: float64(s.CursorY - s.CharH),
		W: float64(s.CharW), H: float64(s.CharH),
		Color: s.effectiveBackground(), Flash: s.Flashing,
	})
	sm.emitHighlight()
	sm.surface.addGlyph(Glyph{
		X: float64(s.CursorX + s.LeftSpace),
		Y: float64(s.CursorY - s.LowerSpace - s.FontHeight),
		W: float64(s.FontWidth), H: float64(s.FontHeight),
		Rune: r, Color: s.effectiveForeground(), Hemming: s.effectiveHemming(), Flash: s.Flashing,
	})
	sm.advanceForward()
}

func (sm *StateMachine) emitSpace() {
	s := sm.state
	sm.surface.addRectangle(Rectangle{
		X: float64(s.CursorX), Y: float64(s.CursorY - s.CharH),
		W: float64(s.CharW), H: float64(s.CharH),
		Color: s.effectiveBackground(), Flash: s.Flashing,
	})
	sm.advanceForward()
}

func (sm *StateMachine) emitDelete() {
	s := sm.state
	sm.surface.addRectangle(Rectangle{
		X: float64(s.CursorX), Y: float64(s.CursorY - s.CharH),
		W: float64(s.CharW), H: float64(s.CharH),
		Color: s.effectiveForeground(), Flash: s.Flashing,
	})
	sm.advanceForward()
}

func (sm *StateMachine) emitDrcs(setIdx uint8, key uint32) {
	s := sm.state
	sm.surface.addRectangle(Rectangle{
		X: float64(s.CursorX), Y: float64(s.CursorY - s.CharH),
		W: float64(s.CharW), H: float64(s.CharH),
		Color: s.effectiveBackground(), Flash: s.Flashing,
	})
	sm.emitHighlight()
	if font := sm.drcs.Get(setIdx, key, s.FontWidth, s.FontHeight); font != nil {
		sm.surface.addDrcsImage(DrcsImage{
			X: float64(s.CursorX + s.LeftSpace),
			Y: float64(s.CursorY - s.LowerSpace - s.FontHeight),
			W: float64(s.FontWidth), H: float64(s.FontHeight),
			Set: setIdx, Key: key, Color: s.effectiveForeground(), Hemming: s.effectiveHemming(), Flash: s.Flashing,
		})
	}
	sm.advanceForward()
}

func (sm *StateMachine) emitHighlight() {
	s := sm.state
	if s.Highlight == 0 && !s.Underline {
		return
	}
	polys := HighlightPolygons(s.Highlight, s.Underline, s.CursorX, s.CursorY, s.CharW, s.CharH)
	sm.surface.addPolygons(polys, s.effectiveForeground(), s.Flashing)
}

// advanceForward moves the cursor one cell right, wrapping to the
// next row when it reaches the display's right edge (spec.md §4.2,
// "Cursor advance").
func (sm *StateMachine) advanceForward() {
	s := sm.state
	s.CursorX += s.CharW
	if s.CursorX >= s.DisplayLeft+s.DisplayWidth {
		s.CursorY += s.CharH
		s.CursorX = s.DisplayLeft
		s.Wrapped = true
	} else {
		s.Wrapped = false
	}
}

// advanceBackward is the symmetric opposite of advanceForward.
func (sm *StateMachine) advanceBackward() {
	s := sm.state
	s.CursorX -= s.CharW
	if s.CursorX < s.DisplayLeft {
		s.CursorY -= s.CharH
		s.CursorX = s.DisplayLeft + s.DisplayWidth - s.CharW
		s.Wrapped = true
	} else {
		s.Wrapped = false
	}
}

// advanceDown wraps vertically inside the display box.
func (sm *StateMachine) advanceDown() {
	s := sm.state
	s.CursorY += s.CharH
	if s.CursorY > s.DisplayTop+s.DisplayHeight {
		s.CursorY = s.DisplayTop + s.CharH
	}
}

// advanceUp wraps vertically inside the display box.
func (sm *StateMachine) advanceUp() {
	s := sm.state
	s.CursorY -= s.CharH
	if s.CursorY < s.DisplayTop+s.CharH {
		s.CursorY = s.DisplayTop + s.DisplayHeight
	}
}

// resetDisplay applies the display-format reset table and clears the
// accumulated drawing surface, since every trigger spec.md §4.2 names
// for it (clear-screen, a format-switching SWF, management-data) is
// visually a full screen clear, not just a geometry/attribute reset.
func (sm *StateMachine) resetDisplay(f DisplayFormat) {
	sm.state.applyDisplayFormat(f)
	sm.surface.Reset()
}

// advanceReturn moves to (displayLeft, y+charH) unless the previous
// advance already wrapped, which suppresses the redundant newline
// (spec.md §4.2, "Cursor advance").
func (sm *StateMachine) advanceReturn() {
	s := sm.state
	if s.Wrapped {
		s.Wrapped = false
		return
	}
	s.CursorX = s.DisplayLeft
	s.CursorY += s.CharH
}
