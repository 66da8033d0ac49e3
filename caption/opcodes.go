package caption

// swfFormatByP1 maps the four reset-triggering set-writing-format-init
// parameter values to their display format (spec.md §4.2: "applied on
// ... set-writing-format-init with p1∈{7,8,9,10}"). The four values
// line up 1:1 with the four non-profile-c formats; profile-c is
// reserved for one-seg and is never selected via SWF.
var swfFormatByP1 = map[int]DisplayFormat{
	7:  FormatQHDHorz,
	8:  FormatQHDVert,
	9:  FormatSDHorz,
	10: FormatSDVert,
}

func paramAt(params []int, i int) int {
	if i < len(params) {
		return params[i]
	}
	return 0
}

// opcodeHandlers dispatches every opcode not handled specially by
// [StateMachine.processStatement] (position/geometry/color/attribute
// and the silently-accepted unsupported set; spec.md §4.2's grouped
// opcode list).
var opcodeHandlers = map[Opcode]func(sm *StateMachine, params []int){
	// --- position ---
	OpAPB: func(sm *StateMachine, params []int) { sm.advanceBackward() },
	OpAPF: func(sm *StateMachine, params []int) { sm.advanceForward() },
	OpAPD: func(sm *StateMachine, params []int) { sm.advanceDown() },
	OpAPU: func(sm *StateMachine, params []int) { sm.advanceUp() },
	OpAPR: func(sm *StateMachine, params []int) { sm.advanceReturn() },
	OpPAPF: func(sm *StateMachine, params []int) {
		for i := 0; i < paramAt(params, 0); i++ {
			sm.advanceForward()
		}
	},
	OpAPS: func(sm *StateMachine, params []int) {
		s := sm.state
		p1, p2 := paramAt(params, 0), paramAt(params, 1)
		s.CursorX = s.DisplayLeft + p2*s.CharW
		s.CursorY = s.DisplayTop + (p1+1)*s.CharH
		s.Wrapped = false
	},
	OpACPS: func(sm *StateMachine, params []int) {
		s := sm.state
		s.CursorX = paramAt(params, 0)
		s.CursorY = paramAt(params, 1)
		s.Wrapped = false
	},
	OpCS:          func(sm *StateMachine, params []int) { sm.resetDisplay(sm.state.Format) },
	OpClearScreen: func(sm *StateMachine, params []int) { sm.resetDisplay(sm.state.Format) },
	OpUS:          func(sm *StateMachine, params []int) {}, // positional no-op

	// --- geometry & format ---
	OpCharSize: func(sm *StateMachine, params []int) { sm.state.setCharSize(CharSize(paramAt(params, 0))) },
	OpSWF: func(sm *StateMachine, params []int) {
		if f, ok := swfFormatByP1[paramAt(params, 0)]; ok {
			sm.resetDisplay(f)
		}
	},
	OpSetWritingFormatInit: func(sm *StateMachine, params []int) {
		if f, ok := swfFormatByP1[paramAt(params, 0)]; ok {
			sm.resetDisplay(f)
		}
	},
	OpSDF: func(sm *StateMachine, params []int) {
		s := sm.state
		s.DisplayWidth, s.DisplayHeight = paramAt(params, 0), paramAt(params, 1)
		s.recomputeCellSize()
	},
	OpSDP: func(sm *StateMachine, params []int) {
		s := sm.state
		s.DisplayLeft, s.DisplayTop = paramAt(params, 0), paramAt(params, 1)
	},
	OpSSM: func(sm *StateMachine, params []int) {
		s := sm.state
		s.CharCompW, s.CharCompH = paramAt(params, 0), paramAt(params, 1)
		s.recomputeCellSize()
	},
	OpSHS: func(sm *StateMachine, params []int) {
		s := sm.state
		s.HSpaceBase = paramAt(params, 0)
		s.recomputeCellSize()
	},
	OpSVS: func(sm *StateMachine, params []int) {
		s := sm.state
		s.VSpaceBase = paramAt(params, 0)
		s.recomputeCellSize()
	},

	// --- color ---
	OpColorForeground: func(sm *StateMachine, params []int) {
		s := sm.state
		s.Foreground = s.PaletteIndex<<4 | uint8(paramAt(params, 0))
	},
	OpColorBackground: func(sm *StateMachine, params []int) {
		s := sm.state
		s.Background = s.PaletteIndex<<4 | uint8(paramAt(params, 0))
	},
	OpColorPalette:        func(sm *StateMachine, params []int) { sm.state.PaletteIndex = uint8(paramAt(params, 0)) },
	OpColorHalfForeground: func(sm *StateMachine, params []int) {},
	OpColorHalfBackground: func(sm *StateMachine, params []int) {},

	// --- attributes ---
	OpPOL: func(sm *StateMachine, params []int) {
		if paramAt(params, 0) == 0 {
			sm.state.Polarity = PolarityNormal
		} else {
			sm.state.Polarity = PolarityInverted1
		}
	},
	OpFLC: func(sm *StateMachine, params []int) { sm.state.Flashing = FlashMode(paramAt(params, 0)) },
	OpSTL: func(sm *StateMachine, params []int) { sm.state.Underline = true },
	OpSPL: func(sm *StateMachine, params []int) { sm.state.Underline = false },
	OpHLC: func(sm *StateMachine, params []int) { sm.state.Highlight = uint8(paramAt(params, 0)) & 0xF },
	OpORN: func(sm *StateMachine, params []int) {
		s := sm.state
		if len(params) == 0 || params[0] < 0 {
			s.Hemming = nil
			return
		}
		h := s.PaletteIndex<<4 | uint8(params[0])
		s.Hemming = &h
	},

	// --- character emission ---
	OpNull: func(sm *StateMachine, params []int) {},

	// --- unsupported, accepted silently ---
	OpRasterColorCommand:           func(sm *StateMachine, params []int) {},
	OpBuiltinSoundReplay:           func(sm *StateMachine, params []int) {},
	OpScrollDesignation:            func(sm *StateMachine, params []int) {},
	OpCharCompositionDotDesignation: func(sm *StateMachine, params []int) {},
}
