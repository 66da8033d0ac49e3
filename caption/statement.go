package caption

// Opcode identifies one of the ~50 CSI/control/graphic opcodes the
// state machine interprets, grouped by function (position, geometry,
// color, attributes, character emission) so opcodes.go's dispatch
// table reads the same way this grouping does.
type Opcode uint8

const (
	OpNone Opcode = iota

	// --- position ---
	OpAPB  // active position backward
	OpAPF  // active position forward
	OpAPD  // active position down
	OpAPU  // active position up
	OpAPR  // active position return
	OpPAPF // parameterized active position forward
	OpAPS  // active position set
	OpACPS // active coordinate position set
	OpCS   // clear screen
	OpUS   // unit separator / underline? (ARIB control, positional no-op here)

	// --- geometry & format ---
	OpCharSize // char-size with sub-variant in Params[0]
	OpSWF      // set writing format
	OpSDF      // set display format
	OpSDP      // set display position
	OpSSM      // set character composition dot designation
	OpSHS      // set horizontal spacing
	OpSVS      // set vertical spacing

	// --- color ---
	OpColorForeground
	OpColorBackground
	OpColorPalette
	OpColorHalfForeground // accepted, ignored (spec.md §4.2)
	OpColorHalfBackground // accepted, ignored

	// --- attributes ---
	OpPOL // polarity
	OpFLC // flashing control
	OpSTL // start lining (underline)
	OpSPL // stop lining
	OpHLC // highlight character block
	OpORN // ornamentation (hemming)

	// --- character emission ---
	OpString           // literal printable run; chars carried as CharRune AribChars
	OpSpace            // SP
	OpDelete           // DEL: paints a background rectangle
	OpDrcs             // invokes DRCS set Params[0], code Params[1]
	OpRepeatCharacter  // RPC: stores repeat count Params[0] (0 = until wrap)
	OpNull             // NUL: no-op

	// --- timing ---
	OpWaitForProcess // TIME: Params[0] is the wait count (seconds = p1/10)

	// --- reset / control ---
	OpClearScreen          // CS alias: same handler as OpCS
	OpSetWritingFormatInit // SWF variant that forces the default reset table

	// --- unsupported, accepted silently (spec.md §4.2, Non-goals) ---
	OpRasterColorCommand
	OpBuiltinSoundReplay
	OpScrollDesignation
	OpCharCompositionDotDesignation
)

// CharSize enumerates the six char-size opcode variants (spec.md
// §4.2's SECTION_CONFIG derivation).
type CharSize uint8

const (
	CharSizeSmall CharSize = iota
	CharSizeMedium
	CharSizeNormal
	CharSizeHeightW
	CharSizeWidthW
	CharSizeSizeW
)

// CharKind distinguishes a decoded printable character from an opcode
// invocation within a [Statement].
type CharKind uint8

const (
	CharRune CharKind = iota
	CharOpcode
)

// AribChar is one token of a decoded ARIB statement: either a
// printable character or a control/CSI opcode invocation with
// parameters (spec.md §9, "tagged variants replace inheritance").
type AribChar struct {
	Kind   CharKind
	Rune   rune   // valid when Kind == CharRune
	Opcode Opcode // valid when Kind == CharOpcode
	Params []int  // opcode parameters, e.g. [p1, p2]
}

// Statement is a decoded sequence of [AribChar] tokens — the
// "statement stream" spec.md §1 identifies as the hardest part of the
// system to interpret correctly.
type Statement []AribChar
