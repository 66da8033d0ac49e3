package caption

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stringStatement(s string) Statement {
	var stmt Statement
	for _, r := range s {
		stmt = append(stmt, AribChar{Kind: CharRune, Rune: r})
	}
	return stmt
}

func opChar(op Opcode, params ...int) AribChar {
	return AribChar{Kind: CharOpcode, Opcode: op, Params: params}
}

func managementPacket(group Group, format DisplayFormat, langTag uint) CaptionPacket {
	return CaptionPacket{
		Kind:  PacketManagementData,
		Group: group,
		Languages: []LangInfo{
			{LanguageTag: langTag, Format: format},
		},
	}
}

func dataPacket(group Group, langTag uint, stmt Statement) CaptionPacket {
	return CaptionPacket{
		Kind:        PacketData,
		Group:       group,
		LanguageTag: langTag,
		DataUnits:   []DataUnit{{Kind: DataUnitStatementBody, Statement: stmt}},
	}
}

// TestBareStatement is spec.md §8 scenario 1.
func TestBareStatement(t *testing.T) {
	sm := NewStateMachine(false)
	require.Nil(t, sm.Process(4.0, managementPacket(GroupA, FormatQHDHorz, 0x01)))
	require.Nil(t, sm.Process(5.0, dataPacket(GroupA, 0x01, stringStatement("AB"))))

	s := sm.Surface()
	assert.Equal(t, 960, sm.state.ViewBoxW)
	assert.Equal(t, 540, sm.state.ViewBoxH)
	require.Len(t, s.Rectangles, 2)
	assert.Equal(t, Rectangle{X: 0, Y: 0, W: 40, H: 60, Color: 8}, s.Rectangles[0])
	assert.Equal(t, Rectangle{X: 40, Y: 0, W: 40, H: 60, Color: 8}, s.Rectangles[1])
	require.Len(t, s.Glyphs, 2)
	assert.Equal(t, 'A', s.Glyphs[0].Rune)
	assert.Equal(t, 'B', s.Glyphs[1].Rune)
}

// TestPolaritySwap is spec.md §8 scenario 2.
func TestPolaritySwap(t *testing.T) {
	sm := NewStateMachine(false)
	require.Nil(t, sm.Process(4.0, managementPacket(GroupA, FormatQHDHorz, 0x01)))

	stmt := append(Statement{opChar(OpPOL, 1)}, stringStatement("X")...)
	require.Nil(t, sm.Process(5.0, dataPacket(GroupA, 0x01, stmt)))

	s := sm.Surface()
	require.Len(t, s.Rectangles, 1)
	assert.EqualValues(t, 7, s.Rectangles[0].Color)
	require.Len(t, s.Glyphs, 1)
	assert.EqualValues(t, 8, s.Glyphs[0].Color)
}

// TestClearScreenResetsSurfaceAndCursor is spec.md §8 scenario 3.
func TestClearScreenResetsSurfaceAndCursor(t *testing.T) {
	sm := NewStateMachine(false)
	require.Nil(t, sm.Process(4.0, managementPacket(GroupA, FormatQHDHorz, 0x01)))
	require.Nil(t, sm.Process(5.0, dataPacket(GroupA, 0x01, stringStatement("AB"))))
	require.Nil(t, sm.Process(5.1, dataPacket(GroupA, 0x01, Statement{opChar(OpCS)})))

	s := sm.Surface()
	assert.Empty(t, s.Rectangles)
	assert.Empty(t, s.Glyphs)
	assert.Equal(t, 0, sm.state.CursorX)
	assert.Equal(t, 60, sm.state.CursorY)
}

// TestWrapSuppressesRedundantAPR checks the literal cursor-advance
// mechanics: the advance that crosses the right edge sets wrapped, and
// an immediately following APR is suppressed.
func TestWrapSuppressesRedundantAPR(t *testing.T) {
	sm := NewStateMachine(false)
	require.Nil(t, sm.Process(4.0, managementPacket(GroupA, FormatSDHorz, 0x01)))
	require.Equal(t, 720, sm.state.DisplayWidth)
	require.Equal(t, 40, sm.state.CharW)

	// 18 columns fit exactly; the 18th char's advance wraps to row 2.
	require.Nil(t, sm.Process(5.0, dataPacket(GroupA, 0x01, stringStatement(
		"ABCDEFGHIJKLMNOPQR", // 18 chars
	))))
	assert.True(t, sm.state.Wrapped)
	row2Y := sm.state.CursorY

	require.Nil(t, sm.Process(5.1, dataPacket(GroupA, 0x01, Statement{opChar(OpAPR)})))
	assert.Equal(t, row2Y, sm.state.CursorY, "APR must not add an extra line right after a wrap")
}

// TestTimeRequeuesStatementTail is spec.md §8 scenario 5.
func TestTimeRequeuesStatementTail(t *testing.T) {
	sm := NewStateMachine(false)
	require.Nil(t, sm.Process(4.0, managementPacket(GroupA, FormatQHDHorz, 0x01)))

	stmt := Statement{
		{Kind: CharRune, Rune: 'A'},
		opChar(OpWaitForProcess, 20),
		{Kind: CharRune, Rune: 'B'},
	}
	req := sm.Process(10.0, dataPacket(GroupA, 0x01, stmt))
	require.NotNil(t, req)
	assert.Equal(t, 12.0, req.Pos)
	require.Len(t, sm.Surface().Glyphs, 1)
	assert.Equal(t, 'A', sm.Surface().Glyphs[0].Rune)

	require.Nil(t, sm.Process(12.0, req.Packet))
	require.Len(t, sm.Surface().Glyphs, 2)
	assert.Equal(t, 'B', sm.Surface().Glyphs[1].Rune)
}

// TestRewindResetsRenderer is spec.md §8 scenario 6.
func TestRewindResetsRenderer(t *testing.T) {
	sm := NewStateMachine(false)
	require.Nil(t, sm.Process(100.0, managementPacket(GroupA, FormatQHDHorz, 0x01)))
	require.Nil(t, sm.Process(50.0, dataPacket(GroupA, 0x01, stringStatement("A"))))

	assert.False(t, sm.established, "a rewind beyond the management position resets to unestablished")
	assert.Empty(t, sm.Surface().Glyphs)
}

// TestDataBeforeManagementDataIsDropped covers spec.md §9's resolved
// open question: data arriving before any management-data is silently
// dropped.
func TestDataBeforeManagementDataIsDropped(t *testing.T) {
	sm := NewStateMachine(false)
	require.Nil(t, sm.Process(1.0, dataPacket(GroupA, 0x01, stringStatement("A"))))
	assert.Empty(t, sm.Surface().Glyphs)
}

// TestCursorAdvanceIsGroupAction is spec.md §8's quantified invariant:
// N APF followed by N APB returns to the original position iff no
// wrap occurred.
func TestCursorAdvanceIsGroupAction(t *testing.T) {
	sm := NewStateMachine(false)
	require.Nil(t, sm.Process(1.0, managementPacket(GroupA, FormatQHDHorz, 0x01)))
	startX, startY := sm.state.CursorX, sm.state.CursorY

	const n = 5 // well within the 24-column qhd-horz row
	fwd := make(Statement, n)
	for i := range fwd {
		fwd[i] = opChar(OpAPF)
	}
	bwd := make(Statement, n)
	for i := range bwd {
		bwd[i] = opChar(OpAPB)
	}

	require.Nil(t, sm.Process(2.0, dataPacket(GroupA, 0x01, fwd)))
	require.Nil(t, sm.Process(2.1, dataPacket(GroupA, 0x01, bwd)))

	assert.Equal(t, startX, sm.state.CursorX)
	assert.Equal(t, startY, sm.state.CursorY)
}

// TestRepeatIdempotence is spec.md §8's quantified invariant: emitting
// character c with RPC k then zero further characters equals emitting
// c k times individually.
func TestRepeatIdempotence(t *testing.T) {
	smRepeat := NewStateMachine(false)
	require.Nil(t, smRepeat.Process(1.0, managementPacket(GroupA, FormatQHDHorz, 0x01)))
	stmt := Statement{opChar(OpRepeatCharacter, 3), {Kind: CharRune, Rune: 'C'}}
	require.Nil(t, smRepeat.Process(2.0, dataPacket(GroupA, 0x01, stmt)))

	smIndividual := NewStateMachine(false)
	require.Nil(t, smIndividual.Process(1.0, managementPacket(GroupA, FormatQHDHorz, 0x01)))
	require.Nil(t, smIndividual.Process(2.0, dataPacket(GroupA, 0x01, stringStatement("CCC"))))

	assert.Equal(t, smIndividual.Surface().Glyphs, smRepeat.Surface().Glyphs)
	assert.Equal(t, smIndividual.Surface().Rectangles, smRepeat.Surface().Rectangles)
	assert.Nil(t, smRepeat.state.RepeatCharacter)
}
