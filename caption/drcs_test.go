package caption

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrcsCodeKeyUsesTwoCodesForSetZero(t *testing.T) {
	d := DrcsCode{Set: 0, Code1: 0x12, Code2: 0x34}
	assert.Equal(t, uint32(0x1234), d.Key())
}

func TestDrcsCodeKeyUsesSingleCodeForOtherSets(t *testing.T) {
	d := DrcsCode{Set: 3, Code1: 0x56}
	assert.Equal(t, uint32(0x56), d.Key())
}

func TestDrcsFontCacheRejectsUnsupportedDepth(t *testing.T) {
	c := NewDrcsFontCache()
	c.Load(DrcsCode{Set: 1, Code1: 1, Fonts: []DrcsFont{
		{Depth: 1, Width: 2, Height: 2, PatternData: []byte{0xFF}},
	}})
	assert.Nil(t, c.Get(1, 1, 2, 2))
}

func TestDrcsFontCacheRejectsShortPatternData(t *testing.T) {
	c := NewDrcsFontCache()
	c.Load(DrcsCode{Set: 1, Code1: 1, Fonts: []DrcsFont{
		{Depth: 2, Width: 16, Height: 16, PatternData: []byte{0x00}}, // needs 64 bytes
	}})
	assert.Nil(t, c.Get(1, 1, 16, 16))
}

func TestDrcsFontCacheDecodesAndLooksUpBySize(t *testing.T) {
	c := NewDrcsFontCache()
	// 2x2, 2bpp: one byte holds exactly the 4 pixels.
	c.Load(DrcsCode{Set: 1, Code1: 1, Fonts: []DrcsFont{
		{Depth: 2, Width: 2, Height: 2, PatternData: []byte{0b1010_0000}},
	}})
	f := c.Get(1, 1, 2, 2)
	require.NotNil(t, f)
	assert.Equal(t, 2, f.Width)
	assert.Equal(t, 2, f.Height)

	stats := c.Stats()
	assert.EqualValues(t, 1, stats.Hits)
	assert.EqualValues(t, 1, stats.RasterizedCount)
}

func TestDrcsFontCacheFallsBackToMostRecentSize(t *testing.T) {
	c := NewDrcsFontCache()
	c.Load(DrcsCode{Set: 2, Code1: 5, Fonts: []DrcsFont{
		{Depth: 2, Width: 2, Height: 2, PatternData: []byte{0xFF}},
		{Depth: 0, Width: 4, Height: 4, PatternData: []byte{0xFF, 0xFF}},
	}})
	f := c.Get(2, 5, 99, 99) // no exact match
	require.NotNil(t, f)
	assert.Equal(t, 4, f.Width) // most recently appended
}

func TestDrcsFontCacheMissOnUnknownCode(t *testing.T) {
	c := NewDrcsFontCache()
	assert.Nil(t, c.Get(0, 1, 2, 2))
	assert.EqualValues(t, 1, c.Stats().Misses)
}

func TestDrcsFontCacheLoadReplacesExistingEntry(t *testing.T) {
	c := NewDrcsFontCache()
	c.Load(DrcsCode{Set: 1, Code1: 1, Fonts: []DrcsFont{
		{Depth: 2, Width: 2, Height: 2, PatternData: []byte{0xFF}},
	}})
	c.Load(DrcsCode{Set: 1, Code1: 1, Fonts: []DrcsFont{
		{Depth: 0, Width: 8, Height: 8, PatternData: make([]byte, 8)},
	}})
	f := c.Get(1, 1, 2, 2) // the 2x2 variant is gone, so this falls back
	require.NotNil(t, f)
	assert.Equal(t, 8, f.Width)
}

func TestDrcsFontCacheResetClearsAllSets(t *testing.T) {
	c := NewDrcsFontCache()
	c.Load(DrcsCode{Set: 0, Code1: 1, Code2: 2, Fonts: []DrcsFont{
		{Depth: 2, Width: 2, Height: 2, PatternData: []byte{0xFF}},
	}})
	c.Reset()
	assert.Nil(t, c.Get(0, (1<<8)|2, 2, 2))
}

func TestDrcsFontCacheIgnoresOutOfRangeSet(t *testing.T) {
	c := NewDrcsFontCache()
	c.Load(DrcsCode{Set: 16, Code1: 1, Fonts: []DrcsFont{
		{Depth: 0, Width: 2, Height: 2, PatternData: []byte{0xFF}},
	}})
	assert.Nil(t, c.Get(16, 1, 2, 2))
}

func TestRasterizedFontHandleForGeneratesOnceAndCachesUntilParamsChange(t *testing.T) {
	c := NewDrcsFontCache()
	c.Load(DrcsCode{Set: 1, Code1: 1, Fonts: []DrcsFont{
		{Depth: 2, Width: 2, Height: 2, PatternData: []byte{0b1010_0000}},
	}})
	f := c.Get(1, 1, 2, 2)
	require.NotNil(t, f)

	h1 := f.HandleFor(16, 16, color.White)
	require.NotNil(t, h1)
	assert.Equal(t, 16, h1.Bounds().Dx())
	assert.Equal(t, 16, h1.Bounds().Dy())

	h2 := f.HandleFor(16, 16, color.White)
	assert.Same(t, h1, h2, "same cell size and color should reuse the cached handle")

	h3 := f.HandleFor(32, 16, color.White)
	assert.NotSame(t, h1, h3, "a different cell size must regenerate the handle")
}
