package caption

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/aznhe21/tavoo-go/internal/rasterize"
)

// drcsSetCount is the number of independent DRCS sets (drcs0..drcs15)
// spec.md §4.3's storage model names.
const drcsSetCount = 16

// RasterizedFont holds one decoded, size-tagged DRCS glyph: the raw
// per-pixel alpha bitmap at its native resolution, plus a lazily
// generated drawable handle cached across redraws (spec.md §4.3,
// "Shared resources").
type RasterizedFont struct {
	Width, Height int

	alpha  *image.Alpha
	handle *ebiten.Image
	cellW  int
	cellH  int
	tint   color.Color
}

// HandleFor returns the cached ebitengine image for this font scaled
// to (cellW,cellH) and tinted with fg, generating it on first use or
// whenever the requested cell size or color changes (spec.md §4.3/§5:
// "generation … is done lazily on first use and reused thereafter").
func (f *RasterizedFont) HandleFor(cellW, cellH int, fg color.Color) *ebiten.Image {
	if f.handle != nil && f.cellW == cellW && f.cellH == cellH && f.tint == fg {
		return f.handle
	}
	f.handle = rasterize.ScaleToCell(f.alpha, cellW, cellH, fg)
	f.cellW, f.cellH = cellW, cellH
	f.tint = fg
	return f.handle
}

// CodeEntry is every rasterized size variant known for one DRCS
// character code (spec.md §4.3).
type CodeEntry struct {
	Fonts []*RasterizedFont
}

// get returns the font whose size equals (w,h); if none match, the
// most recently added font; if the entry is empty, nil.
func (e *CodeEntry) get(w, h int) *RasterizedFont {
	if len(e.Fonts) == 0 {
		return nil
	}
	for _, f := range e.Fonts {
		if f.Width == w && f.Height == h {
			return f
		}
	}
	return e.Fonts[len(e.Fonts)-1]
}

// CacheStats reports font-cache activity for host-side diagnostics
// (SPEC_FULL.md's supplemented-feature list, item 4).
type CacheStats struct {
	Hits            uint64
	Misses          uint64
	RasterizedCount uint64
}

// DrcsFontCache is the 16-set DRCS font store (spec.md §3, §4.3):
// decodes run-length pattern data into per-pixel alpha bitmaps keyed
// by (set, code), and lazily rasterizes them to the active cell size
// on demand.
type DrcsFontCache struct {
	sets  [drcsSetCount]map[uint32]*CodeEntry
	stats CacheStats
}

// NewDrcsFontCache returns an empty cache with all 16 sets allocated.
func NewDrcsFontCache() *DrcsFontCache {
	c := &DrcsFontCache{}
	c.Reset()
	return c
}

// Reset clears every set (spec.md §4.3, "management-data group switch
// → reset clears all sets"). Also invoked on source change and on
// 3-minute idle expiration (spec.md §4.2, §4.5).
func (c *DrcsFontCache) Reset() {
	for i := range c.sets {
		c.sets[i] = make(map[uint32]*CodeEntry)
	}
}

// Stats returns a snapshot of cache counters.
func (c *DrcsFontCache) Stats() CacheStats {
	return c.stats
}

// Load decodes a [DrcsCode] and installs it into the cache, first
// clearing any existing entry for the same key (spec.md §4.3: "each
// arriving drcs data unit first clears the target CodeEntry, then
// appends each successfully decoded font"). Fonts whose depth is
// neither 0 nor 2, or whose patternData length doesn't match
// width·height·bpp bits, are dropped individually; the rest of the
// code's fonts still load.
func (c *DrcsFontCache) Load(code DrcsCode) {
	if int(code.Set) >= drcsSetCount {
		return
	}
	entry := &CodeEntry{}
	for _, font := range code.Fonts {
		rf, ok := decodeDrcsFont(font)
		if !ok {
			continue
		}
		entry.Fonts = append(entry.Fonts, rf)
		c.stats.RasterizedCount++
	}
	c.sets[code.Set][code.Key()] = entry
}

// decodeDrcsFont implements spec.md §4.3's decode formula: bpp is 1
// for depth 0, 2 for depth 2 (any other depth is rejected); each pixel
// i's bits live at bit-offset p=i·bpp, byte ⌊p/8⌋, shifted right by
// (8−bpp−(p mod 8)) and masked to bpp, normalized to [0,1] alpha.
func decodeDrcsFont(font DrcsFont) (*RasterizedFont, bool) {
	var bpp int
	switch font.Depth {
	case 0:
		bpp = 1
	case 2:
		bpp = 2
	default:
		return nil, false
	}
	wantBits := font.Width * font.Height * bpp
	if len(font.PatternData)*8 != wantBits {
		return nil, false
	}
	alpha := rasterize.Alpha(font.Width, font.Height, bpp, font.PatternData)
	return &RasterizedFont{Width: font.Width, Height: font.Height, alpha: alpha}, true
}

// Get looks up the (set, key) code and returns the font best matching
// (w,h) per [CodeEntry.get], recording a hit/miss in [CacheStats].
func (c *DrcsFontCache) Get(set uint8, key uint32, w, h int) *RasterizedFont {
	if int(set) >= drcsSetCount {
		c.stats.Misses++
		return nil
	}
	entry, ok := c.sets[set][key]
	if !ok {
		c.stats.Misses++
		return nil
	}
	f := entry.get(w, h)
	if f == nil {
		c.stats.Misses++
		return nil
	}
	c.stats.Hits++
	return f
}
