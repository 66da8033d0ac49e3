package caption

// Point is a single vertex in viewport coordinates.
type Point struct {
	X, Y float64
}

// Rectangle is an axis-aligned filled quad — background fills, DEL
// erasures, and the opaque backdrop under a glyph (spec.md §4.5,
// "Character emission semantics").
type Rectangle struct {
	X, Y, W, H float64
	Color      uint8
	Flash      FlashMode
}

// Polygon is a filled, closed outline — used for highlight/underline
// strokes (see [HighlightPolygons]).
type Polygon struct {
	Points []Point
	Color  uint8
	Flash  FlashMode
}

// Glyph is a single rendered character cell: the font code point to
// rasterize at (X,Y) with the given cell size, foreground color, and
// ORN hemming outline color (spec.md §4.5). DRCS characters use
// [DrcsImage] instead.
type Glyph struct {
	X, Y    float64
	W, H    float64
	Rune    rune
	Color   uint8
	Hemming uint8
	Flash   FlashMode
}

// DrcsImage is a single rendered DRCS character cell. Set and Key
// together identify the [DrcsFontCache] entry to resolve a drawable
// handle from via [DrcsFontCache.Get] (spec.md §4.3). Hemming carries
// the same ORN outline color as [Glyph.Hemming].
type DrcsImage struct {
	X, Y    float64
	W, H    float64
	Set     uint8
	Key     uint32
	Color   uint8
	Hemming uint8
	Flash   FlashMode
}

// Surface accumulates one tick's worth of drawable primitives for a
// single renderer instance (spec.md §4.4, "Renderer Façade").
// [StateMachine.Process] appends to it; it is cleared only by
// [StateMachine.Reset] and by a display reset (clear-screen, a
// format-switching SWF, or management-data).
type Surface struct {
	Rectangles []Rectangle
	Polygons   []Polygon
	Glyphs     []Glyph
	DrcsImages []DrcsImage
}

// Reset empties the surface for reuse without reallocating its
// backing slices.
func (s *Surface) Reset() {
	s.Rectangles = s.Rectangles[:0]
	s.Polygons = s.Polygons[:0]
	s.Glyphs = s.Glyphs[:0]
	s.DrcsImages = s.DrcsImages[:0]
}

func (s *Surface) addRectangle(r Rectangle) {
	s.Rectangles = append(s.Rectangles, r)
}

func (s *Surface) addPolygons(ps []Polygon, color uint8, flash FlashMode) {
	for _, p := range ps {
		p.Color = color
		p.Flash = flash
		s.Polygons = append(s.Polygons, p)
	}
}

func (s *Surface) addGlyph(g Glyph) {
	s.Glyphs = append(s.Glyphs, g)
}

func (s *Surface) addDrcsImage(d DrcsImage) {
	s.DrcsImages = append(s.DrcsImages, d)
}
