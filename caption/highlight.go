package caption

// highlightBit names the four edges an HLC value can select (spec.md
// §4.2, "Highlight/underline polygons"). bit0 doubles as the
// underline bit: drawing a strip along the bottom edge of the cell
// *is* the underline, which is exactly why ORing in 0b0001 for
// underline and setting the bottom bit of HLC converge on the same
// polygon set (spec.md §8's masked-equality invariant).
const (
	hlBottom uint8 = 1 << iota // underline
	hlRight
	hlTop
	hlLeft
)

// highlightEdges returns, in a fixed l/r/t/b coordinate frame derived
// from the cursor position (x,y) and cell size (cw,ch), the inset
// coordinates spec.md §4.2 names: l=x, lw=x+1, r=x+cw, rw=r-1,
// t=y-ch, tw=t+1, b=y, bw=b-1.
type highlightEdges struct {
	l, lw, r, rw float64
	t, tw, b, bw float64
}

func computeHighlightEdges(x, y, cw, ch int) highlightEdges {
	fx, fy, fcw, fch := float64(x), float64(y), float64(cw), float64(ch)
	return highlightEdges{
		l: fx, lw: fx + 1, r: fx + fcw, rw: fx + fcw - 1,
		t: fy - fch, tw: fy - fch + 1, b: fy, bw: fy - 1,
	}
}

// HighlightPolygons builds the filled polygons for an HLC value and
// underline flag at cursor (x,y) with cell size (cw,ch), inset per
// computeHighlightEdges.
//
// Each of the four possible edges (left, right, top, bottom/underline)
// is emitted as an independent full-span quad strip. A composite mask
// (e.g. top+right) is simply the union of its set edges rather than
// one merged connected contour — same filled pixels, different polygon
// topology/count; see DESIGN.md.
func HighlightPolygons(hlc uint8, underline bool, x, y, cw, ch int) []Polygon {
	mask := hlc & 0xF
	if underline {
		mask |= hlBottom
	}
	if mask == 0 {
		return nil
	}
	return polygonsForMask(mask, x, y, cw, ch)
}

func polygonsForMask(mask uint8, x, y, cw, ch int) []Polygon {
	e := computeHighlightEdges(x, y, cw, ch)
	var polys []Polygon
	if mask&hlLeft != 0 {
		polys = append(polys, Polygon{Points: []Point{
			{e.l, e.t}, {e.lw, e.t}, {e.lw, e.b}, {e.l, e.b},
		}})
	}
	if mask&hlRight != 0 {
		polys = append(polys, Polygon{Points: []Point{
			{e.rw, e.t}, {e.r, e.t}, {e.r, e.b}, {e.rw, e.b},
		}})
	}
	if mask&hlTop != 0 {
		polys = append(polys, Polygon{Points: []Point{
			{e.l, e.t}, {e.r, e.t}, {e.r, e.tw}, {e.l, e.tw},
		}})
	}
	if mask&hlBottom != 0 {
		polys = append(polys, Polygon{Points: []Point{
			{e.l, e.bw}, {e.r, e.bw}, {e.r, e.b}, {e.l, e.b},
		}})
	}
	return polys
}
