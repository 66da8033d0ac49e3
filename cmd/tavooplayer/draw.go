package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/aznhe21/tavoo-go/caption"
)

// whiteImage is the standard ebitengine vector-filling trick: a tiny
// opaque image whose 1x1 center subimage is passed to DrawTriangles so
// vertex colors alone control the fill, with no source texture.
var whiteImage = newWhiteImage()

func newWhiteImage() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img
}

func whiteSubImage() *ebiten.Image {
	return whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

// drawCaptionSurface composites one tick's accumulated caption
// primitives onto dst at the given display-box offset and scale,
// mapping caption.Surface's viewport-relative coordinates into dst's
// pixel space, resolving each [caption.DrcsImage] against drcs to blit
// its actual rasterized bitmap. Font rasterization itself is out of
// this module's scope (§1's external-collaborator boundary names "font
// rasterization, image codecs, and the host drawing surface"), so
// plain glyphs are composited here as solid cells in their resolved
// color — enough to exercise and visually verify the geometry/cursor/
// attribute pipeline without a bundled font.
func drawCaptionSurface(dst *ebiten.Image, s *caption.Surface, drcs *caption.DrcsFontCache, ox, oy, scale float64) {
	for _, r := range s.Rectangles {
		vector.DrawFilledRect(
			dst,
			float32(ox+r.X*scale), float32(oy+r.Y*scale),
			float32(r.W*scale), float32(r.H*scale),
			rgbaForColorCode(r.Color), false,
		)
	}
	for _, p := range s.Polygons {
		drawFilledPolygon(dst, p, ox, oy, scale)
	}
	for _, g := range s.Glyphs {
		drawHemmingOutline(dst, g.X, g.Y, g.W, g.H, g.Hemming, ox, oy, scale)
		vector.DrawFilledRect(
			dst,
			float32(ox+g.X*scale), float32(oy+g.Y*scale),
			float32(g.W*scale), float32(g.H*scale),
			rgbaForColorCode(g.Color), false,
		)
	}
	for _, d := range s.DrcsImages {
		drawDrcsImage(dst, drcs, d, ox, oy, scale)
	}
}

// drawDrcsImage resolves d against the font cache and blits its
// lazily-rasterized, cell-scaled bitmap; if the code was never loaded
// (cache miss), it falls back to the same solid-color cell a plain
// glyph would get, so a still-deferred DRCS arrival doesn't leave a
// hole in the display.
func drawDrcsImage(dst *ebiten.Image, drcs *caption.DrcsFontCache, d caption.DrcsImage, ox, oy, scale float64) {
	drawHemmingOutline(dst, d.X, d.Y, d.W, d.H, d.Hemming, ox, oy, scale)

	cellW, cellH := int(d.W*scale), int(d.H*scale)
	font := drcs.Get(d.Set, d.Key, int(d.W), int(d.H))
	if font == nil || cellW <= 0 || cellH <= 0 {
		vector.DrawFilledRect(
			dst,
			float32(ox+d.X*scale), float32(oy+d.Y*scale),
			float32(d.W*scale), float32(d.H*scale),
			rgbaForColorCode(d.Color), false,
		)
		return
	}
	handle := font.HandleFor(cellW, cellH, rgbaForColorCode(d.Color))
	var opts ebiten.DrawImageOptions
	opts.GeoM.Translate(ox+d.X*scale, oy+d.Y*scale)
	dst.DrawImage(handle, &opts)
}

// drawHemmingOutline draws the ORN outline a glyph/DRCS cell carries
// one pixel beyond its edges, in the effective hemming color resolved
// by the state machine and attached to the primitive.
func drawHemmingOutline(dst *ebiten.Image, x, y, w, h float64, hemming uint8, ox, oy, scale float64) {
	const pixel = 1
	vector.DrawFilledRect(
		dst,
		float32(ox+(x-pixel)*scale), float32(oy+(y-pixel)*scale),
		float32((w+2*pixel)*scale), float32((h+2*pixel)*scale),
		rgbaForColorCode(hemming), false,
	)
}

func drawFilledPolygon(dst *ebiten.Image, p caption.Polygon, ox, oy, scale float64) {
	if len(p.Points) < 3 {
		return
	}
	var path vector.Path
	path.MoveTo(float32(ox+p.Points[0].X*scale), float32(oy+p.Points[0].Y*scale))
	for _, pt := range p.Points[1:] {
		path.LineTo(float32(ox+pt.X*scale), float32(oy+pt.Y*scale))
	}
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	clr := rgbaForColorCode(p.Color)
	r := float32(clr.R) / 255
	g := float32(clr.G) / 255
	b := float32(clr.B) / 255
	a := float32(clr.A) / 255
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR, vs[i].ColorG, vs[i].ColorB, vs[i].ColorA = r, g, b, a
	}
	dst.DrawTriangles(vs, is, whiteSubImage(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}
