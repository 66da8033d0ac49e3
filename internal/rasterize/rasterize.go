// Package rasterize turns a decoded DRCS alpha bitmap into a drawable
// ebitengine image, scaled to the caption renderer's current cell
// size with nearest-neighbor sampling so DRCS's blocky pixel-art edges
// survive the resize undistorted.
package rasterize

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/draw"
)

// Alpha decodes a DRCS pattern into a per-pixel [0,1] alpha bitmap at
// its native resolution (no scaling). bpp must be 1 or 2; callers
// derive it from the font's depth (depth 0 → 1bpp, depth 2 → 2bpp).
func Alpha(width, height, bpp int, pattern []byte) *image.Alpha {
	img := image.NewAlpha(image.Rect(0, 0, width, height))
	maxVal := (1 << bpp) - 1
	for i := 0; i < width*height; i++ {
		p := i * bpp
		byteIdx := p / 8
		if byteIdx >= len(pattern) {
			break
		}
		shift := 8 - bpp - (p % 8)
		v := (pattern[byteIdx] >> uint(shift)) & byte(maxVal)
		a := uint8((int(v) * 255) / maxVal)
		x, y := i%width, i/width
		img.SetAlpha(x, y, color.Alpha{A: a})
	}
	return img
}

// ScaleToCell nearest-neighbor scales src (as produced by [Alpha]) to
// the given destination cell size and tints it with fg, returning a
// freshly rendered ebitengine image ready to draw with
// [ebiten.Image.DrawImage].
// Callers are expected to cache the result; this is the "lazily
// generate once" half of [caption.RasterizedFont]'s contract.
func ScaleToCell(src *image.Alpha, cellW, cellH int, fg color.Color) *ebiten.Image {
	if cellW <= 0 {
		cellW = 1
	}
	if cellH <= 0 {
		cellH = 1
	}
	tinted := image.NewRGBA(src.Bounds())
	r, g, b, _ := fg.RGBA()
	for y := src.Bounds().Min.Y; y < src.Bounds().Max.Y; y++ {
		for x := src.Bounds().Min.X; x < src.Bounds().Max.X; x++ {
			a := src.AlphaAt(x, y).A
			tinted.Set(x, y, color.NRGBA{
				R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: a,
			})
		}
	}

	dstImg := image.NewRGBA(image.Rect(0, 0, cellW, cellH))
	draw.NearestNeighbor.Scale(dstImg, dstImg.Bounds(), tinted, tinted.Bounds(), draw.Over, nil)

	return ebiten.NewImageFromImage(dstImg)
}
