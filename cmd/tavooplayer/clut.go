package main

import "image/color"

// defaultCLUT is ARIB STD-B24's default 8-color lookup table, indexed
// by a color code's low 3 bits (so p1 values 8-15 fold onto entries
// 0-7). Only the default palette is
// implemented here; designating a custom CLUT is carried by a bitmap
// caption data unit, which is out of scope for this build. Palette
// groups above the default (color code's paletteIndex nibble) fall
// back to the same 8 entries, since no other palette is ever
// designated without the data unit this build doesn't decode.
var defaultCLUT = [8]color.RGBA{
	{0, 0, 0, 255},       // 0: black
	{255, 0, 0, 255},     // 1: red
	{0, 255, 0, 255},     // 2: green
	{255, 255, 0, 255},   // 3: yellow
	{0, 0, 255, 255},     // 4: blue
	{255, 0, 255, 255},   // 5: magenta
	{0, 255, 255, 255},   // 6: cyan
	{255, 255, 255, 255}, // 7: white
}

// rgbaForColorCode resolves a caption.Rectangle/Polygon/Glyph/DrcsImage
// Color byte (paletteIndex<<4 | p1) to an RGBA value.
func rgbaForColorCode(code uint8) color.RGBA {
	return defaultCLUT[code&0x7]
}
