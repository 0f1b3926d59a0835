package images

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// ToRGB returns an opaque copy of src anchored at the origin. Alpha is
// discarded, not composited: non-premultiplied sources (NRGBA, NRGBA64 and
// palettes) keep their stored color channels, so a fully transparent pixel
// keeps its color instead of turning black. Remaining kinds are drawn as-is.
func ToRGB(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))

	switch s := src.(type) {
	case *image.NRGBA:
		for y := 0; y < b.Dy(); y++ {
			for x := 0; x < b.Dx(); x++ {
				i := s.PixOffset(b.Min.X+x, b.Min.Y+y)
				j := dst.PixOffset(x, y)
				copy(dst.Pix[j:j+3], s.Pix[i:i+3])
			}
		}
	case *image.NRGBA64:
		// High byte of each big-endian 16-bit channel.
		for y := 0; y < b.Dy(); y++ {
			for x := 0; x < b.Dx(); x++ {
				i := s.PixOffset(b.Min.X+x, b.Min.Y+y)
				j := dst.PixOffset(x, y)
				dst.Pix[j+0] = s.Pix[i+0]
				dst.Pix[j+1] = s.Pix[i+2]
				dst.Pix[j+2] = s.Pix[i+4]
			}
		}
	case *image.Paletted:
		lut := paletteRGB(s.Palette)
		for y := 0; y < b.Dy(); y++ {
			for x := 0; x < b.Dx(); x++ {
				idx := int(s.Pix[s.PixOffset(b.Min.X+x, b.Min.Y+y)])
				if idx >= len(lut) {
					continue
				}
				j := dst.PixOffset(x, y)
				copy(dst.Pix[j:j+3], lut[idx][:])
			}
		}
	default:
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	}

	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return dst
}

// paletteRGB resolves every palette entry to its non-premultiplied RGB.
// The PNG decoder stores tRNS entries as color.NRGBA, which are used
// verbatim.
func paletteRGB(p color.Palette) [][3]uint8 {
	lut := make([][3]uint8, len(p))
	for i, c := range p {
		n, ok := c.(color.NRGBA)
		if !ok {
			n = color.NRGBAModel.Convert(c).(color.NRGBA)
		}
		lut[i] = [3]uint8{n.R, n.G, n.B}
	}
	return lut
}

// Downscale shrinks img so its longest side is at most maxDim pixels,
// keeping the aspect ratio. img is returned unchanged when it already fits
// or maxDim is not positive.
func Downscale(img *image.RGBA, maxDim int) *image.RGBA {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		return img
	}

	scale := float64(maxDim) / float64(max(w, h))
	nw := max(1, int(math.Round(float64(w)*scale)))
	nh := max(1, int(math.Round(float64(h)*scale)))

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}
