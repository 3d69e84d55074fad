package encode

import (
	"image"
	"image/color"
	"math"
)

// TerrariumEncoder writes PNG whose RGB already carries Terrarium-coded
// values (see ElevationToTerrarium). It exists so the format is selectable by name.
type TerrariumEncoder struct{}

func (e *TerrariumEncoder) Encode(img image.Image) ([]byte, error) {
	return encodePNG(img)
}

func (e *TerrariumEncoder) Format() string        { return "terrarium" }
func (e *TerrariumEncoder) MIMEType() string      { return "image/png" }
func (e *TerrariumEncoder) FileExtension() string { return ".png" }

// Terrarium stores v + 32768 as a 24-bit fixed-point number with 8
// fractional bits: R is the high byte, G the low byte, B the fraction.
const (
	terrariumOffset = 32768.0
	terrariumMax    = 65536.0 - 1.0/256
)

// ElevationToTerrarium encodes a value (meters) as a Terrarium pixel. Values
// are clamped to [-32768, 32767.996]; NaN and Inf become transparent.
func ElevationToTerrarium(v float64) color.RGBA {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return color.RGBA{}
	}
	fixed := uint32(math.Floor(math.Min(math.Max(v+terrariumOffset, 0), terrariumMax) * 256))
	return color.RGBA{
		R: uint8(fixed >> 16),
		G: uint8(fixed >> 8),
		B: uint8(fixed),
		A: 255,
	}
}

// TerrariumToElevation decodes a Terrarium pixel. Transparent pixels are NaN.
func TerrariumToElevation(c color.RGBA) float64 {
	if c.A == 0 {
		return math.NaN()
	}
	fixed := uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
	return float64(fixed)/256 - terrariumOffset
}
