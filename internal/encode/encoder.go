// Package encode turns rendered rasters into image files.
package encode

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
)

// Encoder encodes an image into file bytes.
type Encoder interface {
	// Encode encodes an image to bytes in the output format.
	Encode(img image.Image) ([]byte, error)

	// Format returns the format name (e.g. "jpeg", "png", "webp").
	Format() string

	// MIMEType returns the media type of the encoded bytes.
	MIMEType() string

	// FileExtension returns the appropriate file extension.
	FileExtension() string
}

// DefaultQuality is used when a lossy encoder is given a quality <= 0.
const DefaultQuality = 85

// NewEncoder creates an encoder for the given format and quality (1-100).
func NewEncoder(format string, quality int) (Encoder, error) {
	if quality <= 0 {
		quality = DefaultQuality
	}
	switch format {
	case "jpeg", "jpg":
		return &JPEGEncoder{Quality: quality}, nil
	case "png":
		return &PNGEncoder{}, nil
	case "webp":
		return &WebPEncoder{Quality: quality, Lossless: quality >= 100}, nil
	case "terrarium":
		return &TerrariumEncoder{}, nil
	default:
		return nil, fmt.Errorf("unsupported image format: %q (supported: jpeg, png, webp, terrarium)", format)
	}
}

// DecodeImage decodes bytes produced by the encoder for format.
func DecodeImage(data []byte, format string) (image.Image, error) {
	r := bytes.NewReader(data)
	switch format {
	case "png", "terrarium":
		return png.Decode(r)
	case "jpeg", "jpg":
		return jpeg.Decode(r)
	case "webp":
		return decodeWebP(r)
	default:
		return nil, fmt.Errorf("unsupported decode format: %q", format)
	}
}

// PNGEncoder encodes lossless PNG, favouring speed over size.
type PNGEncoder struct{}

func (e *PNGEncoder) Encode(img image.Image) ([]byte, error) {
	return encodePNG(img)
}

func (e *PNGEncoder) Format() string        { return "png" }
func (e *PNGEncoder) MIMEType() string      { return "image/png" }
func (e *PNGEncoder) FileExtension() string { return ".png" }

// JPEGEncoder encodes JPEG. Transparent cells come out black.
type JPEGEncoder struct {
	Quality int
}

func (e *JPEGEncoder) Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: e.Quality}); err != nil {
		return nil, fmt.Errorf("jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *JPEGEncoder) Format() string        { return "jpeg" }
func (e *JPEGEncoder) MIMEType() string      { return "image/jpeg" }
func (e *JPEGEncoder) FileExtension() string { return ".jpg" }

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	enc := &png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("png: %w", err)
	}
	return buf.Bytes(), nil
}
