package encode

import (
	"bytes"
	"fmt"
	"image"
	"io"

	"github.com/gen2brain/webp"
)

// WebPEncoder encodes WebP without cgo: a system libwebp is used through
// purego when present, otherwise the bundled WASM build.
// Heat maps are mostly flat colour, so Lossless often beats lossy on size.
type WebPEncoder struct {
	Quality  int
	Lossless bool
}

func (e *WebPEncoder) Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	opts := webp.Options{
		Lossless: e.Lossless,
		Quality:  e.Quality,
	}
	if err := webp.Encode(&buf, img, opts); err != nil {
		return nil, fmt.Errorf("webp: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *WebPEncoder) Format() string        { return "webp" }
func (e *WebPEncoder) MIMEType() string      { return "image/webp" }
func (e *WebPEncoder) FileExtension() string { return ".webp" }

func decodeWebP(r io.Reader) (image.Image, error) {
	return webp.Decode(r)
}
