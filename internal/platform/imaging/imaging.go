package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register decoder
	"image/jpeg"
	_ "image/png" // register decoder
	"io"
	"net/http"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register decoder
)

// SniffLen is how many leading bytes Detect needs.
const SniffLen = 512

var ErrUnsupportedFormat = errors.New("unsupported image format")

// allowed maps sniffed MIME types to the extension used in storage keys.
var allowed = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Detect sniffs the content type from the first bytes of a file and
// returns it with its canonical extension.
func Detect(head []byte) (contentType, ext string, err error) {
	contentType = http.DetectContentType(head)
	ext, ok := allowed[contentType]
	if !ok {
		return "", "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, contentType)
	}
	return contentType, ext, nil
}

// Dimensions reads width and height without decoding pixel data.
func Dimensions(r io.Reader) (int, int, error) {
	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return 0, 0, fmt.Errorf("decode image config: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

// Thumbnail decodes r and returns a JPEG whose longest side is at most
// maxSide. Smaller images are re-encoded at their original size.
func Thumbnail(r io.Reader, maxSide int) ([]byte, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := src.Bounds()
	w, h := fit(bounds.Dx(), bounds.Dy(), maxSide)

	// Flatten onto white so transparent PNG/GIF/WebP don't turn black in JPEG.
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 80}); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

func fit(w, h, maxSide int) (int, int) {
	if w <= 0 || h <= 0 {
		return 1, 1
	}
	if w <= maxSide && h <= maxSide {
		return w, h
	}
	if w >= h {
		return maxSide, max(1, h*maxSide/w)
	}
	return max(1, w*maxSide/h), maxSide
}
