// Package media decodes, probes and encodes the hub's media without
// touching the renderer.
package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

var ErrUnsupported = errors.New("media: unsupported format")

// Decode picks the decoder from name's extension. The tga decoder accepts
// almost any input, so it is never reached by sniffing.
func Decode(name string, r io.Reader) (image.Image, error) {
	var (
		img image.Image
		err error
	)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		img, err = png.Decode(r)
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(r)
	case ".gif":
		img, err = gif.Decode(r)
	case ".webp":
		img, err = webp.Decode(r)
	case ".tga":
		img, err = tga.Decode(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, name)
	}
	if err != nil {
		return nil, fmt.Errorf("media: decode %s: %w", name, err)
	}
	return img, nil
}

// DecodeRef decodes data read from ref. URLs are matched by their path, and
// a name without a known extension falls back to sniffing png, jpeg, gif
// and webp.
func DecodeRef(ref string, data []byte) (image.Image, error) {
	name := ref
	if u, err := url.Parse(ref); err == nil && u.Path != "" {
		name = u.Path
	}
	if IsImage(name) {
		return Decode(name, bytes.NewReader(data))
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnsupported, ref, err)
	}
	return img, nil
}

// IsImage reports whether Decode handles name.
func IsImage(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp", ".tga":
		return true
	}
	return false
}

// Fit scales src down to fit inside maxW x maxH, keeping its aspect ratio.
// Images that already fit are returned unchanged.
func Fit(src image.Image, maxW, maxH int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 || maxW <= 0 || maxH <= 0 || (w <= maxW && h <= maxH) {
		return src
	}

	scale := min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	dw := max(1, int(float64(w)*scale))
	dh := max(1, int(float64(h)*scale))

	dst := image.NewNRGBA(image.Rect(0, 0, dw, dh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}
