package imageprocessor

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// ImageSize represents a target output size.
type ImageSize struct {
	Name   string
	Width  int
	Height int
}

var (
	SizeThumbnail = ImageSize{Name: "thumbnail", Width: 150, Height: 150}
	SizeMedium    = ImageSize{Name: "medium", Width: 800, Height: 800}
)

// Processor handles image decoding and resizing for uploads.
type Processor struct {
	quality int // JPEG quality (1-100)
}

func NewProcessor(quality int) *Processor {
	if quality <= 0 || quality > 100 {
		quality = 85
	}
	return &Processor{quality: quality}
}

// Decode reads an image and reports its format. The jpeg, png, gif and
// webp decoders are registered.
func (p *Processor) Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	return img, format, nil
}

// Resize scales an image to fit within size, preserving aspect ratio.
// Images already smaller than the target are returned unchanged.
func (p *Processor) Resize(img image.Image, size ImageSize) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w <= size.Width && h <= size.Height {
		return img
	}

	ratio := float64(w) / float64(h)
	targetW, targetH := size.Width, size.Height
	if ratio > 1 {
		targetH = int(float64(size.Width) / ratio)
	} else {
		targetW = int(float64(size.Height) * ratio)
	}

	dst := image.NewRGBA(image.Rect(0, 0, targetW, targetH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

// EncodeJPEG writes the image as JPEG with the configured quality.
func (p *Processor) EncodeJPEG(img image.Image) (*bytes.Buffer, error) {
	buf := &bytes.Buffer{}
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: p.quality}); err != nil {
		return nil, fmt.Errorf("failed to encode jpeg: %w", err)
	}
	return buf, nil
}

// EncodePNG writes the image as PNG.
func (p *Processor) EncodePNG(img image.Image) (*bytes.Buffer, error) {
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf, nil
}

// Thumbnail decodes, scales down and re-encodes an image as a JPEG
// thumbnail in one step.
func (p *Processor) Thumbnail(r io.Reader) (*bytes.Buffer, error) {
	img, _, err := p.Decode(r)
	if err != nil {
		return nil, err
	}
	return p.EncodeJPEG(p.Resize(img, SizeThumbnail))
}
