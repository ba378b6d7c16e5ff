package clipboard

import (
	"bytes"
	"errors"
	"image"
	"image/png"
)

// EncodePNG returns img as PNG bytes, the format published for image copies.
func EncodePNG(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, errors.New("no image to copy")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
