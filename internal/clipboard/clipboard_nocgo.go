//go:build !cgo

package clipboard

import (
	"errors"
	"image"
)

var errCGODisabled = errors.New("clipboard operations require cgo support")

func WriteImage(img image.Image) error {
	if _, err := EncodePNG(img); err != nil {
		return err
	}
	return errCGODisabled
}

func ReadText() (string, error) {
	return "", errCGODisabled
}
