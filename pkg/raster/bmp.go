package raster

import (
	"fmt"
	"io"

	"golang.org/x/image/bmp"
)

// WriteBMP encodes the mask as a grayscale BMP, ink black and free space
// white.
func WriteBMP(w io.Writer, m *Mask) error {
	if err := bmp.Encode(w, m.Gray()); err != nil {
		return fmt.Errorf("failed to encode mask: %w", err)
	}
	return nil
}
