package storage

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

// DownscaleJPEG decodes a photo (honouring EXIF orientation), fits it inside maxSide×maxSide and
// re-encodes it as JPEG. Images already within bounds are still re-encoded so EXIF metadata
// (including location) is dropped.
func DownscaleJPEG(data []byte, maxSide int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if maxSide > 0 {
		b := img.Bounds()
		if b.Dx() > maxSide || b.Dy() > maxSide {
			img = imaging.Fit(img, maxSide, maxSide, imaging.Lanczos)
		}
	}
	buf := &bytes.Buffer{}
	if err := imaging.Encode(buf, img, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), nil
}
