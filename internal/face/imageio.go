package face

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	// decoders for uploads that arrive in other formats
	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

var jpegSOI = []byte{0xFF, 0xD8, 0xFF}

const jpegQuality = 95

// ToJPEG returns img unchanged when it is already a JPEG, otherwise decodes
// it (PNG, GIF, WebP, BMP) and re-encodes it as JPEG. dlib's in-memory
// loader only understands JPEG.
func ToJPEG(img []byte) ([]byte, error) {
	if bytes.HasPrefix(img, jpegSOI) {
		return img, nil
	}

	decoded, format, err := image.Decode(bytes.NewReader(img))
	if err != nil {
		return nil, fmt.Errorf("unsupported image: %w", err)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, decoded, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to re-encode %s as jpeg: %w", format, err)
	}
	return buf.Bytes(), nil
}
