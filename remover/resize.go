package remover

import (
	"image"

	"github.com/nfnt/resize"
)

// ResizeWithinMax 等比缩放，使最长边 <= maxSize
// 尺寸已满足或 maxSize <= 0 时原样返回
func ResizeWithinMax(img image.Image, maxSize int) image.Image {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	longest := max(w, h)

	if maxSize <= 0 || longest <= maxSize {
		return img
	}

	scale := float64(maxSize) / float64(longest)
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)

	return resize.Resize(uint(newW), uint(newH), img, resize.Lanczos3)
}
