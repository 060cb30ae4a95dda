package remover

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// Policy 本次处理的移除规则
type Policy int

const (
	// PolicyKeepBlackWhite 只保留接近黑白的像素，其余全部替换（默认）
	PolicyKeepBlackWhite Policy = iota
	// PolicyTargetColor 移除指定的目标颜色
	PolicyTargetColor
)

// DefaultTolerance 默认容差
const DefaultTolerance = 30

// Options 一次处理的全部参数
type Options struct {
	Policy      Policy
	Target      color.RGBA // PolicyTargetColor 时的目标颜色
	Replacement color.RGBA // 被移除像素的替换颜色
	Tolerance   int        // 0-255
	MaxSize     int        // >0 时静态图先等比缩放到最长边 <= MaxSize
}

// Validate 校验参数，任何文件 IO 之前调用
func (o Options) Validate() error {
	if o.Tolerance < 0 || o.Tolerance > 255 {
		return fmt.Errorf("%w: %d (must be 0-255)", ErrInvalidTolerance, o.Tolerance)
	}
	return nil
}

// remove 判断一个像素是否应被替换
func (o Options) remove(px color.RGBA) bool {
	if o.Policy == PolicyTargetColor {
		return Matches(px, o.Target, o.Tolerance)
	}
	return !IsNearBlackOrWhite(px, o.Tolerance)
}

// TransformFrame 对单帧执行颜色移除，返回同尺寸的新 NRGBA 帧，不修改输入
// 替换只作用于 RGB 三个通道，原 alpha 原样保留（无 alpha 的源按 255 处理）
func TransformFrame(src image.Image, opt Options) *image.NRGBA {
	dst := cloneNRGBA(src)

	for i := 0; i < len(dst.Pix); i += 4 {
		px := color.RGBA{R: dst.Pix[i], G: dst.Pix[i+1], B: dst.Pix[i+2], A: 255}
		if opt.remove(px) {
			dst.Pix[i] = opt.Replacement.R
			dst.Pix[i+1] = opt.Replacement.G
			dst.Pix[i+2] = opt.Replacement.B
		}
	}
	return dst
}

// cloneNRGBA 转为 NRGBA 并且总是复制，保证调用方的帧不被修改
func cloneNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(b)
	draw.Draw(dst, b, img, b.Min, draw.Src)
	return dst
}
