package remover

import (
	"image/color"
	"math"
)

// distScale 把单通道 tolerance 换算到欧氏距离空间
// 固定常量，不可配置
const distScale = 2.5

// Matches 判断像素是否命中目标颜色（容差内）
// 两种情况任一成立即命中：
//  1. 三通道最大差值 <= tolerance
//  2. RGB 欧氏距离 <= tolerance * 2.5
func Matches(px, target color.RGBA, tolerance int) bool {
	dr := absDiff(px.R, target.R)
	dg := absDiff(px.G, target.G)
	db := absDiff(px.B, target.B)

	maxDiff := max(dr, dg, db)
	dist := math.Sqrt(float64(dr*dr + dg*dg + db*db))

	return maxDiff <= tolerance || dist <= float64(tolerance)*distScale
}

// IsNearBlackOrWhite 判断像素是否接近纯黑或纯白
// 三个通道必须同时接近 0（黑）或同时接近 255（白），
// 按端点整体判断：(5, 250, 5) 既不算黑也不算白
func IsNearBlackOrWhite(px color.RGBA, tolerance int) bool {
	nearBlack := int(px.R) <= tolerance && int(px.G) <= tolerance && int(px.B) <= tolerance
	nearWhite := int(px.R) >= 255-tolerance && int(px.G) >= 255-tolerance && int(px.B) >= 255-tolerance
	return nearBlack || nearWhite
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a) - int(b)
	}
	return int(b) - int(a)
}
