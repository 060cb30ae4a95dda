package remover

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

var (
	ErrInvalidColorFormat = errors.New("invalid color format")
	ErrInvalidTolerance   = errors.New("tolerance out of range")
	ErrInputNotFound      = errors.New("input file not found")
)

// ParseColor 解析颜色字符串
// 支持两种格式："R,G,B"（十进制，各 0-255）和 "#RRGGBB"（必须恰好 7 个字符）
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "#") {
		if len(s) != 7 {
			return color.RGBA{}, fmt.Errorf("%w: hex color must be #RRGGBB, got %q", ErrInvalidColorFormat, s)
		}
		r, err1 := strconv.ParseUint(s[1:3], 16, 8)
		g, err2 := strconv.ParseUint(s[3:5], 16, 8)
		b, err3 := strconv.ParseUint(s[5:7], 16, 8)
		if err1 != nil || err2 != nil || err3 != nil {
			return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColorFormat, s)
		}
		return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return color.RGBA{}, fmt.Errorf("%w: %q (want R,G,B or #RRGGBB)", ErrInvalidColorFormat, s)
	}
	var ch [3]uint8
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v < 0 || v > 255 {
			return color.RGBA{}, fmt.Errorf("%w: %q (channel values must be 0-255)", ErrInvalidColorFormat, s)
		}
		ch[i] = uint8(v)
	}
	return color.RGBA{R: ch[0], G: ch[1], B: ch[2], A: 255}, nil
}
