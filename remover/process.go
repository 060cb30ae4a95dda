package remover

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/mnott/color-remover/util"
)

// jpegQuality JPEG 输出质量，不暴露为参数
const jpegQuality = 90

// Process 从 r 解码、处理全部像素、按 outExt 编码写入 w
// inExt/outExt 为不带点的小写扩展名，决定容器格式
// 输入输出都是 gif 时走逐帧动图管线，否则按单帧处理
func Process(r io.Reader, w io.Writer, inExt, outExt string, opt Options) error {
	if err := opt.Validate(); err != nil {
		return err
	}

	if inExt == "gif" && outExt == "gif" {
		return processGIF(r, w, opt)
	}

	img, _, err := image.Decode(r)
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}
	if opt.MaxSize > 0 {
		img = ResizeWithinMax(img, opt.MaxSize)
	}
	return encode(w, TransformFrame(img, opt), outExt)
}

// processGIF 动图管线：逐帧独立套用同一套参数，
// 保留每帧时长、disposal、循环次数和逻辑屏幕尺寸
func processGIF(r io.Reader, w io.Writer, opt Options) error {
	src, err := gif.DecodeAll(r)
	if err != nil {
		return fmt.Errorf("decode gif: %w", err)
	}

	out := &gif.GIF{
		Image:           make([]*image.Paletted, 0, len(src.Image)),
		Delay:           src.Delay,
		Disposal:        src.Disposal,
		LoopCount:       src.LoopCount,
		BackgroundIndex: src.BackgroundIndex,
		Config: image.Config{
			Width:  src.Config.Width,
			Height: src.Config.Height,
		},
	}

	for _, frame := range src.Image {
		tr := TransformFrame(frame, opt)
		// 调色板套用同样的规则，处理后的像素都能精确命中条目，无量化损失
		p := image.NewPaletted(frame.Bounds(), transformPalette(frame.Palette, opt))
		xdraw.Draw(p, p.Bounds(), tr, p.Bounds().Min, xdraw.Src)
		out.Image = append(out.Image, p)
	}

	if err := gif.EncodeAll(w, out); err != nil {
		return fmt.Errorf("encode gif: %w", err)
	}
	return nil
}

// transformPalette 对调色板条目执行像素级同款替换，alpha 保留
func transformPalette(pal color.Palette, opt Options) color.Palette {
	out := make(color.Palette, len(pal))
	for i, c := range pal {
		nc := color.NRGBAModel.Convert(c).(color.NRGBA)
		if opt.remove(color.RGBA{R: nc.R, G: nc.G, B: nc.B, A: 255}) {
			nc.R, nc.G, nc.B = opt.Replacement.R, opt.Replacement.G, opt.Replacement.B
		}
		out[i] = nc
	}
	return out
}

func encode(w io.Writer, img image.Image, ext string) error {
	var err error
	switch ext {
	case "png":
		err = png.Encode(w, img)
	case "jpg", "jpeg":
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality})
	case "gif":
		// 预先量化，避开 gif.Encode 默认的 Floyd-Steinberg 抖动
		p := image.NewPaletted(img.Bounds(), palette.Plan9)
		xdraw.Draw(p, p.Bounds(), img, img.Bounds().Min, xdraw.Src)
		err = gif.Encode(w, p, nil)
	case "bmp":
		err = bmp.Encode(w, img)
	default:
		return fmt.Errorf("unsupported output format %q", ext)
	}
	if err != nil {
		return fmt.Errorf("encode image: %w", err)
	}
	return nil
}

// ProcessFile 处理一个输入文件（本地路径或 http(s) URL）并写出结果
// 全部校验在创建输出文件之前完成，校验失败不会留下半成品
func ProcessFile(inputPath, outputPath string, opt Options) error {
	if err := opt.Validate(); err != nil {
		return err
	}

	var r io.Reader
	if isURL(inputPath) {
		data, err := util.Fetch(context.Background(), inputPath)
		if err != nil {
			return fmt.Errorf("fetch input: %w", err)
		}
		r = bytes.NewReader(data)
	} else {
		if _, err := os.Stat(inputPath); err != nil {
			return fmt.Errorf("%w: %s", ErrInputNotFound, inputPath)
		}
		f, err := os.Open(inputPath)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer func() {
			_ = f.Close()
		}()
		r = f
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		_ = out.Close()
	}()

	return Process(r, out, FileExt(inputPath), FileExt(outputPath), opt)
}

// FileExt 返回不带点的小写扩展名
func FileExt(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
