package server

import (
	"bytes"
	"fmt"
	"image/color"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mnott/color-remover/remover"
)

// New 构建 HTTP 服务，把颜色移除管线暴露为接口
func New() *gin.Engine {
	r := gin.Default()
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/api/remove", handleRemove)
	return r
}

// Run 在 addr 上启动服务，阻塞
func Run(addr string) error {
	return New().Run(addr)
}

// handleRemove 接收 multipart 的 image 文件，表单字段与 CLI 同名：
// search、replace、bw、tolerance、max_size
// 响应体为处理后的图片字节（gif 进 gif 出，webp 进 png 出）
func handleRemove(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing image file"})
		return
	}

	opt, err := optionsFromForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer func() {
		_ = f.Close()
	}()

	inExt := remover.FileExt(fh.Filename)
	outExt := inExt
	switch inExt {
	case "gif", "png", "jpg", "jpeg", "bmp":
	default:
		outExt = "png"
	}

	var buf bytes.Buffer
	if err := remover.Process(f, &buf, inExt, outExt, opt); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, mimeType(outExt), buf.Bytes())
}

func optionsFromForm(c *gin.Context) (remover.Options, error) {
	opt := remover.Options{
		Replacement: color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Tolerance:   remover.DefaultTolerance,
	}

	if s := c.PostForm("replace"); s != "" {
		rc, err := remover.ParseColor(s)
		if err != nil {
			return opt, err
		}
		opt.Replacement = rc
	}
	if s := c.PostForm("search"); s != "" && c.PostForm("bw") == "" {
		target, err := remover.ParseColor(s)
		if err != nil {
			return opt, err
		}
		opt.Policy = remover.PolicyTargetColor
		opt.Target = target
	}
	if s := c.PostForm("tolerance"); s != "" {
		t, err := strconv.Atoi(s)
		if err != nil {
			return opt, fmt.Errorf("%w: %q", remover.ErrInvalidTolerance, s)
		}
		opt.Tolerance = t
	}
	if s := c.PostForm("max_size"); s != "" {
		m, err := strconv.Atoi(s)
		if err != nil || m < 0 {
			return opt, fmt.Errorf("invalid max_size %q", s)
		}
		opt.MaxSize = m
	}

	return opt, opt.Validate()
}

func mimeType(ext string) string {
	switch ext {
	case "gif":
		return "image/gif"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "bmp":
		return "image/bmp"
	default:
		return "image/png"
	}
}
