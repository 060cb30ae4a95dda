package util

import (
	"bytes"
	"context"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	nhttp "github.com/mnott/color-remover/util/http"
)

// Fetch 通过 HTTP 拉取远程文件的原始字节
func Fetch(ctx context.Context, url string) ([]byte, error) {
	var buf bytes.Buffer
	err := nhttp.NewHTTPClient().DoHTTPRequest(ctx, &nhttp.RequestParam{
		RequestURI: url,
		Method:     http.MethodGet,
		Response:   &buf,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DownloadImage 下载并解码图片
func DownloadImage(url string) (image.Image, error) {
	data, err := Fetch(context.Background(), url)
	if err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}

// OpenImage 打开本地图片
func OpenImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = file.Close()
	}()

	img, _, err := image.Decode(file)
	return img, err
}
