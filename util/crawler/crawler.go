package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"regexp"
	"strings"
)

// 抓取页面里的 <img>，把命中的图片下载到本地目录，
// 作为 color-remover 批量模式的输入
func main() {
	pageURL := flag.String("page", "", "要爬的页面 URL")
	saveDir := flag.String("dir", "./input", "图片保存目录")
	match := flag.String("match", "", "只下载 URL 包含该子串的图片（空 = 全部）")
	flag.Parse()

	if *pageURL == "" {
		flag.Usage()
		os.Exit(1)
	}

	err := os.MkdirAll(*saveDir, 0755)
	if err != nil {
		panic(err)
	}

	resp, err := http.Get(*pageURL)
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		panic(err)
	}

	// 匹配 img 标签中的 src
	re := regexp.MustCompile(`<img[^>]+src="([^">]+)"`)
	matches := re.FindAllSubmatch(body, -1)

	baseURL, _ := url.Parse(*pageURL)

	for _, m := range matches {
		imgURL := string(m[1])
		if *match != "" && !strings.Contains(imgURL, *match) {
			continue
		}

		// 补全相对路径
		u, err := url.Parse(imgURL)
		if err != nil {
			continue
		}
		fullURL := baseURL.ResolveReference(u).String()

		fmt.Println("下载:", fullURL)

		err = downloadFile(fullURL, *saveDir)
		if err != nil {
			fmt.Println("失败:", err)
		}
	}
}

func downloadFile(imgURL, saveDir string) error {
	resp, err := http.Get(imgURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status code %d", resp.StatusCode)
	}

	u, _ := url.Parse(imgURL)
	filename := path.Base(u.Path)
	filePath := path.Join(saveDir, filename)

	file, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = io.Copy(file, resp.Body)
	return err
}
