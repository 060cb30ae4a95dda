package remover

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// BatchProcess 批量处理 srcDir 下的所有图片到 dstDir，文件名保持不变
// （webp 输入无编码器，输出改为 png）
// 单个文件失败只记录日志并继续，目录级错误才返回
func BatchProcess(srcDir, dstDir string, opt Options) error {
	if err := opt.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(dstDir, os.ModePerm); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	return filepath.Walk(srcDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		ext := FileExt(path)
		switch ext {
		case "png", "jpg", "jpeg", "gif", "bmp", "webp":
		default:
			return nil
		}

		outName := info.Name()
		if ext == "webp" {
			outName = strings.TrimSuffix(outName, filepath.Ext(outName)) + ".png"
		}

		if err := ProcessFile(path, filepath.Join(dstDir, outName), opt); err != nil {
			log.Printf("faild to process %s, %v", info.Name(), err)
		}
		return nil
	})
}
