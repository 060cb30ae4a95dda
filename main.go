package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"

	"github.com/robfig/cron/v3"

	"github.com/mnott/color-remover/remover"
	"github.com/mnott/color-remover/server"
)

func main() {
	var (
		searchFlag    string
		replaceFlag   string
		bwFlag        bool
		toleranceFlag int
		maxSizeFlag   int
		serveFlag     string
		cronFlag      string
	)

	flag.StringVar(&searchFlag, "search", "", "要移除的颜色，R,G,B 或 #RRGGBB 格式")
	flag.StringVar(&searchFlag, "s", "", "同 -search")
	flag.StringVar(&replaceFlag, "replace", "255,255,255", "替换颜色，R,G,B 或 #RRGGBB 格式")
	flag.StringVar(&replaceFlag, "r", "255,255,255", "同 -replace")
	flag.BoolVar(&bwFlag, "bw-only", false, "只保留接近黑白的像素，移除其余颜色")
	flag.BoolVar(&bwFlag, "bw", false, "同 -bw-only")
	flag.BoolVar(&bwFlag, "b", false, "同 -bw-only")
	flag.IntVar(&toleranceFlag, "tolerance", remover.DefaultTolerance, "颜色匹配容差 (0-255)")
	flag.IntVar(&toleranceFlag, "t", remover.DefaultTolerance, "同 -tolerance")
	flag.IntVar(&maxSizeFlag, "max-size", 0, "静态图片最长边上限，0 表示不缩放")
	flag.StringVar(&serveFlag, "serve", "", "以 HTTP 服务方式运行，如 :8080")
	flag.StringVar(&cronFlag, "cron", "", "目录批量模式的定时表达式，如 @every 10m")
	flag.Usage = usage
	flag.Parse()

	if serveFlag != "" {
		if err := server.Run(serveFlag); err != nil {
			fatal(err)
		}
		return
	}

	// 所有校验都在任何文件 IO 之前
	opt, err := buildOptions(searchFlag, replaceFlag, bwFlag, toleranceFlag, maxSizeFlag)
	if err != nil {
		fatal(err)
	}

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}
	input, output := flag.Arg(0), flag.Arg(1)

	if fi, err := os.Stat(input); err == nil && fi.IsDir() {
		runBatch(input, output, opt, cronFlag)
		return
	}

	if err := remover.ProcessFile(input, output, opt); err != nil {
		fatal(err)
	}
	log.Println("Done! Output:", output)
}

func buildOptions(search, replace string, bwOnly bool, tolerance, maxSize int) (remover.Options, error) {
	opt := remover.Options{
		Replacement: color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Tolerance:   tolerance,
		MaxSize:     maxSize,
	}

	if replace != "" {
		rc, err := remover.ParseColor(replace)
		if err != nil {
			return opt, err
		}
		opt.Replacement = rc
	}

	// -bw-only 优先于 -search，默认模式与 -bw-only 共用同一条规则
	if search != "" && !bwOnly {
		target, err := remover.ParseColor(search)
		if err != nil {
			return opt, err
		}
		opt.Policy = remover.PolicyTargetColor
		opt.Target = target
	}

	return opt, opt.Validate()
}

func runBatch(srcDir, dstDir string, opt remover.Options, cronSpec string) {
	if cronSpec == "" {
		if err := remover.BatchProcess(srcDir, dstDir, opt); err != nil {
			fatal(err)
		}
		log.Println("Done! Output dir:", dstDir)
		return
	}

	c := cron.New()
	_, err := c.AddFunc(cronSpec, func() {
		if err := remover.BatchProcess(srcDir, dstDir, opt); err != nil {
			log.Println("batch run failed:", err)
		}
	})
	if err != nil {
		fatal(fmt.Errorf("invalid cron spec %q: %w", cronSpec, err))
	}
	log.Printf("scheduled batch %s -> %s (%s)", srcDir, dstDir, cronSpec)
	c.Run()
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: %s [options] input_file output_file

Removes or replaces colors in an image (PNG, JPG, GIF, BMP, WebP in).
When input_file is a directory, every image inside is processed into
output_file (treated as a directory).

Options:
`, os.Args[0])
	flag.PrintDefaults()
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}
