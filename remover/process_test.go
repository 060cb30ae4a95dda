package remover

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/segmentio/ksuid"

	"github.com/mnott/color-remover/util"
)

func encodePNG(t *testing.T, img image.Image) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode error = %v", err)
	}
	return &buf
}

func TestProcessPNG(t *testing.T) {
	src := newTestFrame([]color.NRGBA{
		{R: 255, G: 0, B: 0, A: 255},
		{R: 0, G: 0, B: 0, A: 255},
	})
	opt := Options{
		Policy:      PolicyTargetColor,
		Target:      rgb(255, 0, 0),
		Replacement: rgb(255, 255, 255),
		Tolerance:   0,
	}

	var out bytes.Buffer
	if err := Process(encodePNG(t, src), &out, "png", "png", opt); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	got, err := png.Decode(&out)
	if err != nil {
		t.Fatalf("decode output error = %v", err)
	}
	if got.Bounds() != src.Bounds() {
		t.Errorf("bounds = %v, want %v", got.Bounds(), src.Bounds())
	}

	r, g, b, _ := got.At(0, 0).RGBA()
	if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
		t.Errorf("pixel (0,0) = (%d,%d,%d), want white", r>>8, g>>8, b>>8)
	}
	r, g, b, _ = got.At(1, 0).RGBA()
	if r>>8 != 0 || g>>8 != 0 || b>>8 != 0 {
		t.Errorf("pixel (1,0) = (%d,%d,%d), want black", r>>8, g>>8, b>>8)
	}
}

func TestProcessGIFRoundTrip(t *testing.T) {
	defer util.Trace("process gif")()

	pal := color.Palette{
		color.RGBA{A: 255},                         // 黑
		color.RGBA{R: 255, G: 255, B: 255, A: 255}, // 白
		color.RGBA{R: 255, A: 255},                 // 红
	}

	src := &gif.GIF{
		Delay:     []int{10, 20, 30},
		LoopCount: 2,
	}
	for i := 0; i < 3; i++ {
		frame := image.NewPaletted(image.Rect(0, 0, 2, 2), pal)
		frame.SetColorIndex(0, 0, 2) // 红
		frame.SetColorIndex(1, 0, 1) // 白
		frame.SetColorIndex(0, 1, 0) // 黑
		frame.SetColorIndex(1, 1, uint8(i))
		src.Image = append(src.Image, frame)
	}

	var in bytes.Buffer
	if err := gif.EncodeAll(&in, src); err != nil {
		t.Fatalf("gif encode error = %v", err)
	}

	opt := Options{
		Policy:      PolicyKeepBlackWhite,
		Replacement: rgb(0, 0, 255),
		Tolerance:   30,
	}
	var out bytes.Buffer
	if err := Process(&in, &out, "gif", "gif", opt); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	got, err := gif.DecodeAll(&out)
	if err != nil {
		t.Fatalf("decode output error = %v", err)
	}

	if len(got.Image) != 3 {
		t.Fatalf("frame count = %d, want 3", len(got.Image))
	}
	if got.LoopCount != 2 {
		t.Errorf("loop count = %d, want 2", got.LoopCount)
	}
	for i, want := range []int{10, 20, 30} {
		if got.Delay[i] != want {
			t.Errorf("frame %d delay = %d, want %d", i, got.Delay[i], want)
		}
	}

	for i, frame := range got.Image {
		if frame.Bounds() != src.Image[i].Bounds() {
			t.Errorf("frame %d bounds = %v, want %v", i, frame.Bounds(), src.Image[i].Bounds())
		}
		// 红被替换为蓝，黑白原样保留
		checkPixel(t, frame, 0, 0, 0, 0, 255)
		checkPixel(t, frame, 1, 0, 255, 255, 255)
		checkPixel(t, frame, 0, 1, 0, 0, 0)
	}
}

func checkPixel(t *testing.T, img image.Image, x, y int, wr, wg, wb uint32) {
	t.Helper()
	r, g, b, _ := img.At(x, y).RGBA()
	if r>>8 != wr || g>>8 != wg || b>>8 != wb {
		t.Errorf("pixel (%d,%d) = (%d,%d,%d), want (%d,%d,%d)", x, y, r>>8, g>>8, b>>8, wr, wg, wb)
	}
}

func TestProcessMaxSize(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 100, 50))
	opt := Options{
		Replacement: rgb(255, 255, 255),
		Tolerance:   DefaultTolerance,
		MaxSize:     10,
	}

	var out bytes.Buffer
	if err := Process(encodePNG(t, src), &out, "png", "png", opt); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	got, err := png.Decode(&out)
	if err != nil {
		t.Fatalf("decode output error = %v", err)
	}
	if got.Bounds().Dx() != 10 || got.Bounds().Dy() != 5 {
		t.Errorf("size = %dx%d, want 10x5", got.Bounds().Dx(), got.Bounds().Dy())
	}
}

func TestProcessUnsupportedFormat(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	opt := Options{Replacement: rgb(255, 255, 255), Tolerance: DefaultTolerance}

	var out bytes.Buffer
	err := Process(encodePNG(t, src), &out, "png", "tiff", opt)
	if err == nil {
		t.Error("Process() with tiff output did not fail")
	}
}

func TestProcessFile(t *testing.T) {
	defer util.Trace("process file")()

	dir := t.TempDir()
	inPath := filepath.Join(dir, ksuid.New().String()+"_in.png")
	outPath := filepath.Join(dir, ksuid.New().String()+"_out.png")

	src := newTestFrame([]color.NRGBA{
		{R: 200, G: 10, B: 10, A: 255},
		{R: 0, G: 0, B: 0, A: 255},
	})
	f, err := os.Create(inPath)
	if err != nil {
		t.Fatalf("faild to create input image, %v", err)
	}
	if err := png.Encode(f, src); err != nil {
		t.Fatalf("png encode error = %v", err)
	}
	_ = f.Close()

	opt := Options{
		Policy:      PolicyTargetColor,
		Target:      rgb(255, 0, 0),
		Replacement: rgb(0, 255, 0),
		Tolerance:   30,
	}
	if err := ProcessFile(inPath, outPath, opt); err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}

	got, err := util.OpenImage(outPath)
	if err != nil {
		t.Fatalf("faild to open output image, %v", err)
	}
	checkPixel(t, got, 0, 0, 0, 255, 0)
	checkPixel(t, got, 1, 0, 0, 0, 0)
}

func TestProcessFileValidationBeforeIO(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "out.png")

	opt := Options{Replacement: rgb(255, 255, 255), Tolerance: 300}
	err := ProcessFile(filepath.Join(dir, "missing.png"), outPath, opt)
	if !errors.Is(err, ErrInvalidTolerance) {
		t.Errorf("error = %v, want ErrInvalidTolerance", err)
	}
	if _, statErr := os.Stat(outPath); !os.IsNotExist(statErr) {
		t.Error("output file was created despite validation failure")
	}
}

func TestProcessFileInputNotFound(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "out.png")

	opt := Options{Replacement: rgb(255, 255, 255), Tolerance: DefaultTolerance}
	err := ProcessFile(filepath.Join(dir, "missing.png"), outPath, opt)
	if !errors.Is(err, ErrInputNotFound) {
		t.Errorf("error = %v, want ErrInputNotFound", err)
	}
	if _, statErr := os.Stat(outPath); !os.IsNotExist(statErr) {
		t.Error("output file was created despite missing input")
	}
}
