package imageio_test

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/noisylang/noisy/pkg/core/value"
	"github.com/noisylang/noisy/pkg/imageio"
	"github.com/noisylang/noisy/pkg/render"
)

func testPixmap() *render.Pixmap {
	p := render.NewPixmap(3, 2)
	p.Fill(value.Color{R: 10, G: 20, B: 30})
	p.Set(1, 1, value.Color{R: 200})
	return p
}

func TestEncodePNGRoundTrip(t *testing.T) {
	p := testPixmap()
	var buf bytes.Buffer
	if err := imageio.EncodePNG(&buf, p); err != nil {
		t.Fatalf("EncodePNG() error = %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	r, g, b, _ := img.At(1, 1).RGBA()
	if r>>8 != 200 || g>>8 != 0 || b>>8 != 0 {
		t.Errorf("decoded pixel (1,1) = %d,%d,%d, want 200,0,0", r>>8, g>>8, b>>8)
	}
}

func TestWriteFilePicksEncoder(t *testing.T) {
	dir := t.TempDir()
	p := testPixmap()

	bmpPath := filepath.Join(dir, "out.bmp")
	if err := imageio.WriteFile(bmpPath, p); err != nil {
		t.Fatalf("WriteFile(bmp) error = %v", err)
	}
	f, err := os.Open(bmpPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := bmp.Decode(f); err != nil {
		t.Errorf("output is not decodable BMP: %v", err)
	}

	// Unknown extensions fall back to PNG.
	rawPath := filepath.Join(dir, "out.img")
	if err := imageio.WriteFile(rawPath, p); err != nil {
		t.Fatalf("WriteFile(img) error = %v", err)
	}
	data, err := os.ReadFile(rawPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Errorf("fallback output is not decodable PNG: %v", err)
	}
}
