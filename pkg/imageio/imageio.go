// Package imageio serializes rendered pixel buffers to concrete image
// file formats. It is an adapter around the core pipeline: the core
// itself never touches the filesystem.
package imageio

import (
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"

	"github.com/noisylang/noisy/pkg/render"
)

// EncodePNG writes the pixmap as PNG.
func EncodePNG(w io.Writer, p *render.Pixmap) error {
	return png.Encode(w, p.Image())
}

// EncodeBMP writes the pixmap as BMP.
func EncodeBMP(w io.Writer, p *render.Pixmap) error {
	return bmp.Encode(w, p.Image())
}

// WriteFile saves the pixmap to path, picking the encoder from the
// file extension. Unknown extensions default to PNG.
func WriteFile(path string, p *render.Pixmap) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imageio: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bmp":
		err = EncodeBMP(f, p)
	default:
		err = EncodePNG(f, p)
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("imageio: encoding %s: %w", path, err)
	}
	return f.Close()
}
