package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/noisylang/noisy/pkg/imageio"
	"github.com/noisylang/noisy/pkg/noisy"
)

func main() {
	out := flag.String("o", "output.png", "output image path (.png or .bmp)")
	seed := flag.Uint64("seed", 1, "noise seed; the same seed reproduces the same image")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: noisy [-o output.png] [-seed N] <scene.noisy>")
		os.Exit(1)
	}

	if *verbose {
		noisy.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	src, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	pix, err := noisy.CompileAndRender(src, *seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Compilation Error: %v\n", err)
		os.Exit(1)
	}

	if err := imageio.WriteFile(*out, pix); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing image: %v\n", err)
		os.Exit(1)
	}
}
