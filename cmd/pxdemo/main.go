// Command pxdemo demonstrates the pixel engine: it paints a small sprite,
// prints its encoded string and saves a scaled PNG.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/pixel"
	"github.com/gogpu/pixel/codec"
	"github.com/gogpu/pixel/viewport"
)

func main() {
	var (
		width   = flag.Int("width", 16, "canvas width in cells")
		height  = flag.Int("height", 16, "canvas height in cells")
		scale   = flag.Int("scale", 16, "output pixels per cell")
		grid    = flag.Bool("grid", false, "draw cell grid lines")
		load    = flag.String("load", "", "encoded string to start from instead of the demo sprite")
		output  = flag.String("output", "sprite.png", "output PNG file")
		view    = flag.String("view", "", "also save the viewport render to this PNG file")
		verbose = flag.Bool("v", false, "log engine diagnostics")
	)
	flag.Parse()

	if *verbose {
		pixel.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	e, err := pixel.New(*width, *height,
		pixel.WithRenderOptions(codec.RenderOptions{
			Scale:        *scale,
			Checkerboard: true,
			Grid:         *grid,
		}),
		pixel.WithViewportOptions(viewport.WithGrid(1)),
	)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}
	defer e.Destroy()

	if *load != "" {
		if err := e.Load(*load); err != nil {
			log.Fatalf("Failed to load: %v", err)
		}
	} else {
		drawSprite(e)
	}

	fmt.Println(e.Export())

	img, err := e.Thumbnail()
	if err != nil {
		log.Fatalf("Failed to render: %v", err)
	}
	if err := savePNG(*output, img); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Sprite saved to %s (%dx%d)\n", *output, img.Bounds().Dx(), img.Bounds().Dy())

	if *view != "" {
		if err := e.Render(); err != nil {
			log.Fatalf("Failed to render viewport: %v", err)
		}
		if err := savePNG(*view, e.Surface().Snapshot()); err != nil {
			log.Fatalf("Failed to save: %v", err)
		}
		log.Printf("Viewport saved to %s\n", *view)
	}
}

// drawSprite paints a face on two layers: a filled disc below and the
// features on a half-transparent layer above.
func drawSprite(e *pixel.Engine) {
	w, h := e.Size()
	cx, cy := float64(w-1)/2, float64(h-1)/2
	r := float64(min(w, h))/2 - 1

	base := e.ActiveLayerID()
	e.BeginAction()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx, dy := float64(x)-cx, float64(y)-cy
			switch d := dx*dx + dy*dy; {
			case d <= (r-1)*(r-1):
				e.SetPixel(base, x, y, 11)
			case d <= r*r:
				e.SetPixel(base, x, y, 1)
			}
		}
	}
	e.CommitAction()

	face := e.AddLayer("Face").ID()
	e.BeginAction()
	for _, p := range [][2]int{{-3, -2}, {2, -2}} {
		e.SetPixel(face, int(cx)+p[0], int(cy)+p[1], 1)
	}
	for dx := -3; dx <= 3; dx++ {
		dy := 3
		if dx == -3 || dx == 3 {
			dy = 2
		}
		e.SetPixel(face, int(cx)+dx, int(cy)+dy, 1)
	}
	e.CommitAction()
	e.SetOpacity(face, 0.8)
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
