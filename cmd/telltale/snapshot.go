package main

import (
	"fmt"
	"image/png"
	"os"

	"github.com/theoremus-urban-solutions/telltale/display"
)

// writeSnapshot rasterizes the scene into a PNG file at path.
func writeSnapshot(path string, scene *display.Scene) error {
	w, h := scene.Size()
	img := display.NewRaster().Render(w, h, scene.Elements())
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
