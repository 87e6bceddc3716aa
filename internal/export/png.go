package export

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"github.com/san-kum/basinsim/internal/basin"
	"github.com/san-kum/basinsim/internal/dynamo"
)

// Color maps a pixel's pole shares to red (pole 1) and blue (pole 2).
// Green stays zero.
func Color(v dynamo.Vec2) color.RGBA {
	return color.RGBA{R: channel(v.X), G: 0, B: channel(v.Y), A: 255}
}

func channel(f float64) uint8 {
	if f <= 0 {
		return 0
	}
	if f >= 1 {
		return 255
	}
	return uint8(f * 255)
}

// Image converts a canvas to an RGBA image. Grid row 0 is the top row.
func Image(canvas *basin.Grid) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, canvas.Size, canvas.Size))
	for y := 0; y < canvas.Size; y++ {
		for x := 0; x < canvas.Size; x++ {
			img.SetRGBA(x, y, Color(canvas.At(x, y)))
		}
	}
	return img
}

func WritePNG(w io.Writer, canvas *basin.Grid) error {
	return png.Encode(w, Image(canvas))
}

// SavePNG writes the canvas to path, or to stdout when path is empty.
func SavePNG(path string, canvas *basin.Grid) error {
	if path == "" {
		return WritePNG(os.Stdout, canvas)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WritePNG(file, canvas); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
