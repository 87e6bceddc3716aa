package viz

import (
	"strings"

	"github.com/san-kum/basinsim/internal/basin"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800 // Empty braille char
		}
	}
	return c
}

// Set sets a dot at (x, y) in sub-pixel coordinates.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Preview draws a basin canvas cols characters wide. A dot marks a pixel
// where more samples settled on pole 1 than on pole 2.
func Preview(g *basin.Grid, cols int) string {
	if g == nil || g.Size == 0 || cols <= 0 {
		return ""
	}
	rows := max(cols/2, 1)
	c := NewCanvas(cols, rows)
	w, h := cols*2, rows*4

	for sy := 0; sy < h; sy++ {
		for sx := 0; sx < w; sx++ {
			v := g.At(sx*g.Size/w, sy*g.Size/h)
			if v.X > v.Y {
				c.Set(sx, sy)
			}
		}
	}
	return c.String()
}
