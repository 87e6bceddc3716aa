package basin

import (
	"fmt"

	"github.com/san-kum/basinsim/internal/dynamo"
)

// Grid is a square, row-major image of pole votes. Cell X holds the
// pole 1 share, Y the pole 2 share.
type Grid struct {
	Size  int           `json:"size"`
	Cells []dynamo.Vec2 `json:"cells"`
}

func NewGrid(size int) (*Grid, error) {
	if size <= 0 {
		return nil, fmt.Errorf("grid size %d: %w", size, dynamo.ErrInvalidSize)
	}
	return &Grid{Size: size, Cells: make([]dynamo.Vec2, size*size)}, nil
}

func (g *Grid) At(x, y int) dynamo.Vec2     { return g.Cells[y*g.Size+x] }
func (g *Grid) Set(x, y int, v dynamo.Vec2) { g.Cells[y*g.Size+x] = v }

func (g *Grid) Clone() *Grid {
	c := &Grid{Size: g.Size, Cells: make([]dynamo.Vec2, len(g.Cells))}
	copy(c.Cells, g.Cells)
	return c
}

// Summary holds the mean vote shares over a grid.
type Summary struct {
	Pole1        float64 `json:"pole1"`
	Pole2        float64 `json:"pole2"`
	Undetermined float64 `json:"undetermined"`
}

func Stats(g *Grid) Summary {
	if g == nil || len(g.Cells) == 0 {
		return Summary{}
	}
	var sum dynamo.Vec2
	for _, c := range g.Cells {
		sum = sum.Add(c)
	}
	mean := sum.Div(float64(len(g.Cells)))
	return Summary{Pole1: mean.X, Pole2: mean.Y, Undetermined: 1 - mean.X - mean.Y}
}
